// handlers/admin/password_resets_test.go
package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hacksphere/middleware"
	"hacksphere/models"
	"hacksphere/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "hacksphere-secret-change-in-production"

func adminToken(t *testing.T, userID uint) string {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	claims := jwt.MapClaims{
		"user_id":      float64(userID),
		"name":         "Root",
		"role":         string(models.RoleAdmin),
		"institute_id": "",
		"exp":          time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func resetApp(t *testing.T) (*fiber.App, store.Store) {
	t.Helper()
	s := store.NewMemory()
	Init(s)

	app := fiber.New()
	grp := app.Group("/api/password-resets")
	grp.Get("/", middleware.Protect, middleware.Authorize(models.RoleAdmin), ListPasswordResets)
	grp.Put("/:id/approve", middleware.Protect, middleware.Authorize(models.RoleAdmin), ApprovePasswordReset)
	grp.Put("/:id/reject", middleware.Protect, middleware.Authorize(models.RoleAdmin), RejectPasswordReset)
	return app, s
}

func seedReset(t *testing.T, s store.Store) (*models.User, *models.PasswordResetRequest) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpass123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name: "Asha", Email: "asha@nit01.edu", Password: string(hashed),
		Role: models.RoleStudent, InstituteID: "NIT01", InstituteCode: "NIT01",
	}
	require.NoError(t, s.Users().Create(user))

	reset := &models.PasswordResetRequest{
		UserID: user.ID, Email: user.Email, UserName: user.Name,
		Status: models.ResetPending,
	}
	require.NoError(t, s.PasswordResets().Create(reset))
	return user, reset
}

func putJSON(t *testing.T, app *fiber.App, path string, body any, token string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("PUT", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestApprovePasswordReset(t *testing.T) {
	app, s := resetApp(t)
	user, reset := seedReset(t, s)
	token := adminToken(t, 999)

	resp := putJSON(t, app, fmt.Sprintf("/api/password-resets/%d/approve", reset.ID),
		fiber.Map{"new_password": "brandnew1"}, token)
	require.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// The processed status on the wire is "approved".
	assert.Contains(t, string(raw), `"status":"approved"`)
	assert.NotContains(t, string(raw), `"status":"accepted"`)

	var body struct {
		Success bool                         `json:"success"`
		Request *models.PasswordResetRequest `json:"request"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.True(t, body.Success)
	assert.Equal(t, models.ResetApproved, body.Request.Status)
	require.NotNil(t, body.Request.ProcessedBy)
	assert.Equal(t, uint(999), *body.Request.ProcessedBy)
	assert.NotNil(t, body.Request.ProcessedAt)

	// The user can log in with the new password.
	updated, err := s.Users().GetByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("brandnew1")))

	// A second approval is refused.
	resp = putJSON(t, app, fmt.Sprintf("/api/password-resets/%d/approve", reset.ID),
		fiber.Map{"new_password": "another12"}, token)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestRejectPasswordReset(t *testing.T) {
	app, s := resetApp(t)
	_, reset := seedReset(t, s)
	token := adminToken(t, 999)

	resp := putJSON(t, app, fmt.Sprintf("/api/password-resets/%d/reject", reset.ID),
		fiber.Map{"reason": "identity not verified"}, token)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Request *models.PasswordResetRequest `json:"request"`
	}
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &body))
	assert.Equal(t, models.ResetRejected, body.Request.Status)
	assert.Equal(t, "identity not verified", body.Request.RejectionReason)
}

func TestListPasswordResets_StatusFilter(t *testing.T) {
	app, s := resetApp(t)
	seedReset(t, s)
	token := adminToken(t, 999)

	req := httptest.NewRequest("GET", "/api/password-resets/?status=approved", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"count":0`))

	req = httptest.NewRequest("GET", "/api/password-resets/?status=pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"count":1`))
}
