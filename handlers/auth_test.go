// handlers/auth_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hacksphere/middleware"
	"hacksphere/models"
	"hacksphere/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "hacksphere-secret-change-in-production")
	Init(store.NewMemory())

	app := fiber.New()
	auth := app.Group("/api/auth")
	auth.Post("/register", Register)
	auth.Post("/login", Login)
	auth.Get("/me", middleware.Protect, Me)

	rubrics := app.Group("/api/rubrics")
	rubrics.Use(middleware.Protect)
	rubrics.Get("/", ListRubrics)
	rubrics.Post("/", middleware.Authorize(models.RoleAdmin), CreateRubric)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, token string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestRegisterLoginMe(t *testing.T) {
	app := testApp(t)

	resp := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Name:          "Asha",
		Email:         "Asha@NIT01.edu",
		Password:      "secret123",
		InstituteCode: "nit01",
		InstituteName: "NIT",
	}, "")
	require.Equal(t, 201, resp.StatusCode)

	var reg AuthResponse
	decode(t, resp, &reg)
	require.True(t, reg.Success)
	require.NotEmpty(t, reg.Token)
	require.NotNil(t, reg.User)
	assert.Equal(t, "asha@nit01.edu", reg.User.Email)
	assert.Equal(t, models.RoleStudent, reg.User.Role)
	assert.Equal(t, "NIT01", reg.User.InstituteID)

	resp = postJSON(t, app, "/api/auth/login", LoginRequest{Email: "asha@nit01.edu", Password: "secret123"}, "")
	require.Equal(t, 200, resp.StatusCode)
	var login AuthResponse
	decode(t, resp, &login)
	require.True(t, login.Success)
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, meResp.StatusCode)

	var me models.User
	decode(t, meResp, &me)
	assert.Equal(t, "asha@nit01.edu", me.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app := testApp(t)

	body := RegisterRequest{Name: "A", Email: "dup@nit01.edu", Password: "secret123", InstituteCode: "NIT01"}
	resp := postJSON(t, app, "/api/auth/register", body, "")
	require.Equal(t, 201, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/register", body, "")
	assert.Equal(t, 409, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	app := testApp(t)

	resp := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Name: "B", Email: "b@nit01.edu", Password: "secret123", InstituteCode: "NIT01",
	}, "")
	require.Equal(t, 201, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", LoginRequest{Email: "b@nit01.edu", Password: "wrong"}, "")
	assert.Equal(t, 401, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login", LoginRequest{Email: "ghost@nit01.edu", Password: "whatever"}, "")
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRegister_ShortPassword(t *testing.T) {
	app := testApp(t)
	resp := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Name: "C", Email: "c@nit01.edu", Password: "abc", InstituteCode: "NIT01",
	}, "")
	assert.Equal(t, 400, resp.StatusCode)
}

// A student token passes the gate on read routes but is refused on
// admin-only writes.
func TestRoutePolicy_StudentVsAdmin(t *testing.T) {
	app := testApp(t)

	resp := postJSON(t, app, "/api/auth/register", RegisterRequest{
		Name: "Student", Email: "stu@nit01.edu", Password: "secret123", InstituteCode: "NIT01",
	}, "")
	require.Equal(t, 201, resp.StatusCode)
	var reg AuthResponse
	decode(t, resp, &reg)

	req := httptest.NewRequest("GET", "/api/rubrics/", nil)
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, listResp.StatusCode)

	createResp := postJSON(t, app, "/api/rubrics/", models.Rubric{Title: "Nope", MaxScore: 10, Weight: 0.5}, reg.Token)
	assert.Equal(t, 403, createResp.StatusCode)

	// No token at all never reaches the handler.
	anonResp := postJSON(t, app, "/api/rubrics/", models.Rubric{Title: "Anon", MaxScore: 10, Weight: 0.5}, "")
	assert.Equal(t, 401, anonResp.StatusCode)
}
