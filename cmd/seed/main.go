// cmd/seed - Idempotent bootstrap of the admin account and institutes
package main

import (
	"log"
	"os"
	"strings"

	"hacksphere/database"
	"hacksphere/models"
	"hacksphere/store"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var defaultInstitutes = []models.Institute{
	{Name: "National Institute of Technology", Code: "NIT01"},
	{Name: "Indian Institute of Information Technology", Code: "IIIT01"},
	{Name: "Government Engineering College", Code: "GEC01"},
}

var defaultProblems = []models.Problem{
	{
		Title:       "Smart Road Damage Reporting and Rapid Response System",
		Description: "Citizens report potholes and road damage with geo-tagged photos; officials verify, prioritize and track resolution across departments.",
		Category:    "Civic Infrastructure",
		Difficulty:  models.DifficultyHard,
		Type:        models.ProblemSoftware,
		Tags:        "ai,gis,mobile",
	},
	{
		Title:       "Smart Irrigation Controller for Small Farms",
		Description: "Soil-moisture-driven irrigation scheduling that minimizes water use on fragmented small holdings.",
		Category:    "Agriculture",
		Difficulty:  models.DifficultyMedium,
		Type:        models.ProblemHardware,
		Tags:        "iot,sensors",
	},
	{
		Title:       "Telemedicine Kiosk for Rural Health Centers",
		Description: "A self-service kiosk connecting rural patients to remote doctors with vitals capture and prescription printing.",
		Category:    "Healthcare",
		Difficulty:  models.DifficultyMedium,
		Type:        models.ProblemBoth,
		Tags:        "health,video",
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	defer database.CloseDB()

	s := store.NewGorm(database.GetDB())

	seedAdmin(s)
	seedInstitutes(s)
	seedProblems(s)

	log.Println("Seed complete")
}

func seedAdmin(s store.Store) {
	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	if email == "" {
		email = "admin@hacksphere.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("FATAL: ADMIN_PASSWORD must be set to seed the admin account")
	}

	if _, err := s.Users().GetByEmail(email); err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := s.Users().Create(&admin); err != nil {
		log.Fatal("Failed to create admin:", err)
	}
	log.Printf("Created admin %s", email)
}

func seedInstitutes(s store.Store) {
	for _, inst := range defaultInstitutes {
		inst.NormalizeCode()
		inst.IsActive = true
		if _, err := s.Institutes().GetByCode(inst.Code); err == nil {
			continue
		}
		if err := s.Institutes().Create(&inst); err != nil {
			log.Printf("Failed to create institute %s: %v", inst.Code, err)
			continue
		}
		log.Printf("Created institute %s (%s)", inst.Name, inst.Code)
	}
}

func seedProblems(s store.Store) {
	existing, err := s.Problems().List()
	if err != nil {
		log.Printf("Failed to read problem catalog: %v", err)
		return
	}
	if len(existing) > 0 {
		log.Printf("Problem catalog already has %d entries, skipping", len(existing))
		return
	}
	for i := range defaultProblems {
		p := defaultProblems[i]
		if err := s.Problems().Create(&p); err != nil {
			log.Printf("Failed to create problem %q: %v", p.Title, err)
			continue
		}
		log.Printf("Created problem %q", p.Title)
	}
}
