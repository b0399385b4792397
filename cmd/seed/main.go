package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"medappointment/internal/config"
	"medappointment/internal/database"
	"medappointment/internal/domain/auth"
	"medappointment/internal/domain/profile"
	"medappointment/internal/server"
)

type demoUser struct {
	email, password, first, last string
	role                         auth.UserRole
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db, server.Models()...); err != nil {
		log.Fatal(err)
	}

	// Existing accounts are left untouched, so seeding twice is harmless.
	log.Println("Creating users...")
	admin := ensureUser(db, demoUser{"admin@medappointment.com", "Admin123!", "Super", "Admin", auth.RoleAdmin})
	doctor := ensureUser(db, demoUser{"doctor@medappointment.com", "Doctor123!", "Gregory", "House", auth.RoleDoctor})
	patient := ensureUser(db, demoUser{"patient@medappointment.com", "Patient123!", "Jane", "Doe", auth.RolePatient})

	log.Println("Creating profiles...")
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	ensureProfile(db, &profile.DoctorProfile{
		UserID:          doctor.ID,
		LicenseNumber:   "MED-000001",
		Specialty:       profile.SpecialtyGeneralPractice,
		YearsExperience: 15,
		Bio:             "Diagnostic medicine",
		ConsultationFee: 50,
		AvailableFrom:   "09:00",
		AvailableTo:     "17:00",
	})
	ensureProfile(db, &profile.PatientProfile{
		UserID:           patient.ID,
		DateOfBirth:      &dob,
		BloodGroup:       "O+",
		EmergencyContact: "+1 555 0100",
	})

	log.Printf("Seed completed: admin=%s doctor=%s patient=%s", admin.Email, doctor.Email, patient.Email)
	log.Println("IMPORTANT: change the demo passwords outside local development")
}

func ensureUser(db *gorm.DB, d demoUser) *auth.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	u := auth.User{
		Email:        d.email,
		PasswordHash: string(hash),
		FirstName:    d.first,
		LastName:     d.last,
		Role:         d.role,
		IsActive:     true,
	}
	if err := db.Where(auth.User{Email: d.email}).FirstOrCreate(&u).Error; err != nil {
		log.Fatalf("create %s: %v", d.email, err)
	}
	log.Printf("%s ready: %s / %s", d.role, d.email, d.password)
	return &u
}

func ensureProfile(db *gorm.DB, p any) {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(p).Error; err != nil {
		log.Fatalf("create profile: %v", err)
	}
}
