package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/model"
	"lending-concierge-be/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedAdmin(db)
	seedBrokersAndCases(db)

	log.Println("Seeding complete")
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@lendbridge.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	var count int64
	db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Printf("Admin %s already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash admin password:", err)
	}
	hashStr := string(hash)
	now := time.Now()

	admin := model.User{
		Id:              uuid.New(),
		Email:           email,
		PasswordHash:    &hashStr,
		FullName:        "Platform Admin",
		Role:            entity.UserRoleAdmin,
		Status:          entity.UserStatusActive,
		EmailVerified:   true,
		EmailVerifiedAt: &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Error: Failed to seed admin:", err)
	}
	log.Printf("Seeded admin user %s", email)
}

func seedBrokersAndCases(db *gorm.DB) {
	var count int64
	db.Model(&model.BrokerProfile{}).Count(&count)
	if count > 0 {
		log.Println("Brokers already exist, skipping demo data")
		return
	}

	now := time.Now()

	brokers := []model.BrokerProfile{
		{
			Id:            uuid.New(),
			CompanyName:   "Northgate Lending Partners",
			DisplayName:   "Maya Chen",
			Bio:           "15 years placing commercial bridge loans across the Pacific Northwest.",
			LicenseNumber: "NMLS-482910",
			Specialties:   datatypes.JSON([]byte(`["bridge","commercial","multifamily"]`)),
			ContactEmail:  "maya@northgatelending.example",
			ContactPhone:  "+1-206-555-0142",
			Featured:      true,
		},
		{
			Id:            uuid.New(),
			CompanyName:   "Harborline Capital",
			DisplayName:   "Devon Park",
			Bio:           "Residential fix-and-flip and DSCR specialist.",
			LicenseNumber: "NMLS-731204",
			Specialties:   datatypes.JSON([]byte(`["fix-and-flip","dscr","residential"]`)),
			ContactEmail:  "devon@harborline.example",
			ContactPhone:  "+1-415-555-0199",
			Featured:      false,
		},
	}
	for i := range brokers {
		if err := db.Create(&brokers[i]).Error; err != nil {
			log.Fatal("Error: Failed to seed broker:", err)
		}
	}

	cases := []model.LoanCase{
		{
			Id:           uuid.New(),
			Title:        "Multifamily bridge, 24 units in Tacoma",
			Summary:      "12-month bridge while stabilizing occupancy ahead of agency refi.",
			Description:  "Value-add acquisition of a 24-unit building. Sponsor has completed three similar projects in the submarket.",
			LoanAmount:   3250000,
			InterestRate: 9.25,
			TermMonths:   12,
			PropertyType: "multifamily",
			Region:       "WA",
			Status:       entity.CaseStatusPublished,
			BrokerId:     &brokers[0].Id,
			PublishedAt:  &now,
		},
		{
			Id:           uuid.New(),
			Title:        "Fix-and-flip, single family in Oakland",
			Summary:      "9-month rehab loan at 70% ARV with experienced operator.",
			LoanAmount:   685000,
			InterestRate: 10.5,
			TermMonths:   9,
			PropertyType: "single_family",
			Region:       "CA",
			Status:       entity.CaseStatusPublished,
			BrokerId:     &brokers[1].Id,
			PublishedAt:  &now,
		},
		{
			Id:           uuid.New(),
			Title:        "Retail strip center refinance",
			Summary:      "Draft listing pending broker assignment.",
			LoanAmount:   1900000,
			InterestRate: 8.75,
			TermMonths:   60,
			PropertyType: "retail",
			Region:       "TX",
			Status:       entity.CaseStatusDraft,
		},
	}
	for i := range cases {
		if err := db.Create(&cases[i]).Error; err != nil {
			log.Fatal("Error: Failed to seed case:", err)
		}
	}

	log.Printf("Seeded %d brokers and %d cases", len(brokers), len(cases))
}
