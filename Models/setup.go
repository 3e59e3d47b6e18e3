package Models

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(path))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	// 1. Base tables with no dependencies
	DB.AutoMigrate(
		&User{},
		&Asset{},
		&Maintenance{},
	)

	// 2. Then tables referencing the base set
	DB.AutoMigrate(
		&MaintenanceTask{}, // Depends on Maintenance
	)

	// 3. Inspection records reference assets, maintenances and tasks
	DB.AutoMigrate(&InspectionRecord{})

	seedAdmin()
}

// seedAdmin creates the bootstrap admin account on an empty users table so a
// fresh install can log in.
func seedAdmin() {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := User{
		Name:       "Administrator",
		Username:   "admin",
		Password:   hash,
		Permission: 3,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return
	}
	log.Println("Created default admin user")
}
