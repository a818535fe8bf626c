package db

import (
	"log"

	"edusphere/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) *gorm.DB {
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=edusphere port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedSubforums(DB)

	return DB
}

// Migrate runs the schema migration. Split out from Init so tests can
// run it against their own database.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Subforum{},
		&models.Thread{},
		&models.Reply{},
		&models.Vote{},
		&models.Report{},
	)
}

func seedSubforums(gdb *gorm.DB) {
	var count int64
	gdb.Model(&models.Subforum{}).Count(&count)
	if count > 0 {
		log.Println("Subforums already seeded, skipping")
		return
	}

	subforums := []models.Subforum{
		{Name: "general", Description: "Campus talk, anything goes"},
		{Name: "academics", Description: "Courses, exams and study material"},
		{Name: "placements", Description: "Internships, placements and interview prep"},
		{Name: "events", Description: "Fests, clubs and campus events"},
	}

	for _, sf := range subforums {
		if err := gdb.Create(&sf).Error; err != nil {
			log.Printf("Failed to create subforum %s: %v", sf.Name, err)
		}
	}
	log.Println("Initial subforums created successfully")
}
