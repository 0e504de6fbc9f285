package database

import (
	"log"
	"time"

	"ib-riskcalc/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Init(dsn string) *gorm.DB {
	var db *gorm.DB
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	// миграции
	err = db.AutoMigrate(
		&models.Evaluation{},
		&models.Asset{},
		&models.Question{},
		&models.Answer{},
		&models.Threat{},
		&models.Vulnerability{},
		&models.ControlMeasure{},
		&models.ThreatMeasure{},
		&models.AssetThreat{},
		&models.Salvaguard{},
		&models.ImpactResult{},
		&models.ThreatRisk{},
		&models.RiskResult{},
		&models.MaturityResult{},
		&models.AIAnalysis{},
		&models.ChangeLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedCatalog(db)

	return db
}
