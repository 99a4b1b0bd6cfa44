package db

import (
	"github.com/jumush/backend/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Region{},
		&domain.Subregion{},
		&domain.Category{},
		&domain.Account{},
		&domain.Task{},
		&domain.LedgerEntry{},
	)
	if err != nil {
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		return err
	}

	return seedReferenceData(db)
}

func createCustomIndexes(db *gorm.DB) error {
	// Open-task listing filters on (region_id, state) over live rows only.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tasks_open_by_region
		ON tasks (region_id)
		WHERE state = 'open' AND deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	// Paid-but-unclaimed tasks are the reconciliation queue for orphaned
	// listing-fee debits.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tasks_paid_unclaimed
		ON tasks (updated_at)
		WHERE state = 'paid' AND executor_id IS NULL AND deleted_at IS NULL
	`).Error; err != nil {
		return err
	}

	return nil
}

// seedReferenceData fills the region catalog on first boot. The catalog is
// read-only at runtime; changing it is an administrative migration.
func seedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Region{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := map[string][]string{
		"Bishkek":    {"Lenin district", "Oktyabr district", "Pervomay district", "Sverdlov district"},
		"Osh":        {"Osh city", "Kara-Suu", "Uzgen", "Nookat"},
		"Chuy":       {"Tokmok", "Kant", "Kara-Balta", "Sokuluk"},
		"Issyk-Kul":  {"Karakol", "Balykchy", "Cholpon-Ata"},
		"Jalal-Abad": {"Jalal-Abad city", "Kerben", "Tash-Kumyr"},
		"Naryn":      {"Naryn city", "At-Bashy"},
		"Talas":      {"Talas city", "Kara-Buura"},
		"Batken":     {"Batken city", "Kyzyl-Kiya", "Sulukta"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for title, subregions := range seed {
			region := domain.Region{Title: title}
			if err := tx.Create(&region).Error; err != nil {
				return err
			}
			for _, sub := range subregions {
				if err := tx.Create(&domain.Subregion{Title: sub, RegionID: region.ID}).Error; err != nil {
					return err
				}
			}
		}

		categories := []string{"Repair", "Cleaning", "Delivery", "Construction", "Gardening", "Other"}
		for _, title := range categories {
			if err := tx.Create(&domain.Category{Title: title}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
