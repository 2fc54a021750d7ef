package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenround/screengolf-usage/models"
	"github.com/greenround/screengolf-usage/utils"
)

// Migrate brings the schema up to date and seeds defaults. The legacy check is
// best-effort (logged and skipped on failure); failing to create the tables
// themselves is fatal to startup, so the error is returned.
func Migrate(db *gorm.DB) error {
	migrateLegacyUsageRecords(db)

	if err := db.AutoMigrate(
		&models.Employee{},
		&models.UsageRecord{},
		&models.Setting{},
	); err != nil {
		return err
	}

	return seedDefaultSettings(db)
}

// migrateLegacyUsageRecords drops usage_records when it still has the old
// time-slot layout (a start_time column) or predates the item-based layout
// (no item_name column). Both migrations are destructive; the cancel columns
// are added non-destructively by AutoMigrate afterwards.
func migrateLegacyUsageRecords(db *gorm.DB) {
	m := db.Migrator()
	if !m.HasTable(&models.UsageRecord{}) {
		return
	}

	switch {
	case m.HasColumn(&models.UsageRecord{}, "start_time"):
		utils.InfoLogger.Println("Migrating: dropping time-slot usage_records table")
		if err := m.DropTable(&models.UsageRecord{}); err != nil {
			utils.ErrorLogger.Printf("Migration check failed: %v", err)
		}
	case !m.HasColumn(&models.UsageRecord{}, "item_name"):
		utils.InfoLogger.Println("Migrating: dropping mismatched usage_records schema")
		if err := m.DropTable(&models.UsageRecord{}); err != nil {
			utils.ErrorLogger.Printf("Migration check failed: %v", err)
		}
	}
}

func seedDefaultSettings(db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Setting{Key: AdminPasswordKey, Value: DefaultAdminPassword}).Error
}
