package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenround/screengolf-usage/models"
)

const (
	AdminPasswordKey     = "admin_password"
	DefaultAdminPassword = "admin1234"
)

// GetSetting reads a settings value, returning def when the key is absent.
// Reads go to the store every time; no in-memory caching.
func GetSetting(db *gorm.DB, key, def string) string {
	var setting models.Setting
	if err := db.First(&setting, "key = ?", key).Error; err != nil {
		return def
	}
	return setting.Value
}

// SetSetting writes a settings value, inserting or replacing.
func SetSetting(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
}
