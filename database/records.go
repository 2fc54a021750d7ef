package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/greenround/screengolf-usage/models"
)

// RecordRow is a usage record joined with the owning employee's name, as shown
// in the dashboard and admin listings.
type RecordRow struct {
	ID        uint      `json:"id"`
	EmpID     string    `json:"emp_id"`
	Name      string    `json:"name"`
	UsageDate string    `json:"usage_date"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ExportRow adds the cancellation state for the spreadsheet export, which
// includes canceled rows.
type ExportRow struct {
	RecordRow
	IsCanceled bool       `json:"is_canceled"`
	CanceledAt *time.Time `json:"canceled_at"`
}

// Status labels used in the export sheet.
const (
	StatusActive   = "정상"
	StatusCanceled = "취소"
)

// StatusLabel returns the human-readable status for an export row.
func (r ExportRow) StatusLabel() string {
	if r.IsCanceled {
		return StatusCanceled
	}
	return StatusActive
}

// AddUsageRecord inserts one active usage row. Quantity and amount are
// validated by the caller (request boundary).
func AddUsageRecord(db *gorm.DB, empID, usageDate, itemName string, quantity, amount int) error {
	rec := models.UsageRecord{
		EmpID:     empID,
		UsageDate: usageDate,
		ItemName:  itemName,
		Quantity:  quantity,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	return db.Create(&rec).Error
}

// GetUsageRecords lists active records newest first, joined with employee
// names. An empty empID lists across all employees (admin view). Ties on
// (usage_date, created_at) break by insertion id.
func GetUsageRecords(db *gorm.DB, empID string, limit int) ([]RecordRow, error) {
	rows := []RecordRow{}
	q := db.Table("usage_records AS r").
		Select("r.id, r.emp_id, e.name, r.usage_date, r.item_name, r.quantity, r.amount, r.created_at").
		Joins("LEFT JOIN employees e ON r.emp_id = e.emp_id").
		Where("r.is_canceled = ?", false)

	if empID != "" {
		q = q.Where("r.emp_id = ?", empID)
	}

	err := q.Order("r.usage_date DESC, r.created_at DESC, r.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteUsageRecord soft-deletes a record owned by empID. The predicate is
// id+owner only, so canceling a foreign or unknown record reports false and
// changes nothing; re-canceling an already-canceled row just re-stamps the
// same flag.
func DeleteUsageRecord(db *gorm.DB, recordID uint, empID string) (bool, error) {
	now := time.Now()
	res := db.Model(&models.UsageRecord{}).
		Where("id = ? AND emp_id = ?", recordID, empID).
		Updates(map[string]interface{}{
			"is_canceled": true,
			"canceled_at": &now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AllUsageRecordsForExport returns every record, canceled ones included, in
// listing order and without a limit. Used only by the spreadsheet export.
func AllUsageRecordsForExport(db *gorm.DB) ([]ExportRow, error) {
	rows := []ExportRow{}
	err := db.Table("usage_records AS r").
		Select("r.id, r.emp_id, e.name, r.usage_date, r.item_name, r.quantity, r.amount, r.created_at, r.is_canceled, r.canceled_at").
		Joins("LEFT JOIN employees e ON r.emp_id = e.emp_id").
		Order("r.usage_date DESC, r.created_at DESC, r.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ResetAllData wipes usage records first, then employees, and restarts both
// identity sequences. Settings survive. Not atomic beyond the individual
// statements.
func ResetAllData(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM usage_records").Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM employees").Error; err != nil {
		return err
	}

	switch db.Dialector.Name() {
	case "sqlite":
		// sqlite_sequence only exists once an AUTOINCREMENT insert happened.
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('usage_records', 'employees')")
	case "mysql":
		if err := db.Exec("ALTER TABLE usage_records AUTO_INCREMENT = 1").Error; err != nil {
			return err
		}
		if err := db.Exec("ALTER TABLE employees AUTO_INCREMENT = 1").Error; err != nil {
			return err
		}
	}
	return nil
}
