package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/greenround/screengolf-usage/database"
	"github.com/greenround/screengolf-usage/models"
)

func seedEmployee(t *testing.T, db *gorm.DB, empID, name string) {
	t.Helper()
	if _, err := database.UpsertEmployee(db, empID, name, ""); err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
}

func TestAddAndListRecords(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "100", "Kim")
	seedEmployee(t, db, "200", "Lee")

	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-05-01", "9홀", 2, 4000))
	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-05-03", "18홀", 1, 4000))
	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-05-02", "9홀", 1, 2000))
	assert.NoError(t, database.AddUsageRecord(db, "200", "2024-05-04", "18홀", 1, 4000))

	// Per-employee listing is newest first by usage_date and joined with the
	// employee name.
	records, err := database.GetUsageRecords(db, "100", 100)
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "2024-05-03", records[0].UsageDate)
	assert.Equal(t, "2024-05-02", records[1].UsageDate)
	assert.Equal(t, "2024-05-01", records[2].UsageDate)
	assert.Equal(t, "Kim", records[0].Name)

	// Limit caps the newest slice.
	records, err = database.GetUsageRecords(db, "100", 1)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "18홀", records[0].ItemName)

	// Admin view spans all employees.
	records, err = database.GetUsageRecords(db, "", 100)
	assert.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, "200", records[0].EmpID)
}

func TestListRecordsTieBreakByID(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "100", "Kim")

	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-06-01", "9홀", 1, 2000))
	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-06-01", "18홀", 1, 4000))

	records, err := database.GetUsageRecords(db, "100", 10)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	// Same date: later insertion wins.
	assert.True(t, records[0].ID > records[1].ID)
}

func TestSoftDeleteRecord(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "100", "Kim")

	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-05-01", "9홀", 2, 4000))

	records, err := database.GetUsageRecords(db, "100", 10)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	recordID := records[0].ID

	ok, err := database.DeleteUsageRecord(db, recordID, "100")
	assert.NoError(t, err)
	assert.True(t, ok)

	// Gone from the listing...
	records, err = database.GetUsageRecords(db, "100", 10)
	assert.NoError(t, err)
	assert.Empty(t, records)

	// ...but still present in the export, flagged as canceled.
	export, err := database.AllUsageRecordsForExport(db)
	assert.NoError(t, err)
	assert.Len(t, export, 1)
	assert.True(t, export[0].IsCanceled)
	assert.Equal(t, database.StatusCanceled, export[0].StatusLabel())
	assert.NotNil(t, export[0].CanceledAt)
	assert.GreaterOrEqual(t, export[0].CanceledAt.Unix(), export[0].CreatedAt.Unix())
}

func TestDeleteRecordOwnershipCheck(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "100", "Kim")
	seedEmployee(t, db, "200", "Lee")

	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-05-01", "9홀", 1, 2000))
	records, _ := database.GetUsageRecords(db, "100", 10)
	recordID := records[0].ID

	// Another employee cannot cancel it.
	ok, err := database.DeleteUsageRecord(db, recordID, "200")
	assert.NoError(t, err)
	assert.False(t, ok)

	// A nonexistent id is a no-op reporting failure.
	ok, err = database.DeleteUsageRecord(db, 99999, "100")
	assert.NoError(t, err)
	assert.False(t, ok)

	// The record is still active.
	records, err = database.GetUsageRecords(db, "100", 10)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExportIncludesActiveAndCanceled(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "100", "Kim")

	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-05-01", "9홀", 2, 4000))
	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-05-02", "18홀", 1, 4000))

	records, _ := database.GetUsageRecords(db, "100", 10)
	ok, err := database.DeleteUsageRecord(db, records[1].ID, "100")
	assert.NoError(t, err)
	assert.True(t, ok)

	export, err := database.AllUsageRecordsForExport(db)
	assert.NoError(t, err)
	assert.Len(t, export, 2)
	assert.Equal(t, database.StatusActive, export[0].StatusLabel())
	assert.Equal(t, database.StatusCanceled, export[1].StatusLabel())
}

func TestResetAllData(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "100", "Kim")
	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-05-01", "9홀", 1, 2000))
	assert.NoError(t, database.SetSetting(db, "admin_password", "changed"))

	assert.NoError(t, database.ResetAllData(db))

	var empCount, recCount int64
	db.Model(&models.Employee{}).Count(&empCount)
	db.Model(&models.UsageRecord{}).Count(&recCount)
	assert.EqualValues(t, 0, empCount)
	assert.EqualValues(t, 0, recCount)

	// Settings are preserved.
	assert.Equal(t, "changed", database.GetSetting(db, "admin_password", ""))

	// Identity sequences restart.
	created, err := database.UpsertEmployee(db, "900", "New", "")
	assert.NoError(t, err)
	assert.True(t, created)
	emp, _ := database.GetEmployee(db, "900")
	assert.EqualValues(t, 1, emp.ID)
}
