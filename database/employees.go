package database

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenround/screengolf-usage/models"
	"github.com/greenround/screengolf-usage/utils"
)

// UpsertEmployee inserts an employee if the emp_id is not taken; an existing
// row wins and is left untouched. An empty passwordRaw seeds the password from
// the employee id itself. Returns whether a new row was created.
func UpsertEmployee(db *gorm.DB, empID, name, passwordRaw string) (bool, error) {
	if passwordRaw == "" {
		passwordRaw = empID
	}

	emp := models.Employee{
		EmpID:        empID,
		Name:         name,
		PasswordHash: utils.HashValue(passwordRaw),
		CreatedAt:    time.Now(),
		IsActive:     true,
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "emp_id"}},
		DoNothing: true,
	}).Create(&emp)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetEmployee fetches a single employee by emp_id; nil when unknown.
func GetEmployee(db *gorm.DB, empID string) (*models.Employee, error) {
	var emp models.Employee
	err := db.Where("emp_id = ?", empID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// GetAllEmployees returns the full roster ordered by emp_id, for the admin
// console.
func GetAllEmployees(db *gorm.DB) ([]models.Employee, error) {
	var emps []models.Employee
	if err := db.Order("emp_id").Find(&emps).Error; err != nil {
		return nil, err
	}
	return emps, nil
}

// VerifyUser checks credentials by exact hash match. Returns the employee on
// success and nil on any mismatch or unknown id.
func VerifyUser(db *gorm.DB, empID, passwordRaw string) (*models.Employee, error) {
	emp, err := GetEmployee(db, empID)
	if err != nil || emp == nil {
		return nil, err
	}
	if emp.PasswordHash != utils.HashValue(passwordRaw) {
		return nil, nil
	}
	return emp, nil
}

// ResetPasswordToDefault sets the password back to the employee's own id.
// Fails (false, nil) when the id is unknown.
func ResetPasswordToDefault(db *gorm.DB, empID string) (bool, error) {
	emp, err := GetEmployee(db, empID)
	if err != nil {
		return false, err
	}
	if emp == nil {
		return false, nil
	}
	if err := UpdatePassword(db, empID, empID); err != nil {
		return false, err
	}
	return true, nil
}

// UpdatePassword overwrites the stored hash. Deliberately no existence check:
// an UPDATE matching zero rows still reports success, matching the behavior
// callers have depended on.
func UpdatePassword(db *gorm.DB, empID, newPassword string) error {
	return db.Model(&models.Employee{}).
		Where("emp_id = ?", empID).
		Update("password_hash", utils.HashValue(newPassword)).Error
}

// IsDefaultPassword reports whether the employee still logs in with their own
// id, used for the dashboard warning banner.
func IsDefaultPassword(db *gorm.DB, empID string) bool {
	emp, err := VerifyUser(db, empID, empID)
	return err == nil && emp != nil
}
