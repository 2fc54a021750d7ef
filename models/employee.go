package models

import "time"

// Employee is a roster entry used for login. EmpID is kept as text so
// identifiers with leading zeros survive spreadsheet round trips.
type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmpID        string    `gorm:"column:emp_id;type:varchar(50);uniqueIndex;not null" json:"emp_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(64);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
}

func (Employee) TableName() string {
	return "employees"
}
