package models

import "time"

// UsageRecord is one purchased line item of a visit. Cancellation is a soft
// delete: the row stays for export, IsCanceled flips once and CanceledAt is
// stamped.
type UsageRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmpID      string     `gorm:"column:emp_id;type:varchar(50);not null;index" json:"emp_id"`
	UsageDate  string     `gorm:"type:varchar(10);not null" json:"usage_date"` // YYYY-MM-DD
	ItemName   string     `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity   int        `gorm:"not null;default:1" json:"quantity"`
	Amount     int        `gorm:"not null;default:0" json:"amount"`
	CreatedAt  time.Time  `json:"created_at"`
	IsCanceled bool       `gorm:"not null;default:false" json:"is_canceled"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
}

func (UsageRecord) TableName() string {
	return "usage_records"
}
