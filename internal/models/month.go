package models

import "time"

// Month: bir takvim ayını temsil eder ve giderlerin sahibidir.
// Ay silindiğinde giderleri de silinir.
type Month struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"column:period;type:date;index;not null" json:"timestamp"`
	Expenses  []Expense `gorm:"constraint:OnDelete:CASCADE" json:"expenses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
