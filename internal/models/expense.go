package models

import "time"

type Expense struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MonthID   *uint     `gorm:"index" json:"month_id"` // sahibi olan ay, istemciden alınmaz
	Name      string    `gorm:"size:255;not null" json:"name"`
	Timestamp time.Time `gorm:"column:spent_on;type:date;index;not null" json:"timestamp"`
	Category  string    `gorm:"size:100;not null" json:"category"` // serbest metin etiketi
	Amount    float64   `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
