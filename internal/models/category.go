package models

import "time"

// Category: planlanan tutar ve tip etiketi olan harcama kategorisi.
// Giderlerle yabancı anahtar ilişkisi yoktur, giderler kategoriyi metin olarak taşır.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Amount    int       `gorm:"not null" json:"amount"`
	CatType   string    `gorm:"size:50;not null" json:"cat_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
