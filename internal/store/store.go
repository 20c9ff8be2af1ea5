// Package store kategori, ay ve gider kayıtları üzerindeki veri erişimini
// toplar. Her yazma işlemi audit kaydıyla birlikte tek transaction'da yapılır.
package store

import (
	"errors"
	"strings"

	"butce-backend/internal/apperr"

	"gorm.io/gorm"
)

// orderExpenses giderleri tarih, aynı tarihte ise ID sırasıyla getirir.
func orderExpenses(db *gorm.DB) *gorm.DB {
	return db.Order("spent_on asc, id asc")
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return err
}

// requiredText boş olmayan, kırpılmış metni döner.
func requiredText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", apperr.Validation("%s boş olamaz", field)
	}
	return v, nil
}
