// Package sheet bir ayın giderlerini xlsx olarak dışa aktarır ve xlsx
// dosyasından gider taslakları okur.
package sheet

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"butce-backend/internal/apperr"
	"butce-backend/internal/models"
	"butce-backend/internal/store"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []interface{}{"Name", "Date", "Category", "Amount"}

// SheetName ayın sheet adını döner, ör. "2024-01".
func SheetName(month models.Month) string {
	return month.Timestamp.Format("2006-01")
}

// Export giderleri verilen sırayla tek sheet'e yazar.
func Export(month models.Month) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := SheetName(month)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, err
	}

	for i, e := range month.Expenses {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{e.Name, e.Timestamp.Format("2006-01-02"), e.Category, e.Amount}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// ParseExpenses ilk sheet'teki satırları gider taslaklarına çevirir.
// Sütunlar: ad, tarih, kategori, tutar. İlk hücresi "name" olan satır başlık sayılır.
// Hatalı tek bir satır bile varsa hiçbir taslak dönmez.
func ParseExpenses(r io.Reader) ([]store.ExpenseDraft, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation("Excel dosyası okunamadı")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("Excel dosyasında sheet bulunamadı")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperr.Validation("sheet okunamadı")
	}

	start := 0
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "name") {
		start = 1
	}

	drafts := make([]store.ExpenseDraft, 0, len(rows))
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		d, err := parseRow(row)
		if err != nil {
			return nil, apperr.Validation("satır %d: %s", i+1, err.Error())
		}
		drafts = append(drafts, d)
	}

	if len(drafts) == 0 {
		return nil, apperr.Validation("Excel dosyasında gider bulunamadı")
	}
	return drafts, nil
}

func parseRow(row []string) (store.ExpenseDraft, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	name, category := cell(0), cell(2)
	if name == "" || category == "" {
		return store.ExpenseDraft{}, fmt.Errorf("ad ve kategori zorunlu")
	}

	ts, err := parseDateCell(cell(1))
	if err != nil {
		return store.ExpenseDraft{}, err
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(cell(3), ",", "."), 64)
	if err != nil {
		return store.ExpenseDraft{}, fmt.Errorf("tutar geçersiz: %q", cell(3))
	}

	return store.ExpenseDraft{Name: name, Timestamp: ts, Category: category, Amount: amount}, nil
}

// Tarih hücresi metin (YYYY-MM-DD) ya da Excel seri numarası olabilir
func parseDateCell(v string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", v); err == nil {
		return d, nil
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		d, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("tarih formatı 'YYYY-MM-DD' olmalı: %q", v)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
