package expense

import (
	"fmt"
	"strings"
	"time"

	"butce-backend/internal/apperr"
	"butce-backend/internal/models"
	"butce-backend/internal/store"
)

const DateLayout = "2006-01-02"

type ExpenseResponse struct {
	ID        uint    `json:"id"`
	MonthID   *uint   `json:"month_id"`
	Name      string  `json:"name"`
	Timestamp string  `json:"timestamp"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
}

// ExpenseRequest hem ay gövdesindeki gider tanımı hem de kısmi gider
// güncellemesi için kullanılır. month_id kabul edilmez.
type ExpenseRequest struct {
	Name      *string  `json:"name"`
	Timestamp *string  `json:"timestamp"`
	Category  *string  `json:"category"`
	Amount    *float64 `json:"amount"`
}

func ToResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		MonthID:   e.MonthID,
		Name:      e.Name,
		Timestamp: e.Timestamp.Format(DateLayout),
		Category:  e.Category,
		Amount:    e.Amount,
	}
}

func ToResponses(rows []models.Expense) []ExpenseResponse {
	resp := make([]ExpenseResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, ToResponse(r))
	}
	return resp
}

// ParseDate "YYYY-MM-DD" formatındaki tarihi UTC olarak ayrıştırır.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperr.Validation("%s formatı 'YYYY-MM-DD' olmalı", field)
	}
	return d, nil
}

// Draft, ay oluşturma/güncelleme gövdesindeki bir gider tanımını doğrular.
// Tüm alanlar zorunludur.
func (r ExpenseRequest) Draft(index int) (store.ExpenseDraft, error) {
	if r.Name == nil || r.Timestamp == nil || r.Category == nil || r.Amount == nil {
		return store.ExpenseDraft{}, apperr.Validation("expenses[%d]: name, timestamp, category ve amount zorunlu", index)
	}
	ts, err := ParseDate(fmt.Sprintf("expenses[%d].timestamp", index), *r.Timestamp)
	if err != nil {
		return store.ExpenseDraft{}, err
	}
	return store.ExpenseDraft{
		Name:      *r.Name,
		Timestamp: ts,
		Category:  *r.Category,
		Amount:    *r.Amount,
	}, nil
}

// Input kısmi güncelleme için store girdisine çevirir.
func (r ExpenseRequest) Input() (store.ExpenseInput, error) {
	in := store.ExpenseInput{Name: r.Name, Category: r.Category, Amount: r.Amount}
	if r.Timestamp != nil {
		ts, err := ParseDate("timestamp", *r.Timestamp)
		if err != nil {
			return store.ExpenseInput{}, err
		}
		in.Timestamp = &ts
	}
	return in, nil
}

func Drafts(reqs []ExpenseRequest) ([]store.ExpenseDraft, error) {
	drafts := make([]store.ExpenseDraft, 0, len(reqs))
	for i, r := range reqs {
		d, err := r.Draft(i)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}
