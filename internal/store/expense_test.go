package store

import (
	"testing"

	"butce-backend/internal/apperr"
	"butce-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMonth(t *testing.T, s *MonthStore, ts string, drafts []ExpenseDraft) *models.Month {
	t.Helper()
	m, err := s.Create(ctx, MonthInput{Timestamp: ptr(day(ts)), Expenses: drafts})
	require.NoError(t, err)
	return m
}

func TestExpensePartialUpdate(t *testing.T) {
	db := newTestDB(t)
	month := seedMonth(t, NewMonthStore(db), "2024-01-01", januaryDrafts())
	s := NewExpenseStore(db)
	coffee := month.Expenses[1]

	updated, err := s.Update(ctx, month.ID, coffee.ID, ExpenseInput{Amount: ptr(0.0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Amount)
	assert.Equal(t, "Coffee", updated.Name)
	assert.Equal(t, "Food", updated.Category)

	updated, err = s.Update(ctx, month.ID, coffee.ID, ExpenseInput{
		Name:      ptr("Espresso"),
		Timestamp: ptr(day("2024-01-10")),
		Category:  ptr("Cafe"),
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, month.ID, coffee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Espresso", got.Name)
	assert.Equal(t, "Cafe", got.Category)
	assert.Equal(t, "2024-01-10", got.Timestamp.Format("2006-01-02"))
	assert.Equal(t, updated.Amount, got.Amount)
	require.NotNil(t, got.MonthID)
	assert.Equal(t, month.ID, *got.MonthID)

	_, err = s.Update(ctx, month.ID, coffee.ID, ExpenseInput{Category: ptr(" ")})
	assert.True(t, apperr.IsValidation(err))
}

func TestExpenseOwnershipIsChecked(t *testing.T) {
	db := newTestDB(t)
	months := NewMonthStore(db)
	jan := seedMonth(t, months, "2024-01-01", januaryDrafts())
	feb := seedMonth(t, months, "2024-02-01", nil)
	s := NewExpenseStore(db)
	rent := jan.Expenses[0]

	_, err := s.Get(ctx, feb.ID, rent.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = s.Update(ctx, feb.ID, rent.ID, ExpenseInput{Name: ptr("Hack")})
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(s.Delete(ctx, feb.ID, rent.ID)))

	got, err := s.Get(ctx, jan.ID, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rent", got.Name)
}

func TestExpenseDeleteKeepsSiblings(t *testing.T) {
	db := newTestDB(t)
	months := NewMonthStore(db)
	month := seedMonth(t, months, "2024-01-01", januaryDrafts())
	s := NewExpenseStore(db)

	require.NoError(t, s.Delete(ctx, month.ID, month.Expenses[0].ID))

	_, err := s.Get(ctx, month.ID, month.Expenses[0].ID)
	assert.True(t, apperr.IsNotFound(err))

	rest, err := s.List(ctx, month.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Coffee"}, names(rest))

	m, err := months.Get(ctx, month.ID)
	require.NoError(t, err)
	assert.Len(t, m.Expenses, 1)
}

func TestExpenseListUnknownMonth(t *testing.T) {
	s := NewExpenseStore(newTestDB(t))
	_, err := s.List(ctx, 3)
	assert.True(t, apperr.IsNotFound(err))
}
