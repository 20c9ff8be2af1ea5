package store

import (
	"testing"

	"butce-backend/internal/apperr"
	"butce-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateAndGet(t *testing.T) {
	s := NewCategoryStore(newTestDB(t))

	cat, err := s.Create(ctx, CategoryInput{Name: ptr("Market"), Amount: ptr(1500), CatType: ptr("expense")})
	require.NoError(t, err)
	assert.NotZero(t, cat.ID)

	got, err := s.Get(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Market", got.Name)
	assert.Equal(t, 1500, got.Amount)
	assert.Equal(t, "expense", got.CatType)
}

func TestCategoryCreateValidation(t *testing.T) {
	s := NewCategoryStore(newTestDB(t))

	tests := []struct {
		name string
		in   CategoryInput
	}{
		{"MissingName", CategoryInput{Amount: ptr(1), CatType: ptr("income")}},
		{"MissingAmount", CategoryInput{Name: ptr("Maaş"), CatType: ptr("income")}},
		{"MissingType", CategoryInput{Name: ptr("Maaş"), Amount: ptr(1)}},
		{"BlankName", CategoryInput{Name: ptr("  "), Amount: ptr(1), CatType: ptr("income")}},
		{"BlankType", CategoryInput{Name: ptr("Maaş"), Amount: ptr(1), CatType: ptr("")}},
	}

	for _, test := range tests {
		t.Run(test.name, func(st *testing.T) {
			_, err := s.Create(ctx, test.in)
			assert.True(st, apperr.IsValidation(err), "got %v", err)
		})
	}
}

func TestCategoryZeroAmountIsAccepted(t *testing.T) {
	s := NewCategoryStore(newTestDB(t))

	cat, err := s.Create(ctx, CategoryInput{Name: ptr("Hediye"), Amount: ptr(0), CatType: ptr("income")})
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Amount)
}

func TestCategoryDuplicateName(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryStore(db)

	first, err := s.Create(ctx, CategoryInput{Name: ptr("Kira"), Amount: ptr(9000), CatType: ptr("expense")})
	require.NoError(t, err)

	_, err = s.Create(ctx, CategoryInput{Name: ptr("Kira"), Amount: ptr(1), CatType: ptr("income")})
	assert.True(t, apperr.IsConflict(err), "got %v", err)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 9000, got.Amount)
	assert.Equal(t, "expense", got.CatType)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, int64(1), auditCount(t, db, models.EntityCategory, models.AuditActionCreate))
}

func TestCategoryPartialUpdate(t *testing.T) {
	s := NewCategoryStore(newTestDB(t))
	cat, err := s.Create(ctx, CategoryInput{Name: ptr("Ulaşım"), Amount: ptr(800), CatType: ptr("expense")})
	require.NoError(t, err)

	// Sadece amount gönderildi, sıfır da geçerli bir değer
	updated, err := s.Update(ctx, cat.ID, CategoryInput{Amount: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Amount)
	assert.Equal(t, "Ulaşım", updated.Name)
	assert.Equal(t, "expense", updated.CatType)

	updated, err = s.Update(ctx, cat.ID, CategoryInput{Name: ptr("Yol"), CatType: ptr("transport")})
	require.NoError(t, err)

	got, err := s.Get(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Name, got.Name)
	assert.Equal(t, "Yol", got.Name)
	assert.Equal(t, "transport", got.CatType)
	assert.Equal(t, 0, got.Amount)

	_, err = s.Update(ctx, cat.ID, CategoryInput{Name: ptr("")})
	assert.True(t, apperr.IsValidation(err))
}

func TestCategoryRenameConflict(t *testing.T) {
	s := NewCategoryStore(newTestDB(t))
	_, err := s.Create(ctx, CategoryInput{Name: ptr("Fatura"), Amount: ptr(1), CatType: ptr("expense")})
	require.NoError(t, err)
	other, err := s.Create(ctx, CategoryInput{Name: ptr("Eğlence"), Amount: ptr(2), CatType: ptr("expense")})
	require.NoError(t, err)

	_, err = s.Update(ctx, other.ID, CategoryInput{Name: ptr("Fatura")})
	assert.True(t, apperr.IsConflict(err), "got %v", err)

	// Aynı isimle kendini güncellemek çakışma değildir
	_, err = s.Update(ctx, other.ID, CategoryInput{Name: ptr("Eğlence"), Amount: ptr(5)})
	assert.NoError(t, err)
}

func TestCategoryNotFound(t *testing.T) {
	s := NewCategoryStore(newTestDB(t))

	_, err := s.Get(ctx, 42)
	assert.True(t, apperr.IsNotFound(err))

	_, err = s.Update(ctx, 42, CategoryInput{Name: ptr("x")})
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(s.Delete(ctx, 42)))
}

func TestCategoryDelete(t *testing.T) {
	db := newTestDB(t)
	s := NewCategoryStore(db)
	cat, err := s.Create(ctx, CategoryInput{Name: ptr("Spor"), Amount: ptr(300), CatType: ptr("expense")})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, cat.ID))

	_, err = s.Get(ctx, cat.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(s.Delete(ctx, cat.ID)))
	assert.Equal(t, int64(1), auditCount(t, db, models.EntityCategory, models.AuditActionDelete))
}
