package store

import (
	"context"
	"fmt"
	"time"

	"butce-backend/internal/apperr"
	"butce-backend/internal/audit"
	"butce-backend/internal/models"

	"gorm.io/gorm"
)

// ExpenseInput kısmi gider güncellemesi. Sahip ay değiştirilemez.
type ExpenseInput struct {
	Name      *string
	Timestamp *time.Time
	Category  *string
	Amount    *float64
}

// ExpenseStore giderleri her zaman sahibi olan ay üzerinden çözer: yoldaki ay
// giderin gerçek sahibi değilse gider bulunamadı sayılır.
type ExpenseStore struct {
	db *gorm.DB
}

func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

func (s *ExpenseStore) List(ctx context.Context, monthID uint) ([]models.Expense, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Month{}).Where("id = ?", monthID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("ay bulunamadı")
	}

	var rows []models.Expense
	if err := orderExpenses(db.Where("month_id = ?", monthID)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("giderler listelenemedi: %w", err)
	}
	return rows, nil
}

func (s *ExpenseStore) Get(ctx context.Context, monthID, id uint) (*models.Expense, error) {
	return loadExpense(s.db.WithContext(ctx), monthID, id)
}

func (s *ExpenseStore) Update(ctx context.Context, monthID, id uint, in ExpenseInput) (*models.Expense, error) {
	var exp *models.Expense

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if exp, err = loadExpense(tx, monthID, id); err != nil {
			return err
		}
		before := *exp

		if in.Name != nil {
			if exp.Name, err = requiredText("gider adı", *in.Name); err != nil {
				return err
			}
		}
		if in.Timestamp != nil {
			exp.Timestamp = *in.Timestamp
		}
		if in.Category != nil {
			if exp.Category, err = requiredText("gider kategorisi", *in.Category); err != nil {
				return err
			}
		}
		if in.Amount != nil {
			exp.Amount = *in.Amount
		}

		if err := tx.Save(exp).Error; err != nil {
			return fmt.Errorf("gider güncellenemedi: %w", err)
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  models.EntityExpense,
			EntityID:    exp.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Gider güncellendi: %s - %.2f", exp.Name, exp.Amount),
			Before:      before,
			After:       exp,
		})
	})
	if err != nil {
		return nil, err
	}
	return exp, nil
}

// Delete yalnızca bu gideri siler; ayın diğer giderleri etkilenmez.
func (s *ExpenseStore) Delete(ctx context.Context, monthID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exp, err := loadExpense(tx, monthID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Expense{}, exp.ID).Error; err != nil {
			return fmt.Errorf("gider silinemedi: %w", err)
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  models.EntityExpense,
			EntityID:    exp.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Gider silindi: %s - %.2f", exp.Name, exp.Amount),
			Before:      exp,
		})
	})
}

func loadExpense(db *gorm.DB, monthID, id uint) (*models.Expense, error) {
	var exp models.Expense
	if err := db.Where("month_id = ?", monthID).First(&exp, id).Error; err != nil {
		return nil, notFoundOr(err, "gider bulunamadı")
	}
	return &exp, nil
}
