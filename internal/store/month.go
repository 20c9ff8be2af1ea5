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

// ExpenseDraft, bir ay oluşturulurken ya da güncellenirken eklenecek giderin
// ayrıştırılmış halidir. Sahip ay bilgisi bağlamdan gelir.
type ExpenseDraft struct {
	Name      string
	Timestamp time.Time
	Category  string
	Amount    float64
}

type MonthInput struct {
	Timestamp *time.Time
	Expenses  []ExpenseDraft
}

type MonthStore struct {
	db *gorm.DB
}

func NewMonthStore(db *gorm.DB) *MonthStore {
	return &MonthStore{db: db}
}

func (s *MonthStore) List(ctx context.Context) ([]models.Month, error) {
	var months []models.Month
	if err := s.db.WithContext(ctx).Preload("Expenses", orderExpenses).Order("id asc").Find(&months).Error; err != nil {
		return nil, fmt.Errorf("aylar listelenemedi: %w", err)
	}
	return months, nil
}

func (s *MonthStore) Get(ctx context.Context, id uint) (*models.Month, error) {
	return loadMonth(s.db.WithContext(ctx), id)
}

// Create ayı ve tüm giderlerini tek transaction'da yazar. Ay önce kaydedilir,
// giderler onun ID'siyle bağlanır; herhangi bir hata hiçbir şey bırakmaz.
func (s *MonthStore) Create(ctx context.Context, in MonthInput) (*models.Month, error) {
	if in.Timestamp == nil {
		return nil, apperr.Validation("timestamp zorunlu")
	}
	expenses, err := materialize(in.Expenses, nil)
	if err != nil {
		return nil, err
	}

	var month *models.Month
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := models.Month{Timestamp: *in.Timestamp}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("ay oluşturulamadı: %w", err)
		}
		if len(expenses) > 0 {
			for i := range expenses {
				expenses[i].MonthID = &m.ID
			}
			if err := tx.Create(&expenses).Error; err != nil {
				return fmt.Errorf("giderler kaydedilemedi: %w", err)
			}
		}

		var err error
		if month, err = loadMonth(tx, m.ID); err != nil {
			return err
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  models.EntityMonth,
			EntityID:    month.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Ay eklendi: %s (%d gider)", month.Timestamp.Format("2006-01"), len(month.Expenses)),
			After:       month,
		})
	})
	if err != nil {
		return nil, err
	}
	return month, nil
}

// Update tarihi değiştirebilir ve yeni giderler ekler; mevcut giderlere dokunmaz.
func (s *MonthStore) Update(ctx context.Context, id uint, in MonthInput) (*models.Month, error) {
	return s.update(ctx, id, in, "Ay güncellendi")
}

// AppendExpenses yalnızca gider ekleyen Update'tir (ör. xlsx içe aktarma).
func (s *MonthStore) AppendExpenses(ctx context.Context, id uint, drafts []ExpenseDraft, source string) (*models.Month, error) {
	return s.update(ctx, id, MonthInput{Expenses: drafts}, source)
}

func (s *MonthStore) update(ctx context.Context, id uint, in MonthInput, description string) (*models.Month, error) {
	expenses, err := materialize(in.Expenses, &id)
	if err != nil {
		return nil, err
	}

	var month *models.Month
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		before, err := loadMonth(tx, id)
		if err != nil {
			return err
		}

		if in.Timestamp != nil {
			if err := tx.Model(&models.Month{}).Where("id = ?", id).Update("period", *in.Timestamp).Error; err != nil {
				return fmt.Errorf("ay güncellenemedi: %w", err)
			}
		}
		if len(expenses) > 0 {
			if err := tx.Create(&expenses).Error; err != nil {
				return fmt.Errorf("giderler kaydedilemedi: %w", err)
			}
		}

		if month, err = loadMonth(tx, id); err != nil {
			return err
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  models.EntityMonth,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("%s: %s (+%d gider)", description, month.Timestamp.Format("2006-01"), len(expenses)),
			Before:      before,
			After:       month,
		})
	})
	if err != nil {
		return nil, err
	}
	return month, nil
}

// Delete ayı ve sahip olduğu tüm giderleri birlikte siler.
func (s *MonthStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		month, err := loadMonth(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("month_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
			return fmt.Errorf("giderler silinemedi: %w", err)
		}
		if err := tx.Delete(&models.Month{}, id).Error; err != nil {
			return fmt.Errorf("ay silinemedi: %w", err)
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  models.EntityMonth,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Ay silindi: %s (%d gider)", month.Timestamp.Format("2006-01"), len(month.Expenses)),
			Before:      month,
		})
	})
}

func loadMonth(db *gorm.DB, id uint) (*models.Month, error) {
	var month models.Month
	if err := db.Preload("Expenses", orderExpenses).First(&month, id).Error; err != nil {
		return nil, notFoundOr(err, "ay bulunamadı")
	}
	return &month, nil
}

// materialize taslakları doğrulayıp gider modellerine çevirir.
func materialize(drafts []ExpenseDraft, monthID *uint) ([]models.Expense, error) {
	out := make([]models.Expense, 0, len(drafts))
	for i, d := range drafts {
		name, err := requiredText("gider adı", d.Name)
		if err != nil {
			return nil, apperr.Validation("expenses[%d]: gider adı boş olamaz", i)
		}
		category, err := requiredText("gider kategorisi", d.Category)
		if err != nil {
			return nil, apperr.Validation("expenses[%d]: gider kategorisi boş olamaz", i)
		}
		if d.Timestamp.IsZero() {
			return nil, apperr.Validation("expenses[%d]: timestamp zorunlu", i)
		}
		out = append(out, models.Expense{
			MonthID:   monthID,
			Name:      name,
			Timestamp: d.Timestamp,
			Category:  category,
			Amount:    d.Amount,
		})
	}
	return out, nil
}
