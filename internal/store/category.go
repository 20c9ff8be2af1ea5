package store

import (
	"context"
	"errors"
	"fmt"

	"butce-backend/internal/apperr"
	"butce-backend/internal/audit"
	"butce-backend/internal/models"

	"gorm.io/gorm"
)

// CategoryInput hem oluşturma hem kısmi güncelleme için kullanılır.
// nil alan "gönderilmedi" demektir; sıfır değer geçerli bir değerdir.
type CategoryInput struct {
	Name    *string
	Amount  *int
	CatType *string
}

type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.WithContext(ctx).Order("id asc").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("kategoriler listelenemedi: %w", err)
	}
	return cats, nil
}

func (s *CategoryStore) Get(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := s.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, notFoundOr(err, "kategori bulunamadı")
	}
	return &cat, nil
}

func (s *CategoryStore) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	switch {
	case in.Name == nil:
		return nil, apperr.Validation("kategori adı zorunlu")
	case in.Amount == nil:
		return nil, apperr.Validation("kategori tutarı zorunlu")
	case in.CatType == nil:
		return nil, apperr.Validation("kategori tipi zorunlu")
	}

	name, err := requiredText("kategori adı", *in.Name)
	if err != nil {
		return nil, err
	}
	catType, err := requiredText("kategori tipi", *in.CatType)
	if err != nil {
		return nil, err
	}

	cat := models.Category{Name: name, Amount: *in.Amount, CatType: catType}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, name, 0); err != nil {
			return err
		}
		if err := tx.Create(&cat).Error; err != nil {
			return duplicateOr(err, name)
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  models.EntityCategory,
			EntityID:    cat.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Kategori eklendi: %s", cat.Name),
			After:       cat,
		})
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CategoryStore) Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	var cat models.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cat, id).Error; err != nil {
			return notFoundOr(err, "kategori bulunamadı")
		}
		before := cat

		if in.Name != nil {
			name, err := requiredText("kategori adı", *in.Name)
			if err != nil {
				return err
			}
			// İsim değişiyorsa benzersizlik tekrar kontrol edilir
			if name != cat.Name {
				if err := ensureUniqueName(tx, name, cat.ID); err != nil {
					return err
				}
			}
			cat.Name = name
		}
		if in.Amount != nil {
			cat.Amount = *in.Amount
		}
		if in.CatType != nil {
			catType, err := requiredText("kategori tipi", *in.CatType)
			if err != nil {
				return err
			}
			cat.CatType = catType
		}

		if err := tx.Save(&cat).Error; err != nil {
			return duplicateOr(err, cat.Name)
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  models.EntityCategory,
			EntityID:    cat.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Kategori güncellendi: %s", cat.Name),
			Before:      before,
			After:       cat,
		})
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			return notFoundOr(err, "kategori bulunamadı")
		}
		if err := tx.Delete(&cat).Error; err != nil {
			return fmt.Errorf("kategori silinemedi: %w", err)
		}
		return audit.WriteLog(tx, audit.LogOptions{
			EntityType:  models.EntityCategory,
			EntityID:    cat.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Kategori silindi: %s", cat.Name),
			Before:      cat,
		})
	})
}

func ensureUniqueName(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("%q isimli kategori zaten var", name)
	}
	return nil
}

// Eşzamanlı isteklerde ön kontrolü geçen ikinci kayıt unique index'e takılır
func duplicateOr(err error, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.KindConflict, err, fmt.Sprintf("%q isimli kategori zaten var", name))
	}
	return fmt.Errorf("kategori kaydedilemedi: %w", err)
}
