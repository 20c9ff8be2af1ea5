package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"butce-backend/internal/apperr"
	"butce-backend/internal/models"

	"gorm.io/gorm"
)

type LogOptions struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog audit kaydını verilen transaction içinde yazar; kayıt yazılamazsa
// işlemin tamamı geri alınır.
func WriteLog(tx *gorm.DB, opts LogOptions) error {
	beforeStr, err := snapshot(opts.Before)
	if err != nil {
		return err
	}
	afterStr, err := snapshot(opts.After)
	if err != nil {
		return err
	}

	entry := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}

func snapshot(v any) (string, error) {
	if v == nil {
		return "null", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("audit snapshot oluşturulamadı: %w", err)
	}
	return string(b), nil
}

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

type Filter struct {
	EntityType string
	EntityID   uint
	Limit      int
}

// List en yeni kayıtlar önce gelecek şekilde audit loglarını döner.
func List(ctx context.Context, db *gorm.DB, f Filter) ([]models.AuditLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	dbq := db.WithContext(ctx).Model(&models.AuditLog{})
	if f.EntityType != "" {
		dbq = dbq.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != 0 {
		dbq = dbq.Where("entity_id = ?", f.EntityID)
	}

	var logs []models.AuditLog
	if err := dbq.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("loglar listelenemedi: %w", err)
	}
	return logs, nil
}

// UndoLog bir audit kaydındaki değişikliği geri alır ve oluşan undo kaydını döner.
func UndoLog(ctx context.Context, db *gorm.DB, logID uint) (*models.AuditLog, error) {
	var undoLog models.AuditLog

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.AuditLog
		if err := tx.First(&entry, logID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("log bulunamadı")
			}
			return err
		}

		if entry.Action == models.AuditActionUndo {
			return apperr.Validation("geri alma kaydı tekrar geri alınamaz")
		}
		if entry.IsUndone {
			return apperr.Conflict("bu işlem zaten geri alınmış")
		}

		entityID := entry.EntityID
		var err error
		switch entry.Action {
		case models.AuditActionCreate:
			err = deleteEntity(tx, entry.EntityType, entry.EntityID)
		case models.AuditActionUpdate:
			err = restoreEntity(tx, entry.EntityType, entry.EntityID, entry.BeforeData, entry.AfterData)
		case models.AuditActionDelete:
			entityID, err = recreateEntity(tx, entry.EntityType, entry.BeforeData)
		default:
			err = apperr.Validation("bu işlem türü geri alınamaz")
		}
		if err != nil {
			return err
		}

		now := time.Now()
		entry.IsUndone = true
		entry.UndoneAt = &now
		if err := tx.Save(&entry).Error; err != nil {
			return fmt.Errorf("log güncellenemedi: %w", err)
		}

		undoLog = models.AuditLog{
			EntityType:  entry.EntityType,
			EntityID:    entityID,
			Action:      models.AuditActionUndo,
			Description: fmt.Sprintf("Geri alındı: %s", entry.Description),
			BeforeData:  entry.AfterData,
			AfterData:   entry.BeforeData,
			UndoOf:      &entry.ID,
		}
		if err := tx.Create(&undoLog).Error; err != nil {
			return fmt.Errorf("undo log kaydedilemedi: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &undoLog, nil
}

// deleteEntity - create işlemini geri almak için entity'yi sil
func deleteEntity(tx *gorm.DB, entityType string, entityID uint) error {
	var res *gorm.DB
	switch entityType {
	case models.EntityCategory:
		res = tx.Delete(&models.Category{}, entityID)
	case models.EntityMonth:
		if err := tx.Where("month_id = ?", entityID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		res = tx.Delete(&models.Month{}, entityID)
	case models.EntityExpense:
		res = tx.Delete(&models.Expense{}, entityID)
	default:
		return apperr.Validation("bilinmeyen entity tipi: %s", entityType)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("kayıt artık mevcut değil")
	}
	return nil
}

// restoreEntity - update işlemini geri almak için önceki hali yükle.
// Ay için yalnızca o update'in eklediği giderler (after - before) silinir.
func restoreEntity(tx *gorm.DB, entityType string, entityID uint, dataJSON, afterJSON string) error {
	var res *gorm.DB

	switch entityType {
	case models.EntityCategory:
		var cat models.Category
		if err := json.Unmarshal([]byte(dataJSON), &cat); err != nil {
			return err
		}
		var clash int64
		if err := tx.Model(&models.Category{}).Where("name = ? AND id <> ?", cat.Name, entityID).Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return apperr.Conflict("%q isimli başka bir kategori var", cat.Name)
		}
		res = tx.Model(&models.Category{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":     cat.Name,
			"amount":   cat.Amount,
			"cat_type": cat.CatType,
		})

	case models.EntityExpense:
		var exp models.Expense
		if err := json.Unmarshal([]byte(dataJSON), &exp); err != nil {
			return err
		}
		res = tx.Model(&models.Expense{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":     exp.Name,
			"spent_on": exp.Timestamp,
			"category": exp.Category,
			"amount":   exp.Amount,
		})

	case models.EntityMonth:
		var month models.Month
		if err := json.Unmarshal([]byte(dataJSON), &month); err != nil {
			return err
		}
		var after models.Month
		if afterJSON != "" {
			if err := json.Unmarshal([]byte(afterJSON), &after); err != nil {
				return err
			}
		}
		res = tx.Model(&models.Month{}).Where("id = ?", entityID).Update("period", month.Timestamp)
		if res.Error == nil && res.RowsAffected > 0 {
			if added := appendedExpenseIDs(month, after); len(added) > 0 {
				if err := tx.Where("month_id = ? AND id IN ?", entityID, added).Delete(&models.Expense{}).Error; err != nil {
					return err
				}
			}
		}

	default:
		return apperr.Validation("bilinmeyen entity tipi: %s", entityType)
	}

	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return apperr.Wrap(apperr.KindConflict, res.Error, "kayıt eski haline getirilemedi")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("kayıt artık mevcut değil")
	}
	return nil
}

// appendedExpenseIDs after snapshot'ında olup before'da olmayan giderler
func appendedExpenseIDs(before, after models.Month) []uint {
	existed := make(map[uint]bool, len(before.Expenses))
	for _, e := range before.Expenses {
		existed[e.ID] = true
	}
	var added []uint
	for _, e := range after.Expenses {
		if !existed[e.ID] {
			added = append(added, e.ID)
		}
	}
	return added
}

// recreateEntity - silinen entity'yi yeni ID ile geri oluştur
func recreateEntity(tx *gorm.DB, entityType string, dataJSON string) (uint, error) {
	switch entityType {
	case models.EntityCategory:
		var cat models.Category
		if err := json.Unmarshal([]byte(dataJSON), &cat); err != nil {
			return 0, err
		}
		cat.ID = 0
		if err := tx.Create(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return 0, apperr.Wrap(apperr.KindConflict, err, fmt.Sprintf("%q isimli kategori zaten var", cat.Name))
			}
			return 0, err
		}
		return cat.ID, nil

	case models.EntityExpense:
		var exp models.Expense
		if err := json.Unmarshal([]byte(dataJSON), &exp); err != nil {
			return 0, err
		}
		if exp.MonthID != nil {
			var count int64
			if err := tx.Model(&models.Month{}).Where("id = ?", *exp.MonthID).Count(&count).Error; err != nil {
				return 0, err
			}
			if count == 0 {
				return 0, apperr.NotFound("giderin ait olduğu ay bulunamadı")
			}
		}
		exp.ID = 0
		if err := tx.Create(&exp).Error; err != nil {
			return 0, err
		}
		return exp.ID, nil

	case models.EntityMonth:
		var month models.Month
		if err := json.Unmarshal([]byte(dataJSON), &month); err != nil {
			return 0, err
		}
		// Ay giderleriyle birlikte yeniden oluşturulur
		month.ID = 0
		for i := range month.Expenses {
			month.Expenses[i].ID = 0
			month.Expenses[i].MonthID = nil
		}
		if err := tx.Create(&month).Error; err != nil {
			return 0, err
		}
		return month.ID, nil

	default:
		return 0, apperr.Validation("bilinmeyen entity tipi: %s", entityType)
	}
}
