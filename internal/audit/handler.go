package audit

import (
	"strconv"

	"butce-backend/internal/apperr"
	"butce-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	UndoOf      *uint              `json:"undo_of"`
	IsUndone    bool               `json:"is_undone"`
	UndoneAt    *string            `json:"undone_at"`
}

func toResponse(l models.AuditLog) AuditLogResponse {
	var undoneAt *string
	if l.UndoneAt != nil {
		formatted := l.UndoneAt.Format("2006-01-02 15:04:05")
		undoneAt = &formatted
	}
	return AuditLogResponse{
		ID:          l.ID,
		CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		Action:      l.Action,
		Description: l.Description,
		UndoOf:      l.UndoOf,
		IsUndone:    l.IsUndone,
		UndoneAt:    undoneAt,
	}
}

// GET /api/audit-logs?entity_type=month&entity_id=1&limit=50
func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := Filter{EntityType: c.Query("entity_type")}

		if s := c.Query("entity_id"); s != "" {
			id, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return apperr.Validation("entity_id geçersiz")
			}
			f.EntityID = uint(id)
		}
		if s := c.Query("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				return apperr.Validation("limit geçersiz")
			}
			f.Limit = n
		}

		logs, err := List(c.UserContext(), db, f)
		if err != nil {
			return err
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, toResponse(l))
		}
		return c.JSON(fiber.Map{"audit_logs": resp})
	}
}

// POST /api/audit-logs/:id/undo
func UndoAuditLogHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logID, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil || logID == 0 {
			return apperr.NotFound("log bulunamadı")
		}

		undo, err := UndoLog(c.UserContext(), db, uint(logID))
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"message":   "İşlem başarıyla geri alındı",
			"audit_log": toResponse(*undo),
		})
	}
}
