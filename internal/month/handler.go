package month

import (
	"fmt"
	"strings"

	"butce-backend/internal/apperr"
	"butce-backend/internal/expense"
	"butce-backend/internal/models"
	"butce-backend/internal/request"
	"butce-backend/internal/sheet"
	"butce-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type MonthResponse struct {
	ID        uint                      `json:"id"`
	Timestamp string                    `json:"timestamp"`
	Expenses  []expense.ExpenseResponse `json:"expenses"`
}

// MonthRequest POST ve PUT gövdesi. PUT'ta expenses mevcut giderlere eklenir.
type MonthRequest struct {
	Timestamp *string                  `json:"timestamp"`
	Expenses  []expense.ExpenseRequest `json:"expenses"`
}

func (r MonthRequest) input() (store.MonthInput, error) {
	var in store.MonthInput
	if r.Timestamp != nil {
		ts, err := expense.ParseDate("timestamp", *r.Timestamp)
		if err != nil {
			return in, err
		}
		in.Timestamp = &ts
	}

	drafts, err := expense.Drafts(r.Expenses)
	if err != nil {
		return in, err
	}
	in.Expenses = drafts
	return in, nil
}

func toResponse(m models.Month) MonthResponse {
	return MonthResponse{
		ID:        m.ID,
		Timestamp: m.Timestamp.Format(expense.DateLayout),
		Expenses:  expense.ToResponses(m.Expenses),
	}
}

// GET /api/months
func ListMonthsHandler(s *store.MonthStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		months, err := s.List(c.UserContext())
		if err != nil {
			return err
		}

		res := make([]MonthResponse, 0, len(months))
		for _, m := range months {
			res = append(res, toResponse(m))
		}
		return c.JSON(fiber.Map{"months": res})
	}
}

// POST /api/months
func CreateMonthHandler(s *store.MonthStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MonthRequest
		if err := request.ParseBody(c, &body); err != nil {
			return err
		}
		if body.Timestamp == nil {
			return apperr.Validation("timestamp zorunlu")
		}
		in, err := body.input()
		if err != nil {
			return err
		}

		m, err := s.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"month": toResponse(*m)})
	}
}

// GET /api/months/:id
func GetMonthHandler(s *store.MonthStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id", "ay bulunamadı")
		if err != nil {
			return err
		}

		m, err := s.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"month": toResponse(*m)})
	}
}

// PUT /api/months/:id
func UpdateMonthHandler(s *store.MonthStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id", "ay bulunamadı")
		if err != nil {
			return err
		}

		var body MonthRequest
		if err := request.ParseBody(c, &body); err != nil {
			return err
		}
		in, err := body.input()
		if err != nil {
			return err
		}

		m, err := s.Update(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"month": toResponse(*m)})
	}
}

// DELETE /api/months/:id  (giderleriyle birlikte)
func DeleteMonthHandler(s *store.MonthStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id", "ay bulunamadı")
		if err != nil {
			return err
		}

		if err := s.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"result": true})
	}
}

// GET /api/months/:id/export
func ExportMonthHandler(s *store.MonthStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id", "ay bulunamadı")
		if err != nil {
			return err
		}

		m, err := s.Get(c.UserContext(), id)
		if err != nil {
			return err
		}

		buf, err := sheet.Export(*m)
		if err != nil {
			return fmt.Errorf("excel dosyası oluşturulamadı: %w", err)
		}

		c.Set(fiber.HeaderContentType, sheet.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="giderler-%s.xlsx"`, sheet.SheetName(*m)))
		return c.Send(buf.Bytes())
	}
}

// POST /api/months/:id/import  (multipart, alan adı "file")
func ImportMonthHandler(s *store.MonthStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id", "ay bulunamadı")
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return apperr.Validation("dosya yüklenemedi")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return apperr.Validation("sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fmt.Errorf("dosya açılamadı: %w", err)
		}
		defer file.Close()

		drafts, err := sheet.ParseExpenses(file)
		if err != nil {
			return err
		}

		m, err := s.AppendExpenses(c.UserContext(), id, drafts, "Excel'den gider aktarıldı")
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"month": toResponse(*m), "imported": len(drafts)})
	}
}
