package server

import (
	"errors"

	"butce-backend/internal/apperr"
	"butce-backend/internal/audit"
	"butce-backend/internal/category"
	"butce-backend/internal/database"
	"butce-backend/internal/expense"
	"butce-backend/internal/logging"
	"butce-backend/internal/month"
	"butce-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Options struct {
	CORSOrigins string
}

// New tüm route'ları kayıtlı fiber uygulamasını oluşturur.
func New(db *gorm.DB, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logging.RequestLogger())

	categories := store.NewCategoryStore(db)
	months := store.NewMonthStore(db)
	expenses := store.NewExpenseStore(db)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := database.Ping(db); err != nil {
			log.Error().Err(err).Msg("health check başarısız")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Kategoriler
	registerCategoryRoutes(api, categories)

	// Aylar
	api.Get("/months", month.ListMonthsHandler(months))
	api.Post("/months", month.CreateMonthHandler(months))
	api.Get("/months/:id", month.GetMonthHandler(months))
	api.Put("/months/:id", month.UpdateMonthHandler(months))
	api.Delete("/months/:id", month.DeleteMonthHandler(months))
	api.Get("/months/:id/export", month.ExportMonthHandler(months))
	api.Post("/months/:id/import", month.ImportMonthHandler(months))

	// Giderler (yalnızca ay üzerinden)
	api.Get("/months/:id/expenses", expense.ListExpensesHandler(expenses))
	api.Get("/months/:id/expenses/:eid", expense.GetExpenseHandler(expenses))
	api.Put("/months/:id/expenses/:eid", expense.UpdateExpenseHandler(expenses))
	api.Delete("/months/:id/expenses/:eid", expense.DeleteExpenseHandler(expenses))

	// Audit logs
	api.Get("/audit-logs", audit.ListAuditLogsHandler(db))
	api.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler(db))

	// Eski (prefix'siz) kategori route'ları, geriye dönük uyumluluk için
	registerCategoryRoutes(app, categories)

	return app
}

func registerCategoryRoutes(r fiber.Router, s *store.CategoryStore) {
	r.Get("/categories", category.ListCategoriesHandler(s))
	r.Post("/categories", category.CreateCategoryHandler(s))
	r.Get("/categories/:id", category.GetCategoryHandler(s))
	r.Put("/categories/:id", category.UpdateCategoryHandler(s))
	r.Delete("/categories/:id", category.DeleteCategoryHandler(s))
}

// ErrorHandler uygulama hatalarını HTTP durum kodlarına çevirir.
// Bilinmeyen hatalar loglanır ve istemciye ayrıntı verilmez.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.Status(statusFor(appErr.Kind)).JSON(fiber.Map{
			"error": appErr.Message,
			"kind":  appErr.Kind,
		})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		body := fiber.Map{"error": fe.Message}
		if kind := kindFor(fe.Code); kind != "" {
			body["kind"] = kind
		}
		return c.Status(fe.Code).JSON(body)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Beklenmeyen hata")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Beklenmeyen sunucu hatası",
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func kindFor(code int) apperr.Kind {
	switch code {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperr.KindValidation
	case fiber.StatusNotFound:
		return apperr.KindNotFound
	case fiber.StatusConflict:
		return apperr.KindConflict
	}
	return ""
}
