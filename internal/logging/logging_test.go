package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSetupWriterJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "warn", "json"))

	log.Info().Msg("gizli")
	log.Warn().Str("k", "v").Msg("görünür")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "görünür", line["message"])
	assert.Equal(t, "v", line["k"])
	assert.NotContains(t, buf.String(), "gizli")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, SetupWriter(&bytes.Buffer{}, "loud", "json"))
}

func TestGormLoggerTrace(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	gl := NewGormLogger(zerolog.New(&buf), true)
	sql := func() (string, int64) { return "SELECT * FROM categories", 2 }

	// Varsayılan info seviyesinde de SQL görünmeli
	gl.Trace(context.Background(), time.Now(), sql, nil)
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `"verb":"select"`)
	assert.Contains(t, buf.String(), `"rows":2`)

	buf.Reset()
	gl.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.NotContains(t, buf.String(), `"level":"error"`)

	buf.Reset()
	gl.Trace(context.Background(), time.Now(), sql, errors.New("bağlantı koptu"))
	assert.Contains(t, buf.String(), `"level":"error"`)

	buf.Reset()
	NewGormLogger(zerolog.New(&buf), false).Trace(context.Background(), time.Now(), sql, nil)
	assert.Empty(t, buf.String())

	buf.Reset()
	gl.LogMode(logger.Silent).Trace(context.Background(), time.Now(), sql, errors.New("x"))
	assert.Empty(t, buf.String())
}

func TestRequestLoggerReportsErrorHandlerFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(*fiber.Ctx, error) error { return errors.New("yazılamadı") },
	})
	app.Use(RequestLogger())
	app.Get("/boom", func(*fiber.Ctx) error { return errors.New("patladı") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, buf.String(), `"error":"yazılamadı"`)
	assert.Contains(t, buf.String(), `"cause":"patladı"`)
	assert.Contains(t, buf.String(), `"status":500`)
}
