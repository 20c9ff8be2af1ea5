package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"butce-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name *string `json:"name"`
}

func TestParamID(t *testing.T) {
	tests := []struct {
		param string
		want  uint
		found bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, test := range tests {
		t.Run(test.param, func(st *testing.T) {
			var (
				got uint
				err error
			)
			app := fiber.New()
			app.Get("/items/:id", func(c *fiber.Ctx) error {
				got, err = ParamID(c, "id", "kayıt bulunamadı")
				return nil
			})

			_, terr := app.Test(httptest.NewRequest(http.MethodGet, "/items/"+test.param, nil), -1)
			require.NoError(st, terr)
			if test.found {
				assert.NoError(st, err)
				assert.Equal(st, test.want, got)
				return
			}
			assert.True(st, apperr.IsNotFound(err))
			assert.Contains(st, err.Error(), "kayıt bulunamadı")
		})
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
		set     bool
	}{
		{"Empty", "", false, false},
		{"Valid", `{"name":"Kira"}`, false, true},
		{"Malformed", `{"name":`, true, false},
		{"WrongType", `{"name":3}`, true, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(st *testing.T) {
			var (
				body payload
				err  error
			)
			app := fiber.New()
			app.Post("/", func(c *fiber.Ctx) error {
				err = ParseBody(c, &body)
				return nil
			})

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(test.body))
			req.Header.Set("Content-Type", "application/json")
			_, terr := app.Test(req, -1)
			require.NoError(st, terr)

			if test.invalid {
				assert.True(st, apperr.IsValidation(err))
				return
			}
			assert.NoError(st, err)
			assert.Equal(st, test.set, body.Name != nil)
		})
	}
}
