// Package request handler'ların ortak yol parametresi ve gövde ayrıştırmasını
// içerir.
package request

import (
	"strconv"

	"butce-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ParamID yol parametresini pozitif ID olarak okur. Sayısal olmayan ya da
// sıfır ID hiçbir kayda karşılık gelmez, bu yüzden not-found döner.
func ParamID(c *fiber.Ctx, name, notFound string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NotFound("%s", notFound)
	}
	return uint(id), nil
}

// ParseBody boş gövdeyi kabul eder; zorunlu alan kontrolü çağırana kalır.
func ParseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("geçersiz istek gövdesi")
	}
	return nil
}
