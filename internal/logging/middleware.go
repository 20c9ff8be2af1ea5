package logging

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger her istek için tek bir log satırı yazar. Zincirden dönen
// hata burada app'in ErrorHandler'ına verilir ki loglanan status doğru olsun.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				log.Error().Err(herr).AnErr("cause", err).Str("path", c.Path()).Msg("error handler başarısız")
				if serr := c.SendStatus(fiber.StatusInternalServerError); serr != nil {
					log.Error().Err(serr).Str("path", c.Path()).Msg("500 yanıtı gönderilemedi")
				}
			}
		}

		status := c.Response().StatusCode()
		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}

		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("request")
		return nil
	}
}
