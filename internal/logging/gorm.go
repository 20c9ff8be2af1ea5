package logging

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger, gorm log çıktısını zerolog'a yönlendirir.
type GormLogger struct {
	Logger        zerolog.Logger
	SlowThreshold time.Duration
	Level         logger.LogLevel
}

// NewGormLogger debug açıkken her SQL sorgusunu info seviyesinde yazar;
// aksi halde yalnızca hatalar ve yavaş sorgular loglanır.
func NewGormLogger(l zerolog.Logger, debug bool) *GormLogger {
	lvl := logger.Warn
	if debug {
		lvl = logger.Info
	}
	return &GormLogger{Logger: l, SlowThreshold: 200 * time.Millisecond, Level: lvl}
}

func (g *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *g
	cp.Level = level
	return &cp
}

func (g *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if g.Level >= logger.Info {
		g.Logger.Info().Msgf(msg, args...)
	}
}

func (g *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.Level >= logger.Warn {
		g.Logger.Warn().Msgf(msg, args...)
	}
}

func (g *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if g.Level >= logger.Error {
		g.Logger.Error().Msgf(msg, args...)
	}
}

func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if g.Level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && g.Level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		s, r := fc()
		g.Logger.Error().Err(err).Int64("rows", r).Dur("duration_ms", elapsed).Msg(s)
	case g.SlowThreshold != 0 && elapsed > g.SlowThreshold && g.Level >= logger.Warn:
		s, r := fc()
		g.Logger.Warn().Int64("rows", r).Dur("duration_ms", elapsed).Msg("slow query: " + s)
	case g.Level >= logger.Info:
		s, r := fc()
		verb := strings.ToLower(strings.SplitN(s, " ", 2)[0])
		g.Logger.Info().Int64("rows", r).Dur("duration_ms", elapsed).Str("verb", verb).Msg(s)
	}
}
