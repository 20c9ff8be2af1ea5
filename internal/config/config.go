package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/alecthomas/kingpin.v2"
)

const defaultDSN = "sqlite://budget.db"

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
	LogLevel    string
	LogFormat   string // "console" veya "json"
	DBDebug     bool   // SQL sorgularını info seviyesinde logla
}

// Load, komut satırı argümanlarını ve environment değişkenlerini okur.
// Çalışma dizininde .env dosyası varsa önce o yüklenir.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	app := kingpin.New("butce-backend", "Kişisel bütçe API sunucusu")
	app.Flag("port", "HTTP port").Short('p').Envar("HTTP_PORT").Default("8080").StringVar(&cfg.HTTPPort)
	app.Flag("database", "Veritabanı bağlantısı (postgres://..., host=..., sqlite://dosya.db)").
		Short('d').Envar("DATABASE_DSN").Default(defaultDSN).StringVar(&cfg.DatabaseDSN)
	app.Flag("cors-origins", "İzin verilen origin'ler (virgülle ayrılmış)").
		Envar("CORS_ALLOWED_ORIGINS").Default("*").StringVar(&cfg.CORSOrigins)
	app.Flag("log-level", "Log seviyesi (trace, debug, info, warn, error)").
		Envar("LOG_LEVEL").Default("info").StringVar(&cfg.LogLevel)
	app.Flag("log-format", "Log formatı (console, json)").
		Envar("LOG_FORMAT").Default("console").EnumVar(&cfg.LogFormat, "console", "json")
	app.Flag("db-debug", "SQL sorgularını logla").Short('v').Envar("DB_DEBUG").BoolVar(&cfg.DBDebug)

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return nil, err
	}
	cfg.CORSOrigins = normalizeOrigins(cfg.CORSOrigins)

	return cfg, nil
}

// CORS origins'i virgülle ayrılmış string'den temizlenmiş hale getir
func normalizeOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
