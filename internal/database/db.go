package database

import (
	"fmt"
	"strings"

	"butce-backend/internal/config"
	"butce-backend/internal/logging"
	"butce-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	var err error

	DB, err = Open(cfg.DatabaseDSN, logging.NewGormLogger(log.Logger, cfg.DBDebug))
	if err != nil {
		return fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	if err := Migrate(DB); err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}

	log.Info().Str("driver", DB.Dialector.Name()).Msg("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
	return nil
}

// Open, DSN'e göre postgres ya da sqlite sürücüsüyle bağlantı açar.
// Unique ihlalleri gorm.ErrDuplicatedKey olarak döner (TranslateError).
func Open(dsn string, gl logger.Interface) (*gorm.DB, error) {
	dialector, isSQLite, err := Dialector(dsn)
	if err != nil {
		return nil, err
	}
	if gl == nil {
		gl = logger.Discard
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gl,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if isSQLite {
		// sqlite tek yazıcı destekler; :memory: için tüm istekler aynı bağlantıyı görmeli
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Dialector bağlantı string'inden uygun gorm dialector'ünü seçer.
func Dialector(dsn string) (gorm.Dialector, bool, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.Open(dsn), false, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(dsn, "sqlite://"))), true, nil
	case dsn == ":memory:", strings.HasPrefix(dsn, "file:"):
		return sqlite.Open(sqliteDSN(dsn)), true, nil
	default:
		return nil, false, fmt.Errorf("desteklenmeyen veritabanı bağlantısı: %q", dsn)
	}
}

// sqlite'ta foreign key'ler bağlantı başına açılmalı, aksi halde cascade çalışmaz
func sqliteDSN(path string) string {
	if path == ":memory:" || path == "" {
		path = "file::memory:"
	}
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Month{},
		&models.Expense{},
		&models.AuditLog{},
	)
}

// Ping health check için veritabanına erişimi doğrular.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
