package postgres

import (
	"errors"
	"fmt"

	"github.com/VitaminP8/storyline/internal/config"
	"github.com/VitaminP8/storyline/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Open подключается к PostgreSQL. Пул соединений один на процесс:
// создается в main и передается в хранилища
func Open(cfg config.Database) (*gorm.DB, error) {
	db, err := gorm.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("successfully connected to the database")
	return db, nil
}

// Migrate создает/дополняет таблицы по моделям
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(models.All()...).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close закрывает соединение с базой данных
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	err := db.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %w", err)
	}

	log.Info().Msg("database connection closed")
	return nil
}

// uniqueViolationCode - SQLSTATE unique_violation
const uniqueViolationCode = "23505"

// uniqueViolations распознают нарушение уникального индекса по коду ошибки драйвера.
// Тесты дописывают сюда проверку для sqlite
var uniqueViolations = []func(error) bool{isPQUniqueViolation}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	for _, match := range uniqueViolations {
		if match(err) {
			return true
		}
	}
	return false
}

func isPQUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
