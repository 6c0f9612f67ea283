package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

var (
	// ErrDialect возвращается при невозможности выбрать диалект goose
	ErrDialect = errors.New("migrator: failed to set dialect")

	// ErrApply возвращается при ошибке применения миграций
	ErrApply = errors.New("migrator: failed to apply migrations")
)

// Logger интерфейс для логирования миграций
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Migrator применяет встроенные SQL миграции через goose
type Migrator struct {
	fsys   fs.FS
	logger Logger
}

// New создаёт мигратор поверх файловой системы с *.sql файлами
func New(fsys fs.FS, logger Logger) *Migrator {
	return &Migrator{fsys: fsys, logger: logger}
}

// Up применяет все непримененные миграции
func (m *Migrator) Up(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(m.fsys)
	goose.SetLogger(&gooseLogger{logger: m.logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: %v", ErrDialect, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("%w: read version: %v", ErrApply, err)
	}

	m.logger.Info("Migrations applied, schema version %d", version)
	return nil
}

// gooseLogger перенаправляет вывод goose в логгер сервиса
type gooseLogger struct {
	logger Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(format, v...)
}

// Fatalf не завершает процесс: ошибка всё равно вернётся из goose.Up
func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(format, v...)
}
