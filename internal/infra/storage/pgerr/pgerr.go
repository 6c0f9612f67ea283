// Package pgerr classifies PostgreSQL errors from either supported driver.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE коды, которые обрабатывает сервис
const (
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	ExclusionViolation   = "23P01"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
)

// Code возвращает SQLSTATE ошибки lib/pq или pgx, либо пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsConflict true для нарушений уникальности/исключения и конфликтов сериализации
func IsConflict(err error) bool {
	switch Code(err) {
	case UniqueViolation, ExclusionViolation, SerializationFailure, DeadlockDetected:
		return true
	default:
		return false
	}
}
