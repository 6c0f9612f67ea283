package mocks

import (
	"context"
	"fmt"
	"sync"
)

// TxManager выполняет функцию без реальной транзакции
// Err, если задан, возвращается вместо результата fn (имитация ошибки commit)
type TxManager struct {
	Err   error
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return m.Err
}

// Events записывает события жизненного цикла и выручку
type Events struct {
	mu      sync.Mutex
	Names   []string
	Revenue float64
}

func (e *Events) RecordBookingEvent(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Names = append(e.Names, event)
}

func (e *Events) AddRevenue(amount float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Revenue += amount
}

func (e *Events) Recorded() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.Names...)
}

// Logger собирает сообщения, чтобы тесты могли проверить логирование
type Logger struct {
	mu       sync.Mutex
	Messages []string
}

func (l *Logger) Info(format string, v ...interface{})  { l.add("INFO", format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.add("WARN", format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.add("ERROR", format, v...) }

func (l *Logger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, level+" "+fmt.Sprintf(format, v...))
}

func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.Messages...)
}
