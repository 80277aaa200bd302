package usecasetest

import (
	"context"
	"sync"
	"time"
)

// TxManager выполняет функцию без транзакции и считает вызовы
type TxManager struct {
	mu           sync.Mutex
	Calls        int
	Serializable int
	Err          error
}

// Do выполняет fn
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	err := m.Err
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(ctx)
}

// DoSerializable выполняет fn
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Serializable++
	m.mu.Unlock()
	return m.Do(ctx, fn)
}

// DoReadOnly выполняет fn
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// Clock фиксированное время
type Clock struct {
	At time.Time
}

// Now возвращает фиксированное время
func (c Clock) Now() time.Time {
	return c.At
}

// NopLogger логгер без вывода
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
