// Package slotlock предоставляет мьютексы по строковому ключу
package slotlock

import "github.com/moby/locker"

// Locker выдает взаимоисключающую блокировку на каждый ключ.
// Запись ключа удаляется, когда его больше никто не ждет.
type Locker struct {
	locks *locker.Locker
}

// New создает Locker
func New() *Locker {
	return &Locker{locks: locker.New()}
}

// Lock блокирует ключ и возвращает функцию разблокировки
func (l *Locker) Lock(key string) func() {
	l.locks.Lock(key)
	return func() {
		_ = l.locks.Unlock(key)
	}
}
