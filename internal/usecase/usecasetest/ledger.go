// Package usecasetest содержит in-memory реализации хранилищ для тестов сценариев
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	categoryRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/category"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Ledger in-memory журнал бронирований и каталог категорий.
// Возвращает те же sentinel ошибки, что и Postgres репозитории.
type Ledger struct {
	mu         sync.Mutex
	nextID     int64
	bookings   map[int64]domain.Booking
	categories map[int64]domain.Category
	failures   map[string]error
	now        func() time.Time

	SlotLocks int
}

// NewLedger создает журнал с категориями по умолчанию
func NewLedger() *Ledger {
	l := &Ledger{
		bookings:   make(map[int64]domain.Booking),
		categories: make(map[int64]domain.Category),
		failures:   make(map[string]error),
		now:        time.Now,
	}
	for _, c := range domain.DefaultCategories() {
		l.categories[c.ID] = c
	}
	return l
}

// NewEmptyLedger создает журнал без категорий
func NewEmptyLedger() *Ledger {
	l := NewLedger()
	l.categories = make(map[int64]domain.Category)
	return l
}

// Fail заставляет метод возвращать err
func (l *Ledger) Fail(method string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[method] = err
}

func (l *Ledger) failure(method string) error {
	return l.failures[method]
}

// Put добавляет бронирование как есть и возвращает его id
func (l *Ledger) Put(b domain.Booking) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	b.ID = l.nextID
	l.bookings[b.ID] = b
	return b.ID
}

// Booking возвращает копию бронирования
func (l *Ledger) Booking(id int64) (domain.Booking, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[id]
	return b, ok
}

// Len количество бронирований
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bookings)
}

func (l *Ledger) details(b domain.Booking) *domain.BookingDetails {
	return &domain.BookingDetails{Booking: b, Category: l.categories[b.CategoryID]}
}

// Create добавляет бронирование
func (l *Ledger) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("Create"); err != nil {
		return nil, err
	}

	l.nextID++
	booking.ID = l.nextID
	booking.CreatedAt = l.now()
	booking.UpdatedAt = booking.CreatedAt
	l.bookings[booking.ID] = *booking
	return booking, nil
}

// GetByID возвращает бронирование
func (l *Ledger) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("GetByID"); err != nil {
		return nil, err
	}

	b, ok := l.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

// GetDetailsByID возвращает бронирование с категорией
func (l *Ledger) GetDetailsByID(_ context.Context, id int64) (*domain.BookingDetails, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("GetDetailsByID"); err != nil {
		return nil, err
	}

	b, ok := l.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return l.details(b), nil
}

// GetByUserID возвращает бронирования пользователя, новые первыми
func (l *Ledger) GetByUserID(_ context.Context, userID int64) ([]*domain.BookingDetails, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("GetByUserID"); err != nil {
		return nil, err
	}

	var list []*domain.BookingDetails
	for _, b := range l.bookings {
		if b.UserID == userID {
			list = append(list, l.details(b))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// GetLatestPending возвращает последнее незавершенное бронирование пользователя
func (l *Ledger) GetLatestPending(_ context.Context, userID int64) (*domain.BookingDetails, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("GetLatestPending"); err != nil {
		return nil, err
	}

	var latest *domain.Booking
	for id := range l.bookings {
		b := l.bookings[id]
		if b.UserID != userID || !b.IsPending() {
			continue
		}
		if latest == nil || b.ID > latest.ID {
			latest = &b
		}
	}
	if latest == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return l.details(*latest), nil
}

// DeletePendingByUser удаляет незавершенные бронирования пользователя
func (l *Ledger) DeletePendingByUser(_ context.Context, userID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("DeletePendingByUser"); err != nil {
		return 0, err
	}

	var deleted int64
	for id, b := range l.bookings {
		if b.UserID == userID && b.IsPending() {
			delete(l.bookings, id)
			deleted++
		}
	}
	return deleted, nil
}

// SetTime записывает время
func (l *Ledger) SetTime(_ context.Context, id int64, startTime types.TimeString) error {
	return l.update("SetTime", id, func(b *domain.Booking) {
		b.StartTime = &startTime
		b.PartySize = nil
		b.Status = domain.StatusAwaitingPartySize
	})
}

// Complete записывает количество гостей
func (l *Ledger) Complete(_ context.Context, id int64, partySize int) error {
	return l.update("Complete", id, func(b *domain.Booking) {
		b.PartySize = &partySize
		b.Status = domain.StatusComplete
	})
}

// MarkReminderSent помечает напоминание отправленным
func (l *Ledger) MarkReminderSent(_ context.Context, id int64) error {
	return l.update("MarkReminderSent", id, func(b *domain.Booking) {
		b.ReminderSent = true
	})
}

func (l *Ledger) update(method string, id int64, apply func(b *domain.Booking)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure(method); err != nil {
		return err
	}

	b, ok := l.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	apply(&b)
	b.UpdatedAt = l.now()
	l.bookings[id] = b
	return nil
}

// Delete удаляет бронирование
func (l *Ledger) Delete(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("Delete"); err != nil {
		return err
	}

	if _, ok := l.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(l.bookings, id)
	return nil
}

// LockSlot считает вызовы, сериализацию обеспечивает вызывающий код
func (l *Ledger) LockSlot(_ context.Context, _ domain.SlotKey) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("LockSlot"); err != nil {
		return err
	}
	l.SlotLocks++
	return nil
}

// CountComplete считает завершенные бронирования на слот
func (l *Ledger) CountComplete(_ context.Context, slot domain.SlotKey) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("CountComplete"); err != nil {
		return 0, err
	}

	count := 0
	for _, b := range l.bookings {
		key, ok := b.Slot()
		if ok && b.IsComplete() && sameSlot(key, slot) {
			count++
		}
	}
	return count, nil
}

// GetTakenTimes возвращает занятые времена независимо от статуса
func (l *Ledger) GetTakenTimes(_ context.Context, categoryID int64, date time.Time) ([]types.TimeString, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("GetTakenTimes"); err != nil {
		return nil, err
	}

	var times []types.TimeString
	for _, b := range l.bookings {
		if b.CategoryID == categoryID && sameDate(b.BookingDate, date) && b.StartTime != nil {
			times = append(times, *b.StartTime)
		}
	}
	return times, nil
}

// GetDueReminders возвращает завершенные бронирования в окне
func (l *Ledger) GetDueReminders(_ context.Context, window domain.ReminderWindow) ([]*domain.BookingDetails, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("GetDueReminders"); err != nil {
		return nil, err
	}

	var due []*domain.BookingDetails
	for _, b := range l.bookings {
		if !b.IsComplete() || b.ReminderSent {
			continue
		}
		startsAt, ok := b.StartsAt(window.Start.Location())
		if ok && window.Contains(startsAt) {
			due = append(due, l.details(b))
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	return due, nil
}

// Count количество категорий
func (l *Ledger) Count(_ context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("Count"); err != nil {
		return 0, err
	}
	return len(l.categories), nil
}

// InsertMany добавляет категории, существующие id пропускаются
func (l *Ledger) InsertMany(_ context.Context, categories []domain.Category) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("InsertMany"); err != nil {
		return 0, err
	}

	var inserted int64
	for _, c := range categories {
		if _, ok := l.categories[c.ID]; ok {
			continue
		}
		l.categories[c.ID] = c
		inserted++
	}
	return inserted, nil
}

// List возвращает категории по возрастанию id
func (l *Ledger) List(_ context.Context) ([]domain.Category, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("List"); err != nil {
		return nil, err
	}

	list := make([]domain.Category, 0, len(l.categories))
	for _, c := range l.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetCategory возвращает категорию по id
func (l *Ledger) GetCategory(_ context.Context, id int64) (*domain.Category, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failure("GetCategory"); err != nil {
		return nil, err
	}

	c, ok := l.categories[id]
	if !ok {
		return nil, categoryRepo.ErrCategoryNotFound
	}
	return &c, nil
}

// Categories адаптер с методом GetByID, как у репозитория категорий
func (l *Ledger) Categories() *Categories {
	return &Categories{ledger: l}
}

// Categories представление каталога журнала
type Categories struct {
	ledger *Ledger
}

// GetByID возвращает категорию по id
func (c *Categories) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return c.ledger.GetCategory(ctx, id)
}

// Count количество категорий
func (c *Categories) Count(ctx context.Context) (int, error) {
	return c.ledger.Count(ctx)
}

// InsertMany добавляет категории
func (c *Categories) InsertMany(ctx context.Context, categories []domain.Category) (int64, error) {
	return c.ledger.InsertMany(ctx, categories)
}

// List возвращает категории
func (c *Categories) List(ctx context.Context) ([]domain.Category, error) {
	return c.ledger.List(ctx)
}

func sameDate(a, b time.Time) bool {
	return a.Format(domain.DateFormat) == b.Format(domain.DateFormat)
}

func sameSlot(a, b domain.SlotKey) bool {
	return a.CategoryID == b.CategoryID && a.Time == b.Time && sameDate(a.Date, b.Date)
}
