package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const timestampFormat = "2006-01-02 15:04:05"

var bookingColumns = []string{
	"b.id",
	"b.category_id",
	"b.user_id",
	"b.booking_date",
	"b.start_time",
	"b.party_size",
	"b.status",
	"b.reminder_sent",
	"b.created_at",
	"b.updated_at",
}

var detailsColumns = append(append([]string{}, bookingColumns...),
	"c.name",
	"c.name_ru",
	"c.name_uz",
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование в статусе, указанном в booking.Status
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"category_id",
			"user_id",
			"booking_date",
			"start_time",
			"party_size",
			"status",
		).
		Values(
			booking.CategoryID,
			booking.UserID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.PartySize,
			booking.Status,
		).
		Suffix("RETURNING id, reminder_sent, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.ReminderSent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetDetailsByID получает бронирование вместе с названиями категории
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailsColumns...).
		From("bookings b").
		Join("categories c ON c.id = b.category_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan booking: %w", ErrScanRow, err)
	}

	return details, nil
}

// GetByUserID получает все бронирования пользователя, новые первыми
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailsColumns...).
		From("bookings b").
		Join("categories c ON c.id = b.category_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.booking_date DESC", "b.start_time DESC NULLS FIRST", "b.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDetails(ctx, executor, "GetByUserID", query, args)
}

// GetLatestPending возвращает последнее незавершенное бронирование пользователя
func (r *Repository) GetLatestPending(ctx context.Context, userID int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailsColumns...).
		From("bookings b").
		Join("categories c ON c.id = b.category_id").
		Where(squirrel.Eq{"b.user_id": userID, "b.status": domain.PendingStatuses}).
		OrderBy("b.id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestPending - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestPending - scan booking: %w", ErrScanRow, err)
	}

	return details, nil
}

// DeletePendingByUser удаляет незавершенные бронирования пользователя
// и возвращает количество удаленных строк
func (r *Repository) DeletePendingByUser(ctx context.Context, userID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"user_id": userID, "status": domain.PendingStatuses}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePendingByUser - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePendingByUser - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePendingByUser - rows affected: %w", ErrExecQuery, err)
	}
	return affected, nil
}

// SetTime записывает время и переводит бронирование в ожидание количества гостей
func (r *Repository) SetTime(ctx context.Context, id int64, startTime types.TimeString) error {
	return r.update(ctx, "SetTime", id, map[string]interface{}{
		"start_time": startTime,
		"party_size": nil,
		"status":     domain.StatusAwaitingPartySize,
	})
}

// Complete записывает количество гостей и завершает бронирование
func (r *Repository) Complete(ctx context.Context, id int64, partySize int) error {
	return r.update(ctx, "Complete", id, map[string]interface{}{
		"party_size": partySize,
		"status":     domain.StatusComplete,
	})
}

// MarkReminderSent отмечает, что напоминание отправлено
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	return r.update(ctx, "MarkReminderSent", id, map[string]interface{}{
		"reminder_sent": true,
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %w", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// LockSlot берет транзакционную advisory-блокировку на слот.
// Блокировка снимается при завершении транзакции.
func (r *Repository) LockSlot(ctx context.Context, slot domain.SlotKey) error {
	tx, ok := dbmetrics.GetTx(ctx)
	if !ok {
		return ErrNotInTransaction
	}

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", slot.String())).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockSlot - build query: %v", ErrBuildQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockSlot - execute: %w", ErrExecQuery, err)
	}
	return nil
}

// CountComplete возвращает количество завершенных бронирований на слот
func (r *Repository) CountComplete(ctx context.Context, slot domain.SlotKey) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"category_id":  slot.CategoryID,
			"booking_date": slot.Date.Format(domain.DateFormat),
			"start_time":   slot.Time,
			"status":       domain.StatusComplete,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountComplete - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountComplete - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// GetTakenTimes возвращает времена, на которые есть хотя бы одно бронирование
// в категории на дату, независимо от статуса
func (r *Repository) GetTakenTimes(ctx context.Context, categoryID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT start_time").
		From("bookings").
		Where(squirrel.Eq{
			"category_id":  categoryID,
			"booking_date": date.Format(domain.DateFormat),
		}).
		Where(squirrel.NotEq{"start_time": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTakenTimes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var times []types.TimeString
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetTakenTimes - scan row: %w", ErrScanRow, err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTakenTimes - rows iteration: %w", ErrScanRow, err)
	}

	return times, nil
}

// GetDueReminders возвращает завершенные бронирования без отправленного напоминания,
// время визита которых попадает в окно (границы включены)
func (r *Repository) GetDueReminders(ctx context.Context, window domain.ReminderWindow) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailsColumns...).
		From("bookings b").
		Join("categories c ON c.id = b.category_id").
		Where(squirrel.Eq{"b.status": domain.StatusComplete, "b.reminder_sent": false}).
		Where(squirrel.Expr(
			"(b.booking_date + b.start_time::time) BETWEEN ?::timestamp AND ?::timestamp",
			window.Start.Format(timestampFormat),
			window.End.Format(timestampFormat),
		)).
		OrderBy("b.booking_date", "b.start_time", "b.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDetails(ctx, executor, "GetDueReminders", query, args)
}

func (r *Repository) queryDetails(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.BookingDetails, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		result = append(result, details)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %w", ErrScanRow, op, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type bookingRow struct {
	booking   domain.Booking
	startTime sql.NullString
	partySize sql.NullInt64
	createdAt sql.NullTime
	updatedAt sql.NullTime
}

func (b *bookingRow) dest() []interface{} {
	return []interface{}{
		&b.booking.ID,
		&b.booking.CategoryID,
		&b.booking.UserID,
		&b.booking.BookingDate,
		&b.startTime,
		&b.partySize,
		&b.booking.Status,
		&b.booking.ReminderSent,
		&b.createdAt,
		&b.updatedAt,
	}
}

func (b *bookingRow) toDomain() domain.Booking {
	booking := b.booking
	if b.startTime.Valid {
		var t types.TimeString
		_ = t.Scan(b.startTime.String)
		booking.StartTime = &t
	}
	if b.partySize.Valid {
		size := int(b.partySize.Int64)
		booking.PartySize = &size
	}
	booking.CreatedAt = b.createdAt.Time
	booking.UpdatedAt = b.updatedAt.Time
	return booking
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b bookingRow
	if err := row.Scan(b.dest()...); err != nil {
		return nil, err
	}
	booking := b.toDomain()
	return &booking, nil
}

func scanDetails(row rowScanner) (*domain.BookingDetails, error) {
	var (
		b        bookingRow
		category domain.Category
	)
	dest := append(b.dest(), &category.Name, &category.NameRu, &category.NameUz)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	booking := b.toDomain()
	category.ID = booking.CategoryID
	return &domain.BookingDetails{Booking: booking, Category: category}, nil
}
