package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const userReturning = "chat_id, full_name, phone, language, created_at, updated_at"

// Repository репозиторий пользователей в Postgres
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает пользователя или обновляет имя существующего.
// Пустой язык не затирает уже выбранный. created = true, если строка вставлена.
func (r *Repository) Upsert(ctx context.Context, chatID int64, fullName string, lang domain.Language) (*domain.User, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("chat_id", "full_name", "language").
		Values(chatID, fullName, lang).
		Suffix("ON CONFLICT (chat_id) DO UPDATE SET " +
			"full_name = EXCLUDED.full_name, " +
			"language = COALESCE(NULLIF(EXCLUDED.language, ''), users.language), " +
			"updated_at = NOW() " +
			"RETURNING (xmax = 0), " + userReturning).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var created bool
	u, err := scanUser(executor.QueryRowContext(ctx, query, args...), &created)
	if err != nil {
		return nil, false, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}
	return u, created, nil
}

// UpsertLanguage устанавливает язык, создавая пользователя-заглушку при отсутствии
func (r *Repository) UpsertLanguage(ctx context.Context, chatID int64, lang domain.Language) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("chat_id", "full_name", "language").
		Values(chatID, "", lang).
		Suffix("ON CONFLICT (chat_id) DO UPDATE SET language = EXCLUDED.language, updated_at = NOW() " +
			"RETURNING " + userReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertLanguage - build insert query: %v", ErrBuildQuery, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertLanguage - execute insert: %w", ErrExecQuery, err)
	}
	return u, nil
}

// SetPhone сохраняет телефон пользователя
func (r *Repository) SetPhone(ctx context.Context, chatID int64, phone string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("phone", phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"chat_id": chatID}).
		Suffix("RETURNING " + userReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SetPhone - build update query: %v", ErrBuildQuery, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...), nil)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetPhone - execute update: %w", ErrExecQuery, err)
	}
	return u, nil
}

// GetByChatID возвращает пользователя по chat id
func (r *Repository) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("chat_id", "full_name", "phone", "language", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"chat_id": chatID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByChatID - build select query: %v", ErrBuildQuery, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...), nil)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByChatID - scan user: %w", ErrScanRow, err)
	}
	return u, nil
}

func scanUser(row *sql.Row, created *bool) (*domain.User, error) {
	var (
		u                    domain.User
		phone                sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	dest := []interface{}{&u.ChatID, &u.FullName, &phone, &u.Language, &createdAt, &updatedAt}
	if created != nil {
		dest = append([]interface{}{created}, dest...)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if phone.Valid {
		u.Phone = &phone.String
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return &u, nil
}
