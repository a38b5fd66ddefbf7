package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/dberrors"
	"github.com/yigit/alumnihub/internal/pkg/logger"
)

// PostgresStore keeps each record as a JSONB document in its own table
type PostgresStore[T models.Entity] struct {
	db    *pgxpool.Pool
	sb    squirrel.StatementBuilderType
	table string
}

// NewPostgresStore creates a store over the given document table
func NewPostgresStore[T models.Entity](db *pgxpool.Pool, table string) *PostgresStore[T] {
	return &PostgresStore[T]{
		db:    db,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		table: table,
	}
}

func (s *PostgresStore[T]) List(ctx context.Context) ([]T, error) {
	return s.query(ctx, s.sb.Select("data").From(s.table).OrderBy("created_at", "id"))
}

func (s *PostgresStore[T]) Get(ctx context.Context, id string) (T, error) {
	return s.one(ctx, s.sb.Select("data").From(s.table).Where(squirrel.Eq{"id": id}).Limit(1))
}

func (s *PostgresStore[T]) Save(ctx context.Context, record T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", s.table, err)
	}

	now := time.Now().UTC()
	sql, args, err := s.sb.Insert(s.table).
		Columns("id", "data", "created_at", "updated_at").
		Values(record.EntityID(), string(raw), now, now).
		Suffix("ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save %s query: %w", s.table, err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("table", s.table).Msg("Error executing save query")
		return fmt.Errorf("error saving %s record: %w", s.table, err)
	}
	return nil
}

func (s *PostgresStore[T]) Delete(ctx context.Context, id string) error {
	sql, args, err := s.sb.Delete(s.table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete %s query: %w", s.table, err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", s.table).Msg("Error executing delete query")
		return fmt.Errorf("error deleting %s record: %w", s.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore[T]) query(ctx context.Context, b squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", s.table, err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUndefinedTable(err) {
			logger.Error().Str("table", s.table).Msg("Table missing, have the migrations been applied?")
		} else {
			logger.Error().Err(err).Str("table", s.table).Msg("Error executing list query")
		}
		return nil, fmt.Errorf("error listing %s: %w", s.table, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", s.table, err)
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", s.table, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PostgresStore[T]) one(ctx context.Context, b squirrel.SelectBuilder) (T, error) {
	var v T
	sql, args, err := b.ToSql()
	if err != nil {
		return v, fmt.Errorf("failed to build %s query: %w", s.table, err)
	}

	var raw []byte
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return v, ErrNotFound
		}
		return v, fmt.Errorf("error reading %s record: %w", s.table, err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s record: %w", s.table, err)
	}
	return v, nil
}

// PostgresUserStore is the Postgres UserStore
type PostgresUserStore struct {
	*PostgresStore[models.User]
}

// NewPostgresUserStore creates a user store over the users table
func NewPostgresUserStore(db *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{PostgresStore: NewPostgresStore[models.User](db, "users")}
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.one(ctx, s.sb.Select("data").From(s.table).
		Where(squirrel.Expr("lower(data->>'email') = ?", strings.ToLower(email))).
		Limit(1))
}
