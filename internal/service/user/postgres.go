package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/janisto/huma-users/internal/platform/timeutil"
)

const userColumns = "id, email, first_name, last_name, birth_date, address, phone_number"

// PostgresStore implements Store on a PostgreSQL users table. Ids come from
// the table's BIGSERIAL sequence.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store using db, which should be opened with the
// pgx driver (see platform/database).
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.Email, &r.FirstName, &r.LastName, &r.BirthDate, &r.Address, &r.PhoneNumber)
	r.BirthDate = timeutil.DateOf(r.BirthDate)
	return r, err
}

func (s *PostgresStore) Create(ctx context.Context, r Record) (*Record, error) {
	r.BirthDate = timeutil.DateOf(r.BirthDate)
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (email, first_name, last_name, birth_date, address, phone_number)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		r.Email, r.FirstName, r.LastName, r.BirthDate, r.Address, r.PhoneNumber,
	).Scan(&r.ID)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &r, nil
}

func (s *PostgresStore) Save(ctx context.Context, r Record) (*Record, error) {
	r.BirthDate = timeutil.DateOf(r.BirthDate)
	res, err := s.db.ExecContext(ctx,
		`UPDATE users
		 SET email = $2, first_name = $3, last_name = $4, birth_date = $5, address = $6, phone_number = $7
		 WHERE id = $1`,
		r.ID, r.Email, r.FirstName, r.LastName, r.BirthDate, r.Address, r.PhoneNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", r.ID, err)
	}
	if err := expectOneRow(res, r.ID); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return expectOneRow(res, id)
}

func (s *PostgresStore) FindByBirthDateBetween(ctx context.Context, from, to time.Time) ([]Record, error) {
	return s.query(ctx,
		`SELECT `+userColumns+` FROM users WHERE birth_date BETWEEN $1 AND $2 ORDER BY id`,
		timeutil.DateOf(from), timeutil.DateOf(to),
	)
}

func (s *PostgresStore) List(ctx context.Context, afterID int64, limit int) ([]Record, error) {
	return s.query(ctx,
		`SELECT `+userColumns+` FROM users WHERE id > $1 ORDER BY id LIMIT $2`,
		afterID, limit,
	)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// Compile-time interface check
var _ Store = (*PostgresStore)(nil)
