package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authservice/internal/common"
	"github.com/dmitrijs2005/authservice/internal/dbx"
	"github.com/dmitrijs2005/authservice/internal/server/models"
	"github.com/google/uuid"
)

const userColumns = `id, email, hashed_password, active, last_login_date, last_active_date, created_at`

// SQLRepository implements Repository over database/sql. The same queries
// serve PostgreSQL and SQLite; only placeholders and constraint errors
// differ.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dialect
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialectPostgres}
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialectSQLite}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, email, hashed_password, active, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	created := *user
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, r.dialect.rebind(query),
		created.ID, created.Email, nullString(created.HashedPassword), created.Active, created.CreatedAt)

	if err != nil {
		if r.dialect.isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &created, nil
}

func (r *SQLRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE email = $1
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, r.dialect.rebind(query), email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET hashed_password = $2, active = $3, last_login_date = $4, last_active_date = $5
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, r.dialect.rebind(query),
		user.ID, nullString(user.HashedPassword), user.Active, nullTime(user.LastLoginDate), nullTime(user.LastActiveDate))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user                  models.User
		hashed                sql.NullString
		lastLogin, lastActive sql.NullTime
	)

	err := row.Scan(&user.ID, &user.Email, &hashed, &user.Active, &lastLogin, &lastActive, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	if hashed.Valid {
		user.HashedPassword = &hashed.String
	}
	if lastLogin.Valid {
		user.LastLoginDate = &lastLogin.Time
	}
	if lastActive.Valid {
		user.LastActiveDate = &lastActive.Time
	}

	return &user, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
