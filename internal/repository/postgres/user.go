package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUser creates the user if not exists and returns its internal id.
// A non-empty username replaces the stored one.
func (r *UserRepo) EnsureUser(ctx context.Context, tgID int64, username string) (int64, error) {
	query := `
		INSERT INTO users (tg_id, username)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (tg_id)
		DO UPDATE SET username = COALESCE(EXCLUDED.username, users.username)
		RETURNING id
	`
	var id int64
	if err := querierFromCtx(ctx, r.db).GetContext(ctx, &id, query, tgID, username); err != nil {
		return 0, mapError(err, "ensure user")
	}
	return id, nil
}
