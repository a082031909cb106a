package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/planet-stamp-roulette/internal/model"
)

// AdminRepo provides lookups on the `admins` table.
type AdminRepo struct{ db *sql.DB }

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByUsername fetches an admin account.  sql.ErrNoRows is returned when
// the username is unknown; handlers must answer that the same way as a
// wrong password to avoid leaking which usernames exist.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (model.Admin, error) {
    var a model.Admin
    err := r.db.QueryRowContext(ctx,
        `SELECT username, password_hash FROM admins WHERE username = ? LIMIT 1`,
        username).Scan(&a.Username, &a.PasswordHash)
    return a, err
}
