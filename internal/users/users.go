package users

import (
	"context"

	"github.com/example/invoice-dashboard/internal/db"
)

// User is a dashboard login.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Repository provides helpers to persist users.
type Repository struct {
	db db.Execer
}

// NewRepository creates a new Repository instance.
func NewRepository(db db.Execer) *Repository {
	return &Repository{db: db}
}

// EnsureTable creates the users table when it does not exist yet.
func (r *Repository) EnsureTable(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL
        )
    `)
	return err
}

// InsertIfAbsent inserts u unless a user with the same id already exists.
// Existing rows are left untouched. Only id is the conflict target: a new id
// with an email that is already taken fails with a unique violation.
func (r *Repository) InsertIfAbsent(ctx context.Context, u User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, email, password)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO NOTHING
    `, u.ID, u.Name, u.Email, u.Password)
	return err
}
