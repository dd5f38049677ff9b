package customers

import (
	"context"

	"github.com/example/invoice-dashboard/internal/db"
)

// Customer is an invoiced party.
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// Repository provides helpers to persist customers.
type Repository struct {
	db db.Execer
}

// NewRepository creates a new Repository instance.
func NewRepository(db db.Execer) *Repository {
	return &Repository{db: db}
}

// EnsureTable creates the customers table when it does not exist yet.
func (r *Repository) EnsureTable(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS customers (
            id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            email VARCHAR(255) NOT NULL,
            image_url VARCHAR(255) NOT NULL
        )
    `)
	return err
}

// InsertIfAbsent inserts c unless a customer with the same id exists.
func (r *Repository) InsertIfAbsent(ctx context.Context, c Customer) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO customers (id, name, email, image_url)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO NOTHING
    `, c.ID, c.Name, c.Email, c.ImageURL)
	return err
}
