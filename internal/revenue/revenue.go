package revenue

import (
	"context"

	"github.com/example/invoice-dashboard/internal/db"
)

// Record is the revenue booked in one month. Month is a short label such as "Jan".
type Record struct {
	Month   string `json:"month"`
	Revenue int    `json:"revenue"`
}

// Repository handles revenue persistence.
type Repository struct {
	db db.Execer
}

// NewRepository creates a new Repository.
func NewRepository(db db.Execer) *Repository {
	return &Repository{db: db}
}

func (r *Repository) EnsureTable(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS revenue (
            month VARCHAR(4) NOT NULL UNIQUE,
            revenue INT NOT NULL
        )
    `)
	return err
}

// InsertIfAbsent inserts rec unless the month is already recorded.
func (r *Repository) InsertIfAbsent(ctx context.Context, rec Record) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO revenue (month, revenue)
        VALUES ($1, $2)
        ON CONFLICT (month) DO NOTHING
    `, rec.Month, rec.Revenue)
	return err
}
