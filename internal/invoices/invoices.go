package invoices

import (
	"context"

	"github.com/example/invoice-dashboard/internal/db"
)

// Invoice is a billed amount owed by a customer. Amount is in cents and
// Date is formatted as YYYY-MM-DD.
type Invoice struct {
	ID         string `json:"id,omitempty"`
	CustomerID string `json:"customer_id"`
	Amount     int    `json:"amount"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

// Repository handles invoice persistence.
type Repository struct {
	db db.Execer
}

// NewRepository creates a new Repository.
func NewRepository(db db.Execer) *Repository {
	return &Repository{db: db}
}

// EnsureTable creates the invoices table when it does not exist yet.
// customer_id is not a foreign key.
func (r *Repository) EnsureTable(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS invoices (
            id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
            customer_id UUID NOT NULL,
            amount INT NOT NULL,
            status VARCHAR(255) NOT NULL,
            date DATE NOT NULL
        )
    `)
	return err
}

// InsertIfAbsent inserts inv. Without an ID the database generates one, so
// such invoices are inserted on every call.
func (r *Repository) InsertIfAbsent(ctx context.Context, inv Invoice) error {
	if inv.ID == "" {
		_, err := r.db.Exec(ctx, `
            INSERT INTO invoices (customer_id, amount, status, date)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (id) DO NOTHING
        `, inv.CustomerID, inv.Amount, inv.Status, inv.Date)
		return err
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO invoices (id, customer_id, amount, status, date)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO NOTHING
    `, inv.ID, inv.CustomerID, inv.Amount, inv.Status, inv.Date)
	return err
}
