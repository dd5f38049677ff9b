package seeders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/example/invoice-dashboard/internal/customers"
	"github.com/example/invoice-dashboard/internal/db"
	"github.com/example/invoice-dashboard/internal/invoices"
	"github.com/example/invoice-dashboard/internal/passwords"
	"github.com/example/invoice-dashboard/internal/revenue"
	"github.com/example/invoice-dashboard/internal/users"
)

// DefaultConcurrency caps the number of in-flight inserts per phase.
const DefaultConcurrency = 10

// ErrSeedFailed matches every error returned by Seed.
var ErrSeedFailed = errors.New("seeding failed")

// PhaseError reports the phase in which seeding stopped.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("seed %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() []error {
	return []error{ErrSeedFailed, e.Err}
}

// Conn is the storage handle used for one seed run.
type Conn interface {
	db.Execer
	Close()
}

// Connector opens the handle for a run. The Seeder closes it before Seed returns.
type Connector func(ctx context.Context) (Conn, error)

// Notifier publishes a message; *rabbitmq.RabbitMQ satisfies it.
type Notifier interface {
	Publish(exchange, key string, body []byte) error
}

// Dataset is the reference data written by the Seeder.
type Dataset struct {
	Users     []users.User
	Customers []customers.Customer
	Invoices  []invoices.Invoice
	Revenue   []revenue.Record
}

// Summary counts the rows attempted per table. Rows skipped because they
// already existed are included.
type Summary struct {
	Users     int `json:"users"`
	Customers int `json:"customers"`
	Invoices  int `json:"invoices"`
	Revenue   int `json:"revenue"`
}

// Event is published after a successful run when a Notifier is configured.
type Event struct {
	Event      string    `json:"event"`
	Summary    Summary   `json:"summary"`
	FinishedAt time.Time `json:"finished_at"`
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Seeder) { s.log = l }
}

// WithConcurrency sets how many inserts of a phase may run at once.
func WithConcurrency(n int) Option {
	return func(s *Seeder) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithPasswordHasher hashes user passwords before they are stored.
func WithPasswordHasher(h passwords.Hasher) Option {
	return func(s *Seeder) { s.hasher = h }
}

// WithNotifier publishes an Event to queue after every successful run.
func WithNotifier(n Notifier, queue string) Option {
	return func(s *Seeder) {
		s.notifier = n
		s.queue = queue
	}
}

// Seeder writes a Dataset into PostgreSQL without duplicating rows.
type Seeder struct {
	connect  Connector
	data     Dataset
	log      zerolog.Logger
	limit    int
	hasher   passwords.Hasher
	notifier Notifier
	queue    string
	now      func() time.Time
}

// New creates a Seeder for data that obtains its handle from connect.
func New(connect Connector, data Dataset, opts ...Option) *Seeder {
	s := &Seeder{
		connect: connect,
		data:    data,
		log:     log.Logger,
		limit:   DefaultConcurrency,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type phase struct {
	name      string
	extension bool
	ensure    func(ctx context.Context) error
	rows      int
	insert    func(ctx context.Context, i int) error
	count     *int
}

// Seed creates the tables if needed and inserts every record of the dataset,
// phase by phase: users, customers, invoices, revenue. Rows that collide
// with an existing key are skipped. The first failure stops the run.
func (s *Seeder) Seed(ctx context.Context) (Summary, error) {
	s.log.Info().Msg("starting database seeding")

	conn, err := s.connect(ctx)
	if err != nil {
		return Summary{}, s.fail("connect", err)
	}
	defer conn.Close()

	var sum Summary
	for _, p := range s.phases(conn, &sum) {
		if err := s.runPhase(ctx, conn, p); err != nil {
			return Summary{}, s.fail(p.name, err)
		}
	}

	s.log.Info().
		Int("users", sum.Users).
		Int("customers", sum.Customers).
		Int("invoices", sum.Invoices).
		Int("revenue", sum.Revenue).
		Msg("database seeded")
	s.notify(sum)
	return sum, nil
}

func (s *Seeder) phases(conn db.Execer, sum *Summary) []phase {
	userRepo := users.NewRepository(conn)
	customerRepo := customers.NewRepository(conn)
	invoiceRepo := invoices.NewRepository(conn)
	revenueRepo := revenue.NewRepository(conn)

	return []phase{
		{
			name:      "users",
			extension: true,
			ensure:    userRepo.EnsureTable,
			rows:      len(s.data.Users),
			count:     &sum.Users,
			insert: func(ctx context.Context, i int) error {
				u := s.data.Users[i]
				if s.hasher != nil {
					hashed, err := s.hasher.Hash(u.Password)
					if err != nil {
						return err
					}
					u.Password = hashed
				}
				return userRepo.InsertIfAbsent(ctx, u)
			},
		},
		{
			name:      "customers",
			extension: true,
			ensure:    customerRepo.EnsureTable,
			rows:      len(s.data.Customers),
			count:     &sum.Customers,
			insert: func(ctx context.Context, i int) error {
				return customerRepo.InsertIfAbsent(ctx, s.data.Customers[i])
			},
		},
		{
			name:      "invoices",
			extension: true,
			ensure:    invoiceRepo.EnsureTable,
			rows:      len(s.data.Invoices),
			count:     &sum.Invoices,
			insert: func(ctx context.Context, i int) error {
				return invoiceRepo.InsertIfAbsent(ctx, s.data.Invoices[i])
			},
		},
		{
			name:   "revenue",
			ensure: revenueRepo.EnsureTable,
			rows:   len(s.data.Revenue),
			count:  &sum.Revenue,
			insert: func(ctx context.Context, i int) error {
				return revenueRepo.InsertIfAbsent(ctx, s.data.Revenue[i])
			},
		},
	}
}

// runPhase returns only after every insert it started has finished.
func (s *Seeder) runPhase(ctx context.Context, conn db.Execer, p phase) error {
	l := s.log.With().Str("phase", p.name).Logger()
	l.Info().Msgf("starting to seed %s", p.name)

	if p.extension {
		if err := db.EnsureUUIDExtension(ctx, conn); err != nil {
			return err
		}
	}
	if err := p.ensure(ctx); err != nil {
		return fmt.Errorf("create table %s: %w", p.name, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i := 0; i < p.rows; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := p.insert(gctx, i); err != nil {
				return fmt.Errorf("insert %s row %d: %w", p.name, i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	*p.count = p.rows
	l.Info().Int("rows", p.rows).Msgf("seeded %d %s", p.rows, p.name)
	return nil
}

func (s *Seeder) fail(phase string, err error) error {
	s.log.Error().Err(err).Str("phase", phase).Msg("error seeding database")
	return &PhaseError{Phase: phase, Err: err}
}

func (s *Seeder) notify(sum Summary) {
	if s.notifier == nil {
		return
	}
	body, err := json.Marshal(Event{Event: "seed.completed", Summary: sum, FinishedAt: s.now().UTC()})
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode seed event")
		return
	}
	if err := s.notifier.Publish("", s.queue, body); err != nil {
		s.log.Warn().Err(err).Str("queue", s.queue).Msg("failed to publish seed event")
	}
}
