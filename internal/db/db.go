package db

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultConnectTimeout bounds connection establishment when Options leave it unset.
const DefaultConnectTimeout = 60 * time.Second

var (
	// ErrTLSRequired is returned when TLS is enforced but the DSN disables it.
	ErrTLSRequired = errors.New("database connection must use TLS")
	// ErrTLSUnverified is returned when TLS is enforced but the server
	// certificate would not be checked (sslmode=require or prefer).
	ErrTLSUnverified = errors.New("database connection must verify the server certificate")
)

// Execer is the statement surface used by repositories.
// *pgxpool.Pool, *pgxpool.Conn and pgx.Tx all satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Options describe how to reach PostgreSQL.
type Options struct {
	URL            string
	SSLMode        string // applied only when URL carries no sslmode
	RequireTLS     bool
	ConnectTimeout time.Duration
	MaxConns       int32
}

// ParseConfig turns Options into a pool configuration without connecting.
func ParseConfig(opts Options) (*pgxpool.Config, error) {
	dsn, err := withSSLMode(opts.URL, opts.SSLMode)
	if err != nil {
		return nil, fmt.Errorf("apply sslmode: %w", err)
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	cfg.ConnConfig.ConnectTimeout = timeout
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	if opts.RequireTLS {
		if cfg.ConnConfig.TLSConfig == nil {
			return nil, ErrTLSRequired
		}
		if !verified(cfg.ConnConfig.TLSConfig) {
			return nil, ErrTLSUnverified
		}
		// Multi-host DSNs add one fallback per host.
		fallbacks := cfg.ConnConfig.Fallbacks[:0]
		for _, fb := range cfg.ConnConfig.Fallbacks {
			if verified(fb.TLSConfig) {
				fallbacks = append(fallbacks, fb)
			}
		}
		cfg.ConnConfig.Fallbacks = fallbacks
	}
	return cfg, nil
}

// verified reports whether c checks the server certificate. verify-ca skips
// the built-in check but installs its own VerifyPeerCertificate.
func verified(c *tls.Config) bool {
	if c == nil {
		return false
	}
	return !c.InsecureSkipVerify || c.VerifyPeerCertificate != nil
}

// New connects to PostgreSQL using pgxpool
func New(ctx context.Context, opts Options) (*pgxpool.Pool, error) {
	cfg, err := ParseConfig(opts)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	return pool, nil
}

// EnsureUUIDExtension installs uuid-ossp, which provides uuid_generate_v4.
func EnsureUUIDExtension(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return fmt.Errorf("create extension uuid-ossp: %w", err)
	}
	return nil
}

func withSSLMode(dsn, mode string) (string, error) {
	if mode == "" || strings.Contains(dsn, "sslmode=") {
		return dsn, nil
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", err
		}
		q := u.Query()
		q.Set("sslmode", mode)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	// keyword/value form
	return strings.TrimSpace(dsn + " sslmode=" + mode), nil
}
