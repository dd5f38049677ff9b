package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spf13/viper"

	"github.com/example/invoice-dashboard/internal/api"
	"github.com/example/invoice-dashboard/internal/config"
	"github.com/example/invoice-dashboard/internal/db"
	"github.com/example/invoice-dashboard/internal/db/seeders"
	"github.com/example/invoice-dashboard/internal/passwords"
	"github.com/example/invoice-dashboard/internal/rabbitmq"
)

func main() {
	// Setup logger with human friendly console output
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	// Load configuration from config.yaml and environment variables
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("unable to read config file, relying on env vars")
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Parse command, default to run service
	cmd := "run"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "migrate":
		if err := db.Migrate(dbOptions(cfg)); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Msg("migrations applied")
		return
	case "seed":
		seeder, closeFn := newSeeder(cfg)
		if err := seedOnce(ctx, seeder, closeFn); err != nil {
			log.Error().Err(err).Msg("failed to seed database")
			stop()
			os.Exit(1)
		}
		return
	case "run":
		// continue below
	default:
		log.Fatal().Msgf("unknown command %s", cmd)
	}

	seeder, closeFn := newSeeder(cfg)
	defer closeFn()

	apiSrv := api.New(seeder, log.Logger)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := apiSrv.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("api server exited")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
}

// newSeeder builds the seeder from cfg. The returned func releases the
// optional RabbitMQ connection.
func newSeeder(cfg config.Config) (*seeders.Seeder, func()) {
	opts := []seeders.Option{
		seeders.WithLogger(log.Logger),
		seeders.WithConcurrency(cfg.SeedConcurrency),
	}

	if cfg.SeedHashPasswords {
		hasher, err := passwords.NewBcrypt(cfg.BcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid bcrypt cost")
		}
		opts = append(opts, seeders.WithPasswordHasher(hasher))
	}

	closeFn := func() {}
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.New(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		if err := mq.DeclareQueue(cfg.SeedEventsQueue); err != nil {
			mq.Close()
			log.Fatal().Err(err).Msg("failed to declare seed events queue")
		}
		opts = append(opts, seeders.WithNotifier(mq, cfg.SeedEventsQueue))
		closeFn = mq.Close
	}

	dbOpts := dbOptions(cfg)
	connect := func(ctx context.Context) (seeders.Conn, error) {
		pool, err := db.New(ctx, dbOpts)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	}

	return seeders.New(connect, seeders.Placeholder(), opts...), closeFn
}

func dbOptions(cfg config.Config) db.Options {
	return db.Options{
		URL:            cfg.DatabaseURL,
		SSLMode:        cfg.DBSSLMode,
		RequireTLS:     cfg.DBRequireTLS,
		ConnectTimeout: cfg.DBConnectTimeout,
		MaxConns:       cfg.DBMaxConns,
	}
}

// seedOnce runs a single seeding pass and calls release before returning,
// whatever the outcome.
func seedOnce(ctx context.Context, s api.Seeder, release func()) error {
	defer release()
	_, err := s.Seed(ctx)
	return err
}
