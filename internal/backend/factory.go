package backend

import (
	"context"
	"errors"
	"fmt"

	"despesas/internal/amqp"
	"despesas/internal/log"
	"despesas/internal/storage"
	"despesas/internal/store"
	"despesas/internal/store/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger

	// dial is swapped in tests to avoid a real broker.
	dial func(cfg Config, logger *log.Logger) (*amqp.Client, error)
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) *DefaultFactory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
		dial:   dialAMQP,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		s       store.Store
		closers []func() error
	)
	switch config.Type {
	case MemoryBackend:
		s = memory.New()
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository("")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		s = repo
		closers = append(closers, repo.Close)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	// AMQP is optional; a broker that cannot be reached only disables events.
	var publisher *amqp.Client
	if config.AMQPURL != "" {
		client, err := f.dial(config, f.logger)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", log.FieldError, err)
		} else {
			publisher = client
			closers = append(closers, client.Close)
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				log.FieldExchange, config.AMQPExchange,
				log.FieldRoutingKey, config.AMQPRoutingKey)
		}
	}

	f.logger.InfoContext(ctx, "Initialized backend",
		log.FieldBackend, config.Type.String(),
		"amqp_enabled", publisher != nil)

	return &Result{
		Store:     s,
		Publisher: publisher,
		Cleanup:   closeAll(closers),
	}, nil
}

func dialAMQP(cfg Config, logger *log.Logger) (*amqp.Client, error) {
	return amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, cfg.AMQPQueueSize, logger)
}

// closeAll runs closers in reverse order and joins their errors.
func closeAll(closers []func() error) CleanupFunc {
	return func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
