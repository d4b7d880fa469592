package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/spf13/afero"
	"github.com/twmb/franz-go/pkg/sr"
)

// A Core is the storefront session with its outbound adapters.
type Core struct {
	Catalog service.Catalog
	Session *service.Session

	storage  storage.BlobStorage
	producer *kafka.OrdersProducer
}

// OpenCore connects the configured storage and, when enabled,
// the order producer, then restores the persisted cart.
func OpenCore(ctx context.Context, cfg config.Config) (*Core, error) {
	const op = "app.OpenCore"

	st, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &Core{
		Catalog: service.NewCatalog(catalog.Products()),
		storage: st,
	}

	var notifier port.OrderNotifier = logNotifier{}
	if cfg.Broker.Enabled {
		p, err := openOrdersProducer(ctx, cfg)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		c.producer = &p
		notifier = p
	}

	cart := service.LoadCartStore(ctx, st, cfg.Storage.Key)
	c.Session = service.NewSession(c.Catalog, cart,
		service.WithPricer(service.Pricer{
			ShippingFee: cfg.Pricing.ShippingFee,
			TaxRate:     cfg.Pricing.TaxRate,
		}),
		service.WithNotifier(notifier),
	)
	return c, nil
}

func (c *Core) Close() {
	if c.producer != nil {
		c.producer.Close()
	}
	c.storage.Close()
}

// OpenStorage returns the blob storage selected by storage.driver.
func OpenStorage(
	ctx context.Context, cfg config.Config,
) (storage.BlobStorage, error) {
	const op = "app.OpenStorage"

	var (
		st  storage.BlobStorage
		err error
	)
	switch cfg.Storage.Driver {
	case config.DriverFile:
		st, err = storage.NewFileStorage(afero.NewOsFs(), cfg.Storage.Dir)
	case config.DriverSQLite:
		st, err = storage.NewSQLiteStorage(ctx, cfg.Storage.SQLite)
	case config.DriverPostgres:
		var db storage.SQLDB
		db, err = storage.NewSQLDB(ctx, cfg.Storage.SQLDB)
		if err == nil {
			st = storage.NewSQLStorage(db)
		}
	case config.DriverRedis:
		st, err = storage.NewRedisStorage(
			ctx, cfg.Storage.RedisURL, cfg.Storage.RedisTTL,
		)
	default:
		err = fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

func openOrdersProducer(
	ctx context.Context, cfg config.Config,
) (kafka.OrdersProducer, error) {
	const op = "app.openOrdersProducer"
	b := cfg.Broker

	tlsCfg, err := adapter.MakeTLSConfig(b.TLS.CA, b.TLS.Cert, b.TLS.Key)
	if err != nil {
		return kafka.OrdersProducer{}, fmt.Errorf("%s: %w", op, err)
	}

	srClient, err := sr.NewClient(sr.URLs(b.SchemaRegistryURLs...))
	if err != nil {
		return kafka.OrdersProducer{}, fmt.Errorf("%s: %w", op, err)
	}

	serde, err := schema.NewSerdeOrderConfirmedV1(
		ctx,
		schema.SubjectOpt(b.OrdersTopic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		return kafka.OrdersProducer{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(ctx, b.SeedBrokers, b.OrdersTopic, tlsCfg),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		return kafka.OrdersProducer{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// logNotifier records placed orders when no broker is configured.
type logNotifier struct{}

func (logNotifier) NotifyOrder(_ context.Context, o domain.Order) error {
	slog.Info("order confirmed",
		"op", "logNotifier.NotifyOrder",
		"orderID", o.ID,
		"amount", o.Amount,
		"city", o.Form.City,
	)
	return nil
}
