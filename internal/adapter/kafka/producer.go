package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.OrderNotifier = (*OrdersProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
	retryCfg retry.RetryConfig
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	err := retry.Do(ctx, p.retryCfg, func() error {
		return p.cl.ProduceSync(ctx, rs...).FirstErr()
	})
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func defaultRetryConfig() retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(50 * time.Millisecond),
		ShouldRetry: kerr.IsRetriable,
	}
}

// An OrdersProducer publishes every placed [domain.Order],
// keyed by the order ID.
type OrdersProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

// NewOrdersProducer requires a client option and [ProducerEncoderOpt].
func NewOrdersProducer(
	opts ...ProducerOpt,
) (OrdersProducer, error) {
	const op = "NewOrdersProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrdersProducer{}, opErr(err, op)
		}
	}

	opPrefix := "OrdersProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
		retryCfg: defaultRetryConfig(),
	}

	return OrdersProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p OrdersProducer) Close() {
	p.producer.close()
}

func (p OrdersProducer) NotifyOrder(
	ctx context.Context, o domain.Order,
) error {
	const op = "NotifyOrder"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(o)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	slog.Debug("order is published",
		"op", makeOp(p.opPrefix, op), "orderID", o.ID,
	)
	return nil
}

func (p OrdersProducer) createRecord(o domain.Order) (*kgo.Record, error) {
	const op = "createRecord"

	b, err := p.encoder.Encode(orderToSchemaV1(o))
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(o.ID), Value: b}, nil
}
