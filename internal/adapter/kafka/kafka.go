// Package kafka publishes storefront events to Kafka.
package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

// OrderCurrency is the ISO code of every order amount.
const OrderCurrency = "INR"

var (
	ErrTooFewOpts = errors.New("too few options")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

// ProducerClientOpt connects to the brokers. A nil tlsCfg dials plain TCP.
func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string, tlsCfg *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
		}
		if tlsCfg != nil {
			kopts = append(kopts, kgo.DialTLSConfig(tlsCfg))
		}

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerWithClientOpt uses an already connected client.
func ProducerWithClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(v domain.Order) (s schema.OrderConfirmedV1) {
	s.OrderID = v.ID
	s.Customer.FullName = v.Form.FullName
	s.Customer.Email = v.Form.Email
	s.Customer.Phone = v.Form.Phone
	s.Customer.Address = v.Form.Address
	s.Customer.City = v.Form.City
	s.Customer.PIN = v.Form.PIN
	s.Payment = v.Form.Payment
	s.Amount = v.Amount
	s.Currency = OrderCurrency
	s.PlacedAt = v.Date

	s.Lines = make([]schema.OrderLineV1, len(v.Lines))
	for i, l := range v.Lines {
		s.Lines[i].ProductID = l.ID
		s.Lines[i].Name = l.Name
		s.Lines[i].Size = l.Size
		s.Lines[i].Price = l.Price
		s.Lines[i].Qty = l.Qty
	}
	return
}
