package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

type MockProducerClient struct {
	mock.Mock
}

func (c *MockProducerClient) ProduceSync(
	ctx context.Context, rs ...*kgo.Record,
) kgo.ProduceResults {
	args := c.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func (c *MockProducerClient) Close() {
	c.Called()
}

type MockEncoder struct {
	mock.Mock
}

func (e *MockEncoder) Encode(v any) ([]byte, error) {
	args := e.Called(v)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func testOrder() domain.Order {
	return domain.Order{
		ID: "order-1",
		Form: domain.OrderForm{
			FullName: "Asha Rao",
			Email:    "asha@example.com",
			Phone:    "9876543210",
			Address:  "12 MG Road",
			City:     "Pune",
			PIN:      "411001",
			Payment:  "cod",
		},
		Lines: []domain.CartLine{
			{ID: "D001", Name: "Floral Summer Dress", Price: 1299, Size: "M", Qty: 1},
		},
		Amount: 1443,
		Date:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func wantSchema() schema.OrderConfirmedV1 {
	return schema.OrderConfirmedV1{
		OrderID: "order-1",
		Customer: schema.OrderCustomerV1{
			FullName: "Asha Rao",
			Email:    "asha@example.com",
			Phone:    "9876543210",
			Address:  "12 MG Road",
			City:     "Pune",
			PIN:      "411001",
		},
		Payment: "cod",
		Lines: []schema.OrderLineV1{
			{ProductID: "D001", Name: "Floral Summer Dress", Size: "M", Price: 1299, Qty: 1},
		},
		Amount:   1443,
		Currency: "INR",
		PlacedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func newProducer(
	t *testing.T, cl *MockProducerClient, enc *MockEncoder,
) kafka.OrdersProducer {
	t.Helper()
	p, err := kafka.NewOrdersProducer(
		kafka.ProducerWithClientOpt(cl),
		kafka.ProducerEncoderOpt(enc),
	)
	require.NoError(t, err)
	return p
}

func TestOrdersProducer(t *testing.T) {
	t.Run("TooFewOpts", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = kafka.NewOrdersProducer()
		})
	})

	t.Run("NilEncoder", func(t *testing.T) {
		_, err := kafka.NewOrdersProducer(
			kafka.ProducerWithClientOpt(new(MockProducerClient)),
			kafka.ProducerEncoderOpt(nil),
		)
		assert.Error(t, err)
	})

	t.Run("NotifyOrder", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		p := newProducer(t, cl, enc)

		payload := []byte("encoded")
		enc.On("Encode", wantSchema()).Return(payload, nil)
		cl.On("ProduceSync", mock.Anything, mock.MatchedBy(
			func(rs []*kgo.Record) bool {
				return len(rs) == 1 &&
					string(rs[0].Key) == "order-1" &&
					string(rs[0].Value) == "encoded"
			},
		)).Return(kgo.ProduceResults{{}})

		require.NoError(t, p.NotifyOrder(t.Context(), testOrder()))
		enc.AssertExpectations(t)
		cl.AssertExpectations(t)
	})

	t.Run("EncodeFailure", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		p := newProducer(t, cl, enc)

		enc.On("Encode", mock.Anything).Return(nil, errors.New("bad schema"))

		assert.Error(t, p.NotifyOrder(t.Context(), testOrder()))
		cl.AssertNotCalled(t, "ProduceSync", mock.Anything, mock.Anything)
	})

	t.Run("RetriesRetriableError", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		p := newProducer(t, cl, enc)

		enc.On("Encode", mock.Anything).Return([]byte("encoded"), nil)
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: kerr.NotLeaderForPartition}}).Once()
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{}}).Once()

		require.NoError(t, p.NotifyOrder(t.Context(), testOrder()))
		cl.AssertNumberOfCalls(t, "ProduceSync", 2)
	})

	t.Run("FatalError", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		p := newProducer(t, cl, enc)

		enc.On("Encode", mock.Anything).Return([]byte("encoded"), nil)
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: kerr.TopicAuthorizationFailed}})

		err := p.NotifyOrder(t.Context(), testOrder())
		assert.ErrorIs(t, err, kerr.TopicAuthorizationFailed)
		cl.AssertNumberOfCalls(t, "ProduceSync", 1)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		p := newProducer(t, new(MockProducerClient), new(MockEncoder))
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		assert.ErrorIs(t, p.NotifyOrder(ctx, testOrder()), context.Canceled)
	})

	t.Run("Close", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On("Close").Return()
		p := newProducer(t, cl, new(MockEncoder))
		p.Close()
		cl.AssertExpectations(t)
	})
}
