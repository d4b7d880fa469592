package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const OrderConfirmedSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.orders",
	"name": "order_confirmed",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "customer", "type": {
			"type": "record",
			"name": "customer",
			"fields": [
				{"name": "full_name", "type": "string"},
				{"name": "email", "type": "string"},
				{"name": "phone", "type": "string"},
				{"name": "address", "type": "string"},
				{"name": "city", "type": "string"},
				{"name": "pin", "type": "string"}
			]
		}},
		{"name": "payment", "type": "string"},
		{"name": "lines", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_line",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "name", "type": "string"},
					{"name": "size", "type": "string"},
					{"name": "price", "type": "long"},
					{"name": "qty", "type": "int"}
				]
			}
		}},
		{"name": "amount", "type": "long"},
		{"name": "currency", "type": "string"},
		{"name": "placed_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	OrderConfirmedV1 struct {
		OrderID  string          `avro:"order_id"`
		Customer OrderCustomerV1 `avro:"customer"`
		Payment  string          `avro:"payment"`
		Lines    []OrderLineV1   `avro:"lines"`
		Amount   int64           `avro:"amount"`
		Currency string          `avro:"currency"`
		PlacedAt time.Time       `avro:"placed_at"`
	}

	OrderCustomerV1 struct {
		FullName string `avro:"full_name"`
		Email    string `avro:"email"`
		Phone    string `avro:"phone"`
		Address  string `avro:"address"`
		City     string `avro:"city"`
		PIN      string `avro:"pin"`
	}

	OrderLineV1 struct {
		ProductID string `avro:"product_id"`
		Name      string `avro:"name"`
		Size      string `avro:"size"`
		Price     int64  `avro:"price"`
		Qty       int    `avro:"qty"`
	}
)

// OrderConfirmedV1Avro panics if the schema text is invalid.
func OrderConfirmedV1Avro() avro.Schema {
	return avro.MustParse(OrderConfirmedSchemaTextV1)
}
