package models

import (
	"time"

	"github.com/google/uuid"
)

// StockRecord is one inventory line keyed by its identifier. A record whose
// quantity reaches zero stays in the store until it is removed explicitly.
type StockRecord struct {
	ID        string  `json:"id" bson:"id"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
}

// Value returns quantity times unit price.
func (r StockRecord) Value() float64 {
	return float64(r.Quantity) * r.UnitPrice
}

// Operation names used by the journal and the metrics.
const (
	OperationAdd    = "add"
	OperationAdjust = "adjust"
	OperationSell   = "sell"
	OperationRemove = "remove"
	OperationGet    = "get"
)

// JournalEntry records a single inventory event.
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	At        time.Time `json:"at"`
	Operation string    `json:"operation"`
	ProductID string    `json:"product_id,omitempty"`
	Message   string    `json:"message"`
}

// InventoryReport is a point-in-time summary of the stock.
type InventoryReport struct {
	GeneratedAt  time.Time     `json:"generated_at" bson:"generated_at"`
	ProductCount int           `json:"product_count" bson:"product_count"`
	TotalUnits   int           `json:"total_units" bson:"total_units"`
	TotalValue   float64       `json:"total_value" bson:"total_value"`
	Threshold    int           `json:"low_stock_threshold" bson:"low_stock_threshold"`
	LowStock     []StockRecord `json:"low_stock" bson:"low_stock"`
	Products     []StockRecord `json:"products,omitempty" bson:"products"`
}
