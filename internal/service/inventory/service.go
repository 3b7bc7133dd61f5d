// Package inventory implements the stock business rules on top of the
// in-memory store.
package inventory

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/validation"
)

// Store is the record holder the service mutates.
type Store interface {
	Get(id string) (models.StockRecord, error)
	Put(record models.StockRecord)
	Delete(id string) error
	ListAll() []models.StockRecord
	Len() int
}

// Validator runs the field checks for new products and stock changes.
type Validator interface {
	Product(id, name string, quantity int, price float64) validation.Result
	Quantity(quantity int) validation.Result
}

// Observer receives the outcome of every operation.
type Observer interface {
	ObserveOperation(operation string, err error)
	SetProducts(n int)
}

// Manager is the operation surface shared by the HTTP, chat and reporting
// adapters.
type Manager interface {
	AddProduct(id, name string, quantity int, price float64) (models.StockRecord, error)
	AdjustStock(id string, delta int) (models.StockRecord, error)
	SellProduct(id string, quantity int) (models.StockRecord, error)
	RemoveProduct(id string) error
	GetProduct(id string) (models.StockRecord, error)
	ListProducts() []models.StockRecord
	InventoryValue() float64
	Journal() []models.JournalEntry
}

// Service validates input before touching the store: a failed operation
// never leaves a partial write behind.
type Service struct {
	store     Store
	validator Validator
	observer  Observer
	logger    *zap.Logger
	now       func() time.Time
	journal   []models.JournalEntry
}

// Option customizes a Service.
type Option func(*Service)

// WithObserver reports operation outcomes to o.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock overrides the journal clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a service over store and validator.
func NewService(store Store, validator Validator, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:     store,
		validator: validator,
		observer:  nopObserver{},
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddProduct validates and stores a new record. Identifiers already in the
// store are rejected with a *models.DuplicateError.
func (s *Service) AddProduct(id, name string, quantity int, price float64) (record models.StockRecord, err error) {
	defer func() { s.observe(models.OperationAdd, err) }()

	if res := s.validator.Product(id, name, quantity, price); !res.Valid {
		s.record(models.OperationAdd, id, "validation error: "+res.Reason)
		s.logger.Info("product rejected",
			zap.String("product_id", id),
			zap.String("field", res.Field),
			zap.String("reason", res.Reason))
		return models.StockRecord{}, res.Err()
	}

	if _, err := s.store.Get(id); err == nil {
		return models.StockRecord{}, &models.DuplicateError{ID: id}
	}

	record = models.StockRecord{ID: id, Name: name, Quantity: quantity, UnitPrice: price}
	s.store.Put(record)

	s.record(models.OperationAdd, id, fmt.Sprintf("product added: %s (ID: %s)", name, id))
	s.logger.Info("product added",
		zap.String("product_id", id),
		zap.String("name", name),
		zap.Int("quantity", quantity),
		zap.Float64("unit_price", price))

	return record, nil
}

// AdjustStock applies delta to the stored quantity. A result below zero is
// rejected and the stored quantity is left as it was.
func (s *Service) AdjustStock(id string, delta int) (record models.StockRecord, err error) {
	defer func() { s.observe(models.OperationAdjust, err) }()

	record, err = s.store.Get(id)
	if err != nil {
		return models.StockRecord{}, err
	}

	if delta > 0 && record.Quantity > math.MaxInt-delta {
		return models.StockRecord{}, &models.ValidationError{Field: validation.FieldQuantity, Reason: "quantity would overflow"}
	}

	next := record.Quantity + delta
	if res := s.validator.Quantity(next); !res.Valid {
		return models.StockRecord{}, &models.ValidationError{
			Field:  validation.FieldQuantity,
			Reason: fmt.Sprintf("adjustment of %d would leave %d in stock", delta, next),
		}
	}

	previous := record.Quantity
	record.Quantity = next
	s.store.Put(record)

	s.record(models.OperationAdjust, id, fmt.Sprintf("stock adjusted: %s %d -> %d", record.Name, previous, next))
	s.logger.Info("stock adjusted",
		zap.String("product_id", id),
		zap.Int("delta", delta),
		zap.Int("quantity", next))

	return record, nil
}

// SellProduct removes quantity units from stock. The quantity must be
// positive and not exceed what is available.
func (s *Service) SellProduct(id string, quantity int) (record models.StockRecord, err error) {
	defer func() { s.observe(models.OperationSell, err) }()

	record, err = s.store.Get(id)
	if err != nil {
		return models.StockRecord{}, err
	}

	if quantity <= 0 {
		return models.StockRecord{}, &models.ValidationError{Field: validation.FieldQuantity, Reason: "sale quantity must be greater than zero"}
	}
	if record.Quantity < quantity {
		return models.StockRecord{}, &models.ValidationError{
			Field:  validation.FieldQuantity,
			Reason: fmt.Sprintf("insufficient stock, available: %d", record.Quantity),
		}
	}

	record.Quantity -= quantity
	s.store.Put(record)

	s.record(models.OperationSell, id, fmt.Sprintf("sale registered: %d units of %s", quantity, record.Name))
	s.logger.Info("sale registered",
		zap.String("product_id", id),
		zap.Int("sold", quantity),
		zap.Int("quantity", record.Quantity))

	return record, nil
}

// RemoveProduct deletes the record stored under id.
func (s *Service) RemoveProduct(id string) (err error) {
	defer func() { s.observe(models.OperationRemove, err) }()

	record, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}

	s.record(models.OperationRemove, id, fmt.Sprintf("product removed: %s (ID: %s)", record.Name, id))
	s.logger.Info("product removed", zap.String("product_id", id))
	return nil
}

// GetProduct returns the record stored under id.
func (s *Service) GetProduct(id string) (record models.StockRecord, err error) {
	defer func() { s.observe(models.OperationGet, err) }()
	return s.store.Get(id)
}

// ListProducts returns every record in insertion order.
func (s *Service) ListProducts() []models.StockRecord {
	return s.store.ListAll()
}

// InventoryValue sums unit price times quantity over every record.
func (s *Service) InventoryValue() float64 {
	return TotalValue(s.store.ListAll())
}

// Journal returns a copy of the recorded events, oldest first.
func (s *Service) Journal() []models.JournalEntry {
	out := make([]models.JournalEntry, len(s.journal))
	copy(out, s.journal)
	return out
}

// TotalValue sums price times quantity in decimal arithmetic so that
// amounts like 0.1 + 0.2 do not drift.
func TotalValue(records []models.StockRecord) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.UnitPrice).Mul(decimal.NewFromInt(int64(r.Quantity))))
	}
	return total.InexactFloat64()
}

func (s *Service) record(operation, id, message string) {
	s.journal = append(s.journal, models.JournalEntry{
		ID:        uuid.New(),
		At:        s.now().UTC(),
		Operation: operation,
		ProductID: id,
		Message:   message,
	})
}

func (s *Service) observe(operation string, err error) {
	s.observer.ObserveOperation(operation, err)
	s.observer.SetProducts(s.store.Len())
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, error) {}

func (nopObserver) SetProducts(int) {}
