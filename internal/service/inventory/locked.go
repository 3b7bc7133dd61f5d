package inventory

import (
	"sync"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Locked serializes calls into a Manager. The HTTP server, the chat webhook
// and the scheduler all run on their own goroutines while the store itself
// does no locking.
type Locked struct {
	mu   sync.Mutex
	next Manager
}

// NewLocked wraps next.
func NewLocked(next Manager) *Locked {
	return &Locked{next: next}
}

func (l *Locked) AddProduct(id, name string, quantity int, price float64) (models.StockRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.AddProduct(id, name, quantity, price)
}

func (l *Locked) AdjustStock(id string, delta int) (models.StockRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.AdjustStock(id, delta)
}

func (l *Locked) SellProduct(id string, quantity int) (models.StockRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.SellProduct(id, quantity)
}

func (l *Locked) RemoveProduct(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.RemoveProduct(id)
}

func (l *Locked) GetProduct(id string) (models.StockRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.GetProduct(id)
}

func (l *Locked) ListProducts() []models.StockRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.ListProducts()
}

func (l *Locked) InventoryValue() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.InventoryValue()
}

func (l *Locked) Journal() []models.JournalEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next.Journal()
}
