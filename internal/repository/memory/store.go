// Package memory keeps stock records in process memory.
package memory

import "github.com/mamadbah2/stockroom/internal/domain/models"

// Store maps identifiers to stock records and remembers insertion order.
// It performs no locking; callers that share it across goroutines must
// serialize access themselves.
type Store struct {
	records map[string]models.StockRecord
	order   []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]models.StockRecord)}
}

// Get returns a copy of the record stored under id.
func (s *Store) Get(id string) (models.StockRecord, error) {
	record, ok := s.records[id]
	if !ok {
		return models.StockRecord{}, &models.NotFoundError{ID: id}
	}
	return record, nil
}

// Put inserts the record or overwrites the existing one with the same
// identifier. An overwritten record keeps its original position.
func (s *Store) Put(record models.StockRecord) {
	if _, exists := s.records[record.ID]; !exists {
		s.order = append(s.order, record.ID)
	}
	s.records[record.ID] = record
}

// Delete removes the record stored under id.
func (s *Store) Delete(id string) error {
	if _, ok := s.records[id]; !ok {
		return &models.NotFoundError{ID: id}
	}
	delete(s.records, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListAll returns every record in insertion order.
func (s *Store) ListAll() []models.StockRecord {
	out := make([]models.StockRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}
