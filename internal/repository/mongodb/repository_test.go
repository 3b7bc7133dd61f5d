package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// These tests need a reachable server; set MONGODB_TEST_URI to run them.
func newTestRepository(t *testing.T) *MongoDBRepository {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := "stockroom_test_" + time.Now().UTC().Format("20060102150405")
	repo, err := NewMongoDBRepository(ctx, uri, dbName)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.client.Database(dbName).Drop(context.Background())
		_ = repo.Close(context.Background())
	})
	return repo
}

func TestSaveAndLoadLatestReport(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.LatestReport(ctx); err != ErrNoReports {
		t.Fatalf("expected ErrNoReports on empty collection, got %v", err)
	}

	older := models.InventoryReport{GeneratedAt: time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC), ProductCount: 1}
	newer := models.InventoryReport{
		GeneratedAt:  time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC),
		ProductCount: 2,
		TotalValue:   1100,
		LowStock:     []models.StockRecord{{ID: "C", Name: "Product C", Quantity: 4, UnitPrice: 25}},
	}
	for _, r := range []models.InventoryReport{older, newer} {
		if err := repo.SaveInventoryReport(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	latest, err := repo.LatestReport(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ProductCount != 2 || latest.TotalValue != 1100 || len(latest.LowStock) != 1 {
		t.Fatalf("unexpected latest report %+v", latest)
	}
}
