package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
)

const (
	dateLayout       = "2006-01-02 15:04"
	stockSheetRange  = "Stock!A:D"
	reportSheetRange = "Reports!A:E"
)

// ErrArchiveDisabled is returned by Latest when no archive is configured.
var ErrArchiveDisabled = errors.New("report archive is not configured")

// Inventory is the read side of the inventory the reports are built from.
type Inventory interface {
	ListProducts() []models.StockRecord
}

// Service builds inventory reports and publishes them to the configured
// sinks.
type Service struct {
	inventory Inventory
	archive   mongodb.Repository
	sheets    sheets.Repository
	threshold int
	logger    *zap.Logger
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithArchive stores every published report in repo.
func WithArchive(repo mongodb.Repository) Option {
	return func(s *Service) { s.archive = repo }
}

// WithSheets exports every published report to repo.
func WithSheets(repo sheets.Repository) Option {
	return func(s *Service) { s.sheets = repo }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a new reporting service instance. Records whose quantity
// is at or below threshold are listed as low stock.
func NewService(inv Inventory, threshold int, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{inventory: inv, threshold: threshold, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate snapshots the inventory into a report.
func (s *Service) Generate() models.InventoryReport {
	products := s.inventory.ListProducts()

	report := models.InventoryReport{
		GeneratedAt:  s.now().UTC(),
		ProductCount: len(products),
		TotalValue:   inventory.TotalValue(products),
		Threshold:    s.threshold,
		LowStock:     []models.StockRecord{},
		Products:     products,
	}
	for _, p := range products {
		report.TotalUnits += p.Quantity
		if p.Quantity <= s.threshold {
			report.LowStock = append(report.LowStock, p)
		}
	}
	return report
}

// Publish sends report to every configured sink concurrently and returns the
// first failure.
func (s *Service) Publish(ctx context.Context, report models.InventoryReport) error {
	g, ctx := errgroup.WithContext(ctx)

	if s.archive != nil {
		g.Go(func() error {
			if err := s.archive.SaveInventoryReport(ctx, report); err != nil {
				return fmt.Errorf("archive report: %w", err)
			}
			return nil
		})
	}

	if s.sheets != nil {
		g.Go(func() error {
			if err := s.sheets.ReplaceRange(ctx, stockSheetRange, stockRows(report.Products)); err != nil {
				return fmt.Errorf("export stock sheet: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			row := []interface{}{
				report.GeneratedAt.Format(dateLayout),
				report.ProductCount,
				report.TotalUnits,
				report.TotalValue,
				len(report.LowStock),
			}
			if err := s.sheets.AppendRow(ctx, reportSheetRange, row); err != nil {
				return fmt.Errorf("append report row: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("report publication failed", zap.Error(err))
		return err
	}

	s.logger.Info("inventory report published",
		zap.Int("products", report.ProductCount),
		zap.Float64("total_value", report.TotalValue),
		zap.Int("low_stock", len(report.LowStock)))
	return nil
}

// Run generates and publishes a report.
func (s *Service) Run(ctx context.Context) (models.InventoryReport, error) {
	report := s.Generate()
	if err := s.Publish(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// Latest returns the most recently archived report.
func (s *Service) Latest(ctx context.Context) (models.InventoryReport, error) {
	if s.archive == nil {
		return models.InventoryReport{}, ErrArchiveDisabled
	}
	return s.archive.LatestReport(ctx)
}

// Summary renders report as a short chat message.
func Summary(report models.InventoryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Inventory report (%s UTC)\n", report.GeneratedAt.Format(dateLayout))
	fmt.Fprintf(&b, "Products: %d, units: %d, value: %.2f", report.ProductCount, report.TotalUnits, report.TotalValue)

	if len(report.LowStock) == 0 {
		fmt.Fprintf(&b, "\nNo product at or below %d units.", report.Threshold)
		return b.String()
	}

	fmt.Fprintf(&b, "\nLow stock (<= %d):", report.Threshold)
	for _, p := range report.LowStock {
		fmt.Fprintf(&b, "\n- %s %s: %d", p.ID, p.Name, p.Quantity)
	}
	return b.String()
}

func stockRows(products []models.StockRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(products)+1)
	rows = append(rows, []interface{}{"ID", "Name", "Quantity", "Unit price"})
	for _, p := range products {
		rows = append(rows, []interface{}{p.ID, p.Name, p.Quantity, p.UnitPrice})
	}
	return rows
}
