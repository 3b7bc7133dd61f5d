package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/internal/validation"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// Usage lists the syntax of each command.
var Usage = map[models.CommandType]string{
	models.CommandAdd:    "/add <id> <name> <quantity> <price>, e.g. /add P1 Widget 10 2.5",
	models.CommandAdjust: "/adjust <id> <delta>, e.g. /adjust P1 -3",
	models.CommandSell:   "/sell <id> <quantity>, e.g. /sell P1 2",
	models.CommandRemove: "/remove <id>",
	models.CommandStock:  "/stock <id>",
	models.CommandList:   "/list",
	models.CommandValue:  "/value",
	models.CommandReport: "/report",
}

// Help is sent back for unknown commands.
const Help = "Unknown command. Supported: /add, /adjust, /sell, /remove, /stock, /list, /value, /report."

// ReportBuilder produces the on-demand report.
type ReportBuilder interface {
	Generate() models.InventoryReport
}

// Dispatcher executes parsed chat commands against the inventory.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	inventory inventory.Manager
	reporting ReportBuilder
	logger    *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(inv inventory.Manager, reports ReportBuilder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventory: inv,
		reporting: reports,
		logger:    logger,
	}
}

// HandleCommand runs cmd and returns the reply text. Parsing problems come
// back as ErrInvalidArguments; inventory rule violations come back as the
// typed errors from the models package.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandAdd:
		return s.add(cmd.Args)
	case models.CommandAdjust:
		return s.adjust(cmd.Args)
	case models.CommandSell:
		return s.sell(cmd.Args)
	case models.CommandRemove:
		if len(cmd.Args) != 1 {
			return "", ErrInvalidArguments
		}
		if err := s.inventory.RemoveProduct(cmd.Args[0]); err != nil {
			return "", err
		}
		return fmt.Sprintf("Product %s removed.", cmd.Args[0]), nil
	case models.CommandStock:
		if len(cmd.Args) != 1 {
			return "", ErrInvalidArguments
		}
		record, err := s.inventory.GetProduct(cmd.Args[0])
		if err != nil {
			return "", err
		}
		return describe(record), nil
	case models.CommandList:
		return listing(s.inventory.ListProducts()), nil
	case models.CommandValue:
		return fmt.Sprintf("Inventory value: %.2f", s.inventory.InventoryValue()), nil
	case models.CommandReport:
		if s.reporting == nil {
			return "", ErrUnsupportedCommand
		}
		return reporting.Summary(s.reporting.Generate()), nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func (s *Service) add(args []string) (string, error) {
	if len(args) < 4 {
		return "", ErrInvalidArguments
	}

	id := args[0]
	name := strings.Join(args[1:len(args)-2], " ")

	quantity, err := parseQuantity(args[len(args)-2])
	if err != nil {
		return "", err
	}

	price, err := strconv.ParseFloat(args[len(args)-1], 64)
	if err != nil {
		return "", ErrInvalidArguments
	}

	record, err := s.inventory.AddProduct(id, name, quantity, price)
	if err != nil {
		return "", err
	}
	return "Product added. " + describe(record), nil
}

func (s *Service) adjust(args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrInvalidArguments
	}

	delta, err := strconv.Atoi(strings.TrimPrefix(args[1], "+"))
	if err != nil {
		return "", ErrInvalidArguments
	}

	record, err := s.inventory.AdjustStock(args[0], delta)
	if err != nil {
		return "", err
	}
	return "Stock adjusted. " + describe(record), nil
}

func (s *Service) sell(args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrInvalidArguments
	}

	quantity, err := parseQuantity(args[1])
	if err != nil {
		return "", err
	}

	record, err := s.inventory.SellProduct(args[0], quantity)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Sold %d of %s. %d left.", quantity, record.Name, record.Quantity), nil
}

// parseQuantity accepts any number and leaves the whole-number rule to the
// validator so that "2.5" is reported as a quantity error.
func parseQuantity(raw string) (int, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ErrInvalidArguments
	}
	qty, res := validation.WholeQuantity(v)
	if !res.Valid {
		return 0, res.Err()
	}
	return qty, nil
}

func describe(r models.StockRecord) string {
	return fmt.Sprintf("%s %s: %d @ %.2f", r.ID, r.Name, r.Quantity, r.UnitPrice)
}

func listing(records []models.StockRecord) string {
	if len(records) == 0 {
		return "Inventory is empty."
	}
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, fmt.Sprintf("%d products:", len(records)))
	for _, r := range records {
		lines = append(lines, "- "+describe(r))
	}
	return strings.Join(lines, "\n")
}
