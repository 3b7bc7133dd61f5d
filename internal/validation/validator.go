// Package validation holds the stateless field checks applied before any
// inventory mutation.
package validation

import (
	"math"
	"strings"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Field names reported in failed results.
const (
	FieldIdentifier = "identifier"
	FieldName       = "name"
	FieldQuantity   = "quantity"
	FieldPrice      = "price"
)

// Result is the outcome of a single check.
type Result struct {
	Valid  bool
	Field  string
	Reason string
}

// Err returns nil for a valid result and a *models.ValidationError otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &models.ValidationError{Field: r.Field, Reason: r.Reason}
}

func ok() Result { return Result{Valid: true} }

func fail(field, reason string) Result {
	return Result{Field: field, Reason: reason}
}

// Identifier rejects empty or whitespace-only identifiers.
func Identifier(id string) Result {
	if strings.TrimSpace(id) == "" {
		return fail(FieldIdentifier, "identifier must not be empty")
	}
	return ok()
}

// Name rejects empty or whitespace-only names.
func Name(name string) Result {
	if strings.TrimSpace(name) == "" {
		return fail(FieldName, "name must not be empty")
	}
	return ok()
}

// Quantity rejects negative quantities.
func Quantity(qty int) Result {
	if qty < 0 {
		return fail(FieldQuantity, "quantity must not be negative")
	}
	return ok()
}

// WholeQuantity checks an untyped numeric input (JSON, chat text) and
// converts it to an int when it is a non-negative whole number.
func WholeQuantity(v float64) (int, Result) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fail(FieldQuantity, "quantity must be a whole number")
	}
	if v > math.MaxInt32 {
		return 0, fail(FieldQuantity, "quantity is too large")
	}
	qty := int(v)
	if res := Quantity(qty); !res.Valid {
		return 0, res
	}
	return qty, ok()
}

// Price rejects zero, negative and NaN prices.
func Price(price float64) Result {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fail(FieldPrice, "price must be a finite number")
	}
	if price <= 0 {
		return fail(FieldPrice, "price must be greater than zero")
	}
	return ok()
}

// ProductValidator exposes the checks as methods so they can be injected.
type ProductValidator struct{}

// New returns the default product validator.
func New() ProductValidator { return ProductValidator{} }

func (ProductValidator) Identifier(id string) Result { return Identifier(id) }

func (ProductValidator) Name(name string) Result { return Name(name) }

func (ProductValidator) Quantity(qty int) Result { return Quantity(qty) }

func (ProductValidator) Price(price float64) Result { return Price(price) }

// Product runs identifier, name, quantity and price checks in that order and
// returns the first failure.
func (v ProductValidator) Product(id, name string, qty int, price float64) Result {
	for _, res := range []Result{v.Identifier(id), v.Name(name), v.Quantity(qty), v.Price(price)} {
		if !res.Valid {
			return res
		}
	}
	return ok()
}
