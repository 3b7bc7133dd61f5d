package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

func TestName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		valid bool
	}{
		{"regular", "Widget", true},
		{"padded", "  Widget ", true},
		{"empty", "", false},
		{"spaces", "   ", false},
		{"tabs and newlines", "\t\n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Name(tc.input)
			if res.Valid != tc.valid {
				t.Fatalf("Name(%q).Valid = %v, want %v", tc.input, res.Valid, tc.valid)
			}
			if !res.Valid && res.Field != FieldName {
				t.Fatalf("unexpected field %q", res.Field)
			}
		})
	}
}

func TestQuantity(t *testing.T) {
	for _, qty := range []int{0, 1, 1000} {
		if res := Quantity(qty); !res.Valid {
			t.Fatalf("Quantity(%d) rejected: %s", qty, res.Reason)
		}
	}
	res := Quantity(-1)
	if res.Valid || res.Field != FieldQuantity {
		t.Fatalf("expected negative quantity to fail on quantity, got %+v", res)
	}
}

func TestWholeQuantity(t *testing.T) {
	qty, res := WholeQuantity(12)
	if !res.Valid || qty != 12 {
		t.Fatalf("WholeQuantity(12) = %d, %+v", qty, res)
	}
	for _, v := range []float64{2.5, -3, math.NaN(), math.Inf(1), 1e12} {
		if _, res := WholeQuantity(v); res.Valid || res.Field != FieldQuantity {
			t.Fatalf("WholeQuantity(%v) should fail on quantity, got %+v", v, res)
		}
	}
}

func TestPrice(t *testing.T) {
	if res := Price(0.01); !res.Valid {
		t.Fatalf("positive price rejected: %s", res.Reason)
	}
	for _, p := range []float64{0, -1, math.NaN(), math.Inf(-1)} {
		if res := Price(p); res.Valid || res.Field != FieldPrice {
			t.Fatalf("Price(%v) should fail, got %+v", p, res)
		}
	}
}

func TestProductReturnsFirstFailure(t *testing.T) {
	v := New()
	res := v.Product("P1", "", -1, 0)
	if res.Field != FieldName {
		t.Fatalf("expected name to fail first, got %q", res.Field)
	}
	res = v.Product("", "", -1, 0)
	if res.Field != FieldIdentifier {
		t.Fatalf("expected identifier to fail first, got %q", res.Field)
	}
	res = v.Product("P1", "Widget", -1, 0)
	if res.Field != FieldQuantity {
		t.Fatalf("expected quantity to fail first, got %q", res.Field)
	}
	if res := v.Product("P1", "Widget", 0, 2.5); !res.Valid {
		t.Fatalf("expected valid product, got %+v", res)
	}
}

func TestResultErr(t *testing.T) {
	if err := Name("ok").Err(); err != nil {
		t.Fatalf("valid result returned error %v", err)
	}
	err := Price(-2).Err()
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Field != FieldPrice {
		t.Fatalf("expected price validation error, got %v", err)
	}
}
