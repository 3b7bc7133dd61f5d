package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/internal/validation"
)

type stubReports struct {
	latest models.InventoryReport
	err    error
}

func (s stubReports) Generate() models.InventoryReport {
	return models.InventoryReport{ProductCount: 1}
}

func (s stubReports) Latest(context.Context) (models.InventoryReport, error) {
	return s.latest, s.err
}

func newTestEngine(reports Reports) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := inventory.NewService(memory.NewStore(), validation.New(), nil)
	h := NewInventoryHandler(svc, reports, nil)

	r := gin.New()
	r.POST("/products", h.Create)
	r.PATCH("/products/:id/stock", h.AdjustStock)
	r.POST("/products/:id/sales", h.Sell)
	r.GET("/inventory/reports/latest", h.LatestReport)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateStatusCodes(t *testing.T) {
	r := newTestEngine(stubReports{})

	cases := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"valid", `{"id":"P1","name":"Laptop","quantity":10,"price":999.99}`, http.StatusCreated, ""},
		{"duplicate", `{"id":"P1","name":"Other","quantity":1,"price":1}`, http.StatusConflict, ""},
		{"blank name", `{"id":"P2","name":"  ","quantity":1,"price":1}`, http.StatusBadRequest, validation.FieldName},
		{"fractional quantity", `{"id":"P3","name":"Cable","quantity":1.5,"price":1}`, http.StatusBadRequest, validation.FieldQuantity},
		{"zero price", `{"id":"P4","name":"Cable","quantity":1,"price":0}`, http.StatusBadRequest, validation.FieldPrice},
		{"missing quantity", `{"id":"P5","name":"Cable","price":1}`, http.StatusBadRequest, ""},
		{"malformed", `{"id":`, http.StatusBadRequest, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/products", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if tc.field == "" {
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["field"] != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, body["field"])
			}
		})
	}
}

func TestAdjustAndSellErrors(t *testing.T) {
	r := newTestEngine(stubReports{})
	if rec := do(r, http.MethodPost, "/products", `{"id":"P1","name":"Laptop","quantity":3,"price":10}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed failed: %d", rec.Code)
	}

	if rec := do(r, http.MethodPatch, "/products/P1/stock", `{"delta":-4}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative result, got %d", rec.Code)
	}
	if rec := do(r, http.MethodPatch, "/products/NOPE/stock", `{"delta":1}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}
	if rec := do(r, http.MethodPatch, "/products/P1/stock", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing delta, got %d", rec.Code)
	}

	rec := do(r, http.MethodPost, "/products/P1/sales", `{"quantity":5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversell, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "insufficient stock") {
		t.Fatalf("unexpected oversell body: %s", rec.Body.String())
	}

	rec = do(r, http.MethodPost, "/products/P1/sales", `{"quantity":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for sale, got %d", rec.Code)
	}
	var record models.StockRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.Quantity != 0 {
		t.Fatalf("expected 0 left, got %d", record.Quantity)
	}
}

func TestLatestReportStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"archived", nil, http.StatusOK},
		{"archive disabled", reporting.ErrArchiveDisabled, http.StatusServiceUnavailable},
		{"no reports", fmt.Errorf("load: %w", mongodb.ErrNoReports), http.StatusNotFound},
		{"backend failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestEngine(stubReports{latest: models.InventoryReport{ProductCount: 2}, err: tc.err})
			rec := do(r, http.MethodGet, "/inventory/reports/latest", "")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}
