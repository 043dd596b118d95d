package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/api/middleware"
	"github.com/omc-erp/omc-backend/internal/transactions"
	"github.com/omc-erp/omc-backend/pkg/db/models"
	"github.com/omc-erp/omc-backend/pkg/enums"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/pagination"
)

type testEngine struct {
	createFn   func(ctx context.Context, input transactions.CreateInput) (*models.Transaction, error)
	completeFn func(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error)
	cancelFn   func(ctx context.Context, id, tenantID uuid.UUID, reason string) (*models.Transaction, error)
	refundFn   func(ctx context.Context, input transactions.RefundInput) (*models.Transaction, error)
	findOneFn  func(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error)
	findAllFn  func(ctx context.Context, tenantID uuid.UUID, filters transactions.ListFilters, params pagination.Params) ([]models.Transaction, pagination.Meta, error)
	summaryFn  func(ctx context.Context, tenantID uuid.UUID, day time.Time) (*transactions.DailySummary, error)
}

func (e *testEngine) Create(ctx context.Context, input transactions.CreateInput) (*models.Transaction, error) {
	if e.createFn != nil {
		return e.createFn(ctx, input)
	}
	return nil, nil
}

func (e *testEngine) Complete(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error) {
	if e.completeFn != nil {
		return e.completeFn(ctx, id, tenantID)
	}
	return nil, nil
}

func (e *testEngine) Cancel(ctx context.Context, id, tenantID uuid.UUID, reason string) (*models.Transaction, error) {
	if e.cancelFn != nil {
		return e.cancelFn(ctx, id, tenantID, reason)
	}
	return nil, nil
}

func (e *testEngine) Refund(ctx context.Context, input transactions.RefundInput) (*models.Transaction, error) {
	if e.refundFn != nil {
		return e.refundFn(ctx, input)
	}
	return nil, nil
}

func (e *testEngine) FindOne(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error) {
	if e.findOneFn != nil {
		return e.findOneFn(ctx, id, tenantID)
	}
	return nil, nil
}

func (e *testEngine) FindAll(ctx context.Context, tenantID uuid.UUID, filters transactions.ListFilters, params pagination.Params) ([]models.Transaction, pagination.Meta, error) {
	if e.findAllFn != nil {
		return e.findAllFn(ctx, tenantID, filters, params)
	}
	return nil, pagination.Meta{}, nil
}

func (e *testEngine) GetDailySummary(ctx context.Context, tenantID uuid.UUID, day time.Time) (*transactions.DailySummary, error) {
	if e.summaryFn != nil {
		return e.summaryFn(ctx, tenantID, day)
	}
	return nil, nil
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withTenant(req *http.Request, tenantID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithTenantID(req.Context(), tenantID))
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func sampleTransaction(tenantID uuid.UUID) *models.Transaction {
	return &models.Transaction{
		ID:              uuid.New(),
		TenantID:        tenantID,
		StationID:       uuid.New(),
		PumpID:          uuid.New(),
		TankID:          uuid.New(),
		FuelType:        enums.FuelTypePMS,
		QuantityLiters:  decimal.NewFromInt(50),
		UnitPrice:       decimal.RequireFromString("10.50"),
		GrossAmount:     decimal.RequireFromString("525"),
		TaxRate:         decimal.RequireFromString("0.175"),
		TaxAmount:       decimal.RequireFromString("91.875"),
		TotalAmount:     decimal.RequireFromString("616.875"),
		PaymentMethod:   enums.PaymentMethodCash,
		PaymentStatus:   enums.PaymentStatusPending,
		ReceiptNumber:   "RCP-20240315-000001",
		TransactionTime: time.Now().UTC(),
		Status:          enums.TransactionStatusPending,
	}
}

func TestTransactionCreateSuccess(t *testing.T) {
	tenantID := uuid.New()
	stationID := uuid.New()
	pumpID := uuid.New()
	var got transactions.CreateInput
	svc := &testEngine{
		createFn: func(_ context.Context, input transactions.CreateInput) (*models.Transaction, error) {
			got = input
			return sampleTransaction(tenantID), nil
		},
	}

	body := `{
		"stationId": "` + stationID.String() + `",
		"pumpId": "` + pumpID.String() + `",
		"quantityLiters": "50",
		"unitPrice": "10.50",
		"paymentMethod": "cash",
		"autoProcessPayment": true
	}`
	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body)), tenantID)
	resp := httptest.NewRecorder()
	TransactionCreate(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.TenantID != tenantID {
		t.Fatalf("tenant not forwarded, got %s", got.TenantID)
	}
	if got.StationID != stationID || got.PumpID != pumpID {
		t.Fatal("station or pump not forwarded")
	}
	if !got.QuantityLiters.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected quantity %s", got.QuantityLiters)
	}
	if got.PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("unexpected method %s", got.PaymentMethod)
	}
	if !got.AutoProcessPayment {
		t.Fatal("auto process flag lost")
	}

	var envelope struct {
		Data transactions.View `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.ReceiptNumber != "RCP-20240315-000001" {
		t.Fatalf("unexpected receipt %q", envelope.Data.ReceiptNumber)
	}
}

func TestTransactionCreateMissingTenant(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	TransactionCreate(&testEngine{}, newTestLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestTransactionCreateInvalidPaymentMethod(t *testing.T) {
	body := `{
		"stationId": "` + uuid.NewString() + `",
		"pumpId": "` + uuid.NewString() + `",
		"quantityLiters": "50",
		"unitPrice": "10.50",
		"paymentMethod": "barter"
	}`
	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	TransactionCreate(&testEngine{}, newTestLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestTransactionCompleteSuccess(t *testing.T) {
	tenantID := uuid.New()
	txn := sampleTransaction(tenantID)
	txn.Status = enums.TransactionStatusCompleted
	called := false
	svc := &testEngine{
		completeFn: func(_ context.Context, id, tid uuid.UUID) (*models.Transaction, error) {
			called = true
			if id != txn.ID {
				t.Fatalf("unexpected id %s", id)
			}
			if tid != tenantID {
				t.Fatalf("unexpected tenant %s", tid)
			}
			return txn, nil
		},
	}

	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/v1/transactions/"+txn.ID.String()+"/complete", nil), tenantID)
	req = addRouteParam(req, "transactionId", txn.ID.String())
	resp := httptest.NewRecorder()
	TransactionComplete(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected engine called")
	}
}

func TestTransactionCancelStateConflict(t *testing.T) {
	tenantID := uuid.New()
	svc := &testEngine{
		cancelFn: func(_ context.Context, _, _ uuid.UUID, _ string) (*models.Transaction, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "completed transaction cannot be cancelled, refund it instead")
		},
	}

	id := uuid.New()
	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/v1/transactions/"+id.String()+"/cancel", strings.NewReader(`{"reason":"oops"}`)), tenantID)
	req = addRouteParam(req, "transactionId", id.String())
	resp := httptest.NewRecorder()
	TransactionCancel(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeStateConflict) {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
}

func TestTransactionRefundForwardsAmount(t *testing.T) {
	tenantID := uuid.New()
	var got transactions.RefundInput
	txn := sampleTransaction(tenantID)
	svc := &testEngine{
		refundFn: func(_ context.Context, input transactions.RefundInput) (*models.Transaction, error) {
			got = input
			return txn, nil
		},
	}

	req := withTenant(httptest.NewRequest(http.MethodPost, "/api/v1/transactions/"+txn.ID.String()+"/refund", strings.NewReader(`{"amount":"100.00","reason":"spill"}`)), tenantID)
	req = addRouteParam(req, "transactionId", txn.ID.String())
	resp := httptest.NewRecorder()
	TransactionRefund(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.TransactionID != txn.ID {
		t.Fatalf("unexpected id %s", got.TransactionID)
	}
	if got.Amount == nil || !got.Amount.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("amount not forwarded: %v", got.Amount)
	}
	if got.Reason != "spill" {
		t.Fatalf("unexpected reason %q", got.Reason)
	}
}

func TestTransactionListForwardsFilters(t *testing.T) {
	tenantID := uuid.New()
	stationID := uuid.New()
	var gotFilters transactions.ListFilters
	var gotParams pagination.Params
	svc := &testEngine{
		findAllFn: func(_ context.Context, _ uuid.UUID, filters transactions.ListFilters, params pagination.Params) ([]models.Transaction, pagination.Meta, error) {
			gotFilters = filters
			gotParams = params
			return []models.Transaction{*sampleTransaction(tenantID)}, pagination.Meta{CurrentPage: 2, PerPage: 5, TotalPages: 3, TotalRecords: 11}, nil
		},
	}

	target := "/api/v1/transactions?page=2&limit=5&status=pending&stationId=" + stationID.String() + "&fuelType=pms"
	req := withTenant(httptest.NewRequest(http.MethodGet, target, nil), tenantID)
	resp := httptest.NewRecorder()
	TransactionList(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotParams.Page != 2 || gotParams.Limit != 5 {
		t.Fatalf("unexpected params %+v", gotParams)
	}
	if gotFilters.Status == nil || *gotFilters.Status != enums.TransactionStatusPending {
		t.Fatal("status filter not forwarded")
	}
	if gotFilters.StationID == nil || *gotFilters.StationID != stationID {
		t.Fatal("station filter not forwarded")
	}
	if gotFilters.FuelType == nil || *gotFilters.FuelType != enums.FuelTypePMS {
		t.Fatal("fuel type filter not forwarded")
	}

	var envelope struct {
		Data struct {
			Transactions []transactions.View `json:"transactions"`
			Pagination   pagination.Meta     `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Transactions) != 1 {
		t.Fatalf("expected 1 row, got %d", len(envelope.Data.Transactions))
	}
	if envelope.Data.Pagination.TotalRecords != 11 {
		t.Fatalf("unexpected total %d", envelope.Data.Pagination.TotalRecords)
	}
}

func TestTransactionListRejectsBadStatus(t *testing.T) {
	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/v1/transactions?status=bogus", nil), uuid.New())
	resp := httptest.NewRecorder()
	TransactionList(&testEngine{}, newTestLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestStationTransactionsScopesFilter(t *testing.T) {
	tenantID := uuid.New()
	stationID := uuid.New()
	var gotFilters transactions.ListFilters
	svc := &testEngine{
		findAllFn: func(_ context.Context, _ uuid.UUID, filters transactions.ListFilters, _ pagination.Params) ([]models.Transaction, pagination.Meta, error) {
			gotFilters = filters
			return nil, pagination.Meta{}, nil
		},
	}

	target := "/api/v1/stations/" + stationID.String() + "/transactions?status=completed&stationId=" + uuid.NewString()
	req := withTenant(httptest.NewRequest(http.MethodGet, target, nil), tenantID)
	req = addRouteParam(req, "stationId", stationID.String())
	resp := httptest.NewRecorder()
	StationTransactions(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotFilters.StationID == nil || *gotFilters.StationID != stationID {
		t.Fatal("path station id did not override the query filter")
	}
	if gotFilters.Status == nil || *gotFilters.Status != enums.TransactionStatusCompleted {
		t.Fatal("status filter not forwarded")
	}
}

func TestStationTransactionsRejectsBadID(t *testing.T) {
	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/v1/stations/nope/transactions", nil), uuid.New())
	req = addRouteParam(req, "stationId", "nope")
	resp := httptest.NewRecorder()
	StationTransactions(&testEngine{}, newTestLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCustomerTransactionsScopesFilter(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	var gotFilters transactions.ListFilters
	svc := &testEngine{
		findAllFn: func(_ context.Context, _ uuid.UUID, filters transactions.ListFilters, _ pagination.Params) ([]models.Transaction, pagination.Meta, error) {
			gotFilters = filters
			return nil, pagination.Meta{}, nil
		},
	}

	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID.String()+"/transactions", nil), tenantID)
	req = addRouteParam(req, "customerId", customerID.String())
	resp := httptest.NewRecorder()
	CustomerTransactions(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotFilters.CustomerID == nil || *gotFilters.CustomerID != customerID {
		t.Fatal("customer filter not applied from path")
	}
}

func TestTransactionDailySummaryParsesDate(t *testing.T) {
	tenantID := uuid.New()
	var gotDay time.Time
	svc := &testEngine{
		summaryFn: func(_ context.Context, _ uuid.UUID, day time.Time) (*transactions.DailySummary, error) {
			gotDay = day
			return &transactions.DailySummary{Date: "2024-03-15"}, nil
		},
	}

	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/v1/transactions/summary/daily?date=2024-03-15", nil), tenantID)
	resp := httptest.NewRecorder()
	TransactionDailySummary(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotDay.Year() != 2024 || gotDay.Month() != time.March || gotDay.Day() != 15 {
		t.Fatalf("unexpected day %s", gotDay)
	}
}
