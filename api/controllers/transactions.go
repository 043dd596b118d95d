package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/api/middleware"
	"github.com/omc-erp/omc-backend/api/responses"
	"github.com/omc-erp/omc-backend/api/validators"
	"github.com/omc-erp/omc-backend/internal/payments"
	"github.com/omc-erp/omc-backend/internal/transactions"
	"github.com/omc-erp/omc-backend/pkg/db/models"
	"github.com/omc-erp/omc-backend/pkg/enums"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/pagination"
)

// TransactionEngine is the service surface the transaction controllers
// depend on.
type TransactionEngine interface {
	Create(ctx context.Context, input transactions.CreateInput) (*models.Transaction, error)
	Complete(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error)
	Cancel(ctx context.Context, id, tenantID uuid.UUID, reason string) (*models.Transaction, error)
	Refund(ctx context.Context, input transactions.RefundInput) (*models.Transaction, error)
	FindOne(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filters transactions.ListFilters, params pagination.Params) ([]models.Transaction, pagination.Meta, error)
	GetDailySummary(ctx context.Context, tenantID uuid.UUID, day time.Time) (*transactions.DailySummary, error)
}

type createTransactionRequest struct {
	StationID          uuid.UUID              `json:"stationId" validate:"required"`
	PumpID             uuid.UUID              `json:"pumpId" validate:"required"`
	AttendantID        *uuid.UUID             `json:"attendantId,omitempty"`
	CustomerID         *uuid.UUID             `json:"customerId,omitempty"`
	ShiftID            *uuid.UUID             `json:"shiftId,omitempty"`
	QuantityLiters     decimal.Decimal        `json:"quantityLiters"`
	UnitPrice          decimal.Decimal        `json:"unitPrice"`
	TaxRate            *decimal.Decimal       `json:"taxRate,omitempty"`
	ServiceCharge      decimal.Decimal        `json:"serviceCharge"`
	DiscountAmount     decimal.Decimal        `json:"discountAmount"`
	PaymentMethod      string                 `json:"paymentMethod" validate:"required"`
	PaymentDetails     payments.MethodDetails `json:"paymentDetails"`
	AutoProcessPayment bool                   `json:"autoProcessPayment"`
	TemperatureCelsius *decimal.Decimal       `json:"temperatureCelsius,omitempty"`
	DensityKgPerM3     *decimal.Decimal       `json:"densityKgPerM3,omitempty"`
}

type cancelTransactionRequest struct {
	Reason string `json:"reason"`
}

type refundTransactionRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Reason string           `json:"reason"`
}

type transactionListResponse struct {
	Transactions []transactions.View `json:"transactions"`
	Pagination   pagination.Meta     `json:"pagination"`
}

// TransactionCreate opens a fuel sale, optionally capturing payment in the
// same request.
func TransactionCreate(svc TransactionEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction engine unavailable"))
			return
		}
		tenantID, ok := middleware.TenantIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
			return
		}

		var payload createTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		txn, err := svc.Create(r.Context(), transactions.CreateInput{
			TenantID:           tenantID,
			StationID:          payload.StationID,
			PumpID:             payload.PumpID,
			AttendantID:        payload.AttendantID,
			CustomerID:         payload.CustomerID,
			ShiftID:            payload.ShiftID,
			QuantityLiters:     payload.QuantityLiters,
			UnitPrice:          payload.UnitPrice,
			TaxRate:            payload.TaxRate,
			ServiceCharge:      payload.ServiceCharge,
			DiscountAmount:     payload.DiscountAmount,
			PaymentMethod:      method,
			PaymentDetails:     payload.PaymentDetails,
			AutoProcessPayment: payload.AutoProcessPayment,
			TemperatureCelsius: payload.TemperatureCelsius,
			DensityKgPerM3:     payload.DensityKgPerM3,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transactions.NewView(txn))
	}
}

// TransactionComplete finalizes a pending sale.
func TransactionComplete(svc TransactionEngine, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, func(ctx context.Context, svc TransactionEngine, id, tenantID uuid.UUID, _ *http.Request) (*models.Transaction, error) {
		return svc.Complete(ctx, id, tenantID)
	})
}

// TransactionCancel voids a pending sale.
func TransactionCancel(svc TransactionEngine, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, func(ctx context.Context, svc TransactionEngine, id, tenantID uuid.UUID, r *http.Request) (*models.Transaction, error) {
		var payload cancelTransactionRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				return nil, err
			}
		}
		return svc.Cancel(ctx, id, tenantID, payload.Reason)
	})
}

// TransactionRefund reverses a completed sale through the payment gateway.
func TransactionRefund(svc TransactionEngine, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, func(ctx context.Context, svc TransactionEngine, id, tenantID uuid.UUID, r *http.Request) (*models.Transaction, error) {
		var payload refundTransactionRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				return nil, err
			}
		}
		return svc.Refund(ctx, transactions.RefundInput{
			TenantID:      tenantID,
			TransactionID: id,
			Amount:        payload.Amount,
			Reason:        payload.Reason,
		})
	})
}

// TransactionDetail loads one sale.
func TransactionDetail(svc TransactionEngine, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, func(ctx context.Context, svc TransactionEngine, id, tenantID uuid.UUID, _ *http.Request) (*models.Transaction, error) {
		return svc.FindOne(ctx, id, tenantID)
	})
}

// TransactionList pages the tenant's sales with optional filters.
func TransactionList(svc TransactionEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveTransactionList(svc, logg, w, r, nil)
	}
}

// StationTransactions lists the sales recorded at one station.
func StationTransactions(svc TransactionEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationID, err := uuid.Parse(chi.URLParam(r, "stationId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid station id"))
			return
		}
		serveTransactionList(svc, logg, w, r, func(filters *transactions.ListFilters) {
			filters.StationID = &stationID
		})
	}
}

// CustomerTransactions lists the sales attributed to one customer.
func CustomerTransactions(svc TransactionEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := uuid.Parse(chi.URLParam(r, "customerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id"))
			return
		}
		serveTransactionList(svc, logg, w, r, func(filters *transactions.ListFilters) {
			filters.CustomerID = &customerID
		})
	}
}

func serveTransactionList(svc TransactionEngine, logg *logger.Logger, w http.ResponseWriter, r *http.Request, scope func(*transactions.ListFilters)) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction engine unavailable"))
		return
	}
	tenantID, ok := middleware.TenantIDFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
		return
	}

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	filters, err := buildTransactionFilters(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	if scope != nil {
		scope(&filters)
	}

	rows, meta, err := svc.FindAll(r.Context(), tenantID, filters, pagination.Params{Page: page, Limit: limit})
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	views := make([]transactions.View, 0, len(rows))
	for i := range rows {
		views = append(views, transactions.NewView(&rows[i]))
	}
	responses.WriteSuccess(w, transactionListResponse{Transactions: views, Pagination: meta})
}

// TransactionDailySummary aggregates the tenant's completed sales for one day.
func TransactionDailySummary(svc TransactionEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction engine unavailable"))
			return
		}
		tenantID, ok := middleware.TenantIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
			return
		}

		day := time.Now().UTC()
		if parsed, err := validators.ParseQueryDate(r, "date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if parsed != nil {
			day = *parsed
		}

		summary, err := svc.GetDailySummary(r.Context(), tenantID, day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func buildTransactionFilters(r *http.Request) (transactions.ListFilters, error) {
	var filters transactions.ListFilters

	stationID, err := validators.ParseQueryUUID(r, "stationId")
	if err != nil {
		return filters, err
	}
	filters.StationID = stationID

	customerID, err := validators.ParseQueryUUID(r, "customerId")
	if err != nil {
		return filters, err
	}
	filters.CustomerID = customerID

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseTransactionStatus(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filters.Status = &status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("paymentMethod")); raw != "" {
		method, err := enums.ParsePaymentMethod(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method filter")
		}
		filters.PaymentMethod = &method
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("fuelType")); raw != "" {
		fuelType, err := enums.ParseFuelType(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fuel type filter")
		}
		filters.FuelType = &fuelType
	}

	dateFrom, err := validators.ParseQueryDate(r, "dateFrom")
	if err != nil {
		return filters, err
	}
	filters.DateFrom = dateFrom

	dateTo, err := validators.ParseQueryDate(r, "dateTo")
	if err != nil {
		return filters, err
	}
	filters.DateTo = dateTo

	return filters, nil
}

func transitionHandler(
	svc TransactionEngine,
	logg *logger.Logger,
	run func(ctx context.Context, svc TransactionEngine, id, tenantID uuid.UUID, r *http.Request) (*models.Transaction, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction engine unavailable"))
			return
		}
		tenantID, ok := middleware.TenantIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
			return
		}
		id, err := transactionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := run(r.Context(), svc, id, tenantID, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transactions.NewView(txn))
	}
}

func transactionIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "transactionId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction id")
	}
	return id, nil
}
