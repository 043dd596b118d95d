package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omc-erp/omc-backend/internal/customers"
	"github.com/omc-erp/omc-backend/internal/payments"
	"github.com/omc-erp/omc-backend/internal/pricing"
	"github.com/omc-erp/omc-backend/internal/stations"
	"github.com/omc-erp/omc-backend/pkg/config"
	"github.com/omc-erp/omc-backend/pkg/db/models"
	"github.com/omc-erp/omc-backend/pkg/enums"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/metrics"
	"github.com/omc-erp/omc-backend/pkg/outbox"
	"github.com/omc-erp/omc-backend/pkg/outbox/payloads"
	"github.com/omc-erp/omc-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// inventoryLedger is the stock surface consumed by the engine. Every mutation
// runs inside the engine's unit of work.
type inventoryLedger interface {
	CheckAvailability(ctx context.Context, tankID, tenantID uuid.UUID, qty decimal.Decimal) (bool, error)
	Reserve(ctx context.Context, tx *gorm.DB, tankID, tenantID, txnID uuid.UUID, qty decimal.Decimal) error
	Deduct(ctx context.Context, tx *gorm.DB, tankID, tenantID, txnID uuid.UUID, qty decimal.Decimal) error
	Release(ctx context.Context, tx *gorm.DB, tankID, tenantID, txnID uuid.UUID, qty decimal.Decimal) error
	ReturnInventory(ctx context.Context, tx *gorm.DB, tankID, tenantID, txnID uuid.UUID, qty decimal.Decimal) error
}

type receiptIssuer interface {
	Next(ctx context.Context, at time.Time) (string, error)
}

// Service orchestrates the fuel-sale lifecycle: validation, pricing,
// reservation, settlement, and the terminal cancel/refund paths. All writes
// for one operation share a single unit of work.
type Service struct {
	repo           Repository
	tx             txRunner
	directory      stations.Repository
	customers      customers.Repository
	ledger         inventoryLedger
	gateway        payments.Gateway
	calculator     *pricing.Calculator
	receipts       receiptIssuer
	outbox         outboxPublisher
	metrics        *metrics.TransactionMetrics
	logg           *logger.Logger
	processTimeout time.Duration
	refundTimeout  time.Duration
}

// NewService wires the transaction engine. The metrics collector may be nil.
func NewService(
	repo Repository,
	tx txRunner,
	directory stations.Repository,
	customerRepo customers.Repository,
	ledger inventoryLedger,
	gateway payments.Gateway,
	calculator *pricing.Calculator,
	receipts receiptIssuer,
	publisher outboxPublisher,
	collector *metrics.TransactionMetrics,
	logg *logger.Logger,
	gatewayCfg config.GatewayConfig,
) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transaction repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if directory == nil {
		return nil, fmt.Errorf("station directory required")
	}
	if customerRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("inventory ledger required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if calculator == nil {
		return nil, fmt.Errorf("pricing calculator required")
	}
	if receipts == nil {
		return nil, fmt.Errorf("receipt issuer required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		repo:           repo,
		tx:             tx,
		directory:      directory,
		customers:      customerRepo,
		ledger:         ledger,
		gateway:        gateway,
		calculator:     calculator,
		receipts:       receipts,
		outbox:         publisher,
		metrics:        collector,
		logg:           logg,
		processTimeout: gatewayCfg.ProcessTimeout,
		refundTimeout:  gatewayCfg.RefundTimeout,
	}, nil
}

// Create opens a sale. The transaction, the reservation, and the optional
// synchronous settlement commit or roll back together. A declined payment is
// not an error: the sale persists PENDING/PENDING for a later complete().
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Transaction, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if input.StationID == uuid.Nil || input.PumpID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "station and pump ids required")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}

	amounts, err := s.calculator.Calculate(pricing.Input{
		QuantityLiters: input.QuantityLiters,
		UnitPrice:      input.UnitPrice,
		TaxRate:        input.TaxRate,
		ServiceCharge:  input.ServiceCharge,
		DiscountAmount: input.DiscountAmount,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.directory.FindStation(ctx, input.StationID, input.TenantID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "station not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load station")
	}
	pump, err := s.directory.FindPump(ctx, input.PumpID, input.StationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pump not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pump")
	}
	if !pump.IsOperational() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("pump is %s", pump.Status))
	}
	if pump.Tank == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tank not found")
	}
	tank := pump.Tank
	if tank.TenantID != input.TenantID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tank not found")
	}

	if input.ShiftID != nil {
		if _, err := s.directory.FindShift(ctx, *input.ShiftID, input.StationID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shift")
		}
	}
	if input.CustomerID != nil {
		if _, err := s.customers.FindCustomer(ctx, *input.CustomerID, input.TenantID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}
	}

	available, err := s.ledger.CheckAvailability(ctx, tank.ID, input.TenantID, input.QuantityLiters)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientInventory, "insufficient fuel inventory").
			WithDetails(map[string]any{
				"tankId":    tank.ID.String(),
				"requested": input.QuantityLiters.String(),
			})
	}

	now := time.Now().UTC()
	receiptNumber, err := s.receipts.Next(ctx, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue receipt number")
	}

	txn := &models.Transaction{
		ID:                 uuid.New(),
		TenantID:           input.TenantID,
		StationID:          input.StationID,
		PumpID:             pump.ID,
		TankID:             tank.ID,
		AttendantID:        input.AttendantID,
		CustomerID:         input.CustomerID,
		ShiftID:            input.ShiftID,
		FuelType:           tank.FuelType,
		QuantityLiters:     input.QuantityLiters,
		UnitPrice:          input.UnitPrice,
		GrossAmount:        amounts.GrossAmount,
		TaxRate:            amounts.TaxRate,
		TaxAmount:          amounts.TaxAmount,
		ServiceCharge:      amounts.ServiceCharge,
		DiscountAmount:     amounts.Discount,
		TotalAmount:        amounts.TotalAmount,
		PaymentMethod:      input.PaymentMethod,
		PaymentStatus:      enums.PaymentStatusPending,
		ReceiptNumber:      receiptNumber,
		TransactionTime:    now,
		Status:             enums.TransactionStatusPending,
		TemperatureCelsius: input.TemperatureCelsius,
		DensityKgPerM3:     input.DensityKgPerM3,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist transaction")
		}
		if err := s.emitCreated(ctx, tx, txn); err != nil {
			return err
		}
		if err := s.ledger.Reserve(ctx, tx, tank.ID, input.TenantID, txn.ID, input.QuantityLiters); err != nil {
			return err
		}

		if input.AutoProcessPayment {
			return s.settle(ctx, tx, repo, txn, input.PaymentDetails, amounts.LoyaltyPoints)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncCreated(string(txn.FuelType), string(txn.PaymentMethod))
	logCtx := s.logg.WithTransactionID(ctx, txn.ID.String())
	s.logg.Info(logCtx, "transaction created")
	return txn, nil
}

// settle captures payment inside the creation unit of work. A gateway decline
// or timeout leaves the sale PENDING/PENDING; only infrastructure is allowed
// to surface here as an error.
func (s *Service) settle(ctx context.Context, tx *gorm.DB, repo Repository, txn *models.Transaction, details payments.MethodDetails, loyaltyPoints int) error {
	gatewayCtx := ctx
	if s.processTimeout > 0 {
		var cancel context.CancelFunc
		gatewayCtx, cancel = context.WithTimeout(ctx, s.processTimeout)
		defer cancel()
	}

	result, err := s.gateway.Process(gatewayCtx, payments.ProcessRequest{
		TransactionID: txn.ID,
		Amount:        txn.TotalAmount,
		Method:        txn.PaymentMethod,
		Details:       details,
	})
	if err != nil {
		// Timeouts and transport failures count as a failed capture; the
		// sale stays retryable.
		s.metrics.IncPaymentFailure(string(txn.PaymentMethod))
		s.logg.Warn(s.logg.WithTransactionID(ctx, txn.ID.String()), "payment capture errored, sale left pending")
		return nil
	}
	if !result.Success {
		s.metrics.IncPaymentFailure(string(txn.PaymentMethod))
		return nil
	}

	now := time.Now().UTC()
	txn.PaymentStatus = enums.PaymentStatusCompleted
	txn.PaymentReference = &result.Reference
	txn.PaymentProcessedAt = &now

	return s.finalize(ctx, tx, repo, txn, loyaltyPoints)
}

// finalize deducts reserved stock, awards loyalty, and marks the sale
// COMPLETED. Runs inside the caller's unit of work.
func (s *Service) finalize(ctx context.Context, tx *gorm.DB, repo Repository, txn *models.Transaction, loyaltyPoints int) error {
	if err := s.ledger.Deduct(ctx, tx, txn.TankID, txn.TenantID, txn.ID, txn.QuantityLiters); err != nil {
		return err
	}

	txn.Status = enums.TransactionStatusCompleted
	if txn.CustomerID != nil && loyaltyPoints > 0 {
		if err := s.customers.WithTx(tx).AddLoyaltyPoints(ctx, *txn.CustomerID, loyaltyPoints); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "award loyalty points")
		}
		txn.LoyaltyPointsAwarded = loyaltyPoints
	}
	if err := repo.Update(ctx, txn); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
	}

	s.metrics.IncCompleted(string(txn.FuelType), string(txn.PaymentMethod))
	s.metrics.AddLitersDispensed(string(txn.FuelType), txn.QuantityLiters.InexactFloat64())

	event := outbox.DomainEvent{
		EventType:     enums.EventTransactionCompleted,
		AggregateType: enums.AggregateTransaction,
		AggregateID:   txn.ID,
		Version:       1,
		Actor:         s.actor(txn),
		Data: payloads.TransactionCompletedEvent{
			TransactionID:        txn.ID,
			TenantID:             txn.TenantID,
			StationID:            txn.StationID,
			TankID:               txn.TankID,
			CustomerID:           txn.CustomerID,
			QuantityLiters:       txn.QuantityLiters,
			TotalAmount:          txn.TotalAmount,
			LoyaltyPointsAwarded: txn.LoyaltyPointsAwarded,
			CompletedAt:          time.Now().UTC(),
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit completed event")
	}
	return nil
}

// Complete finishes a pending sale: stock is deducted, a still-pending
// payment is marked settled, loyalty is awarded.
func (s *Service) Complete(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error) {
	var txn *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loaded, err := repo.FindByIDForUpdate(ctx, id, tenantID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
		}
		if !loaded.IsPending() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot complete a %s transaction", loaded.Status))
		}

		if loaded.PaymentStatus == enums.PaymentStatusPending {
			now := time.Now().UTC()
			loaded.PaymentStatus = enums.PaymentStatusCompleted
			loaded.PaymentProcessedAt = &now
		}

		points := pricing.LoyaltyPointsFor(loaded.TotalAmount)
		if err := s.finalize(ctx, tx, repo, loaded, points); err != nil {
			return err
		}
		txn = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Cancel voids a pending sale and releases its reservation. Completed sales
// must go through Refund.
func (s *Service) Cancel(ctx context.Context, id, tenantID uuid.UUID, reason string) (*models.Transaction, error) {
	var txn *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loaded, err := repo.FindByIDForUpdate(ctx, id, tenantID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
		}
		if loaded.Status == enums.TransactionStatusCompleted {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "completed transaction cannot be cancelled, refund it instead")
		}
		if loaded.Status == enums.TransactionStatusCancelled {
			txn = loaded
			return nil
		}

		if loaded.IsPending() {
			if err := s.ledger.Release(ctx, tx, loaded.TankID, tenantID, loaded.ID, loaded.QuantityLiters); err != nil {
				return err
			}
		}

		loaded.Status = enums.TransactionStatusCancelled
		if reason != "" {
			loaded.CancellationReason = &reason
		}
		if err := repo.Update(ctx, loaded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventTransactionCancelled,
			AggregateType: enums.AggregateTransaction,
			AggregateID:   loaded.ID,
			Version:       1,
			Actor:         s.actor(loaded),
			Data: payloads.TransactionCancelledEvent{
				TransactionID: loaded.ID,
				TenantID:      loaded.TenantID,
				StationID:     loaded.StationID,
				Reason:        reason,
				CancelledAt:   time.Now().UTC(),
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit cancelled event")
		}
		txn = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncCancelled()
	return txn, nil
}

// Refund reverses a completed, settled sale. The gateway is consulted first;
// a declined refund leaves the transaction untouched and surfaces to the
// caller. The refundable state is re-verified under a row lock before any
// mutation, so overlapping refunds of the same sale reverse inventory and
// loyalty exactly once.
func (s *Service) Refund(ctx context.Context, input RefundInput) (*models.Transaction, error) {
	loaded, err := s.repo.FindByID(ctx, input.TransactionID, input.TenantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
	}
	if !loaded.CanBeRefunded() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only completed, settled transactions can be refunded")
	}

	amount := loaded.TotalAmount
	if input.Amount != nil {
		amount = *input.Amount
		if !amount.IsPositive() || amount.GreaterThan(loaded.TotalAmount) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "refund amount must be positive and within the sale total")
		}
	}

	gatewayCtx := ctx
	if s.refundTimeout > 0 {
		var cancel context.CancelFunc
		gatewayCtx, cancel = context.WithTimeout(ctx, s.refundTimeout)
		defer cancel()
	}
	result, err := s.gateway.Refund(gatewayCtx, payments.RefundRequest{
		TransactionID: loaded.ID,
		Amount:        amount,
		Reason:        input.Reason,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "gateway refund")
	}
	if !result.Success {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment gateway declined the refund").
			WithDetails(map[string]any{"reason": result.FailureReason})
	}

	var refunded *models.Transaction
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// Re-load under lock: the state may have moved while the gateway
		// call was in flight.
		current, err := repo.FindByIDForUpdate(ctx, input.TransactionID, input.TenantID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
		}
		if !current.CanBeRefunded() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "transaction is no longer refundable")
		}

		if err := s.ledger.ReturnInventory(ctx, tx, current.TankID, input.TenantID, current.ID, current.QuantityLiters); err != nil {
			return err
		}
		if current.CustomerID != nil && current.LoyaltyPointsAwarded > 0 {
			if err := s.customers.WithTx(tx).RedeemLoyaltyPoints(ctx, *current.CustomerID, current.LoyaltyPointsAwarded); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reverse loyalty points")
			}
		}

		current.Status = enums.TransactionStatusCancelled
		current.PaymentStatus = enums.PaymentStatusRefunded
		current.PaymentReference = &result.Reference
		if input.Reason != "" {
			current.CancellationReason = &input.Reason
		}
		if err := repo.Update(ctx, current); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventTransactionRefunded,
			AggregateType: enums.AggregateTransaction,
			AggregateID:   current.ID,
			Version:       1,
			Actor:         s.actor(current),
			Data: payloads.TransactionRefundedEvent{
				TransactionID:   current.ID,
				TenantID:        current.TenantID,
				StationID:       current.StationID,
				TankID:          current.TankID,
				CustomerID:      current.CustomerID,
				QuantityLiters:  current.QuantityLiters,
				RefundAmount:    amount,
				RefundReference: result.Reference,
				Reason:          input.Reason,
				RefundedAt:      time.Now().UTC(),
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit refunded event")
		}
		refunded = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncRefunded()
	return refunded, nil
}

// FindOne loads a single sale scoped to the tenant.
func (s *Service) FindOne(ctx context.Context, id, tenantID uuid.UUID) (*models.Transaction, error) {
	txn, err := s.repo.FindByID(ctx, id, tenantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
	}
	return txn, nil
}

// FindAll lists sales for a tenant with optional filters and paging.
func (s *Service) FindAll(ctx context.Context, tenantID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Transaction, pagination.Meta, error) {
	rows, total, err := s.repo.List(ctx, tenantID, filters, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return rows, pagination.BuildMeta(params, total), nil
}

// GetDailySummary aggregates the tenant's completed sales for one calendar
// day (UTC).
func (s *Service) GetDailySummary(ctx context.Context, tenantID uuid.UUID, day time.Time) (*DailySummary, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	summary, err := s.repo.DailySummary(ctx, tenantID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate daily summary")
	}
	return summary, nil
}

func (s *Service) emitCreated(ctx context.Context, tx *gorm.DB, txn *models.Transaction) error {
	event := outbox.DomainEvent{
		EventType:     enums.EventTransactionCreated,
		AggregateType: enums.AggregateTransaction,
		AggregateID:   txn.ID,
		Version:       1,
		Actor:         s.actor(txn),
		Data: payloads.TransactionCreatedEvent{
			TransactionID:  txn.ID,
			TenantID:       txn.TenantID,
			StationID:      txn.StationID,
			TankID:         txn.TankID,
			FuelType:       txn.FuelType,
			QuantityLiters: txn.QuantityLiters,
			TotalAmount:    txn.TotalAmount,
			PaymentMethod:  txn.PaymentMethod,
			PaymentStatus:  txn.PaymentStatus,
			ReceiptNumber:  txn.ReceiptNumber,
			CreatedAt:      txn.TransactionTime,
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit created event")
	}
	return nil
}

func (s *Service) actor(txn *models.Transaction) *outbox.ActorRef {
	return &outbox.ActorRef{
		TenantID:    txn.TenantID,
		AttendantID: txn.AttendantID,
	}
}
