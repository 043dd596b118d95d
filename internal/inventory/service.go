package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omc-erp/omc-backend/pkg/db/models"
	"github.com/omc-erp/omc-backend/pkg/enums"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
	"github.com/omc-erp/omc-backend/pkg/metrics"
	"github.com/omc-erp/omc-backend/pkg/outbox"
	"github.com/omc-erp/omc-backend/pkg/outbox/payloads"
)

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service is the only writer of tank stock state. Every mutation runs inside
// the caller's unit of work and appends an immutable movement row; the outbox
// row commits or rolls back together with the stock change.
type Service struct {
	repo    Repository
	outbox  outboxPublisher
	metrics *metrics.TransactionMetrics
}

// NewService builds the inventory ledger. The metrics collector may be nil.
func NewService(repo Repository, outboxSvc outboxPublisher, collector *metrics.TransactionMetrics) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &Service{repo: repo, outbox: outboxSvc, metrics: collector}, nil
}

// CheckAvailability reports whether qty liters are dispensable from the tank
// right now. Read-only; the authoritative re-check happens under lock in
// Reserve.
func (s *Service) CheckAvailability(ctx context.Context, tankID, tenantID uuid.UUID, qty decimal.Decimal) (bool, error) {
	if !qty.IsPositive() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	tank, err := s.repo.FindTank(ctx, tankID, tenantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, pkgerrors.New(pkgerrors.CodeNotFound, "tank not found")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tank")
	}
	if !tank.IsOperational() {
		return false, nil
	}
	return tank.Dispensable().GreaterThanOrEqual(qty), nil
}

// Reserve places a hold on qty liters for the given transaction. The tank row
// is locked and availability re-checked so concurrent reservations cannot
// over-commit fuel.
func (s *Service) Reserve(ctx context.Context, tx *gorm.DB, tankID, tenantID, txnID uuid.UUID, qty decimal.Decimal) error {
	if err := validateMovement(tx, txnID, qty); err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)

	tank, err := s.lockTank(ctx, repo, tankID, tenantID)
	if err != nil {
		return err
	}
	if !tank.IsOperational() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("tank is %s", tank.Status))
	}
	if tank.Dispensable().LessThan(qty) {
		return pkgerrors.New(pkgerrors.CodeInsufficientInventory, "insufficient fuel inventory").
			WithDetails(map[string]any{
				"tankId":    tank.ID.String(),
				"available": tank.Dispensable().String(),
				"requested": qty.String(),
			})
	}

	tank.ReservedVolume = tank.ReservedVolume.Add(qty)
	if err := repo.UpdateTankLevels(ctx, tank); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tank reservation")
	}

	return s.recordMovement(ctx, tx, repo, tank, txnID, enums.MovementTypeReserved, qty, tank.CurrentLevel, tank.CurrentLevel, enums.EventInventoryReserved)
}

// Deduct converts a reservation into an actual outflow: stock drops, the hold
// is consumed, and a low-inventory signal fires if the level reaches the
// reorder threshold.
func (s *Service) Deduct(ctx context.Context, tx *gorm.DB, tankID, tenantID, txnID uuid.UUID, qty decimal.Decimal) error {
	if err := validateMovement(tx, txnID, qty); err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)

	tank, err := s.lockTank(ctx, repo, tankID, tenantID)
	if err != nil {
		return err
	}
	if tank.CurrentLevel.LessThan(qty) {
		return pkgerrors.New(pkgerrors.CodeInsufficientInventory, "insufficient fuel inventory").
			WithDetails(map[string]any{
				"tankId":    tank.ID.String(),
				"available": tank.CurrentLevel.String(),
				"requested": qty.String(),
			})
	}

	previous := tank.CurrentLevel
	tank.CurrentLevel = tank.CurrentLevel.Sub(qty)
	tank.ReservedVolume = tank.ReservedVolume.Sub(qty)
	if tank.ReservedVolume.IsNegative() {
		tank.ReservedVolume = decimal.Zero
	}
	if err := repo.UpdateTankLevels(ctx, tank); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tank level")
	}

	if err := s.recordMovement(ctx, tx, repo, tank, txnID, enums.MovementTypeSale, qty.Neg(), previous, tank.CurrentLevel, enums.EventInventoryDeducted); err != nil {
		return err
	}

	if tank.CurrentLevel.LessThanOrEqual(tank.MinimumLevel) {
		if err := s.signalLowInventory(ctx, tx, tank); err != nil {
			return err
		}
	}
	return nil
}

// Release returns a hold to the available pool without touching stock. Used
// on cancellation; releasing more than is held floors the hold at zero.
func (s *Service) Release(ctx context.Context, tx *gorm.DB, tankID, tenantID, txnID uuid.UUID, qty decimal.Decimal) error {
	if err := validateMovement(tx, txnID, qty); err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)

	tank, err := s.lockTank(ctx, repo, tankID, tenantID)
	if err != nil {
		return err
	}

	tank.ReservedVolume = tank.ReservedVolume.Sub(qty)
	if tank.ReservedVolume.IsNegative() {
		tank.ReservedVolume = decimal.Zero
	}
	if err := repo.UpdateTankLevels(ctx, tank); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release tank reservation")
	}

	return s.recordMovement(ctx, tx, repo, tank, txnID, enums.MovementTypeReleased, qty.Neg(), tank.CurrentLevel, tank.CurrentLevel, enums.EventInventoryReleased)
}

// ReturnInventory puts dispensed fuel back into the tank on the refund path.
func (s *Service) ReturnInventory(ctx context.Context, tx *gorm.DB, tankID, tenantID, txnID uuid.UUID, qty decimal.Decimal) error {
	if err := validateMovement(tx, txnID, qty); err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)

	tank, err := s.lockTank(ctx, repo, tankID, tenantID)
	if err != nil {
		return err
	}
	if tank.CurrentLevel.Add(qty).GreaterThan(tank.Capacity) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "returned volume exceeds tank capacity")
	}

	previous := tank.CurrentLevel
	tank.CurrentLevel = tank.CurrentLevel.Add(qty)
	if err := repo.UpdateTankLevels(ctx, tank); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "return tank inventory")
	}

	return s.recordMovement(ctx, tx, repo, tank, txnID, enums.MovementTypeRefund, qty, previous, tank.CurrentLevel, enums.EventInventoryReturned)
}

// GetTankLevel returns the current stock position for one tank.
func (s *Service) GetTankLevel(ctx context.Context, tankID, tenantID uuid.UUID) (*LevelSnapshot, error) {
	tank, err := s.repo.FindTank(ctx, tankID, tenantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tank not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tank")
	}
	return &LevelSnapshot{
		TankID:       tank.ID,
		FuelType:     tank.FuelType,
		Capacity:     tank.Capacity,
		CurrentLevel: tank.CurrentLevel,
		Reserved:     tank.ReservedVolume,
		Available:    tank.Available(),
		MinimumLevel: tank.MinimumLevel,
		UpdatedAt:    tank.UpdatedAt,
	}, nil
}

// GetMovements returns the most recent ledger entries for a tank.
func (s *Service) GetMovements(ctx context.Context, tankID, tenantID uuid.UUID, limit int) ([]MovementRecord, error) {
	if _, err := s.repo.FindTank(ctx, tankID, tenantID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tank not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tank")
	}
	movements, err := s.repo.ListMovements(ctx, tankID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list movements")
	}
	records := make([]MovementRecord, 0, len(movements))
	for _, m := range movements {
		records = append(records, MovementRecord{
			ID:            m.ID,
			TankID:        m.TankID,
			TransactionID: m.TransactionID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			PreviousLevel: m.PreviousLevel,
			NewLevel:      m.NewLevel,
			Notes:         m.Notes,
			CreatedAt:     m.CreatedAt,
		})
	}
	return records, nil
}

func (s *Service) lockTank(ctx context.Context, repo Repository, tankID, tenantID uuid.UUID) (*models.Tank, error) {
	tank, err := repo.FindTankForUpdate(ctx, tankID, tenantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tank not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock tank")
	}
	return tank, nil
}

func (s *Service) recordMovement(
	ctx context.Context,
	tx *gorm.DB,
	repo Repository,
	tank *models.Tank,
	txnID uuid.UUID,
	movementType enums.MovementType,
	qty, previous, newLevel decimal.Decimal,
	eventType enums.OutboxEventType,
) error {
	movement := &models.InventoryMovement{
		ID:            uuid.New(),
		TankID:        tank.ID,
		TransactionID: txnID,
		Type:          movementType,
		Quantity:      qty,
		PreviousLevel: previous,
		NewLevel:      newLevel,
	}
	if err := repo.AppendMovement(ctx, movement); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append movement")
	}

	txnRef := txnID
	event := outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateTank,
		AggregateID:   tank.ID,
		Version:       1,
		Actor:         &outbox.ActorRef{TenantID: tank.TenantID},
		Data: payloads.InventoryMovementEvent{
			TankID:         tank.ID,
			TenantID:       tank.TenantID,
			TransactionID:  &txnRef,
			FuelType:       tank.FuelType,
			MovementType:   movementType,
			QuantityLiters: qty,
			PreviousLevel:  previous,
			NewLevel:       newLevel,
			OccurredAt:     time.Now().UTC(),
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit inventory event")
	}
	return nil
}

func (s *Service) signalLowInventory(ctx context.Context, tx *gorm.DB, tank *models.Tank) error {
	s.metrics.IncLowInventory(string(tank.FuelType))
	event := outbox.DomainEvent{
		EventType:     enums.EventInventoryLow,
		AggregateType: enums.AggregateTank,
		AggregateID:   tank.ID,
		Version:       1,
		Actor:         &outbox.ActorRef{TenantID: tank.TenantID},
		Data: payloads.LowInventoryEvent{
			TankID:       tank.ID,
			TenantID:     tank.TenantID,
			StationID:    tank.StationID,
			FuelType:     tank.FuelType,
			CurrentLevel: tank.CurrentLevel,
			MinimumLevel: tank.MinimumLevel,
			DetectedAt:   time.Now().UTC(),
		},
	}
	// One open low-stock alert per tank until the publisher drains it.
	if err := s.outbox.EmitIfNotExists(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit low inventory event")
	}
	return nil
}

func validateMovement(tx *gorm.DB, txnID uuid.UUID, qty decimal.Decimal) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if txnID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}
	if !qty.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	return nil
}
