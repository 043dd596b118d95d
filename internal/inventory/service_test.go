package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omc-erp/omc-backend/pkg/db/models"
	"github.com/omc-erp/omc-backend/pkg/enums"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
	"github.com/omc-erp/omc-backend/pkg/outbox"
)

type recordingPublisher struct {
	events []outbox.DomainEvent
}

func (p *recordingPublisher) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	for _, existing := range p.events {
		if existing.EventType == event.EventType && existing.AggregateID == event.AggregateID {
			return nil
		}
	}
	return p.Emit(ctx, tx, event)
}

func (p *recordingPublisher) types() []enums.OutboxEventType {
	out := make([]enums.OutboxEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	tanks := `
CREATE TABLE IF NOT EXISTS tanks (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  station_id TEXT NOT NULL,
  fuel_type TEXT NOT NULL,
  capacity NUMERIC NOT NULL,
  current_level NUMERIC NOT NULL,
  reserved_volume NUMERIC NOT NULL DEFAULT 0,
  minimum_level NUMERIC NOT NULL DEFAULT 0,
  maximum_level NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`
	movements := `
CREATE TABLE IF NOT EXISTS inventory_movements (
  id TEXT PRIMARY KEY,
  tank_id TEXT NOT NULL,
  transaction_id TEXT NOT NULL,
  type TEXT NOT NULL,
  quantity NUMERIC NOT NULL,
  previous_level NUMERIC NOT NULL,
  new_level NUMERIC NOT NULL,
  notes TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(tanks).Error)
	require.NoError(t, db.Exec(movements).Error)
	return db
}

func seedTank(t *testing.T, db *gorm.DB, tank models.Tank) models.Tank {
	t.Helper()
	if tank.ID == uuid.Nil {
		tank.ID = uuid.New()
	}
	if tank.TenantID == uuid.Nil {
		tank.TenantID = uuid.New()
	}
	if tank.StationID == uuid.Nil {
		tank.StationID = uuid.New()
	}
	if tank.FuelType == "" {
		tank.FuelType = enums.FuelTypePMS
	}
	if tank.Status == "" {
		tank.Status = enums.EquipmentStatusActive
	}
	require.NoError(t, db.Create(&tank).Error)
	return tank
}

func newInventoryService(t *testing.T, db *gorm.DB) (*Service, *recordingPublisher) {
	t.Helper()
	publisher := &recordingPublisher{}
	svc, err := NewService(NewRepository(db), publisher, nil)
	require.NoError(t, err)
	return svc, publisher
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReserveThenReleaseRoundTrip(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc, publisher := newInventoryService(t, db)
	ctx := context.Background()

	tank := seedTank(t, db, models.Tank{
		Capacity:     dec("10000"),
		CurrentLevel: dec("8000"),
		MinimumLevel: dec("500"),
	})
	txnID := uuid.New()

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return svc.Reserve(ctx, tx, tank.ID, tank.TenantID, txnID, dec("100"))
	}))
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return svc.Release(ctx, tx, tank.ID, tank.TenantID, txnID, dec("100"))
	}))

	var reloaded models.Tank
	require.NoError(t, db.First(&reloaded, "id = ?", tank.ID).Error)
	require.True(t, reloaded.ReservedVolume.IsZero(), "reserved volume should return to zero, got %s", reloaded.ReservedVolume)
	require.True(t, reloaded.CurrentLevel.Equal(dec("8000")), "current level must be untouched, got %s", reloaded.CurrentLevel)

	var count int64
	require.NoError(t, db.Model(&models.InventoryMovement{}).Where("tank_id = ?", tank.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)

	require.Equal(t, []enums.OutboxEventType{enums.EventInventoryReserved, enums.EventInventoryReleased}, publisher.types())
}

func TestReserveDeductReturnRoundTrip(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc, _ := newInventoryService(t, db)
	ctx := context.Background()

	tank := seedTank(t, db, models.Tank{
		Capacity:     dec("10000"),
		CurrentLevel: dec("8000"),
		MinimumLevel: dec("500"),
	})
	txnID := uuid.New()

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := svc.Reserve(ctx, tx, tank.ID, tank.TenantID, txnID, dec("50")); err != nil {
			return err
		}
		return svc.Deduct(ctx, tx, tank.ID, tank.TenantID, txnID, dec("50"))
	}))

	var afterSale models.Tank
	require.NoError(t, db.First(&afterSale, "id = ?", tank.ID).Error)
	require.True(t, afterSale.CurrentLevel.Equal(dec("7950")))
	require.True(t, afterSale.ReservedVolume.IsZero())

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return svc.ReturnInventory(ctx, tx, tank.ID, tank.TenantID, txnID, dec("50"))
	}))

	var afterRefund models.Tank
	require.NoError(t, db.First(&afterRefund, "id = ?", tank.ID).Error)
	require.True(t, afterRefund.CurrentLevel.Equal(dec("8000")), "current level restored, got %s", afterRefund.CurrentLevel)

	var movements []models.InventoryMovement
	require.NoError(t, db.Where("tank_id = ?", tank.ID).Order("created_at ASC").Find(&movements).Error)
	require.Len(t, movements, 3)
	sale := movements[1]
	require.Equal(t, enums.MovementTypeSale, sale.Type)
	require.True(t, sale.Quantity.Equal(dec("-50")), "sale quantity signed negative, got %s", sale.Quantity)
	require.True(t, sale.NewLevel.Equal(sale.PreviousLevel.Add(sale.Quantity)))
	refund := movements[2]
	require.Equal(t, enums.MovementTypeRefund, refund.Type)
	require.True(t, refund.Quantity.Equal(dec("50")))
}

func TestReserveInsufficientInventory(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc, publisher := newInventoryService(t, db)
	ctx := context.Background()

	tank := seedTank(t, db, models.Tank{
		Capacity:     dec("10000"),
		CurrentLevel: dec("8000"),
		MinimumLevel: dec("500"),
	})

	ok, err := svc.CheckAvailability(ctx, tank.ID, tank.TenantID, dec("7600"))
	require.NoError(t, err)
	require.False(t, ok, "7500 dispensable cannot cover 7600")

	err = db.Transaction(func(tx *gorm.DB) error {
		return svc.Reserve(ctx, tx, tank.ID, tank.TenantID, uuid.New(), dec("7600"))
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeInsufficientInventory, typed.Code())

	var reloaded models.Tank
	require.NoError(t, db.First(&reloaded, "id = ?", tank.ID).Error)
	require.True(t, reloaded.CurrentLevel.Equal(dec("8000")))
	require.True(t, reloaded.ReservedVolume.IsZero())
	require.Empty(t, publisher.events)
}

func TestReserveInactiveTank(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc, _ := newInventoryService(t, db)
	ctx := context.Background()

	tank := seedTank(t, db, models.Tank{
		Capacity:     dec("10000"),
		CurrentLevel: dec("8000"),
		Status:       enums.EquipmentStatusMaintenance,
	})

	ok, err := svc.CheckAvailability(ctx, tank.ID, tank.TenantID, dec("10"))
	require.NoError(t, err)
	require.False(t, ok)

	err = db.Transaction(func(tx *gorm.DB) error {
		return svc.Reserve(ctx, tx, tank.ID, tank.TenantID, uuid.New(), dec("10"))
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestDeductEmitsLowInventorySignal(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc, publisher := newInventoryService(t, db)
	ctx := context.Background()

	tank := seedTank(t, db, models.Tank{
		Capacity:     dec("10000"),
		CurrentLevel: dec("1000"),
		MinimumLevel: dec("900"),
	})
	txnID := uuid.New()

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := svc.Reserve(ctx, tx, tank.ID, tank.TenantID, txnID, dec("100")); err != nil {
			return err
		}
		return svc.Deduct(ctx, tx, tank.ID, tank.TenantID, txnID, dec("100"))
	}))

	types := publisher.types()
	require.Contains(t, types, enums.EventInventoryLow)
}

func TestReleaseFloorsAtZero(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc, _ := newInventoryService(t, db)
	ctx := context.Background()

	tank := seedTank(t, db, models.Tank{
		Capacity:       dec("10000"),
		CurrentLevel:   dec("8000"),
		ReservedVolume: dec("30"),
	})

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return svc.Release(ctx, tx, tank.ID, tank.TenantID, uuid.New(), dec("100"))
	}))

	var reloaded models.Tank
	require.NoError(t, db.First(&reloaded, "id = ?", tank.ID).Error)
	require.True(t, reloaded.ReservedVolume.IsZero())
}

func TestReturnInventoryRespectsCapacity(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc, _ := newInventoryService(t, db)
	ctx := context.Background()

	tank := seedTank(t, db, models.Tank{
		Capacity:     dec("10000"),
		CurrentLevel: dec("9990"),
	})

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.ReturnInventory(ctx, tx, tank.ID, tank.TenantID, uuid.New(), dec("50"))
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestGetTankLevel(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc, _ := newInventoryService(t, db)
	ctx := context.Background()

	tank := seedTank(t, db, models.Tank{
		Capacity:       dec("10000"),
		CurrentLevel:   dec("8000"),
		ReservedVolume: dec("200"),
		MinimumLevel:   dec("500"),
	})

	snapshot, err := svc.GetTankLevel(ctx, tank.ID, tank.TenantID)
	require.NoError(t, err)
	require.True(t, snapshot.CurrentLevel.Equal(dec("8000")))
	require.True(t, snapshot.Reserved.Equal(dec("200")))
	require.True(t, snapshot.Available.Equal(dec("7800")))

	_, err = svc.GetTankLevel(ctx, uuid.New(), tank.TenantID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetMovementsMostRecentFirst(t *testing.T) {
	db := setupInventoryTestDB(t)
	svc, _ := newInventoryService(t, db)
	ctx := context.Background()

	tank := seedTank(t, db, models.Tank{
		Capacity:     dec("10000"),
		CurrentLevel: dec("8000"),
	})
	txnID := uuid.New()

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := svc.Reserve(ctx, tx, tank.ID, tank.TenantID, txnID, dec("10")); err != nil {
			return err
		}
		return svc.Deduct(ctx, tx, tank.ID, tank.TenantID, txnID, dec("10"))
	}))

	records, err := svc.GetMovements(ctx, tank.ID, tank.TenantID, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	all, err := svc.GetMovements(ctx, tank.ID, tank.TenantID, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
