package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/internal/inventory"
	"github.com/omc-erp/omc-backend/pkg/enums"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
)

type testInventoryReader struct {
	levelFn     func(ctx context.Context, tankID, tenantID uuid.UUID) (*inventory.LevelSnapshot, error)
	movementsFn func(ctx context.Context, tankID, tenantID uuid.UUID, limit int) ([]inventory.MovementRecord, error)
}

func (s *testInventoryReader) GetTankLevel(ctx context.Context, tankID, tenantID uuid.UUID) (*inventory.LevelSnapshot, error) {
	if s.levelFn != nil {
		return s.levelFn(ctx, tankID, tenantID)
	}
	return nil, nil
}

func (s *testInventoryReader) GetMovements(ctx context.Context, tankID, tenantID uuid.UUID, limit int) ([]inventory.MovementRecord, error) {
	if s.movementsFn != nil {
		return s.movementsFn(ctx, tankID, tenantID, limit)
	}
	return nil, nil
}

func TestTankLevelSuccess(t *testing.T) {
	tenantID := uuid.New()
	tankID := uuid.New()
	svc := &testInventoryReader{
		levelFn: func(_ context.Context, tid, tenant uuid.UUID) (*inventory.LevelSnapshot, error) {
			if tid != tankID {
				t.Fatalf("unexpected tank %s", tid)
			}
			if tenant != tenantID {
				t.Fatalf("unexpected tenant %s", tenant)
			}
			return &inventory.LevelSnapshot{
				TankID:       tankID,
				FuelType:     enums.FuelTypePMS,
				Capacity:     decimal.RequireFromString("10000"),
				CurrentLevel: decimal.RequireFromString("8000"),
				Reserved:     decimal.RequireFromString("100"),
				Available:    decimal.RequireFromString("7400"),
				MinimumLevel: decimal.RequireFromString("500"),
			}, nil
		},
	}

	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/v1/tanks/"+tankID.String()+"/level", nil), tenantID)
	req = addRouteParam(req, "tankId", tankID.String())
	resp := httptest.NewRecorder()
	TankLevel(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data inventory.LevelSnapshot `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Data.Available.Equal(decimal.RequireFromString("7400")) {
		t.Fatalf("unexpected available %s", envelope.Data.Available)
	}
}

func TestTankLevelNotFound(t *testing.T) {
	svc := &testInventoryReader{
		levelFn: func(_ context.Context, _, _ uuid.UUID) (*inventory.LevelSnapshot, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tank not found")
		},
	}

	id := uuid.New()
	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/v1/tanks/"+id.String()+"/level", nil), uuid.New())
	req = addRouteParam(req, "tankId", id.String())
	resp := httptest.NewRecorder()
	TankLevel(svc, newTestLogger())(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestTankMovementsForwardsLimit(t *testing.T) {
	tenantID := uuid.New()
	tankID := uuid.New()
	var gotLimit int
	svc := &testInventoryReader{
		movementsFn: func(_ context.Context, _, _ uuid.UUID, limit int) ([]inventory.MovementRecord, error) {
			gotLimit = limit
			return []inventory.MovementRecord{{ID: uuid.New(), TankID: tankID, Type: enums.MovementTypeSale}}, nil
		},
	}

	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/v1/tanks/"+tankID.String()+"/movements?limit=5", nil), tenantID)
	req = addRouteParam(req, "tankId", tankID.String())
	resp := httptest.NewRecorder()
	TankMovements(svc, newTestLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotLimit != 5 {
		t.Fatalf("unexpected limit %d", gotLimit)
	}
}

func TestTankMovementsInvalidTankID(t *testing.T) {
	req := withTenant(httptest.NewRequest(http.MethodGet, "/api/v1/tanks/not-a-uuid/movements", nil), uuid.New())
	req = addRouteParam(req, "tankId", "not-a-uuid")
	resp := httptest.NewRecorder()
	TankMovements(&testInventoryReader{}, newTestLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
