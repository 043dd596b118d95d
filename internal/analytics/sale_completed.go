package analytics

import (
	"context"
	"fmt"

	cbigquery "cloud.google.com/go/bigquery"
	"github.com/google/uuid"

	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/outbox/payloads"
)

const businessDateLayout = "2006-01-02"

type saleCompletedHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newSaleCompletedHandler(writer Writer, logg *logger.Logger) EventHandler {
	return &saleCompletedHandler{writer: writer, logg: logg}
}

func (h *saleCompletedHandler) Handle(ctx context.Context, envelope Envelope, payload any) error {
	event, ok := payload.(*payloads.TransactionCompletedEvent)
	if !ok {
		return fmt.Errorf("invalid payload for %s", envelope.EventType)
	}
	fields := map[string]any{
		"event_type":     envelope.EventType,
		"transaction_id": event.TransactionID,
		"station_id":     event.StationID,
		"total_amount":   event.TotalAmount,
	}
	logCtx := h.logg.WithFields(ctx, fields)

	occurredAt := event.CompletedAt
	if occurredAt.IsZero() {
		occurredAt = envelope.OccurredAt
	}

	row := SaleFactRow{
		TenantID:       event.TenantID.String(),
		StationID:      event.StationID.String(),
		TransactionID:  event.TransactionID.String(),
		CustomerID:     nullableUUID(event.CustomerID),
		EventID:        envelope.EventID,
		EventType:      string(envelope.EventType),
		QuantityLiters: event.QuantityLiters.InexactFloat64(),
		Amount:         event.TotalAmount.InexactFloat64(),
		LoyaltyPoints:  int64(event.LoyaltyPointsAwarded),
		BusinessDate:   occurredAt.UTC().Format(businessDateLayout),
		OccurredAt:     occurredAt.UTC(),
		Payload:        encodeJSON(envelope.Payload),
	}

	if err := h.writer.InsertSaleFact(logCtx, row); err != nil {
		h.logg.Error(logCtx, "failed to insert sale fact row", err)
		return err
	}

	h.logg.Info(logCtx, "completed sale exported")
	return nil
}

func nullableUUID(id *uuid.UUID) cbigquery.NullString {
	if id == nil {
		return cbigquery.NullString{}
	}
	return cbigquery.NullString{Valid: true, StringVal: id.String()}
}
