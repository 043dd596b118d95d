package analytics

import (
	"context"
	"fmt"

	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/outbox/payloads"
)

type saleCancelledHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newSaleCancelledHandler(writer Writer, logg *logger.Logger) EventHandler {
	return &saleCancelledHandler{writer: writer, logg: logg}
}

// Handle records the cancellation as a zero-amount fact row. Cancelled sales
// never settled, so only the event itself lands in the table.
func (h *saleCancelledHandler) Handle(ctx context.Context, envelope Envelope, payload any) error {
	event, ok := payload.(*payloads.TransactionCancelledEvent)
	if !ok {
		return fmt.Errorf("invalid payload for %s", envelope.EventType)
	}
	fields := map[string]any{
		"event_type":     envelope.EventType,
		"transaction_id": event.TransactionID,
		"station_id":     event.StationID,
		"reason":         event.Reason,
	}
	logCtx := h.logg.WithFields(ctx, fields)

	occurredAt := event.CancelledAt
	if occurredAt.IsZero() {
		occurredAt = envelope.OccurredAt
	}

	row := SaleFactRow{
		TenantID:      event.TenantID.String(),
		StationID:     event.StationID.String(),
		TransactionID: event.TransactionID.String(),
		EventID:       envelope.EventID,
		EventType:     string(envelope.EventType),
		BusinessDate:  occurredAt.UTC().Format(businessDateLayout),
		OccurredAt:    occurredAt.UTC(),
		Payload:       encodeJSON(envelope.Payload),
	}

	if err := h.writer.InsertSaleFact(logCtx, row); err != nil {
		h.logg.Error(logCtx, "failed to insert sale fact row", err)
		return err
	}

	h.logg.Info(logCtx, "cancelled sale exported")
	return nil
}
