package analytics

import (
	"context"
	"fmt"

	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/outbox/payloads"
)

type saleRefundedHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newSaleRefundedHandler(writer Writer, logg *logger.Logger) EventHandler {
	return &saleRefundedHandler{writer: writer, logg: logg}
}

// Handle writes the refund as a negative fact row so daily sums net out the
// reversed sale.
func (h *saleRefundedHandler) Handle(ctx context.Context, envelope Envelope, payload any) error {
	event, ok := payload.(*payloads.TransactionRefundedEvent)
	if !ok {
		return fmt.Errorf("invalid payload for %s", envelope.EventType)
	}
	fields := map[string]any{
		"event_type":     envelope.EventType,
		"transaction_id": event.TransactionID,
		"station_id":     event.StationID,
		"refund_amount":  event.RefundAmount,
	}
	logCtx := h.logg.WithFields(ctx, fields)

	occurredAt := event.RefundedAt
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
		QuantityLiters: event.QuantityLiters.Neg().InexactFloat64(),
		Amount:         event.RefundAmount.Neg().InexactFloat64(),
		BusinessDate:   occurredAt.UTC().Format(businessDateLayout),
		OccurredAt:     occurredAt.UTC(),
		Payload:        encodeJSON(envelope.Payload),
	}

	if err := h.writer.InsertSaleFact(logCtx, row); err != nil {
		h.logg.Error(logCtx, "failed to insert sale fact row", err)
		return err
	}

	h.logg.Info(logCtx, "refunded sale exported")
	return nil
}
