package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/omc-erp/omc-backend/pkg/enums"
	"github.com/omc-erp/omc-backend/pkg/logger"
	"github.com/omc-erp/omc-backend/pkg/outbox/payloads"
	"github.com/omc-erp/omc-backend/pkg/outbox/registry"
)

var ErrUnsupportedEventType = errors.New("unsupported analytics event type")

// Writer delivers BigQuery rows produced by analytics handlers.
type Writer interface {
	InsertSaleFact(ctx context.Context, row SaleFactRow) error
}

// EventHandler receives an envelope plus its decoded payload.
type EventHandler interface {
	Handle(ctx context.Context, envelope Envelope, payload any) error
}

// Router dispatches analytics envelopes to the configured handler per event
// type, decoding payloads through the versioned decoder registry.
type Router struct {
	decoders *registry.DecoderRegistry
	handlers map[enums.OutboxEventType]EventHandler
	logg     *logger.Logger
}

// NewRouter wires the default handlers and allows overrides for specific
// events.
func NewRouter(writer Writer, logg *logger.Logger, overrides map[enums.OutboxEventType]EventHandler) (*Router, error) {
	if writer == nil {
		return nil, errors.New("writer is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}

	decoders := registry.NewDecoderRegistry()
	decoders.Register(enums.EventTransactionCompleted, 1, func(payload json.RawMessage) (interface{}, error) {
		event := &payloads.TransactionCompletedEvent{}
		if err := json.Unmarshal(payload, event); err != nil {
			return nil, err
		}
		return event, nil
	})
	decoders.Register(enums.EventTransactionRefunded, 1, func(payload json.RawMessage) (interface{}, error) {
		event := &payloads.TransactionRefundedEvent{}
		if err := json.Unmarshal(payload, event); err != nil {
			return nil, err
		}
		return event, nil
	})
	decoders.Register(enums.EventTransactionCancelled, 1, func(payload json.RawMessage) (interface{}, error) {
		event := &payloads.TransactionCancelledEvent{}
		if err := json.Unmarshal(payload, event); err != nil {
			return nil, err
		}
		return event, nil
	})

	handlers := map[enums.OutboxEventType]EventHandler{
		enums.EventTransactionCompleted: newSaleCompletedHandler(writer, logg),
		enums.EventTransactionRefunded:  newSaleRefundedHandler(writer, logg),
		enums.EventTransactionCancelled: newSaleCancelledHandler(writer, logg),
	}

	for event, custom := range overrides {
		if _, ok := handlers[event]; !ok || custom == nil {
			continue
		}
		handlers[event] = custom
	}

	return &Router{
		decoders: decoders,
		handlers: handlers,
		logg:     logg,
	}, nil
}

// Handle dispatches the incoming envelope to the configured handler.
func (r *Router) Handle(ctx context.Context, envelope Envelope) error {
	handler, ok := r.handlers[envelope.EventType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedEventType, envelope.EventType)
	}
	if len(envelope.Payload) == 0 {
		return fmt.Errorf("empty payload for %s", envelope.EventType)
	}
	version := envelope.Version
	if version <= 0 {
		version = 1
	}
	payload, err := r.decoders.Decode(envelope.EventType, version, envelope.Payload)
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", envelope.EventType, err)
	}

	return handler.Handle(ctx, envelope, payload)
}
