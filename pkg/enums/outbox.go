package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateTransaction OutboxAggregateType = "transaction"
	AggregateTank        OutboxAggregateType = "tank"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateTransaction,
	AggregateTank,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres. The values double
// as the topic-facing event names consumed by alerting, analytics, and the
// loyalty ledger.
type OutboxEventType string

const (
	EventTransactionCreated   OutboxEventType = "transaction.created"
	EventTransactionCompleted OutboxEventType = "transaction.completed"
	EventTransactionCancelled OutboxEventType = "transaction.cancelled"
	EventTransactionRefunded  OutboxEventType = "transaction.refunded"
	EventInventoryReserved    OutboxEventType = "inventory.reserved"
	EventInventoryDeducted    OutboxEventType = "inventory.deducted"
	EventInventoryReleased    OutboxEventType = "inventory.released"
	EventInventoryReturned    OutboxEventType = "inventory.returned"
	EventInventoryLow         OutboxEventType = "inventory.low"
)

var validOutboxEventTypes = []OutboxEventType{
	EventTransactionCreated,
	EventTransactionCompleted,
	EventTransactionCancelled,
	EventTransactionRefunded,
	EventInventoryReserved,
	EventInventoryDeducted,
	EventInventoryReleased,
	EventInventoryReturned,
	EventInventoryLow,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
