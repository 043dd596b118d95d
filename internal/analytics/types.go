package analytics

import (
	"encoding/json"
	"time"

	cbigquery "cloud.google.com/go/bigquery"

	"github.com/omc-erp/omc-backend/pkg/enums"
)

// Envelope is the normalized view of a Pub/Sub message consumed by the
// analytics worker, combining the stored payload envelope with the message
// attributes stamped by the outbox publisher.
type Envelope struct {
	EventID       string
	EventType     enums.OutboxEventType
	AggregateType enums.OutboxAggregateType
	AggregateID   string
	Version       int
	OccurredAt    time.Time
	Payload       json.RawMessage
}

// SaleFactRow is one row in the daily sales summary table. Completed sales
// insert positive quantities and amounts, refunds insert negative ones, so
// summing a business date yields the net daily figures.
type SaleFactRow struct {
	TenantID       string               `bigquery:"tenant_id"`
	StationID      string               `bigquery:"station_id"`
	TransactionID  string               `bigquery:"transaction_id"`
	CustomerID     cbigquery.NullString `bigquery:"customer_id"`
	EventID        string               `bigquery:"event_id"`
	EventType      string               `bigquery:"event_type"`
	QuantityLiters float64              `bigquery:"quantity_liters"`
	Amount         float64              `bigquery:"amount"`
	LoyaltyPoints  int64                `bigquery:"loyalty_points"`
	BusinessDate   string               `bigquery:"business_date"`
	OccurredAt     time.Time            `bigquery:"occurred_at"`
	Payload        cbigquery.NullJSON   `bigquery:"payload"`
}
