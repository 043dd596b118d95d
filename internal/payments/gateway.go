package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/pkg/config"
	"github.com/omc-erp/omc-backend/pkg/enums"
)

// MethodDetails carries the method-specific fields a settlement attempt needs.
// Only the fields relevant to the chosen method are read.
type MethodDetails struct {
	CardNumber  string          `json:"cardNumber,omitempty"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
	Provider    string          `json:"provider,omitempty"`
	VoucherCode string          `json:"voucherCode,omitempty"`
	CreditLimit decimal.Decimal `json:"creditLimit,omitempty"`
}

// ProcessRequest asks the gateway to capture payment for one sale.
type ProcessRequest struct {
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	Method        enums.PaymentMethod
	Details       MethodDetails
}

// RefundRequest asks the gateway to reverse a previously captured payment.
type RefundRequest struct {
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	Reason        string
}

// Result is the synchronous outcome of a capture or refund attempt. A declined
// attempt is Success=false with a reason; the error return is reserved for
// infrastructure failures.
type Result struct {
	Success       bool
	Reference     string
	FailureReason string
}

// Gateway abstracts settlement across payment rails.
type Gateway interface {
	Process(ctx context.Context, req ProcessRequest) (Result, error)
	Refund(ctx context.Context, req RefundRequest) (Result, error)
}

// NewGateway builds the gateway selected by configuration.
func NewGateway(cfg config.GatewayConfig) (Gateway, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "static":
		return NewStaticGateway(), nil
	default:
		return nil, fmt.Errorf("unknown gateway driver %q", cfg.Driver)
	}
}
