package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/omc-erp/omc-backend/pkg/enums"
)

const (
	captureReferencePrefix = "PAY"
	refundReferencePrefix  = "RFD"
)

// StaticGateway settles deterministically: cash always captures, the other
// rails capture once their method details validate. It stands in for a real
// processor integration while keeping the synchronous contract.
type StaticGateway struct{}

// NewStaticGateway builds the deterministic gateway.
func NewStaticGateway() *StaticGateway {
	return &StaticGateway{}
}

// Process validates the method details and settles the capture.
func (g *StaticGateway) Process(ctx context.Context, req ProcessRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !req.Method.IsValid() {
		return declined(fmt.Sprintf("unsupported payment method %q", req.Method)), nil
	}
	if !req.Amount.IsPositive() {
		return declined("amount must be greater than zero"), nil
	}

	if reason := validateDetails(req); reason != "" {
		return declined(reason), nil
	}

	return Result{
		Success:   true,
		Reference: newReference(captureReferencePrefix),
	}, nil
}

// Refund reverses a capture. The static driver accepts any positive amount.
func (g *StaticGateway) Refund(ctx context.Context, req RefundRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !req.Amount.IsPositive() {
		return declined("refund amount must be greater than zero"), nil
	}
	return Result{
		Success:   true,
		Reference: newReference(refundReferencePrefix),
	}, nil
}

func validateDetails(req ProcessRequest) string {
	switch req.Method {
	case enums.PaymentMethodCash:
		return ""
	case enums.PaymentMethodCard:
		digits := strings.TrimSpace(req.Details.CardNumber)
		if len(digits) < 12 || len(digits) > 19 {
			return "card number must be 12 to 19 digits"
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				return "card number must contain only digits"
			}
		}
		return ""
	case enums.PaymentMethodMobileMoney:
		if strings.TrimSpace(req.Details.PhoneNumber) == "" {
			return "phone number required for mobile money"
		}
		if strings.TrimSpace(req.Details.Provider) == "" {
			return "mobile money provider required"
		}
		return ""
	case enums.PaymentMethodVoucher:
		if strings.TrimSpace(req.Details.VoucherCode) == "" {
			return "voucher code required"
		}
		return ""
	case enums.PaymentMethodCredit:
		if req.Details.CreditLimit.LessThan(req.Amount) {
			return "credit limit below sale amount"
		}
		return ""
	default:
		return fmt.Sprintf("unsupported payment method %q", req.Method)
	}
}

func declined(reason string) Result {
	return Result{Success: false, FailureReason: reason}
}

// newReference builds a reference unique per attempt.
func newReference(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()))
}
