package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/pkg/config"
	"github.com/omc-erp/omc-backend/pkg/enums"
)

func TestNewGatewaySelectsDriver(t *testing.T) {
	gw, err := NewGateway(config.GatewayConfig{Driver: "static"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gw.(*StaticGateway); !ok {
		t.Fatalf("unexpected gateway type %T", gw)
	}

	if _, err := NewGateway(config.GatewayConfig{Driver: "square"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestProcessCashAlwaysSettles(t *testing.T) {
	gw := NewStaticGateway()

	result, err := gw.Process(context.Background(), ProcessRequest{
		TransactionID: uuid.New(),
		Amount:        decimal.RequireFromString("616.875"),
		Method:        enums.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if !strings.HasPrefix(result.Reference, "PAY-") {
		t.Fatalf("unexpected reference %q", result.Reference)
	}
}

func TestProcessValidatesMethodDetails(t *testing.T) {
	gw := NewStaticGateway()
	amount := decimal.RequireFromString("100")

	cases := []struct {
		name    string
		method  enums.PaymentMethod
		details MethodDetails
		settled bool
	}{
		{name: "card valid", method: enums.PaymentMethodCard, details: MethodDetails{CardNumber: "4242424242424242"}, settled: true},
		{name: "card too short", method: enums.PaymentMethodCard, details: MethodDetails{CardNumber: "4242"}},
		{name: "card non numeric", method: enums.PaymentMethodCard, details: MethodDetails{CardNumber: "4242abcd42424242"}},
		{name: "mobile money valid", method: enums.PaymentMethodMobileMoney, details: MethodDetails{PhoneNumber: "+233201234567", Provider: "MTN"}, settled: true},
		{name: "mobile money missing provider", method: enums.PaymentMethodMobileMoney, details: MethodDetails{PhoneNumber: "+233201234567"}},
		{name: "voucher valid", method: enums.PaymentMethodVoucher, details: MethodDetails{VoucherCode: "FUEL-2024"}, settled: true},
		{name: "voucher missing code", method: enums.PaymentMethodVoucher},
		{name: "credit within limit", method: enums.PaymentMethodCredit, details: MethodDetails{CreditLimit: decimal.RequireFromString("500")}, settled: true},
		{name: "credit over limit", method: enums.PaymentMethodCredit, details: MethodDetails{CreditLimit: decimal.RequireFromString("50")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := gw.Process(context.Background(), ProcessRequest{
				TransactionID: uuid.New(),
				Amount:        amount,
				Method:        tc.method,
				Details:       tc.details,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Success != tc.settled {
				t.Fatalf("expected settled=%v, got %+v", tc.settled, result)
			}
			if !tc.settled && result.FailureReason == "" {
				t.Fatal("declined result missing reason")
			}
		})
	}
}

func TestProcessRejectsNonPositiveAmount(t *testing.T) {
	gw := NewStaticGateway()
	result, err := gw.Process(context.Background(), ProcessRequest{
		TransactionID: uuid.New(),
		Amount:        decimal.Zero,
		Method:        enums.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("expected decline")
	}
}

func TestRefund(t *testing.T) {
	gw := NewStaticGateway()

	result, err := gw.Refund(context.Background(), RefundRequest{
		TransactionID: uuid.New(),
		Amount:        decimal.RequireFromString("616.875"),
		Reason:        "customer dispute",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if !strings.HasPrefix(result.Reference, "RFD-") {
		t.Fatalf("unexpected reference %q", result.Reference)
	}

	declinedResult, err := gw.Refund(context.Background(), RefundRequest{
		TransactionID: uuid.New(),
		Amount:        decimal.Zero,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if declinedResult.Success {
		t.Fatal("expected decline for zero amount")
	}
}

func TestReferencesUniquePerAttempt(t *testing.T) {
	gw := NewStaticGateway()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		result, err := gw.Process(context.Background(), ProcessRequest{
			TransactionID: uuid.New(),
			Amount:        decimal.RequireFromString("10"),
			Method:        enums.PaymentMethodCash,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[result.Reference] {
			t.Fatalf("duplicate reference %q", result.Reference)
		}
		seen[result.Reference] = true
	}
}

func TestProcessHonorsContextCancellation(t *testing.T) {
	gw := NewStaticGateway()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gw.Process(ctx, ProcessRequest{
		TransactionID: uuid.New(),
		Amount:        decimal.RequireFromString("10"),
		Method:        enums.PaymentMethodCash,
	}); err == nil {
		t.Fatal("expected context error")
	}
}
