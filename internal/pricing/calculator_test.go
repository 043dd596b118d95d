package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/pkg/config"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	return NewCalculator(config.PricingConfig{DefaultTaxRate: "0.175"})
}

func TestCalculateStandardSale(t *testing.T) {
	calc := newTestCalculator(t)

	amounts, err := calc.Calculate(Input{
		QuantityLiters: decimal.RequireFromString("50"),
		UnitPrice:      decimal.RequireFromString("10.50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !amounts.GrossAmount.Equal(decimal.RequireFromString("525.00")) {
		t.Fatalf("unexpected gross %s", amounts.GrossAmount)
	}
	if !amounts.TaxAmount.Equal(decimal.RequireFromString("91.875")) {
		t.Fatalf("unexpected tax %s", amounts.TaxAmount)
	}
	if !amounts.TotalAmount.Equal(decimal.RequireFromString("616.875")) {
		t.Fatalf("unexpected total %s", amounts.TotalAmount)
	}
	if amounts.LoyaltyPoints != 61 {
		t.Fatalf("expected 61 loyalty points, got %d", amounts.LoyaltyPoints)
	}
}

func TestCalculateWithChargesAndDiscount(t *testing.T) {
	calc := newTestCalculator(t)

	amounts, err := calc.Calculate(Input{
		QuantityLiters: decimal.RequireFromString("100"),
		UnitPrice:      decimal.RequireFromString("8.00"),
		ServiceCharge:  decimal.RequireFromString("15"),
		DiscountAmount: decimal.RequireFromString("40"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 800 + 140 tax + 15 - 40 = 915
	if !amounts.TotalAmount.Equal(decimal.RequireFromString("915")) {
		t.Fatalf("unexpected total %s", amounts.TotalAmount)
	}
	if amounts.LoyaltyPoints != 91 {
		t.Fatalf("expected 91 loyalty points, got %d", amounts.LoyaltyPoints)
	}
}

func TestCalculateTaxRateOverride(t *testing.T) {
	calc := newTestCalculator(t)

	zero := decimal.Zero
	amounts, err := calc.Calculate(Input{
		QuantityLiters: decimal.RequireFromString("10"),
		UnitPrice:      decimal.RequireFromString("5"),
		TaxRate:        &zero,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amounts.TaxAmount.IsZero() {
		t.Fatalf("expected zero tax, got %s", amounts.TaxAmount)
	}
	if !amounts.TotalAmount.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("unexpected total %s", amounts.TotalAmount)
	}
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	calc := newTestCalculator(t)
	negative := decimal.RequireFromString("-0.1")

	cases := []struct {
		name  string
		input Input
	}{
		{
			name: "zero quantity",
			input: Input{
				QuantityLiters: decimal.Zero,
				UnitPrice:      decimal.RequireFromString("10"),
			},
		},
		{
			name: "negative unit price",
			input: Input{
				QuantityLiters: decimal.RequireFromString("10"),
				UnitPrice:      decimal.RequireFromString("-1"),
			},
		},
		{
			name: "negative service charge",
			input: Input{
				QuantityLiters: decimal.RequireFromString("10"),
				UnitPrice:      decimal.RequireFromString("10"),
				ServiceCharge:  decimal.RequireFromString("-5"),
			},
		},
		{
			name: "negative tax rate",
			input: Input{
				QuantityLiters: decimal.RequireFromString("10"),
				UnitPrice:      decimal.RequireFromString("10"),
				TaxRate:        &negative,
			},
		},
		{
			name: "discount larger than total",
			input: Input{
				QuantityLiters: decimal.RequireFromString("1"),
				UnitPrice:      decimal.RequireFromString("1"),
				DiscountAmount: decimal.RequireFromString("100"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Calculate(tc.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultTaxRate(t *testing.T) {
	calc := newTestCalculator(t)
	if !calc.DefaultTaxRate().Equal(decimal.RequireFromString("0.175")) {
		t.Fatalf("unexpected default rate %s", calc.DefaultTaxRate())
	}
}
