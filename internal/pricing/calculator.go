package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/omc-erp/omc-backend/pkg/config"
	pkgerrors "github.com/omc-erp/omc-backend/pkg/errors"
)

// loyaltyAwardDivisor converts a sale total into whole loyalty points.
var loyaltyAwardDivisor = decimal.NewFromInt(10)

// Input carries the raw figures for one sale. TaxRate of nil means the
// calculator's default rate applies.
type Input struct {
	QuantityLiters decimal.Decimal
	UnitPrice      decimal.Decimal
	TaxRate        *decimal.Decimal
	ServiceCharge  decimal.Decimal
	DiscountAmount decimal.Decimal
}

// Amounts is the derived money breakdown for one sale. Every field is
// recomputed from Input, never carried over from a previous calculation.
type Amounts struct {
	GrossAmount   decimal.Decimal
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	ServiceCharge decimal.Decimal
	Discount      decimal.Decimal
	TotalAmount   decimal.Decimal
	LoyaltyPoints int
}

// Calculator derives sale amounts. It holds no mutable state; the default
// tax rate is fixed at construction so later config changes never alter
// in-flight calculations.
type Calculator struct {
	defaultTaxRate decimal.Decimal
}

// NewCalculator builds a calculator seeded with the configured default tax rate.
func NewCalculator(cfg config.PricingConfig) *Calculator {
	return &Calculator{defaultTaxRate: cfg.TaxRate()}
}

// DefaultTaxRate returns the rate applied when a sale does not override it.
func (c *Calculator) DefaultTaxRate() decimal.Decimal {
	return c.defaultTaxRate
}

// LoyaltyPointsFor returns the whole points earned on a sale total.
func LoyaltyPointsFor(total decimal.Decimal) int {
	return int(total.Div(loyaltyAwardDivisor).Floor().IntPart())
}

// Calculate validates the input and derives gross, tax, total, and loyalty
// award. gross = quantity * unitPrice; tax = gross * rate;
// total = gross + tax + serviceCharge - discount; points = floor(total / 10).
func (c *Calculator) Calculate(input Input) (Amounts, error) {
	if !input.QuantityLiters.IsPositive() {
		return Amounts{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	if !input.UnitPrice.IsPositive() {
		return Amounts{}, pkgerrors.New(pkgerrors.CodeValidation, "unit price must be greater than zero")
	}
	if input.ServiceCharge.IsNegative() {
		return Amounts{}, pkgerrors.New(pkgerrors.CodeValidation, "service charge must not be negative")
	}
	if input.DiscountAmount.IsNegative() {
		return Amounts{}, pkgerrors.New(pkgerrors.CodeValidation, "discount must not be negative")
	}

	rate := c.defaultTaxRate
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() {
			return Amounts{}, pkgerrors.New(pkgerrors.CodeValidation, "tax rate must not be negative")
		}
		rate = *input.TaxRate
	}

	gross := input.QuantityLiters.Mul(input.UnitPrice)
	tax := gross.Mul(rate)
	total := gross.Add(tax).Add(input.ServiceCharge).Sub(input.DiscountAmount)
	if total.IsNegative() {
		return Amounts{}, pkgerrors.New(pkgerrors.CodeValidation, "discount exceeds sale total")
	}

	return Amounts{
		GrossAmount:   gross,
		TaxRate:       rate,
		TaxAmount:     tax,
		ServiceCharge: input.ServiceCharge,
		Discount:      input.DiscountAmount,
		TotalAmount:   total,
		LoyaltyPoints: LoyaltyPointsFor(total),
	}, nil
}
