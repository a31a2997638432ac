package calculation

import (
	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
)

// resolveRate returns the explicit rate when given, otherwise the scheme default for typ
func resolveRate(scheme domain.Scheme, typ string, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		if err := requireNonNegative("rate", *override); err != nil {
			return decimal.Zero, err
		}
		return *override, nil
	}
	rate, ok := DefaultRate(scheme, typ)
	if !ok {
		return decimal.Zero, &InvalidInputError{
			Field:   string(scheme) + " type",
			Value:   typ,
			Message: "unknown type and no rate given",
		}
	}
	return rate, nil
}

// CalculateGoodsTax computes PPh 22 on a goods transaction
func CalculateGoodsTax(req domain.GoodsTaxRequest) (*domain.GoodsTaxResult, error) {
	if err := requireNonNegative("transaction_value", req.TransactionValue); err != nil {
		return nil, err
	}
	rate, err := resolveRate(domain.SchemeGoods, req.GoodsType, req.Rate)
	if err != nil {
		return nil, err
	}
	return &domain.GoodsTaxResult{
		GoodsType:        req.GoodsType,
		TransactionValue: req.TransactionValue,
		Rate:             rate,
		Tax:              roundHalfUp(percentOf(req.TransactionValue, rate)),
	}, nil
}

// CalculateWithholding computes PPh 23. A payee without a tax ID pays double, rounded
// again after doubling.
func CalculateWithholding(req domain.WithholdingRequest) (*domain.WithholdingResult, error) {
	if err := requireNonNegative("amount", req.Amount); err != nil {
		return nil, err
	}
	rate, err := resolveRate(domain.SchemeWithholding, req.IncomeType, req.Rate)
	if err != nil {
		return nil, err
	}
	base := roundHalfUp(percentOf(req.Amount, rate))
	tax := base
	if req.WithoutTaxID {
		tax = roundHalfUp(base.Mul(WithoutTaxIDMultiplier))
	}
	return &domain.WithholdingResult{
		IncomeType:   req.IncomeType,
		Amount:       req.Amount,
		Rate:         rate,
		TaxIDPresent: !req.WithoutTaxID,
		BaseTax:      base,
		Tax:          tax,
	}, nil
}

// CalculateFinalTax computes PPh 4(2)
func CalculateFinalTax(req domain.FinalTaxRequest) (*domain.FinalTaxResult, error) {
	if err := requireNonNegative("amount", req.Amount); err != nil {
		return nil, err
	}
	rate, err := resolveRate(domain.SchemeFinal, req.IncomeType, req.Rate)
	if err != nil {
		return nil, err
	}
	return &domain.FinalTaxResult{
		IncomeType: req.IncomeType,
		Amount:     req.Amount,
		Rate:       rate,
		Tax:        roundHalfUp(percentOf(req.Amount, rate)),
	}, nil
}

// CalculateVAT computes PPN on a tax-inclusive transaction value. The tax base (DPP) is
// backed out and rounded first, then the tax is taken on the rounded base.
func CalculateVAT(req domain.VATRequest) (*domain.VATResult, error) {
	if err := requireNonNegative("transaction_value", req.TransactionValue); err != nil {
		return nil, err
	}
	rate, err := resolveRate(domain.SchemeVAT, req.TransactionType, req.Rate)
	if err != nil {
		return nil, err
	}
	divisor := decimal.NewFromInt(1).Add(rate.Div(hundred))
	dpp := roundHalfUp(req.TransactionValue.Div(divisor))
	return &domain.VATResult{
		TransactionType:  req.TransactionType,
		TransactionValue: req.TransactionValue,
		Rate:             rate,
		TaxBase:          dpp,
		Tax:              roundHalfUp(percentOf(dpp, rate)),
	}, nil
}

// CalculateUnifiedLevy computes the 0.5% small-business levy. Ineligibility is a normal
// result with a zero rate, not an error.
func CalculateUnifiedLevy(req domain.UnifiedLevyRequest) (*domain.UnifiedLevyResult, error) {
	err := checkAmounts(
		domain.NamedAmount{Name: "gross_income", Amount: req.GrossIncome},
		domain.NamedAmount{Name: "deductions", Amount: req.Deductions},
	)
	if err != nil {
		return nil, err
	}

	net := req.GrossIncome.Sub(req.Deductions)
	rate := decimal.Zero
	var status domain.LevyStatus
	switch {
	case req.BusinessType != domain.BusinessUMKM:
		status = domain.LevyNotApplicable
	case net.GreaterThan(UnifiedLevyIncomeCeiling):
		status = domain.LevyIneligible
	default:
		status = domain.LevyEligible
		rate = UnifiedLevyPercent
	}

	return &domain.UnifiedLevyResult{
		BusinessType: req.BusinessType,
		GrossIncome:  req.GrossIncome,
		Deductions:   req.Deductions,
		NetIncome:    net,
		Rate:         rate,
		Tax:          roundHalfUp(percentOf(decimal.Max(net, decimal.Zero), rate)),
		Status:       status,
	}, nil
}
