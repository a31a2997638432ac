package calculation

import (
	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
)

// AnnualFigures holds the intermediate figures of one pass of the annual pipeline
type AnnualFigures struct {
	Gross                 decimal.Decimal
	OccupationalDeduction decimal.Decimal
	OtherDeductions       decimal.Decimal
	TotalDeductions       decimal.Decimal
	Net                   decimal.Decimal
	Threshold             decimal.Decimal
	Taxable               decimal.Decimal
	Tax                   LayeredTax
}

// OccupationalCeiling returns the occupational-expense deduction cap for a status
func OccupationalCeiling(status domain.EmploymentStatus) decimal.Decimal {
	if status == domain.Pensioner {
		return OccupationalCeilingPensioner
	}
	return OccupationalCeilingPermanent
}

// ReconcileTaxable runs gross income through deductions, the threshold and the
// progressive layers
func ReconcileTaxable(gross, otherDeductions, threshold decimal.Decimal, status domain.EmploymentStatus) AnnualFigures {
	occupational := decimal.Min(gross.Mul(OccupationalDeductionRate), OccupationalCeiling(status))
	total := occupational.Add(otherDeductions)
	net := gross.Sub(total)
	taxable := decimal.Max(decimal.Zero, floorToThousand(net.Sub(threshold)))
	return AnnualFigures{
		Gross:                 gross,
		OccupationalDeduction: occupational,
		OtherDeductions:       otherDeductions,
		TotalDeductions:       total,
		Net:                   net,
		Threshold:             threshold,
		Taxable:               taxable,
		Tax:                   ApportionLayers(progressiveLayers, taxable),
	}
}

// Settle returns the final-period liability and its direction. Zero counts as underpaid.
func Settle(annualTax, withheldPrior decimal.Decimal) (decimal.Decimal, domain.Settlement) {
	final := roundHalfUp(annualTax.Sub(withheldPrior))
	if final.IsNegative() {
		return final, domain.SettlementOverpaid
	}
	return final, domain.SettlementUnderpaid
}

// AnnualCalculator performs the final-period reconciliation
type AnnualCalculator struct {
	Solver *GrossUpSolver
}

// NewAnnualCalculator creates an annual calculator sharing the given solver
func NewAnnualCalculator(solver *GrossUpSolver) *AnnualCalculator {
	if solver == nil {
		solver = NewGrossUpSolver(nil)
	}
	return &AnnualCalculator{Solver: solver}
}

// Calculate reconciles a full year of income against the progressive layers
func (ac *AnnualCalculator) Calculate(req domain.AnnualRequest) (*domain.AnnualResult, error) {
	if err := checkAmounts(req.Income.Fields()...); err != nil {
		return nil, err
	}
	err := checkAmounts(
		domain.NamedAmount{Name: "pension_contributions", Amount: req.PensionContributions},
		domain.NamedAmount{Name: "zakat", Amount: req.Zakat},
		domain.NamedAmount{Name: "tax_withheld_prior", Amount: req.TaxWithheldPrior},
	)
	if err != nil {
		return nil, err
	}
	method, err := normalizeMethod(req.Method)
	if err != nil {
		return nil, err
	}
	status, err := normalizeEmploymentStatus(req.EmploymentStatus)
	if err != nil {
		return nil, err
	}
	allowance, err := ResolveAllowance(req.MaritalStatus, req.Dependents)
	if err != nil {
		return nil, err
	}

	base := req.Income.Base()
	other := req.OtherDeductions()
	taxAllowance := req.Income.TaxAllowance
	gross := req.Income.Gross()
	var info *domain.GrossUpInfo

	if method == domain.MethodGrossUp {
		solved := ac.Solver.SolveAnnual(base, other, allowance.AnnualThreshold, status)
		taxAllowance = solved.Allowance
		gross = solved.Gross
		info = solved.State.Info()
	}

	figures := ReconcileTaxable(gross, other, allowance.AnnualThreshold, status)
	final, settlement := Settle(figures.Tax.Total, req.TaxWithheldPrior)

	return &domain.AnnualResult{
		EmploymentStatus:      status,
		Classification:        allowance.Classification.String(),
		Method:                method,
		BaseIncome:            base,
		TaxAllowance:          taxAllowance,
		Gross:                 gross,
		OccupationalDeduction: figures.OccupationalDeduction,
		OtherDeductions:       other,
		TotalDeductions:       figures.TotalDeductions,
		Net:                   figures.Net,
		AnnualThreshold:       allowance.AnnualThreshold,
		TaxableIncome:         figures.Taxable,
		AnnualTax:             figures.Tax.Total,
		Layers:                figures.Tax.Layers,
		TaxWithheldPrior:      req.TaxWithheldPrior,
		FinalPeriodTax:        final,
		Settlement:            settlement,
		GrossUp:               info,
	}, nil
}

func normalizeMethod(m domain.Method) (domain.Method, error) {
	switch m {
	case "", domain.MethodGross:
		return domain.MethodGross, nil
	case domain.MethodGrossUp:
		return m, nil
	default:
		return "", &InvalidInputError{Field: "method", Value: string(m), Message: "must be gross or gross-up"}
	}
}

func normalizeEmploymentStatus(s domain.EmploymentStatus) (domain.EmploymentStatus, error) {
	switch s {
	case "", domain.PermanentEmployee:
		return domain.PermanentEmployee, nil
	case domain.Pensioner:
		return s, nil
	default:
		return "", &InvalidInputError{Field: "employment_status", Value: string(s), Message: "must be permanent or pensioner"}
	}
}
