package calculation

import (
	"testing"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileTaxable(t *testing.T) {
	tests := []struct {
		name         string
		gross        string
		other        string
		threshold    string
		status       domain.EmploymentStatus
		occupational string
		net          string
		taxable      string
		tax          string
	}{
		{
			name: "permanent at the deduction cap", gross: "120000000", other: "0", threshold: "54000000",
			status: domain.PermanentEmployee, occupational: "6000000", net: "114000000", taxable: "60000000", tax: "3000000",
		},
		{
			name: "taxable floored to thousand", gross: "100001999", other: "0", threshold: "54000000",
			status: domain.PermanentEmployee, occupational: "5000099.95", net: "95001899.05", taxable: "41001000", tax: "2050050",
		},
		{
			name: "pensioner cap", gross: "60000000", other: "0", threshold: "58500000",
			status: domain.Pensioner, occupational: "2400000", net: "57600000", taxable: "0", tax: "0",
		},
		{
			name: "other deductions", gross: "400000000", other: "10000000", threshold: "54000000",
			status: domain.PermanentEmployee, occupational: "6000000", net: "384000000", taxable: "330000000", tax: "51500000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ReconcileTaxable(d(tt.gross), d(tt.other), d(tt.threshold), tt.status)
			assert.True(t, d(tt.occupational).Equal(f.OccupationalDeduction), "occupational %s", f.OccupationalDeduction)
			assert.True(t, d(tt.net).Equal(f.Net), "net %s", f.Net)
			assert.True(t, d(tt.taxable).Equal(f.Taxable), "taxable %s", f.Taxable)
			assert.True(t, d(tt.tax).Equal(f.Tax.Total), "tax %s", f.Tax.Total)
		})
	}
}

func TestSettle(t *testing.T) {
	final, s := Settle(d("3000000"), d("2500000"))
	assert.True(t, d("500000").Equal(final))
	assert.Equal(t, domain.SettlementUnderpaid, s)

	final, s = Settle(d("3000000"), d("3000000"))
	assert.True(t, final.IsZero())
	assert.Equal(t, domain.SettlementUnderpaid, s)

	final, s = Settle(d("3000000"), d("3500000"))
	assert.True(t, d("-500000").Equal(final))
	assert.Equal(t, domain.SettlementOverpaid, s)

	final, _ = Settle(d("1000.5"), decimal.Zero)
	assert.True(t, d("1001").Equal(final))
}

func annualRequest() domain.AnnualRequest {
	return domain.AnnualRequest{
		EmploymentStatus: domain.PermanentEmployee,
		MaritalStatus:    domain.Unmarried,
		Dependents:       0,
		Method:           domain.MethodGross,
		Income:           domain.IncomeComponents{Salary: d("120000000")},
		TaxWithheldPrior: d("2500000"),
	}
}

func TestAnnualCalculator_Gross(t *testing.T) {
	ac := NewAnnualCalculator(nil)
	res, err := ac.Calculate(annualRequest())
	require.NoError(t, err)

	assert.Equal(t, "TK/0", res.Classification)
	assert.True(t, d("120000000").Equal(res.Gross))
	assert.True(t, d("6000000").Equal(res.OccupationalDeduction))
	assert.True(t, d("54000000").Equal(res.AnnualThreshold))
	assert.True(t, d("60000000").Equal(res.TaxableIncome))
	assert.True(t, d("3000000").Equal(res.AnnualTax))
	assert.Len(t, res.Layers, 1)
	assert.True(t, d("500000").Equal(res.FinalPeriodTax))
	assert.Equal(t, domain.SettlementUnderpaid, res.Settlement)
	assert.Nil(t, res.GrossUp)
}

func TestAnnualCalculator_EnteredAllowanceAndDeductions(t *testing.T) {
	req := annualRequest()
	req.Income.TaxAllowance = d("3000000")
	req.Income.Bonus = d("10000000")
	req.PensionContributions = d("2400000")
	req.Zakat = d("600000")
	req.TaxWithheldPrior = d("10000000")

	res, err := NewAnnualCalculator(nil).Calculate(req)
	require.NoError(t, err)

	// gross 133M, occupational 6M, other 3M, net 124M, taxable 70M
	assert.True(t, d("130000000").Equal(res.BaseIncome))
	assert.True(t, d("133000000").Equal(res.Gross))
	assert.True(t, d("3000000").Equal(res.OtherDeductions))
	assert.True(t, d("9000000").Equal(res.TotalDeductions))
	assert.True(t, d("70000000").Equal(res.TaxableIncome))
	assert.True(t, d("4500000").Equal(res.AnnualTax))
	assert.True(t, d("-5500000").Equal(res.FinalPeriodTax))
	assert.Equal(t, domain.SettlementOverpaid, res.Settlement)
}

func TestAnnualCalculator_GrossUp(t *testing.T) {
	req := annualRequest()
	req.Method = domain.MethodGrossUp
	req.Income.TaxAllowance = d("999") // ignored by gross-up

	res, err := NewAnnualCalculator(nil).Calculate(req)
	require.NoError(t, err)

	require.NotNil(t, res.GrossUp)
	assert.True(t, res.GrossUp.Converged)
	assert.True(t, d("3529350").Equal(res.TaxAllowance))
	assert.True(t, d("123529350").Equal(res.Gross))
	assert.True(t, d("63529000").Equal(res.TaxableIncome))
	assert.True(t, res.AnnualTax.Equal(res.TaxAllowance))
}

func TestAnnualCalculator_Rejections(t *testing.T) {
	ac := NewAnnualCalculator(nil)

	req := annualRequest()
	req.Income.Honorarium = d("-1")
	_, err := ac.Calculate(req)
	assertInvalidInput(t, err, "honorarium")

	req = annualRequest()
	req.Zakat = d("-5")
	_, err = ac.Calculate(req)
	assertInvalidInput(t, err, "zakat")

	req = annualRequest()
	req.Method = "net"
	_, err = ac.Calculate(req)
	assertInvalidInput(t, err, "method")

	req = annualRequest()
	req.EmploymentStatus = "contractor"
	_, err = ac.Calculate(req)
	assertInvalidInput(t, err, "employment_status")

	req = annualRequest()
	req.Dependents = 5
	_, err = ac.Calculate(req)
	var ue *UnresolvedClassificationError
	assert.ErrorAs(t, err, &ue)
}

func TestAnnualCalculator_Defaults(t *testing.T) {
	req := annualRequest()
	req.Method = ""
	req.EmploymentStatus = ""
	res, err := NewAnnualCalculator(nil).Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodGross, res.Method)
	assert.Equal(t, domain.PermanentEmployee, res.EmploymentStatus)
}
