package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBatchYAML = `
metadata:
  period: "2024"
computations:
  - name: staff
    scheme: pph21
    monthly:
      employment_status: tetap
      classification: TK/0
      method: gross
      income:
        salary: 10000000
  - name: year-end
    scheme: annual
    annual:
      employment_status: pensiunan
      marital_status: k
      dependents: 2
      method: grossup
      income:
        salary: 80000000
      zakat: 500000
  - name: rent
    scheme: withholding
    withholding:
      income_type: rent
      amount: 2000000
      without_tax_id: true
  - name: bespoke
    scheme: final
    final:
      income_type: construction
      amount: 1000000
      rate: 2.65
  - name: shop
    scheme: levy
    levy:
      business_type: UMKM
      gross_income: 300000000
`

func TestInputParser_Parse(t *testing.T) {
	parser := NewInputParser()
	batch, err := parser.Parse([]byte(validBatchYAML))
	require.NoError(t, err)
	require.Len(t, batch.Computations, 5)

	assert.Equal(t, "2024", batch.Metadata.Period)

	monthly := batch.Computations[0]
	assert.Equal(t, domain.SchemeMonthly, monthly.Scheme, "alias should be normalized")
	require.NotNil(t, monthly.Monthly)
	assert.Equal(t, domain.PermanentEmployee, monthly.Monthly.EmploymentStatus)
	assert.True(t, decimal.NewFromInt(10000000).Equal(monthly.Monthly.Income.Salary))

	annual := batch.Computations[1].Annual
	require.NotNil(t, annual)
	assert.Equal(t, domain.Pensioner, annual.EmploymentStatus)
	assert.Equal(t, domain.Married, annual.MaritalStatus)
	assert.Equal(t, domain.MethodGrossUp, annual.Method)
	assert.True(t, decimal.NewFromInt(500000).Equal(annual.Zakat))

	assert.True(t, batch.Computations[2].Withholding.WithoutTaxID)

	rate := batch.Computations[3].Final.Rate
	require.NotNil(t, rate)
	assert.True(t, decimal.RequireFromString("2.65").Equal(*rate))

	assert.Equal(t, domain.BusinessUMKM, batch.Computations[4].Levy.BusinessType)
}

func TestInputParser_ParseJSON(t *testing.T) {
	data := `{"computations":[{"name":"vat","scheme":"ppn","vat":{"transaction_type":"general","transaction_value":1110000}}]}`
	batch, err := NewInputParser().Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, domain.SchemeVAT, batch.Computations[0].Scheme)
}

func TestInputParser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"empty", "computations: []", "no computations provided"},
		{"missing name", "computations:\n  - scheme: vat\n    vat: {transaction_type: general}", "name is required"},
		{"unknown scheme", "computations:\n  - name: a\n    scheme: payroll", "unknown scheme"},
		{"missing request", "computations:\n  - name: a\n    scheme: goods", "missing goods request"},
		{"mismatched request", "computations:\n  - name: a\n    scheme: goods\n    vat: {transaction_type: general}", "does not match"},
		{"missing classification", "computations:\n  - name: a\n    scheme: monthly\n    monthly: {method: gross}", "classification is required"},
		{"bad method", "computations:\n  - name: a\n    scheme: monthly\n    monthly: {classification: TK0, method: net}", "unknown method"},
		{"bad status", "computations:\n  - name: a\n    scheme: annual\n    annual: {marital_status: TK, employment_status: intern}", "unknown employment status"},
		{"missing type", "computations:\n  - name: a\n    scheme: withholding\n    withholding: {amount: 5}", "income_type or rate is required"},
		{"bad business", "computations:\n  - name: a\n    scheme: levy\n    levy: {business_type: corp}", "unknown business type"},
		{"duplicate names", "computations:\n  - name: a\n    scheme: vat\n    vat: {transaction_type: general}\n  - name: a\n    scheme: vat\n    vat: {transaction_type: general}", "duplicates the name"},
		{"malformed", "computations: [", "failed to parse YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validBatchYAML), 0o644))

	batch, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, batch.Computations, 5)

	_, err = NewInputParser().LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestCreateExampleBatch_RoundTrips(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleBatch()
	require.NoError(t, parser.ValidateBatch(example))

	// every scheme is represented
	schemes := map[domain.Scheme]bool{}
	for _, c := range example.Computations {
		schemes[c.Scheme] = true
	}
	assert.Len(t, schemes, len(domain.AllSchemes))

	data, err := MarshalBatch(example)
	require.NoError(t, err)
	parsed, err := parser.Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Computations, len(example.Computations))
	assert.True(t, example.Computations[2].Annual.Income.Salary.Equal(parsed.Computations[2].Annual.Income.Salary))
}
