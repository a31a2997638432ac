package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/pphgo/internal/config"
	"github.com/rgehrsitz/pphgo/internal/domain"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindAmount
	kindInt
	kindBool
)

// fieldSpec describes one form input. Income fields are nested under "income".
type fieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Kind        fieldKind
	Income      bool
}

var incomeFields = []fieldSpec{
	{Key: "salary", Label: "Salary / pension", Placeholder: "10000000", Kind: kindAmount, Income: true},
	{Key: "tax_allowance", Label: "Tax allowance", Placeholder: "0", Kind: kindAmount, Income: true},
	{Key: "other_allowances", Label: "Other allowances", Placeholder: "0", Kind: kindAmount, Income: true},
	{Key: "honorarium", Label: "Honorarium", Placeholder: "0", Kind: kindAmount, Income: true},
	{Key: "insurance_premiums", Label: "Insurance premiums", Placeholder: "0", Kind: kindAmount, Income: true},
	{Key: "in_kind_benefits", Label: "In-kind benefits", Placeholder: "0", Kind: kindAmount, Income: true},
	{Key: "bonus", Label: "Bonus", Placeholder: "0", Kind: kindAmount, Income: true},
}

var schemeFields = map[domain.Scheme][]fieldSpec{
	domain.SchemeMonthly: append([]fieldSpec{
		{Key: "classification", Label: "Classification", Placeholder: "TK/0"},
		{Key: "method", Label: "Method", Placeholder: "gross or gross-up"},
		{Key: "employment_status", Label: "Employment status", Placeholder: "permanent"},
	}, incomeFields...),
	domain.SchemeAnnual: append(append([]fieldSpec{
		{Key: "marital_status", Label: "Marital status", Placeholder: "TK, K or KI"},
		{Key: "dependents", Label: "Dependents", Placeholder: "0", Kind: kindInt},
		{Key: "employment_status", Label: "Employment status", Placeholder: "permanent or pensioner"},
		{Key: "method", Label: "Method", Placeholder: "gross or gross-up"},
	}, incomeFields...),
		fieldSpec{Key: "pension_contributions", Label: "Pension contributions", Placeholder: "0", Kind: kindAmount},
		fieldSpec{Key: "zakat", Label: "Zakat", Placeholder: "0", Kind: kindAmount},
		fieldSpec{Key: "tax_withheld_prior", Label: "Withheld Jan-Nov", Placeholder: "0", Kind: kindAmount},
	),
	domain.SchemeGoods: {
		{Key: "goods_type", Label: "Goods type", Placeholder: "import"},
		{Key: "transaction_value", Label: "Transaction value", Placeholder: "1000000", Kind: kindAmount},
		{Key: "rate", Label: "Rate override (%)", Placeholder: "default", Kind: kindAmount},
	},
	domain.SchemeWithholding: {
		{Key: "income_type", Label: "Income type", Placeholder: "royalty"},
		{Key: "amount", Label: "Gross amount", Placeholder: "1000000", Kind: kindAmount},
		{Key: "rate", Label: "Rate override (%)", Placeholder: "default", Kind: kindAmount},
		{Key: "without_tax_id", Label: "Payee without NPWP", Placeholder: "n", Kind: kindBool},
	},
	domain.SchemeFinal: {
		{Key: "income_type", Label: "Income type", Placeholder: "interest"},
		{Key: "amount", Label: "Gross amount", Placeholder: "1000000", Kind: kindAmount},
		{Key: "rate", Label: "Rate override (%)", Placeholder: "default", Kind: kindAmount},
	},
	domain.SchemeVAT: {
		{Key: "transaction_type", Label: "Transaction type", Placeholder: "general"},
		{Key: "transaction_value", Label: "Value incl. VAT", Placeholder: "1110000", Kind: kindAmount},
		{Key: "rate", Label: "Rate override (%)", Placeholder: "default", Kind: kindAmount},
	},
	domain.SchemeUnifiedLevy: {
		{Key: "business_type", Label: "Business type", Placeholder: "umkm"},
		{Key: "gross_income", Label: "Gross income", Placeholder: "100000000", Kind: kindAmount},
		{Key: "deductions", Label: "Deductions", Placeholder: "0", Kind: kindAmount},
	},
}

var amountCleaner = strings.NewReplacer("_", "", " ", "")

// buildComputation turns form values into a validated computation by way of the
// batch file parser, so the form accepts exactly what an input file accepts
func buildComputation(scheme domain.Scheme, values map[string]string) (domain.Computation, error) {
	req := map[string]any{}
	income := map[string]any{}
	for _, f := range schemeFields[scheme] {
		v := strings.TrimSpace(values[f.Key])
		if v == "" {
			continue
		}
		var parsed any = v
		switch f.Kind {
		case kindAmount:
			parsed = amountCleaner.Replace(v)
		case kindInt:
			n, err := strconv.Atoi(v)
			if err != nil {
				return domain.Computation{}, fmt.Errorf("%s must be a whole number", f.Label)
			}
			parsed = n
		case kindBool:
			switch strings.ToLower(v) {
			case "y", "yes", "true", "ya":
				parsed = true
			case "n", "no", "false", "tidak":
				parsed = false
			default:
				return domain.Computation{}, fmt.Errorf("%s must be y or n", f.Label)
			}
		}
		if f.Income {
			income[f.Key] = parsed
		} else {
			req[f.Key] = parsed
		}
	}
	if len(income) > 0 {
		req["income"] = income
	}

	doc := map[string]any{
		"computations": []map[string]any{{
			"name":         "interactive",
			"scheme":       string(scheme),
			string(scheme): req,
		}},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return domain.Computation{}, err
	}
	batch, err := config.NewInputParser().Parse(data)
	if err != nil {
		return domain.Computation{}, err
	}
	return batch.Computations[0], nil
}
