package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of batch input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a batch from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Batch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a batch. JSON input is accepted as YAML.
func (ip *InputParser) Parse(data []byte) (*domain.Batch, error) {
	var batch domain.Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateBatch(&batch); err != nil {
		return nil, fmt.Errorf("batch validation failed: %w", err)
	}

	return &batch, nil
}

// ValidateBatch checks the structure of a batch and normalizes enum spellings in place.
// Amount and classification checks are left to the calculators, which report them per
// computation.
func (ip *InputParser) ValidateBatch(batch *domain.Batch) error {
	if len(batch.Computations) == 0 {
		return fmt.Errorf("no computations provided")
	}

	seen := make(map[string]int, len(batch.Computations))
	for i := range batch.Computations {
		c := &batch.Computations[i]
		if err := ip.ValidateComputation(c); err != nil {
			return fmt.Errorf("computation %d (%s) validation failed: %w", i+1, c.Name, err)
		}
		if prev, dup := seen[c.Name]; dup {
			return fmt.Errorf("computation %d duplicates the name %q of computation %d", i+1, c.Name, prev)
		}
		seen[c.Name] = i + 1
	}
	return nil
}

// ValidateComputation checks one computation and normalizes its enum spellings in place
func (ip *InputParser) ValidateComputation(c *domain.Computation) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	scheme, err := ParseScheme(string(c.Scheme))
	if err != nil {
		return err
	}
	c.Scheme = scheme

	present := requestsPresent(c)
	if len(present) == 0 {
		return fmt.Errorf("missing %s request", scheme)
	}
	if len(present) > 1 || present[0] != scheme {
		return fmt.Errorf("scheme %s does not match request sections %v", scheme, present)
	}

	switch scheme {
	case domain.SchemeMonthly:
		return ip.validateMonthly(c.Monthly)
	case domain.SchemeAnnual:
		return ip.validateAnnual(c.Annual)
	case domain.SchemeGoods:
		return requireType("goods_type", c.Goods.GoodsType, c.Goods.Rate)
	case domain.SchemeWithholding:
		return requireType("income_type", c.Withholding.IncomeType, c.Withholding.Rate)
	case domain.SchemeFinal:
		return requireType("income_type", c.Final.IncomeType, c.Final.Rate)
	case domain.SchemeVAT:
		return requireType("transaction_type", c.VAT.TransactionType, c.VAT.Rate)
	case domain.SchemeUnifiedLevy:
		bt, err := ParseBusinessType(string(c.Levy.BusinessType))
		c.Levy.BusinessType = bt
		return err
	}
	return nil
}

func (ip *InputParser) validateMonthly(req *domain.MonthlyRequest) error {
	if req.Classification == "" {
		return fmt.Errorf("classification is required")
	}
	method, err := ParseMethod(string(req.Method))
	if err != nil {
		return err
	}
	req.Method = method
	status, err := ParseEmploymentStatus(string(req.EmploymentStatus))
	if err != nil {
		return err
	}
	req.EmploymentStatus = status
	return nil
}

func (ip *InputParser) validateAnnual(req *domain.AnnualRequest) error {
	if req.MaritalStatus == "" {
		return fmt.Errorf("marital_status is required")
	}
	req.MaritalStatus = domain.MaritalStatus(strings.ToUpper(string(req.MaritalStatus)))
	method, err := ParseMethod(string(req.Method))
	if err != nil {
		return err
	}
	req.Method = method
	status, err := ParseEmploymentStatus(string(req.EmploymentStatus))
	if err != nil {
		return err
	}
	req.EmploymentStatus = status
	return nil
}

// requireType rejects an empty type unless an explicit rate is supplied
func requireType(field, value string, rate *decimal.Decimal) error {
	if value == "" && rate == nil {
		return fmt.Errorf("%s or rate is required", field)
	}
	return nil
}

func requestsPresent(c *domain.Computation) []domain.Scheme {
	var present []domain.Scheme
	if c.Monthly != nil {
		present = append(present, domain.SchemeMonthly)
	}
	if c.Annual != nil {
		present = append(present, domain.SchemeAnnual)
	}
	if c.Goods != nil {
		present = append(present, domain.SchemeGoods)
	}
	if c.Withholding != nil {
		present = append(present, domain.SchemeWithholding)
	}
	if c.Final != nil {
		present = append(present, domain.SchemeFinal)
	}
	if c.VAT != nil {
		present = append(present, domain.SchemeVAT)
	}
	if c.Levy != nil {
		present = append(present, domain.SchemeUnifiedLevy)
	}
	return present
}

// CreateExampleBatch returns a batch with one computation per scheme
func (ip *InputParser) CreateExampleBatch() *domain.Batch {
	d := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	rate := decimal.NewFromFloat(0.45)

	return &domain.Batch{
		Computations: []domain.Computation{
			{
				Name:   "monthly_tk0_gross",
				Scheme: domain.SchemeMonthly,
				Monthly: &domain.MonthlyRequest{
					EmploymentStatus: domain.PermanentEmployee,
					Classification:   "TK/0",
					Method:           domain.MethodGross,
					Income: domain.IncomeComponents{
						Salary:          d(9_000_000),
						OtherAllowances: d(750_000),
						Bonus:           d(250_000),
					},
				},
			},
			{
				Name:   "monthly_k1_grossup",
				Scheme: domain.SchemeMonthly,
				Monthly: &domain.MonthlyRequest{
					EmploymentStatus: domain.PermanentEmployee,
					Classification:   "K/1",
					Method:           domain.MethodGrossUp,
					Income: domain.IncomeComponents{
						Salary:            d(15_000_000),
						InsurancePremiums: d(300_000),
					},
				},
			},
			{
				Name:   "annual_tk0",
				Scheme: domain.SchemeAnnual,
				Annual: &domain.AnnualRequest{
					EmploymentStatus: domain.PermanentEmployee,
					MaritalStatus:    domain.Unmarried,
					Dependents:       0,
					Method:           domain.MethodGross,
					Income: domain.IncomeComponents{
						Salary: d(120_000_000),
						Bonus:  d(10_000_000),
					},
					PensionContributions: d(2_400_000),
					TaxWithheldPrior:     d(4_000_000),
				},
			},
			{
				Name:   "import_goods",
				Scheme: domain.SchemeGoods,
				Goods: &domain.GoodsTaxRequest{
					GoodsType:        "import",
					TransactionValue: d(50_000_000),
				},
			},
			{
				Name:   "royalty_without_tax_id",
				Scheme: domain.SchemeWithholding,
				Withholding: &domain.WithholdingRequest{
					IncomeType:   "royalty",
					Amount:       d(10_000_000),
					WithoutTaxID: true,
				},
			},
			{
				Name:   "deposit_interest",
				Scheme: domain.SchemeFinal,
				Final: &domain.FinalTaxRequest{
					IncomeType: "interest",
					Amount:     d(5_000_000),
				},
			},
			{
				Name:   "construction_services",
				Scheme: domain.SchemeFinal,
				Final: &domain.FinalTaxRequest{
					IncomeType: "construction",
					Amount:     d(200_000_000),
					Rate:       &rate,
				},
			},
			{
				Name:   "sale_including_vat",
				Scheme: domain.SchemeVAT,
				VAT: &domain.VATRequest{
					TransactionType:  "general",
					TransactionValue: d(11_100_000),
				},
			},
			{
				Name:   "small_business",
				Scheme: domain.SchemeUnifiedLevy,
				Levy: &domain.UnifiedLevyRequest{
					BusinessType: domain.BusinessUMKM,
					GrossIncome:  d(420_000_000),
					Deductions:   d(20_000_000),
				},
			},
		},
	}
}

// MarshalBatch encodes a batch as YAML
func MarshalBatch(batch *domain.Batch) ([]byte, error) {
	data, err := yaml.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch: %w", err)
	}
	return data, nil
}
