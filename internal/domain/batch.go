package domain

// Computation is one named entry of a batch input file. Exactly one request field,
// the one matching Scheme, is expected to be set.
type Computation struct {
	Name        string              `yaml:"name" json:"name"`
	Scheme      Scheme              `yaml:"scheme" json:"scheme"`
	Monthly     *MonthlyRequest     `yaml:"monthly,omitempty" json:"monthly,omitempty"`
	Annual      *AnnualRequest      `yaml:"annual,omitempty" json:"annual,omitempty"`
	Goods       *GoodsTaxRequest    `yaml:"goods,omitempty" json:"goods,omitempty"`
	Withholding *WithholdingRequest `yaml:"withholding,omitempty" json:"withholding,omitempty"`
	Final       *FinalTaxRequest    `yaml:"final,omitempty" json:"final,omitempty"`
	VAT         *VATRequest         `yaml:"vat,omitempty" json:"vat,omitempty"`
	Levy        *UnifiedLevyRequest `yaml:"levy,omitempty" json:"levy,omitempty"`
}

// Batch is the top-level structure of an input file
type Batch struct {
	Metadata     RegulatoryMetadata `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Computations []Computation      `yaml:"computations" json:"computations"`
}

// Outcome holds the result of one computation. Error is set instead of a result when
// the computation was rejected.
type Outcome struct {
	Name        string             `json:"name"`
	Scheme      Scheme             `json:"scheme"`
	Monthly     *MonthlyResult     `json:"monthly,omitempty"`
	Annual      *AnnualResult      `json:"annual,omitempty"`
	Goods       *GoodsTaxResult    `json:"goods,omitempty"`
	Withholding *WithholdingResult `json:"withholding,omitempty"`
	Final       *FinalTaxResult    `json:"final,omitempty"`
	VAT         *VATResult         `json:"vat,omitempty"`
	Levy        *UnifiedLevyResult `json:"levy,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// Failed reports whether the computation was rejected
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// BatchResult collects outcomes in input order
type BatchResult struct {
	Metadata RegulatoryMetadata `json:"metadata"`
	Outcomes []Outcome          `json:"outcomes"`
}

// FailedCount returns the number of rejected computations
func (br *BatchResult) FailedCount() int {
	n := 0
	for _, o := range br.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}
