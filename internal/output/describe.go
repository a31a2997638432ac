package output

import (
	"fmt"
	"strconv"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ValueKind selects how a line's value is rendered
type ValueKind int

const (
	KindMoney ValueKind = iota
	KindRate            // fraction, shown as percent
	KindPercent         // already a percentage
	KindCount
	KindText
)

// Line is one labelled figure of a computation
type Line struct {
	Label    string
	Kind     ValueKind
	Amount   decimal.Decimal
	Text     string
	Emphasis bool
}

// Display renders the value for people
func (l Line) Display() string {
	switch l.Kind {
	case KindMoney:
		return FormatRupiah(l.Amount)
	case KindRate:
		return FormatRate(l.Amount)
	case KindPercent:
		return FormatPercent(l.Amount)
	case KindCount:
		return l.Amount.String()
	default:
		return l.Text
	}
}

// Raw renders the value for machines: plain decimal numbers, text as is
func (l Line) Raw() string {
	if l.Kind == KindText {
		return l.Text
	}
	return l.Amount.String()
}

// Section is the display form of one outcome
type Section struct {
	Name   string
	Scheme domain.Scheme
	Title  string
	Lines  []Line
	Notes  []string
	Error  string
}

func money(label string, v decimal.Decimal) Line {
	return Line{Label: label, Kind: KindMoney, Amount: v}
}

func text(label, v string) Line {
	return Line{Label: label, Kind: KindText, Text: v}
}

func total(label string, v decimal.Decimal) Line {
	return Line{Label: label, Kind: KindMoney, Amount: v, Emphasis: true}
}

// Describe turns an outcome into labelled lines shared by every output surface
func Describe(o domain.Outcome) Section {
	s := Section{Name: o.Name, Scheme: o.Scheme, Title: o.Scheme.Title(), Error: o.Error}
	switch {
	case o.Failed():
	case o.Monthly != nil:
		describeMonthly(&s, o.Monthly)
	case o.Annual != nil:
		describeAnnual(&s, o.Annual)
	case o.Goods != nil:
		r := o.Goods
		s.Lines = []Line{
			text("Goods type", r.GoodsType),
			money("Transaction value", r.TransactionValue),
			{Label: "Rate", Kind: KindPercent, Amount: r.Rate},
			total("PPh 22", r.Tax),
		}
	case o.Withholding != nil:
		r := o.Withholding
		taxID := "present"
		if !r.TaxIDPresent {
			taxID = "absent"
			s.Notes = append(s.Notes, "Tax doubled: payee has no tax ID (NPWP)")
		}
		s.Lines = []Line{
			text("Income type", r.IncomeType),
			money("Gross amount", r.Amount),
			{Label: "Rate", Kind: KindPercent, Amount: r.Rate},
			text("Tax ID", taxID),
			money("Tax before surcharge", r.BaseTax),
			total("PPh 23", r.Tax),
		}
	case o.Final != nil:
		r := o.Final
		s.Lines = []Line{
			text("Income type", r.IncomeType),
			money("Gross amount", r.Amount),
			{Label: "Rate", Kind: KindPercent, Amount: r.Rate},
			total("PPh 4(2)", r.Tax),
		}
	case o.VAT != nil:
		r := o.VAT
		s.Lines = []Line{
			text("Transaction type", r.TransactionType),
			money("Transaction value (incl. VAT)", r.TransactionValue),
			{Label: "Rate", Kind: KindPercent, Amount: r.Rate},
			money("Tax base (DPP)", r.TaxBase),
			total("PPN", r.Tax),
		}
	case o.Levy != nil:
		r := o.Levy
		s.Lines = []Line{
			text("Business type", string(r.BusinessType)),
			money("Gross income", r.GrossIncome),
			money("Deductions", r.Deductions),
			money("Net income", r.NetIncome),
			{Label: "Rate", Kind: KindPercent, Amount: r.Rate},
			total("Unified levy", r.Tax),
			text("Status", string(r.Status)),
		}
		s.Notes = append(s.Notes, r.Status.Message())
	}
	return s
}

func describeMonthly(s *Section, r *domain.MonthlyResult) {
	if r.EmploymentStatus != "" {
		s.Lines = append(s.Lines, text("Employment status", string(r.EmploymentStatus)))
	}
	s.Lines = append(s.Lines,
		text("Classification", fmt.Sprintf("%s (category %s)", r.Classification, r.Category)),
		text("Method", string(r.Method)),
		money("Base income", r.BaseIncome),
		money("Tax allowance", r.TaxAllowance),
		money("Gross income", r.Gross),
		Line{Label: "TER rate", Kind: KindRate, Amount: r.Rate},
		total("PPh 21 this month", r.Tax),
	)
	describeGrossUp(s, r.GrossUp)
	if !r.BandMatched {
		s.Notes = append(s.Notes, "No TER band matched the gross income; rate 0 applied")
	}
}

func describeAnnual(s *Section, r *domain.AnnualResult) {
	s.Lines = append(s.Lines,
		text("Employment status", string(r.EmploymentStatus)),
		text("Classification", r.Classification),
		text("Method", string(r.Method)),
		money("Base income", r.BaseIncome),
		money("Tax allowance", r.TaxAllowance),
		money("Gross income", r.Gross),
		money("Occupational deduction", r.OccupationalDeduction),
		money("Pension and zakat", r.OtherDeductions),
		money("Total deductions", r.TotalDeductions),
		money("Net income", r.Net),
		money("PTKP", r.AnnualThreshold),
		money("Taxable income (PKP)", r.TaxableIncome),
	)
	for _, l := range r.Layers {
		s.Lines = append(s.Lines, money(
			fmt.Sprintf("  %s x %s", FormatRate(l.Rate), FormatRupiah(l.Amount)), l.Tax))
	}
	s.Lines = append(s.Lines,
		total("Annual PPh 21", r.AnnualTax),
		money("Withheld in prior periods", r.TaxWithheldPrior),
		total("Final period PPh 21", r.FinalPeriodTax),
		text("Settlement", string(r.Settlement)),
	)
	describeGrossUp(s, r.GrossUp)
	if r.Settlement == domain.SettlementOverpaid {
		s.Notes = append(s.Notes, "Overpaid: the employer refunds the excess withholding")
	} else {
		s.Notes = append(s.Notes, "Underpaid: the balance is withheld in the final period")
	}
}

func describeGrossUp(s *Section, info *domain.GrossUpInfo) {
	if info == nil {
		return
	}
	s.Lines = append(s.Lines, Line{
		Label:  "Gross-up iterations",
		Kind:   KindCount,
		Amount: decimal.NewFromInt(int64(info.Iterations)),
	})
	if !info.Converged {
		s.Notes = append(s.Notes, "Gross-up stopped after "+strconv.Itoa(info.Iterations)+
			" iterations without converging; the allowance is the last estimate")
	}
}

// DescribeAll describes every outcome of a batch in order
func DescribeAll(results *domain.BatchResult) []Section {
	sections := make([]Section, 0, len(results.Outcomes))
	for _, o := range results.Outcomes {
		sections = append(sections, Describe(o))
	}
	return sections
}
