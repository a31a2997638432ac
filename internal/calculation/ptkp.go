package calculation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
)

type ptkpEntry struct {
	threshold int64
	category  domain.MonthlyCategory
}

// PTKP (non-taxable income threshold) per marital status, indexed by dependents
var ptkpTable = map[domain.MaritalStatus][domain.MaxDependents + 1]ptkpEntry{
	domain.Unmarried: {
		{54_000_000, domain.CategoryA},
		{58_500_000, domain.CategoryA},
		{63_000_000, domain.CategoryB},
		{67_500_000, domain.CategoryB},
	},
	domain.Married: {
		{58_500_000, domain.CategoryA},
		{63_000_000, domain.CategoryB},
		{67_500_000, domain.CategoryB},
		{72_000_000, domain.CategoryC},
	},
	domain.MarriedCombinedIncome: {
		{112_500_000, domain.CategoryC},
		{117_000_000, domain.CategoryC},
		{121_500_000, domain.CategoryC},
		{126_000_000, domain.CategoryC},
	},
}

var maritalOrder = []domain.MaritalStatus{domain.Unmarried, domain.Married, domain.MarriedCombinedIncome}

// ResolveAllowance returns the annual threshold and monthly category for a marital
// status and dependent count
func ResolveAllowance(status domain.MaritalStatus, dependents int) (domain.Allowance, error) {
	c := domain.Classification{Status: status, Dependents: dependents}
	row, ok := ptkpTable[status]
	if !ok {
		return domain.Allowance{}, &UnresolvedClassificationError{
			Code:   c.Code(),
			Reason: fmt.Sprintf("unknown marital status %q", string(status)),
		}
	}
	if dependents < 0 || dependents > domain.MaxDependents {
		return domain.Allowance{}, &UnresolvedClassificationError{
			Code:   c.Code(),
			Reason: fmt.Sprintf("dependents must be between 0 and %d", domain.MaxDependents),
		}
	}
	entry := row[dependents]
	return domain.Allowance{
		Classification:  c,
		AnnualThreshold: decimal.NewFromInt(entry.threshold),
		Category:        entry.category,
	}, nil
}

// ResolveClassification parses a classification code and resolves it. Accepted forms
// are the compact code ("TK0", "KI3") and the slashed form ("TK/0", "K/I/3"), case
// insensitive.
func ResolveClassification(code string) (domain.Allowance, error) {
	c, err := ParseClassification(code)
	if err != nil {
		return domain.Allowance{}, err
	}
	return ResolveAllowance(c.Status, c.Dependents)
}

// classificationPattern matches the compact codes (TK0, K2, KI3) and the slashed
// forms TK/0, K/2 and K/I/3
var classificationPattern = regexp.MustCompile(`^(?:(TK|KI|K)|(TK|K)/|(K/I)/)([0-9]+)$`)

// ParseClassification splits a classification code into status and dependents
func ParseClassification(code string) (domain.Classification, error) {
	m := classificationPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(code)))
	if m == nil {
		return domain.Classification{}, &UnresolvedClassificationError{Code: code, Reason: "expected a code such as TK0, TK/0 or K/I/3"}
	}
	status := domain.MaritalStatus(m[1] + m[2])
	if m[3] != "" {
		status = domain.MarriedCombinedIncome
	}
	dependents, err := strconv.Atoi(m[4])
	if err != nil {
		return domain.Classification{}, &UnresolvedClassificationError{Code: code, Reason: "missing dependent count"}
	}
	return domain.Classification{Status: status, Dependents: dependents}, nil
}

// Classifications lists every resolvable classification in table order
func Classifications() []domain.Allowance {
	var out []domain.Allowance
	for _, status := range maritalOrder {
		for d := 0; d <= domain.MaxDependents; d++ {
			a, _ := ResolveAllowance(status, d)
			out = append(out, a)
		}
	}
	return out
}
