package server

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"github.com/rgehrsitz/pphgo/internal/calculation"
	"github.com/rgehrsitz/pphgo/internal/config"
	"github.com/rgehrsitz/pphgo/internal/domain"
)

// ClassificationView is one selectable PTKP classification
type ClassificationView struct {
	Code            string                 `json:"code"`
	Label           string                 `json:"label"`
	Description     string                 `json:"description"`
	AnnualThreshold decimal.Decimal        `json:"annual_threshold"`
	Category        domain.MonthlyCategory `json:"category"`
}

func classificationViews() []ClassificationView {
	return lo.Map(calculation.Classifications(), func(a domain.Allowance, _ int) ClassificationView {
		return ClassificationView{
			Code:            a.Classification.Code(),
			Label:           a.Classification.String(),
			Description:     a.Classification.Description(),
			AnnualThreshold: a.AnnualThreshold,
			Category:        a.Category,
		}
	})
}

// MonthlyRates lists the TER tables and their known anomalies
type MonthlyRates struct {
	Metadata  domain.RegulatoryMetadata  `json:"metadata"`
	Tables    []domain.RateTable         `json:"tables"`
	Anomalies []calculation.TableAnomaly `json:"anomalies"`
}

// AnnualRates lists the progressive layers and deduction constants
type AnnualRates struct {
	Metadata                     domain.RegulatoryMetadata `json:"metadata"`
	Layers                       []domain.ProgressiveLayer `json:"layers"`
	OccupationalDeductionRate    decimal.Decimal           `json:"occupational_deduction_rate"`
	OccupationalCeilingPermanent decimal.Decimal           `json:"occupational_ceiling_permanent"`
	OccupationalCeilingPensioner decimal.Decimal           `json:"occupational_ceiling_pensioner"`
}

// FlatRates lists the default percentages of a flat-rate scheme
type FlatRates struct {
	Scheme domain.Scheme     `json:"scheme"`
	Rates  []domain.FlatRate `json:"rates"`
}

// RatesFor returns the reference rates of a scheme
func RatesFor(scheme domain.Scheme) any {
	switch scheme {
	case domain.SchemeMonthly:
		var tables []domain.RateTable
		for _, cat := range []domain.MonthlyCategory{domain.CategoryA, domain.CategoryB, domain.CategoryC} {
			if t, ok := calculation.TERTable(cat); ok {
				tables = append(tables, t)
			}
		}
		return MonthlyRates{
			Metadata:  calculation.Metadata,
			Tables:    tables,
			Anomalies: calculation.ValidateAllTables(),
		}
	case domain.SchemeAnnual:
		return AnnualRates{
			Metadata:                     calculation.Metadata,
			Layers:                       calculation.ProgressiveLayers(),
			OccupationalDeductionRate:    calculation.OccupationalDeductionRate,
			OccupationalCeilingPermanent: calculation.OccupationalCeilingPermanent,
			OccupationalCeilingPensioner: calculation.OccupationalCeilingPensioner,
		}
	case domain.SchemeUnifiedLevy:
		return FlatRates{Scheme: scheme, Rates: []domain.FlatRate{{
			Type:        string(domain.BusinessUMKM),
			Description: "Net income up to 500,000,000",
			Percent:     calculation.UnifiedLevyPercent,
		}}}
	default:
		return FlatRates{Scheme: scheme, Rates: calculation.RateTypes(scheme)}
	}
}

func (s *Server) handleRates(ctx *fasthttp.RequestCtx, requestID, name string) {
	scheme, err := config.ParseScheme(name)
	if err != nil {
		writeError(ctx, fasthttp.StatusNotFound, "unknown_scheme", err.Error(), "", requestID)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, RatesFor(scheme))
}
