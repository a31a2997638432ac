package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/samber/lo"
)

// ParseMethod accepts "gross" or "gross-up" (also "grossup", "gross_up"). Empty means gross.
func ParseMethod(s string) (domain.Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gross":
		return domain.MethodGross, nil
	case "gross-up", "grossup", "gross_up":
		return domain.MethodGrossUp, nil
	default:
		return "", fmt.Errorf("unknown method %q (want gross or gross-up)", s)
	}
}

// ParseEmploymentStatus accepts "permanent" or "pensioner" and the Indonesian labels
// "tetap", "pegawai tetap" and "pensiunan". Empty means permanent.
func ParseEmploymentStatus(s string) (domain.EmploymentStatus, error) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "", "permanent", "tetap", "pegawai tetap", "pegawai_tetap":
		return domain.PermanentEmployee, nil
	case "pensioner", "pensiunan":
		return domain.Pensioner, nil
	default:
		return "", fmt.Errorf("unknown employment status %q (want permanent or pensioner)", s)
	}
}

// ParseScheme resolves a scheme name, including the tax names pph21, pph22 and so on
func ParseScheme(s string) (domain.Scheme, error) {
	aliases := map[string]domain.Scheme{
		"pph21":         domain.SchemeMonthly,
		"ter":           domain.SchemeMonthly,
		"pph21-annual":  domain.SchemeAnnual,
		"pph22":         domain.SchemeGoods,
		"pph23":         domain.SchemeWithholding,
		"pph4(2)":       domain.SchemeFinal,
		"pph42":         domain.SchemeFinal,
		"ppn":           domain.SchemeVAT,
		"umkm":          domain.SchemeUnifiedLevy,
		"pph-unifikasi": domain.SchemeUnifiedLevy,
	}
	name := strings.ToLower(strings.TrimSpace(s))
	if lo.Contains(domain.AllSchemes, domain.Scheme(name)) {
		return domain.Scheme(name), nil
	}
	if scheme, ok := aliases[name]; ok {
		return scheme, nil
	}
	return "", fmt.Errorf("unknown scheme %q (want one of %s)", s, strings.Join(SchemeNames(), ", "))
}

// SchemeNames lists the canonical scheme names
func SchemeNames() []string {
	return lo.Map(domain.AllSchemes, func(s domain.Scheme, _ int) string { return string(s) })
}

// ParseBusinessType accepts "umkm" or "other". Empty means other.
func ParseBusinessType(s string) (domain.BusinessType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "umkm":
		return domain.BusinessUMKM, nil
	case "", "other":
		return domain.BusinessOther, nil
	default:
		return "", fmt.Errorf("unknown business type %q (want umkm or other)", s)
	}
}

// ParseLogLevel maps a level name to slog. Unknown names fall back to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
