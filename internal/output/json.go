package output

import (
	json "github.com/goccy/go-json"

	"github.com/rgehrsitz/pphgo/internal/domain"
)

// JSONFormatter emits the batch result as JSON. Amounts are decimal strings.
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	if j.Indent {
		return json.MarshalIndent(results, "", "  ")
	}
	return json.Marshal(results)
}
