package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/pphgo/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Metadata  domain.RegulatoryMetadata
		Sections  []Section
		Failed    int
		Generated string
	}{
		Metadata:  results.Metadata,
		Sections:  DescribeAll(results),
		Failed:    results.FailedCount(),
		Generated: time.Now().Format("2 January 2006 15:04"),
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
