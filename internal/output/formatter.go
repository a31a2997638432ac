package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/pphgo/internal/domain"
)

// Formatter renders batch results into bytes
type Formatter interface {
	Name() string
	Format(results *domain.BatchResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(results *domain.BatchResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results *domain.BatchResult) ([]byte, error) {
	return f.F(results)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{Indent: true},
	"csv":     CSVFormatter{},
	"html":    HTMLFormatter{},
	"pdf":     PDFFormatter{},
}

var formatAliases = map[string]string{
	"text":  "console",
	"table": "console",
	"excel": "csv",
}

var formatExtensions = map[string]string{
	"console": "txt",
	"json":    "json",
	"csv":     "csv",
	"html":    "html",
	"pdf":     "pdf",
}

// GetFormatterByName returns the formatter registered under name or alias, or nil
func GetFormatterByName(name string) Formatter {
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for a := range formatAliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	return aliases
}

// ExtensionFor returns the file extension used when writing a formatter's output
func ExtensionFor(f Formatter) string {
	if ext, ok := formatExtensions[f.Name()]; ok {
		return ext
	}
	return "txt"
}

// WriteFormatted writes formatted results to a timestamped file in the working directory
func WriteFormatted(f Formatter, results *domain.BatchResult, ext string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("pph_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, nil
}
