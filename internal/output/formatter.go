package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(outcome *domain.Outcome) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.Outcome) ([]byte, error)
}

func (ff FormatterFunc) Format(o *domain.Outcome) ([]byte, error) { return ff.F(o) }
func (ff FormatterFunc) Name() string                             { return ff.ID }

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, outcome *domain.Outcome, dir, ext string) (string, error) {
	data, err := f.Format(outcome)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("net_salary_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if dir != "" {
		filename = dir + string(os.PathSeparator) + filename
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", filename, err)
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	HTMLFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":         "console",
	"pretty":       "console",
	"lite":         "console-lite",
	"plain":        "console-lite",
	"csv-detailed": "detailed-csv",
	"csv-summary":  "csv",
	"html-report":  "html",
	"json-pretty":  "json",
	"yml":          "yaml",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileExtension maps a formatter name to the extension used when writing it to disk.
func FileExtension(name string) string {
	switch n := NormalizeFormatName(name); n {
	case "console", "console-lite":
		return "txt"
	case "detailed-csv":
		return "csv"
	default:
		return n
	}
}
