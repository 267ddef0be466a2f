package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

var (
	// ErrUnsupportedFormat is returned for a format name no formatter answers to.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrEmptyOutcome is returned when neither result shape is present.
	ErrEmptyOutcome = errors.New("calculation outcome is empty")
)

func checkOutcome(outcome *domain.Outcome) error {
	if outcome == nil || (outcome.Single == nil && outcome.Multi == nil) {
		return ErrEmptyOutcome
	}
	return nil
}

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// Render formats the outcome with the named formatter and writes it to w.
func Render(w io.Writer, outcome *domain.Outcome, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupported(format)
	}
	data, err := f.Format(outcome)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes the outcome to a timestamped file in dir. The format "all"
// writes the styled console, detailed CSV and JSON reports.
func GenerateReport(outcome *domain.Outcome, format, dir string) ([]string, error) {
	names := []string{format}
	if NormalizeFormatName(format) == "all" {
		names = []string{"console", "detailed-csv", "json"}
	}
	files := make([]string, 0, len(names))
	for _, name := range names {
		f := GetFormatterByName(name)
		if f == nil {
			return files, unsupported(name)
		}
		file, err := WriteFormatted(f, outcome, dir, FileExtension(f.Name()))
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}
