// Package ruletable provides the per-year statutory rule tables used by the calculation engine.
package ruletable

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ilsalary/net-salary-calculator/internal/config"
	"github.com/ilsalary/net-salary-calculator/internal/domain"
)

//go:embed tables/*.yaml
var embedded embed.FS

// ErrUnknownTaxYear is returned when no table exists for the requested year.
var ErrUnknownTaxYear = errors.New("unknown tax year")

// Registry maps tax years to immutable rule tables.
type Registry struct {
	tables map[int]*domain.RuleTable
}

// NewRegistry builds a registry from already validated tables. Later tables replace earlier ones for the same year.
func NewRegistry(tables ...*domain.RuleTable) *Registry {
	r := &Registry{tables: make(map[int]*domain.RuleTable, len(tables))}
	for _, t := range tables {
		if t != nil {
			r.tables[t.TaxYear] = t
		}
	}
	return r
}

// Default returns the registry of rule tables compiled into the binary.
func Default() (*Registry, error) {
	entries, err := embedded.ReadDir("tables")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded tables: %w", err)
	}
	r := NewRegistry()
	for _, entry := range entries {
		name := path.Join("tables", entry.Name())
		data, err := embedded.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded table %s: %w", name, err)
		}
		table, err := config.ParseRuleTable(data, "yaml")
		if err != nil {
			return nil, fmt.Errorf("embedded table %s: %w", name, err)
		}
		r.tables[table.TaxYear] = table
	}
	return r, nil
}

// LoadDir loads the embedded defaults and overrides them with every *.yaml, *.yml and *.json file in dir.
// An empty dir returns the defaults.
func LoadDir(dir string) (*Registry, error) {
	r, err := Default()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return r, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isRuleFile(entry.Name()) {
			continue
		}
		table, err := config.LoadRuleTable(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		r.tables[table.TaxYear] = table
	}
	return r, nil
}

// Get returns the table for a tax year.
func (r *Registry) Get(year int) (*domain.RuleTable, error) {
	if table, ok := r.tables[year]; ok {
		return table, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownTaxYear, year)
}

// Resolve returns the table for year, or the latest table when year is zero.
func (r *Registry) Resolve(year int) (*domain.RuleTable, error) {
	if year == 0 {
		if latest := r.Latest(); latest != nil {
			return latest, nil
		}
		return nil, fmt.Errorf("%w: no rule tables loaded", ErrUnknownTaxYear)
	}
	return r.Get(year)
}

// Latest returns the table with the highest tax year, or nil when empty.
func (r *Registry) Latest() *domain.RuleTable {
	years := r.Years()
	if len(years) == 0 {
		return nil
	}
	return r.tables[years[len(years)-1]]
}

// Years lists the available tax years in ascending order.
func (r *Registry) Years() []int {
	years := make([]int, 0, len(r.tables))
	for year := range r.tables {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func isRuleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
