package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

const (
	localityNotFound   = "Locality not found"
	localityCapWarning = "Gross salary exceeds locality discount income cap"
)

// FindLocality matches a code or any localized name, ignoring case and surrounding space.
func FindLocality(localities []domain.LocalityDiscount, query string) (domain.LocalityDiscount, bool) {
	q := strings.TrimSpace(query)
	for _, loc := range localities {
		for _, candidate := range []string{loc.Code, loc.Name, loc.NameHe, loc.NameRu} {
			if candidate != "" && strings.EqualFold(strings.TrimSpace(candidate), q) {
				return loc, true
			}
		}
	}
	return domain.LocalityDiscount{}, false
}

// CalculateLocalityDiscount applies a residence discount to income tax already reduced
// by credits and donations. Problems are reported as warnings, never errors.
func CalculateLocalityDiscount(locality string, incomeTax, gross decimal.Decimal, localities []domain.LocalityDiscount, asOf time.Time) domain.LocalityResult {
	name := strings.TrimSpace(locality)
	if name == "" || strings.EqualFold(name, "none") {
		return domain.LocalityResult{Discount: decimal.Zero, IsValid: true, DiscountPercent: decimal.Zero}
	}

	loc, ok := FindLocality(localities, name)
	if !ok {
		return domain.LocalityResult{Discount: decimal.Zero, IsValid: false, Warning: localityNotFound, DiscountPercent: decimal.Zero}
	}

	result := domain.LocalityResult{
		Discount:        decimal.Zero,
		DiscountPercent: money.ToPercent(loc.DiscountPercent),
		LocalityName:    loc.Name,
	}
	if loc.ValidFrom.IsSet() && asOf.Before(loc.ValidFrom.Time) {
		result.Warning = fmt.Sprintf("Locality discount not yet valid (starts %s)", loc.ValidFrom)
		return result
	}
	if loc.ValidTo.IsSet() && asOf.After(loc.ValidTo.Time) {
		result.Warning = fmt.Sprintf("Locality discount expired (ended %s)", loc.ValidTo)
		return result
	}

	result.IsValid = true
	if loc.MaxIncome.IsPositive() && gross.GreaterThan(loc.MaxIncome) {
		result.Warning = localityCapWarning
		return result
	}
	result.Discount = money.NonNegative(incomeTax).Mul(loc.DiscountPercent)
	return result
}
