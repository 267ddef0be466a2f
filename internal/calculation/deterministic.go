package calculation

import (
	"time"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/ilsalary/net-salary-calculator/pkg/dateutil"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// resolveAsOf picks the evaluation date: the input's as_of when present, otherwise today.
func resolveAsOf(in *domain.CalculationInput) time.Time {
	if in.AsOf.IsSet() {
		return in.AsOf.Time
	}
	return dateutil.DateOnly(nowFunc())
}
