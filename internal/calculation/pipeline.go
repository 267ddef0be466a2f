package calculation

import (
	"time"

	"github.com/ilsalary/net-salary-calculator/internal/domain"
	money "github.com/ilsalary/net-salary-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// pipeline carries one calculation call's read-only context.
type pipeline struct {
	in     *domain.CalculationInput
	rules  *domain.RuleTable
	asOf   time.Time
	logger Logger
}

// taxOptions selects which post-base steps apply to one income source.
type taxOptions struct {
	applyDisability bool
	applyDonation   bool
	creditAllowance decimal.Decimal // currency value of credit points this source may use
	localityIncome  decimal.Decimal // income tested against the locality cap
}

// taxOutcome is the income tax computed for one source.
type taxOutcome struct {
	taxableBase     decimal.Decimal
	exemption       decimal.Decimal
	taxBefore       decimal.Decimal
	creditUsed      decimal.Decimal
	taxAfterCredits decimal.Decimal
	donationCredit  decimal.Decimal
	locality        domain.LocalityResult
	finalTax        decimal.Decimal
}

// runStrategy produces the pre-tax figures for a source.
func (p *pipeline) runStrategy(s incomeStrategy) (sourceFigures, error) {
	f, err := s.computeBase(p.in, p.rules)
	if err != nil {
		return sourceFigures{}, err
	}
	s.computePension(&f, p.in, p.rules)
	s.computeInsurance(&f, p.in, p.rules)
	p.logger.Debugf("income=%s taxable_gross=%s insurance=%s pension=%s study_fund=%s",
		f.income.StringFixed(2), f.taxableGross.StringFixed(2), f.insurance.StringFixed(2),
		f.pension.Employee.StringFixed(2), f.studyFund.StringFixed(2))
	return f, nil
}

// taxSource runs exemption, brackets, credits, donation and locality in that order.
func (p *pipeline) taxSource(base decimal.Decimal, opts taxOptions) taxOutcome {
	out := taxOutcome{taxableBase: money.NonNegative(base)}

	if opts.applyDisability {
		ex := CalculateDisabilityExemption(out.taxableBase, p.in.HasDisabilityExemption, p.rules.DisabilityExemption)
		out.exemption = ex.Exempted
		out.taxableBase = ex.ResidualBase
	}

	out.taxBefore = CalculateBracketTax(out.taxableBase, p.rules.IncomeTaxBrackets)
	out.creditUsed = decimal.Min(money.NonNegative(opts.creditAllowance), out.taxBefore)
	out.taxAfterCredits = out.taxBefore.Sub(out.creditUsed)

	tax := out.taxAfterCredits
	if opts.applyDonation {
		out.donationCredit = CalculateDonationCredit(p.in.DonationAmount, p.rules.Donations)
		tax = money.NonNegative(tax.Sub(out.donationCredit))
	}

	out.locality = CalculateLocalityDiscount(p.in.Locality, tax, opts.localityIncome, p.rules.LocalityDiscounts, p.asOf)
	if out.locality.Warning != "" {
		p.logger.Warnf("locality %q: %s", p.in.Locality, out.locality.Warning)
	}
	out.finalTax = money.NonNegative(tax.Sub(out.locality.Discount))

	p.logger.Debugf("base=%s exempt=%s tax=%s credits=%s donation=%s locality=%s final=%s",
		out.taxableBase.StringFixed(2), out.exemption.StringFixed(2), out.taxBefore.StringFixed(2),
		out.creditUsed.StringFixed(2), out.donationCredit.StringFixed(2),
		out.locality.Discount.StringFixed(2), out.finalTax.StringFixed(2))
	return out
}
