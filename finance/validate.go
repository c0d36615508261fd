package finance

import (
	"fmt"
	"strings"

	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// MODIFICATION VALIDATOR
// =============================================================================

// ValidationInput describes a proposed modification. PeriodNumber is only
// meaningful for discount/VAT (zero = not targeted).
type ValidationInput struct {
	Type          rent.ModificationType
	EffectiveDate rent.Date
	PeriodNumber  int
}

// validateModification runs the constraint chain, short-circuiting on the
// first failure. It returns (true, "") on success and (false, message)
// otherwise; the message is meant to surface as a user-facing form error,
// so validation failures are values, never errors.
func validateModification(c *rent.Contract, existing []rent.Modification, periodCount int, in ValidationInput) (bool, string) {
	checks := []func() (bool, string){
		func() (bool, string) { return checkDateWithinContract(c, in) },
		func() (bool, string) { return checkRentChangeOnDueDate(c, in) },
		func() (bool, string) { return checkNoRentChangeOverlap(existing, in) },
		func() (bool, string) { return checkPeriodNumber(periodCount, in) },
	}

	for _, check := range checks {
		if ok, msg := check(); !ok {
			return false, msg
		}
	}
	return true, ""
}

func checkDateWithinContract(c *rent.Contract, in ValidationInput) (bool, string) {
	if in.EffectiveDate.Before(c.StartDate) || in.EffectiveDate.After(c.EndDate) {
		return false, "effective date must fall within the contract term"
	}
	return true, ""
}

func checkRentChangeOnDueDate(c *rent.Contract, in ValidationInput) (bool, string) {
	if !in.Type.IsRentChange() {
		return true, ""
	}
	dueDates := DueDates(c)
	if dueDateIndex(dueDates, in.EffectiveDate) >= 0 {
		return true, ""
	}
	return false, "effective date must be one of the contract due dates: " + formatDueDates(dueDates, 5)
}

func checkNoRentChangeOverlap(existing []rent.Modification, in ValidationInput) (bool, string) {
	if !in.Type.IsRentChange() {
		return true, ""
	}
	for _, m := range existing {
		if m.IsApplied && m.Type().IsRentChange() && m.EffectiveDate.Equal(in.EffectiveDate) {
			return false, fmt.Sprintf(
				"another rent change (%s) already applies on %s; only one rent change per effective date is allowed",
				m.Type(), m.EffectiveDate)
		}
	}
	return true, ""
}

func checkPeriodNumber(periodCount int, in ValidationInput) (bool, string) {
	if in.Type != rent.ModDiscount && in.Type != rent.ModVAT {
		return true, ""
	}
	if in.PeriodNumber == 0 {
		return true, ""
	}
	if in.PeriodNumber < 1 || in.PeriodNumber > periodCount {
		return false, fmt.Sprintf("invalid period number: the contract has only %d periods", periodCount)
	}
	return true, ""
}

// formatDueDates renders the first maxShown due dates for error messages.
func formatDueDates(dueDates []rent.Date, maxShown int) string {
	if len(dueDates) == 0 {
		return "(none)"
	}
	shown := dueDates
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	parts := make([]string, len(shown))
	for i, d := range shown {
		parts[i] = d.String()
	}
	s := strings.Join(parts, ", ")
	if remaining := len(dueDates) - maxShown; remaining > 0 {
		s += fmt.Sprintf(" (and %d more)", remaining)
	}
	return s
}
