package finance

import (
	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// MODIFICATION ADJUSTMENT MAP
// =============================================================================
//
// VAT and discount modifications attach to exactly one due date each. A
// payload carrying a valid PeriodNumber targets that period directly;
// otherwise the modification lands on the first due date on or after its
// effective date. The two scans are independent: VAT amounts and discount
// amounts accumulate into the same per-date record, and total is
// vat - discount.
//
// Attaching a "continuously effective" VAT to a single period is the
// documented behavior of this system; a per-period VAT would need a
// product decision first.

// buildAdjustmentMap builds the per-due-date adjustment records for a
// contract's applied VAT and discount modifications.
func buildAdjustmentMap(c *rent.Contract, mods []rent.Modification) map[rent.Date]Adjustment {
	dueDates := DueDates(c)
	if len(dueDates) == 0 {
		return nil
	}

	adjustments := make(map[rent.Date]Adjustment, len(dueDates))
	for _, d := range dueDates {
		adjustments[d] = zeroAdjustment()
	}

	for _, mod := range appliedOfType(mods, rent.ModVAT) {
		vat, ok := mod.Detail.(rent.VAT)
		if !ok {
			continue
		}
		target, ok := targetDueDate(dueDates, vat.PeriodNumber, mod.EffectiveDate)
		if !ok {
			continue
		}
		adj := adjustments[target]
		adj.VATAmount = vat.Amount
		adjustments[target] = adj
	}

	for _, mod := range appliedOfType(mods, rent.ModDiscount) {
		discount, ok := mod.Detail.(rent.Discount)
		if !ok {
			continue
		}
		target, ok := targetDueDate(dueDates, discount.PeriodNumber, mod.EffectiveDate)
		if !ok {
			continue
		}
		adj := adjustments[target]
		adj.DiscountAmount = adj.DiscountAmount.Add(discount.Amount)
		adjustments[target] = adj
	}

	for d, adj := range adjustments {
		adj.Total = adj.VATAmount.Sub(adj.DiscountAmount)
		adj.HasModifications = adj.VATAmount.IsPositive() || adj.DiscountAmount.IsPositive()
		adjustments[d] = adj
	}

	return adjustments
}

// targetDueDate resolves where a VAT/discount attaches: the numbered
// period when the number is within range, else the first due date on or
// after the effective date. Returns false when nothing qualifies.
func targetDueDate(dueDates []rent.Date, periodNumber int, effective rent.Date) (rent.Date, bool) {
	if periodNumber >= 1 && periodNumber <= len(dueDates) {
		return dueDates[periodNumber-1], true
	}
	for _, d := range dueDates {
		if d.AfterOrEqual(effective) {
			return d, true
		}
	}
	return rent.Date{}, false
}

// adjustmentFor looks up the record for a period's start date, returning a
// zero record when none exists.
func adjustmentFor(adjustments map[rent.Date]Adjustment, startDate rent.Date) Adjustment {
	if adj, ok := adjustments[startDate]; ok {
		return adj
	}
	return zeroAdjustment()
}
