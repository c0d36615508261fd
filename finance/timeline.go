package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// RENT TIMELINE BUILDER
// =============================================================================

// buildRentTimeline turns the base rent plus the applied rent-change
// modifications (already ordered by effective date) into contiguous
// segments. Segment 0 runs from the contract start at the pre-modification
// rent; each rent change opens a new segment at its new annual rent. The
// last segment is open-ended.
//
// The pre-modification rent is recovered from the earliest change's
// OldAnnualRent when any rent change exists: the contract's stored
// AnnualRent may already reflect the latest change, so the stored field is
// only trusted when no changes were ever applied.
func buildRentTimeline(c *rent.Contract, rentChanges []rent.Modification, periodMonths int) []RentSegment {
	baseAnnual := c.AnnualRent
	if len(rentChanges) > 0 {
		if rc, ok := rentChanges[0].Detail.(rent.RentChange); ok {
			baseAnnual = rc.OldAnnualRent
		}
	}

	first := RentSegment{
		FromDate:   c.StartDate,
		AnnualRent: baseAnnual,
		PeriodRent: periodRent(baseAnnual, periodMonths),
		Source:     "base",
	}
	if len(rentChanges) > 0 {
		first.ToDate = rentChanges[0].EffectiveDate
	}
	timeline := []RentSegment{first}

	for i, mod := range rentChanges {
		rc, ok := mod.Detail.(rent.RentChange)
		if !ok {
			continue
		}
		seg := RentSegment{
			FromDate:   mod.EffectiveDate,
			AnnualRent: rc.NewAnnualRent,
			PeriodRent: periodRent(rc.NewAnnualRent, periodMonths),
			Source:     fmt.Sprintf("mod_%s", mod.ID),
		}
		if i+1 < len(rentChanges) {
			seg.ToDate = rentChanges[i+1].EffectiveDate
		}
		timeline = append(timeline, seg)
	}

	return timeline
}

// applicableSegment finds the segment in effect on a due date. When more
// than one segment matches (a malformed timeline), the last match wins, so
// later-starting segments take precedence.
func applicableSegment(timeline []RentSegment, dueDate rent.Date) RentSegment {
	applicable := timeline[0]
	for _, seg := range timeline {
		if seg.covers(dueDate) {
			applicable = seg
		}
	}
	return applicable
}

// appliedRentChanges filters a contract's modifications down to the
// applied rent changes, preserving effective-date order.
func appliedRentChanges(mods []rent.Modification) []rent.Modification {
	var out []rent.Modification
	for _, m := range mods {
		if m.IsApplied && m.Type().IsRentChange() {
			out = append(out, m)
		}
	}
	return out
}

// appliedOfType filters applied modifications of one type, preserving
// effective-date order.
func appliedOfType(mods []rent.Modification, typ rent.ModificationType) []rent.Modification {
	var out []rent.Modification
	for _, m := range mods {
		if m.IsApplied && m.Type() == typ {
			out = append(out, m)
		}
	}
	return out
}

// sumPostedPayments totals the receipts that fund distribution: posted and
// not soft-deleted. Payment order is irrelevant; only the pool matters.
func sumPostedPayments(receipts []rent.Receipt) decimal.Decimal {
	total := decimal.Zero
	for _, r := range receipts {
		if r.CountsAsPayment() {
			total = total.Add(r.Amount)
		}
	}
	return total
}
