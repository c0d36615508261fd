package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// STATEMENT GENERATOR
// =============================================================================

// Same-day entries order periods before modifications before payments, so
// a payment made on a due date settles the charge raised that day.
const (
	priorityPeriod       = 1
	priorityModification = 2
	priorityPayment      = 3
)

// timelineEntry is one event before rendering: a period charge, a
// modification, or a receipt.
type timelineEntry struct {
	date     rent.Date
	priority int

	period  *Period
	mod     *rent.Modification
	receipt *rent.Receipt
}

// buildStatement merges periods, applied modifications and statement
// receipts into a chronological ledger with a running balance.
func buildStatement(c *rent.Contract, periods []Period, mods []rent.Modification, receipts []rent.Receipt, endDate rent.Date) *Statement {
	entries := buildTimeline(periods, mods, receipts, endDate)
	lines := renderLines(entries)

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	counts := map[LineType]int{}
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
		counts[l.Type]++
	}
	finalBalance := totalDebit.Sub(totalCredit)

	return &Statement{
		Lines: lines,
		Summary: StatementSummary{
			ContractNumber:     c.ContractNumber,
			TenantName:         c.TenantName,
			StartDate:          c.StartDate,
			EndDate:            c.EndDate,
			ActualEndDate:      c.ActualEndDate,
			StatementEndDate:   endDate,
			TotalDebit:         totalDebit,
			TotalCredit:        totalCredit,
			FinalBalance:       finalBalance,
			IsOverdue:          finalBalance.IsPositive(),
			IsOverpaid:         finalBalance.IsNegative(),
			IsSettled:          finalBalance.IsZero(),
			TotalPeriods:       counts[LinePeriod],
			TotalPayments:      counts[LinePayment],
			TotalModifications: counts[LineModification],
		},
		Periods: periods,
	}
}

func buildTimeline(periods []Period, mods []rent.Modification, receipts []rent.Receipt, endDate rent.Date) []timelineEntry {
	var entries []timelineEntry

	for i := range periods {
		entries = append(entries, timelineEntry{
			date:     periods[i].StartDate,
			priority: priorityPeriod,
			period:   &periods[i],
		})
	}

	for i := range mods {
		m := &mods[i]
		if !m.IsApplied || m.EffectiveDate.After(endDate) {
			continue
		}
		entries = append(entries, timelineEntry{
			date:     m.EffectiveDate,
			priority: priorityModification,
			mod:      m,
		})
	}

	for i := range receipts {
		r := &receipts[i]
		if !r.AppearsOnStatement() || r.Date.After(endDate) {
			continue
		}
		entries = append(entries, timelineEntry{
			date:     r.Date,
			priority: priorityPayment,
			receipt:  r,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].date.Equal(entries[j].date) {
			return entries[i].priority < entries[j].priority
		}
		return entries[i].date.Before(entries[j].date)
	})
	return entries
}

func renderLines(entries []timelineEntry) []StatementLine {
	var lines []StatementLine
	balance := decimal.Zero
	seenMods := make(map[string]bool)

	for _, e := range entries {
		switch {
		case e.period != nil:
			balance = balance.Add(e.period.DueAmount)
			lines = append(lines, StatementLine{
				Date:         e.date,
				Type:         LinePeriod,
				Description:  e.period.Description,
				Debit:        e.period.DueAmount,
				Credit:       decimal.Zero,
				Balance:      balance,
				PeriodNumber: e.period.Number,
			})

		case e.mod != nil:
			line, newBalance, ok := renderModification(e, balance, seenMods)
			if ok {
				balance = newBalance
				lines = append(lines, line)
			}

		case e.receipt != nil:
			balance = balance.Sub(e.receipt.Amount)
			lines = append(lines, StatementLine{
				Date:        e.date,
				Type:        LinePayment,
				Description: "Payment (" + e.receipt.Method.Display() + ")",
				Debit:       decimal.Zero,
				Credit:      e.receipt.Amount,
				Balance:     balance,
				Reference:   e.receipt.ReceiptNumber,
			})
		}
	}

	return lines
}

// renderModification emits at most one line per modification ID. Discounts
// credit the balance, VAT debits it; rent changes, extensions and
// terminations appear as zero-amount markers.
func renderModification(e timelineEntry, balance decimal.Decimal, seen map[string]bool) (StatementLine, decimal.Decimal, bool) {
	m := e.mod
	ref := "MOD-" + m.ID
	if seen[ref] {
		return StatementLine{}, balance, false
	}

	debit := decimal.Zero
	credit := decimal.Zero

	switch detail := m.Detail.(type) {
	case rent.Discount:
		credit = detail.Amount
		balance = balance.Sub(credit)
	case rent.VAT:
		debit = detail.Amount
		balance = balance.Add(debit)
	case rent.RentChange, rent.Extension, rent.Termination:
		// zero-amount marker
	default:
		return StatementLine{}, balance, false
	}

	seen[ref] = true
	return StatementLine{
		Date:        e.date,
		Type:        LineModification,
		Description: m.Detail.Summary(),
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
		Reference:   ref,
	}, balance, true
}
