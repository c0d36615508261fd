package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rent-engine/finance"
	"github.com/warp/rent-engine/rent"
)

// =============================================================================
// DUE-DATE SCHEDULE TESTS
// =============================================================================
// Helpers (date, money, testContract) live in service_test.go.

func TestDueDatesStartAtContractStart(t *testing.T) {
	c := testContract("120000", rent.FrequencyQuarterly,
		date(2024, time.January, 15), date(2024, time.December, 31))

	dues := finance.DueDates(c)

	require.NotEmpty(t, dues)
	assert.Equal(t, date(2024, time.January, 15), dues[0])
}

func TestDueDatesPerFrequency(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2024, time.December, 31)

	tests := []struct {
		freq  rent.PaymentFrequency
		count int
	}{
		{rent.FrequencyMonthly, 12},
		{rent.FrequencyQuarterly, 4},
		{rent.FrequencySemiAnnual, 2},
		{rent.FrequencyAnnual, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			c := testContract("120000", tt.freq, start, end)
			assert.Len(t, finance.DueDates(c), tt.count)
		})
	}
}

func TestDueDatesNeverPassContractEnd(t *testing.T) {
	// GIVEN: A 14-month semi-annual contract
	c := testContract("120000", rent.FrequencySemiAnnual,
		date(2024, time.January, 1), date(2025, time.February, 28))

	// WHEN: Generating the schedule
	dues := finance.DueDates(c)

	// THEN: 2025-01-01 is in range; the next candidate (2025-07-01) is not
	require.Len(t, dues, 3)
	assert.Equal(t, date(2025, time.January, 1), dues[2])
	for _, d := range dues {
		assert.True(t, d.BeforeOrEqual(c.EndDate))
	}
}

func TestDueDatesUseCalendarMonthArithmetic(t *testing.T) {
	// GIVEN: A monthly contract starting on the 31st
	c := testContract("120000", rent.FrequencyMonthly,
		date(2024, time.January, 31), date(2024, time.June, 30))

	dues := finance.DueDates(c)

	// THEN: Jan 31 + 1 month normalizes to Mar 2 (2024 is a leap year)
	require.GreaterOrEqual(t, len(dues), 2)
	assert.Equal(t, date(2024, time.March, 2), dues[1])
}

func TestDueDatesEmptyForMissingDates(t *testing.T) {
	assert.Nil(t, finance.DueDates(nil))
	assert.Nil(t, finance.DueDates(&rent.Contract{ID: "x"}))

	noEnd := testContract("120000", rent.FrequencyMonthly, date(2024, time.January, 1), rent.Date{})
	assert.Nil(t, finance.DueDates(noEnd))
}

func TestDueDatesEmptyWhenStartAfterEnd(t *testing.T) {
	c := testContract("120000", rent.FrequencyMonthly,
		date(2025, time.January, 1), date(2024, time.January, 1))
	assert.Nil(t, finance.DueDates(c))
}

func TestDueDatesCappedForAbsurdRanges(t *testing.T) {
	// GIVEN: A monthly contract spanning two centuries
	c := testContract("120000", rent.FrequencyMonthly,
		date(2024, time.January, 1), date(2224, time.January, 1))

	dues := finance.DueDates(c)

	assert.Len(t, dues, finance.MaxPeriods)
}
