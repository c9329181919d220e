package ledgercore

import "time"

// InterimType selects how an accounting period is subdivided.
type InterimType string

const (
	InterimCalendarMonth   InterimType = "CalendarMonth"
	InterimFourWeek        InterimType = "FourWeek"
	InterimFourFourFiveWeek InterimType = "FourFourFiveWeek"
)

// AccountingPeriod spans one fiscal year, uniquely identified by
// FiscalYear. PeriodEnd is always PeriodStart + 1 year - 1 day.
type AccountingPeriod struct {
	ID          ID
	FiscalYear  int
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodType  InterimType
}

// InterimPeriod is one sub-period (e.g. calendar month) within an
// AccountingPeriod.
type InterimPeriod struct {
	ID       ID
	PeriodID ID
	Start    time.Time
	End      time.Time
}

// NewAccountingPeriod builds a period header with PeriodEnd derived from
// PeriodStart (period_start + 1 year - 1 day).
func NewAccountingPeriod(fiscalYear int, start time.Time, periodType InterimType) AccountingPeriod {
	end := start.AddDate(1, 0, -1)
	return AccountingPeriod{
		ID:          NewID(),
		FiscalYear:  fiscalYear,
		PeriodStart: start,
		PeriodEnd:   end,
		PeriodType:  periodType,
	}
}

// GenerateInterimPeriods produces the interim periods for an
// AccountingPeriod. Only InterimCalendarMonth is implemented; the
// 4-week and 4-4-5-week algorithms are left as NotImplemented rather
// than guessed.
func GenerateInterimPeriods(p AccountingPeriod) ([]InterimPeriod, error) {
	switch p.PeriodType {
	case InterimCalendarMonth:
		return generateCalendarMonthInterims(p)
	case InterimFourWeek, InterimFourFourFiveWeek:
		return nil, NewNotImplementedErrorf("interim period type %s is not implemented", p.PeriodType)
	default:
		return nil, NewValidationErrorf("unknown interim period type %q", p.PeriodType)
	}
}

func generateCalendarMonthInterims(p AccountingPeriod) ([]InterimPeriod, error) {
	periods := make([]InterimPeriod, 0, 12)
	start := p.PeriodStart
	for i := 0; i < 12; i++ {
		lastDay := daysInMonth(start.Year(), start.Month())
		end := time.Date(start.Year(), start.Month(), lastDay, 0, 0, 0, 0, start.Location())
		periods = append(periods, InterimPeriod{
			ID:       NewID(),
			PeriodID: p.ID,
			Start:    start,
			End:      end,
		})
		start = start.AddDate(0, 1, 0)
	}
	return periods, nil
}

func daysInMonth(year int, month time.Month) int {
	firstOfThisMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstOfNextMonth := firstOfThisMonth.AddDate(0, 1, 0)
	return int(firstOfNextMonth.Sub(firstOfThisMonth).Hours() / 24)
}
