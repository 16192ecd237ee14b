// Package schedule expands recurring schedule patterns into concrete slot
// lists. Generation is pure apart from reading the clock for date validity:
// the slots come back to the caller, which merges them into a doctor's
// collection through the clinic service.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
	"github.com/clinicdesk/clinic-scheduling/internal/uid"
)

type Mode string

const (
	ModeDaily   Mode = "daily"
	ModeWeekly  Mode = "weekly"
	ModeMonthly Mode = "monthly"
)

// MinIncrement is the smallest slot width in minutes.
const MinIncrement = 5

var (
	ErrUnknownMode       = errors.New("unknown schedule mode")
	ErrInvalidWindow     = errors.New("time window is invalid")
	ErrIncrementTooSmall = fmt.Errorf("increment must be at least %d minutes", MinIncrement)
	ErrPastDate          = errors.New("date is in the past")
	ErrWeekOffset        = errors.New("week offset must not be negative")
	ErrNoDates           = errors.New("no valid dates resolved")
)

// Request describes one expansion of a schedule pattern. From/To are
// wall-clock times of day ("HH:MM"); the window is [From, To). Increment is
// the slot width in minutes. The mode decides which date selector applies:
//
//   - daily: Date ("YYYY-MM-DD"), today or later
//   - weekly: WeekOffset (0 = current week) plus WeekDays (0=Sunday..6);
//     resolved dates before today are dropped
//   - monthly: MonthDays (explicit days of the current month), or when
//     empty the inclusive RangeStart..RangeEnd day range; days before today
//     or past the month's end are dropped
type Request struct {
	Mode       Mode   `json:"mode"`
	From       string `json:"fromTime"`
	To         string `json:"toTime"`
	Increment  int    `json:"increment"`
	Date       string `json:"date,omitempty"`
	WeekOffset int    `json:"weekOffset,omitempty"`
	WeekDays   []int  `json:"weekDays,omitempty"`
	MonthDays  []int  `json:"monthDays,omitempty"`
	RangeStart int    `json:"rangeStart,omitempty"`
	RangeEnd   int    `json:"rangeEnd,omitempty"`
}

// Result is the expansion: the new slots plus the resolved calendar dates
// for audit. Slots are emitted date by date and are not re-sorted here;
// time-sorting the collection is the slot store's job on merge.
type Result struct {
	Slots []clinic.Slot `json:"slots"`
	Dates []string      `json:"dates"`
}

type Generator struct {
	now   func() time.Time
	newID func(prefix string) string
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithIDFunc(newID func(prefix string) string) Option {
	return func(g *Generator) { g.newID = newID }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now, newID: uid.New}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate expands the request into available slots for doctorID.
func (g *Generator) Generate(doctorID string, req Request) (*Result, error) {
	fromMin, err := parseClock(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: from %q", ErrInvalidWindow, req.From)
	}
	toMin, err := parseClock(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: to %q", ErrInvalidWindow, req.To)
	}
	if toMin <= fromMin {
		return nil, fmt.Errorf("%w: window [%s, %s) is empty", ErrInvalidWindow, req.From, req.To)
	}
	if req.Increment < MinIncrement {
		return nil, ErrIncrementTooSmall
	}

	now := g.now()
	today := midnight(now)

	dates, err := g.resolveDates(req, now, today)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrNoDates
	}

	res := &Result{Dates: make([]string, 0, len(dates))}
	for _, day := range dates {
		res.Dates = append(res.Dates, day.Format("2006-01-02"))

		// Walk the window in increment steps; a trailing partial step that
		// would cross To is dropped, not truncated.
		for cur := fromMin; cur+req.Increment <= toMin; cur += req.Increment {
			start := day.Add(time.Duration(cur) * time.Minute)
			end := start.Add(time.Duration(req.Increment) * time.Minute)
			res.Slots = append(res.Slots, clinic.Slot{
				ID:       g.newID("slot_"),
				DoctorID: doctorID,
				Start:    start,
				End:      end,
				Status:   clinic.SlotAvailable,
			})
		}
	}

	return res, nil
}

// resolveDates turns the mode-specific selector into deduplicated midnight
// timestamps, all of them today or later.
func (g *Generator) resolveDates(req Request, now, today time.Time) ([]time.Time, error) {
	seen := make(map[string]struct{})
	var dates []time.Time
	add := func(day time.Time) {
		key := day.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		dates = append(dates, day)
	}

	switch req.Mode {
	case ModeDaily:
		day, err := time.ParseInLocation("2006-01-02", req.Date, now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrInvalidWindow, req.Date)
		}
		if day.Before(today) {
			return nil, fmt.Errorf("%w: %s", ErrPastDate, req.Date)
		}
		add(day)

	case ModeWeekly:
		if req.WeekOffset < 0 {
			return nil, ErrWeekOffset
		}
		// Monday of the current week, then the offset weeks forward.
		monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
		monday = monday.AddDate(0, 0, 7*req.WeekOffset)
		for _, dow := range req.WeekDays {
			if dow < 0 || dow > 6 {
				return nil, fmt.Errorf("%w: weekday index %d", ErrInvalidWindow, dow)
			}
			day := monday.AddDate(0, 0, (dow+6)%7)
			if day.Before(today) {
				continue
			}
			add(day)
		}

	case ModeMonthly:
		year, month, _ := today.Date()
		lastDay := daysInMonth(year, month, today.Location())
		todayDay := today.Day()

		days := req.MonthDays
		if len(days) == 0 {
			start := req.RangeStart
			if start < todayDay {
				start = todayDay
			}
			end := req.RangeEnd
			if end > lastDay {
				end = lastDay
			}
			for d := start; d <= end; d++ {
				days = append(days, d)
			}
		}
		for _, d := range days {
			if d < todayDay || d > lastDay {
				continue
			}
			add(time.Date(year, month, d, 0, 0, 0, 0, today.Location()))
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// parseClock converts "HH:MM" to minute-of-day.
func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
