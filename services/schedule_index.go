package services

import (
	"greenroute-backend/models"
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"
)

// TravelBufferMinutes separates consecutive jobs in the day layout
const TravelBufferMinutes = 15

const monthGridCells = 35

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay compares calendar days, reading a in b's location
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek returns the Monday on or before t
func StartOfWeek(t time.Time) time.Time {
	d := DateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func onSchedule(job *models.Job) bool {
	return job.ScheduledDate != nil &&
		(job.Status == models.JobStatusScheduled || job.Status == models.JobStatusCompleted)
}

// JobsOnDate returns the scheduled or completed jobs falling on date's calendar day,
// keeping their relative order
func JobsOnDate(jobs []*models.Job, date time.Time) []*models.Job {
	out := make([]*models.Job, 0)
	for _, job := range jobs {
		if onSchedule(job) && SameDay(*job.ScheduledDate, date) {
			out = append(out, job)
		}
	}
	return out
}

// ReorderJobs moves the named jobs to the front in the given order. Unmentioned jobs
// follow in their original relative order. Unknown and repeated IDs are ignored.
func ReorderJobs(jobs []*models.Job, orderedIDs []string) []*models.Job {
	byID := make(map[string]*models.Job, len(jobs))
	for _, job := range jobs {
		byID[job.JobID] = job
	}

	out := make([]*models.Job, 0, len(jobs))
	placed := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		job, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		out = append(out, job)
	}
	for _, job := range jobs {
		if !placed[job.JobID] {
			out = append(out, job)
		}
	}
	return out
}

// LayoutDay places jobs back to back from startHour, with a travel buffer between each
func LayoutDay(jobs []*models.Job, startHour int) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(jobs))
	cursor := startHour * 60
	for i, job := range jobs {
		if i > 0 {
			cursor += TravelBufferMinutes
		}
		slots = append(slots, models.TimeSlot{
			JobID:       job.JobID,
			StartMinute: cursor,
			EndMinute:   cursor + job.DurationMinutes,
		})
		cursor += job.DurationMinutes
	}
	return slots
}

// WorkingCalendar combines the organization's weekday mask with a public holiday calendar
type WorkingCalendar struct {
	workingDays uint8
	holidays    *cal.BusinessCalendar
}

// NewWorkingCalendar builds a calendar for settings. Unknown regions have no holidays.
func NewWorkingCalendar(settings *models.BusinessSettings) *WorkingCalendar {
	bc := cal.NewBusinessCalendar()
	switch settings.HolidayRegion {
	case "gb":
		bc.AddHoliday(
			gb.NewYear,
			gb.GoodFriday,
			gb.EasterMonday,
			gb.EarlyMay,
			gb.SpringHoliday,
			gb.SummerHoliday,
			gb.ChristmasDay,
			gb.BoxingDay,
		)
	case "us":
		bc.AddHoliday(
			us.NewYear,
			us.MlkDay,
			us.PresidentsDay,
			us.MemorialDay,
			us.Juneteenth,
			us.IndependenceDay,
			us.LaborDay,
			us.ThanksgivingDay,
			us.ChristmasDay,
		)
	}
	return &WorkingCalendar{workingDays: settings.WorkingDays, holidays: bc}
}

// IsHoliday reports a public holiday, actual or observed
func (c *WorkingCalendar) IsHoliday(t time.Time) bool {
	actual, observed, _ := c.holidays.IsHoliday(t)
	return actual || observed
}

func (c *WorkingCalendar) IsWorkingDay(t time.Time) bool {
	if c.workingDays&(1<<uint(t.Weekday())) == 0 {
		return false
	}
	return !c.IsHoliday(t)
}

// NextWorkingDay returns the first working day strictly after t. With no working days
// configured it falls back to the following calendar day.
func (c *WorkingCalendar) NextWorkingDay(t time.Time) time.Time {
	d := DateOnly(t)
	for i := 1; i <= 366; i++ {
		next := d.AddDate(0, 0, i)
		if c.IsWorkingDay(next) {
			return next
		}
	}
	return d.AddDate(0, 0, 1)
}

// ViewRange returns the first day and cell count of a view anchored on date
func ViewRange(view models.ScheduleView, date time.Time) (time.Time, int) {
	switch view {
	case models.ScheduleViewWeek:
		return StartOfWeek(date), 7
	case models.ScheduleViewTwoWeek:
		return StartOfWeek(date), 14
	case models.ScheduleViewMonth:
		first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		return StartOfWeek(first), monthGridCells
	default:
		return DateOnly(date), 1
	}
}

// BuildSchedule groups jobs into the cells of a day, week, two-week or month view
func BuildSchedule(jobs []*models.Job, view models.ScheduleView, date, today time.Time, calendar *WorkingCalendar) *models.Schedule {
	if view == "" {
		view = models.ScheduleViewDay
	}
	start, n := ViewRange(view, date)

	cells := make([]*models.CalendarCell, 0, n)
	for i := 0; i < n; i++ {
		day := start.AddDate(0, 0, i)
		cells = append(cells, &models.CalendarCell{
			Date:         day,
			InMonth:      view != models.ScheduleViewMonth || day.Month() == date.Month(),
			IsToday:      SameDay(today, day),
			IsWorkingDay: calendar == nil || calendar.IsWorkingDay(day),
			Jobs:         JobsOnDate(jobs, day),
		})
	}

	return &models.Schedule{
		View:  view,
		Start: start,
		End:   start.AddDate(0, 0, n-1),
		Cells: cells,
	}
}

// PlanDay lays out one day's jobs and flags when the plan runs past the schedule end hour
func PlanDay(jobs []*models.Job, date time.Time, startHour, endHour int) *models.DayPlan {
	dayJobs := JobsOnDate(jobs, date)
	slots := LayoutDay(dayJobs, startHour)

	overrun := false
	if len(slots) > 0 && endHour > 0 {
		overrun = slots[len(slots)-1].EndMinute > endHour*60
	}

	return &models.DayPlan{
		Date:    DateOnly(date),
		Jobs:    dayJobs,
		Slots:   slots,
		Overrun: overrun,
	}
}
