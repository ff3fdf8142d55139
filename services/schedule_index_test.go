package services

import (
	"greenroute-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func scheduledJob(id string, date time.Time, duration int) *models.Job {
	d := date
	return &models.Job{JobID: id, Status: models.JobStatusScheduled, ScheduledDate: &d, DurationMinutes: duration}
}

func jobIDs(jobs []*models.Job) []string {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.JobID)
	}
	return ids
}

func TestReorderJobs(t *testing.T) {
	d := day(2026, 6, 3)
	jobs := []*models.Job{scheduledJob("A", d, 30), scheduledJob("B", d, 30), scheduledJob("C", d, 30), scheduledJob("D", d, 30)}

	assert.Equal(t, []string{"C", "A", "B", "D"}, jobIDs(ReorderJobs(jobs, []string{"C", "A"})))
	assert.Equal(t, []string{"D", "C", "B", "A"}, jobIDs(ReorderJobs(jobs, []string{"D", "C", "B", "A"})))
	assert.Equal(t, []string{"B", "A", "C", "D"}, jobIDs(ReorderJobs(jobs, []string{"B", "ghost", "B"})))
	assert.Equal(t, []string{"A", "B", "C", "D"}, jobIDs(ReorderJobs(jobs, nil)))
}

func TestJobsOnDate(t *testing.T) {
	d := day(2026, 6, 3)
	completed := scheduledJob("done", d.Add(14*time.Hour), 30)
	completed.Status = models.JobStatusCompleted
	cancelled := scheduledJob("cancelled", d, 30)
	cancelled.Status = models.JobStatusCancelled

	jobs := []*models.Job{
		scheduledJob("A", d, 30),
		scheduledJob("other-day", d.AddDate(0, 0, 1), 30),
		completed,
		cancelled,
		{JobID: "lead", Status: models.JobStatusPending},
	}

	assert.Equal(t, []string{"A", "done"}, jobIDs(JobsOnDate(jobs, d)))
}

func TestLayoutDay(t *testing.T) {
	d := day(2026, 6, 3)
	jobs := []*models.Job{scheduledJob("A", d, 45), scheduledJob("B", d, 30), scheduledJob("C", d, 90)}

	slots := LayoutDay(jobs, 8)
	require.Len(t, slots, 3)
	assert.Equal(t, models.TimeSlot{JobID: "A", StartMinute: 480, EndMinute: 525}, slots[0])
	assert.Equal(t, models.TimeSlot{JobID: "B", StartMinute: 540, EndMinute: 570}, slots[1])
	assert.Equal(t, models.TimeSlot{JobID: "C", StartMinute: 585, EndMinute: 675}, slots[2])

	assert.Empty(t, LayoutDay(nil, 8))
}

func TestPlanDayOverrun(t *testing.T) {
	d := day(2026, 6, 3)
	jobs := []*models.Job{scheduledJob("A", d, 180), scheduledJob("B", d, 180)}

	plan := PlanDay(jobs, d, 8, 17)
	assert.False(t, plan.Overrun)

	jobs = append(jobs, scheduledJob("C", d, 180))
	plan = PlanDay(jobs, d, 8, 17)
	assert.True(t, plan.Overrun)
	assert.Len(t, plan.Slots, 3)
}

func TestStartOfWeek(t *testing.T) {
	assert.Equal(t, day(2026, 6, 1), StartOfWeek(day(2026, 6, 1)))
	assert.Equal(t, day(2026, 6, 1), StartOfWeek(day(2026, 6, 3)))
	assert.Equal(t, day(2026, 6, 1), StartOfWeek(day(2026, 6, 7).Add(23*time.Hour)))
}

func TestBuildScheduleWeek(t *testing.T) {
	settings := DefaultSettings("org-1")
	cal := NewWorkingCalendar(settings)
	wed := day(2026, 6, 3)
	jobs := []*models.Job{scheduledJob("A", wed, 30), scheduledJob("B", day(2026, 6, 8), 30)}

	schedule := BuildSchedule(jobs, models.ScheduleViewWeek, wed, wed, cal)

	require.Len(t, schedule.Cells, 7)
	assert.Equal(t, day(2026, 6, 1), schedule.Start)
	assert.Equal(t, day(2026, 6, 7), schedule.End)
	assert.True(t, schedule.Cells[2].IsToday)
	assert.Equal(t, []string{"A"}, jobIDs(schedule.Cells[2].Jobs))
	assert.False(t, schedule.Cells[5].IsWorkingDay)
	for _, cell := range schedule.Cells {
		assert.NotNil(t, cell.Jobs)
	}
}

func TestBuildScheduleMonth(t *testing.T) {
	anchor := day(2026, 7, 15)
	schedule := BuildSchedule(nil, models.ScheduleViewMonth, anchor, anchor, nil)

	require.Len(t, schedule.Cells, 35)
	// July 2026 starts on a Wednesday
	assert.Equal(t, day(2026, 6, 29), schedule.Start)
	assert.False(t, schedule.Cells[0].InMonth)
	assert.True(t, schedule.Cells[2].InMonth)
	assert.True(t, schedule.Cells[0].IsWorkingDay)
}

func TestBuildScheduleDefaultsToDay(t *testing.T) {
	schedule := BuildSchedule(nil, "", day(2026, 6, 3).Add(10*time.Hour), day(2026, 6, 1), nil)
	assert.Equal(t, models.ScheduleViewDay, schedule.View)
	require.Len(t, schedule.Cells, 1)
	assert.Equal(t, day(2026, 6, 3), schedule.Start)
}

func TestNextWorkingDaySkipsHolidays(t *testing.T) {
	cal := NewWorkingCalendar(DefaultSettings("org-1"))

	// Monday 31 August 2026 is the summer bank holiday
	assert.True(t, cal.IsHoliday(day(2026, 8, 31)))
	assert.Equal(t, day(2026, 9, 1), cal.NextWorkingDay(day(2026, 8, 28)))
	assert.Equal(t, day(2026, 6, 4), cal.NextWorkingDay(day(2026, 6, 3)))

	none := DefaultSettings("org-1")
	none.HolidayRegion = "none"
	assert.Equal(t, day(2026, 8, 31), NewWorkingCalendar(none).NextWorkingDay(day(2026, 8, 28)))

	closed := DefaultSettings("org-1")
	closed.WorkingDays = 0
	assert.Equal(t, day(2026, 8, 29), NewWorkingCalendar(closed).NextWorkingDay(day(2026, 8, 28)))
}
