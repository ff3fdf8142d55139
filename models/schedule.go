package models

import "time"

type ScheduleView string

const (
	ScheduleViewDay     ScheduleView = "day"
	ScheduleViewWeek    ScheduleView = "week"
	ScheduleViewTwoWeek ScheduleView = "two_week"
	ScheduleViewMonth   ScheduleView = "month"
)

// CalendarCell is one day of a schedule view.
type CalendarCell struct {
	Date         time.Time `json:"date"`
	InMonth      bool      `json:"inMonth"`
	IsToday      bool      `json:"isToday"`
	IsWorkingDay bool      `json:"isWorkingDay"`
	Jobs         []*Job    `json:"jobs"`
}

type Schedule struct {
	View  ScheduleView    `json:"view"`
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Cells []*CalendarCell `json:"cells"`
}

// TimeSlot is a job's place in the day layout, in minutes from midnight.
type TimeSlot struct {
	JobID       string `json:"jobID"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
}

type DayPlan struct {
	Date  time.Time  `json:"date"`
	Jobs  []*Job     `json:"jobs"`
	Slots []TimeSlot `json:"slots"`
	// Overrun is true when the last slot ends after the schedule end hour.
	Overrun bool `json:"overrun"`
}

// BatchResult reports a multi-job update. Successful writes stand even when others fail.
type BatchResult struct {
	Date         time.Time `json:"date"`
	Updated      []*Job    `json:"updated"`
	FailedJobIDs []string  `json:"failedJobIDs,omitempty"`
}
