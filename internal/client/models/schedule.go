package models

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/openmat/internal/common"
)

var Weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayName maps 0..6 to Sunday..Saturday; anything else yields "".
func DayName(day int) string {
	if day < 0 || day >= len(Weekdays) {
		return ""
	}
	return Weekdays[day]
}

type ClassSchedule struct {
	ID        int64  `json:"id"`
	AcademyID int64  `json:"academy_id"`
	Title     string `json:"title"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *ClassSchedule) Validate() error {
	if s.ID == 0 {
		return errors.New("class schedule: missing id")
	}
	return nil
}

// Summary renders "Mondays at 18:00".
func (s *ClassSchedule) Summary() string {
	return fmt.Sprintf("%ss at %s", DayName(s.DayOfWeek), clock(s.StartTime))
}

// TimeRange renders "18:00-19:30".
func (s *ClassSchedule) TimeRange() string {
	return clock(s.StartTime) + "-" + clock(s.EndTime)
}

func clock(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

// GroupByDay buckets schedules by weekday, preserving input order inside a
// day. Days without classes are absent from the map.
func GroupByDay(schedules []ClassSchedule) map[int][]ClassSchedule {
	grouped := make(map[int][]ClassSchedule)
	for _, s := range schedules {
		grouped[s.DayOfWeek] = append(grouped[s.DayOfWeek], s)
	}
	return grouped
}

// ClassScheduleInput is the body of POST /academies/{id}/class_schedules.
type ClassScheduleInput struct {
	Title     string `json:"title"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (in ClassScheduleInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if DayName(in.DayOfWeek) == "" {
		return fmt.Errorf("%w: day of week must be 0..6, got %d", common.ErrorValidation, in.DayOfWeek)
	}
	if in.StartTime == "" || in.EndTime == "" {
		return fmt.Errorf("%w: start and end time are required", common.ErrorValidation)
	}
	return nil
}
