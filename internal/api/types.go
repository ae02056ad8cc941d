package api

import (
	"fmt"

	"github.com/clinicware/practice-scheduler/internal/schedule"
)

// The wire shape for the weekly schedule keys days by name rather than by
// enum index, so clients never depend on Go's weekday numbering.

type BreakDTO struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayScheduleDTO struct {
	Active bool       `json:"active"`
	Open   string     `json:"open"`
	Close  string     `json:"close"`
	Breaks []BreakDTO `json:"breaks"`
}

type WeekScheduleDTO struct {
	Days map[string]DayScheduleDTO `json:"days"`
}

func weekToDTO(ws schedule.WeeklySchedule) WeekScheduleDTO {
	out := WeekScheduleDTO{Days: make(map[string]DayScheduleDTO, 7)}
	for w := schedule.Sunday; w <= schedule.Saturday; w++ {
		day := ws.Day(w)
		dto := DayScheduleDTO{
			Active: day.Active,
			Open:   day.Open.String(),
			Close:  day.Close.String(),
			Breaks: make([]BreakDTO, 0, len(day.Breaks)),
		}
		for _, b := range day.Breaks {
			dto.Breaks = append(dto.Breaks, BreakDTO{ID: b.ID, Start: b.Start.String(), End: b.End.String()})
		}
		out.Days[w.String()] = dto
	}
	return out
}

// weekFromDTO overlays the provided days onto base. Days absent from the
// request keep their current configuration.
func weekFromDTO(base schedule.WeeklySchedule, dto WeekScheduleDTO) (schedule.WeeklySchedule, error) {
	out := base.Clone()
	for name, day := range dto.Days {
		w, err := schedule.ParseWeekday(name)
		if err != nil {
			return schedule.WeeklySchedule{}, err
		}
		open, err := schedule.ParseTimeOfDay(day.Open)
		if err != nil {
			return schedule.WeeklySchedule{}, fmt.Errorf("%s open: %w", name, err)
		}
		close, err := schedule.ParseTimeOfDay(day.Close)
		if err != nil {
			return schedule.WeeklySchedule{}, fmt.Errorf("%s close: %w", name, err)
		}
		breaks := make([]schedule.Break, 0, len(day.Breaks))
		for i, b := range day.Breaks {
			start, err := schedule.ParseTimeOfDay(b.Start)
			if err != nil {
				return schedule.WeeklySchedule{}, fmt.Errorf("%s breaks[%d].start: %w", name, i, err)
			}
			end, err := schedule.ParseTimeOfDay(b.End)
			if err != nil {
				return schedule.WeeklySchedule{}, fmt.Errorf("%s breaks[%d].end: %w", name, i, err)
			}
			breaks = append(breaks, schedule.Break{ID: b.ID, Start: start, End: end})
		}
		out.Days[w] = schedule.DaySchedule{Active: day.Active, Open: open, Close: close, Breaks: breaks}
	}
	return out, nil
}

type UpdateDayRequest struct {
	Active *bool   `json:"active,omitempty"`
	Open   *string `json:"open,omitempty"`
	Close  *string `json:"close,omitempty"`
}

type CreateBreakRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type UpdateBreakRequest struct {
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

type CreateBlockRequest struct {
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Reason     string `json:"reason"`
	Kind       string `json:"kind"`
	Recurrence string `json:"recurrence,omitempty"`
}

type BlocksResponse struct {
	Blocks []schedule.BlockEntry `json:"blocks"`
}

type SlotsResponse struct {
	Date            schedule.DateStamp `json:"date"`
	DurationMinutes int                `json:"duration_minutes"`
	Slots           []string           `json:"slots"`
}

type AvailabilityResponse struct {
	Date     schedule.DateStamp `json:"date"`
	Time     string             `json:"time"`
	Bookable bool               `json:"bookable"`
	Rule     string             `json:"rule,omitempty"`
	Reason   string             `json:"reason,omitempty"`
}

type MoveAppointmentRequest struct {
	Date  schedule.DateStamp `json:"date"`
	Start string             `json:"start"`
}

type ResizeAppointmentRequest struct {
	DurationMinutes int `json:"duration_minutes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type DayStatsResponse struct {
	Date      schedule.DateStamp `json:"date"`
	Total     int                `json:"total"`
	Confirmed int                `json:"confirmed"`
}

type CreatePatientRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type RecordVisitRequest struct {
	Date schedule.DateStamp `json:"date"`
}
