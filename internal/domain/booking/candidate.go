package booking

import (
	"errors"
	"time"

	"kashikiri-booking/internal/domain/schedule"
)

var (
	ErrInvalidCandidateDate = errors.New("invalid candidate date")
	ErrInvalidCandidateTime = errors.New("invalid candidate time")
	ErrCandidateTimeOrder   = errors.New("candidate start time must be before end time")
	ErrInvalidOrder         = errors.New("candidate order must be positive")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// CandidateSlot is one proposed (date, time) option. Order is its stable
// identity within a request: GM selections and the final confirmation refer
// to candidates by order, so orders survive pruning untouched.
type CandidateSlot struct {
	Order     int
	Date      string // YYYY-MM-DD
	TimeSlot  schedule.TimeSlot
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Status    SlotStatus
}

// NewCandidateSlot validates the wire fields and derives the time-slot
// bucket from the start hour.
func NewCandidateSlot(order int, date, startTime, endTime string) (CandidateSlot, error) {
	if order <= 0 {
		return CandidateSlot{}, ErrInvalidOrder
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return CandidateSlot{}, ErrInvalidCandidateDate
	}
	start, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return CandidateSlot{}, ErrInvalidCandidateTime
	}
	end, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return CandidateSlot{}, ErrInvalidCandidateTime
	}
	if !start.Before(end) {
		return CandidateSlot{}, ErrCandidateTimeOrder
	}

	slot, err := schedule.SlotForStartTime(startTime)
	if err != nil {
		return CandidateSlot{}, ErrInvalidCandidateTime
	}

	return CandidateSlot{
		Order:     order,
		Date:      date,
		TimeSlot:  slot,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    SlotProposed,
	}, nil
}
