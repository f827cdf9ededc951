package schedule

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidStartTime = errors.New("invalid start time")

// TimeSlot is the coarse occupancy bucket a performance occupies. Conflict
// detection works on (owner, date, slot) tuples, never on exact clock times.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
)

func (s TimeSlot) String() string {
	return string(s)
}

func (s TimeSlot) IsValid() bool {
	switch s {
	case TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening:
		return true
	default:
		return false
	}
}

// The evening boundary is 17:00. Earlier revisions of the booking UI used
// both 17:00 and 18:00 in different places; 17:00 is canonical now.
const eveningStartHour = 17

func SlotForHour(hour int) TimeSlot {
	switch {
	case hour < 12:
		return TimeSlotMorning
	case hour < eveningStartHour:
		return TimeSlotAfternoon
	default:
		return TimeSlotEvening
	}
}

// SlotForStartTime buckets a "HH:MM" start time.
func SlotForStartTime(startTime string) (TimeSlot, error) {
	hh, _, ok := strings.Cut(startTime, ":")
	if !ok {
		return "", ErrInvalidStartTime
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return "", ErrInvalidStartTime
	}
	return SlotForHour(hour), nil
}
