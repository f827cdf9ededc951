package converter

import (
	"encoding/json"

	"kashikiri-booking/internal/domain/booking"
	"kashikiri-booking/internal/domain/schedule"

	"kashikiri-booking/internal/pkg/errs"
)

// candidateSlotDoc is the jsonb shape stored in booking_requests.candidate_slots.
// Field names match the customer-facing payload (camelCase).
type candidateSlotDoc struct {
	Order     int    `json:"order"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

func CandidateSlotsToJSON(slots []booking.CandidateSlot) ([]byte, error) {
	docs := make([]candidateSlotDoc, 0, len(slots))
	for _, s := range slots {
		docs = append(docs, candidateSlotDoc{
			Order:     s.Order,
			Date:      s.Date,
			TimeSlot:  s.TimeSlot.String(),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Status:    string(s.Status),
		})
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal candidate slots")
	}
	return raw, nil
}

func CandidateSlotsFromJSON(raw []byte) ([]booking.CandidateSlot, error) {
	var docs []candidateSlotDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal candidate slots")
	}
	slots := make([]booking.CandidateSlot, 0, len(docs))
	for _, d := range docs {
		slots = append(slots, booking.CandidateSlot{
			Order:     d.Order,
			Date:      d.Date,
			TimeSlot:  schedule.TimeSlot(d.TimeSlot),
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Status:    booking.SlotStatus(d.Status),
		})
	}
	return slots, nil
}
