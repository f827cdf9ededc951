package request

import (
	"kashikiri-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ScenarioID        uuid.UUID            `json:"scenario_id" binding:"required"`
	CustomerRef       string               `json:"customer_ref" binding:"required,max=255"`
	ParticipantCount  int                  `json:"participant_count" binding:"required,min=1"`
	Candidates        []CandidateSlotInput `json:"candidates" binding:"required,min=1,dive"`
	RequestedStoreIDs []uuid.UUID          `json:"requested_store_ids" binding:"omitempty"`
	EligibleGMIDs     []uuid.UUID          `json:"eligible_gm_ids" binding:"required,min=1"`
}

type CandidateSlotInput struct {
	Order     int    `json:"order" binding:"required,min=1"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time" binding:"required,datetime=15:04"`
}

func (r *CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	candidates := make([]commands.CandidateSlotInput, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		candidates = append(candidates, commands.CandidateSlotInput{
			Order:     c.Order,
			Date:      c.Date,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		})
	}
	return commands.CreateBookingRequest{
		ScenarioID:        r.ScenarioID,
		CustomerRef:       r.CustomerRef,
		ParticipantCount:  r.ParticipantCount,
		Candidates:        candidates,
		RequestedStoreIDs: r.RequestedStoreIDs,
		EligibleGMIDs:     r.EligibleGMIDs,
	}
}
