package request

import (
	"kashikiri-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type SubmitAvailabilityRequest struct {
	Available      *bool  `json:"available" binding:"required"`
	SelectedOrders []int  `json:"selected_orders" binding:"required_if=Available true,omitempty,min=1,dive,min=1"`
	Notes          string `json:"notes" binding:"max=1000"`
}

func (r *SubmitAvailabilityRequest) ToCommand(requestID, staffID uuid.UUID) commands.SubmitAvailabilityRequest {
	return commands.SubmitAvailabilityRequest{
		RequestID:      requestID,
		StaffID:        staffID,
		Available:      *r.Available,
		SelectedOrders: r.SelectedOrders,
		Notes:          r.Notes,
	}
}
