package request

import (
	"kashikiri-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type ConfirmRequest struct {
	FinalOrder int        `json:"final_order" binding:"required,min=1"`
	StoreID    uuid.UUID  `json:"store_id" binding:"required"`
	GMID       *uuid.UUID `json:"gm_id" binding:"omitempty"`
}

func (r *ConfirmRequest) ToCommand(requestID uuid.UUID) commands.ConfirmRequest {
	return commands.ConfirmRequest{
		RequestID:  requestID,
		FinalOrder: r.FinalOrder,
		StoreID:    r.StoreID,
		GMID:       r.GMID,
	}
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

func (r *RejectRequest) ToCommand(requestID uuid.UUID) commands.RejectRequest {
	return commands.RejectRequest{
		RequestID: requestID,
		Reason:    r.Reason,
	}
}
