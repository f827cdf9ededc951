package response

import (
	"kashikiri-booking/internal/usecase/queries"
)

type BookingRequestResponse struct {
	ID                string                  `json:"id"`
	ScenarioID        string                  `json:"scenario_id"`
	CustomerRef       string                  `json:"customer_ref"`
	ParticipantCount  int                     `json:"participant_count"`
	Status            string                  `json:"status"`
	CandidateSlots    []CandidateSlotResponse `json:"candidate_slots"`
	RequestedStoreIDs []string                `json:"requested_store_ids"`
	ConfirmedStoreID  *string                 `json:"confirmed_store_id,omitempty"`
	AssignedGMID      *string                 `json:"assigned_gm_id,omitempty"`
	RejectionReason   *string                 `json:"rejection_reason,omitempty"`
	Responses         []ResponseItem          `json:"responses"`
	CreatedAt         int64                   `json:"created_at"`
	UpdatedAt         int64                   `json:"updated_at"`
}

type CandidateSlotResponse struct {
	Order     int    `json:"order"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type ResponseItem struct {
	StaffID        string `json:"staff_id"`
	Status         string `json:"status"`
	SelectedOrders []int  `json:"selected_orders,omitempty"`
	Notes          string `json:"notes,omitempty"`
	RespondedAt    *int64 `json:"responded_at,omitempty"`
}

func FromBookingRequestView(v *queries.BookingRequestView) *BookingRequestResponse {
	storeIDs := make([]string, len(v.RequestedStoreIDs))
	for i, id := range v.RequestedStoreIDs {
		storeIDs[i] = id.String()
	}

	resp := &BookingRequestResponse{
		ID:                v.ID.String(),
		ScenarioID:        v.ScenarioID.String(),
		CustomerRef:       v.CustomerRef,
		ParticipantCount:  v.ParticipantCount,
		Status:            v.Status,
		CandidateSlots:    fromSlotViews(v.CandidateSlots),
		RequestedStoreIDs: storeIDs,
		RejectionReason:   v.RejectionReason,
		Responses:         fromResponseViews(v.Responses),
		CreatedAt:         v.CreatedAt.Unix(),
		UpdatedAt:         v.UpdatedAt.Unix(),
	}
	if v.ConfirmedStoreID != nil {
		s := v.ConfirmedStoreID.String()
		resp.ConfirmedStoreID = &s
	}
	if v.AssignedGMID != nil {
		s := v.AssignedGMID.String()
		resp.AssignedGMID = &s
	}
	return resp
}

func fromSlotViews(views []queries.CandidateSlotView) []CandidateSlotResponse {
	res := make([]CandidateSlotResponse, len(views))
	for i, s := range views {
		res[i] = CandidateSlotResponse{
			Order:     s.Order,
			Date:      s.Date,
			TimeSlot:  s.TimeSlot,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Status:    s.Status,
		}
	}
	return res
}

func fromResponseViews(views []queries.AvailabilityResponseView) []ResponseItem {
	res := make([]ResponseItem, len(views))
	for i, v := range views {
		item := ResponseItem{
			StaffID:        v.StaffID.String(),
			Status:         v.Status,
			SelectedOrders: v.SelectedOrders,
			Notes:          v.Notes,
		}
		if v.RespondedAt != nil {
			ts := v.RespondedAt.Unix()
			item.RespondedAt = &ts
		}
		res[i] = item
	}
	return res
}

type GMPendingItemResponse struct {
	ID               string                  `json:"id"`
	ScenarioID       string                  `json:"scenario_id"`
	CustomerRef      string                  `json:"customer_ref"`
	ParticipantCount int                     `json:"participant_count"`
	CandidateSlots   []CandidateSlotResponse `json:"candidate_slots"`
	CreatedAt        int64                   `json:"created_at"`
}

func FromGMPendingList(items []*queries.GMPendingItem) []*GMPendingItemResponse {
	res := make([]*GMPendingItemResponse, len(items))
	for i, it := range items {
		res[i] = &GMPendingItemResponse{
			ID:               it.ID.String(),
			ScenarioID:       it.ScenarioID.String(),
			CustomerRef:      it.CustomerRef,
			ParticipantCount: it.ParticipantCount,
			CandidateSlots:   fromSlotViews(it.CandidateSlots),
			CreatedAt:        it.CreatedAt.Unix(),
		}
	}
	return res
}

type StoreActionableItemResponse struct {
	ID               string                  `json:"id"`
	ScenarioID       string                  `json:"scenario_id"`
	CustomerRef      string                  `json:"customer_ref"`
	ParticipantCount int                     `json:"participant_count"`
	Status           string                  `json:"status"`
	CandidateSlots   []CandidateSlotResponse `json:"candidate_slots"`
	ClaimedBy        *string                 `json:"claimed_by,omitempty"`
	CreatedAt        int64                   `json:"created_at"`
}

func FromStoreActionableList(items []*queries.StoreActionableItem) []*StoreActionableItemResponse {
	res := make([]*StoreActionableItemResponse, len(items))
	for i, it := range items {
		item := &StoreActionableItemResponse{
			ID:               it.ID.String(),
			ScenarioID:       it.ScenarioID.String(),
			CustomerRef:      it.CustomerRef,
			ParticipantCount: it.ParticipantCount,
			Status:           it.Status,
			CandidateSlots:   fromSlotViews(it.CandidateSlots),
			CreatedAt:        it.CreatedAt.Unix(),
		}
		if it.ClaimedBy != nil {
			s := it.ClaimedBy.String()
			item.ClaimedBy = &s
		}
		res[i] = item
	}
	return res
}

type CreateBookingResponse struct {
	RequestID string `json:"request_id"`
}
