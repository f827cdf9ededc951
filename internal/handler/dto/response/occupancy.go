package response

import (
	"kashikiri-booking/internal/usecase/queries"
)

type OccupancyEntryResponse struct {
	OwnerKind string `json:"owner_kind"`
	OwnerID   string `json:"owner_id"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	Source    string `json:"source"`
	SourceID  string `json:"source_id"`
}

func FromOccupancyList(items []*queries.OccupancyEntry) []*OccupancyEntryResponse {
	res := make([]*OccupancyEntryResponse, len(items))
	for i, it := range items {
		res[i] = &OccupancyEntryResponse{
			OwnerKind: it.OwnerKind,
			OwnerID:   it.OwnerID.String(),
			Date:      it.Date,
			TimeSlot:  it.TimeSlot,
			Source:    it.Source,
			SourceID:  it.SourceID.String(),
		}
	}
	return res
}
