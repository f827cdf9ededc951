package schedule

import "github.com/google/uuid"

// OwnerKind distinguishes the two resources a confirmed performance
// occupies: the venue and the game master running it.
type OwnerKind string

const (
	OwnerStore OwnerKind = "store"
	OwnerGM    OwnerKind = "gm"
)

// OccupancyKey is the conflict key: one owner, one date, one slot.
type OccupancyKey struct {
	Kind    OwnerKind
	OwnerID uuid.UUID
	Date    string // YYYY-MM-DD
	Slot    TimeSlot
}

func StoreKey(storeID uuid.UUID, date string, slot TimeSlot) OccupancyKey {
	return OccupancyKey{Kind: OwnerStore, OwnerID: storeID, Date: date, Slot: slot}
}

func GMKey(gmID uuid.UUID, date string, slot TimeSlot) OccupancyKey {
	return OccupancyKey{Kind: OwnerGM, OwnerID: gmID, Date: date, Slot: slot}
}
