package booking

// Status is the lifecycle state of a private booking request.
//
// awaiting_gm ─→ awaiting_store ─→ confirmed
//      │                │
//      └────────────────┴─→ rejected
//
// Confirmed and Rejected are terminal. A store approver may confirm straight
// from awaiting_gm (forced decision); there is no backward transition.
type Status string

const (
	StatusAwaitingGM    Status = "awaiting_gm"
	StatusAwaitingStore Status = "awaiting_store"
	StatusConfirmed     Status = "confirmed"
	StatusRejected      Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAwaitingGM, StatusAwaitingStore, StatusConfirmed, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusRejected
}

// SlotStatus marks a candidate as still proposed or as the committed one.
type SlotStatus string

const (
	SlotProposed  SlotStatus = "proposed"
	SlotConfirmed SlotStatus = "confirmed"
)
