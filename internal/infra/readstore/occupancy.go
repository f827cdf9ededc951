package readstore

import (
	"context"

	"kashikiri-booking/internal/infra"
	"kashikiri-booking/internal/infra/db"
	"kashikiri-booking/internal/usecase/queries"
)

type OccupancyReadStore struct {
	db db.DBTX
}

func NewOccupancyReadStore(pool db.DBTX) *OccupancyReadStore {
	return &OccupancyReadStore{db: pool}
}

// Confirmed requests occupy both their store and their GM; schedule events
// occupy whichever owner they carry. The projection is derived, never
// written back, so a confirmation shows up here without a second insert.
const findOccupancyBetweenSQL = `
SELECT owner_kind, owner_id, date, time_slot, source, source_id FROM (
    SELECT 'store' AS owner_kind, br.confirmed_store_id AS owner_id,
           cs->>'date' AS date, cs->>'timeSlot' AS time_slot,
           'booking_request' AS source, br.id AS source_id
    FROM booking_requests br,
         jsonb_array_elements(br.candidate_slots) cs
    WHERE br.status = 'confirmed'
      AND cs->>'date' BETWEEN $1 AND $2
    UNION ALL
    SELECT 'gm', br.assigned_gm_id,
           cs->>'date', cs->>'timeSlot',
           'booking_request', br.id
    FROM booking_requests br,
         jsonb_array_elements(br.candidate_slots) cs
    WHERE br.status = 'confirmed'
      AND cs->>'date' BETWEEN $1 AND $2
    UNION ALL
    SELECT se.owner_kind, se.owner_id,
           to_char(se.event_date, 'YYYY-MM-DD'), se.time_slot,
           'schedule_event', se.id
    FROM schedule_events se
    WHERE se.event_date BETWEEN $1::date AND $2::date
) occupied
ORDER BY date, time_slot, owner_kind, owner_id
`

func (r *OccupancyReadStore) FindBetween(ctx context.Context, from, to string) ([]*queries.OccupancyEntry, error) {
	rows, err := r.db.Query(ctx, findOccupancyBetweenSQL, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find occupancy", err)
	}
	defer rows.Close()

	var result []*queries.OccupancyEntry
	for rows.Next() {
		var e queries.OccupancyEntry
		if err := rows.Scan(&e.OwnerKind, &e.OwnerID, &e.Date, &e.TimeSlot, &e.Source, &e.SourceID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupancy entry", err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupancy entries", err)
	}
	return result, nil
}
