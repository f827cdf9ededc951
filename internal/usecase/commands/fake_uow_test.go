//go:build unit

package commands_test

import (
	"context"
	"time"

	"kashikiri-booking/internal/domain/availability"
	"kashikiri-booking/internal/domain/booking"
	"kashikiri-booking/internal/domain/schedule"
	"kashikiri-booking/internal/infra"
	"kashikiri-booking/internal/infra/db"
	"kashikiri-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory unit of work. Each test seeds the reads and inspects what the
// repositories were asked to persist.
type fakeUoW struct {
	tx                   *fakeTx
	serializableInvoked  bool
	readCommittedInvoked bool
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{tx: newFakeTx()}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.readCommittedInvoked = true
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.serializableInvoked = true
	return fn(ctx, u.tx)
}

type fakeTx struct {
	reads        *fakeReads
	bookings     *fakeBookingRepo
	availability *fakeAvailabilityRepo
	jobs         *fakeNotificationRepo
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		reads:        &fakeReads{},
		bookings:     &fakeBookingRepo{},
		availability: &fakeAvailabilityRepo{},
		jobs:         &fakeNotificationRepo{},
	}
}

func (t *fakeTx) BookingRequests() shared.BookingRequestRepository           { return t.bookings }
func (t *fakeTx) AvailabilityResponses() shared.AvailabilityResponseRepository { return t.availability }
func (t *fakeTx) Notifications() shared.NotificationRepository               { return t.jobs }
func (t *fakeTx) Reads() shared.CommandReads                                 { return t.reads }
func (t *fakeTx) DB() db.DBTX                                                { return nil }

type fakeReads struct {
	request     *booking.BookingRequest
	requestErr  error
	response    *availability.Response
	responseErr error
	claimedBy   *uuid.UUID
	storeHit    *shared.OccupancyHit
	gmHit       *shared.OccupancyHit
}

func (r *fakeReads) BookingRequestByID(_ context.Context, _ uuid.UUID, _ bool) (*booking.BookingRequest, error) {
	if r.requestErr != nil {
		return nil, r.requestErr
	}
	return r.request, nil
}

func (r *fakeReads) ResponseByRequestAndStaff(_ context.Context, _, _ uuid.UUID) (*availability.Response, error) {
	if r.responseErr != nil {
		return nil, r.responseErr
	}
	return r.response, nil
}

func (r *fakeReads) ClaimedBy(_ context.Context, _ uuid.UUID) (*uuid.UUID, error) {
	return r.claimedBy, nil
}

func (r *fakeReads) OccupiedBy(_ context.Context, key schedule.OccupancyKey, _ uuid.UUID) (*shared.OccupancyHit, error) {
	if key.Kind == schedule.OwnerGM {
		return r.gmHit, nil
	}
	return r.storeHit, nil
}

type fakeBookingRepo struct {
	created        *booking.BookingRequest
	claimSaved     *booking.BookingRequest
	confirmSaved   *booking.BookingRequest
	rejectSaved    *booking.BookingRequest
	claimSaveErr   error
	confirmSaveErr error
	rejectSaveErr  error
}

func (f *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, req *booking.BookingRequest) (uuid.UUID, error) {
	f.created = req
	return req.ID(), nil
}

func (f *fakeBookingRepo) SaveClaim(_ context.Context, _ db.DBTX, req *booking.BookingRequest) error {
	if f.claimSaveErr != nil {
		return f.claimSaveErr
	}
	f.claimSaved = req
	return nil
}

func (f *fakeBookingRepo) SaveConfirmation(_ context.Context, _ db.DBTX, req *booking.BookingRequest) error {
	if f.confirmSaveErr != nil {
		return f.confirmSaveErr
	}
	f.confirmSaved = req
	return nil
}

func (f *fakeBookingRepo) SaveRejection(_ context.Context, _ db.DBTX, req *booking.BookingRequest) error {
	if f.rejectSaveErr != nil {
		return f.rejectSaveErr
	}
	f.rejectSaved = req
	return nil
}

type fakeAvailabilityRepo struct {
	pending       []*availability.Response
	answerSaved   *availability.Response
	answerSaveErr error
}

func (f *fakeAvailabilityRepo) CreatePending(_ context.Context, _ db.DBTX, resp *availability.Response) error {
	f.pending = append(f.pending, resp)
	return nil
}

func (f *fakeAvailabilityRepo) SaveAnswer(_ context.Context, _ db.DBTX, resp *availability.Response) error {
	if f.answerSaveErr != nil {
		return f.answerSaveErr
	}
	f.answerSaved = resp
	return nil
}

type fakeNotificationRepo struct {
	topics []string
}

func (f *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, _, topic string, _ []byte, _ time.Time) error {
	f.topics = append(f.topics, topic)
	return nil
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func conflictErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindConflict)
}

func duplicateKeyErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindDuplicateKey)
}
