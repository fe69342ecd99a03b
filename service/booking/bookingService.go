package bookingsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shareit/model"
	brepo "shareit/repository/booking"
	"shareit/util/apperr"
	"shareit/util/database"
	"shareit/util/page"
)

// ErrNoBookings is returned by ListForOwner for an empty result when the
// service runs with WithOwnerEmptyIsError.
var ErrNoBookings = errors.New("no bookings")

type Filter = brepo.Filter

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	FullByID(ctx context.Context, id int64) (*model.BookingFull, error)
	FullByIDForOwner(ctx context.Context, id, ownerID int64) (*model.BookingFull, error)
	SetStatusIfWaiting(ctx context.Context, id int64, status model.BookingStatus) (bool, error)
	List(ctx context.Context, f Filter) ([]model.BookingFull, error)
}

type Items interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	// Create places a WAITING booking on someone else's available item.
	Create(ctx context.Context, userID int64, req model.BookingCreate) (*model.BookingFull, error)

	// UpdateStatus approves or rejects a WAITING booking on an item owned by ownerID.
	UpdateStatus(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.BookingFull, error)

	// Get returns a booking visible to its booker or the item owner.
	Get(ctx context.Context, userID, bookingID int64) (*model.BookingFull, error)

	ListForBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.BookingFull, error)
	ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingFull, error)
}

type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithOwnerEmptyIsError makes ListForOwner fail with ErrNoBookings instead
// of returning an empty list.
func WithOwnerEmptyIsError(on bool) Option {
	return func(s *service) { s.ownerEmptyIsError = on }
}

type service struct {
	r     Repo
	items Items
	users Users
	log   *slog.Logger

	now               func() time.Time
	ownerEmptyIsError bool
}

func New(r Repo, items Items, users Users, log *slog.Logger, opts ...Option) Service {
	s := &service{r: r, items: items, users: users, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, userID int64, req model.BookingCreate) (*model.BookingFull, error) {
	if req.Start == nil || req.End == nil {
		return nil, apperr.Validation("booking start and end must be set")
	}
	start, end := *req.Start, *req.End
	if !end.After(start) {
		return nil, apperr.Validation("booking end must be after start")
	}
	now := s.now()
	if !start.After(now) || !end.After(now) {
		return nil, apperr.Validation("booking start and end must be in the future")
	}

	booker, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user id=%d not found", userID)
	}
	item, err := s.items.ByID(ctx, req.ItemID)
	if err != nil {
		return nil, notFound(err, "item id=%d not found", req.ItemID)
	}
	if item.OwnerID == userID {
		return nil, apperr.Forbidden("owner cannot book own item id=%d", item.ID)
	}
	if !item.Available {
		return nil, apperr.Unavailable("item id=%d is not available", item.ID)
	}

	b := &model.Booking{
		Start:    start,
		End:      end,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   model.BookingWaiting,
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.log.Info("booking created", "booking_id", b.ID, "item_id", item.ID, "booker_id", booker.ID)

	return &model.BookingFull{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   *item,
		Booker: *booker,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.BookingFull, error) {
	b, err := s.r.FullByIDForOwner(ctx, bookingID, ownerID)
	if err != nil {
		return nil, notFound(err, "booking id=%d not found", bookingID)
	}
	if b.Status != model.BookingWaiting {
		return nil, apperr.State("booking id=%d is %s, not WAITING", b.ID, b.Status)
	}

	to := model.BookingRejected
	if approved {
		to = model.BookingApproved
	}
	ok, err := s.r.SetStatusIfWaiting(ctx, b.ID, to)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if !ok {
		return nil, apperr.State("booking id=%d is no longer WAITING", b.ID)
	}
	b.Status = to
	s.log.Info("booking status changed", "booking_id", b.ID, "status", to, "owner_id", ownerID)
	return b, nil
}

func (s *service) Get(ctx context.Context, userID, bookingID int64) (*model.BookingFull, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, notFound(err, "user id=%d not found", userID)
	}
	b, err := s.r.FullByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking id=%d not found", bookingID)
	}
	if b.Booker.ID != userID && b.Item.OwnerID != userID {
		return nil, apperr.NotFound("user id=%d has no booking id=%d", userID, bookingID)
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.BookingFull, error) {
	f, err := s.filter(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}
	f.BookerID = userID
	return s.r.List(ctx, f)
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingFull, error) {
	f, err := s.filter(ctx, ownerID, state, from, size)
	if err != nil {
		return nil, err
	}
	f.OwnerID = ownerID
	out, err := s.r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 && s.ownerEmptyIsError {
		return nil, ErrNoBookings
	}
	return out, nil
}

func (s *service) filter(ctx context.Context, userID int64, state string, from, size int) (Filter, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return Filter{}, notFound(err, "user id=%d not found", userID)
	}
	st, ok := model.ParseBookingState(state)
	if !ok {
		return Filter{}, apperr.Validation("Unknown state: %s", state)
	}
	p, err := page.New(from, size)
	if err != nil {
		return Filter{}, err
	}
	return Filter{State: st, Now: s.now(), Page: p}, nil
}

// notFound turns a missing row into a coded NotFound and wraps anything else.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound(format, args...)
	}
	return fmt.Errorf("lookup: %w", err)
}
