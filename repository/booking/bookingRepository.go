// repository/booking/repo.go
package bookingrepo

import (
	"context"
	"errors"
	"time"

	"shareit/model"
	"shareit/util/database"
	"shareit/util/page"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
)

const dialect = "postgres"

// Filter narrows a booking listing. Zero ids mean "any".
type Filter struct {
	BookerID int64
	OwnerID  int64
	State    model.BookingState
	Now      time.Time
	Page     page.Page
}

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	FullByID(ctx context.Context, id int64) (*model.BookingFull, error)
	FullByIDForOwner(ctx context.Context, id, ownerID int64) (*model.BookingFull, error)
	// SetStatusIfWaiting moves a WAITING booking to status; false means the
	// booking was no longer WAITING when the write landed.
	SetStatusIfWaiting(ctx context.Context, id int64, status model.BookingStatus) (bool, error)
	List(ctx context.Context, f Filter) ([]model.BookingFull, error)

	// Item timeline. A nil booking with a nil error means there is none.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
	HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type repo struct {
	db *database.DB
}

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, b.Start, b.End, b.ItemID, b.BookerID, string(b.Status)).Scan(&b.ID)
}

func fullSelect() *goqu.SelectDataset {
	return goqu.Dialect(dialect).
		From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			"b.id", "b.start_date", "b.end_date", "b.status",
			"i.id", "i.name", "i.description", "i.available", "i.owner_id", "i.request_id",
			"u.id", "u.name", "u.email",
		)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFull(s scanner) (model.BookingFull, error) {
	var (
		b      model.BookingFull
		status string
	)
	err := s.Scan(
		&b.ID, &b.Start, &b.End, &status,
		&b.Item.ID, &b.Item.Name, &b.Item.Description, &b.Item.Available, &b.Item.OwnerID, &b.Item.RequestID,
		&b.Booker.ID, &b.Booker.Name, &b.Booker.Email,
	)
	b.Status = model.BookingStatus(status)
	return b, err
}

func (r *repo) FullByID(ctx context.Context, id int64) (*model.BookingFull, error) {
	return r.one(ctx, fullSelect().Where(goqu.I("b.id").Eq(id)))
}

func (r *repo) FullByIDForOwner(ctx context.Context, id, ownerID int64) (*model.BookingFull, error) {
	return r.one(ctx, fullSelect().Where(
		goqu.I("b.id").Eq(id),
		goqu.I("i.owner_id").Eq(ownerID),
	))
}

func (r *repo) one(ctx context.Context, ds *goqu.SelectDataset) (*model.BookingFull, error) {
	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	b, err := scanFull(r.db.Pool.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) SetStatusIfWaiting(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
	// Guard: only transition out of WAITING.
	const q = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		AND status = 'WAITING'`
	tag, err := r.db.Pool.Exec(ctx, q, id, string(status))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.BookingFull, error) {
	q, args, err := listQuery(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingFull{}
	for rows.Next() {
		b, err := scanFull(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func listQuery(f Filter) (string, []any, error) {
	ds := fullSelect()
	if f.BookerID != 0 {
		ds = ds.Where(goqu.I("b.booker_id").Eq(f.BookerID))
	}
	if f.OwnerID != 0 {
		ds = ds.Where(goqu.I("i.owner_id").Eq(f.OwnerID))
	}
	switch f.State {
	case model.StateCurrent:
		ds = ds.Where(goqu.I("b.start_date").Lt(f.Now), goqu.I("b.end_date").Gt(f.Now))
	case model.StatePast:
		ds = ds.Where(goqu.I("b.end_date").Lt(f.Now))
	case model.StateFuture:
		ds = ds.Where(goqu.I("b.start_date").Gt(f.Now))
	case model.StateWaiting:
		ds = ds.Where(goqu.I("b.status").Eq(string(model.BookingWaiting)))
	case model.StateRejected:
		ds = ds.Where(goqu.I("b.status").Eq(string(model.BookingRejected)))
	}
	return ds.
		Order(goqu.I("b.start_date").Desc(), goqu.I("b.id").Desc()).
		Offset(uint(f.Page.Offset)).
		Limit(uint(f.Page.Limit)).
		Prepared(true).
		ToSQL()
}

func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	const q = `
		SELECT id, booker_id, item_id, start_date, end_date, status
		FROM bookings
		WHERE item_id = $1
		AND status <> 'REJECTED'
		AND start_date < $2
		ORDER BY start_date DESC
		LIMIT 1`
	return r.short(ctx, q, itemID, now)
}

func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error) {
	const q = `
		SELECT id, booker_id, item_id, start_date, end_date, status
		FROM bookings
		WHERE item_id = $1
		AND status <> 'REJECTED'
		AND start_date > $2
		ORDER BY start_date ASC
		LIMIT 1`
	return r.short(ctx, q, itemID, now)
}

func (r *repo) short(ctx context.Context, q string, args ...any) (*model.BookingShort, error) {
	var (
		b      model.BookingShort
		status string
	)
	err := r.db.Pool.QueryRow(ctx, q, args...).Scan(&b.ID, &b.BookerID, &b.ItemID, &b.Start, &b.End, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	return &b, nil
}

func (r *repo) HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE booker_id = $1
			AND item_id = $2
			AND end_date < $3
		)`
	var ok bool
	err := r.db.Pool.QueryRow(ctx, q, bookerID, itemID, now).Scan(&ok)
	return ok, err
}
