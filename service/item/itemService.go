package itemsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/database"
	"shareit/util/page"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Item, error)
	Search(ctx context.Context, text string, p page.Page) ([]model.Item, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Requests interface {
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
}

type Bookings interface {
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingShort, error)
	HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type Comments interface {
	Create(ctx context.Context, c *model.Comment) error
	ByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req model.ItemCreate) (*model.Item, error)
	Update(ctx context.Context, userID, itemID int64, req model.ItemPatch) (*model.Item, error)
	Get(ctx context.Context, userID, itemID int64) (*model.ItemDetail, error)
	ListForOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemDetail, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	AddComment(ctx context.Context, userID, itemID int64, req model.CommentCreate) (*model.Comment, error)
}

// Deps groups the stores the item service reads besides its own.
type Deps struct {
	Users    Users
	Requests Requests
	Bookings Bookings
	Comments Comments
}

type service struct {
	r Repo
	Deps
	now func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func New(r Repo, d Deps, opts ...Option) Service {
	s := &service{r: r, Deps: d, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, ownerID int64, req model.ItemCreate) (*model.Item, error) {
	name := strings.TrimSpace(req.Name)
	desc := strings.TrimSpace(req.Description)
	if name == "" || desc == "" || req.Available == nil {
		return nil, apperr.Validation("item name, description and availability must be set")
	}
	if _, err := s.Users.ByID(ctx, ownerID); err != nil {
		return nil, notFound(err, "user id=%d not found", ownerID)
	}
	if req.RequestID != nil {
		if _, err := s.Requests.ByID(ctx, *req.RequestID); err != nil {
			return nil, notFound(err, "request id=%d not found", *req.RequestID)
		}
	}

	it := &model.Item{
		Name:        name,
		Description: desc,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.r.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, userID, itemID int64, req model.ItemPatch) (*model.Item, error) {
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "item id=%d not found", itemID)
	}
	if it.OwnerID != userID {
		return nil, apperr.Forbidden("user id=%d does not own item id=%d", userID, itemID)
	}

	if v := trimmed(req.Name); v != "" {
		it.Name = v
	}
	if v := trimmed(req.Description); v != "" {
		it.Description = v
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.r.Update(ctx, it); err != nil {
		return nil, notFound(err, "item id=%d not found", itemID)
	}
	return it, nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func (s *service) Get(ctx context.Context, userID, itemID int64) (*model.ItemDetail, error) {
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "item id=%d not found", itemID)
	}
	d, err := s.detail(ctx, *it, userID, s.now())
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemDetail, error) {
	p, err := page.New(from, size)
	if err != nil {
		return nil, err
	}
	if _, err := s.Users.ByID(ctx, ownerID); err != nil {
		return nil, notFound(err, "user id=%d not found", ownerID)
	}
	items, err := s.r.ByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]model.ItemDetail, 0, len(items))
	for _, it := range items {
		d, err := s.detail(ctx, it, ownerID, now)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// detail attaches comments and, for the owner, the booking timeline.
func (s *service) detail(ctx context.Context, it model.Item, userID int64, now time.Time) (model.ItemDetail, error) {
	d := model.ItemDetail{Item: it}
	if it.OwnerID == userID {
		last, err := s.Bookings.LastForItem(ctx, it.ID, now)
		if err != nil {
			return d, fmt.Errorf("last booking: %w", err)
		}
		next, err := s.Bookings.NextForItem(ctx, it.ID, now)
		if err != nil {
			return d, fmt.Errorf("next booking: %w", err)
		}
		d.LastBooking, d.NextBooking = last, next
	}
	comments, err := s.Comments.ByItem(ctx, it.ID)
	if err != nil {
		return d, fmt.Errorf("comments: %w", err)
	}
	d.Comments = comments
	return d, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []model.Item{}, nil
	}
	p, err := page.New(from, size)
	if err != nil {
		return nil, err
	}
	return s.r.Search(ctx, text, p)
}

func (s *service) AddComment(ctx context.Context, userID, itemID int64, req model.CommentCreate) (*model.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperr.Validation("comment text must not be blank")
	}
	if _, err := s.r.ByID(ctx, itemID); err != nil {
		return nil, notFound(err, "item id=%d not found", itemID)
	}
	author, err := s.Users.ByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user id=%d not found", userID)
	}

	now := s.now()
	ok, err := s.Bookings.HasFinished(ctx, userID, itemID, now)
	if err != nil {
		return nil, fmt.Errorf("check bookings: %w", err)
	}
	if !ok {
		return nil, apperr.Validation("user id=%d has no finished booking of item id=%d", userID, itemID)
	}

	c := &model.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound(format, args...)
	}
	return fmt.Errorf("lookup: %w", err)
}
