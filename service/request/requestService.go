package requestsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/database"
	"shareit/util/page"
)

type Repo interface {
	Create(ctx context.Context, rq *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	Others(ctx context.Context, userID int64, p page.Page) ([]model.ItemRequest, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

// Items answers the item side of a request: whether something matching is
// already listed and which items were created in response.
type Items interface {
	ExistsMatching(ctx context.Context, text string) (bool, error)
	ByRequestIDs(ctx context.Context, ids []int64) (map[int64][]model.Item, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, req model.RequestCreate) (*model.ItemRequest, error)
	ListMine(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error)
	Get(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error)
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	r     Repo
	users Users
	items Items
	log   *slog.Logger
	now   func() time.Time
}

func New(r Repo, users Users, items Items, log *slog.Logger, opts ...Option) Service {
	s := &service{r: r, users: users, items: items, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, userID int64, req model.RequestCreate) (*model.ItemRequest, error) {
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, apperr.Validation("request description must not be blank")
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	dup, err := s.items.ExistsMatching(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("match items: %w", err)
	}
	if dup {
		return nil, apperr.Conflict("an item matching %q is already listed", desc)
	}

	rq := &model.ItemRequest{
		Description: desc,
		RequestorID: userID,
		Created:     s.now(),
		Items:       []model.Item{},
	}
	if err := s.r.Create(ctx, rq); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	s.log.Info("item request created", "request_id", rq.ID, "requestor_id", userID)
	return rq, nil
}

func (s *service) ListMine(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	out, err := s.r.ByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return out, s.attach(ctx, out)
}

func (s *service) ListOthers(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error) {
	p, err := page.New(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	out, err := s.r.Others(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return out, s.attach(ctx, out)
}

func (s *service) Get(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	rq, err := s.r.ByID(ctx, requestID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("request id=%d not found", requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	one := []model.ItemRequest{*rq}
	if err := s.attach(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// attach fills Items of every request with one store round trip.
func (s *service) attach(ctx context.Context, rqs []model.ItemRequest) error {
	if len(rqs) == 0 {
		return nil
	}
	ids := make([]int64, len(rqs))
	for i, rq := range rqs {
		ids[i] = rq.ID
	}
	byReq, err := s.items.ByRequestIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("request items: %w", err)
	}
	for i := range rqs {
		items := byReq[rqs[i].ID]
		if items == nil {
			items = []model.Item{}
		}
		rqs[i].Items = items
	}
	return nil
}

func (s *service) userExists(ctx context.Context, id int64) error {
	_, err := s.users.ByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("user id=%d not found", id)
	}
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	return nil
}
