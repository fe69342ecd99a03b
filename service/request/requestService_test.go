package requestsvc_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shareit/model"
	requestsvc "shareit/service/request"
	"shareit/util/apperr"
	"shareit/util/database"
	"shareit/util/page"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	createFn      func(ctx context.Context, rq *model.ItemRequest) error
	byIDFn        func(ctx context.Context, id int64) (*model.ItemRequest, error)
	byRequestorFn func(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	othersFn      func(ctx context.Context, userID int64, p page.Page) ([]model.ItemRequest, error)
}

var _ requestsvc.Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, rq *model.ItemRequest) error {
	return m.createFn(ctx, rq)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	return m.byRequestorFn(ctx, userID)
}
func (m *repoMock) Others(ctx context.Context, userID int64, p page.Page) ([]model.ItemRequest, error) {
	return m.othersFn(ctx, userID, p)
}

type usersMock map[int64]model.User

func (m usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

type itemsMock struct {
	exists  bool
	byReq   map[int64][]model.Item
	askedID []int64
}

func (m *itemsMock) ExistsMatching(ctx context.Context, text string) (bool, error) {
	return m.exists, nil
}
func (m *itemsMock) ByRequestIDs(ctx context.Context, ids []int64) (map[int64][]model.Item, error) {
	m.askedID = ids
	return m.byReq, nil
}

var (
	now   = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	users = usersMock{1: {ID: 1, Name: "Ann"}, 2: {ID: 2, Name: "Bob"}}
)

func newService(r *repoMock, items *itemsMock) requestsvc.Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return requestsvc.New(r, users, items, log, requestsvc.WithClock(func() time.Time { return now }))
}

func TestCreate_Success(t *testing.T) {
	r := &repoMock{createFn: func(ctx context.Context, rq *model.ItemRequest) error {
		rq.ID = 5
		return nil
	}}
	rq, err := newService(r, &itemsMock{}).Create(context.Background(), 1, model.RequestCreate{Description: " ladder "})
	require.NoError(t, err)
	require.Equal(t, int64(5), rq.ID)
	require.Equal(t, "ladder", rq.Description)
	require.Equal(t, int64(1), rq.RequestorID)
	require.Equal(t, now, rq.Created)
	require.NotNil(t, rq.Items)
}

func TestCreate_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := newService(&repoMock{}, &itemsMock{}).Create(ctx, 1, model.RequestCreate{Description: "  "})
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))

	_, err = newService(&repoMock{}, &itemsMock{}).Create(ctx, 99, model.RequestCreate{Description: "ladder"})
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))

	_, err = newService(&repoMock{}, &itemsMock{exists: true}).Create(ctx, 1, model.RequestCreate{Description: "drill"})
	require.Equal(t, apperr.ErrConflict, apperr.Code(err))
}

func TestListMine_AttachesItems(t *testing.T) {
	r := &repoMock{byRequestorFn: func(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
		return []model.ItemRequest{
			{ID: 3, Description: "tent", RequestorID: userID},
			{ID: 2, Description: "ladder", RequestorID: userID},
		}, nil
	}}
	items := &itemsMock{byReq: map[int64][]model.Item{
		2: {{ID: 10, Name: "Ladder", OwnerID: 2, RequestID: ptr(int64(2))}},
	}}

	out, err := newService(r, items).ListMine(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, []int64{3, 2}, items.askedID)
	require.Empty(t, out[0].Items)
	require.NotNil(t, out[0].Items)
	require.Len(t, out[1].Items, 1)
}

func TestListOthers_Paging(t *testing.T) {
	var got page.Page
	r := &repoMock{othersFn: func(ctx context.Context, userID int64, p page.Page) ([]model.ItemRequest, error) {
		got = p
		return nil, nil
	}}
	s := newService(r, &itemsMock{})

	out, err := s.ListOthers(context.Background(), 1, 7, 3)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, page.Page{Offset: 6, Limit: 3}, got)

	_, err = s.ListOthers(context.Background(), 1, 0, 0)
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))

	_, err = s.ListOthers(context.Background(), 99, 0, 10)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestGet(t *testing.T) {
	r := &repoMock{byIDFn: func(ctx context.Context, id int64) (*model.ItemRequest, error) {
		if id != 2 {
			return nil, database.ErrNotFound
		}
		return &model.ItemRequest{ID: 2, Description: "ladder", RequestorID: 1}, nil
	}}
	items := &itemsMock{byReq: map[int64][]model.Item{2: {{ID: 10, Name: "Ladder"}}}}
	s := newService(r, items)

	rq, err := s.Get(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, rq.Items, 1)

	_, err = s.Get(context.Background(), 2, 3)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))

	_, err = s.Get(context.Background(), 99, 2)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func ptr[T any](v T) *T { return &v }
