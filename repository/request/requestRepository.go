package requestrepo

import (
	"context"
	"errors"

	"shareit/model"
	"shareit/util/database"
	"shareit/util/page"

	"github.com/jackc/pgx/v5"
)

type Repo interface {
	Create(ctx context.Context, rq *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	Others(ctx context.Context, userID int64, p page.Page) ([]model.ItemRequest, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, rq *model.ItemRequest) error {
	const q = `
INSERT INTO requests (description, requestor_id, created)
VALUES ($1,$2,$3)
RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, rq.Description, rq.RequestorID, rq.Created).Scan(&rq.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	const q = `
SELECT id, description, requestor_id, created
FROM requests
WHERE id = $1`
	var rq model.ItemRequest
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(&rq.ID, &rq.Description, &rq.RequestorID, &rq.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rq, nil
}

func (r *repo) ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	const q = `
SELECT id, description, requestor_id, created
FROM requests
WHERE requestor_id = $1
ORDER BY created DESC, id DESC`
	return r.list(ctx, q, userID)
}

func (r *repo) Others(ctx context.Context, userID int64, p page.Page) ([]model.ItemRequest, error) {
	const q = `
SELECT id, description, requestor_id, created
FROM requests
WHERE requestor_id <> $1
ORDER BY created DESC, id DESC
LIMIT $2 OFFSET $3`
	return r.list(ctx, q, userID, p.Limit, p.Offset)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.ItemRequest, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ItemRequest{}
	for rows.Next() {
		var rq model.ItemRequest
		if err := rows.Scan(&rq.ID, &rq.Description, &rq.RequestorID, &rq.Created); err != nil {
			return nil, err
		}
		out = append(out, rq)
	}
	return out, rows.Err()
}
