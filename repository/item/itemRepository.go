package itemrepo

import (
	"context"
	"errors"

	"shareit/model"
	"shareit/util/database"
	"shareit/util/page"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
)

const dialect = "postgres"

var itemCols = []any{"id", "name", "description", "available", "owner_id", "request_id"}

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Item, error)
	Search(ctx context.Context, text string, p page.Page) ([]model.Item, error)
	ExistsMatching(ctx context.Context, text string) (bool, error)
	ByRequestIDs(ctx context.Context, ids []int64) (map[int64][]model.Item, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (model.Item, error) {
	var it model.Item
	err := s.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID)
	return it, err
}

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	const q = `
INSERT INTO items (name, description, available, owner_id, request_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	return r.db.Pool.QueryRow(ctx, q, it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).Scan(&it.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE id = $1`
	it, err := scanItem(r.db.Pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Update writes the mutable columns. Owner and request links are never touched.
func (r *repo) Update(ctx context.Context, it *model.Item) error {
	const q = `
UPDATE items
SET name = $2, description = $3, available = $4
WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q, it.ID, it.Name, it.Description, it.Available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Item, error) {
	q, args, err := goqu.Dialect(dialect).
		From("items").
		Select(itemCols...).
		Where(goqu.C("owner_id").Eq(ownerID)).
		Order(goqu.C("id").Asc()).
		Offset(uint(p.Offset)).
		Limit(uint(p.Limit)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}
	return r.list(ctx, q, args...)
}

func (r *repo) Search(ctx context.Context, text string, p page.Page) ([]model.Item, error) {
	q, args, err := searchQuery(text, p)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, q, args...)
}

// searchQuery matches available items whose name or description contains
// text, ignoring case.
func searchQuery(text string, p page.Page) (string, []any, error) {
	return goqu.Dialect(dialect).
		From("items").
		Select(itemCols...).
		Where(
			textMatch(text),
			goqu.C("available").IsTrue(),
		).
		Order(goqu.C("id").Asc()).
		Offset(uint(p.Offset)).
		Limit(uint(p.Limit)).
		Prepared(true).
		ToSQL()
}

func textMatch(text string) goqu.Expression {
	pattern := "%" + text + "%"
	return goqu.Or(
		goqu.C("name").ILike(pattern),
		goqu.C("description").ILike(pattern),
	)
}

// ExistsMatching reports whether any item, available or not, has text in
// its name or description.
func (r *repo) ExistsMatching(ctx context.Context, text string) (bool, error) {
	q, args, err := goqu.Dialect(dialect).
		From("items").
		Select("id").
		Where(textMatch(text)).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, err
	}
	var id int64
	err = r.db.Pool.QueryRow(ctx, q, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ByRequestIDs groups the items that fulfil each of the given requests.
func (r *repo) ByRequestIDs(ctx context.Context, ids []int64) (map[int64][]model.Item, error) {
	out := make(map[int64][]model.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE request_id = ANY($1)
ORDER BY id`
	items, err := r.list(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		out[*it.RequestID] = append(out[*it.RequestID], it)
	}
	return out, nil
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
