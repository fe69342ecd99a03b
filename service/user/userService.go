package usersvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/database"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, req model.UserCreate) (*model.User, error)
	Update(ctx context.Context, id int64, req model.UserPatch) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ ur Repo }

func New(ur Repo) Service { return &service{ur} }

func (s *service) Create(ctx context.Context, req model.UserCreate) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return nil, apperr.Validation("user name must not be blank")
	}
	if err := checkEmail(email); err != nil {
		return nil, err
	}

	u := &model.User{Name: name, Email: email}
	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err, email); derr != nil {
			return nil, derr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, req model.UserPatch) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := checkEmail(email); err != nil {
			return nil, err
		}
		u.Email = email
	}

	if err := s.ur.Update(ctx, u); err != nil {
		if derr := mapDuplicateErr(err, u.Email); derr != nil {
			return nil, derr
		}
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("user id=%d not found", id)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("user id=%d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.ur.List(ctx)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.ur.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("user id=%d not found", id)
	}
	return err
}

func checkEmail(email string) error {
	if email == "" {
		return apperr.Validation("user email must not be blank")
	}
	if !strings.Contains(email, "@") {
		return apperr.Validation("invalid email %q", email)
	}
	return nil
}

func mapDuplicateErr(err error, email string) error {

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return apperr.Conflict("user with email %q already exists", email)
		}
		return apperr.Conflict("user already exists")
	}

	return nil
}
