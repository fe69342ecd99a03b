package model

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserCreate represents the signup payload
// swagger:model UserCreate
type UserCreate struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UserPatch carries a partial update; nil fields are left unchanged.
// swagger:model UserPatch
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}
