package model

import "time"

// ItemRequest is a user's request for an item nobody lists yet.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`
	Items       []Item    `json:"items"`
}

// swagger:model RequestCreate
type RequestCreate struct {
	Description string `json:"description"`
}
