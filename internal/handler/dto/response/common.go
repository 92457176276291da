package response

import (
	"shop-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

type DeleteResponse struct {
	ID      uuid.UUID `json:"id"`
	Mode    string    `json:"mode"`
	Message string    `json:"message"`
}

func FromDeleteResult(what string, r *commands.DeleteResult) DeleteResponse {
	msg := what + " deleted"
	if r.Mode == commands.DeleteModeSoft {
		msg = what + " deactivated because reservations still reference it"
	}
	return DeleteResponse{
		ID:      r.ID,
		Mode:    string(r.Mode),
		Message: msg,
	}
}
