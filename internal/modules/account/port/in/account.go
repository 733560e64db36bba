package in

import (
	"context"

	"kqtrainer/internal/modules/account/dto"
)

type Usecase interface {
	GetUser(ctx context.Context, userID string) (dto.UserOutput, error)
	BeginEdit(ctx context.Context, userID string) (dto.FormOutput, error)
	SetField(field, value string) (dto.FormOutput, error)
	SetActive(active bool) (dto.FormOutput, error)
	Submit(ctx context.Context) (dto.FormOutput, error)
	Discard() error
}
