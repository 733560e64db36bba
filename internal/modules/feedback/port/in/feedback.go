package in

import (
	"context"

	"kqtrainer/internal/modules/feedback/dto"
)

type Usecase interface {
	Begin(clientID string, sessions []dto.SessionRefInput) dto.ComposerOutput
	SelectSession(sessionID string) (dto.ComposerOutput, error)
	SetText(text string) (dto.ComposerOutput, error)
	ApplyTemplate(idx int) (dto.ComposerOutput, error)
	Templates() []string
	Submit(ctx context.Context) (dto.ComposerOutput, error)
}
