package in

import (
	"context"

	"kqtrainer/internal/modules/account/dto"
	accountin "kqtrainer/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, userID string) (dto.UserOutput, error) {
	return h.usecase.GetUser(ctx, userID)
}

// Update applies the given field changes in one shot. Empty values mean
// "leave as loaded".
func (h CLIHandler) Update(ctx context.Context, userID string, fields map[string]string, active *bool) (dto.FormOutput, error) {
	if _, err := h.usecase.BeginEdit(ctx, userID); err != nil {
		return dto.FormOutput{}, err
	}
	for field, value := range fields {
		if value == "" {
			continue
		}
		if _, err := h.usecase.SetField(field, value); err != nil {
			return dto.FormOutput{}, err
		}
	}
	if active != nil {
		if _, err := h.usecase.SetActive(*active); err != nil {
			return dto.FormOutput{}, err
		}
	}
	return h.usecase.Submit(ctx)
}
