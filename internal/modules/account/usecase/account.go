package usecase

import (
	"context"

	"kqtrainer/internal/modules/account/domain"
	"kqtrainer/internal/modules/account/dto"
	accountin "kqtrainer/internal/modules/account/port/in"
	"kqtrainer/internal/modules/account/service"
)

type Interactor struct {
	svc *service.AccountService
}

func NewInteractor(svc *service.AccountService) accountin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) GetUser(ctx context.Context, userID string) (dto.UserOutput, error) {
	user, err := i.svc.GetUser(ctx, userID)
	if err != nil {
		return dto.UserOutput{}, err
	}
	return userToOutput(user), nil
}

func (i *Interactor) BeginEdit(ctx context.Context, userID string) (dto.FormOutput, error) {
	form, err := i.svc.BeginEdit(ctx, userID)
	if err != nil {
		return dto.FormOutput{}, err
	}
	return formToOutput(form), nil
}

func (i *Interactor) SetField(field, value string) (dto.FormOutput, error) {
	form, err := i.svc.Form()
	if err != nil {
		return dto.FormOutput{}, err
	}
	form.SetField(domain.Field(field), value)
	return formToOutput(form), nil
}

func (i *Interactor) SetActive(active bool) (dto.FormOutput, error) {
	form, err := i.svc.Form()
	if err != nil {
		return dto.FormOutput{}, err
	}
	form.SetActive(active)
	return formToOutput(form), nil
}

func (i *Interactor) Submit(ctx context.Context) (dto.FormOutput, error) {
	form, user, err := i.svc.Submit(ctx)
	if err != nil {
		if form != nil {
			return formToOutput(form), err
		}
		return dto.FormOutput{}, err
	}
	// Closed form: report the saved values back.
	return dto.FormOutput{
		UserID:    user.UserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CanSubmit: false,
	}, nil
}

func (i *Interactor) Discard() error {
	return i.svc.Discard()
}

func userToOutput(user domain.User) dto.UserOutput {
	return dto.UserOutput{
		UserID:        user.UserID,
		Name:          user.FullName(),
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		Role:          user.Role,
		IsActive:      user.IsActive,
		CreatedAt:     user.CreatedAt,
		TotalWorkouts: user.TotalWorkouts,
	}
}

func formToOutput(form *domain.Form) dto.FormOutput {
	fieldErrors := make(map[string]string)
	for field, message := range form.FieldErrors() {
		fieldErrors[string(field)] = message
	}
	return dto.FormOutput{
		UserID:      form.UserID(),
		FirstName:   form.FirstName(),
		LastName:    form.LastName(),
		Email:       form.Email(),
		IsActive:    form.IsActive(),
		FieldErrors: fieldErrors,
		CanSubmit:   len(fieldErrors) == 0,
	}
}
