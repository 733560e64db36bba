package usecase

import (
	"context"

	"kqtrainer/internal/modules/feedback/domain"
	"kqtrainer/internal/modules/feedback/dto"
	feedbackin "kqtrainer/internal/modules/feedback/port/in"
	"kqtrainer/internal/modules/feedback/service"
)

type Interactor struct {
	svc *service.FeedbackService
}

func NewInteractor(svc *service.FeedbackService) feedbackin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Begin(clientID string, sessions []dto.SessionRefInput) dto.ComposerOutput {
	refs := make([]domain.SessionRef, 0, len(sessions))
	for _, s := range sessions {
		refs = append(refs, domain.SessionRef{SessionID: s.SessionID, Label: s.Label})
	}
	return composerToOutput(i.svc.Begin(clientID, refs))
}

func (i *Interactor) SelectSession(sessionID string) (dto.ComposerOutput, error) {
	composer, err := i.svc.Composer()
	if err != nil {
		return dto.ComposerOutput{}, err
	}
	if err := composer.SelectSession(sessionID); err != nil {
		return composerToOutput(composer), err
	}
	return composerToOutput(composer), nil
}

func (i *Interactor) SetText(text string) (dto.ComposerOutput, error) {
	composer, err := i.svc.Composer()
	if err != nil {
		return dto.ComposerOutput{}, err
	}
	composer.SetText(text)
	return composerToOutput(composer), nil
}

func (i *Interactor) ApplyTemplate(idx int) (dto.ComposerOutput, error) {
	composer, err := i.svc.Composer()
	if err != nil {
		return dto.ComposerOutput{}, err
	}
	if err := composer.ApplyTemplate(idx); err != nil {
		return composerToOutput(composer), err
	}
	return composerToOutput(composer), nil
}

func (i *Interactor) Templates() []string {
	return domain.Templates[:]
}

func (i *Interactor) Submit(ctx context.Context) (dto.ComposerOutput, error) {
	composer, err := i.svc.Submit(ctx)
	if composer == nil {
		return dto.ComposerOutput{}, err
	}
	return composerToOutput(composer), err
}

func composerToOutput(c *domain.Composer) dto.ComposerOutput {
	sessions := make([]dto.SessionRefInput, 0, len(c.Sessions()))
	for _, s := range c.Sessions() {
		sessions = append(sessions, dto.SessionRefInput{SessionID: s.SessionID, Label: s.Label})
	}
	return dto.ComposerOutput{
		ClientID:        c.ClientID(),
		Sessions:        sessions,
		SelectedSession: c.SelectedSession(),
		Text:            c.Text(),
		CanSubmit:       c.Validate() == nil,
	}
}
