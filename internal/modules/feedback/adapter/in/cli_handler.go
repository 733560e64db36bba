package in

import (
	"context"

	"kqtrainer/internal/modules/feedback/dto"
	feedbackin "kqtrainer/internal/modules/feedback/port/in"
)

type CLIHandler struct {
	usecase feedbackin.Usecase
}

func NewCLIHandler(usecase feedbackin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Send is the one-shot CLI path: seed a draft with the single session,
// select it, set the text, and submit.
func (h CLIHandler) Send(ctx context.Context, clientID, sessionID, text string) error {
	h.usecase.Begin(clientID, []dto.SessionRefInput{{SessionID: sessionID}})
	if _, err := h.usecase.SelectSession(sessionID); err != nil {
		return err
	}
	if _, err := h.usecase.SetText(text); err != nil {
		return err
	}
	_, err := h.usecase.Submit(ctx)
	return err
}

func (h CLIHandler) Templates() []string {
	return h.usecase.Templates()
}
