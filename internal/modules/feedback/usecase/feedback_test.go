package usecase_test

import (
	"context"
	"errors"
	"testing"

	"kqtrainer/internal/modules/feedback/dto"
	feedbackin "kqtrainer/internal/modules/feedback/port/in"
	"kqtrainer/internal/modules/feedback/service"
	"kqtrainer/internal/modules/feedback/usecase"
	apperrors "kqtrainer/internal/platform/errors"
)

type fakeGateway struct {
	err   error
	calls int

	lastClient  string
	lastSession string
	lastText    string
}

func (f *fakeGateway) AddFeedback(_ context.Context, clientID, sessionID, text string) error {
	f.calls++
	f.lastClient = clientID
	f.lastSession = sessionID
	f.lastText = text
	return f.err
}

func newComposer(gw *fakeGateway) feedbackin.Usecase {
	uc := usecase.NewInteractor(service.NewFeedbackService(gw))
	uc.Begin("u1", []dto.SessionRefInput{
		{SessionID: "s1", Label: "Mon session"},
		{SessionID: "s2", Label: "Wed session"},
	})
	return uc
}

func TestSubmitRejectsBadDraftsBeforeGateway(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		session string
		text    string
		want    error
	}{
		{"no selection", "", "solid effort", apperrors.ErrNoSessionSelected},
		{"empty text", "s1", "", apperrors.ErrFeedbackEmpty},
		{"whitespace text", "s1", "   \n\t", apperrors.ErrFeedbackEmpty},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gw := &fakeGateway{}
			uc := newComposer(gw)
			if tc.session != "" {
				if _, err := uc.SelectSession(tc.session); err != nil {
					t.Fatalf("select: %v", err)
				}
			}
			if _, err := uc.SetText(tc.text); err != nil {
				t.Fatalf("set text: %v", err)
			}
			if _, err := uc.Submit(context.Background()); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if gw.calls != 0 {
				t.Fatalf("gateway must not be called for an invalid draft")
			}
		})
	}
}

func TestSubmitSuccessResetsDraft(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := newComposer(gw)
	if _, err := uc.SelectSession("s2"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := uc.SetText("nice depth on the squats"); err != nil {
		t.Fatalf("set text: %v", err)
	}

	out, err := uc.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gw.calls != 1 || gw.lastClient != "u1" || gw.lastSession != "s2" || gw.lastText != "nice depth on the squats" {
		t.Fatalf("gateway got wrong submission: %+v", gw)
	}
	if out.Text != "" || out.SelectedSession != "" {
		t.Fatalf("draft must reset after success: %+v", out)
	}
	if len(out.Sessions) != 2 {
		t.Fatalf("session list must survive the reset: %+v", out.Sessions)
	}
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{err: errors.New("Client not assigned to you")}
	uc := newComposer(gw)
	if _, err := uc.SelectSession("s1"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := uc.SetText("keep the elbows tucked"); err != nil {
		t.Fatalf("set text: %v", err)
	}

	out, err := uc.Submit(context.Background())
	if err == nil || err.Error() != "Client not assigned to you" {
		t.Fatalf("expected gateway error verbatim, got %v", err)
	}
	if out.Text != "keep the elbows tucked" || out.SelectedSession != "s1" {
		t.Fatalf("draft must survive a failed submit: %+v", out)
	}
}

func TestTemplatesPreFillButStayEditable(t *testing.T) {
	t.Parallel()
	uc := newComposer(&fakeGateway{})
	templates := uc.Templates()
	if len(templates) != 4 {
		t.Fatalf("expected 4 templates, got %d", len(templates))
	}
	out, err := uc.ApplyTemplate(1)
	if err != nil {
		t.Fatalf("apply template: %v", err)
	}
	if out.Text != templates[1] {
		t.Fatalf("template not applied: %q", out.Text)
	}
	out, err = uc.SetText(out.Text + " Also add one warm-up set.")
	if err != nil {
		t.Fatalf("edit after template: %v", err)
	}
	if out.Text == templates[1] {
		t.Fatalf("text must stay editable after template insertion")
	}
	if _, err := uc.ApplyTemplate(9); err == nil {
		t.Fatalf("out-of-range template must fail")
	}
}

func TestSelectingUnknownSessionFails(t *testing.T) {
	t.Parallel()
	uc := newComposer(&fakeGateway{})
	if _, err := uc.SelectSession("nope"); err == nil {
		t.Fatalf("unknown session must be rejected")
	}
}
