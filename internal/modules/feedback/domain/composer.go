package domain

import (
	"fmt"
	"strings"

	apperrors "kqtrainer/internal/platform/errors"
)

// Templates are quick starting points for common feedback. Inserting one
// replaces the draft text; the trainer keeps editing from there.
var Templates = [4]string{
	"Great work this session! Your form is improving steadily.",
	"Good effort. Focus on controlling the eccentric phase next time.",
	"Watch your rest intervals - shorter breaks will keep intensity up.",
	"Let's adjust the plan for next week based on this session.",
}

// SessionRef identifies one workout session a trainer can attach
// feedback to.
type SessionRef struct {
	SessionID string
	Label     string
}

// Composer is the draft state for one client's feedback: the selectable
// sessions, the chosen session, and the text.
type Composer struct {
	clientID string
	sessions []SessionRef
	selected string
	text     string
}

func NewComposer(clientID string, sessions []SessionRef) *Composer {
	return &Composer{clientID: clientID, sessions: append([]SessionRef(nil), sessions...)}
}

func (c *Composer) ClientID() string        { return c.clientID }
func (c *Composer) Sessions() []SessionRef  { return append([]SessionRef(nil), c.sessions...) }
func (c *Composer) SelectedSession() string { return c.selected }
func (c *Composer) Text() string            { return c.text }

// SelectSession picks one of the listed sessions.
func (c *Composer) SelectSession(sessionID string) error {
	for _, s := range c.sessions {
		if s.SessionID == sessionID {
			c.selected = sessionID
			return nil
		}
	}
	return fmt.Errorf("session %q is not in the list", sessionID)
}

func (c *Composer) SetText(text string) {
	c.text = text
}

// ApplyTemplate pre-fills the draft with one of the fixed templates.
func (c *Composer) ApplyTemplate(idx int) error {
	if idx < 0 || idx >= len(Templates) {
		return fmt.Errorf("template index %d out of range", idx)
	}
	c.text = Templates[idx]
	return nil
}

// Validate enforces the client-side submission rules: a selected session
// and text that is more than whitespace.
func (c *Composer) Validate() error {
	if c.selected == "" {
		return apperrors.ErrNoSessionSelected
	}
	if strings.TrimSpace(c.text) == "" {
		return apperrors.ErrFeedbackEmpty
	}
	return nil
}

// Reset clears text and selection after a successful submit. The session
// list stays; the trainer may want to comment on another session.
func (c *Composer) Reset() {
	c.selected = ""
	c.text = ""
}
