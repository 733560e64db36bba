package dto

type SessionRefInput struct {
	SessionID string
	Label     string
}

// ComposerOutput is the rendered draft state of the feedback form.
type ComposerOutput struct {
	ClientID        string
	Sessions        []SessionRefInput
	SelectedSession string
	Text            string
	CanSubmit       bool
}
