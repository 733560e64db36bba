package out

import "context"

type Gateway interface {
	AddFeedback(ctx context.Context, clientID, sessionID, text string) error
}
