package out

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	feedbackout "kqtrainer/internal/modules/feedback/port/out"
	"kqtrainer/internal/platform/httpapi"
)

type HTTPGateway struct {
	api    *httpapi.Client
	logger *zap.Logger
}

func NewHTTPGateway(api *httpapi.Client, logger *zap.Logger) feedbackout.Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{api: api, logger: logger}
}

func (g *HTTPGateway) AddFeedback(ctx context.Context, clientID, sessionID, text string) error {
	body := map[string]string{
		"session_id": sessionID,
		"feedback":   text,
	}
	path := fmt.Sprintf("trainer/clients/%s/feedback", clientID)
	if err := g.api.Post(ctx, path, body, nil); err != nil {
		return err
	}
	g.logger.Info("feedback submitted",
		zap.String("client_id", clientID),
		zap.String("session_id", sessionID))
	return nil
}
