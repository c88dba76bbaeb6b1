package provider

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clippay/settlement-engine/modules/settlement/config"
	"github.com/clippay/settlement-engine/pkg/httpclient"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type HTTPNotifier struct {
	httpClient *httpclient.Client
	disabled   bool
}

func NewHTTPNotifier(cfg config.NotifierConfig) (*HTTPNotifier, error) {
	if cfg.Disabled {
		return &HTTPNotifier{disabled: true}, nil
	}
	httpClient, err := httpclient.New(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &HTTPNotifier{httpClient: httpClient}, nil
}

type notifyPayload struct {
	UserID  uuid.UUID      `json:"userId"`
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Notify delivers the notification in a detached goroutine. Settlement
// outcomes are already committed by the time this is called, so delivery
// failures are logged and dropped rather than propagated.
func (n *HTTPNotifier) Notify(ctx context.Context, userID uuid.UUID, kind NotificationKind, payload map[string]any) {
	if n.disabled {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		body, err := json.Marshal(notifyPayload{UserID: userID, Kind: string(kind), Payload: payload})
		if err != nil {
			logger.WarnContext(ctx, "can't marshal notification payload", slogx.Error(err))
			return
		}
		resp, err := n.httpClient.Post(ctx, "/v1/notifications", httpclient.RequestOptions{
			Body: body,
		})
		if err != nil {
			logger.WarnContext(ctx, "failed to deliver notification",
				slogx.Error(err),
				slogx.String("kind", string(kind)),
				slogx.Stringer("userId", userID),
			)
			return
		}
		if resp.StatusCode() >= 400 {
			logger.WarnContext(ctx, "notification rejected by notifier service",
				slogx.Int("status", resp.StatusCode()),
				slogx.String("kind", string(kind)),
				slogx.Stringer("userId", userID),
			)
		}
	}()
}
