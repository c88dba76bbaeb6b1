package provider

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/config"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/clippay/settlement-engine/pkg/httpclient"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type HTTPScoreClient struct {
	httpClient *httpclient.Client
}

func NewHTTPScoreClient(cfg config.ScoreProviderConfig) (*HTTPScoreClient, error) {
	httpClient, err := httpclient.New(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &HTTPScoreClient{httpClient: httpClient}, nil
}

type userScoreResponse struct {
	Result struct {
		Score int64 `json:"score"`
	} `json:"result"`
}

func (c *HTTPScoreClient) CurrentScore(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/users/"+userID.String()+"/score", httpclient.RequestOptions{})
	if err != nil {
		return 0, false, errors.Wrap(errs.ExternalService, err.Error())
	}
	// An unscored user is a normal outcome, not a provider failure.
	if resp.StatusCode() == 404 {
		return 0, false, nil
	}
	if resp.StatusCode() >= 400 {
		return 0, false, errors.Wrapf(errs.ExternalService, "score provider returned status %d", resp.StatusCode())
	}

	var body userScoreResponse
	if err := resp.UnmarshalBody(&body); err != nil {
		return 0, false, errors.Wrap(err, "can't unmarshal score response")
	}
	if body.Result.Score < 0 || body.Result.Score > payout.MaxScore {
		return 0, false, errors.Wrapf(errs.ExternalService, "score provider returned out-of-range score %d", body.Result.Score)
	}
	return body.Result.Score, true, nil
}
