package provider

import (
	"context"
	"net/url"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/config"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/clippay/settlement-engine/pkg/httpclient"
	"github.com/cockroachdb/errors"
)

type HTTPMetricsClient struct {
	httpClient *httpclient.Client
}

func NewHTTPMetricsClient(cfg config.MetricsProviderConfig) (*HTTPMetricsClient, error) {
	httpClient, err := httpclient.New(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &HTTPMetricsClient{httpClient: httpClient}, nil
}

type postMetricsResponse struct {
	Result struct {
		ViewCount    int64 `json:"viewCount"`
		LikeCount    int64 `json:"likeCount"`
		RetweetCount int64 `json:"retweetCount"`
		CommentCount int64 `json:"commentCount"`
	} `json:"result"`
}

func (c *HTTPMetricsClient) FetchMetrics(ctx context.Context, postRef string) (payout.Metrics, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/posts/metrics", httpclient.RequestOptions{
		Query: url.Values{"post": []string{postRef}},
	})
	if err != nil {
		return payout.Metrics{}, errors.Wrap(errs.ExternalService, err.Error())
	}
	if resp.StatusCode() == 404 {
		return payout.Metrics{}, errors.Wrapf(errs.NotFound, "post %q not found on platform", postRef)
	}
	if resp.StatusCode() >= 400 {
		return payout.Metrics{}, errors.Wrapf(errs.ExternalService, "metrics provider returned status %d", resp.StatusCode())
	}

	var body postMetricsResponse
	if err := resp.UnmarshalBody(&body); err != nil {
		return payout.Metrics{}, errors.Wrap(err, "can't unmarshal metrics response")
	}
	return payout.Metrics{
		ViewCount:    body.Result.ViewCount,
		LikeCount:    body.Result.LikeCount,
		RetweetCount: body.Result.RetweetCount,
		CommentCount: body.Result.CommentCount,
	}, nil
}
