package solrpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/pkg/httpclient"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
)

const (
	DefaultConfirmRetries  = 30
	defaultConfirmInterval = 2 * time.Second
)

var _ Contract = (*Client)(nil)

// Client talks to a chain node over JSON-RPC.
type Client struct {
	httpClient      *httpclient.Client
	confirmRetries  int
	confirmInterval time.Duration
}

type Option func(*Client)

// WithConfirmRetries bounds confirmation polling attempts.
func WithConfirmRetries(retries int) Option {
	return func(c *Client) {
		if retries > 0 {
			c.confirmRetries = retries
		}
	}
}

func New(endpoint string, opts ...Option) (*Client, error) {
	httpClient, err := httpclient.New(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	client := &Client{
		httpClient:      httpClient,
		confirmRetries:  DefaultConfirmRetries,
		confirmInterval: defaultConfirmInterval,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrap(err, "can't marshal rpc request")
	}
	resp, err := c.httpClient.Post(ctx, "", httpclient.RequestOptions{Body: body})
	if err != nil {
		return errors.Wrapf(errs.ExternalService, "rpc request %q failed: %s", method, err)
	}
	if resp.StatusCode() >= 400 {
		return errors.Wrapf(errs.ExternalService, "rpc request %q returned status %d", method, resp.StatusCode())
	}
	var rpcResp rpcResponse
	if err := resp.UnmarshalBody(&rpcResp); err != nil {
		return errors.Wrapf(err, "can't unmarshal rpc response of %q", method)
	}
	if rpcResp.Error != nil {
		return errors.Wrapf(errs.ExternalService, "rpc error %d on %q: %s", rpcResp.Error.Code, method, rpcResp.Error.Message)
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return errors.Wrapf(err, "can't unmarshal rpc result of %q", method)
		}
	}
	return nil
}

type getTransactionResult struct {
	Slot        uint64 `json:"slot"`
	Transaction struct {
		Message struct {
			Instructions []ParsedInstruction `json:"instructions"`
		} `json:"message"`
	} `json:"transaction"`
	Meta struct {
		Err               json.RawMessage       `json:"err"`
		InnerInstructions []InnerInstructionSet `json:"innerInstructions"`
	} `json:"meta"`
}

func (c *Client) GetTransaction(ctx context.Context, signature string) (*TransactionResult, error) {
	var result json.RawMessage
	params := []any{signature, map[string]any{
		"encoding":                       "jsonParsed",
		"commitment":                     "confirmed",
		"maxSupportedTransactionVersion": 0,
	}}
	if err := c.call(ctx, "getTransaction", params, &result); err != nil {
		return nil, errors.WithStack(err)
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, errors.Wrapf(errs.NotFound, "transaction %q not found", signature)
	}
	var parsed getTransactionResult
	if err := json.Unmarshal(result, &parsed); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal transaction")
	}
	return &TransactionResult{
		Signature:         signature,
		Slot:              parsed.Slot,
		Err:               parsed.Meta.Err,
		Instructions:      parsed.Transaction.Message.Instructions,
		InnerInstructions: parsed.Meta.InnerInstructions,
	}, nil
}

func (c *Client) SendRawTransaction(ctx context.Context, signedTx []byte) (string, error) {
	var signature string
	params := []any{base64.StdEncoding.EncodeToString(signedTx), map[string]any{
		"encoding":            "base64",
		"preflightCommitment": "confirmed",
	}}
	if err := c.call(ctx, "sendTransaction", params, &signature); err != nil {
		return "", errors.WithStack(err)
	}
	return signature, nil
}

type signatureStatusesResult struct {
	Value []*struct {
		ConfirmationStatus string          `json:"confirmationStatus"`
		Err                json.RawMessage `json:"err"`
	} `json:"value"`
}

func (c *Client) Confirm(ctx context.Context, signature string) error {
	for attempt := 0; attempt < c.confirmRetries; attempt++ {
		var result signatureStatusesResult
		params := []any{[]string{signature}, map[string]any{"searchTransactionHistory": true}}
		if err := c.call(ctx, "getSignatureStatuses", params, &result); err != nil {
			return errors.WithStack(err)
		}
		if len(result.Value) > 0 && result.Value[0] != nil {
			status := result.Value[0]
			if len(status.Err) > 0 && string(status.Err) != "null" {
				return errors.Wrapf(errs.ChainVerification, "transaction %q failed on chain: %s", signature, string(status.Err))
			}
			if status.ConfirmationStatus == "confirmed" || status.ConfirmationStatus == "finalized" {
				return nil
			}
		}
		logger.DebugContext(ctx, "transaction not confirmed yet, retrying", slogx.String("signature", signature), slogx.Int("attempt", attempt+1))
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context done while confirming transaction")
		case <-time.After(c.confirmInterval):
		}
	}
	return errors.Wrapf(errs.ExternalService, "transaction %q not confirmed after %d attempts", signature, c.confirmRetries)
}
