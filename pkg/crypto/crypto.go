package crypto

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"

	"github.com/clippay/settlement-engine/pkg/solrpc"
	"github.com/cockroachdb/errors"
	"github.com/mr-tron/base58"
)

// Client signs chain transactions with a locally held ed25519 keypair.
type Client struct {
	privateKey ed25519.PrivateKey
}

// New creates a signing client from a base58-encoded ed25519 private key.
// Both the 64-byte expanded form and the 32-byte seed are accepted. An empty
// key returns a client that can only verify.
func New(privateKeyStr string) (*Client, error) {
	if privateKeyStr != "" {
		privateKeyBytes, err := base58.Decode(privateKeyStr)
		if err != nil {
			return nil, errors.Wrap(err, "decode private key")
		}
		switch len(privateKeyBytes) {
		case ed25519.PrivateKeySize:
			return &Client{privateKey: ed25519.PrivateKey(privateKeyBytes)}, nil
		case ed25519.SeedSize:
			return &Client{privateKey: ed25519.NewKeyFromSeed(privateKeyBytes)}, nil
		default:
			return nil, errors.Errorf("invalid private key length %d", len(privateKeyBytes))
		}
	}
	return &Client{}, nil
}

// GenerateKeypair returns a new base58-encoded private/public keypair.
func GenerateKeypair() (privateKey string, publicKey string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", errors.Wrap(err, "generate keypair")
	}
	return base58.Encode(priv), base58.Encode(pub), nil
}

// PublicKey returns the signer's base58-encoded public key. Empty for a
// verify-only client.
func (c *Client) PublicKey() string {
	if c.privateKey == nil {
		return ""
	}
	return base58.Encode(c.privateKey.Public().(ed25519.PublicKey))
}

func (c *Client) Sign(message []byte) string {
	signature := ed25519.Sign(c.privateKey, message)
	return base58.Encode(signature)
}

func Verify(message []byte, sigStr, pubKeyStr string) (bool, error) {
	sigBytes, err := base58.Decode(sigStr)
	if err != nil {
		return false, errors.Wrap(err, "signature decode")
	}
	pubBytes, err := base58.Decode(pubKeyStr)
	if err != nil {
		return false, errors.Wrap(err, "pubkey decode")
	}
	if len(pubBytes) != ed25519.PublicKeySize {
		return false, errors.Errorf("invalid public key length %d", len(pubBytes))
	}
	return ed25519.Verify(ed25519.PublicKey(pubBytes), message, sigBytes), nil
}

type signedTransaction struct {
	Message    json.RawMessage `json:"message"`
	PublicKey  string          `json:"publicKey"`
	Signature  string          `json:"signature"`
	Serializer string          `json:"serializer"`
}

// SignTransaction serializes the transaction, signs it and returns the signed
// envelope in the gateway wire format expected by SendRawTransaction.
func (c *Client) SignTransaction(_ context.Context, tx *solrpc.Transaction) ([]byte, error) {
	if c.privateKey == nil {
		return nil, errors.New("client has no private key")
	}
	message, err := json.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(err, "serialize transaction")
	}
	envelope := signedTransaction{
		Message:    message,
		PublicKey:  c.PublicKey(),
		Signature:  c.Sign(message),
		Serializer: "json-v1",
	}
	signedTx, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.Wrap(err, "serialize signed transaction")
	}
	return signedTx, nil
}
