package crypto

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/clippay/settlement-engine/pkg/solrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	message := []byte("hello world")

	privateKey, publicKey, err := GenerateKeypair()
	require.NoError(t, err)

	privClient, err := New(privateKey)
	require.NoError(t, err)
	assert.Equal(t, publicKey, privClient.PublicKey())

	signature := privClient.Sign(message)
	verified, err := Verify(message, signature, publicKey)
	assert.NoError(t, err)
	assert.True(t, verified)

	verified, err = Verify([]byte("tampered message"), signature, publicKey)
	assert.NoError(t, err)
	assert.False(t, verified)

	_, otherPublicKey, err := GenerateKeypair()
	require.NoError(t, err)
	verified, err = Verify(message, signature, otherPublicKey)
	assert.NoError(t, err)
	assert.False(t, verified)
}

func TestNewInvalidKey(t *testing.T) {
	_, err := New("not-base58-0OIl")
	assert.Error(t, err)

	_, err = New("abc")
	assert.Error(t, err)
}

func TestSignTransaction(t *testing.T) {
	privateKey, publicKey, err := GenerateKeypair()
	require.NoError(t, err)
	client, err := New(privateKey)
	require.NoError(t, err)

	tx := &solrpc.Transaction{
		FeePayer: publicKey,
		Instructions: []solrpc.Instruction{
			{ProgramID: "11111111111111111111111111111111", Data: []byte{2, 0, 0, 0}},
		},
	}
	signedTx, err := client.SignTransaction(context.Background(), tx)
	require.NoError(t, err)

	var envelope signedTransaction
	require.NoError(t, json.Unmarshal(signedTx, &envelope))
	assert.Equal(t, publicKey, envelope.PublicKey)

	verified, err := Verify(envelope.Message, envelope.Signature, envelope.PublicKey)
	assert.NoError(t, err)
	assert.True(t, verified)
}

func TestVerifyOnlyClientCannotSign(t *testing.T) {
	client, err := New("")
	require.NoError(t, err)

	_, err = client.SignTransaction(context.Background(), &solrpc.Transaction{})
	assert.Error(t, err)
}
