package solrpc

import (
	"encoding/json"
	"strconv"
)

// AccountMeta is one account referenced by an instruction. Order matters: the
// escrow program validates the exact account list of an executed transfer.
type AccountMeta struct {
	Address  string `json:"pubkey"`
	Signer   bool   `json:"isSigner"`
	Writable bool   `json:"isWritable"`
}

// Instruction is a single program invocation inside a transaction.
type Instruction struct {
	ProgramID string        `json:"programId"`
	Accounts  []AccountMeta `json:"accounts"`
	Data      []byte        `json:"data"`
}

// Transaction is an unsigned instruction bundle. All instructions in one
// transaction are applied atomically by the chain: either every step lands or
// none does.
type Transaction struct {
	FeePayer     string
	Instructions []Instruction
}

// ParsedInstruction is an instruction from a confirmed transaction in the
// node's jsonParsed encoding. Parsed is nil for programs the node cannot
// decode.
type ParsedInstruction struct {
	Program   string          `json:"program"`
	ProgramID string          `json:"programId"`
	Parsed    json.RawMessage `json:"parsed"`
}

// TransferDetail is a decoded native or token transfer.
type TransferDetail struct {
	Source      string
	Destination string
	Amount      int64
	// Mint is empty for native transfers.
	Mint string
}

type parsedPayload struct {
	Type string `json:"type"`
	Info struct {
		Source      string `json:"source"`
		Destination string `json:"destination"`
		Lamports    int64  `json:"lamports"`
		Amount      string `json:"amount"`
		Mint        string `json:"mint"`
		TokenAmount struct {
			Amount string `json:"amount"`
		} `json:"tokenAmount"`
	} `json:"info"`
}

// Transfer decodes the instruction as a native or token transfer. It returns
// false for any other instruction type.
func (ix ParsedInstruction) Transfer() (TransferDetail, bool) {
	if len(ix.Parsed) == 0 {
		return TransferDetail{}, false
	}
	var payload parsedPayload
	if err := json.Unmarshal(ix.Parsed, &payload); err != nil {
		return TransferDetail{}, false
	}
	switch payload.Type {
	case "transfer", "transferChecked":
	default:
		return TransferDetail{}, false
	}

	detail := TransferDetail{
		Source:      payload.Info.Source,
		Destination: payload.Info.Destination,
		Mint:        payload.Info.Mint,
	}
	switch {
	case payload.Info.Lamports > 0:
		detail.Amount = payload.Info.Lamports
	case payload.Info.Amount != "":
		amount, err := strconv.ParseInt(payload.Info.Amount, 10, 64)
		if err != nil {
			return TransferDetail{}, false
		}
		detail.Amount = amount
	case payload.Info.TokenAmount.Amount != "":
		amount, err := strconv.ParseInt(payload.Info.TokenAmount.Amount, 10, 64)
		if err != nil {
			return TransferDetail{}, false
		}
		detail.Amount = amount
	}
	return detail, true
}

// InnerInstructionSet is the list of inner instructions produced by the
// top-level instruction at Index. Escrow-executed transfers appear here,
// nested inside the escrow program's own instruction.
type InnerInstructionSet struct {
	Index        int                 `json:"index"`
	Instructions []ParsedInstruction `json:"instructions"`
}

// TransactionResult is a confirmed transaction as reported by the chain.
type TransactionResult struct {
	Signature         string
	Slot              uint64
	Err               json.RawMessage
	Instructions      []ParsedInstruction
	InnerInstructions []InnerInstructionSet
}

// Failed reports whether the transaction landed with an on-chain execution error.
func (t *TransactionResult) Failed() bool {
	return len(t.Err) > 0 && string(t.Err) != "null"
}
