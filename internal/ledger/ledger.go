// Package ledger wraps the Solana RPC surface the checkout core needs:
// account lookups, SPL token account and mint decoding, blockhash fetch and
// transaction submission. The core depends on the Ledger interface so tests
// can run against an in-memory implementation (see ledgertest).
package ledger

import (
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// ErrAccountNotFound is returned when the requested account does not exist on
// the ledger. Callers that treat absence as a normal outcome (the loyalty NFT
// probe, merchant ATA provisioning) match it with errors.Is.
var ErrAccountNotFound = errors.New("account not found")

// Ledger is the read/submit surface the checkout core uses.
type Ledger interface {
	// AccountExists reports whether a system account exists for the key.
	AccountExists(ctx context.Context, key solana.PublicKey) (bool, error)

	// TokenAccount fetches and decodes an SPL token account.
	// Returns ErrAccountNotFound when the account does not exist.
	TokenAccount(ctx context.Context, address solana.PublicKey) (*token.Account, error)

	// Mint fetches and decodes an SPL mint.
	// Returns ErrAccountNotFound when the mint account does not exist.
	Mint(ctx context.Context, address solana.PublicKey) (*token.Mint, error)

	// LatestBlockhash returns a recent blockhash for transaction assembly.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)

	// Submit broadcasts a signed transaction and returns its signature.
	Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// AssociatedTokenAddress derives the canonical associated token account for
// an (owner, mint) pair.
func AssociatedTokenAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive associated token address: %w", err)
	}
	return ata, nil
}

// RPCLedger implements Ledger against a Solana JSON-RPC endpoint.
type RPCLedger struct {
	client *rpc.Client
}

// NewRPCLedger creates a Ledger backed by the given RPC endpoint.
func NewRPCLedger(endpoint string) *RPCLedger {
	return &RPCLedger{client: rpc.New(endpoint)}
}

func (l *RPCLedger) AccountExists(ctx context.Context, key solana.PublicKey) (bool, error) {
	_, err := l.client.GetAccountInfo(ctx, key)
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get account %s: %w", key, err)
	}
	return true, nil
}

func (l *RPCLedger) TokenAccount(ctx context.Context, address solana.PublicKey) (*token.Account, error) {
	info, err := l.client.GetAccountInfo(ctx, address)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("token account %s: %w", address, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get token account %s: %w", address, err)
	}

	var account token.Account
	if err := bin.NewBinDecoder(info.Value.Data.GetBinary()).Decode(&account); err != nil {
		return nil, fmt.Errorf("decode token account %s: %w", address, err)
	}
	return &account, nil
}

func (l *RPCLedger) Mint(ctx context.Context, address solana.PublicKey) (*token.Mint, error) {
	info, err := l.client.GetAccountInfo(ctx, address)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("mint %s: %w", address, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get mint %s: %w", address, err)
	}

	var mint token.Mint
	if err := bin.NewBinDecoder(info.Value.Data.GetBinary()).Decode(&mint); err != nil {
		return nil, fmt.Errorf("decode mint %s: %w", address, err)
	}
	return &mint, nil
}

func (l *RPCLedger) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := l.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	return out.Value.Blockhash, nil
}

func (l *RPCLedger) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := l.client.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}
	return sig, nil
}
