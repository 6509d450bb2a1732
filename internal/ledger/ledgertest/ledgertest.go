// Package ledgertest provides an in-memory Ledger implementation for tests.
package ledgertest

import (
	"context"
	"fmt"
	"sync"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/Lukey372/hackatum-solana-challenge/internal/ledger"
)

// Fake is an in-memory ledger. Zero value is usable; populate it with the
// Set* helpers. All methods are safe for concurrent use so tests can observe
// fire-and-forget submissions.
type Fake struct {
	mu sync.Mutex

	systemAccounts map[solana.PublicKey]bool
	tokenAccounts  map[solana.PublicKey]token.Account
	mints          map[solana.PublicKey]token.Mint
	blockhash      solana.Hash

	// Error injection. When set, the corresponding method fails for the
	// given key (or unconditionally for SubmitErr / BlockhashErr).
	TokenAccountErr map[solana.PublicKey]error
	MintErr         map[solana.PublicKey]error
	SubmitErr       error
	BlockhashErr    error

	submitted []*solana.Transaction
}

// New returns an empty fake ledger with a fixed non-zero blockhash.
func New() *Fake {
	var bh solana.Hash
	copy(bh[:], []byte("ledgertest-recent-blockhash-0001"))
	return &Fake{
		systemAccounts: make(map[solana.PublicKey]bool),
		tokenAccounts:  make(map[solana.PublicKey]token.Account),
		mints:          make(map[solana.PublicKey]token.Mint),
		blockhash:      bh,
	}
}

// SetSystemAccount marks key as an existing system account.
func (f *Fake) SetSystemAccount(key solana.PublicKey) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systemAccounts[key] = true
}

// SetTokenAccount installs a token account at the given address.
func (f *Fake) SetTokenAccount(address solana.PublicKey, account token.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenAccounts[address] = account
}

// SetMint installs a mint at the given address.
func (f *Fake) SetMint(address solana.PublicKey, mint token.Mint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mints[address] = mint
}

// Submitted returns a snapshot of all transactions submitted so far.
func (f *Fake) Submitted() []*solana.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*solana.Transaction, len(f.submitted))
	copy(out, f.submitted)
	return out
}

func (f *Fake) AccountExists(ctx context.Context, key solana.PublicKey) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.systemAccounts[key], nil
}

func (f *Fake) TokenAccount(ctx context.Context, address solana.PublicKey) (*token.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.TokenAccountErr[address]; ok {
		return nil, err
	}
	account, ok := f.tokenAccounts[address]
	if !ok {
		return nil, fmt.Errorf("token account %s: %w", address, ledger.ErrAccountNotFound)
	}
	return &account, nil
}

func (f *Fake) Mint(ctx context.Context, address solana.PublicKey) (*token.Mint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.MintErr[address]; ok {
		return nil, err
	}
	mint, ok := f.mints[address]
	if !ok {
		return nil, fmt.Errorf("mint %s: %w", address, ledger.ErrAccountNotFound)
	}
	return &mint, nil
}

func (f *Fake) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BlockhashErr != nil {
		return solana.Hash{}, f.BlockhashErr
	}
	return f.blockhash, nil
}

func (f *Fake) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SubmitErr != nil {
		return solana.Signature{}, f.SubmitErr
	}
	f.submitted = append(f.submitted, tx)
	var sig solana.Signature
	sig[0] = byte(len(f.submitted))
	return sig, nil
}

var _ ledger.Ledger = (*Fake)(nil)
