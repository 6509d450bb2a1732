package checkout

import (
	"context"
	"errors"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/Lukey372/hackatum-solana-challenge/internal/ledger"
)

// validatedTransfer is the snapshot the instruction builder consumes. Amount
// and decimals in the built instruction always come from the same validation
// pass, never from the client.
type validatedTransfer struct {
	Source      solana.PublicKey
	Destination solana.PublicKey
	Decimals    uint8
}

// validateTransfer confirms that a transfer of amount units of mint from
// payer to payee is possible. Checks run in a fixed order and short-circuit
// on the first failure. On the purchase leg payer is the customer and payee
// the merchant; the reward leg swaps the roles and reuses the same checks.
//
// The payee's associated account is created when absent, fee paid by the
// merchant's operational key.
func (s *Service) validateTransfer(ctx context.Context, payer, payee, mint solana.PublicKey, amount uint64) (*validatedTransfer, error) {
	exists, err := s.ledger.AccountExists(ctx, payer)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	sourceATA, err := ledger.AssociatedTokenAddress(payer, mint)
	if err != nil {
		return nil, err
	}
	source, err := s.ledger.TokenAccount(ctx, sourceATA)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return nil, fail(ErrCustomerAccountNotInitialized, err)
	}
	if err != nil {
		return nil, err
	}
	if source.State == token.Uninitialized {
		return nil, ErrCustomerAccountNotInitialized
	}
	if source.State == token.Frozen {
		return nil, ErrCustomerAccountFrozen
	}

	destinationATA, err := ledger.AssociatedTokenAddress(payee, mint)
	if err != nil {
		return nil, err
	}
	destination, err := s.ledger.TokenAccount(ctx, destinationATA)
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		if err := s.provisionTokenAccount(ctx, payee, mint); err != nil {
			return nil, fail(ErrMerchantAccountCreationFailed, err)
		}
		// A freshly created associated account is initialized, unfrozen
		// and empty; no refetch needed.
	case err != nil:
		return nil, err
	case destination.State == token.Uninitialized:
		return nil, ErrMerchantAccountNotInitialized
	case destination.State == token.Frozen:
		return nil, ErrMerchantAccountFrozen
	}

	mintInfo, err := s.ledger.Mint(ctx, mint)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return nil, fail(ErrMintNotInitialized, err)
	}
	if err != nil {
		return nil, err
	}
	if !mintInfo.IsInitialized {
		return nil, ErrMintNotInitialized
	}

	if source.Amount < amount {
		return nil, ErrInsufficientFunds
	}

	return &validatedTransfer{
		Source:      sourceATA,
		Destination: destinationATA,
		Decimals:    mintInfo.Decimals,
	}, nil
}

// provisionTokenAccount creates the associated token account for
// (owner, mint), fee paid and signed by the merchant's operational key.
func (s *Service) provisionTokenAccount(ctx context.Context, owner, mint solana.PublicKey) error {
	ix, err := associatedtokenaccount.NewCreateInstruction(s.signer.PublicKey(), owner, mint).ValidateAndBuild()
	if err != nil {
		return fmt.Errorf("build create account instruction: %w", err)
	}

	recent, err := s.ledger.LatestBlockhash(ctx)
	if err != nil {
		return err
	}

	tx, err := assembleTransaction([]solana.Instruction{ix}, recent, s.signer.PublicKey())
	if err != nil {
		return err
	}
	if err := s.signer.SignTransaction(tx); err != nil {
		return err
	}

	if _, err := s.ledger.Submit(ctx, tx); err != nil {
		return fmt.Errorf("submit create account transaction: %w", err)
	}
	return nil
}
