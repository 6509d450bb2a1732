// Package checkout builds unsigned checkout transactions. Per request it
// decides between the fungible token and the loyalty NFT as payment
// instrument, validates the involved accounts, and assembles an SPL
// TransferChecked transaction for the customer's wallet to sign. On the token
// path it also fires a best-effort loyalty NFT reward back to the customer.
package checkout

import (
	"context"

	solana "github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lukey372/hackatum-solana-challenge/internal/config"
	"github.com/Lukey372/hackatum-solana-challenge/internal/ledger"
)

// Result is the payload handed back to the wallet: the unsigned transaction
// in base64 and a confirmation message.
type Result struct {
	Transaction string `json:"transaction"`
	Message     string `json:"message"`
}

// Service orchestrates one checkout per call. It holds no per-request state;
// the payment decision and validated accounts live on the call stack only, so
// concurrent requests cannot leak decisions into each other.
type Service struct {
	ledger   ledger.Ledger
	signer   *ledger.Signer
	log      *zap.Logger
	merchant solana.PublicKey

	tokenMint solana.PublicKey
	nftMint   solana.PublicKey
}

// New creates a checkout service. The signer is the merchant's operational
// key, used only for reward issuance and merchant account provisioning.
func New(l ledger.Ledger, signer *ledger.Signer, merchant, tokenMint, nftMint solana.PublicKey, log *zap.Logger) *Service {
	return &Service{
		ledger:    l,
		signer:    signer,
		log:       log,
		merchant:  merchant,
		tokenMint: tokenMint,
		nftMint:   nftMint,
	}
}

// Checkout handles one checkout request for the given product. It returns the
// unsigned, base64-encoded purchase transaction with the customer as fee
// payer. Reward issuance, when triggered, runs in the background and never
// affects the returned result.
func (s *Service) Checkout(ctx context.Context, product config.Product, account string) (*Result, error) {
	if account == "" {
		return nil, ErrMissingAccount
	}
	customer, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return nil, fail(ErrInvalidAccount, err)
	}

	log := s.log.With(
		zap.String("session", uuid.NewString()),
		zap.String("product", product.Name),
		zap.Stringer("customer", customer),
	)

	decision := s.SelectPaymentMethod(ctx, customer, log)

	mint, amount := s.tokenMint, product.Price
	if decision == PayWithLoyaltyNFT {
		mint, amount = s.nftMint, 1
	}

	validated, err := s.validateTransfer(ctx, customer, s.merchant, mint, amount)
	if err != nil {
		return nil, err
	}

	ix, reference, err := buildTransferInstruction(validated.Source, mint, validated.Destination, customer, amount, validated.Decimals)
	if err != nil {
		return nil, err
	}

	recent, err := s.ledger.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := assembleTransaction([]solana.Instruction{ix}, recent, customer)
	if err != nil {
		return nil, err
	}

	encoded, err := EncodeTransaction(tx)
	if err != nil {
		return nil, err
	}

	log.Info("built checkout transaction",
		zap.Stringer("method", decision),
		zap.Uint64("amount", amount),
		zap.Stringer("reference", reference),
	)

	if decision == PayWithToken && product.RewardEnabled {
		go s.IssueReward(customer, log)
	}

	return &Result{Transaction: encoded, Message: product.Message}, nil
}
