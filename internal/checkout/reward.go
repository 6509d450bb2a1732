package checkout

import (
	"context"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

const rewardTimeout = 30 * time.Second

// IssueReward transfers exactly one loyalty NFT from the merchant to the
// customer, creating the customer's associated account first when absent.
// The transaction is signed with the merchant's operational key and
// submitted immediately.
//
// This is a best-effort side transaction: it runs detached from the request
// that triggered it, and any failure is logged, never surfaced to the
// customer. The caller must have decided to issue the reward strictly within
// its own request.
func (s *Service) IssueReward(customer solana.PublicKey, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), rewardTimeout)
	defer cancel()

	validated, err := s.validateTransfer(ctx, s.merchant, customer, s.nftMint, 1)
	if err != nil {
		log.Warn("reward issuance skipped", zap.Error(err))
		return
	}

	ix, reference, err := buildTransferInstruction(validated.Source, s.nftMint, validated.Destination, s.merchant, 1, validated.Decimals)
	if err != nil {
		log.Warn("reward issuance failed", zap.Error(err))
		return
	}

	recent, err := s.ledger.LatestBlockhash(ctx)
	if err != nil {
		log.Warn("reward issuance failed", zap.Error(err))
		return
	}

	tx, err := assembleTransaction([]solana.Instruction{ix}, recent, s.merchant)
	if err != nil {
		log.Warn("reward issuance failed", zap.Error(err))
		return
	}
	if err := s.signer.SignTransaction(tx); err != nil {
		log.Warn("reward issuance failed", zap.Error(err))
		return
	}

	sig, err := s.ledger.Submit(ctx, tx)
	if err != nil {
		log.Warn("reward issuance failed", zap.Error(err))
		return
	}
	log.Info("sent reward NFT to customer",
		zap.Stringer("signature", sig),
		zap.Stringer("reference", reference),
	)
}
