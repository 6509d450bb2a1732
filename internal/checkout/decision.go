package checkout

import (
	"context"
	"errors"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"github.com/Lukey372/hackatum-solana-challenge/internal/ledger"
)

// PaymentDecision is the instrument chosen for one request. It is computed
// once per request and passed by value through the call chain.
type PaymentDecision int

const (
	// PayWithToken pays the configured price in the fungible token.
	PayWithToken PaymentDecision = iota
	// PayWithLoyaltyNFT pays with exactly one loyalty NFT.
	PayWithLoyaltyNFT
)

func (d PaymentDecision) String() string {
	if d == PayWithLoyaltyNFT {
		return "loyalty-nft"
	}
	return "token"
}

// loyaltyProbe is the internal result of looking up the customer's loyalty
// NFT holdings. Only probeHeld selects the NFT path; the others all collapse
// to the token path, but probeFailed stays distinguishable for logging.
type loyaltyProbe int

const (
	probeHeld loyaltyProbe = iota
	probeEmpty
	probeAbsent
	probeFailed
)

// SelectPaymentMethod decides whether the customer pays with the loyalty NFT
// or the fungible token. Absence of the NFT account (or an uninitialized
// account or mint) is the expected negative outcome, not an error; read
// failures also fall back to the token path.
func (s *Service) SelectPaymentMethod(ctx context.Context, customer solana.PublicKey, log *zap.Logger) PaymentDecision {
	probe, err := s.probeLoyaltyNFT(ctx, customer)
	switch probe {
	case probeHeld:
		log.Info("customer holds the loyalty NFT")
		return PayWithLoyaltyNFT
	case probeFailed:
		log.Warn("loyalty NFT lookup failed, falling back to token payment", zap.Error(err))
		return PayWithToken
	default:
		log.Info("customer does not hold the loyalty NFT")
		return PayWithToken
	}
}

func (s *Service) probeLoyaltyNFT(ctx context.Context, customer solana.PublicKey) (loyaltyProbe, error) {
	ata, err := ledger.AssociatedTokenAddress(customer, s.nftMint)
	if err != nil {
		return probeFailed, err
	}

	account, err := s.ledger.TokenAccount(ctx, ata)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return probeAbsent, nil
	}
	if err != nil {
		return probeFailed, err
	}
	if account.State == token.Uninitialized {
		return probeAbsent, nil
	}

	mint, err := s.ledger.Mint(ctx, s.nftMint)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return probeAbsent, nil
	}
	if err != nil {
		return probeFailed, err
	}
	if !mint.IsInitialized {
		return probeAbsent, nil
	}

	if account.Amount > 0 {
		return probeHeld, nil
	}
	return probeEmpty, nil
}
