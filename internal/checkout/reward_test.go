package checkout

import (
	"testing"

	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIssueRewardTransfersOneNFT(t *testing.T) {
	f := newFixture(t)
	f.fake.SetSystemAccount(f.merchant.PublicKey())
	f.fake.SetMint(f.nftMint, token.Mint{Decimals: 0, IsInitialized: true})
	f.seedTokenAccount(f.merchantNFTATA, f.merchant.PublicKey(), f.nftMint, 3, token.Initialized)
	f.seedTokenAccount(f.customerNFTATA, f.customer.PublicKey(), f.nftMint, 0, token.Initialized)

	f.svc.IssueReward(f.customer.PublicKey(), zap.NewNop())

	submitted := f.fake.Submitted()
	require.Len(t, submitted, 1)
	assert.EqualValues(t, 1, transferAmount(t, submitted[0], 0))
	assert.Equal(t, f.merchant.PublicKey(), submitted[0].Message.AccountKeys[0])
}

func TestIssueRewardSkipsWhenMerchantHasNoNFTs(t *testing.T) {
	f := newFixture(t)
	f.fake.SetSystemAccount(f.merchant.PublicKey())
	f.fake.SetMint(f.nftMint, token.Mint{Decimals: 0, IsInitialized: true})
	f.seedTokenAccount(f.merchantNFTATA, f.merchant.PublicKey(), f.nftMint, 0, token.Initialized)
	f.seedTokenAccount(f.customerNFTATA, f.customer.PublicKey(), f.nftMint, 0, token.Initialized)

	f.svc.IssueReward(f.customer.PublicKey(), zap.NewNop())

	assert.Empty(t, f.fake.Submitted(), "insufficient merchant balance never submits")
}

func TestIssueRewardFailureIsNonFatal(t *testing.T) {
	f := newFixture(t)
	f.fake.SetSystemAccount(f.merchant.PublicKey())
	f.fake.SetMint(f.nftMint, token.Mint{Decimals: 0, IsInitialized: true})
	f.seedTokenAccount(f.merchantNFTATA, f.merchant.PublicKey(), f.nftMint, 3, token.Initialized)
	f.seedTokenAccount(f.customerNFTATA, f.customer.PublicKey(), f.nftMint, 0, token.Initialized)
	f.fake.SubmitErr = assert.AnError

	// Must not panic or propagate; the outcome is only logged.
	f.svc.IssueReward(f.customer.PublicKey(), zap.NewNop())

	assert.Empty(t, f.fake.Submitted())
}
