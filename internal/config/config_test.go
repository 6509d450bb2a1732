package config

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) (merchant solana.PrivateKey, tokenMint, nftMint solana.PublicKey) {
	t.Helper()
	merchant, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	tokenMint = solana.NewWallet().PublicKey()
	nftMint = solana.NewWallet().PublicKey()

	t.Setenv("MERCHANT_SECRET", merchant.String())
	t.Setenv("TOKEN_MINT", tokenMint.String())
	t.Setenv("NFT_MINT", nftMint.String())
	return merchant, tokenMint, nftMint
}

func TestLoadDefaults(t *testing.T) {
	merchant, tokenMint, nftMint := setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, merchant.PublicKey(), cfg.MerchantWallet, "wallet defaults to the secret's public key")
	assert.Equal(t, tokenMint, cfg.TokenMint)
	assert.Equal(t, nftMint, cfg.NFTMint)

	pizza, ok := cfg.Products["pizza"]
	require.True(t, ok)
	assert.EqualValues(t, 1_000_000_000, pizza.Price)
	assert.Equal(t, "Pizza del SOL", pizza.Label)
	assert.True(t, pizza.RewardEnabled)

	kebab, ok := cfg.Products["kebab"]
	require.True(t, ok)
	assert.EqualValues(t, 3_000_000_000, kebab.Price)
	assert.False(t, kebab.RewardEnabled)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	override := solana.NewWallet().PublicKey()
	t.Setenv("MERCHANT_WALLET", override.String())
	t.Setenv("PIZZA_PRICE", "3000000000")
	t.Setenv("PIZZA_REWARD", "false")
	t.Setenv("KEBAB_LABEL", "Kebab Haus")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, override, cfg.MerchantWallet)
	assert.EqualValues(t, 3_000_000_000, cfg.Products["pizza"].Price)
	assert.False(t, cfg.Products["pizza"].RewardEnabled)
	assert.Equal(t, "Kebab Haus", cfg.Products["kebab"].Label)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("MERCHANT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("malformed mint", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TOKEN_MINT", "definitely-not-base58!!")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("malformed price", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PIZZA_PRICE", "one billion")
		_, err := Load()
		assert.Error(t, err)
	})
}
