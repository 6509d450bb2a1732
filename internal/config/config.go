// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
)

// Product parameterizes one checkout flow. The handlers differ only in these
// values; the core logic is shared.
type Product struct {
	Name string
	// Price in the token's smallest units. Ignored on the loyalty NFT path,
	// which always transfers exactly 1.
	Price         uint64
	Label         string
	Icon          string
	Message       string
	RewardEnabled bool
}

// Config holds everything the server needs from the environment.
type Config struct {
	Port   string
	RPCURL string

	MerchantWallet solana.PublicKey
	// MerchantSecret is the merchant's operational key, base58-encoded. Used
	// to sign reward issuance and merchant account provisioning, never the
	// customer's purchase transaction.
	MerchantSecret string

	TokenMint solana.PublicKey
	NFTMint   solana.PublicKey

	Products map[string]Product
}

// Load reads a .env file if present, then the environment. Missing optional
// values fall back to defaults; malformed required values are an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("MERCHANT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("MERCHANT_SECRET is required")
	}
	merchantKey, err := solana.PrivateKeyFromBase58(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid MERCHANT_SECRET: %w", err)
	}

	merchant := merchantKey.PublicKey()
	if raw := os.Getenv("MERCHANT_WALLET"); raw != "" {
		merchant, err = solana.PublicKeyFromBase58(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid MERCHANT_WALLET: %w", err)
		}
	}

	tokenMint, err := requiredKey("TOKEN_MINT")
	if err != nil {
		return nil, err
	}
	nftMint, err := requiredKey("NFT_MINT")
	if err != nil {
		return nil, err
	}

	products, err := loadProducts()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           getEnv("PORT", "3000"),
		RPCURL:         getEnv("RPC_URL", rpc.DevNet_RPC),
		MerchantWallet: merchant,
		MerchantSecret: secret,
		TokenMint:      tokenMint,
		NFTMint:        nftMint,
		Products:       products,
	}, nil
}

// loadProducts builds the product catalog. The defaults mirror the original
// deployment; every field is overridable with <PRODUCT>_<FIELD> env keys.
func loadProducts() (map[string]Product, error) {
	defaults := []Product{
		{
			Name:          "pizza",
			Price:         1_000_000_000,
			Label:         "Pizza del SOL",
			Icon:          "https://i.imgur.com/Qed0oFt.jpeg",
			Message:       "Enjoy your Pizza de SOL!",
			RewardEnabled: true,
		},
		{
			Name:          "kebab",
			Price:         3_000_000_000,
			Label:         "Kebab del SOL",
			Icon:          "https://i.imgur.com/Qed0oFt.jpeg",
			Message:       "Enjoy your Kebab del SOL!",
			RewardEnabled: false,
		},
	}

	products := make(map[string]Product, len(defaults))
	for _, p := range defaults {
		prefix := strings.ToUpper(p.Name) + "_"

		if raw := os.Getenv(prefix + "PRICE"); raw != "" {
			price, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %sPRICE: %w", prefix, err)
			}
			p.Price = price
		}
		p.Label = getEnv(prefix+"LABEL", p.Label)
		p.Icon = getEnv(prefix+"ICON", p.Icon)
		p.Message = getEnv(prefix+"MESSAGE", p.Message)
		if raw := os.Getenv(prefix + "REWARD"); raw != "" {
			enabled, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %sREWARD: %w", prefix, err)
			}
			p.RewardEnabled = enabled
		}

		products[p.Name] = p
	}
	return products, nil
}

func requiredKey(name string) (solana.PublicKey, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return solana.PublicKey{}, fmt.Errorf("%s is required", name)
	}
	key, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return key, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
