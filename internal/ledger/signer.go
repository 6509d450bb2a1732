package ledger

import (
	"fmt"

	solana "github.com/gagliardetto/solana-go"
)

// Signer holds the merchant's operational key and signs transactions that the
// process submits itself (reward issuance, merchant ATA provisioning). The
// customer-signed purchase transaction never passes through here.
type Signer struct {
	key solana.PrivateKey
}

// NewSignerFromBase58 creates a Signer from a base58-encoded private key.
func NewSignerFromBase58(privateKeyBase58 string) (*Signer, error) {
	key, err := solana.PrivateKeyFromBase58(privateKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &Signer{key: key}, nil
}

// NewSigner wraps an existing private key.
func NewSigner(key solana.PrivateKey) *Signer {
	return &Signer{key: key}
}

// PublicKey returns the signer's public key.
func (s *Signer) PublicKey() solana.PublicKey {
	return s.key.PublicKey()
}

// SignTransaction signs the transaction with the signer's key, placing the
// signature at the account index the message expects.
func (s *Signer) SignTransaction(tx *solana.Transaction) error {
	messageBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	signature, err := s.key.Sign(messageBytes)
	if err != nil {
		return fmt.Errorf("sign message: %w", err)
	}

	accountIndex, err := tx.GetAccountIndex(s.key.PublicKey())
	if err != nil {
		return fmt.Errorf("signer not required by transaction: %w", err)
	}

	if len(tx.Signatures) <= int(accountIndex) {
		signatures := make([]solana.Signature, accountIndex+1)
		copy(signatures, tx.Signatures)
		tx.Signatures = signatures
	}
	tx.Signatures[accountIndex] = signature

	return nil
}
