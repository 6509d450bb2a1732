package checkout

import (
	"encoding/base64"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// assembleTransaction wraps the instructions with a recent blockhash and fee
// payer. Signature slots are zeroed so the serialized form is identical
// whether or not anyone has signed yet; the wallet fills them in later.
func assembleTransaction(instructions []solana.Instruction, recent solana.Hash, feePayer solana.PublicKey) (*solana.Transaction, error) {
	builder := solana.NewTransactionBuilder().
		SetRecentBlockHash(recent).
		SetFeePayer(feePayer)
	for _, ix := range instructions {
		builder = builder.AddInstruction(ix)
	}

	tx, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)
	return tx, nil
}

// EncodeTransaction serializes a transaction to base64 for transport. No
// signatures are required or verified.
func EncodeTransaction(tx *solana.Transaction) (string, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeTransaction is the inverse of EncodeTransaction.
func DecodeTransaction(encoded string) (*solana.Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(data))
	if err != nil {
		return nil, fmt.Errorf("deserialize transaction: %w", err)
	}
	return tx, nil
}
