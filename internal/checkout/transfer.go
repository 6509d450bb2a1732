package checkout

import (
	"fmt"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// buildTransferInstruction builds a TransferChecked instruction moving amount
// units of mint from source to destination, authorized by the paying party.
// Exactly one freshly generated reference key is appended as a non-writable,
// non-signing account: it carries no rights and exists only so the checkout
// session can be found on chain later. The key material is cryptographically
// random, so references are unpredictable and unique per call.
func buildTransferInstruction(source, mint, destination, authority solana.PublicKey, amount uint64, decimals uint8) (solana.Instruction, solana.PublicKey, error) {
	referenceKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("generate reference: %w", err)
	}
	reference := referenceKey.PublicKey()

	builder := token.NewTransferCheckedInstructionBuilder().
		SetAmount(amount).
		SetDecimals(decimals).
		SetSourceAccount(source).
		SetMintAccount(mint).
		SetDestinationAccount(destination).
		SetOwnerAccount(authority)
	builder.Accounts = append(builder.Accounts, solana.NewAccountMeta(reference, false, false))

	ix, err := builder.ValidateAndBuild()
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("build transfer instruction: %w", err)
	}
	return ix, reference, nil
}
