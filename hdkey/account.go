package hdkey

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"github.com/ruteri/shardwallet/interfaces"
)

// Account is a BIP-39 mnemonic together with the BIP-32 seed it produces.
type Account struct {
	seed     []byte
	mnemonic string
}

// AccountFromMnemonic validates an English BIP-39 phrase and derives its seed
// with an empty passphrase.
func AccountFromMnemonic(phrase string) (*Account, error) {
	phrase = strings.Join(strings.Fields(phrase), " ")
	if _, err := bip39.EntropyFromMnemonic(phrase); err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrInvalidKey, err)
	}
	return &Account{
		seed:     bip39.NewSeed(phrase, ""),
		mnemonic: phrase,
	}, nil
}

// NewAccount builds an account from externally generated entropy of 16, 20,
// 24, 28 or 32 bytes (12 to 24 words).
func NewAccount(entropy []byte) (*Account, error) {
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrInvalidKey, err)
	}
	return &Account{
		seed:     bip39.NewSeed(phrase, ""),
		mnemonic: phrase,
	}, nil
}

// Seed returns a copy of the 64 byte BIP-39 seed.
func (a *Account) Seed() []byte {
	return append([]byte(nil), a.seed...)
}

// Mnemonic returns the phrase.
func (a *Account) Mnemonic() string {
	return a.mnemonic
}

// Words returns the number of words in the phrase.
func (a *Account) Words() int {
	return len(strings.Fields(a.mnemonic))
}

// Hex returns the seed as 0x-prefixed hex.
func (a *Account) Hex() string {
	return "0x" + hex.EncodeToString(a.seed)
}

// DeriveRootKey returns the serialized extended private key of the master node.
func (a *Account) DeriveRootKey() (string, error) {
	root, err := RootPrivateKey(a.seed)
	if err != nil {
		return "", err
	}
	return root.ExtendedPrivateKey(), nil
}

// DeriveRootPublicKey returns the serialized extended public key of the master node.
func (a *Account) DeriveRootPublicKey() (string, error) {
	return RootPublicKey(a.seed)
}

// DeriveExtendedKey derives path and exports it, including the account's
// mnemonic.
func (a *Account) DeriveExtendedKey(path string) (*interfaces.KeyObject, error) {
	node, err := a.DeriveNode(path)
	if err != nil {
		return nil, err
	}
	obj := node.Export()
	return &obj, nil
}

// DeriveNode derives the node at path.
func (a *Account) DeriveNode(path string) (*KeyNode, error) {
	node, err := DerivePath(a.seed, path)
	if err != nil {
		return nil, err
	}
	node.mnemonic = a.mnemonic
	return node, nil
}
