package interfaces

// ChainSigner signs messages and encodes addresses for one network.
type ChainSigner interface {
	// Chain returns the name of the network the signer belongs to.
	Chain() string
	// Sign signs the literal message bytes with the chain's signature scheme.
	Sign(message []byte) ([]byte, error)
	// Verify checks a signature produced by Sign.
	Verify(message, signature []byte) bool
	// PublicKey returns the chain-native encoding of the public key.
	PublicKey() []byte
	// PublicAddress encodes the public key in the chain's address format.
	PublicAddress() string
	// VerifyAgainst reports whether the signer's public key matches the
	// expected key, given as hex (with or without 0x) or as an address.
	VerifyAgainst(expectedPublicKey string) bool
	// ExportKeyMaterial returns a snapshot for display or backup.
	ExportKeyMaterial() KeyMaterial
}

// Chain builds signers for one network.
type Chain interface {
	// Name returns the chain name, e.g. "polkadot".
	Name() string
	// DefaultPath is the HD path a wallet derives before handing the key
	// to FromKey.
	DefaultPath() string
	// FromKey builds a signer from 32 or 64 raw key bytes. The path is
	// recorded for display, or applied as a derivation suffix where the
	// chain supports one.
	FromKey(key []byte, path string) (ChainSigner, error)
	// FromPhrase builds a signer from a mnemonic phrase plus a
	// chain-specific derivation suffix.
	FromPhrase(phrase, suffix string) (ChainSigner, error)
}
