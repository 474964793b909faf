package interfaces

import "errors"

// Error classes shared by every package. Callers distinguish them with
// errors.Is since each requires a different recovery action.
var (
	// ErrScheme is returned for invalid coding parameters or payload shape.
	ErrScheme = errors.New("invalid coding scheme")
	// ErrFragmentation is returned when fragments are insufficient or
	// inconsistent for reconstruction.
	ErrFragmentation = errors.New("fragmentation error")
	// ErrVerification is returned when reconstructed fragments fail the
	// parity check.
	ErrVerification = errors.New("verification error")
	// ErrDecryption is returned on authentication failure or malformed ciphertext.
	ErrDecryption = errors.New("decryption error")
	// ErrMissingShards is returned when a wallet lacks a usable shard combination.
	ErrMissingShards = errors.New("missing shards")
	// ErrInvalidPath is returned for malformed derivation paths.
	ErrInvalidPath = errors.New("invalid derivation path")
	// ErrDerivation is returned when key derivation fails.
	ErrDerivation = errors.New("derivation error")
	// ErrUnsupportedChain is returned for unknown chain kinds.
	ErrUnsupportedChain = errors.New("unsupported chain")
	// ErrInvalidKey is returned for key material of the wrong size or encoding.
	ErrInvalidKey = errors.New("invalid key material")
)
