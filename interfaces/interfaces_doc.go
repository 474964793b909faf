// Package interfaces defines the core types and contracts for the shard wallet.
//
// # Shards
//
// A Shard is one named slot of the wallet (project, system or recovery). Each
// slot is an explicit state machine:
//
//   - ShardAbsent: nothing stored
//   - ShardEncrypted: ciphertext produced by cryptoutils.Encrypt
//   - ShardPlaintext: a fragment ready for the erasure coder
//
// Slots are values; transitions produce new values instead of mutating a
// buffer in place.
//
// # Chains
//
//   - Chain: builds signers for one network from raw key bytes or a phrase
//   - ChainSigner: signs, verifies and encodes addresses
//
// # Error Types
//
// Every failure is surfaced as one of the sentinel classes below, wrapped
// with context:
//
//   - ErrScheme: invalid coding parameters
//   - ErrFragmentation: not enough, or inconsistent, fragments
//   - ErrVerification: reconstructed data fails the parity check
//   - ErrDecryption: wrong password or malformed ciphertext
//   - ErrMissingShards: no valid 2-of-3 shard combination
//   - ErrInvalidPath / ErrDerivation: malformed path or failed derivation
//
// # Usage Patterns
//
//	secret, err := w.ReconstructSecret()
//	switch {
//	case errors.Is(err, interfaces.ErrMissingShards):
//	    // locate another shard
//	case errors.Is(err, interfaces.ErrVerification):
//	    // re-issue shards
//	}
package interfaces
