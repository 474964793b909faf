// Package hdkey derives hierarchical deterministic keys (BIP-32) from a seed
// and manages BIP-39 backed accounts.
//
// Paths are absolute and written as "m/44'/60'/0'/0/0". A hardened segment is
// marked with ', h or H. "m" alone denotes the root key.
//
//	node, err := hdkey.DerivePath(seed, "m/0'")
//	if errors.Is(err, interfaces.ErrInvalidPath) {
//	    // malformed path
//	}
//	obj := node.Export()
//
// Seeds must be between 16 and 64 bytes long. Derivation is deterministic:
// the same seed and path always yield the same key.
package hdkey
