package cryptoutils

import (
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/ecies"

	"github.com/ruteri/shardwallet/interfaces"
)

// ErrInvalidCustodianKey is returned for public keys that are not secp256k1
// points in compressed or uncompressed form.
var ErrInvalidCustodianKey = errors.New("invalid custodian public key")

// SealForCustodian encrypts a shard to a custodian's secp256k1 public key
// using ECIES. A fresh ephemeral key is generated for every call.
func SealForCustodian(custodian *ecdsa.PublicKey, shard []byte) ([]byte, error) {
	if custodian == nil || custodian.Curve == nil || custodian.Curve.Params().N.Cmp(crypto.S256().Params().N) != 0 {
		return nil, ErrInvalidCustodianKey
	}

	sealed, err := ecies.Encrypt(rand.Reader, ecies.ImportECDSAPublic(custodian), shard, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to seal shard: %w", err)
	}
	return sealed, nil
}

// OpenFromCustodian decrypts a shard sealed with SealForCustodian.
func OpenFromCustodian(custodian *ecdsa.PrivateKey, sealed []byte) ([]byte, error) {
	if custodian == nil {
		return nil, ErrInvalidCustodianKey
	}

	shard, err := ecies.ImportECDSA(custodian).Decrypt(sealed, nil, nil)
	if err != nil {
		return nil, &operationError{operation: "OpenFromCustodian", err: errors.Join(interfaces.ErrDecryption, err)}
	}
	return shard, nil
}

// ParseCustodianKey parses a hex encoded secp256k1 public key, either 33 bytes
// compressed or 65 bytes uncompressed, with or without a 0x prefix.
func ParseCustodianKey(s string) (*ecdsa.PublicKey, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	raw, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCustodianKey, err)
	}

	var pub *ecdsa.PublicKey
	switch len(raw) {
	case 33:
		pub, err = crypto.DecompressPubkey(raw)
	case 65:
		pub, err = crypto.UnmarshalPubkey(raw)
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidCustodianKey, len(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCustodianKey, err)
	}
	return pub, nil
}
