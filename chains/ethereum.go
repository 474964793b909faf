package chains

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ruteri/shardwallet/hdkey"
	"github.com/ruteri/shardwallet/interfaces"
)

// EthereumDefaultPath is the BIP-44 path of the first Ethereum account.
const EthereumDefaultPath = "m/44'/60'/0'/0/0"

type ethereumChain struct{}

// NewEthereum returns the Ethereum chain.
func NewEthereum() interfaces.Chain {
	return ethereumChain{}
}

func (ethereumChain) Name() string { return string(Ethereum) }

func (ethereumChain) DefaultPath() string { return EthereumDefaultPath }

func (ethereumChain) FromKey(key []byte, path string) (interfaces.ChainSigner, error) {
	priv, err := crypto.ToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrInvalidKey, err)
	}
	return &EthereumSigner{key: priv, address: crypto.PubkeyToAddress(priv.PublicKey), path: path}, nil
}

// FromPhrase derives the BIP-32 path suffix (EthereumDefaultPath when empty)
// from the phrase's BIP-39 seed.
func (c ethereumChain) FromPhrase(phrase, suffix string) (interfaces.ChainSigner, error) {
	return fromPhrase(c, phrase, suffix)
}

func fromPhrase(c interfaces.Chain, phrase, path string) (interfaces.ChainSigner, error) {
	if path == "" {
		path = c.DefaultPath()
	}
	account, err := hdkey.AccountFromMnemonic(phrase)
	if err != nil {
		return nil, err
	}
	node, err := account.DeriveNode(path)
	if err != nil {
		return nil, err
	}
	defer node.Zero()
	return c.FromKey(node.PrivateKey(), node.Path())
}

// EthereumSigner signs EIP-191 personal messages.
type EthereumSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
	path    string
}

func (s *EthereumSigner) Chain() string { return string(Ethereum) }

// Sign returns a 65 byte [R || S || V] signature over the EIP-191 hash of
// message, with V in {27, 28}. Signing is deterministic (RFC 6979).
func (s *EthereumSigner) Sign(message []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), s.key)
	if err != nil {
		return nil, fmt.Errorf("secp256k1 sign: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// Verify accepts 65 byte signatures with V in {0, 1, 27, 28} and 64 byte
// [R || S] signatures.
func (s *EthereumSigner) Verify(message, signature []byte) bool {
	hash := accounts.TextHash(message)
	switch len(signature) {
	case crypto.SignatureLength:
		sig := append([]byte(nil), signature...)
		if sig[crypto.RecoveryIDOffset] >= 27 {
			sig[crypto.RecoveryIDOffset] -= 27
		}
		pub, err := crypto.SigToPub(hash, sig)
		if err != nil {
			return false
		}
		return crypto.PubkeyToAddress(*pub) == s.address
	case crypto.SignatureLength - 1:
		return crypto.VerifySignature(crypto.CompressPubkey(&s.key.PublicKey), hash, signature)
	default:
		return false
	}
}

// PublicKey returns the 65 byte uncompressed public key.
func (s *EthereumSigner) PublicKey() []byte {
	return crypto.FromECDSAPub(&s.key.PublicKey)
}

// PublicAddress returns the EIP-55 checksummed address.
func (s *EthereumSigner) PublicAddress() string {
	return s.address.Hex()
}

// VerifyAgainst accepts an address or a compressed or uncompressed public
// key in hex.
func (s *EthereumSigner) VerifyAgainst(expected string) bool {
	expected = strings.TrimSpace(expected)
	if common.IsHexAddress(expected) {
		return common.HexToAddress(expected) == s.address
	}
	raw, err := decodeHex(expected)
	if err != nil {
		return false
	}
	switch len(raw) {
	case 33:
		return constantTimeEqual(raw, crypto.CompressPubkey(&s.key.PublicKey))
	case 65:
		return constantTimeEqual(raw, s.PublicKey())
	default:
		return false
	}
}

func (s *EthereumSigner) ExportKeyMaterial() interfaces.KeyMaterial {
	return interfaces.KeyMaterial{
		PrivateKeyHex: "0x" + hex.EncodeToString(crypto.FromECDSA(s.key)),
		PublicKeyHex:  "0x" + hex.EncodeToString(s.PublicKey()),
		Address:       s.PublicAddress(),
		Path:          s.path,
	}
}
