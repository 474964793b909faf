package chains

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/ruteri/shardwallet/interfaces"
)

var bitcoinNetworks = map[string]*chaincfg.Params{
	"":         &chaincfg.MainNetParams,
	"mainnet":  &chaincfg.MainNetParams,
	"testnet3": &chaincfg.TestNet3Params,
	"regtest":  &chaincfg.RegressionNetParams,
	"signet":   &chaincfg.SigNetParams,
}

type bitcoinChain struct {
	params *chaincfg.Params
}

// NewBitcoin returns the Bitcoin chain for network: mainnet (default),
// testnet3, regtest or signet.
func NewBitcoin(network string) (interfaces.Chain, error) {
	params, ok := bitcoinNetworks[strings.ToLower(network)]
	if !ok {
		return nil, fmt.Errorf("%w: bitcoin network %q", interfaces.ErrUnsupportedChain, network)
	}
	return &bitcoinChain{params: params}, nil
}

func (c *bitcoinChain) Name() string { return string(Bitcoin) }

// DefaultPath is the BIP-44 path of the first receiving address. Test
// networks use coin type 1.
func (c *bitcoinChain) DefaultPath() string {
	if c.params.Net == chaincfg.MainNetParams.Net {
		return "m/44'/0'/0'/0/0"
	}
	return "m/44'/1'/0'/0/0"
}

func (c *bitcoinChain) FromKey(key []byte, path string) (interfaces.ChainSigner, error) {
	if len(key) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: secp256k1 key must be %d bytes, got %d", interfaces.ErrInvalidKey, btcec.PrivKeyBytesLen, len(key))
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(key); overflow {
		return nil, fmt.Errorf("%w: secp256k1 key is not below the curve order", interfaces.ErrInvalidKey)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: zero private key", interfaces.ErrInvalidKey)
	}
	priv := btcec.PrivKeyFromScalar(&scalar)
	pub := priv.PubKey()

	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), c.params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrInvalidKey, err)
	}
	return &BitcoinSigner{key: priv, address: addr, path: path}, nil
}

// FromPhrase derives the BIP-32 path suffix (DefaultPath when empty) from the
// phrase's BIP-39 seed.
func (c *bitcoinChain) FromPhrase(phrase, suffix string) (interfaces.ChainSigner, error) {
	return fromPhrase(c, phrase, suffix)
}

// BitcoinSigner signs the double SHA-256 of a message and uses compressed
// P2PKH addresses.
type BitcoinSigner struct {
	key     *btcec.PrivateKey
	address *btcutil.AddressPubKeyHash
	path    string
}

func (s *BitcoinSigner) Chain() string { return string(Bitcoin) }

// Sign returns a DER encoded, low-S ECDSA signature. Signing is
// deterministic (RFC 6979).
func (s *BitcoinSigner) Sign(message []byte) ([]byte, error) {
	return ecdsa.Sign(s.key, chainhash.DoubleHashB(message)).Serialize(), nil
}

func (s *BitcoinSigner) Verify(message, signature []byte) bool {
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(chainhash.DoubleHashB(message), s.key.PubKey())
}

// PublicKey returns the 33 byte compressed public key.
func (s *BitcoinSigner) PublicKey() []byte {
	return s.key.PubKey().SerializeCompressed()
}

// PublicAddress returns the base58check P2PKH address.
func (s *BitcoinSigner) PublicAddress() string {
	return s.address.EncodeAddress()
}

// VerifyAgainst accepts a P2PKH address or a hex public key.
func (s *BitcoinSigner) VerifyAgainst(expected string) bool {
	expected = strings.TrimSpace(expected)
	if expected == s.PublicAddress() {
		return true
	}
	raw, err := decodeHex(expected)
	if err != nil {
		return false
	}
	switch len(raw) {
	case btcec.PubKeyBytesLenCompressed:
		return constantTimeEqual(raw, s.PublicKey())
	case 65:
		return constantTimeEqual(raw, s.key.PubKey().SerializeUncompressed())
	default:
		return false
	}
}

func (s *BitcoinSigner) ExportKeyMaterial() interfaces.KeyMaterial {
	return interfaces.KeyMaterial{
		PrivateKeyHex: "0x" + hex.EncodeToString(s.key.Serialize()),
		PublicKeyHex:  "0x" + hex.EncodeToString(s.PublicKey()),
		Address:       s.PublicAddress(),
		Path:          s.path,
	}
}
