package chains

import (
	"encoding/hex"
	"fmt"
	"strings"

	subkey "github.com/vedhavyas/go-subkey/v2"
	"github.com/vedhavyas/go-subkey/v2/sr25519"

	"github.com/ruteri/shardwallet/interfaces"
)

// maxSS58Prefix is the largest network identifier SS58 can encode.
const maxSS58Prefix = 16383

const sr25519SignatureSize = 64

type polkadotChain struct {
	name   string
	prefix uint16
}

// NewPolkadot returns an sr25519 chain that encodes addresses with the given
// SS58 prefix.
func NewPolkadot(name string, prefix uint16) (interfaces.Chain, error) {
	if prefix > maxSS58Prefix {
		return nil, fmt.Errorf("%w: ss58 prefix %d out of range", interfaces.ErrUnsupportedChain, prefix)
	}
	return &polkadotChain{name: name, prefix: prefix}, nil
}

func (c *polkadotChain) Name() string { return c.name }

func (c *polkadotChain) DefaultPath() string { return "m/0'" }

// FromKey accepts a 32 byte mini secret or a 64 byte key||nonce secret. A
// path starting with "/" is applied as substrate junctions, anything else is
// recorded as the origin of the key.
func (c *polkadotChain) FromKey(key []byte, path string) (interfaces.ChainSigner, error) {
	if len(key) != 32 && len(key) != 64 {
		return nil, fmt.Errorf("%w: sr25519 key must be 32 or 64 bytes, got %d", interfaces.ErrInvalidKey, len(key))
	}

	uri := "0x" + hex.EncodeToString(key)
	if strings.HasPrefix(path, "/") {
		uri += path
	}
	kp, err := subkey.DeriveKeyPair(sr25519.Scheme{}, uri)
	if err != nil {
		return nil, fmt.Errorf("%w: junctions %q: %w", interfaces.ErrInvalidPath, path, err)
	}
	return c.newSigner(kp, path), nil
}

// FromPhrase accepts a substrate secret URI: a BIP-39 phrase or 0x-prefixed
// 32 byte seed followed by optional //hard and /soft junctions and a
// ///password. suffix is appended to the phrase before parsing.
func (c *polkadotChain) FromPhrase(phrase, suffix string) (interfaces.ChainSigner, error) {
	phrase = strings.Join(strings.Fields(phrase), " ")
	if phrase == "" || strings.HasPrefix(phrase, "/") {
		return nil, fmt.Errorf("%w: empty phrase", interfaces.ErrInvalidKey)
	}

	kp, err := subkey.DeriveKeyPair(sr25519.Scheme{}, phrase+suffix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrInvalidKey, err)
	}

	// The password is never kept, including in the recorded path.
	path := suffix
	if i := strings.Index(path, "///"); i >= 0 {
		path = path[:i]
	}
	return c.newSigner(kp, path), nil
}

func (c *polkadotChain) newSigner(kp subkey.KeyPair, path string) *PolkadotSigner {
	return &PolkadotSigner{
		chain:  c.name,
		prefix: c.prefix,
		kp:     kp,
		path:   path,
	}
}

// PolkadotSigner signs with sr25519 under the "substrate" context.
type PolkadotSigner struct {
	chain  string
	prefix uint16
	kp     subkey.KeyPair
	path   string
}

func (s *PolkadotSigner) Chain() string { return s.chain }

// Sign returns a 64 byte schnorrkel signature. Signatures are randomized, so
// two signatures over the same message differ; both verify.
func (s *PolkadotSigner) Sign(message []byte) ([]byte, error) {
	sig, err := s.kp.Sign(message)
	if err != nil {
		return nil, fmt.Errorf("sr25519 sign: %w", err)
	}
	return sig, nil
}

func (s *PolkadotSigner) Verify(message, signature []byte) bool {
	return len(signature) == sr25519SignatureSize && s.kp.Verify(message, signature)
}

// PublicKey returns the 32 byte ristretto public key.
func (s *PolkadotSigner) PublicKey() []byte {
	return s.kp.Public()
}

// PublicAddress returns the SS58 address for the signer's network prefix.
func (s *PolkadotSigner) PublicAddress() string {
	return s.kp.SS58Address(s.prefix)
}

// VerifyAgainst accepts a hex public key or an SS58 address of any network.
func (s *PolkadotSigner) VerifyAgainst(expected string) bool {
	if pub, err := decodeHex(expected); err == nil {
		return constantTimeEqual(pub, s.PublicKey())
	}
	_, pub, err := subkey.SS58Decode(strings.TrimSpace(expected))
	return err == nil && constantTimeEqual(pub, s.PublicKey())
}

// ExportKeyMaterial exports the seed the key pair was built from: the 32
// byte mini secret (or the 64 byte key||nonce given to FromKey) after any
// hard junctions. A soft junction leaves no seed behind, so soft-derived
// signers export only their public half; rebuild them from the parent seed
// and the path instead.
func (s *PolkadotSigner) ExportKeyMaterial() interfaces.KeyMaterial {
	var private string
	if seed := s.kp.Seed(); len(seed) > 0 {
		private = "0x" + hex.EncodeToString(seed)
	}
	return interfaces.KeyMaterial{
		PrivateKeyHex: private,
		PublicKeyHex:  "0x" + hex.EncodeToString(s.PublicKey()),
		Address:       s.PublicAddress(),
		Path:          s.path,
	}
}
