package wallet

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ruteri/shardwallet/common"
	"github.com/ruteri/shardwallet/cryptoutils"
	"github.com/ruteri/shardwallet/hdkey"
	"github.com/ruteri/shardwallet/interfaces"
	"github.com/ruteri/shardwallet/metrics"
)

// Signer is the root signer of a wallet. It owns a copy of the reconstructed
// seed and derives chain keys from it.
type Signer struct {
	seed    []byte
	log     *slog.Logger
	metrics *metrics.Metrics
}

func newSigner(seed []byte, log *slog.Logger, m *metrics.Metrics) *Signer {
	return &Signer{seed: seed, log: log, metrics: m}
}

// NewSigner returns a root signer for seed. The seed is copied.
func NewSigner(seed []byte) *Signer {
	return newSigner(append([]byte(nil), seed...), common.DiscardLogger(), nil)
}

// RootPublicKey returns the extended public key (xpub) of the seed's master
// node.
func (s *Signer) RootPublicKey() (string, error) {
	return hdkey.RootPublicKey(s.seed)
}

// VerifyRootKey reports whether xpub is the signer's root public key.
func (s *Signer) VerifyRootKey(xpub string) bool {
	root, err := s.RootPublicKey()
	return err == nil && root == strings.TrimSpace(xpub)
}

// DeriveKey derives the key node at path.
func (s *Signer) DeriveKey(path string) (*hdkey.KeyNode, error) {
	return hdkey.DerivePath(s.seed, path)
}

// ToChainSigner derives the chain's default path and builds the chain signer
// from the derived private key.
func (s *Signer) ToChainSigner(chain interfaces.Chain) (interfaces.ChainSigner, error) {
	node, err := s.DeriveKey(chain.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("derive %s key: %w", chain.Name(), err)
	}
	defer node.Zero()

	key := node.PrivateKey()
	defer cryptoutils.WipeBytes(key)

	signer, err := chain.FromKey(key, node.Path())
	if err != nil {
		return nil, err
	}
	s.log.Debug("built chain signer", "chain", chain.Name(), "path", node.Path(), "address", signer.PublicAddress())
	return &meteredSigner{ChainSigner: signer, metrics: s.metrics}, nil
}

// Fingerprint returns the SHA-256 digest of the seed, suitable for
// ShardWallet.VerifyIntegrity.
func (s *Signer) Fingerprint() []byte {
	return cryptoutils.Fingerprint(s.seed)
}

// Wipe zeroes the seed. The signer must not be used afterwards.
func (s *Signer) Wipe() {
	cryptoutils.WipeBytes(s.seed)
	s.seed = nil
}

// meteredSigner counts signatures.
type meteredSigner struct {
	interfaces.ChainSigner
	metrics *metrics.Metrics
}

func (m *meteredSigner) Sign(message []byte) ([]byte, error) {
	sig, err := m.ChainSigner.Sign(message)
	if err == nil {
		m.metrics.ObserveSignature(m.Chain())
	}
	return sig, err
}
