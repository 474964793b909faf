package chains

import (
	"fmt"
	"strings"

	"github.com/ruteri/shardwallet/interfaces"
)

// Kind names a supported chain family.
type Kind string

const (
	Polkadot  Kind = "polkadot"
	Kusama    Kind = "kusama"
	Substrate Kind = "substrate"
	Ethereum  Kind = "ethereum"
	Bitcoin   Kind = "bitcoin"
)

// Kinds lists every supported chain kind.
var Kinds = []Kind{Polkadot, Kusama, Substrate, Ethereum, Bitcoin}

// SS58 network prefixes.
const (
	PolkadotPrefix  uint16 = 0
	KusamaPrefix    uint16 = 2
	SubstratePrefix uint16 = 42
)

// Config selects a chain. SS58Prefix is only read for the substrate kind,
// where zero selects the generic prefix 42. Network is only read for
// bitcoin and defaults to mainnet.
type Config struct {
	Kind       Kind   `yaml:"kind" json:"kind"`
	SS58Prefix uint16 `yaml:"ss58_prefix,omitempty" json:"ss58_prefix,omitempty"`
	Network    string `yaml:"network,omitempty" json:"network,omitempty"`
}

// ParseKind parses a chain name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", interfaces.ErrUnsupportedChain, s)
}

// New returns the chain described by cfg.
func New(cfg Config) (interfaces.Chain, error) {
	switch cfg.Kind {
	case Polkadot:
		return NewPolkadot(string(Polkadot), PolkadotPrefix)
	case Kusama:
		return NewPolkadot(string(Kusama), KusamaPrefix)
	case Substrate:
		prefix := cfg.SS58Prefix
		if prefix == 0 {
			prefix = SubstratePrefix
		}
		return NewPolkadot(string(Substrate), prefix)
	case Ethereum:
		return NewEthereum(), nil
	case Bitcoin:
		return NewBitcoin(cfg.Network)
	default:
		return nil, fmt.Errorf("%w: %q", interfaces.ErrUnsupportedChain, cfg.Kind)
	}
}

// MustNew is like New but panics on error. It is meant for package level
// variables with constant configuration.
func MustNew(cfg Config) interfaces.Chain {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}
