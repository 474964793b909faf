package api

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ruteri/shardwallet/chains"
	"github.com/ruteri/shardwallet/config"
	"github.com/ruteri/shardwallet/cryptoutils"
	"github.com/ruteri/shardwallet/erasure"
	"github.com/ruteri/shardwallet/hdkey"
	"github.com/ruteri/shardwallet/interfaces"
	"github.com/ruteri/shardwallet/wallet"
)

// EncodeShards splits data into dataShards fragments followed by parityShards
// parity fragments. len(data) must be a multiple of dataShards.
func EncodeShards(data []byte, dataShards, parityShards int) ([][]byte, error) {
	return erasure.EncodeShards(data, dataShards, parityShards)
}

// DecodeShards rebuilds the payload from a fragment set where nil entries are
// missing fragments.
func DecodeShards(shards [][]byte, dataShards, parityShards int) ([]byte, error) {
	return erasure.DecodeShards(shards, dataShards, parityShards)
}

// NewShardWallet decodes the request into a wallet. A decoding failure names
// the offending field.
func NewShardWallet(req ShardWalletRequest, opts ...wallet.Option) (*wallet.ShardWallet, error) {
	return wallet.NewFromBase64(req.input(), opts...)
}

// EncryptShard seals b under password with the default cipher.
func EncryptShard(b, password []byte) ([]byte, error) {
	return cryptoutils.Encrypt(b, password)
}

// DecryptShard opens an envelope produced by EncryptShard. Any failure is
// interfaces.ErrDecryption.
func DecryptShard(b, password []byte) ([]byte, error) {
	return cryptoutils.Decrypt(b, password)
}

// DeriveKey derives the node at path from a BIP-32 seed.
func DeriveKey(seed []byte, path string) (*KeyObject, error) {
	node, err := hdkey.DerivePath(seed, path)
	if err != nil {
		return nil, err
	}
	defer node.Zero()

	ko := node.Export()
	return &ko, nil
}

// ToChainSigner builds a signer for the chain selected by cfg. The input is
// interpreted by shape:
//
//   - a pathOrSuffix starting with "m" derives that BIP-32 path from the
//     seed in seedOrKey
//   - printable text of at least twelve words is a mnemonic phrase and pathOrSuffix is
//     the chain specific suffix (substrate junctions or a BIP-32 path)
//   - anything else is a raw private key and pathOrSuffix is recorded as its
//     origin (substrate chains apply a leading "/" as junctions)
func ToChainSigner(cfg chains.Config, seedOrKey []byte, pathOrSuffix string) (interfaces.ChainSigner, error) {
	chain, err := chains.New(cfg)
	if err != nil {
		return nil, err
	}
	return chainSigner(chain, seedOrKey, pathOrSuffix)
}

func chainSigner(chain interfaces.Chain, seedOrKey []byte, pathOrSuffix string) (interfaces.ChainSigner, error) {
	pathOrSuffix = strings.TrimSpace(pathOrSuffix)
	switch {
	case strings.HasPrefix(pathOrSuffix, "m"):
		node, err := hdkey.DerivePath(seedOrKey, pathOrSuffix)
		if err != nil {
			return nil, err
		}
		defer node.Zero()

		key := node.PrivateKey()
		defer cryptoutils.WipeBytes(key)
		return chain.FromKey(key, node.Path())

	case isPhrase(seedOrKey):
		return chain.FromPhrase(string(seedOrKey), pathOrSuffix)

	default:
		return chain.FromKey(seedOrKey, pathOrSuffix)
	}
}

// minPhraseWords is the length of the shortest BIP-39 mnemonic.
const minPhraseWords = 12

func isPhrase(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	s := string(b)
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return len(strings.Fields(s)) >= minPhraseWords
}

// Describe returns the public view of a signer.
func Describe(signer interfaces.ChainSigner) SignerInfo {
	km := signer.ExportKeyMaterial()
	return SignerInfo{
		Chain:     signer.Chain(),
		Address:   km.Address,
		PublicKey: km.PublicKeyHex,
		Path:      km.Path,
	}
}

func chainFromConfig(cfg *config.Config) (interfaces.Chain, error) {
	return chains.New(cfg.ChainConfig())
}

// SealShardForCustodian addresses a shard to a custodian's secp256k1 public
// key, given as compressed or uncompressed hex.
func SealShardForCustodian(custodianKey string, shard []byte) ([]byte, error) {
	pub, err := cryptoutils.ParseCustodianKey(custodianKey)
	if err != nil {
		return nil, err
	}
	return cryptoutils.SealForCustodian(pub, shard)
}
