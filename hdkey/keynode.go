package hdkey

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"

	"github.com/ruteri/shardwallet/interfaces"
)

// HardenedOffset is added to a child index to request hardened derivation.
const HardenedOffset = hdkeychain.HardenedKeyStart

// KeyNode is an immutable private node of a BIP-32 tree.
type KeyNode struct {
	ext      *hdkeychain.ExtendedKey
	path     accounts.DerivationPath
	mnemonic string
}

// RootPrivateKey returns the master node for seed.
func RootPrivateKey(seed []byte) (*KeyNode, error) {
	ext, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrDerivation, err)
	}
	return &KeyNode{ext: ext, path: accounts.DerivationPath{}}, nil
}

// RootPublicKey returns the serialized extended public key (xpub) of the
// master node for seed.
func RootPublicKey(seed []byte) (string, error) {
	root, err := RootPrivateKey(seed)
	if err != nil {
		return "", err
	}
	return root.ExtendedPublicKey()
}

// DerivePath derives the node at path from seed.
func DerivePath(seed []byte, path string) (*KeyNode, error) {
	parsed, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	root, err := RootPrivateKey(seed)
	if err != nil {
		return nil, err
	}
	return root.Derive(parsed)
}

// Derive walks the given child indexes starting at this node.
func (n *KeyNode) Derive(path accounts.DerivationPath) (*KeyNode, error) {
	ext := n.ext
	for _, index := range path {
		child, err := ext.Derive(index)
		if err != nil {
			if errors.Is(err, hdkeychain.ErrInvalidChild) {
				return nil, fmt.Errorf("%w: child %d is invalid, try the next index", interfaces.ErrDerivation, index)
			}
			return nil, fmt.Errorf("%w: %w", interfaces.ErrDerivation, err)
		}
		ext = child
	}

	full := make(accounts.DerivationPath, 0, len(n.path)+len(path))
	full = append(full, n.path...)
	full = append(full, path...)
	return &KeyNode{ext: ext, path: full, mnemonic: n.mnemonic}, nil
}

// PrivateKey returns the 32 byte secp256k1 private key.
func (n *KeyNode) PrivateKey() []byte {
	priv, err := n.ext.ECPrivKey()
	if err != nil {
		// Every KeyNode is built from a private extended key.
		panic(err)
	}
	return priv.Serialize()
}

// PublicKey returns the 33 byte compressed public key.
func (n *KeyNode) PublicKey() []byte {
	pub, err := n.ext.ECPubKey()
	if err != nil {
		panic(err)
	}
	return pub.SerializeCompressed()
}

// ExtendedPublicKey returns the base58 xpub of this node.
func (n *KeyNode) ExtendedPublicKey() (string, error) {
	pub, err := n.ext.Neuter()
	if err != nil {
		return "", fmt.Errorf("%w: %w", interfaces.ErrDerivation, err)
	}
	return pub.String(), nil
}

// ExtendedPrivateKey returns the base58 xprv of this node.
func (n *KeyNode) ExtendedPrivateKey() string {
	return n.ext.String()
}

// ChainCode returns a copy of the node's chain code.
func (n *KeyNode) ChainCode() []byte {
	return append([]byte(nil), n.ext.ChainCode()...)
}

// Depth is the number of derivation steps from the root.
func (n *KeyNode) Depth() uint8 {
	return n.ext.Depth()
}

// Index is the node's child number without the hardened flag.
func (n *KeyNode) Index() uint32 {
	return n.ext.ChildIndex() &^ HardenedOffset
}

// Hardened reports whether the node was derived with a hardened index.
func (n *KeyNode) Hardened() bool {
	return n.Depth() > 0 && n.ext.ChildIndex() >= HardenedOffset
}

// Path returns the canonical derivation path of the node.
func (n *KeyNode) Path() string {
	return FormatPath(n.path)
}

// Mnemonic returns the phrase the node was derived from, if any.
func (n *KeyNode) Mnemonic() string {
	return n.mnemonic
}

// Export returns the KeyObject view of the node.
func (n *KeyNode) Export() interfaces.KeyObject {
	xpub, _ := n.ExtendedPublicKey()
	return interfaces.KeyObject{
		PrivateKey: "0x" + hex.EncodeToString(n.PrivateKey()),
		PublicKey:  xpub,
		Mnemonic:   n.mnemonic,
		Path:       n.Path(),
		Index:      n.Index(),
		Depth:      n.Depth(),
	}
}

// Zero clears the private key held by the node. The node must not be used
// afterwards.
func (n *KeyNode) Zero() {
	n.ext.Zero()
}
