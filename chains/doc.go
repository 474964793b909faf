// Package chains adapts derived key material to blockchain networks.
//
// A chain is selected with a Config and built by New. Every chain produces
// signers implementing interfaces.ChainSigner:
//
//   - polkadot, kusama and substrate sign with sr25519 and encode SS58
//     addresses with the network prefix (0, 2 and 42 by default)
//   - ethereum signs EIP-191 personal messages with secp256k1 and encodes
//     EIP-55 checksummed addresses
//   - bitcoin signs the double SHA-256 of the message and encodes P2PKH
//     addresses for the configured network
//
// Signers always sign the bytes they are given. They never see shards or
// passwords, only the key derived for them.
package chains
