// Package wallet implements the shard wallet: a 2-of-3 recovery policy over a
// (2, 3) Reed-Solomon fragment set.
//
// A wallet secret is split into two data fragments and three parity
// fragments. The data fragments are discarded and the parity fragments are
// kept as the named shards:
//
//	fragment 0  data      (never stored)
//	fragment 1  data      (never stored)
//	fragment 2  parity    project shard, encrypted with the user password
//	fragment 3  parity    system shard, stored in plaintext
//	fragment 4  parity    recovery shard, encrypted with the user password
//
// Any two plaintext shards rebuild the secret. Signing uses the system shard
// together with either the project shard (the default) or, when the project
// shard is lost, the recovery shard:
//
//	w, err := wallet.NewFromBase64(input, wallet.WithLogger(log))
//	signer, err := w.BuildSigner(password)
//	defer signer.Wipe()
//	polkadot, err := signer.ToChainSigner(chains.MustNew(chains.Config{Kind: chains.Polkadot}))
//
// The reconstructed secret is used directly as a BIP-32 seed.
package wallet
