/*
Package api is the entry point of the shard wallet core.

It exposes the operations an embedding application needs without knowing the
internal packages:

  - EncodeShards and DecodeShards run the erasure codec on raw buffers
  - NewShardWallet builds a wallet from base64 encoded shards
  - EncryptShard and DecryptShard seal a single shard under a password
  - DeriveKey derives a BIP-32 node and returns its JSON view
  - ToChainSigner builds a chain signer from a seed, a raw key or a phrase
  - SealShardForCustodian addresses a shard to a custodian's secp256k1 key

Service bundles the same operations with a loaded config.Config, a logger and
optional metrics.

Nothing in this package performs I/O. Callers persist encrypted shards and
derivation paths themselves.
*/
package api
