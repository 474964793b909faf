package chains

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	subkey "github.com/vedhavyas/go-subkey/v2"

	"github.com/ruteri/shardwallet/hdkey"
	"github.com/ruteri/shardwallet/interfaces"
)

const (
	abandonPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	devPhrase     = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

	aliceSeed   = "0xe5be9a5092b81bca64be81d212e7f2f9eba183bb7a90954f7b76361f6edb5c0a"
	alicePublic = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	testCases := []struct {
		cfg      Config
		wantName string
		wantErr  bool
	}{
		{cfg: Config{Kind: Polkadot}, wantName: "polkadot"},
		{cfg: Config{Kind: Kusama}, wantName: "kusama"},
		{cfg: Config{Kind: Substrate, SS58Prefix: 7}, wantName: "substrate"},
		{cfg: Config{Kind: Ethereum}, wantName: "ethereum"},
		{cfg: Config{Kind: Bitcoin, Network: "testnet3"}, wantName: "bitcoin"},
		{cfg: Config{Kind: Bitcoin, Network: "litecoin"}, wantErr: true},
		{cfg: Config{Kind: Substrate, SS58Prefix: 16384}, wantErr: true},
		{cfg: Config{Kind: "solana"}, wantErr: true},
		{cfg: Config{}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.cfg.Kind)+tc.cfg.Network, func(t *testing.T) {
			chain, err := New(tc.cfg)
			if tc.wantErr {
				assert.ErrorIs(t, err, interfaces.ErrUnsupportedChain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, chain.Name())
			_, err = hdkey.ParsePath(chain.DefaultPath())
			assert.NoError(t, err)
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Ethereum ")
	require.NoError(t, err)
	assert.Equal(t, Ethereum, k)

	_, err = ParseKind("dogecoin")
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedChain)
}

func TestSS58Address(t *testing.T) {
	testCases := []struct {
		prefix uint16
		want   string
	}{
		{prefix: SubstratePrefix, want: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"},
		{prefix: PolkadotPrefix, want: "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"},
	}
	for _, tc := range testCases {
		chain, err := NewPolkadot("test", tc.prefix)
		require.NoError(t, err)
		signer, err := chain.FromKey(mustHex(t, aliceSeed), "")
		require.NoError(t, err)

		addr := signer.PublicAddress()
		assert.Equal(t, tc.want, addr)

		prefix, decoded, err := subkey.SS58Decode(addr)
		require.NoError(t, err)
		assert.Equal(t, mustHex(t, alicePublic), decoded)
		assert.Equal(t, tc.prefix, prefix)
	}
}

func TestSS58TwoBytePrefix(t *testing.T) {
	for _, prefix := range []uint16{63, 64, 255, 1284, maxSS58Prefix} {
		chain, err := NewPolkadot("test", prefix)
		require.NoError(t, err)
		signer, err := chain.FromKey(mustHex(t, aliceSeed), "")
		require.NoError(t, err)

		got, decoded, err := subkey.SS58Decode(signer.PublicAddress())
		require.NoError(t, err)
		assert.Equal(t, prefix, got)
		assert.Equal(t, mustHex(t, alicePublic), decoded)
		assert.True(t, signer.VerifyAgainst(signer.PublicAddress()))
	}

	_, err := NewPolkadot("test", maxSS58Prefix+1)
	assert.ErrorIs(t, err, interfaces.ErrUnsupportedChain)
}

func TestVerifyAgainstRejectsCorruptedAddress(t *testing.T) {
	signer, err := MustNew(Config{Kind: Substrate}).FromKey(mustHex(t, aliceSeed), "")
	require.NoError(t, err)

	addr := "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	require.True(t, signer.VerifyAgainst(addr))
	for _, s := range []string{addr[:len(addr)-1] + "Z", "", "0OIl", addr[:20]} {
		assert.False(t, signer.VerifyAgainst(s), s)
	}
}

func TestPolkadotFromKnownSeed(t *testing.T) {
	chain := MustNew(Config{Kind: Substrate})
	signer, err := chain.FromPhrase(aliceSeed, "")
	require.NoError(t, err)

	assert.Equal(t, alicePublic, hex.EncodeToString(signer.PublicKey()))
	assert.Equal(t, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", signer.PublicAddress())

	fromKey, err := chain.FromKey(mustHex(t, aliceSeed), "")
	require.NoError(t, err)
	assert.Equal(t, signer.PublicKey(), fromKey.PublicKey())
}

func TestPolkadotHardJunction(t *testing.T) {
	chain := MustNew(Config{Kind: Polkadot})
	signer, err := chain.FromPhrase(devPhrase, "//Alice")
	require.NoError(t, err)

	assert.Equal(t, alicePublic, hex.EncodeToString(signer.PublicKey()))
	assert.Equal(t, "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5", signer.PublicAddress())
	assert.Equal(t, "//Alice", signer.ExportKeyMaterial().Path)
}

func TestPolkadotDerivation(t *testing.T) {
	chain := MustNew(Config{Kind: Polkadot})

	root, err := chain.FromPhrase(devPhrase, "")
	require.NoError(t, err)
	hard, err := chain.FromPhrase(devPhrase, "//0")
	require.NoError(t, err)
	soft, err := chain.FromPhrase(devPhrase, "/0")
	require.NoError(t, err)
	withPassword, err := chain.FromPhrase(devPhrase, "///secret")
	require.NoError(t, err)

	keys := map[string]bool{}
	for _, s := range []interfaces.ChainSigner{root, hard, soft, withPassword} {
		keys[hex.EncodeToString(s.PublicKey())] = true
	}
	assert.Len(t, keys, 4)

	again, err := chain.FromPhrase(devPhrase, "//0")
	require.NoError(t, err)
	assert.Equal(t, hard.PublicKey(), again.PublicKey())

	// The password never shows up in exported material.
	assert.NotContains(t, withPassword.ExportKeyMaterial().Path, "secret")

	// Junctions can also be applied to a raw key.
	fromKey, err := chain.FromKey(mustHex(t, aliceSeed), "//1")
	require.NoError(t, err)
	base, err := chain.FromKey(mustHex(t, aliceSeed), "m/0'")
	require.NoError(t, err)
	assert.NotEqual(t, base.PublicKey(), fromKey.PublicKey())
	assert.Equal(t, "m/0'", base.ExportKeyMaterial().Path)
}

func TestPolkadotSignVerify(t *testing.T) {
	chain := MustNew(Config{Kind: Polkadot})
	signer, err := chain.FromKey(mustHex(t, aliceSeed), "m/0'")
	require.NoError(t, err)

	message := []byte("transfer 10 DOT")
	sig, err := signer.Sign(message)
	require.NoError(t, err)
	assert.Len(t, sig, 64)
	assert.True(t, signer.Verify(message, sig))
	assert.False(t, signer.Verify([]byte("transfer 11 DOT"), sig))
	assert.False(t, signer.Verify(message, sig[:63]))

	// sr25519 signatures are randomized.
	sig2, err := signer.Sign(message)
	require.NoError(t, err)
	assert.NotEqual(t, sig, sig2)
	assert.True(t, signer.Verify(message, sig2))

	tampered := append([]byte(nil), sig...)
	tampered[0] ^= 0xff
	assert.False(t, signer.Verify(message, tampered))

	// The literal message is signed, not a placeholder.
	placeholder, err := signer.Sign([]byte{0, 0, 0})
	require.NoError(t, err)
	assert.False(t, signer.Verify(message, placeholder))
}

func TestPolkadotVerifyAgainst(t *testing.T) {
	signer, err := MustNew(Config{Kind: Kusama}).FromPhrase(aliceSeed, "")
	require.NoError(t, err)

	assert.True(t, signer.VerifyAgainst(alicePublic))
	assert.True(t, signer.VerifyAgainst("0x"+alicePublic))
	assert.True(t, signer.VerifyAgainst("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"))
	assert.True(t, signer.VerifyAgainst(signer.PublicAddress()))
	assert.False(t, signer.VerifyAgainst(strings.Repeat("00", 32)))
	assert.False(t, signer.VerifyAgainst("not an address"))
}

func TestPolkadotExportKeyMaterial(t *testing.T) {
	chain := MustNew(Config{Kind: Polkadot})
	signer, err := chain.FromKey(mustHex(t, aliceSeed), "m/0'")
	require.NoError(t, err)

	km := signer.ExportKeyMaterial()
	assert.Equal(t, aliceSeed, km.PrivateKeyHex)
	assert.Equal(t, "0x"+alicePublic, km.PublicKeyHex)
	assert.Equal(t, signer.PublicAddress(), km.Address)

	// A hard junction exports the derived seed, which rebuilds the signer.
	hard, err := chain.FromPhrase(devPhrase, "//Alice")
	require.NoError(t, err)
	km = hard.ExportKeyMaterial()
	assert.Equal(t, aliceSeed, km.PrivateKeyHex)

	rebuilt, err := chain.FromKey(mustHex(t, km.PrivateKeyHex), "")
	require.NoError(t, err)
	assert.Equal(t, hard.PublicKey(), rebuilt.PublicKey())

	// A soft junction leaves no seed; the public half is still exported.
	soft, err := chain.FromPhrase(devPhrase, "//Alice/stash")
	require.NoError(t, err)
	km = soft.ExportKeyMaterial()
	assert.Empty(t, km.PrivateKeyHex)
	assert.Equal(t, "0x"+hex.EncodeToString(soft.PublicKey()), km.PublicKeyHex)
	assert.Equal(t, "//Alice/stash", km.Path)

	again, err := chain.FromKey(mustHex(t, aliceSeed), "/stash")
	require.NoError(t, err)
	assert.Equal(t, soft.PublicKey(), again.PublicKey())
}

func TestPolkadotFromSecretKey(t *testing.T) {
	chain := MustNew(Config{Kind: Polkadot})
	mini, err := chain.FromKey(mustHex(t, aliceSeed), "")
	require.NoError(t, err)

	// Canonical scalar in the first half, nonce in the second.
	key := make([]byte, 64)
	key[0] = 7
	for i := 32; i < len(key); i++ {
		key[i] = byte(i)
	}
	full, err := chain.FromKey(key, "")
	require.NoError(t, err)
	assert.NotEqual(t, mini.PublicKey(), full.PublicKey())
	assert.NotEmpty(t, full.ExportKeyMaterial().PrivateKeyHex)

	msg := []byte("signed with an expanded key")
	sig, err := full.Sign(msg)
	require.NoError(t, err)
	assert.True(t, full.Verify(msg, sig))
}

func TestPolkadotInvalidInput(t *testing.T) {
	chain := MustNew(Config{Kind: Polkadot})

	_, err := chain.FromKey(make([]byte, 31), "")
	assert.ErrorIs(t, err, interfaces.ErrInvalidKey)

	_, err = chain.FromPhrase("", "//Alice")
	assert.ErrorIs(t, err, interfaces.ErrInvalidKey)

	_, err = chain.FromPhrase("not a valid phrase", "")
	assert.ErrorIs(t, err, interfaces.ErrInvalidKey)

	_, err = chain.FromPhrase("0x1234", "")
	assert.ErrorIs(t, err, interfaces.ErrInvalidKey)

	_, err = chain.FromKey(mustHex(t, aliceSeed), "/a//")
	assert.ErrorIs(t, err, interfaces.ErrInvalidPath)
}

func TestBitcoinFromKey(t *testing.T) {
	chain := MustNew(Config{Kind: Bitcoin})

	one := make([]byte, 32)
	one[31] = 1
	signer, err := chain.FromKey(one, "")
	require.NoError(t, err)
	assert.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", signer.PublicAddress())

	msg := []byte("pay to key one")
	sig, err := signer.Sign(msg)
	require.NoError(t, err)
	assert.True(t, signer.Verify(msg, sig))
}

func TestBitcoinRejectsOutOfRangeKey(t *testing.T) {
	chain := MustNew(Config{Kind: Bitcoin})
	const curveOrder = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"

	testCases := map[string][]byte{
		"zero":        make([]byte, 32),
		"curve order": mustHex(t, curveOrder),
		"all ones":    mustHex(t, strings.Repeat("ff", 32)),
		"short":       make([]byte, 31),
	}
	for name, key := range testCases {
		_, err := chain.FromKey(key, "")
		assert.ErrorIs(t, err, interfaces.ErrInvalidKey, name)
	}

	// N+1 would otherwise reduce to the key 1.
	overflow := mustHex(t, curveOrder)
	overflow[31]++
	_, err := chain.FromKey(overflow, "")
	assert.ErrorIs(t, err, interfaces.ErrInvalidKey)

	// The largest valid scalar is accepted.
	largest := mustHex(t, curveOrder)
	largest[31]--
	_, err = chain.FromKey(largest, "")
	assert.NoError(t, err)
}
