package cryptoutils

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/shardwallet/interfaces"
)

func TestEncryptDecrypt(t *testing.T) {
	password := []byte("correct horse battery staple")

	testCases := []struct {
		name string
		data []byte
	}{
		{
			name: "Simple string",
			data: []byte("This is a secret shard"),
		},
		{
			name: "Binary data",
			data: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD},
		},
		{
			name: "Empty data",
			data: []byte{},
		},
		{
			name: "Long data",
			data: bytes.Repeat([]byte{0xAB}, 1024),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encrypted, err := Encrypt(tc.data, password)
			require.NoError(t, err)
			assert.NotEqual(t, tc.data, encrypted)
			assert.Equal(t, byte(envelopeVersion), encrypted[0])

			decrypted, err := Decrypt(encrypted, password)
			require.NoError(t, err)
			assert.Equal(t, len(tc.data), len(decrypted))
			assert.True(t, bytes.Equal(tc.data, decrypted))
		})
	}
}

func TestShardCipherAlgorithms(t *testing.T) {
	plaintext := []byte("shard payload")
	password := []byte("pw")

	for _, kdf := range []KDF{SCRYPT, PBKDF2, ARGON2ID} {
		for _, aead := range []AEAD{AESGCM, CHACHAPOLY} {
			t.Run(kdf.String()+"/"+aead.String(), func(t *testing.T) {
				c := ShardCipher{KeyDerivation: kdf, Encryption: aead}
				encrypted, err := c.Encrypt(plaintext, password)
				require.NoError(t, err)
				assert.Equal(t, byte(kdf), encrypted[1])
				assert.Equal(t, byte(aead), encrypted[2])

				// The envelope is self-describing.
				decrypted, err := Decrypt(encrypted, password)
				require.NoError(t, err)
				assert.Equal(t, plaintext, decrypted)
			})
		}
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	c := ShardCipher{KeyDerivation: PBKDF2, Encryption: AESGCM}
	a, err := c.Encrypt([]byte("same"), []byte("pw"))
	require.NoError(t, err)
	b, err := c.Encrypt([]byte("same"), []byte("pw"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEncryptUnknownAlgorithm(t *testing.T) {
	_, err := ShardCipher{KeyDerivation: KDF(9), Encryption: AESGCM}.Encrypt([]byte("x"), nil)
	require.Error(t, err)

	_, err = ShardCipher{KeyDerivation: PBKDF2, Encryption: AEAD(9)}.Encrypt([]byte("x"), nil)
	require.Error(t, err)
}

func TestDecryptionWithWrongPassword(t *testing.T) {
	c := ShardCipher{KeyDerivation: SCRYPT, Encryption: CHACHAPOLY}
	encrypted, err := c.Encrypt([]byte("secret"), []byte("right"))
	require.NoError(t, err)

	decrypted, err := Decrypt(encrypted, []byte("wrong"))
	require.Error(t, err)
	assert.Nil(t, decrypted)
	assert.ErrorIs(t, err, interfaces.ErrDecryption)
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Contains(t, err.Error(), "op:Decrypt")
}

func TestEmptyPassword(t *testing.T) {
	c := ShardCipher{KeyDerivation: PBKDF2, Encryption: AESGCM}
	encrypted, err := c.Encrypt([]byte("secret"), nil)
	require.NoError(t, err)

	decrypted, err := c.Decrypt(encrypted, []byte{})
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), decrypted)
}

func TestDecryptTampered(t *testing.T) {
	password := []byte("pw")
	c := ShardCipher{KeyDerivation: PBKDF2, Encryption: AESGCM}
	encrypted, err := c.Encrypt([]byte("a shard worth protecting"), password)
	require.NoError(t, err)

	positions := map[string]int{
		"version":    0,
		"kdf":        1,
		"aead":       2,
		"salt":       headerSize,
		"nonce":      headerSize + saltSize,
		"ciphertext": headerSize + saltSize + 12,
		"tag":        len(encrypted) - 1,
	}

	for name, pos := range positions {
		t.Run(name, func(t *testing.T) {
			tampered := bytes.Clone(encrypted)
			tampered[pos] ^= 0x01

			decrypted, err := Decrypt(tampered, password)
			require.Error(t, err)
			assert.Nil(t, decrypted)
			assert.True(t, errors.Is(err, interfaces.ErrDecryption))
		})
	}
}

func TestDecryptMalformed(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "Empty",
			data: nil,
			want: ErrCiphertextTooShort,
		},
		{
			name: "Header only",
			data: []byte{envelopeVersion, byte(PBKDF2), byte(AESGCM)},
			want: ErrCiphertextTooShort,
		},
		{
			name: "Missing tag",
			data: append([]byte{envelopeVersion, byte(PBKDF2), byte(AESGCM)}, make([]byte, saltSize+12)...),
			want: ErrCiphertextTooShort,
		},
		{
			name: "Unknown version",
			data: append([]byte{2, byte(PBKDF2), byte(AESGCM)}, make([]byte, 64)...),
			want: ErrUnsupportedVersion,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decrypt(tc.data, []byte("pw"))
			require.Error(t, err)
			assert.ErrorIs(t, err, interfaces.ErrDecryption)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseAlgorithms(t *testing.T) {
	kdf, err := ParseKDF("Argon2id")
	require.NoError(t, err)
	assert.Equal(t, ARGON2ID, kdf)

	_, err = ParseKDF("bcrypt")
	assert.Error(t, err)

	aead, err := ParseAEAD(" xchacha20-poly1305 ")
	require.NoError(t, err)
	assert.Equal(t, CHACHAPOLY, aead)

	_, err = ParseAEAD("aes-cbc")
	assert.Error(t, err)

	assert.Equal(t, "KDF(7)", KDF(7).String())
	assert.Equal(t, "aes-gcm", AESGCM.String())
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("secret"))
	b := Fingerprint([]byte("secret"))
	c := Fingerprint([]byte("Secret"))

	assert.Len(t, a, 32)
	assert.True(t, FingerprintEqual(a, b))
	assert.False(t, FingerprintEqual(a, c))
	assert.False(t, FingerprintEqual(a, a[:16]))
}

func TestWipeBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	WipeBytes(data)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)
	WipeBytes(nil)
}

func FuzzDecrypt(f *testing.F) {
	f.Add([]byte{envelopeVersion, 0, 0})
	f.Add(make([]byte, 64))
	f.Fuzz(func(t *testing.T, data []byte) {
		plaintext, err := ShardCipher{}.Decrypt(data, []byte("pw"))
		if err == nil {
			t.Fatalf("decrypted random input to %x", plaintext)
		}
		if !errors.Is(err, interfaces.ErrDecryption) {
			t.Fatalf("unexpected error class: %v", err)
		}
	})
}
