package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	plaintext := []byte(`{"cpf":"529.982.247-25"}`)

	first, err := Encrypt(plaintext, "segredo")
	require.NoError(t, err)
	second, err := Encrypt(plaintext, "segredo")
	require.NoError(t, err)

	assert.NotEqual(t, first.Salt, second.Salt)
	assert.NotEqual(t, first.Ciphertext, second.Ciphertext)

	decrypted, err := Decrypt(first, "segredo")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)

	_, err = Decrypt(first, "errado")
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestDecryptRejectsTampering(t *testing.T) {
	encData, err := Encrypt([]byte("dados"), "segredo")
	require.NoError(t, err)

	encData.Ciphertext[0] ^= 0xff
	_, err = Decrypt(encData, "segredo")
	assert.ErrorIs(t, err, ErrWrongPassphrase)

	encData.Nonce = encData.Nonce[:4]
	_, err = Decrypt(encData, "segredo")
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestEncryptionNeedsPassphrase(t *testing.T) {
	_, err := Encrypt([]byte("dados"), "")
	assert.ErrorIs(t, err, ErrNoPassphrase)

	_, err = Decrypt(nil, "segredo")
	assert.Error(t, err)
}
