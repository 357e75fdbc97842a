package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/scrypt"
)

const (
	cipherSalt = "SpecialSalt"

	// scrypt work factors; these must not change or existing tokens stop
	// decrypting.
	scryptN = 16384
	scryptR = 8
	scryptP = 1

	keyLen = 32
)

// Cipher encrypts token payloads with AES-256-CBC. Key and IV are both
// derived from a single secret, so the same plaintext always yields the same
// ciphertext.
type Cipher struct {
	block cipher.Block
	iv    []byte
}

// NewCipher derives the key and IV from secret. It is slow on purpose and
// should run once at startup.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("cipher: %w", ErrMissingKey)
	}

	key, err := scrypt.Key([]byte(secret), []byte(cipherSalt), scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("cipher: derive key: %w", err)
	}
	iv, err := scrypt.Key([]byte(secret), []byte(cipherSalt), scryptN, scryptR, scryptP, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("cipher: derive iv: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	return &Cipher{block: block, iv: iv}, nil
}

// Encrypt returns the hex encoded ciphertext of plaintext.
func (c *Cipher) Encrypt(plaintext string) string {
	data := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(out, data)
	return hex.EncodeToString(out)
}

// EncryptObject JSON encodes v and encrypts the result.
func (c *Cipher) EncryptObject(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encrypt object: %w", err)
	}
	return c.Encrypt(string(raw)), nil
}

// Decrypt reverses Encrypt. Input that was not produced by Encrypt with the
// same secret fails with ErrDecryption.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	data, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: bad block length %d", ErrDecryption, len(data))
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(out, data)

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: plaintext is not utf-8", ErrDecryption)
	}
	return string(plain), nil
}

// DecryptObject decrypts ciphertext and JSON decodes it into v.
func (c *Cipher) DecryptObject(ciphertext string, v any) error {
	plain, err := c.Decrypt(ciphertext)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(plain), v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return nil
}

func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > size || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryption)
		}
	}
	return data[:len(data)-n], nil
}
