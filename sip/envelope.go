package sip

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

const (
	hashSize   = sha256.Size
	ivSize     = aes.BlockSize
	headerSize = hashSize + ivSize

	padByte = 0x10
)

// endOfContent is appended to the plaintext before padding.
var endOfContent = []byte{0x00, padByte}

// trailer lists the bytes stripped from the end of a decrypted plaintext.
const trailer = "\x10\x0a\x00"

var randReader io.Reader = rand.Reader

// Encrypt seals plaintext into an envelope for the controller secured by password.
//
// The envelope is sha256(plaintext) | iv | ciphertext, where the ciphertext is AES-256-CBC with
// key sha256(password) over the plaintext followed by 0x00 0x10 and padded with 0x10 bytes to the
// block size. The iv is random for every call.
func Encrypt(password string, plaintext []byte) ([]byte, error) {
	block, err := newBlock(password)
	if err != nil {
		return nil, err
	}

	padded := pad(plaintext)
	hash := sha256.Sum256(plaintext)

	msg := make([]byte, headerSize+len(padded))
	copy(msg, hash[:])

	iv := msg[hashSize:headerSize]
	if _, err := io.ReadFull(randReader, iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(msg[headerSize:], padded)

	return msg, nil
}

// Decrypt opens an envelope received from the controller and returns the plaintext without
// its trailing padding.
//
// The leading hash is not verified. It returns ErrDecryptOrParse if the envelope is too short or
// the ciphertext is not a whole number of blocks.
func Decrypt(password string, msg []byte) ([]byte, error) {
	if len(msg) < headerSize+aes.BlockSize {
		return nil, fmt.Errorf("%w: message is %d bytes", ErrDecryptOrParse, len(msg))
	}

	ciphertext := msg[headerSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes, not a multiple of %d", ErrDecryptOrParse, len(ciphertext), aes.BlockSize)
	}

	block, err := newBlock(password)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, msg[hashSize:headerSize]).CryptBlocks(plaintext, ciphertext)

	return bytes.TrimRight(plaintext, trailer), nil
}

func newBlock(password string) (cipher.Block, error) {
	key := sha256.Sum256([]byte(password))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	return block, nil
}

// pad appends the end of content marker and pads the result to the AES block size.
func pad(plaintext []byte) []byte {
	n := len(plaintext) + len(endOfContent)
	n += aes.BlockSize - n%aes.BlockSize

	out := make([]byte, len(plaintext), n)
	copy(out, plaintext)
	out = append(out, endOfContent...)
	for len(out) < n {
		out = append(out, padByte)
	}

	return out
}
