/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLength = 16
	hashLength = 32
)

// HashSecret generates an scrypt hash of a trimmed secret as "salt$hash"
func HashSecret(secret string) (string, error) {
	salt := make([]byte, saltLength)
	_, err := rand.Read(salt)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash, err := scrypt.Key([]byte(strings.TrimSpace(secret)), salt, 32768, 8, 1, hashLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash: %w", err)
	}

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("%s$%s", b64Salt, b64Hash), nil
}

// decodeHash returns salt and hash if stored is in hash format
func decodeHash(stored string) ([]byte, []byte, bool) {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil || len(salt) != saltLength {
		return nil, nil, false
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil || len(hash) != hashLength {
		return nil, nil, false
	}
	return salt, hash, true
}

// IsHashed reports whether a stored secret is an scrypt hash
func IsHashed(stored string) bool {
	_, _, ok := decodeHash(stored)
	return ok
}

// CheckSecret compares a presented secret with a stored one. Stored values
// that are not hashes are legacy plaintext and are compared exactly.
// Both sides are trimmed and an empty secret never matches.
func CheckSecret(stored, presented string) bool {
	stored = strings.TrimSpace(stored)
	presented = strings.TrimSpace(presented)
	if stored == "" || presented == "" {
		return false
	}

	salt, hash, ok := decodeHash(stored)
	if !ok {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
	}

	comparisonHash, err := scrypt.Key([]byte(presented), salt, 32768, 8, 1, hashLength)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(hash, comparisonHash) == 1
}

// GenerateSecret returns a random numeric PIN of the given length
func GenerateSecret(length int) (string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate secret: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
