package password

import (
	"crypto/rand"
	"errors"
)

const alphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generate returns a random password drawn from an unambiguous alphabet.
func Generate(length int) (string, error) {
	if length < 12 {
		return "", errors.New("password length too short")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b), nil
}
