// Package secret generates one-time passwords and passwords from a
// cryptographically secure random source.
package secret

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/cockroachdb/errors"
)

const (
	digits      = "0123456789"
	letters     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// LengthSpec は生成する文字列長の許容範囲です。
type LengthSpec struct {
	Min int
	Max int
}

// Contains reports whether n lies within the envelope.
func (l LengthSpec) Contains(n int) bool {
	return n >= l.Min && n <= l.Max
}

// Profile ties an alphabet to the lengths it may be generated at.
type Profile struct {
	Name     string
	Alphabet string
	Length   LengthSpec
}

var (
	// OTP は数字のみのワンタイムパスワードです。
	OTP = Profile{
		Name:     "otp",
		Alphabet: digits,
		Length:   LengthSpec{Min: 1, Max: 8},
	}
	// Password は英字・数字・記号からなるパスワードです。
	Password = Profile{
		Name:     "password",
		Alphabet: letters + digits + punctuation,
		Length:   LengthSpec{Min: 1, Max: 4096},
	}
)

// Generate validates raw against the profile's length envelope and draws that
// many characters from the profile alphabet.
func Generate(p Profile, raw string) (string, error) {
	n, err := p.parseLength(raw)
	if err != nil {
		return "", err
	}

	out := make([]byte, n)
	for i := range out {
		c, err := randomChar(p.Alphabet)
		if err != nil {
			return "", errors.Wrapf(err, "generate %s", p.Name)
		}
		out[i] = c
	}
	return string(out), nil
}

func (p Profile) parseLength(raw string) (int, error) {
	if !isDigits(raw) {
		return 0, &ValidationError{Kind: NotANumber, Raw: raw, Length: p.Length}
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !p.Length.Contains(n) {
		// all-digit input that overflows int is still a number, just too big
		return 0, &ValidationError{Kind: OutOfRange, Raw: raw, Length: p.Length}
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func randomChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
