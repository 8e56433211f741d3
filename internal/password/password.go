// Package password rates password strength, suggests strong passwords and
// hashes the chosen one for storage.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinLength     = 8
	Specials      = "!@#$%^&*"
	DefaultLength = 12
	letters       = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits        = "0123456789"
	alphabet      = letters + digits + Specials
)

var (
	ErrInvalidLength = errors.New("invalid password length")
	ErrMismatch      = errors.New("password does not match hash")
)

// Rating is the overall verdict of a strength check.
type Rating string

const (
	RatingStrong   Rating = "strong"
	RatingModerate Rating = "moderate"
	RatingWeak     Rating = "weak"
	RatingCommon   Rating = "common"
)

var blacklist = map[string]struct{}{
	"password":    {},
	"password123": {},
	"qwerty":      {},
	"123456":      {},
	"letmein":     {},
	"welcome":     {},
	"admin":       {},
}

// Result of Check. Feedback holds one line per failed rule followed by the verdict.
type Result struct {
	Score    int
	Rating   Rating
	Feedback []string
}

// IsBlacklisted reports whether pw is one of the well-known common passwords.
func IsBlacklisted(pw string) bool {
	_, ok := blacklist[strings.ToLower(pw)]
	return ok
}

// Check scores pw against four rules: length, mixed case, a digit and a
// special character. Common passwords are rejected before scoring.
func Check(pw string) Result {
	if IsBlacklisted(pw) {
		return Result{
			Rating:   RatingCommon,
			Feedback: []string{"This password is too common and easily guessed!"},
		}
	}

	var res Result

	if len([]rune(pw)) >= MinLength {
		res.Score++
	} else {
		res.Feedback = append(res.Feedback, fmt.Sprintf("Password should be at least %d characters long.", MinLength))
	}

	if strings.IndexFunc(pw, isASCIIUpper) >= 0 && strings.IndexFunc(pw, isASCIILower) >= 0 {
		res.Score++
	} else {
		res.Feedback = append(res.Feedback, "Include both uppercase and lowercase letters.")
	}

	if strings.IndexFunc(pw, unicode.IsDigit) >= 0 {
		res.Score++
	} else {
		res.Feedback = append(res.Feedback, "Add at least one number (0-9).")
	}

	if strings.ContainsAny(pw, Specials) {
		res.Score++
	} else {
		res.Feedback = append(res.Feedback, fmt.Sprintf("Include at least one special character (%s).", Specials))
	}

	switch res.Score {
	case 4:
		res.Rating = RatingStrong
		res.Feedback = append(res.Feedback, "Strong Password!")
	case 3:
		res.Rating = RatingModerate
		res.Feedback = append(res.Feedback, "Moderate Password - Consider adding more security features.")
	default:
		res.Rating = RatingWeak
		res.Feedback = append(res.Feedback, "Weak Password - Improve it using the suggestions above.")
	}

	return res
}

// Generate returns n distinct characters drawn from letters, digits and
// Specials in random order.
func Generate(n int) (string, error) {
	if n <= 0 || n > len(alphabet) {
		return "", fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidLength, n, len(alphabet))
	}

	pool := []byte(alphabet)
	// partial Fisher-Yates: the first n slots end up as a random sample
	for i := 0; i < n; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool)-i)))
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		k := i + int(j.Int64())
		pool[i], pool[k] = pool[k], pool[i]
	}
	return string(pool[:n]), nil
}

// Hash returns a bcrypt hash of pw.
func Hash(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks pw against a hash produced by Hash.
func Verify(hash, pw string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
