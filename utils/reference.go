package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Reference number layouts per workflow. The timestamp-digit width is the
// only thing that varies between them.
const (
	BookingRefDigits    = 8
	AssistanceRefDigits = 12
	BrochureRefDigits   = 8
	TestDriveRefDigits  = 6
	ComplaintRefDigits  = 8
)

// GenerateReference builds a human-facing confirmation identifier:
// prefix, a run of digits taken from the RFC3339 form of now, a zero-padded
// 4-digit pseudo-random number, and (when fragment is non-empty) a 3-letter
// code derived from payload text. These are correlation tokens for people,
// not idempotency keys; collisions are possible but unlikely at this volume.
func GenerateReference(prefix string, now time.Time, digits int, fragment string) string {
	parts := []string{
		strings.ToUpper(prefix),
		timestampDigits(now, digits),
		fmt.Sprintf("%04d", rand.Intn(10000)),
	}
	if fragment != "" {
		parts = append(parts, AlphaFragment(fragment, 3))
	}
	return strings.Join(parts, "-")
}

// timestampDigits extracts the digit characters of the RFC3339 timestamp
// and truncates them to n, zero-padding on the right if the source runs
// short (it cannot for n <= 14, but never fail regardless).
func timestampDigits(t time.Time, n int) string {
	var b strings.Builder
	for _, r := range t.Format(time.RFC3339) {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat("0", n-len(s))
}

// AlphaFragment derives a short uppercase code from free text: the first n
// characters with non-letters replaced by 'X', padded with 'X' when the
// source is shorter than n.
func AlphaFragment(s string, n int) string {
	out := make([]rune, 0, n)
	for _, r := range strings.TrimSpace(s) {
		if len(out) == n {
			break
		}
		if unicode.IsLetter(r) {
			out = append(out, unicode.ToUpper(r))
		} else {
			out = append(out, 'X')
		}
	}
	for len(out) < n {
		out = append(out, 'X')
	}
	return string(out)
}
