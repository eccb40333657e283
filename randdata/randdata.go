// Package randdata generates random strings of bounded length for filling in forms.
package randdata

import (
	"math/rand/v2"
	"strings"
	"time"
)

const (
	Letters       = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits        = "0123456789"
	Alphanumerics = Letters + Digits
)

// NewRand returns a generator for the given seed. A zero seed means a time-based seed; the
// seed actually used is returned so that a run can be reproduced.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}

// Length picks a length in [minLen, maxLen). If the range is empty it returns minLen.
func Length(r *rand.Rand, minLen, maxLen int) int {
	if maxLen <= minLen+1 {
		return minLen
	}
	return minLen + r.IntN(maxLen-minLen)
}

// String returns a string of characters from charset whose length is in [minLen, maxLen).
func String(r *rand.Rand, charset string, minLen, maxLen int) string {
	n := Length(r, minLen, maxLen)
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(charset[r.IntN(len(charset))])
	}
	return b.String()
}

func Alphabetic(r *rand.Rand, minLen, maxLen int) string {
	return String(r, Letters, minLen, maxLen)
}

func Alphanumeric(r *rand.Rand, minLen, maxLen int) string {
	return String(r, Alphanumerics, minLen, maxLen)
}

func Numeric(r *rand.Rand, minLen, maxLen int) string {
	return String(r, Digits, minLen, maxLen)
}

// Pick returns a uniformly chosen index in [0, n), or -1 if n is zero.
func Pick(r *rand.Rand, n int) int {
	if n <= 0 {
		return -1
	}
	return r.IntN(n)
}
