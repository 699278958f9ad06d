// Package id generates primary-key values for records whose schema assigns
// identifiers on the client rather than relying on the server.
//
// Two formats are provided: UUID v4 for general-purpose keys and ULID for
// keys that must sort chronologically. Both use crypto-grade randomness.
package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UUID returns a random UUID v4 string.
func UUID() string {
	return uuid.NewString()
}

// ulidAlphabet is Crockford's Base32 (I, L, O and U excluded).
const ulidAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	ulidMu     sync.Mutex
	ulidLastMs int64
	ulidSeq    uint16
)

// ULID returns a 26-character Universally Unique Lexicographically Sortable
// Identifier: 10 characters of millisecond timestamp followed by 16
// characters of randomness. IDs generated within the same millisecond carry
// a sequence number so they remain distinct; ordering is only guaranteed
// across different milliseconds.
func ULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	now := time.Now().UnixMilli()
	if now == ulidLastMs {
		ulidSeq++
		if ulidSeq == 0 {
			for now == ulidLastMs {
				time.Sleep(time.Millisecond)
				now = time.Now().UnixMilli()
			}
			ulidLastMs = now
		}
	} else {
		ulidLastMs = now
		ulidSeq = 0
	}

	out := make([]byte, 26)
	for i := 9; i >= 0; i-- {
		out[i] = ulidAlphabet[now&0x1F]
		now >>= 5
	}

	entropy := make([]byte, 10)
	_, _ = rand.Read(entropy)
	entropy[0] ^= byte(ulidSeq >> 8)
	entropy[1] ^= byte(ulidSeq)

	// 80 bits of entropy packed into 16 base32 characters.
	var acc uint64
	bits := 0
	pos := 10
	for _, b := range entropy {
		acc = acc<<8 | uint64(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[pos] = ulidAlphabet[(acc>>uint(bits))&0x1F]
			pos++
		}
	}
	return string(out)
}

// Valid reports whether s is a well-formed ULID.
func Valid(s string) bool {
	if len(s) != 26 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !validULIDChar(s[i]) {
			return false
		}
	}
	return true
}

func validULIDChar(c byte) bool {
	for i := 0; i < len(ulidAlphabet); i++ {
		if ulidAlphabet[i] == c {
			return true
		}
	}
	return false
}
