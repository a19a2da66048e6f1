// Package gameid mints opaque, time-sortable identifiers for tables and
// hands: a UUIDv7 rendered as 26 characters of Crockford base32. Sorting
// the strings lexicographically sorts them by creation time, which keeps
// hand logs and archives naturally ordered.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32 alphabet: no i, l, o, or u.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// idLen is the length of an encoded id: 130 bits of output for 128 bits
// of UUID, so the first character only ever encodes 3 significant bits.
const idLen = 26

// RandSource supplies the random tail of an id; tests inject a
// deterministic one. *math/rand/v2.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generate mints a new id from crypto/rand.
func Generate() string {
	return GenerateWithRandSource(nil)
}

// GenerateWithRandSource mints a new id, drawing the random bytes from
// src when non-nil.
func GenerateWithRandSource(src RandSource) string {
	return encode(newUUIDv7(src))
}

// newUUIDv7 lays out a 128-bit UUIDv7: a 48-bit millisecond timestamp,
// then random bits, with the version and variant fields stamped in.
func newUUIDv7(src RandSource) [16]byte {
	var u [16]byte

	ms := uint64(time.Now().UnixMilli())
	for i := 0; i < 6; i++ {
		u[i] = byte(ms >> (40 - 8*i))
	}

	if src != nil {
		for i := 6; i < 16; i++ {
			u[i] = byte(src.IntN(256))
		}
	} else {
		if _, err := rand.Read(u[6:]); err != nil {
			panic("gameid: crypto/rand failed: " + err.Error())
		}
	}

	u[6] = (u[6] & 0x0f) | 0x70 // version 7
	u[8] = (u[8] & 0x3f) | 0x80 // variant 10

	return u
}

// encode renders 128 bits as 26 base32 characters, most significant bits
// first. The bytes are streamed through a bit accumulator five bits at a
// time, with the input left-padded by two zero bits to reach 130.
func encode(u [16]byte) string {
	var b strings.Builder
	b.Grow(idLen)

	acc := uint32(0)
	bits := 2 // two leading zero bits pad 128 up to a multiple of 5
	for _, by := range u {
		acc = acc<<8 | uint32(by)
		bits += 8
		for bits >= 5 {
			bits -= 5
			b.WriteByte(alphabet[(acc>>bits)&0x1f])
		}
	}
	return b.String()
}

// Validate reports whether id is a well-formed identifier: 26 characters
// of the base32 alphabet, with a first character small enough to decode
// back into 128 bits.
func Validate(id string) error {
	if len(id) != idLen {
		return fmt.Errorf("gameid: want %d characters, got %d", idLen, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("gameid: first character %q out of range (0-7)", id[0])
	}
	for i := 0; i < len(id); i++ {
		if !strings.ContainsRune(alphabet, rune(id[i])) {
			return fmt.Errorf("gameid: invalid character %q at position %d", id[i], i)
		}
	}
	return nil
}
