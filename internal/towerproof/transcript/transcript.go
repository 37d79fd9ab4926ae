// Package transcript implements the Fiat-Shamir transcript the
// prover and verifier share (spec §4.I), generalizing the teacher's
// utils.Channel from a Goldilocks-specific random-oracle channel into
// one that can sample a tower field element at any level.
package transcript

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// Transcript is a running Fiat-Shamir state: every Append ratchets the
// state forward via sha3, and every Sample derives a challenge from
// the current state before ratcheting again, so no two samples ever
// reuse the same state.
type Transcript struct {
	state []byte
	log   []string
}

// New returns a fresh transcript seeded with a domain separator, so
// transcripts for different protocols never collide even given
// identical subsequent messages.
func New(domain string) *Transcript {
	seed := sha3.Sum256([]byte("towerproof/transcript/" + domain))
	return &Transcript{state: seed[:], log: make([]string, 0, 64)}
}

// Append absorbs labeled bytes into the transcript.
func (t *Transcript) Append(label string, data []byte) {
	t.log = append(t.log, fmt.Sprintf("append:%s:%s", label, hex.EncodeToString(data)))
	h := sha3.New256()
	h.Write(t.state)
	h.Write([]byte(label))
	h.Write(data)
	t.state = h.Sum(nil)
}

// AppendElements absorbs a row of field elements under one label.
func (t *Transcript) AppendElements(label string, elems []field.Element) {
	var buf []byte
	for _, e := range elems {
		width := (field.BitWidth(e.Level()) + 7) / 8
		b := e.Big().Bytes()
		padded := make([]byte, width)
		copy(padded[width-len(b):], b)
		buf = append(buf, padded...)
	}
	t.Append(label, buf)
}

// SampleChallenge derives a pseudorandom element of the given tower
// level from the current state, then ratchets the state so the next
// sample is independent.
func (t *Transcript) SampleChallenge(level int) field.Element {
	h := sha3.Sum256(append([]byte("sample"), t.state...))
	t.log = append(t.log, fmt.Sprintf("sample:level=%d:%s", level, hex.EncodeToString(h[:])))
	t.state = h[:]

	width := (field.BitWidth(level) + 7) / 8
	if width > len(h) {
		width = len(h)
	}
	v := new(big.Int).SetBytes(h[:width])
	return field.New(level, v)
}

// SampleChallenges draws n independent challenges at the given level.
func (t *Transcript) SampleChallenges(level, n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = t.SampleChallenge(level)
	}
	return out
}

// State returns a defensive copy of the transcript's current digest.
func (t *Transcript) State() []byte {
	return append([]byte(nil), t.state...)
}

// String renders the transcript's append/sample log, useful for
// debugging a proving session's Fiat-Shamir interaction.
func (t *Transcript) String() string {
	return strings.Join(t.log, " ")
}
