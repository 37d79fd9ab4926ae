// Package config holds the validated tunables a prover/verifier run
// needs (spec §4.J), mirroring the teacher's utils.Config: a struct of
// plain fields, a DefaultConfig constructor, fluent With* setters, and
// a Validate pass run once before a proving session starts.
package config

import "fmt"

// Config bundles the knobs towerproof's prover and verifier share.
type Config struct {
	// SecurityBits is the target statistical soundness error exponent.
	SecurityBits int

	// LogInvRate is log2(1/rate) for the proximity code pcs.CheckLowDegree
	// enforces: a higher rate (smaller LogInvRate) means a cheaper proof
	// but weaker soundness per query.
	LogInvRate int

	// NumWorkers is a worker cap for the sumcheck fold; Validate rejects
	// negative values. No code in this module reads it:
	// sumcheck.CalculateRoundEvals takes its cap from RoundInput.NumWorkers,
	// where 0 uses runtime.GOMAXPROCS(0).
	NumWorkers int

	// HashFunction names the transcript's underlying hash; "sha3" is the
	// only function this module actually wires (golang.org/x/crypto/sha3),
	// kept as a named field rather than hardcoded so a future hash swap
	// doesn't touch every call site, matching the teacher's Config shape.
	HashFunction string
}

// DefaultConfig returns a reasonable configuration for interactive
// experimentation: 100 bits of security, a rate-1/2 proximity code,
// NumWorkers 0, and sha3 transcripts.
func DefaultConfig() *Config {
	return &Config{
		SecurityBits: 100,
		LogInvRate:   1,
		NumWorkers:   0,
		HashFunction: "sha3",
	}
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if c.SecurityBits <= 0 {
		return fmt.Errorf("config: security_bits must be positive, got %d", c.SecurityBits)
	}
	if c.LogInvRate <= 0 {
		return fmt.Errorf("config: log_inv_rate must be positive, got %d", c.LogInvRate)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("config: num_workers must be >= 0, got %d", c.NumWorkers)
	}
	if c.HashFunction != "sha3" {
		return fmt.Errorf("config: unsupported hash function %q, only \"sha3\" is wired", c.HashFunction)
	}
	return nil
}

// WithSecurityBits sets SecurityBits.
func (c *Config) WithSecurityBits(bits int) *Config {
	c.SecurityBits = bits
	return c
}

// WithLogInvRate sets LogInvRate.
func (c *Config) WithLogInvRate(rate int) *Config {
	c.LogInvRate = rate
	return c
}

// WithNumWorkers sets NumWorkers.
func (c *Config) WithNumWorkers(n int) *Config {
	c.NumWorkers = n
	return c
}

// WithHashFunction sets HashFunction.
func (c *Config) WithHashFunction(name string) *Config {
	c.HashFunction = name
	return c
}

// Clone returns an independent copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
