// Command towerproof-prove is the CLI harness around prover.Prove and
// verifier.Verify (spec §6), grounded on the teacher's
// cmd/vybium-vm-prover: stdin carries one JSON line describing a
// computed-column trace, stdout carries the binary-marshaled proof,
// and every status line goes to stderr — except here stderr logging
// goes through zerolog's structured console writer rather than the
// teacher's bare fmt.Fprintln(os.Stderr, ...) helpers, wiring up the
// zerolog dependency the rest of the pack's gnark-based repos pull in
// transitively (see DESIGN.md).
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/vybium/towerproof/internal/towerproof/builder"
	"github.com/vybium/towerproof/internal/towerproof/config"
	"github.com/vybium/towerproof/internal/towerproof/field"
	"github.com/vybium/towerproof/internal/towerproof/prover"
	"github.com/vybium/towerproof/internal/towerproof/verifier"
	"github.com/vybium/towerproof/internal/towerproof/witness"
)

// traceInput is the stdin JSON line's shape: one row per element of
// Rows, each supplying the two committed inputs spec.md's worked
// "computed column" scenario names. Row count must be a power of two.
type traceInput struct {
	SecurityBits int    `json:"security_bits"`
	LogInvRate   int    `json:"log_inv_rate"`
	Rows         []row  `json:"rows"`
	HashFunction string `json:"hash_function,omitempty"`
}

type row struct {
	C1 uint64 `json:"c1"`
	C2 uint64 `json:"c2"`
}

const traceLevel = 3 // the AES-isomorphic byte field; plenty of room for the demo's small integers

var log zerolog.Logger

func main() {
	verifyOnly := flag.Bool("verify", false, "read a previously written proof from stdin's second line and verify it instead of generating one")
	flag.Parse()

	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Str("cmd", "towerproof-prove").Logger()

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		fatal(fmt.Sprintf("failed to read trace input: %v", err))
	}
	var in traceInput
	if err := json.Unmarshal([]byte(line), &in); err != nil {
		fatal(fmt.Sprintf("failed to parse trace input: %v", err))
	}
	if in.HashFunction == "" {
		in.HashFunction = "sha3"
	}

	cs, ws, err := buildComputedColumnSystem(in)
	if err != nil {
		fatal(fmt.Sprintf("failed to build constraint system: %v", err))
	}

	cfg := config.DefaultConfig().WithSecurityBits(in.SecurityBits).WithLogInvRate(in.LogInvRate).WithHashFunction(in.HashFunction)
	if err := cfg.Validate(); err != nil {
		fatal(fmt.Sprintf("invalid config: %v", err))
	}

	if *verifyOnly {
		runVerify(cs, cfg, reader)
		return
	}
	runProve(cs, ws, cfg)
}

func runProve(cs *builder.ConstraintSystem, ws *witness.Index, cfg *config.Config) {
	log.Info().Int("rows", 1<<uint(cs.Oracles[0].LogSize)).Int("security_bits", cfg.SecurityBits).Msg("proving")
	proof, err := prover.Prove(cs, ws, cfg)
	if err != nil {
		fatal(fmt.Sprintf("proof generation failed: %v", err))
	}
	log.Info().Int("queries", len(proof.QueryIndices)).Msg("proof generated")

	data, err := proof.MarshalBinary()
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize proof: %v", err))
	}
	if _, err := os.Stdout.Write(data); err != nil {
		fatal(fmt.Sprintf("failed to write proof: %v", err))
	}
}

func runVerify(cs *builder.ConstraintSystem, cfg *config.Config, reader *bufio.Reader) {
	proofBytes, err := io.ReadAll(reader)
	if err != nil {
		fatal(fmt.Sprintf("failed to read proof bytes: %v", err))
	}
	var proof prover.Proof
	if err := proof.UnmarshalBinary(proofBytes); err != nil {
		fatal(fmt.Sprintf("failed to parse proof: %v", err))
	}
	log.Info().Msg("verifying")
	if err := verifier.Verify(cs, &proof, cfg); err != nil {
		fatal(fmt.Sprintf("verification failed: %v", err))
	}
	log.Info().Msg("proof is valid")
	fmt.Fprintln(os.Stdout, "OK")
}

// buildComputedColumnSystem wires spec.md's worked round-trip scenario
// for an arbitrary power-of-two row count: committed_1 = row.C1,
// committed_2 = row.C2, computed = (c1+c2)*c1*10 + 1, asserted by a
// single degree-2 composition over all three committed columns.
func buildComputedColumnSystem(in traceInput) (*builder.ConstraintSystem, *witness.Index, error) {
	n := len(in.Rows)
	logSize, err := log2PowerOfTwo(n)
	if err != nil {
		return nil, nil, err
	}

	b := builder.New()
	c1, err := b.AddCommitted("committed_1", logSize, traceLevel)
	if err != nil {
		return nil, nil, err
	}
	c2, err := b.AddCommitted("committed_2", logSize, traceLevel)
	if err != nil {
		return nil, nil, err
	}
	computed, err := b.AddCommitted("computed", logSize, traceLevel)
	if err != nil {
		return nil, nil, err
	}
	if err := b.AssertZero("computed_check", []builder.OracleID{computed, c1, c2}, computedCheck{}); err != nil {
		return nil, nil, err
	}
	cs := b.Compile()

	c1Data := make([]field.Element, n)
	c2Data := make([]field.Element, n)
	computedData := make([]field.Element, n)
	ten := field.FromUint64(traceLevel, 10)
	one := field.One(traceLevel)
	for i, r := range in.Rows {
		c1Data[i] = field.FromUint64(traceLevel, r.C1)
		c2Data[i] = field.FromUint64(traceLevel, r.C2)
		computedData[i] = c1Data[i].Add(c2Data[i]).Mul(c1Data[i]).Mul(ten).Add(one)
	}

	ws := witness.New()
	if err := ws.SetOwned([]witness.Entry{
		{OracleID: int(c1), Level: traceLevel, Data: c1Data},
		{OracleID: int(c2), Level: traceLevel, Data: c2Data},
		{OracleID: int(computed), Level: traceLevel, Data: computedData},
	}); err != nil {
		return nil, nil, err
	}
	return cs, ws, nil
}

func log2PowerOfTwo(n int) (int, error) {
	if n <= 0 || (n&(n-1)) != 0 {
		return 0, fmt.Errorf("trace has %d rows, want a positive power of two", n)
	}
	logSize := 0
	for 1<<uint(logSize) < n {
		logSize++
	}
	return logSize, nil
}

// computedCheck asserts computed == (c1+c2)*c1*10 + 1.
type computedCheck struct{}

func (computedCheck) NVars() int           { return 3 }
func (computedCheck) Degree() int          { return 2 }
func (computedCheck) BinaryTowerLevel() int { return traceLevel }
func (computedCheck) Evaluate(query []field.Element) (field.Element, error) {
	ten := field.FromUint64(traceLevel, 10)
	one := field.One(traceLevel)
	want := query[1].Add(query[2]).Mul(query[1]).Mul(ten).Add(one)
	return query[0].Add(want), nil
}

func fatal(msg string) {
	log.Error().Msg(msg)
	os.Exit(1)
}
