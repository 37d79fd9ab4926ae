// Package verifier implements the toy Verify entry point matching
// prover.Prove (spec §6): it replays the prover's Fiat-Shamir query
// derivation against the proof's committed root, checks every opened
// row's Merkle authentication path, recomputes each row's derived
// oracles the same way rowcheck does and confirms every constraint
// still holds, and runs pcs.CheckLowDegree over each committed
// oracle's revealed low-rate extension — rejecting on the first
// mismatch, grounded on the teacher's verifier pass over
// cmd/vybium-vm-prover's committed proof artifact.
package verifier

import (
	"fmt"
	"math/big"

	"github.com/vybium/towerproof/internal/towerproof/builder"
	"github.com/vybium/towerproof/internal/towerproof/config"
	"github.com/vybium/towerproof/internal/towerproof/domain"
	"github.com/vybium/towerproof/internal/towerproof/field"
	"github.com/vybium/towerproof/internal/towerproof/pcs"
	"github.com/vybium/towerproof/internal/towerproof/prover"
	"github.com/vybium/towerproof/internal/towerproof/rowcheck"
	"github.com/vybium/towerproof/internal/towerproof/transcript"
)

// Verify reports whether p is a valid proof that some witness
// satisfies cs, without ever seeing that witness directly.
func Verify(cs *builder.ConstraintSystem, p *prover.Proof, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cs.Oracles) == 0 {
		return ErrEmptyConstraintSystem
	}
	logSize := cs.Oracles[0].LogSize
	n := 1 << uint(logSize)

	committedIDs := rowcheck.CommittedOracleIDs(cs)
	if err := checkShape(p, committedIDs, logSize, n, cfg); err != nil {
		return err
	}
	level := cs.Oracles[committedIDs[0]].Level

	tr := transcript.New("towerproof/prove")
	tr.Append("root", p.Root)
	expectedIndices := sampleQueryIndices(tr, cfg, level, n)
	if len(expectedIndices) != len(p.QueryIndices) {
		return fmt.Errorf("verifier: %w: expected %d query indices, proof has %d", ErrProofShapeMismatch, len(expectedIndices), len(p.QueryIndices))
	}
	for i, want := range expectedIndices {
		if p.QueryIndices[i] != want {
			return fmt.Errorf("verifier: %w: query %d should be row %d (Fiat-Shamir derived from the committed root), proof claims row %d", ErrProofShapeMismatch, i, want, p.QueryIndices[i])
		}
	}

	for i, z := range p.QueryIndices {
		row := p.OpenedRows[i]
		if len(row) != len(committedIDs) {
			return fmt.Errorf("verifier: %w: opened row %d has %d entries, expected %d", ErrProofShapeMismatch, i, len(row), len(committedIDs))
		}
		leaf := pcs.EncodeRow(row)
		if !pcs.VerifyOpening(p.Root, leaf, p.OpenedProofs[i]) {
			return fmt.Errorf("verifier: row %d (hypercube index %d): %w", i, z, ErrMerkleOpeningFailed)
		}

		values := make(map[builder.OracleID]field.Element, len(committedIDs))
		for j, id := range committedIDs {
			values[id] = row[j]
			if z < len(p.ExtendedCodewords[j]) && !p.ExtendedCodewords[j][z].Equal(row[j]) {
				return fmt.Errorf("verifier: oracle %d: opened row %d does not match its own revealed extension at index %d: %w", id, i, z, ErrLowDegreeCheckFailed)
			}
		}
		lookup := func(id builder.OracleID) (field.Element, error) { return values[id], nil }
		if err := rowcheck.CheckRow(cs, lookup); err != nil {
			return fmt.Errorf("verifier: opened row %d (hypercube index %d): %w: %w", i, z, ErrConstraintViolated, err)
		}
	}

	extDomain, err := domain.New(level, p.ExtendedDomainSize)
	if err != nil {
		return err
	}
	for ci, id := range committedIDs {
		ok, err := pcs.CheckLowDegree(extDomain, p.ExtendedCodewords[ci], cfg.LogInvRate)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("verifier: oracle %d: %w", id, ErrLowDegreeCheckFailed)
		}
	}

	return nil
}

func checkShape(p *prover.Proof, committedIDs []builder.OracleID, logSize, n int, cfg *config.Config) error {
	if p.LogSize != logSize {
		return fmt.Errorf("verifier: %w: proof log_size %d, constraint system log_size %d", ErrProofShapeMismatch, p.LogSize, logSize)
	}
	if len(p.CommittedIDs) != len(committedIDs) {
		return fmt.Errorf("verifier: %w: proof commits %d oracles, constraint system has %d", ErrProofShapeMismatch, len(p.CommittedIDs), len(committedIDs))
	}
	for i, id := range committedIDs {
		if p.CommittedIDs[i] != id {
			return fmt.Errorf("verifier: %w: committed oracle %d is %d in the proof, %d in the constraint system", ErrProofShapeMismatch, i, p.CommittedIDs[i], id)
		}
	}
	wantExtended := n << uint(cfg.LogInvRate)
	if p.ExtendedDomainSize != wantExtended {
		return fmt.Errorf("verifier: %w: proof extended domain size %d, expected %d", ErrProofShapeMismatch, p.ExtendedDomainSize, wantExtended)
	}
	if len(p.ExtendedCodewords) != len(committedIDs) {
		return fmt.Errorf("verifier: %w: proof has %d extended codewords, expected %d", ErrProofShapeMismatch, len(p.ExtendedCodewords), len(committedIDs))
	}
	for i, cw := range p.ExtendedCodewords {
		if len(cw) != wantExtended {
			return fmt.Errorf("verifier: %w: extended codeword %d has length %d, expected %d", ErrProofShapeMismatch, i, len(cw), wantExtended)
		}
	}
	if len(p.QueryIndices) != len(p.OpenedRows) || len(p.QueryIndices) != len(p.OpenedProofs) {
		return fmt.Errorf("verifier: %w: mismatched query/row/proof counts", ErrProofShapeMismatch)
	}
	return nil
}

// sampleQueryIndices must derive identically to prover.sampleQueryIndices;
// duplicated rather than exported across the package boundary so
// prover stays a one-directional dependency of verifier, matching the
// teacher's prover/verifier split.
func sampleQueryIndices(tr *transcript.Transcript, cfg *config.Config, level, n int) []int {
	want := (cfg.SecurityBits + cfg.LogInvRate - 1) / cfg.LogInvRate
	if want < 1 {
		want = 1
	}
	if want > n {
		want = n
	}
	seen := make(map[int]bool, want)
	indices := make([]int, 0, want)
	nBig := big.NewInt(int64(n))
	for len(indices) < want {
		c := tr.SampleChallenge(level)
		z := int(new(big.Int).Mod(c.Big(), nBig).Int64())
		if seen[z] {
			continue
		}
		seen[z] = true
		indices = append(indices, z)
	}
	return indices
}
