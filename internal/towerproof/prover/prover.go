// Package prover implements the toy end-to-end Prove entry point spec
// §6 names: given a compiled builder.ConstraintSystem and a populated
// witness.Index, it checks the witness against every constraint,
// commits to the committed columns with a pcs.MerkleTree, opens a
// Fiat-Shamir-sampled set of rows, and attaches a systematic low-rate
// extension of each committed column so the verifier can run
// pcs.CheckLowDegree — the "Merkle commitment plus a systematic-code
// line-check opening" spec §4.I scopes this module's PCS stand-in to,
// grounded on the teacher's cmd/vybium-vm-prover proving pipeline
// (commit, sample, open) with FRI's recursive folding left out, as
// documented in DESIGN.md.
package prover

import (
	"fmt"
	"math/big"

	"github.com/vybium/towerproof/internal/towerproof/builder"
	"github.com/vybium/towerproof/internal/towerproof/config"
	"github.com/vybium/towerproof/internal/towerproof/domain"
	"github.com/vybium/towerproof/internal/towerproof/field"
	"github.com/vybium/towerproof/internal/towerproof/pcs"
	"github.com/vybium/towerproof/internal/towerproof/rowcheck"
	"github.com/vybium/towerproof/internal/towerproof/transcript"
	"github.com/vybium/towerproof/internal/towerproof/witness"
)

// Proof is the artifact Prove produces and Verify consumes: a Merkle
// commitment to the committed columns' rows, a handful of opened rows
// at Fiat-Shamir-sampled indices, and a systematic low-rate extension
// of each committed column for the line-check.
type Proof struct {
	LogSize      int
	CommittedIDs []builder.OracleID

	Root         []byte
	QueryIndices []int
	OpenedRows   [][]field.Element
	OpenedProofs [][]pcs.ProofNode

	ExtendedDomainSize int
	ExtendedCodewords  [][]field.Element // index-aligned with CommittedIDs
}

// Prove checks ws against every constraint in cs, then builds a Proof
// that Verify can check without access to ws.
func Prove(cs *builder.ConstraintSystem, ws *witness.Index, cfg *config.Config) (*Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cs.Oracles) == 0 {
		return nil, ErrEmptyConstraintSystem
	}
	logSize := cs.Oracles[0].LogSize
	n := 1 << uint(logSize)

	committedIDs := rowcheck.CommittedOracleIDs(cs)
	if len(committedIDs) == 0 {
		return nil, ErrNoCommittedOracles
	}

	columns := make(map[builder.OracleID][]field.Element, len(committedIDs))
	level := cs.Oracles[committedIDs[0]].Level
	for _, id := range committedIDs {
		o := cs.Oracles[id]
		data, err := ws.Get(int(id), o.Level)
		if err != nil {
			return nil, fmt.Errorf("prover: reading committed oracle %d: %w", id, err)
		}
		if len(data) != n {
			return nil, fmt.Errorf("prover: committed oracle %d has %d rows, constraint system expects %d", id, len(data), n)
		}
		columns[id] = data
	}

	// Full witness-satisfaction check: every constraint must evaluate
	// to zero at every hypercube row before we commit to anything.
	for z := 0; z < n; z++ {
		lookup := func(id builder.OracleID) (field.Element, error) {
			return columns[id][z], nil
		}
		if err := rowcheck.CheckRow(cs, lookup); err != nil {
			return nil, fmt.Errorf("prover: row %d: %w: %w", z, ErrWitnessInvalid, err)
		}
	}

	rows := make([][]byte, n)
	for z := 0; z < n; z++ {
		row := make([]field.Element, len(committedIDs))
		for i, id := range committedIDs {
			row[i] = columns[id][z]
		}
		rows[z] = pcs.EncodeRow(row)
	}
	tree, err := pcs.NewMerkleTree(rows)
	if err != nil {
		return nil, err
	}

	tr := transcript.New("towerproof/prove")
	tr.Append("root", tree.Root())

	queryIndices := sampleQueryIndices(tr, cfg, level, n)

	openedRows := make([][]field.Element, len(queryIndices))
	openedProofs := make([][]pcs.ProofNode, len(queryIndices))
	for i, z := range queryIndices {
		row := make([]field.Element, len(committedIDs))
		for j, id := range committedIDs {
			row[j] = columns[id][z]
		}
		openedRows[i] = row
		proof, err := tree.Open(z)
		if err != nil {
			return nil, err
		}
		openedProofs[i] = proof
	}

	extendedSize := n << uint(cfg.LogInvRate)
	baseDomain, err := domain.New(level, n)
	if err != nil {
		return nil, err
	}
	extDomain, err := domain.New(level, extendedSize)
	if err != nil {
		return nil, err
	}
	extendedCodewords := make([][]field.Element, len(committedIDs))
	for ci, id := range committedIDs {
		col := columns[id]
		codeword := make([]field.Element, extendedSize)
		copy(codeword, col)
		for z := n; z < extendedSize; z++ {
			v, err := baseDomain.Extrapolate(col, extDomain.Points()[z])
			if err != nil {
				return nil, err
			}
			codeword[z] = v
		}
		ok, err := pcs.CheckLowDegree(extDomain, codeword, cfg.LogInvRate)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("prover: oracle %d's own extension failed its low-degree check: %w", id, ErrWitnessInvalid)
		}
		extendedCodewords[ci] = codeword
	}

	return &Proof{
		LogSize:            logSize,
		CommittedIDs:       committedIDs,
		Root:               tree.Root(),
		QueryIndices:       queryIndices,
		OpenedRows:         openedRows,
		OpenedProofs:       openedProofs,
		ExtendedDomainSize: extendedSize,
		ExtendedCodewords:  extendedCodewords,
	}, nil
}

// sampleQueryIndices derives ceil(SecurityBits/LogInvRate) distinct
// row indices from the transcript, clamped to the domain's size —
// each query against a rate-1/2^LogInvRate code narrows a cheating
// prover's acceptance probability by roughly LogInvRate bits.
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
