// Package pcs implements the polynomial commitment layer (spec §4.I):
// a Merkle tree over witness columns, keyed the way the sumcheck
// engine addresses a hypercube point, plus a low-degree proximity
// check standing in for a full FRI/line-check protocol.
package pcs

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// MerkleTree commits to a list of leaves (one per hypercube point,
// each leaf the concatenation of every committed column's value at
// that point), grounded on the teacher's core.MerkleTree but hashing
// with sha3 rather than sha256/Poseidon to match this module's
// transcript hash.
type MerkleTree struct {
	root   []byte
	leaves [][]byte
	levels [][][]byte
}

// NewMerkleTree builds a tree over data, one leaf hash per entry.
// Fails if data is empty.
func NewMerkleTree(data [][]byte) (*MerkleTree, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("pcs: cannot build a merkle tree over zero leaves")
	}

	leaves := make([][]byte, len(data))
	for i, item := range data {
		leaves[i] = leafHash(item)
	}

	levels := [][][]byte{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([][]byte, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 < len(current) {
				next = append(next, nodeHash(current[i], current[i+1]))
			} else {
				next = append(next, nodeHash(current[i], current[i]))
			}
		}
		levels = append(levels, next)
		current = next
	}

	return &MerkleTree{root: current[0], leaves: leaves, levels: levels}, nil
}

// Root returns the tree's root digest.
func (mt *MerkleTree) Root() []byte {
	return append([]byte(nil), mt.root...)
}

// ProofNode is one sibling hash encountered walking from a leaf to the
// root, tagged with which side it sits on.
type ProofNode struct {
	Hash    []byte
	IsRight bool
}

// Open returns the authentication path for the leaf at index.
func (mt *MerkleTree) Open(index int) ([]ProofNode, error) {
	if index < 0 || index >= len(mt.leaves) {
		return nil, fmt.Errorf("pcs: leaf index %d out of range [0, %d)", index, len(mt.leaves))
	}
	var proof []ProofNode
	cur := index
	for level := 0; level < len(mt.levels)-1; level++ {
		row := mt.levels[level]
		var sibling int
		var isRight bool
		if cur%2 == 0 {
			sibling, isRight = cur+1, true
		} else {
			sibling, isRight = cur-1, false
		}
		if sibling >= len(row) {
			// An unpaired last node is hashed with itself (NewMerkleTree).
			sibling, isRight = cur, true
		}
		proof = append(proof, ProofNode{Hash: row[sibling], IsRight: isRight})
		cur /= 2
	}
	return proof, nil
}

// VerifyOpening checks that leaf, combined with proof, reproduces root.
func VerifyOpening(root, leaf []byte, proof []ProofNode) bool {
	hash := leafHash(leaf)
	for _, node := range proof {
		if node.IsRight {
			hash = nodeHash(hash, node.Hash)
		} else {
			hash = nodeHash(node.Hash, hash)
		}
	}
	return string(hash) == string(root)
}

func leafHash(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

func nodeHash(left, right []byte) []byte {
	combined := make([]byte, 0, len(left)+len(right))
	combined = append(combined, left...)
	combined = append(combined, right...)
	h := sha3.Sum256(combined)
	return h[:]
}

// EncodeRow packs a row of field elements (one evaluation per committed
// column, at a fixed hypercube point) into a leaf's byte representation.
func EncodeRow(row []field.Element) []byte {
	var out []byte
	for _, e := range row {
		width := (field.BitWidth(e.Level()) + 7) / 8
		b := e.Big().Bytes()
		padded := make([]byte, width)
		copy(padded[width-len(b):], b)
		out = append(out, padded...)
	}
	return out
}
