package prover

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/vybium/towerproof/internal/towerproof/builder"
	"github.com/vybium/towerproof/internal/towerproof/field"
	"github.com/vybium/towerproof/internal/towerproof/pcs"
)

// MarshalBinary serializes a Proof deterministically, in the same
// big-endian, length-prefixed style as witness.Index.MarshalBinary, so
// cmd/towerproof-prove can write a proof to stdout and a separate
// invocation can read it back for verification.
func (p *Proof) MarshalBinary() ([]byte, error) {
	var out []byte
	out = appendUint64(out, uint64(p.LogSize))

	out = appendUint64(out, uint64(len(p.CommittedIDs)))
	for _, id := range p.CommittedIDs {
		out = appendUint64(out, uint64(id))
	}

	out = appendUint64(out, uint64(len(p.Root)))
	out = append(out, p.Root...)

	out = appendUint64(out, uint64(len(p.QueryIndices)))
	for _, z := range p.QueryIndices {
		out = appendUint64(out, uint64(z))
	}

	out = appendUint64(out, uint64(len(p.OpenedRows)))
	for _, row := range p.OpenedRows {
		out = appendElements(out, row)
	}

	out = appendUint64(out, uint64(len(p.OpenedProofs)))
	for _, proof := range p.OpenedProofs {
		out = appendUint64(out, uint64(len(proof)))
		for _, node := range proof {
			out = appendUint64(out, uint64(len(node.Hash)))
			out = append(out, node.Hash...)
			if node.IsRight {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}

	out = appendUint64(out, uint64(p.ExtendedDomainSize))
	out = appendUint64(out, uint64(len(p.ExtendedCodewords)))
	for _, cw := range p.ExtendedCodewords {
		out = appendElements(out, cw)
	}

	return out, nil
}

// UnmarshalBinary is the inverse of MarshalBinary.
func (p *Proof) UnmarshalBinary(data []byte) error {
	r := &byteReader{data: data}

	logSize, err := r.uint64()
	if err != nil {
		return err
	}
	p.LogSize = int(logSize)

	nCommitted, err := r.uint64()
	if err != nil {
		return err
	}
	p.CommittedIDs = make([]builder.OracleID, nCommitted)
	for i := range p.CommittedIDs {
		v, err := r.uint64()
		if err != nil {
			return err
		}
		p.CommittedIDs[i] = builder.OracleID(v)
	}

	rootLen, err := r.uint64()
	if err != nil {
		return err
	}
	p.Root, err = r.bytes(int(rootLen))
	if err != nil {
		return err
	}

	nQueries, err := r.uint64()
	if err != nil {
		return err
	}
	p.QueryIndices = make([]int, nQueries)
	for i := range p.QueryIndices {
		v, err := r.uint64()
		if err != nil {
			return err
		}
		p.QueryIndices[i] = int(v)
	}

	nRows, err := r.uint64()
	if err != nil {
		return err
	}
	p.OpenedRows = make([][]field.Element, nRows)
	for i := range p.OpenedRows {
		row, err := r.elements()
		if err != nil {
			return err
		}
		p.OpenedRows[i] = row
	}

	nProofs, err := r.uint64()
	if err != nil {
		return err
	}
	p.OpenedProofs = make([][]pcs.ProofNode, nProofs)
	for i := range p.OpenedProofs {
		nNodes, err := r.uint64()
		if err != nil {
			return err
		}
		nodes := make([]pcs.ProofNode, nNodes)
		for j := range nodes {
			hLen, err := r.uint64()
			if err != nil {
				return err
			}
			h, err := r.bytes(int(hLen))
			if err != nil {
				return err
			}
			sideByte, err := r.byte()
			if err != nil {
				return err
			}
			nodes[j] = pcs.ProofNode{Hash: h, IsRight: sideByte == 1}
		}
		p.OpenedProofs[i] = nodes
	}

	extSize, err := r.uint64()
	if err != nil {
		return err
	}
	p.ExtendedDomainSize = int(extSize)

	nCodewords, err := r.uint64()
	if err != nil {
		return err
	}
	p.ExtendedCodewords = make([][]field.Element, nCodewords)
	for i := range p.ExtendedCodewords {
		cw, err := r.elements()
		if err != nil {
			return err
		}
		p.ExtendedCodewords[i] = cw
	}

	return nil
}

func appendElements(out []byte, elems []field.Element) []byte {
	out = appendUint64(out, uint64(len(elems)))
	for _, e := range elems {
		out = appendUint64(out, uint64(e.Level()))
		width := (field.BitWidth(e.Level()) + 7) / 8
		b := e.Big().Bytes()
		padded := make([]byte, width)
		copy(padded[width-len(b):], b)
		out = appendUint64(out, uint64(width))
		out = append(out, padded...)
	}
	return out
}

func appendUint64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// byteReader is a minimal cursor over a marshaled Proof's bytes.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) uint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, fmt.Errorf("prover: unmarshal: truncated uint64 at offset %d", r.pos)
	}
	v := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *byteReader) byte() (byte, error) {
	if r.pos+1 > len(r.data) {
		return 0, fmt.Errorf("prover: unmarshal: truncated byte at offset %d", r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) bytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("prover: unmarshal: truncated %d-byte field at offset %d", n, r.pos)
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

func (r *byteReader) elements() ([]field.Element, error) {
	n, err := r.uint64()
	if err != nil {
		return nil, err
	}
	out := make([]field.Element, n)
	for i := range out {
		level, err := r.uint64()
		if err != nil {
			return nil, err
		}
		width, err := r.uint64()
		if err != nil {
			return nil, err
		}
		b, err := r.bytes(int(width))
		if err != nil {
			return nil, err
		}
		out[i] = field.New(int(level), new(big.Int).SetBytes(b))
	}
	return out, nil
}
