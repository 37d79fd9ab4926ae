package groestl

import (
	"github.com/vybium/towerproof/internal/towerproof/field"
	"github.com/vybium/towerproof/internal/towerproof/witness"
)

// GenerateWitness evaluates the reference permutation over every lane
// of states (one lane per row of the 2^logSize-row committed columns)
// and returns the witness entries for every committed oracle
// BuildPermutation registered: the StateSize input columns and, for
// each round, the S-box inv_bits columns and the post-mix output
// columns. Transparent and linear-combination oracles (multiples_16,
// round_index, round_consts, inv, the S-box affine output) are
// derived on the fly by the verifier and need no owned storage.
func GenerateWitness(oracles *Oracles, states []State) ([]witness.Entry, error) {
	n := len(states)
	entries := make([]witness.Entry, 0, StateSize+NRounds*(StateSize*8+StateSize))

	for idx := 0; idx < StateSize; idx++ {
		data := make([]field.Element, n)
		for z := 0; z < n; z++ {
			data[z] = aesByte(states[z][idx])
		}
		entries = append(entries, witness.Entry{OracleID: int(oracles.Input[idx]), Level: aesLevel, Data: data})
	}

	cur := make([]State, n)
	copy(cur, states)

	for r := 0; r < NRounds; r++ {
		subOut := make([]State, n)
		for z := 0; z < n; z++ {
			subOut[z] = subBytesWithRoundConstant(cur[z], r)
		}

		for idx := 0; idx < StateSize; idx++ {
			col := idx / 8
			row := idx % 8
			invBitsData := make([][]field.Element, 8)
			for b := 0; b < 8; b++ {
				invBitsData[b] = make([]field.Element, n)
			}
			for z := 0; z < n; z++ {
				v := cur[z][idx]
				if row == 0 {
					v ^= byte(col)*0x10 ^ byte(r)
				}
				inv := aesByte(v).InvertOrZero().Byte()
				for b := 0; b < 8; b++ {
					bit := (inv >> uint(b)) & 1
					invBitsData[b][z] = field.FromUint64(aesLevel, uint64(bit))
				}
			}
			for b := 0; b < 8; b++ {
				entries = append(entries, witness.Entry{OracleID: int(oracles.RoundInvBits[r][idx][b]), Level: aesLevel, Data: invBitsData[b]})
			}
		}

		out := make([]State, n)
		for z := 0; z < n; z++ {
			out[z] = shiftAndMixColumns(subOut[z])
		}
		for idx := 0; idx < StateSize; idx++ {
			data := make([]field.Element, n)
			for z := 0; z < n; z++ {
				data[z] = aesByte(out[z][idx])
			}
			entries = append(entries, witness.Entry{OracleID: int(oracles.RoundOutputs[r][idx]), Level: aesLevel, Data: data})
		}
		cur = out
	}

	return entries, nil
}
