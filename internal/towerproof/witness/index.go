// Package witness implements the witness index (spec §4.F): a partial
// function from oracle id to a dense packed column of 2^log_size
// scalars at the oracle's tower level, written once during builder
// population and thereafter immutable for the duration of proving.
package witness

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// Column is one committed oracle's backing storage: a dense evaluation
// table at a fixed tower level.
type Column struct {
	Level int
	Data  []field.Element
}

// Entry is one (oracle id, buffer) pair as accepted by SetOwned.
type Entry struct {
	OracleID int
	Level    int
	Data     []field.Element
}

// Index is the witness index: oracle id -> Column.
type Index struct {
	columns map[int]*Column
}

// New returns an empty witness index.
func New() *Index {
	return &Index{columns: make(map[int]*Column)}
}

// SetOwned installs backing storage for a batch of oracle ids at once.
// Fails with a DuplicateOracleIDError if any id repeats within the
// batch or was already installed by a prior call, and with
// ErrBufferNotPowerOfTwo if a buffer's length isn't 2^log_size for some
// log_size.
func (idx *Index) SetOwned(entries []Entry) error {
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if seen[e.OracleID] {
			return &DuplicateOracleIDError{OracleID: e.OracleID}
		}
		seen[e.OracleID] = true
		if _, exists := idx.columns[e.OracleID]; exists {
			return &DuplicateOracleIDError{OracleID: e.OracleID}
		}
		n := len(e.Data)
		if n == 0 || (n&(n-1)) != 0 {
			return fmt.Errorf("witness: set_owned oracle %d: %w (length %d)", e.OracleID, ErrBufferNotPowerOfTwo, n)
		}
	}
	for _, e := range entries {
		cp := make([]field.Element, len(e.Data))
		copy(cp, e.Data)
		idx.columns[e.OracleID] = &Column{Level: e.Level, Data: cp}
	}
	return nil
}

// Get returns the typed view of oracle id's column, verifying the
// requested tower level matches the column's actual level.
func (idx *Index) Get(oracleID, level int) ([]field.Element, error) {
	col, ok := idx.columns[oracleID]
	if !ok {
		return nil, fmt.Errorf("witness: get(%d): %w", oracleID, ErrOracleNotSet)
	}
	if col.Level != level {
		return nil, &TowerLevelMismatchError{OracleID: oracleID, Expected: level, Got: col.Level}
	}
	return col.Data, nil
}

// Has reports whether oracle id has backing storage installed.
func (idx *Index) Has(oracleID int) bool {
	_, ok := idx.columns[oracleID]
	return ok
}

// MarshalBinary serializes the witness index deterministically: a
// count of columns, then for each (in ascending oracle id order) the
// id, level, element count, and raw big-endian element bytes. This
// satisfies spec §6's "byte layout is implementation-defined but must
// round-trip via deterministic serialization" requirement.
func (idx *Index) MarshalBinary() ([]byte, error) {
	ids := make([]int, 0, len(idx.columns))
	for id := range idx.columns {
		ids = append(ids, id)
	}
	sortInts(ids)

	var out []byte
	out = appendUint64(out, uint64(len(ids)))
	for _, id := range ids {
		col := idx.columns[id]
		out = appendUint64(out, uint64(id))
		out = appendUint64(out, uint64(col.Level))
		out = appendUint64(out, uint64(len(col.Data)))
		width := (field.BitWidth(col.Level) + 7) / 8
		out = appendUint64(out, uint64(width))
		for _, e := range col.Data {
			b := e.Big().Bytes()
			padded := make([]byte, width)
			copy(padded[width-len(b):], b)
			out = append(out, padded...)
		}
	}
	return out, nil
}

// UnmarshalBinary is the inverse of MarshalBinary, replacing the
// index's contents with the decoded columns.
func (idx *Index) UnmarshalBinary(data []byte) error {
	columns := make(map[int]*Column)
	pos := 0
	readUint64 := func() (uint64, error) {
		if pos+8 > len(data) {
			return 0, fmt.Errorf("witness: unmarshal: truncated header at offset %d", pos)
		}
		v := binary.BigEndian.Uint64(data[pos : pos+8])
		pos += 8
		return v, nil
	}

	count, err := readUint64()
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		id, err := readUint64()
		if err != nil {
			return err
		}
		level, err := readUint64()
		if err != nil {
			return err
		}
		n, err := readUint64()
		if err != nil {
			return err
		}
		width, err := readUint64()
		if err != nil {
			return err
		}
		data2 := make([]field.Element, n)
		for j := uint64(0); j < n; j++ {
			if pos+int(width) > len(data) {
				return fmt.Errorf("witness: unmarshal: truncated column %d at offset %d", id, pos)
			}
			v := new(big.Int).SetBytes(data[pos : pos+int(width)])
			pos += int(width)
			data2[j] = field.New(int(level), v)
		}
		columns[int(id)] = &Column{Level: int(level), Data: data2}
	}
	idx.columns = columns
	return nil
}

func appendUint64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
