package witness

import (
	"errors"
	"fmt"
)

// DuplicateOracleIDError is returned by SetOwned when an oracle id is
// supplied more than once, or was already installed by a previous call.
type DuplicateOracleIDError struct {
	OracleID int
}

func (e *DuplicateOracleIDError) Error() string {
	return fmt.Sprintf("witness: duplicate oracle id %d", e.OracleID)
}

func (e *DuplicateOracleIDError) Unwrap() error {
	return errDuplicateOracleID
}

var errDuplicateOracleID = errors.New("witness: duplicate oracle id")

// ErrOracleNotSet is returned by Get when no backing storage has been
// installed for the requested oracle id.
var ErrOracleNotSet = errors.New("witness: oracle has no backing storage")

// TowerLevelMismatchError is returned by Get when the caller requests a
// tower level different from the column's actual level.
type TowerLevelMismatchError struct {
	OracleID int
	Expected int
	Got      int
}

func (e *TowerLevelMismatchError) Error() string {
	return fmt.Sprintf("witness: oracle %d is at tower level %d, requested %d", e.OracleID, e.Got, e.Expected)
}

func (e *TowerLevelMismatchError) Unwrap() error {
	return errTowerLevelMismatch
}

var errTowerLevelMismatch = errors.New("witness: tower level mismatch")

// ErrBufferNotPowerOfTwo is returned by SetOwned when a supplied buffer
// length is not a power of two.
var ErrBufferNotPowerOfTwo = errors.New("witness: buffer length must be a power of two")
