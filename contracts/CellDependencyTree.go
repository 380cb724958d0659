package contracts

import "go.etcd.io/bbolt"

type CellDependencyTree interface {
	// SetDependsOn
	/**
	 * For formula `C1 = A1 + SUM(B1:B2)`:
	 * `dependantCellId` reads every cell of `dependingOnCellIds`
	 *  SetDependsOn(tx, sheetId, "C1", []string{"A1", "B1", "B2"})
	 * Calling it again replaces the previous list; an empty list clears it.
	 */
	SetDependsOn(tx *bbolt.Tx, sheetId []byte, dependantCellId string, dependingOnCellIds []string) error

	// GetDependants
	/**
	 * For formulas
	 *    - `C1 = A1 + B1`
	 *    - `E5 = C1 * 2`
	 * GetDependants("A1") returns ["C1", "E5"] (E5 through C1).
	 *
	 * Keys are prefixed by the depending-on address, so the direct dependants
	 * of one cell are a single cursor seek.
	 */
	GetDependants(tx *bbolt.Tx, sheetId []byte, dependingOnCellId string) []string
}
