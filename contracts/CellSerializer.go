package contracts

type CellSerializer interface {
	Marshal(address string, cell Cell) []byte
	Unmarshal([]byte) (address string, cell Cell, err error)
}
