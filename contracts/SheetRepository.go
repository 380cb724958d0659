package contracts

type SheetRepository interface {
	SetCell(sheetId string, cellId string, rawValue string) (*Cell, error)
	GetCell(sheetId string, cellId string) (*Cell, error)
	GetSheet(sheetId string) (Sheet, error)
	// LoadSheet writes whole cells over the sheet and recalculates it; given computed values seed the first pass
	LoadSheet(sheetId string, cells Sheet) (Sheet, error)
	GetDependants(sheetId string, cellId string) ([]string, error)
}
