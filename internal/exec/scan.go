package exec

import "github.com/minirel/minirel/internal/storage"

// TableScan delegates directly to the engine's table scan.
type TableScan struct {
	Engine *storage.Engine
	Table  string
}

func (s *TableScan) Execute() ([]*storage.Row, error) {
	return s.Engine.ScanTable(s.Table)
}
