package entities

// ChunkType classifies a territory cell. Most cells are plain claims;
// a temple is a semantic marker with no ownership bonus.
type ChunkType string

// Chunk classifications
const (
	ChunkNone   ChunkType = "NONE"
	ChunkTemple ChunkType = "TEMPLE"
)

// CellKey is the lookup key for a territory cell: one cell per chunked
// world coordinate.
type CellKey struct {
	World string
	X     int
	Z     int
}

// TerritoryCell is a claimed world-grid cell. A cell has at most one
// owning empire and exists only while claimed.
type TerritoryCell struct {
	World    string    `json:"world"`
	X        int       `json:"x"`
	Z        int       `json:"z"`
	EmpireID EmpireID  `json:"empire"`
	Type     ChunkType `json:"type"`
}

// Key returns the cell's lookup key
func (c *TerritoryCell) Key() CellKey {
	return CellKey{World: c.World, X: c.X, Z: c.Z}
}

// Clone returns a copy of the cell
func (c *TerritoryCell) Clone() *TerritoryCell {
	out := *c
	return &out
}
