package territory

import (
	"github.com/pixelempires/empire-api/internal/entities"
)

// GetCellInput defines the request for a cell lookup by coordinate
type GetCellInput struct {
	World string
	X     int
	Z     int
}

// GetCellOutput defines the response for a cell lookup
type GetCellOutput struct {
	Cell *entities.TerritoryCell
}

// ClaimInput defines the request for claiming a cell
type ClaimInput struct {
	World    string
	X        int
	Z        int
	EmpireID entities.EmpireID
}

// ClaimOutput defines the response for a claim
type ClaimOutput struct {
	Cell *entities.TerritoryCell
}

// ReleaseInput defines the request for releasing a claimed cell
type ReleaseInput struct {
	World string
	X     int
	Z     int
}

// ReleaseOutput defines the response for a release
type ReleaseOutput struct{}

// ClassifyInput defines the request for reclassifying a cell
type ClassifyInput struct {
	World string
	X     int
	Z     int
	Type  entities.ChunkType
}

// ClassifyOutput defines the response for a reclassification
type ClassifyOutput struct {
	Cell *entities.TerritoryCell
}

// CellsOfInput defines the request for listing an empire's territory
type CellsOfInput struct {
	EmpireID entities.EmpireID
}

// CellsOfOutput defines the response for listing an empire's territory
type CellsOfOutput struct {
	Cells []*entities.TerritoryCell
}

// ReleaseAllInput defines the request for releasing every cell an
// empire owns, used on dissolution
type ReleaseAllInput struct {
	EmpireID entities.EmpireID
}

// ReleaseAllOutput defines the response for a bulk release
type ReleaseAllOutput struct {
	Released int
}
