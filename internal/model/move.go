package model

// Move records one accepted placement. It is the unit of undo and of
// persisted history; values are never modified after creation.
type Move struct {
	Pos          Position
	WasP1Turn    bool
	PointsGained int
}
