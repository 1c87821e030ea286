package request

// SetSymbolRequest is the request body for selecting the next symbol
type SetSymbolRequest struct {
	Symbol string `json:"symbol"`
}

// PlaceRequest is the request body for playing a move. Symbol is optional
// and selects the symbol before the move is played.
type PlaceRequest struct {
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	Symbol string `json:"symbol,omitempty"`
}
