package models

// Direction classifies a day's move by the sign of its daily return.
type Direction int

const (
	// Flat covers a zero return and days without a defined return.
	Flat Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "flat"
	}
}

// Artifact describes one chart file written to the output directory.
//
// Fields:
//   - Kind: chart kind that produced it (e.g., "candlestick").
//   - Path: file path relative to the working directory.
//   - ContentType: MIME type of the file ("image/png" or "text/html").
type Artifact struct {
	Kind        string `json:"kind" example:"candlestick"`
	Path        string `json:"path" example:"charts/stock_candlestick.png"`
	ContentType string `json:"content_type" example:"image/png"`
}
