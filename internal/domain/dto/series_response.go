package dto

import "github.com/guttosm/stockcharts/internal/domain/models"

// SeriesPoint is one trading day with its derived indicators. Undefined
// indicator values are null.
type SeriesPoint struct {
	Date          string   `json:"date" example:"2024-01-02"`
	Open          *float64 `json:"open" example:"10.1"`
	High          *float64 `json:"high" example:"10.9"`
	Low           *float64 `json:"low" example:"9.8"`
	Close         *float64 `json:"close" example:"10.4"`
	Volume        *float64 `json:"vol" example:"120000"`
	MovingAverage *float64 `json:"ma" example:"10.25"`
	DailyReturn   *float64 `json:"return_pct" example:"1.5"`
	Volatility    *float64 `json:"volatility" example:"2.1"`
	Direction     string   `json:"direction" example:"up" enums:"up,down,flat"`
}

// SeriesResponse is returned by GET /api/v1/series.
type SeriesResponse struct {
	Symbol           string        `json:"symbol" example:"601127.SH"`
	Window           int           `json:"window" example:"10"`
	VolatilityWindow int           `json:"volatility_window" example:"20"`
	Points           []SeriesPoint `json:"points"`
}

// ArtifactsResponse lists the files written by a render run.
type ArtifactsResponse struct {
	Artifacts []models.Artifact `json:"artifacts"`
}
