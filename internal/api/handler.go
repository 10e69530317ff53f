package api

import (
	"bytes"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockcharts/internal/chart"
	"github.com/guttosm/stockcharts/internal/domain/dto"
	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/middleware"
	"github.com/guttosm/stockcharts/internal/series"
	"github.com/guttosm/stockcharts/internal/service"
)

// Handler provides HTTP handlers for chart and series endpoints.
//
// Responsibilities:
//   - Validate path and query parameters
//   - Delegate loading and rendering to the ChartService
//   - Translate results into response DTOs or raw chart bytes
type Handler struct {
	svc           service.ChartService
	defaultWindow int
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.ChartService): loads and renders the configured series.
//   - defaultWindow (int): moving-average window used when the request
//     does not pass one.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.ChartService, defaultWindow int) *Handler {
	return &Handler{svc: svc, defaultWindow: defaultWindow}
}

// GetChart handles GET /api/v1/charts/:kind requests.
//
// Path Parameters:
//   - kind (string): one of candlestick, volume, volatility, distribution,
//     interactive.
//
// Responses:
//   - 200 OK: PNG image, or an HTML page for the interactive kind.
//   - 400 Bad Request: unknown chart kind.
//   - 500 Internal Server Error: the series could not be loaded or rendered.
//
// GetChart godoc
// @Summary      Render one chart
// @Description  Renders the requested chart for the configured series
// @Tags         charts
// @Produce      png
// @Produce      html
// @Param        kind  path      string  true  "Chart kind" Enums(candlestick, volume, volatility, distribution, interactive)
// @Success      200   {file}    binary  "Chart"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/charts/{kind} [get]
func (h *Handler) GetChart(c *gin.Context) {
	kind, err := chart.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unknown chart kind", err))
		return
	}

	ctx := c.Request.Context()
	frame, err := h.svc.Frame(ctx)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to load series", err)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Render(ctx, kind, frame, &buf); err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to render chart", err)
		return
	}
	c.Data(http.StatusOK, kind.ContentType(), buf.Bytes())
}

// GetSeries handles GET /api/v1/series requests.
//
// Query Parameters:
//   - window (int, optional): moving-average window. Defaults to the
//     configured interactive window.
//
// Responses:
//   - 200 OK: SeriesResponse with one point per trading day.
//   - 400 Bad Request: window is not a positive integer.
//   - 422 Unprocessable Entity: the series has no close column.
//   - 500 Internal Server Error: the series could not be loaded.
//
// GetSeries godoc
// @Summary      Get the series with indicators
// @Description  Returns OHLCV bars with moving average, daily return, rolling volatility and direction
// @Tags         series
// @Produce      json
// @Param        window  query     int  false  "Moving-average window" example(10)
// @Success      200     {object}  dto.SeriesResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse   "Bad Request"
// @Failure      422     {object}  dto.ErrorResponse   "Unprocessable"
// @Failure      500     {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/series [get]
func (h *Handler) GetSeries(c *gin.Context) {
	window := h.defaultWindow
	if raw := strings.TrimSpace(c.Query("window")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("window must be a positive integer", err))
			return
		}
		window = n
	}

	ind, err := h.svc.Indicators(c.Request.Context(), window)
	switch {
	case err == nil:
	case errors.Is(err, series.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid window", err))
		return
	case errors.Is(err, series.ErrMissingColumn):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("series has no close prices", err))
		return
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to load series", err)
		return
	}

	c.JSON(http.StatusOK, toSeriesResponse(ind))
}

// RenderAll handles POST /api/v1/charts/render requests.
//
// RenderAll godoc
// @Summary      Write every chart to the output directory
// @Description  Loads the series once and writes all chart artifacts
// @Tags         charts
// @Produce      json
// @Success      200  {object}  dto.ArtifactsResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/charts/render [post]
func (h *Handler) RenderAll(c *gin.Context) {
	arts, err := h.svc.RenderAll(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to render charts", err)
		return
	}
	c.JSON(http.StatusOK, dto.ArtifactsResponse{Artifacts: arts})
}

func toSeriesResponse(ind *service.Indicators) dto.SeriesResponse {
	f := ind.Frame
	points := make([]dto.SeriesPoint, f.Len())
	for i, b := range f.Bars {
		points[i] = dto.SeriesPoint{
			Date:          b.Date.Format(models.DateLayout),
			Open:          optional(b.Open),
			High:          optional(b.High),
			Low:           optional(b.Low),
			Close:         optional(b.Close),
			Volume:        optional(b.Volume),
			MovingAverage: optional(ind.MovingAverage[i]),
			DailyReturn:   optional(ind.DailyReturn[i]),
			Volatility:    optional(ind.Volatility[i]),
			Direction:     ind.Directions[i].String(),
		}
	}
	return dto.SeriesResponse{
		Symbol:           f.Symbol,
		Window:           ind.Window,
		VolatilityWindow: ind.VolatilityWindow,
		Points:           points,
	}
}

// optional maps NaN and ±Inf to nil so undefined values encode as null.
func optional(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
