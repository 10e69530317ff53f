package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/logger"
)

// DefaultTushareURL is the public Tushare Pro endpoint.
const DefaultTushareURL = "http://api.tushare.pro"

const tushareDateLayout = "20060102"

// TushareConfig carries the settings for a TushareFetcher. The token is
// passed explicitly; nothing is read from global state.
type TushareConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// TushareFetcher queries the Tushare Pro "daily" API.
type TushareFetcher struct {
	client *resty.Client
	token  string
}

type tushareRequest struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params"`
	Fields  string            `json:"fields,omitempty"`
}

type tushareResponse struct {
	RequestID string `json:"request_id"`
	Code      int    `json:"code"`
	Msg       string `json:"msg"`
	Data      *struct {
		Fields []string `json:"fields"`
		Items  [][]any  `json:"items"`
	} `json:"data"`
}

// NewTushareFetcher builds a fetcher. An empty BaseURL uses
// DefaultTushareURL and a zero Timeout uses 30s.
func NewTushareFetcher(cfg TushareConfig) (*TushareFetcher, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTushareURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Content-Type", "application/json")

	return &TushareFetcher{client: client, token: cfg.Token}, nil
}

func (f *TushareFetcher) Name() string { return "tushare" }

// FetchDaily posts a "daily" query and maps the field/item matrix into a
// Table. Field names are kept as returned (trade_date, open, high, low,
// close, vol, ...) so the normalizer resolves them like any CSV header.
func (f *TushareFetcher) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.Table, error) {
	req := tushareRequest{
		APIName: "daily",
		Token:   f.token,
		Params: map[string]string{
			"ts_code":    symbol,
			"start_date": start.Format(tushareDateLayout),
			"end_date":   end.Format(tushareDateLayout),
		},
	}

	var out tushareResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/")
	if err != nil {
		return nil, fmt.Errorf("tushare daily %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tushare daily %s: http %d: %s", symbol, resp.StatusCode(), resp.String())
	}
	if out.Code != 0 {
		return nil, fmt.Errorf("tushare daily %s: code %d: %s", symbol, out.Code, out.Msg)
	}

	t := &models.Table{Header: header()}
	if out.Data == nil {
		return t, nil
	}
	t.Header = out.Data.Fields
	t.Rows = make([][]string, 0, len(out.Data.Items))
	for _, item := range out.Data.Items {
		row := make([]string, len(out.Data.Fields))
		for i := range row {
			if i < len(item) {
				row[i] = formatItem(item[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}

	logger.Component("provider").Info().
		Str("provider", f.Name()).
		Str("symbol", symbol).
		Str("request_id", out.RequestID).
		Int("rows", t.Len()).
		Msg("daily bars fetched")
	return t, nil
}

// formatItem renders one JSON cell as text. Numbers go through decimal so
// binary float noise never reaches the normalizer.
func formatItem(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return decimal.NewFromFloat(x).String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
