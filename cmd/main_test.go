package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/guttosm/stockcharts/internal/chart"
	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/ingestion"
	"github.com/guttosm/stockcharts/internal/service"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServer(t *testing.T) {
	srv := startServer(dummyHandler{}, "9090")
	if srv == nil || srv.Addr != ":9090" || srv.Handler == nil {
		t.Fatalf("unexpected server: %+v", srv)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := startServer(dummyHandler{}, "0") // random port

	cleaned := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, func() { close(cleaned) }) }()

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
	select {
	case <-cleaned:
	default:
		t.Fatalf("cleanup not called")
	}
}

func TestServe_ListenError(t *testing.T) {
	srv := startServer(dummyHandler{}, "not-a-port")
	cleaned := false

	done := make(chan error, 1)
	go func() { done <- serve(context.Background(), srv, func() { cleaned = true }) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected listen error")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("serve did not return on listen error")
	}
	if !cleaned {
		t.Fatalf("cleanup not called")
	}
}

type stubService struct {
	arts []models.Artifact
	err  error
}

func (s *stubService) Frame(context.Context) (*models.Frame, error) { return nil, s.err }
func (s *stubService) Render(context.Context, chart.Kind, *models.Frame, io.Writer) error {
	return s.err
}
func (s *stubService) RenderAll(context.Context) ([]models.Artifact, error) { return s.arts, s.err }
func (s *stubService) Indicators(context.Context, int) (*service.Indicators, error) {
	return nil, s.err
}

func TestRender(t *testing.T) {
	ok := &stubService{arts: []models.Artifact{{Kind: "candlestick", Path: "charts/stock_candlestick.png"}}}
	if err := render(context.Background(), ok); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	dle := &ingestion.DataLoadError{Source: "in.csv", Err: ingestion.ErrDuplicateDate}
	if err := render(context.Background(), &stubService{err: dle}); !errors.Is(err, ingestion.ErrDuplicateDate) {
		t.Fatalf("want DataLoadError, got %v", err)
	}
}
