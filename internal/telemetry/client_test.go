package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aricg/PuckDraft/internal/config"
	"github.com/rs/zerolog"
)

func TestReportSendsPayload(t *testing.T) {
	var got payload
	received := make(chan struct{}, 1)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		received <- struct{}{}
	}))
	defer sink.Close()

	c, err := NewClient(&config.Config{TelemetryURL: sink.URL}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	c.Report(context.Background(), 123)
	select {
	case <-received:
	default:
		t.Fatal("sink never received the push")
	}
	if got.Hits != 123 {
		t.Fatalf("hits: got %d, want 123", got.Hits)
	}
	if got.Instance == "" {
		t.Fatal("instance ID missing from payload")
	}
}

func TestReportWithoutSinkIsNoOp(t *testing.T) {
	c, err := NewClient(&config.Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	// Must not panic or block.
	c.Report(context.Background(), 1)
}

func TestReportSwallowsSinkFailure(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer sink.Close()

	c, err := NewClient(&config.Config{TelemetryURL: sink.URL}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	// Failure is logged, never surfaced.
	c.Report(context.Background(), 7)

	sink.Close()
	c.Report(context.Background(), 8)
}
