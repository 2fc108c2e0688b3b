package snaps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/config"
	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

const statsXML = `<?xml version="1.0" encoding="UTF-8"?>
<statistics startTime="1570230300" period="900">
  <approach name="Entry">
    <lanes>
      <lane name="EntryA"><stat volume="23" occupancy="4.1"/></lane>
      <lane name="EntryB"><stat volume="5" occupancy="0.8"/></lane>
    </lanes>
  </approach>
</statistics>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.SnapsConfig{
		URL:      server.URL + "/snaps/dataservice/stats.xml",
		Username: "user",
		Password: "secret",
		Timeout:  5 * time.Second,
	})
}

func TestClient_FetchCounts(t *testing.T) {
	window := domain.MeasurementWindow{StartEpochUTC: 1570230300, DurationSeconds: 900}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		want := map[string]string{
			"userName":      "user",
			"password":      "secret",
			"startTime":     "1570230300",
			"period":        "900",
			"locationGroup": "entry-station",
		}
		for k, v := range want {
			if got := q.Get(k); got != v {
				t.Errorf("query %s = %q, want %q", k, got, v)
			}
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(statsXML))
	})

	counts, err := client.FetchCounts(context.Background(), "entry-station", window)
	if err != nil {
		t.Fatalf("FetchCounts() error = %v", err)
	}

	want := domain.LaneCounts{"EntryA": 23, "EntryB": 5}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("FetchCounts() = %v, want %v", counts, want)
	}
}

func TestClient_FetchCounts_DataUnavailable(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{
			name:       "error document",
			status:     http.StatusOK,
			body:       `<error>invalid credentials</error>`,
			wantDetail: "invalid credentials",
		},
		{
			name:       "not xml",
			status:     http.StatusOK,
			body:       "service unavailable",
			wantDetail: "service unavailable",
		},
		{
			name:       "bad volume",
			status:     http.StatusOK,
			body:       `<statistics><approach><lanes><lane name="EntryA"><stat volume="n/a"/></lane></lanes></approach></statistics>`,
			wantDetail: "EntryA",
		},
		{
			name:       "server error",
			status:     http.StatusBadGateway,
			body:       "upstream failed",
			wantDetail: "status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.FetchCounts(context.Background(), "entry-station", domain.MeasurementWindow{})
			if !errors.Is(err, domain.ErrDataUnavailable) {
				t.Fatalf("err = %v, want ErrDataUnavailable", err)
			}
			if !strings.Contains(err.Error(), tt.wantDetail) {
				t.Errorf("err = %q, want it to contain %q", err.Error(), tt.wantDetail)
			}
		})
	}
}

func TestClient_FetchCounts_EmptyStatistics(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<statistics></statistics>`))
	})

	counts, err := client.FetchCounts(context.Background(), "entry-station", domain.MeasurementWindow{})
	if err != nil {
		t.Fatalf("FetchCounts() error = %v", err)
	}
	if !counts.IsEmpty() {
		t.Errorf("FetchCounts() = %v, want empty", counts)
	}
}

func TestRedact(t *testing.T) {
	u, err := url.Parse("https://example.com/stats.xml?password=secret&userName=user")
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}

	got := redact(u)
	if strings.Contains(got, "secret") {
		t.Errorf("redact() = %q, password leaked", got)
	}
	if !strings.Contains(got, "userName=user") {
		t.Errorf("redact() = %q, want other parameters kept", got)
	}
}
