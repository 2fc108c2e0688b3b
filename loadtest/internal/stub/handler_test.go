package stub

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/traffic-count-collector/internal/config"
	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/infra/snaps"
)

func newStubServer(t *testing.T) (*httptest.Server, *snaps.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewHandler(NewBucketStorage(), "collector", "secret").Register(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	client := snaps.NewClient(&config.SnapsConfig{
		URL:      server.URL + "/snaps/dataservice/stats.xml",
		Username: "collector",
		Password: "secret",
		Timeout:  5 * time.Second,
	})

	return server, client
}

func post(t *testing.T, url, body string) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestStub_ServesSeededVolumes(t *testing.T) {
	server, client := newStubServer(t)

	seed := `{"buckets":[
		{"location_group":"entry-1","lane":"EntryA","start_time":"2019-10-04T23:00:00Z","end_time":"2019-10-04T23:15:00Z","volume":30},
		{"location_group":"entry-1","lane":"EntryB","start_time":"2019-10-04T23:00:00Z","end_time":"2019-10-04T23:15:00Z","volume":9}
	]}`
	if status := post(t, server.URL+"/api/v1/seed", seed); status != http.StatusOK {
		t.Fatalf("seed status = %d", status)
	}

	start := time.Date(2019, 10, 4, 23, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		window domain.MeasurementWindow
		want   domain.LaneCounts
	}{
		{
			name:   "whole bucket",
			window: domain.NewMeasurementWindow(start, 15*time.Minute),
			want:   domain.LaneCounts{"EntryA": 30, "EntryB": 9},
		},
		{
			name:   "first third",
			window: domain.NewMeasurementWindow(start, 5*time.Minute),
			want:   domain.LaneCounts{"EntryA": 10, "EntryB": 3},
		},
		{
			name:   "outside the bucket",
			window: domain.NewMeasurementWindow(start.Add(time.Hour), 15*time.Minute),
			want:   domain.LaneCounts{"EntryA": 0, "EntryB": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.FetchCounts(context.Background(), "entry-1", tt.window)
			if err != nil {
				t.Fatalf("FetchCounts() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("FetchCounts() = %v, want %v", got, tt.want)
			}
			for lane, want := range tt.want {
				if got[lane] != want {
					t.Errorf("lane %s = %d, want %d", lane, got[lane], want)
				}
			}
		})
	}
}

func TestStub_UnknownGroupIsEmpty(t *testing.T) {
	_, client := newStubServer(t)

	got, err := client.FetchCounts(context.Background(), "nowhere",
		domain.NewMeasurementWindow(time.Date(2019, 10, 4, 23, 0, 0, 0, time.UTC), 15*time.Minute))
	if err != nil {
		t.Fatalf("FetchCounts() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("FetchCounts() = %v, want no lanes", got)
	}
}

func TestStub_FaultIsDataUnavailable(t *testing.T) {
	server, client := newStubServer(t)

	fault := `{"location_group":"exit-1","message":"Error: sensor offline"}`
	if status := post(t, server.URL+"/api/v1/faults", fault); status != http.StatusNoContent {
		t.Fatalf("fault status = %d", status)
	}

	window := domain.NewMeasurementWindow(time.Date(2019, 10, 4, 23, 0, 0, 0, time.UTC), 15*time.Minute)
	_, err := client.FetchCounts(context.Background(), "exit-1", window)
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Fatalf("FetchCounts() error = %v, want ErrDataUnavailable", err)
	}

	if status := post(t, server.URL+"/api/v1/faults", `{"location_group":"exit-1","message":""}`); status != http.StatusNoContent {
		t.Fatalf("clear fault status = %d", status)
	}
	if _, err := client.FetchCounts(context.Background(), "exit-1", window); err != nil {
		t.Errorf("FetchCounts() after clearing fault error = %v", err)
	}
}

func TestStub_RejectsBadCredentials(t *testing.T) {
	server, _ := newStubServer(t)

	client := snaps.NewClient(&config.SnapsConfig{
		URL:      server.URL + "/snaps/dataservice/stats.xml",
		Username: "collector",
		Password: "wrong",
		Timeout:  5 * time.Second,
	})

	_, err := client.FetchCounts(context.Background(), "entry-1",
		domain.NewMeasurementWindow(time.Date(2019, 10, 4, 23, 0, 0, 0, time.UTC), 15*time.Minute))
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Errorf("FetchCounts() error = %v, want ErrDataUnavailable", err)
	}
}

func TestHandleSeed_Validation(t *testing.T) {
	server, _ := newStubServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing lane", body: `{"buckets":[{"location_group":"g","start_time":"2019-10-04T23:00:00Z","end_time":"2019-10-04T23:15:00Z","volume":1}]}`},
		{name: "bad start", body: `{"buckets":[{"location_group":"g","lane":"L","start_time":"23:00","end_time":"2019-10-04T23:15:00Z","volume":1}]}`},
		{name: "not json", body: `buckets`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := post(t, server.URL+"/api/v1/seed", tt.body); status != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
			}
		})
	}
}
