//go:build !gcloud

package notifier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

var testNotification = domain.Notification{
	Kind:      domain.AlertKindTraffic,
	Subject:   "WARNING: high car count: 452 predicted as of EntryA",
	Body:      "WARNING: 400 cars measured at EntryA as of 4:05PM. 452 cars predicted.",
	DedupeKey: "traffic-EntryA-2019-10-04-16",
}

func newTestNotifier(url string) *TasksNotifier {
	n := NewTasksNotifier(url, "alerts", "http://notify.local/alerts", 3)
	n.retryDelay = time.Millisecond
	return n
}

func TestTasksNotifier_Publish(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/alerts" {
			t.Errorf("path = %q, want /tasks/alerts", r.URL.Path)
		}

		var req TaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Task.Name != "traffic-EntryA-2019-10-04-16" {
			t.Errorf("task name = %q", req.Task.Name)
		}
		if req.Task.HTTPRequest.URL != "http://notify.local/alerts" {
			t.Errorf("target url = %q", req.Task.HTTPRequest.URL)
		}

		raw, err := base64.StdEncoding.DecodeString(req.Task.HTTPRequest.Body)
		if err != nil {
			t.Fatalf("body is not base64: %v", err)
		}
		var payload Payload
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Subject != testNotification.Subject || payload.Kind != "traffic" {
			t.Errorf("payload = %+v", payload)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(TaskResponse{Name: "tasks/1"})
	}))
	defer server.Close()

	if err := newTestNotifier(server.URL).Publish(context.Background(), testNotification); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}

func TestTasksNotifier_Publish_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(TaskResponse{Name: "tasks/1"})
	}))
	defer server.Close()

	if err := newTestNotifier(server.URL).Publish(context.Background(), testNotification); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestTasksNotifier_Publish_StopsOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	err := newTestNotifier(server.URL).Publish(context.Background(), testNotification)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("err = %v, want ErrUnexpectedStatus", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestTasksNotifier_Publish_ConflictIsDelivered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	if err := newTestNotifier(server.URL).Publish(context.Background(), testNotification); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}

func TestTaskID(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "traffic-EntryA-2019-10-04-16", want: "traffic-EntryA-2019-10-04-16"},
		{key: "operational:bad data", want: "operational-bad-data"},
		{key: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := TaskID(tt.key); got != tt.want {
				t.Errorf("TaskID(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
