package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func TestChecker_Check(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus Status
	}{
		{name: "healthy store", pingErr: nil, wantStatus: StatusHealthy},
		{name: "unreachable store", pingErr: errors.New("connection refused"), wantStatus: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(nil, "v1.2.3").
				WithDependency("tabular", pingerFunc(func(context.Context) error { return tt.pingErr }))

			status := checker.Check(context.Background())

			if status.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", status.Status, tt.wantStatus)
			}
			if status.Version != "v1.2.3" {
				t.Errorf("Version = %q", status.Version)
			}
			check, ok := status.Checks["tabular"]
			if !ok {
				t.Fatal("missing tabular check")
			}
			if check.Status != tt.wantStatus {
				t.Errorf("tabular Status = %s, want %s", check.Status, tt.wantStatus)
			}
			if tt.pingErr != nil && check.Error != tt.pingErr.Error() {
				t.Errorf("tabular Error = %q", check.Error)
			}
		})
	}
}

func TestChecker_WithNilDependency(t *testing.T) {
	checker := NewChecker(nil, "dev").WithDependency("tabular", nil)

	status := checker.Check(context.Background())
	if status.Status != StatusHealthy {
		t.Errorf("Status = %s, want healthy", status.Status)
	}
	if len(status.Checks) != 0 {
		t.Errorf("Checks = %v, want none", status.Checks)
	}
}

func TestChecker_ReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	checker := NewChecker(nil, "dev").
		WithDependency("tabular", pingerFunc(func(context.Context) error { return errors.New("down") }))

	r := gin.New()
	r.GET("/health/live", checker.LiveHandler())
	r.GET("/health/ready", checker.ReadyHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if w.Code != http.StatusOK {
		t.Errorf("live status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	var body HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Checks["tabular"].Error != "down" {
		t.Errorf("tabular Error = %q", body.Checks["tabular"].Error)
	}
}
