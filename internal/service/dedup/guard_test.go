package dedup

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

var guardNow = time.Date(2019, 10, 4, 16, 7, 0, 0, time.UTC)

func TestGuard_Check(t *testing.T) {
	tests := []struct {
		name     string
		exists   bool
		err      error
		expected bool
	}{
		{name: "new interval", exists: false, expected: false},
		{name: "duplicate interval", exists: true, expected: true},
		{name: "repository failure proceeds", err: errors.New("redis down"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := domain.NewMockInvocationRepository(ctrl)
			repo.EXPECT().HasMarker(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, marker domain.InvocationMarker) (bool, error) {
					if marker.Key() != "collect_to_sheet:2019-10-04-16-00" {
						t.Errorf("marker key = %q", marker.Key())
					}
					return tt.exists, tt.err
				})

			guard := NewGuard(repo, "collect_to_sheet", 15*time.Minute)
			_, duplicate := guard.Check(context.Background(), guardNow)
			if duplicate != tt.expected {
				t.Errorf("Check() duplicate = %v, want %v", duplicate, tt.expected)
			}
		})
	}
}

func TestGuard_Record(t *testing.T) {
	tests := []struct {
		name         string
		writeEnabled bool
		saveErr      error
		expectSave   bool
		expected     bool
	}{
		{name: "write enabled", writeEnabled: true, expectSave: true, expected: true},
		{name: "write disabled", writeEnabled: false, expectSave: false, expected: false},
		{name: "save failure", writeEnabled: true, saveErr: errors.New("redis down"), expectSave: true, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := domain.NewMockInvocationRepository(ctrl)
			if tt.expectSave {
				repo.EXPECT().SaveMarker(gomock.Any(), gomock.Any()).Return(tt.saveErr)
			}

			guard := NewGuard(repo, "collect_to_sheet", 0)
			marker := guard.Marker(guardNow)
			if got := guard.Record(context.Background(), marker, tt.writeEnabled); got != tt.expected {
				t.Errorf("Record() = %v, want %v", got, tt.expected)
			}
		})
	}
}
