package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/internal/model"
)

func TestPlaneService_ListAndGet(t *testing.T) {
	repo, mocks := newMockRepository()
	cache := newMockCache()
	svc := NewPlaneService(repo, cache, 0, zap.NewNop())
	ctx := context.Background()

	mocks.plane.Create(ctx, &model.Plane{Name: "CARAVAN", Model: "CESSNA C208", Capacity: "1MT", Speed: 140})
	mocks.plane.Create(ctx, &model.Plane{Name: "CARAVAN", Model: "LET 410", Capacity: "2MT", Speed: 160})

	for i := 0; i < 2; i++ {
		planes, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(planes) != 2 || planes[1].Model != "LET 410" {
			t.Errorf("unexpected planes: %+v", planes)
		}
	}
	if mocks.plane.listCalls != 1 {
		t.Errorf("expected a cached second list, got %d repository calls", mocks.plane.listCalls)
	}

	plane, err := svc.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if plane.Capacity != "1MT" || plane.Speed != 140 {
		t.Errorf("unexpected plane: %+v", plane)
	}

	if _, err := svc.GetByID(ctx, 99); !errors.Is(err, ErrPlaneNotFound) {
		t.Errorf("expected ErrPlaneNotFound, got %v", err)
	}
}
