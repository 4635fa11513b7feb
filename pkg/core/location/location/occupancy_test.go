package location

import (
	"context"
	"fmt"
	"strings"
	"testing"

	core "github.com/coldstack/samplestore/pkg/core/location"
	model "github.com/coldstack/samplestore/pkg/model"
)

func TestCapacityWarningThreshold(t *testing.T) {
	cases := []struct {
		occupied int
		capacity int
		want     string // 为空表示不告警
	}{
		{occupied: 7, capacity: 10, want: ""},
		{occupied: 8, capacity: 10, want: "Rack capacity warning: 8/10 positions occupied."},
		{occupied: 9, capacity: 10, want: "Rack is nearly full: 9/10 positions occupied."},
		{occupied: 10, capacity: 10, want: "Rack is full: 10/10 positions occupied."},
		{occupied: 0, capacity: 0, want: ""},
	}
	for _, tc := range cases {
		got := CapacityWarning(tc.occupied, tc.capacity)
		if tc.want == "" {
			if got != nil {
				t.Errorf("CapacityWarning(%d, %d) = %q, want nil", tc.occupied, tc.capacity, *got)
			}
			continue
		}
		if got == nil || *got != tc.want {
			t.Errorf("CapacityWarning(%d, %d) = %v, want %q", tc.occupied, tc.capacity, got, tc.want)
		}
	}
}

func TestOccupancySnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 2x10 的 RKR1 放入 8 个样品，占用率正好踩到告警线
	var firstItem *model.SampleItem
	for i := 0; i < 8; i++ {
		item := f.addSample(t, fmt.Sprintf("S-%03d", i))
		if firstItem == nil {
			firstItem = item
		}
		f.occupy(t, f.rack1, core.FormatCoordinate(i/10, i%10), item)
	}

	resp, err := f.svc.Occupancy(ctx, &core.OccupancyReq{RackUUID: f.rack1.UUID})
	if err != nil {
		t.Fatalf("Occupancy: %v", err)
	}
	if resp.OccupiedCount != 8 || resp.TotalCapacity != 20 {
		t.Errorf("occupancy = %d/%d", resp.OccupiedCount, resp.TotalCapacity)
	}
	if resp.Warning != nil {
		t.Errorf("8/20 must not warn: %q", *resp.Warning)
	}
	if len(resp.Positions) != 20 {
		t.Fatalf("positions = %d, want 20", len(resp.Positions))
	}
	// 行优先：A1..A10 在前
	if resp.Positions[0].Coordinate != "A1" || resp.Positions[10].Coordinate != "B1" {
		t.Errorf("grid order: [0]=%q [10]=%q", resp.Positions[0].Coordinate, resp.Positions[10].Coordinate)
	}
	if !resp.Positions[0].Occupied || resp.Positions[0].SampleItemUUID == nil {
		t.Errorf("A1 state = %+v", resp.Positions[0])
	}
	if *resp.Positions[0].SampleItemUUID != firstItem.UUID {
		t.Errorf("A1 occupant = %s, want %s", *resp.Positions[0].SampleItemUUID, firstItem.UUID)
	}
	if resp.Positions[9].Occupied {
		t.Errorf("A10 should be free: %+v", resp.Positions[9])
	}
}

func TestOccupancyWarningAtThreshold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 专门建一个 1x10 的架子，8/10 = 0.8 正好触发告警
	rack, err := f.svc.CreateNode(ctx, &core.CreateNodeReq{
		Level:      core.LevelRack,
		ParentUUID: &f.shelf.UUID,
		Code:       "RKR9",
		RowCount:   1,
		ColCount:   10,
	})
	if err != nil {
		t.Fatalf("create rack: %v", err)
	}
	target, err := f.svc.ResolveRackPosition(ctx, &core.RackPositionReq{RackUUID: rack.UUID, Coordinate: "A1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for i := 0; i < 8; i++ {
		item := f.addSample(t, fmt.Sprintf("W-%03d", i))
		if err := f.mem.CreateAssignment(ctx, &model.StorageAssignment{
			SampleItemID: item.ID,
			RackID:       target.RackID,
			Coordinate:   core.FormatCoordinate(0, i),
		}); err != nil {
			t.Fatalf("occupy %d: %v", i, err)
		}
	}

	resp, err := f.svc.Occupancy(ctx, &core.OccupancyReq{RackUUID: rack.UUID})
	if err != nil {
		t.Fatalf("Occupancy: %v", err)
	}
	if resp.Ratio != 0.8 {
		t.Errorf("ratio = %v, want 0.8", resp.Ratio)
	}
	if resp.Warning == nil || !strings.Contains(*resp.Warning, "8/10") {
		t.Errorf("warning = %v, want capacity warning at the 0.8 threshold", resp.Warning)
	}
}

func TestIsOccupied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.addSample(t, "S-IO")
	f.occupy(t, f.rack1, "A3", item)

	state, err := f.svc.IsOccupied(ctx, &core.RackPositionReq{RackUUID: f.rack1.UUID, Coordinate: "a3"})
	if err != nil {
		t.Fatalf("IsOccupied(A3): %v", err)
	}
	if !state.Occupied || state.SampleItemUUID == nil || *state.SampleItemUUID != item.UUID {
		t.Errorf("state = %+v", state)
	}

	state, err = f.svc.IsOccupied(ctx, &core.RackPositionReq{RackUUID: f.rack1.UUID, Coordinate: "A4"})
	if err != nil {
		t.Fatalf("IsOccupied(A4): %v", err)
	}
	if state.Occupied {
		t.Errorf("A4 should be free: %+v", state)
	}
}
