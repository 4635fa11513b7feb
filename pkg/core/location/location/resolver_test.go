package location

import (
	"context"
	"errors"
	"testing"

	code "github.com/coldstack/samplestore/pkg/common/code"
	core "github.com/coldstack/samplestore/pkg/core/location"
)

func TestCascadeOptionsFilterInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.rack2.Active = false

	resp, err := f.svc.Resolve(ctx, &core.ResolveReq{
		Cascade: &core.CascadeStep{Level: core.LevelRack, ParentUUID: &f.shelf.UUID},
	})
	if err != nil {
		t.Fatalf("Resolve(cascade): %v", err)
	}
	if len(resp.Options) != 1 || resp.Options[0].Code != "RKR1" {
		t.Errorf("active-only options = %+v", resp.Options)
	}

	resp, err = f.svc.Resolve(ctx, &core.ResolveReq{
		Cascade: &core.CascadeStep{Level: core.LevelRack, ParentUUID: &f.shelf.UUID, AllowInactive: true},
	})
	if err != nil {
		t.Fatalf("Resolve(cascade allowInactive): %v", err)
	}
	if len(resp.Options) != 2 {
		t.Errorf("allowInactive options = %+v", resp.Options)
	}
}

func TestCascadeOptionsUnknownParent(t *testing.T) {
	f := newFixture(t)

	missing := f.rack1.UUID // 不是 shelf 的 UUID
	_, err := f.svc.Resolve(context.Background(), &core.ResolveReq{
		Cascade: &core.CascadeStep{Level: core.LevelDevice, ParentUUID: &missing},
	})
	if !errors.Is(err, code.ParentNotFound) {
		t.Errorf("err = %v, want ParentNotFound", err)
	}
}

func TestResolveExactlyOneVariant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Resolve(ctx, &core.ResolveReq{}); !errors.Is(err, code.ParamErr) {
		t.Errorf("empty request: err = %v, want ParamErr", err)
	}

	_, err := f.svc.Resolve(ctx, &core.ResolveReq{
		Text:    &core.TextQuery{Query: "Freezer"},
		Barcode: &core.BarcodeQuery{Raw: "MAIN"},
	})
	if !errors.Is(err, code.ParamErr) {
		t.Errorf("two variants: err = %v, want ParamErr", err)
	}
}

func TestSearchMinimumTermLength(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Resolve(context.Background(), &core.ResolveReq{
		Text: &core.TextQuery{Query: " F "},
	})
	if !errors.Is(err, code.SearchTermTooShort) {
		t.Errorf("err = %v, want SearchTermTooShort", err)
	}
}

func TestSearchHitsCarryReferences(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Resolve(context.Background(), &core.ResolveReq{
		Text: &core.TextQuery{Query: "Freezer"},
	})
	if err != nil {
		t.Fatalf("Resolve(text): %v", err)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("matches = %+v, want single device hit", resp.Matches)
	}
	hit := resp.Matches[0]
	if hit.Level != core.LevelDevice {
		t.Errorf("level = %q", hit.Level)
	}
	ref := hit.Reference
	if ref.Room == nil || ref.Room.Code != "MAIN" || ref.Device == nil || ref.Device.Code != "FRZ01" {
		t.Errorf("reference = %+v", ref)
	}
	if ref.HierarchicalPath != "Main Laboratory > Freezer 1" {
		t.Errorf("path = %q", ref.HierarchicalPath)
	}
}

func TestSearchRackHitIsFullReference(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Resolve(context.Background(), &core.ResolveReq{
		Text: &core.TextQuery{Query: "RKR1"},
	})
	if err != nil {
		t.Fatalf("Resolve(text): %v", err)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("matches = %+v", resp.Matches)
	}
	ref := resp.Matches[0].Reference
	if ref.Rack == nil || ref.Rack.UUID != f.rack1.UUID {
		t.Errorf("rack reference = %+v", ref)
	}
	if ref.Shelf == nil || ref.Device == nil || ref.Room == nil {
		t.Errorf("rack hit must carry the full ancestor chain: %+v", ref)
	}
}

func TestSearchSkipsInactiveChains(t *testing.T) {
	f := newFixture(t)
	f.device.Active = false

	resp, err := f.svc.Resolve(context.Background(), &core.ResolveReq{
		Text: &core.TextQuery{Query: "RKR1"},
	})
	if err != nil {
		t.Fatalf("Resolve(text): %v", err)
	}
	if len(resp.Matches) != 0 {
		t.Errorf("rack under an inactive device must not match: %+v", resp.Matches)
	}
}

func TestResolveRackPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target, err := f.svc.ResolveRackPosition(ctx, &core.RackPositionReq{
		RackUUID:   f.rack1.UUID,
		Coordinate: "b10",
	})
	if err != nil {
		t.Fatalf("ResolveRackPosition: %v", err)
	}
	if target.Coordinate != "B10" {
		t.Errorf("coordinate = %q, want normalized B10", target.Coordinate)
	}
	if target.RackID != f.rack1.ID {
		t.Errorf("rack id = %d, want %d", target.RackID, f.rack1.ID)
	}
	if !target.Reference.Complete() {
		t.Errorf("reference = %+v, want complete", target.Reference)
	}

	if _, err := f.svc.ResolveRackPosition(ctx, &core.RackPositionReq{
		RackUUID:   f.rack1.UUID,
		Coordinate: "C1",
	}); !errors.Is(err, code.BadCoordinate) {
		t.Errorf("out of bounds: err = %v, want BadCoordinate", err)
	}

	f.shelf.Active = false
	if _, err := f.svc.ResolveRackPosition(ctx, &core.RackPositionReq{
		RackUUID:   f.rack1.UUID,
		Coordinate: "A1",
	}); !errors.Is(err, code.InactiveNode) {
		t.Errorf("inactive ancestor: err = %v, want InactiveNode", err)
	}
	if _, err := f.svc.ResolveRackPosition(ctx, &core.RackPositionReq{
		RackUUID:      f.rack1.UUID,
		Coordinate:    "A1",
		AllowInactive: true,
	}); err != nil {
		t.Errorf("allowInactive: %v", err)
	}
}
