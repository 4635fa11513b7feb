package location

import (
	"context"
	"strings"
	"testing"

	core "github.com/coldstack/samplestore/pkg/core/location"
)

func parse(t *testing.T, f *fixture, raw string) *core.BarcodeResult {
	t.Helper()
	resp, err := f.svc.Resolve(context.Background(), &core.ResolveReq{
		Barcode: &core.BarcodeQuery{Raw: raw},
	})
	if err != nil {
		t.Fatalf("Resolve(barcode %q): %v", raw, err)
	}
	if resp.Barcode == nil {
		t.Fatalf("Resolve(barcode %q): nil barcode result", raw)
	}
	return resp.Barcode
}

func TestParseBarcodeFullMatch(t *testing.T) {
	f := newFixture(t)

	result := parse(t, f, "MAIN-FRZ01-SHA-RKR1-A5")
	if !result.Valid {
		t.Fatalf("expected valid, got %+v", result)
	}
	ref := result.Reference
	if ref == nil || !ref.Complete() {
		t.Fatalf("expected complete reference, got %+v", ref)
	}
	if ref.Room.Code != "MAIN" || ref.Device.Code != "FRZ01" || ref.Shelf.Code != "SHA" || ref.Rack.Code != "RKR1" {
		t.Errorf("wrong hierarchy in reference: %+v", ref)
	}
	if *ref.Position != "A5" {
		t.Errorf("position = %q, want A5", *ref.Position)
	}
	if ref.HierarchicalPath != "Main Laboratory > Freezer 1 > SHA > RKR1 > A5" {
		t.Errorf("path = %q", ref.HierarchicalPath)
	}
}

func TestParseBarcodeStopsAtFirstFailingSegment(t *testing.T) {
	f := newFixture(t)

	result := parse(t, f, "MAIN-FRZ01-ZZZ-RKR1-A5")
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if result.FirstMissingLevel == nil || *result.FirstMissingLevel != core.LevelShelf {
		t.Errorf("first missing level = %v, want shelf", result.FirstMissingLevel)
	}
	components := result.ValidComponents
	if components.Room == nil || components.Room.Code != "MAIN" {
		t.Errorf("expected room in valid components, got %+v", components)
	}
	if components.Device == nil || components.Device.Code != "FRZ01" {
		t.Errorf("expected device in valid components, got %+v", components)
	}
	if components.Shelf != nil || components.Rack != nil || components.Position != nil {
		t.Errorf("nothing past the failing segment may resolve: %+v", components)
	}
	if !strings.HasPrefix(result.ErrorMessage, "Scanned code: MAIN-FRZ01-ZZZ-RKR1-A5 (room=MAIN, device=FRZ01).") {
		t.Errorf("error message = %q", result.ErrorMessage)
	}
	if result.FailedStep != core.StepHierarchyValidation {
		t.Errorf("failed step = %q", result.FailedStep)
	}
}

func TestParseBarcodeFirstSegmentFails(t *testing.T) {
	f := newFixture(t)

	result := parse(t, f, "NOPE-FRZ01")
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if result.FirstMissingLevel == nil || *result.FirstMissingLevel != core.LevelRoom {
		t.Errorf("first missing level = %v, want room", result.FirstMissingLevel)
	}
	c := result.ValidComponents
	if c.Room != nil || c.Device != nil || c.Shelf != nil || c.Rack != nil || c.Position != nil {
		t.Errorf("expected empty valid components, got %+v", c)
	}
	if result.FailedStep != core.StepLocationExistence {
		t.Errorf("failed step = %q", result.FailedStep)
	}
}

func TestParseBarcodeTruncatedPrefixIsValid(t *testing.T) {
	f := newFixture(t)

	result := parse(t, f, "MAIN-FRZ01")
	if !result.Valid {
		t.Fatalf("truncated barcode should be a valid partial reference: %+v", result)
	}
	ref := result.Reference
	if ref.Complete() {
		t.Error("room+device prefix must not count as assignable")
	}
	if ref.Device == nil || ref.Device.Code != "FRZ01" {
		t.Errorf("reference = %+v", ref)
	}
}

func TestParseBarcodePositionOutOfBounds(t *testing.T) {
	f := newFixture(t)

	// RKR1 为 2x10，C1 行越界
	result := parse(t, f, "MAIN-FRZ01-SHA-RKR1-C1")
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if result.FirstMissingLevel == nil || *result.FirstMissingLevel != core.LevelPosition {
		t.Errorf("first missing level = %v, want position", result.FirstMissingLevel)
	}
	// 格架仍然在已解析前缀里可用
	if result.ValidComponents.Rack == nil || result.ValidComponents.Rack.Code != "RKR1" {
		t.Errorf("rack must survive a failing position segment: %+v", result.ValidComponents)
	}
}

func TestParseBarcodeInactiveNode(t *testing.T) {
	f := newFixture(t)
	f.device.Active = false

	result := parse(t, f, "MAIN-FRZ01-SHA-RKR1-A5")
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if result.FailedStep != core.StepActivityCheck {
		t.Errorf("failed step = %q, want %q", result.FailedStep, core.StepActivityCheck)
	}
	if result.FirstMissingLevel == nil || *result.FirstMissingLevel != core.LevelDevice {
		t.Errorf("first missing level = %v, want device", result.FirstMissingLevel)
	}

	// 审计回放场景允许停用节点
	resp, err := f.svc.Resolve(context.Background(), &core.ResolveReq{
		Barcode: &core.BarcodeQuery{Raw: "MAIN-FRZ01-SHA-RKR1-A5", AllowInactive: true},
	})
	if err != nil {
		t.Fatalf("Resolve allowInactive: %v", err)
	}
	if !resp.Barcode.Valid {
		t.Errorf("allowInactive should resolve through the inactive device: %+v", resp.Barcode)
	}
}

func TestParseBarcodeSampleCodeRejected(t *testing.T) {
	f := newFixture(t)

	for _, raw := range []string{"12-345678", "ABC-2024-001", "123456"} {
		result := parse(t, f, raw)
		if result.Valid {
			t.Errorf("%q: sample barcode must not resolve as a location", raw)
		}
		if result.BarcodeType != core.BarcodeSample {
			t.Errorf("%q: barcode type = %q, want sample", raw, result.BarcodeType)
		}
		if !strings.Contains(result.ErrorMessage, "Barcode type mismatch") {
			t.Errorf("%q: error message = %q", raw, result.ErrorMessage)
		}
	}
}

func TestBarcodeRoundTrip(t *testing.T) {
	f := newFixture(t)

	raw := "MAIN-FRZ01-SHA-RKR1-A5"
	result := parse(t, f, raw)
	if !result.Valid {
		t.Fatalf("parse: %+v", result)
	}

	serialized, err := f.svc.FormatBarcode(context.Background(), &core.RackPositionReq{
		RackUUID:   result.Reference.Rack.UUID,
		Coordinate: *result.Reference.Position,
	})
	if err != nil {
		t.Fatalf("FormatBarcode: %v", err)
	}
	if serialized != raw {
		t.Errorf("round trip = %q, want %q", serialized, raw)
	}
}

func TestDetectBarcodeType(t *testing.T) {
	cases := map[string]core.BarcodeType{
		"MAIN-FRZ01-SHA":  core.BarcodeLocation,
		"MAIN":            core.BarcodeLocation,
		"12-345678":       core.BarcodeSample,
		"AB-2024-0001":    core.BarcodeSample,
		"9876543":         core.BarcodeSample,
		"":                core.BarcodeUnknown,
		"!!@#":            core.BarcodeUnknown,
	}
	for raw, want := range cases {
		if got := DetectBarcodeType(raw); got != want {
			t.Errorf("DetectBarcodeType(%q) = %q, want %q", raw, got, want)
		}
	}
}
