package sample

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	code "github.com/coldstack/samplestore/pkg/common/code"
	core "github.com/coldstack/samplestore/pkg/core/sample"
	model "github.com/coldstack/samplestore/pkg/model"
)

func TestAssignOccupiesPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.register(t, "LAB-001")
	resp := f.assign(t, item, f.rack1, "a5")

	if resp.Sample.Status != model.SampleActive {
		t.Errorf("status = %q", resp.Sample.Status)
	}
	if resp.Sample.Location == nil || !resp.Sample.Location.Complete() {
		t.Fatalf("location = %+v, want complete reference", resp.Sample.Location)
	}
	if *resp.Sample.Location.Position != "A5" {
		t.Errorf("position = %q, want normalized A5", *resp.Sample.Location.Position)
	}
	if resp.Sample.AssignedAt == nil {
		t.Error("assigned_at missing")
	}
	if resp.CapacityWarning != nil {
		t.Errorf("1/20 must not warn: %q", *resp.CapacityWarning)
	}

	if _, err := f.mem.GetAssignmentAt(ctx, f.rack1.ID, "A5"); err != nil {
		t.Errorf("A5 should be occupied: %v", err)
	}
}

func TestAssignRejectsOccupiedAndDouble(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.register(t, "LAB-001")
	second := f.register(t, "LAB-002")
	f.assign(t, first, f.rack1, "A5")

	_, err := f.svc.Assign(ctx, &core.AssignReq{
		SampleUUID: second.UUID,
		RackUUID:   f.rack1.UUID,
		Coordinate: "A5",
	})
	if !errors.Is(err, code.OccupiedPosition) {
		t.Errorf("occupied target: err = %v, want OccupiedPosition", err)
	}

	_, err = f.svc.Assign(ctx, &core.AssignReq{
		SampleUUID: first.UUID,
		RackUUID:   f.rack1.UUID,
		Coordinate: "A6",
	})
	if !errors.Is(err, code.AlreadyAssigned) {
		t.Errorf("double assign: err = %v, want AlreadyAssigned", err)
	}
}

func TestAssignValidatesTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.register(t, "LAB-001")

	_, err := f.svc.Assign(ctx, &core.AssignReq{
		SampleUUID: item.UUID,
		RackUUID:   f.rack1.UUID,
		Coordinate: "C1", // 2x10 行越界
	})
	if !errors.Is(err, code.BadCoordinate) {
		t.Errorf("out of bounds: err = %v, want BadCoordinate", err)
	}

	f.rack1.Active = false
	_, err = f.svc.Assign(ctx, &core.AssignReq{
		SampleUUID: item.UUID,
		RackUUID:   f.rack1.UUID,
		Coordinate: "A1",
	})
	if !errors.Is(err, code.InactiveNode) {
		t.Errorf("inactive rack: err = %v, want InactiveNode", err)
	}
}

func TestMoveReleasesOldPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.register(t, "LAB-001")
	f.assign(t, item, f.rack1, "A5")

	reason := "rack defrost"
	resp, err := f.svc.Move(ctx, &core.MoveReq{
		SampleUUID: item.UUID,
		RackUUID:   f.rack2.UUID,
		Coordinate: "B2",
		Reason:     &reason,
	})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if resp.Sample.Location.Rack.Code != "RKR2" || *resp.Sample.Location.Position != "B2" {
		t.Errorf("location = %+v", resp.Sample.Location)
	}

	if _, err := f.mem.GetAssignmentAt(ctx, f.rack1.ID, "A5"); !errors.Is(err, code.RecordNotFound) {
		t.Errorf("old position must be free, got %v", err)
	}
	if _, err := f.mem.GetAssignmentAt(ctx, f.rack2.ID, "B2"); err != nil {
		t.Errorf("new position must be occupied: %v", err)
	}

	history, err := f.svc.Movements(ctx, &core.MovementsReq{SampleUUID: item.UUID})
	if err != nil {
		t.Fatalf("Movements: %v", err)
	}
	records := history.Data
	if len(records) != 2 {
		t.Fatalf("movements = %d, want assign + move", len(records))
	}
	if records[0].Outcome != model.MovementAssigned || records[0].Previous != nil {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Outcome != model.MovementMoved {
		t.Errorf("second record = %+v", records[1])
	}
	if records[1].Previous == nil || records[1].Previous.Rack.Code != "RKR1" {
		t.Errorf("move must snapshot the released position: %+v", records[1].Previous)
	}
	if records[1].New == nil || records[1].New.Rack.Code != "RKR2" {
		t.Errorf("move must snapshot the new position: %+v", records[1].New)
	}
	if records[1].Reason == nil || *records[1].Reason != reason {
		t.Errorf("reason = %v", records[1].Reason)
	}
	if records[1].Actor != "system" {
		t.Errorf("actor = %q, want system fallback", records[1].Actor)
	}
}

func TestMoveFailureKeepsOldPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mover := f.register(t, "LAB-001")
	blocker := f.register(t, "LAB-002")
	f.assign(t, mover, f.rack1, "A5")
	f.assign(t, blocker, f.rack2, "B2")

	_, err := f.svc.Move(ctx, &core.MoveReq{
		SampleUUID: mover.UUID,
		RackUUID:   f.rack2.UUID,
		Coordinate: "B2",
	})
	if !errors.Is(err, code.OccupiedPosition) {
		t.Fatalf("err = %v, want OccupiedPosition", err)
	}
	// 旧位保持不动
	if _, err := f.mem.GetAssignmentAt(ctx, f.rack1.ID, "A5"); err != nil {
		t.Errorf("old position must survive a failed move: %v", err)
	}

	_, err = f.svc.Move(ctx, &core.MoveReq{
		SampleUUID: mover.UUID,
		RackUUID:   f.rack1.UUID,
		Coordinate: "a5",
	})
	if !errors.Is(err, code.NoOpMove) {
		t.Errorf("same position: err = %v, want NoOpMove", err)
	}

	unplaced := f.register(t, "LAB-003")
	_, err = f.svc.Move(ctx, &core.MoveReq{
		SampleUUID: unplaced.UUID,
		RackUUID:   f.rack1.UUID,
		Coordinate: "A6",
	})
	if !errors.Is(err, code.NotAssigned) {
		t.Errorf("unplaced sample: err = %v, want NotAssigned", err)
	}
}

func TestDisposeTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.register(t, "LAB-001")
	f.assign(t, item, f.rack1, "A5")

	_, err := f.svc.Dispose(ctx, &core.DisposeReq{
		SampleUUID: item.UUID,
		Reason:     "expired",
		Method:     "autoclave",
	})
	if !errors.Is(err, code.NotConfirmed) {
		t.Errorf("unconfirmed: err = %v, want NotConfirmed", err)
	}

	_, err = f.svc.Dispose(ctx, &core.DisposeReq{
		SampleUUID: item.UUID,
		Reason:     "melted",
		Method:     "autoclave",
		Confirmed:  true,
	})
	if !errors.Is(err, code.DisposalVocab) {
		t.Errorf("unknown reason: err = %v, want DisposalVocab", err)
	}

	notes := "freezer failure batch"
	resp, err := f.svc.Dispose(ctx, &core.DisposeReq{
		SampleUUID: item.UUID,
		Reason:     "contaminated",
		Method:     "biohazard_bag",
		Notes:      &notes,
		Confirmed:  true,
	})
	if err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if resp.Sample.Status != model.SampleDisposed {
		t.Errorf("status = %q", resp.Sample.Status)
	}
	if resp.Sample.Location != nil {
		t.Errorf("disposed sample must not keep a location: %+v", resp.Sample.Location)
	}
	if _, err := f.mem.GetAssignmentAt(ctx, f.rack1.ID, "A5"); !errors.Is(err, code.RecordNotFound) {
		t.Errorf("position must be released: %v", err)
	}

	history, err := f.svc.Movements(ctx, &core.MovementsReq{SampleUUID: item.UUID})
	if err != nil {
		t.Fatalf("Movements: %v", err)
	}
	last := history.Data[len(history.Data)-1]
	if last.Outcome != model.MovementDisposed || last.New != nil {
		t.Errorf("terminal record = %+v", last)
	}
	if last.Reason == nil || *last.Reason != "contaminated / biohazard_bag: freezer failure batch" {
		t.Errorf("reason = %v", last.Reason)
	}

	// 终态不可逆
	_, err = f.svc.Dispose(ctx, &core.DisposeReq{
		SampleUUID: item.UUID,
		Reason:     "expired",
		Method:     "autoclave",
		Confirmed:  true,
	})
	if !errors.Is(err, code.AlreadyDisposed) {
		t.Errorf("double dispose: err = %v, want AlreadyDisposed", err)
	}
	_, err = f.svc.Assign(ctx, &core.AssignReq{
		SampleUUID: item.UUID,
		RackUUID:   f.rack1.UUID,
		Coordinate: "A1",
	})
	if !errors.Is(err, code.AlreadyDisposed) {
		t.Errorf("assign after dispose: err = %v, want AlreadyDisposed", err)
	}
}

func TestConcurrentAssignExactlyOneWinner(t *testing.T) {
	f := newFixture(t)

	const contenders = 8
	samples := make([]*core.SampleResp, contenders)
	for i := range samples {
		samples[i] = f.register(t, fmt.Sprintf("LAB-%03d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Assign(context.Background(), &core.AssignReq{
				SampleUUID: samples[i].UUID,
				RackUUID:   f.rack1.UUID,
				Coordinate: "A1",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for i, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, code.OccupiedPosition):
		default:
			t.Errorf("contender %d: unexpected err %v", i, err)
		}
	}
	if winners != 1 {
		t.Errorf("winners = %d, want exactly 1", winners)
	}
}

func TestMutationRespCapacityWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 2x10 的架子先占 15 格，下一次入位达到 16/20 = 0.8
	coordinates := make([]string, 0, 15)
	for row := 0; row < 2; row++ {
		for col := 0; col < 10 && len(coordinates) < 15; col++ {
			coordinates = append(coordinates, fmt.Sprintf("%c%d", 'A'+row, col+1))
		}
	}
	for i, coordinate := range coordinates {
		f.assign(t, f.register(t, fmt.Sprintf("LAB-%03d", i)), f.rack1, coordinate)
	}

	last := f.register(t, "LAB-LAST")
	resp, err := f.svc.Assign(ctx, &core.AssignReq{
		SampleUUID: last.UUID,
		RackUUID:   f.rack1.UUID,
		Coordinate: "B7",
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if resp.CapacityWarning == nil {
		t.Fatal("16/20 must produce a capacity warning")
	}
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.register(t, "LAB-001")
	b := f.register(t, "LAB-002")
	f.register(t, "LAB-003")
	f.assign(t, a, f.rack1, "A1")
	f.assign(t, b, f.rack1, "A2")

	if _, err := f.svc.Dispose(ctx, &core.DisposeReq{
		SampleUUID: b.UUID,
		Reason:     "consumed",
		Method:     "chemical",
		Confirmed:  true,
	}); err != nil {
		t.Fatalf("Dispose: %v", err)
	}

	metrics, err := f.svc.Metrics(ctx)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if metrics.TotalSampleItems != 3 || metrics.Active != 2 || metrics.Disposed != 1 {
		t.Errorf("metrics = %+v", metrics)
	}
	if metrics.StorageLocations != 1 {
		t.Errorf("storage locations = %d, want 1", metrics.StorageLocations)
	}
}
