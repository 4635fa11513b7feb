package sample

import (
	"context"
	"errors"
	"fmt"
	"testing"

	code "github.com/coldstack/samplestore/pkg/common/code"
	uuid "github.com/coldstack/samplestore/pkg/common/uuid"
	core "github.com/coldstack/samplestore/pkg/core/sample"
)

func TestPlanBulkMoveFirstFit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 先占 A2 和 A4，首次适配要先补 A1/A3 的空洞
	f.assign(t, f.register(t, "OCC-1"), f.rack1, "A2")
	f.assign(t, f.register(t, "OCC-2"), f.rack1, "A4")

	items := []*core.SampleResp{
		f.register(t, "LAB-001"),
		f.register(t, "LAB-002"),
		f.register(t, "LAB-003"),
	}
	uuids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		uuids = append(uuids, item.UUID)
	}

	plan, err := f.svc.PlanBulkMove(ctx, &core.PlanReq{RackUUID: f.rack1.UUID, SampleUUIDs: uuids})
	if err != nil {
		t.Fatalf("PlanBulkMove: %v", err)
	}
	want := []string{"A1", "A3", "A5"}
	if len(plan.Entries) != len(want) {
		t.Fatalf("entries = %+v", plan.Entries)
	}
	for i, entry := range plan.Entries {
		if entry.Coordinate != want[i] || entry.SampleUUID != uuids[i] {
			t.Errorf("entry[%d] = %+v, want %s for %s", i, entry, want[i], uuids[i])
		}
	}
	if plan.ExpiresAt.IsZero() {
		t.Error("plan must carry an expiry")
	}

	// 方案在提交前可回读
	got, err := f.svc.GetPlan(ctx, &core.PlanIDReq{PlanUUID: plan.PlanUUID})
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if got.RackUUID != f.rack1.UUID || len(got.Entries) != 3 {
		t.Errorf("stored plan = %+v", got)
	}
}

func TestPlanBulkMoveRackFull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 20 格占 18，只剩 2 个空位
	for i := 0; i < 18; i++ {
		f.assign(t, f.register(t, fmt.Sprintf("OCC-%02d", i)), f.rack1, coordinateAt(i))
	}

	uuids := []uuid.UUID{
		f.register(t, "LAB-001").UUID,
		f.register(t, "LAB-002").UUID,
		f.register(t, "LAB-003").UUID,
	}
	_, err := f.svc.PlanBulkMove(ctx, &core.PlanReq{RackUUID: f.rack1.UUID, SampleUUIDs: uuids})
	if !errors.Is(err, code.RackFull) {
		t.Errorf("err = %v, want RackFull", err)
	}
}

func coordinateAt(i int) string {
	return fmt.Sprintf("%c%d", 'A'+i/10, i%10+1)
}

func TestPlanBulkMoveRejectsDisposed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.register(t, "LAB-001")
	f.assign(t, item, f.rack2, "A1")
	if _, err := f.svc.Dispose(ctx, &core.DisposeReq{
		SampleUUID: item.UUID,
		Reason:     "expired",
		Method:     "incineration",
		Confirmed:  true,
	}); err != nil {
		t.Fatalf("Dispose: %v", err)
	}

	_, err := f.svc.PlanBulkMove(ctx, &core.PlanReq{
		RackUUID:    f.rack1.UUID,
		SampleUUIDs: []uuid.UUID{item.UUID},
	})
	if !errors.Is(err, code.AlreadyDisposed) {
		t.Errorf("err = %v, want AlreadyDisposed", err)
	}
}

func TestCommitPlanMixedAssignAndMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	placed := f.register(t, "LAB-001") // 已在 rack2，提交走 Move
	fresh := f.register(t, "LAB-002")  // 未入位，提交走 Assign
	f.assign(t, placed, f.rack2, "B3")

	plan, err := f.svc.PlanBulkMove(ctx, &core.PlanReq{
		RackUUID:    f.rack1.UUID,
		SampleUUIDs: []uuid.UUID{placed.UUID, fresh.UUID},
	})
	if err != nil {
		t.Fatalf("PlanBulkMove: %v", err)
	}

	resp, err := f.svc.CommitPlan(ctx, &core.CommitReq{PlanUUID: plan.PlanUUID})
	if err != nil {
		t.Fatalf("CommitPlan: %v", err)
	}
	if resp.Succeeded != 2 || resp.Failed != 0 {
		t.Fatalf("commit = %d ok / %d failed: %+v", resp.Succeeded, resp.Failed, resp.Results)
	}

	// 旧位释放，两个样品都落在目标架上
	if _, err := f.mem.GetAssignmentAt(ctx, f.rack2.ID, "B3"); !errors.Is(err, code.RecordNotFound) {
		t.Errorf("origin position must be released: %v", err)
	}
	if _, err := f.mem.GetAssignmentAt(ctx, f.rack1.ID, "A1"); err != nil {
		t.Errorf("A1 must be occupied: %v", err)
	}
	if _, err := f.mem.GetAssignmentAt(ctx, f.rack1.ID, "A2"); err != nil {
		t.Errorf("A2 must be occupied: %v", err)
	}

	// 提交后方案即失效
	if _, err := f.svc.GetPlan(ctx, &core.PlanIDReq{PlanUUID: plan.PlanUUID}); !errors.Is(err, code.PlanNotFound) {
		t.Errorf("committed plan must be gone: %v", err)
	}
}

func TestCommitPlanPartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.register(t, "LAB-001")
	second := f.register(t, "LAB-002")
	plan, err := f.svc.PlanBulkMove(ctx, &core.PlanReq{
		RackUUID:    f.rack1.UUID,
		SampleUUIDs: []uuid.UUID{first.UUID, second.UUID},
	})
	if err != nil {
		t.Fatalf("PlanBulkMove: %v", err)
	}

	// 方案敲定后第二个坐标被别的样品抢走
	f.assign(t, f.register(t, "SNIPER"), f.rack1, plan.Entries[1].Coordinate)

	resp, err := f.svc.CommitPlan(ctx, &core.CommitReq{PlanUUID: plan.PlanUUID})
	if err != nil {
		t.Fatalf("CommitPlan: %v", err)
	}
	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Fatalf("commit = %d ok / %d failed: %+v", resp.Succeeded, resp.Failed, resp.Results)
	}
	if !resp.Results[0].Success || resp.Results[1].Success {
		t.Errorf("results = %+v", resp.Results)
	}
	if resp.Results[1].Error == "" {
		t.Error("failed entry must carry the conflict message")
	}

	// 成功的条目真实生效
	if _, err := f.mem.GetAssignmentAt(ctx, f.rack1.ID, plan.Entries[0].Coordinate); err != nil {
		t.Errorf("winning entry must be placed: %v", err)
	}
}

func TestCommitPlanWithEditedEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.register(t, "LAB-001")
	plan, err := f.svc.PlanBulkMove(ctx, &core.PlanReq{
		RackUUID:    f.rack1.UUID,
		SampleUUIDs: []uuid.UUID{item.UUID},
	})
	if err != nil {
		t.Fatalf("PlanBulkMove: %v", err)
	}

	// 审核人把建议的 A1 改成了 B9
	resp, err := f.svc.CommitPlan(ctx, &core.CommitReq{
		PlanUUID: plan.PlanUUID,
		Entries:  []*core.PlanEntry{{SampleUUID: item.UUID, Coordinate: "B9"}},
	})
	if err != nil {
		t.Fatalf("CommitPlan: %v", err)
	}
	if resp.Succeeded != 1 {
		t.Fatalf("commit = %+v", resp)
	}
	if _, err := f.mem.GetAssignmentAt(ctx, f.rack1.ID, "B9"); err != nil {
		t.Errorf("edited coordinate must be used: %v", err)
	}
}

func TestGetPlanUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetPlan(context.Background(), &core.PlanIDReq{PlanUUID: uuid.NewV4()})
	if !errors.Is(err, code.PlanNotFound) {
		t.Errorf("err = %v, want PlanNotFound", err)
	}
}

func TestPlanBulkMoveInactiveRack(t *testing.T) {
	f := newFixture(t)
	f.rack1.Active = false

	_, err := f.svc.PlanBulkMove(context.Background(), &core.PlanReq{
		RackUUID:    f.rack1.UUID,
		SampleUUIDs: []uuid.UUID{f.register(t, "LAB-001").UUID},
	})
	if !errors.Is(err, code.InactiveNode) {
		t.Errorf("err = %v, want InactiveNode", err)
	}
}
