package sample

import (
	"context"
	"sync"
	"testing"
	"time"

	code "github.com/coldstack/samplestore/pkg/common/code"
	core "github.com/coldstack/samplestore/pkg/core/sample"
	implLocation "github.com/coldstack/samplestore/pkg/core/location/location"
	model "github.com/coldstack/samplestore/pkg/model"
	repotest "github.com/coldstack/samplestore/pkg/repo/repotest"
)

// memPlanStore 单测用的方案暂存，TTL 到期按不存在处理
type memPlanStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	expires map[string]time.Time
}

func newMemPlanStore() *memPlanStore {
	return &memPlanStore{data: map[string][]byte{}, expires: map[string]time.Time{}}
}

func (m *memPlanStore) Save(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = payload
	m.expires[key] = time.Now().Add(ttl)
	return nil
}

func (m *memPlanStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.data[key]
	if !ok || time.Now().After(m.expires[key]) {
		return nil, code.PlanNotFound
	}
	return payload, nil
}

func (m *memPlanStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.expires, key)
	return nil
}

// fixture MAIN > FRZ01 > SHA 下两个 2x10 格架，加上完整的样品服务
type fixture struct {
	mem   *repotest.Mem
	plans *memPlanStore
	svc   core.Service

	room   *model.StorageRoom
	device *model.StorageDevice
	shelf  *model.StorageShelf
	rack1  *model.StorageRack
	rack2  *model.StorageRack
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	mem := repotest.NewMem()

	room := &model.StorageRoom{Code: "MAIN", Name: "Main Laboratory", Active: true}
	if err := mem.CreateRoom(ctx, room); err != nil {
		t.Fatalf("seed room: %v", err)
	}
	device := &model.StorageDevice{RoomID: room.ID, Code: "FRZ01", Name: "Freezer 1", Type: model.DeviceFreezer, Active: true}
	if err := mem.CreateDevice(ctx, device); err != nil {
		t.Fatalf("seed device: %v", err)
	}
	shelf := &model.StorageShelf{DeviceID: device.ID, Label: "SHA", Active: true}
	if err := mem.CreateShelf(ctx, shelf); err != nil {
		t.Fatalf("seed shelf: %v", err)
	}
	rack1 := &model.StorageRack{ShelfID: shelf.ID, Label: "RKR1", RowCount: 2, ColCount: 10, Active: true}
	if err := mem.CreateRack(ctx, rack1); err != nil {
		t.Fatalf("seed rack1: %v", err)
	}
	rack2 := &model.StorageRack{ShelfID: shelf.ID, Label: "RKR2", RowCount: 2, ColCount: 10, Active: true}
	if err := mem.CreateRack(ctx, rack2); err != nil {
		t.Fatalf("seed rack2: %v", err)
	}

	plans := newMemPlanStore()
	locSvc := implLocation.NewWithStores(mem, mem)
	return &fixture{
		mem:    mem,
		plans:  plans,
		svc:    NewWithDeps(mem, mem, mem, locSvc, plans),
		room:   room,
		device: device,
		shelf:  shelf,
		rack1:  rack1,
		rack2:  rack2,
	}
}

func (f *fixture) register(t *testing.T, externalID string) *core.SampleResp {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), &core.RegisterReq{ExternalID: externalID, Type: "serum"})
	if err != nil {
		t.Fatalf("register %s: %v", externalID, err)
	}
	return resp
}

func (f *fixture) assign(t *testing.T, sample *core.SampleResp, rack *model.StorageRack, coordinate string) *core.MutationResp {
	t.Helper()
	resp, err := f.svc.Assign(context.Background(), &core.AssignReq{
		SampleUUID: sample.UUID,
		RackUUID:   rack.UUID,
		Coordinate: coordinate,
	})
	if err != nil {
		t.Fatalf("assign %s to %s: %v", sample.ExternalID, coordinate, err)
	}
	return resp
}
