package location

import (
	"context"
	"testing"

	core "github.com/coldstack/samplestore/pkg/core/location"
	model "github.com/coldstack/samplestore/pkg/model"
	repotest "github.com/coldstack/samplestore/pkg/repo/repotest"
)

// fixture 一套小型层级：MAIN > FRZ01 > SHA > RKR1(2x10)/RKR2(2x10)
type fixture struct {
	mem *repotest.Mem
	svc core.Service

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

	return &fixture{
		mem:    mem,
		svc:    NewWithStores(mem, mem),
		room:   room,
		device: device,
		shelf:  shelf,
		rack1:  rack1,
		rack2:  rack2,
	}
}

func (f *fixture) addSample(t *testing.T, externalID string) *model.SampleItem {
	t.Helper()
	item := &model.SampleItem{ExternalID: externalID, Type: "serum", Status: model.SampleActive}
	if err := f.mem.CreateSample(context.Background(), item); err != nil {
		t.Fatalf("seed sample %s: %v", externalID, err)
	}
	return item
}

func (f *fixture) occupy(t *testing.T, rack *model.StorageRack, coordinate string, item *model.SampleItem) {
	t.Helper()
	if err := f.mem.CreateAssignment(context.Background(), &model.StorageAssignment{
		SampleItemID: item.ID,
		RackID:       rack.ID,
		Coordinate:   coordinate,
	}); err != nil {
		t.Fatalf("seed assignment %s: %v", coordinate, err)
	}
}
