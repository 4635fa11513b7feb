package location

import (
	// 外部依赖
	"context"
	"strings"

	// 内部引用
	code "github.com/coldstack/samplestore/pkg/common/code"
	core "github.com/coldstack/samplestore/pkg/core/location"
	model "github.com/coldstack/samplestore/pkg/model"
	repo "github.com/coldstack/samplestore/pkg/repo"
	repoLocation "github.com/coldstack/samplestore/pkg/repo/location"
	repoSample "github.com/coldstack/samplestore/pkg/repo/sample"
)

type locationImpl struct {
	locStore    repo.LocationRepo
	sampleStore repo.SampleRepo
}

func New() core.Service {
	return &locationImpl{
		locStore:    repoLocation.NewLocationRepo(),
		sampleStore: repoSample.NewSampleRepo(),
	}
}

// NewWithStores 供单测注入假仓储
func NewWithStores(locStore repo.LocationRepo, sampleStore repo.SampleRepo) core.Service {
	return &locationImpl{locStore: locStore, sampleStore: sampleStore}
}

// Resolve 统一解析入口，按请求变体分发，恰好填一个
func (l *locationImpl) Resolve(ctx context.Context, req *core.ResolveReq) (*core.ResolveResp, error) {
	variants := 0
	if req.Cascade != nil {
		variants++
	}
	if req.Text != nil {
		variants++
	}
	if req.Barcode != nil {
		variants++
	}
	if variants != 1 {
		return nil, code.ParamErr.WithMsg("resolve request requires exactly one of cascade, text, barcode")
	}

	switch {
	case req.Cascade != nil:
		options, err := l.optionsFor(ctx, req.Cascade)
		if err != nil {
			return nil, err
		}
		return &core.ResolveResp{Options: options}, nil
	case req.Text != nil:
		matches, err := l.search(ctx, req.Text)
		if err != nil {
			return nil, err
		}
		return &core.ResolveResp{Matches: matches}, nil
	default:
		result, err := l.parseBarcode(ctx, req.Barcode)
		if err != nil {
			return nil, err
		}
		return &core.ResolveResp{Barcode: result}, nil
	}
}

// ---- 引用装配 ----

func roomRef(room *model.StorageRoom) *core.NodeRef {
	return &core.NodeRef{UUID: room.UUID, Code: room.Code, Name: room.Name}
}

func deviceRef(device *model.StorageDevice) *core.NodeRef {
	return &core.NodeRef{UUID: device.UUID, Code: device.Code, Name: device.Name}
}

func shelfRef(shelf *model.StorageShelf) *core.NodeRef {
	return &core.NodeRef{UUID: shelf.UUID, Code: shelf.Label, Name: shelf.Label}
}

func rackRef(rack *model.StorageRack) *core.NodeRef {
	return &core.NodeRef{UUID: rack.UUID, Code: rack.Label, Name: rack.Label}
}

func joinPath(parts ...string) string {
	path := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if path != "" {
			path += " > "
		}
		path += p
	}
	return path
}

// rackReference 格架（含可选坐标）的规范引用
func (l *locationImpl) rackReference(ctx context.Context, rack *model.StorageRack, coordinate *string) (*core.LocationReference, error) {
	room, device, shelf, err := l.locStore.GetRackAncestors(ctx, rack)
	if err != nil {
		return nil, err
	}
	ref := &core.LocationReference{
		Room:     roomRef(room),
		Device:   deviceRef(device),
		Shelf:    shelfRef(shelf),
		Rack:     rackRef(rack),
		Position: coordinate,
	}
	ref.HierarchicalPath = joinPath(room.Name, device.Name, shelf.Label, rack.Label)
	if coordinate != nil {
		ref.HierarchicalPath = joinPath(ref.HierarchicalPath, *coordinate)
	}
	return ref, nil
}

// ResolveRackPosition 校验坐标边界与祖先链激活性，返回规范完整引用
func (l *locationImpl) ResolveRackPosition(ctx context.Context, req *core.RackPositionReq) (*core.ResolvedTarget, error) {
	rack, err := l.locStore.GetRackByUUID(ctx, req.RackUUID)
	if err != nil {
		return nil, err
	}
	room, device, shelf, err := l.locStore.GetRackAncestors(ctx, rack)
	if err != nil {
		return nil, err
	}
	if !req.AllowInactive {
		if !room.Active || !device.Active || !shelf.Active || !rack.Active {
			return nil, code.InactiveNode.WithMsgf("location %q is inactive",
				joinPath(room.Name, device.Name, shelf.Label, rack.Label))
		}
	}

	coordinate, err := core.NormalizeCoordinate(req.Coordinate, rack.RowCount, rack.ColCount)
	if err != nil {
		return nil, err
	}

	ref := &core.LocationReference{
		Room:     roomRef(room),
		Device:   deviceRef(device),
		Shelf:    shelfRef(shelf),
		Rack:     rackRef(rack),
		Position: &coordinate,
		HierarchicalPath: joinPath(room.Name, device.Name, shelf.Label,
			rack.Label, coordinate),
	}
	return &core.ResolvedTarget{RackID: rack.ID, Coordinate: coordinate, Reference: ref}, nil
}

// FormatBarcode 完整引用 → 条码串，与解析互逆
func (l *locationImpl) FormatBarcode(ctx context.Context, req *core.RackPositionReq) (string, error) {
	target, err := l.ResolveRackPosition(ctx, req)
	if err != nil {
		return "", err
	}
	ref := target.Reference
	segments := []string{ref.Room.Code, ref.Device.Code, ref.Shelf.Code, ref.Rack.Code, target.Coordinate}
	return strings.Join(segments, barcodeSeparator()), nil
}
