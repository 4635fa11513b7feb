package location

import (
	// 外部依赖
	"context"
	"fmt"
	"regexp"
	"strings"

	// 内部引用
	config "github.com/coldstack/samplestore/internal/config"
	core "github.com/coldstack/samplestore/pkg/core/location"
	model "github.com/coldstack/samplestore/pkg/model"
)

// 检体登录号形态，命中即判定为样品条码而非位置条码
var (
	accessionDigits = regexp.MustCompile(`^\d{2}-?\d{4,}$`)
	accessionCoded  = regexp.MustCompile(`^[A-Z]{1,4}-\d{4}-\d{3,}$`)
	pureNumeric     = regexp.MustCompile(`^\d{5,}$`)

	singleCode = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
)

func barcodeSeparator() string {
	sep := config.Global().Storage.BarcodeSeparator
	if sep == "" {
		sep = "-"
	}
	return sep
}

// DetectBarcodeType 对扫码串粗分类，位置条码为 分隔符连接的层级码
func DetectBarcodeType(raw string) core.BarcodeType {
	s := strings.TrimSpace(raw)
	if s == "" {
		return core.BarcodeUnknown
	}
	if accessionDigits.MatchString(s) || accessionCoded.MatchString(s) || pureNumeric.MatchString(s) {
		return core.BarcodeSample
	}
	if strings.Contains(s, barcodeSeparator()) {
		return core.BarcodeLocation
	}
	// 单段也可能是房间码
	if singleCode.MatchString(s) {
		return core.BarcodeLocation
	}
	return core.BarcodeUnknown
}

// 条码段序固定：房间码-设备码-层架标-格架标-坐标，允许截短
var barcodeLevels = []core.Level{core.LevelRoom, core.LevelDevice, core.LevelShelf, core.LevelRack, core.LevelPosition}

type barcodeWalk struct {
	raw        string
	components []string // 已解析段，形如 room=MAIN
	ref        *core.LocationReference
}

func (w *barcodeWalk) fail(level core.Level, step string, msg string) *core.BarcodeResult {
	parsed := strings.Join(w.components, ", ")
	return &core.BarcodeResult{
		Valid:             false,
		BarcodeType:       core.BarcodeLocation,
		ValidComponents:   w.ref,
		FirstMissingLevel: &level,
		FailedStep:        step,
		ErrorMessage:      fmt.Sprintf("Scanned code: %s (%s). %s", w.raw, parsed, msg),
	}
}

func (w *barcodeWalk) resolved(level core.Level, segment string, pathPart string) {
	w.components = append(w.components, fmt.Sprintf("%s=%s", level, segment))
	w.ref.HierarchicalPath = joinPath(w.ref.HierarchicalPath, pathPart)
}

// parseBarcode 渐进式条码解析：逐段向下匹配激活子节点，
// 首个失败段即停，已解析前缀原样返回。
func (l *locationImpl) parseBarcode(ctx context.Context, req *core.BarcodeQuery) (*core.BarcodeResult, error) {
	raw := strings.TrimSpace(req.Raw)
	walk := &barcodeWalk{raw: raw, ref: &core.LocationReference{}}

	switch DetectBarcodeType(raw) {
	case core.BarcodeSample:
		result := walk.fail(core.LevelRoom, core.StepFormatValidation,
			"Barcode type mismatch: this is a sample barcode, not a storage location barcode.")
		result.BarcodeType = core.BarcodeSample
		return result, nil
	case core.BarcodeUnknown:
		result := walk.fail(core.LevelRoom, core.StepFormatValidation,
			"Barcode format not recognized as a storage location code.")
		result.BarcodeType = core.BarcodeUnknown
		return result, nil
	}

	segments := strings.Split(raw, barcodeSeparator())
	if len(segments) > len(barcodeLevels) {
		return walk.fail(core.LevelPosition, core.StepHierarchyValidation,
			fmt.Sprintf("Too many segments: a location barcode has at most %d levels.", len(barcodeLevels))), nil
	}
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return walk.fail(core.LevelRoom, core.StepFormatValidation,
				"Empty segment: every level between separators must carry a code."), nil
		}
	}

	var (
		room   *model.StorageRoom
		device *model.StorageDevice
		shelf  *model.StorageShelf
		rack   *model.StorageRack
	)
	for i, seg := range segments {
		seg = strings.TrimSpace(seg)
		level := barcodeLevels[i]

		switch level {
		case core.LevelRoom:
			found, err := l.locStore.GetRoomByCode(ctx, seg)
			if err != nil {
				return walk.fail(level, core.StepLocationExistence,
					fmt.Sprintf("Room with code '%s' does not exist.", seg)), nil
			}
			if !found.Active && !req.AllowInactive {
				return walk.fail(level, core.StepActivityCheck,
					fmt.Sprintf("Room '%s' is inactive.", found.Name)), nil
			}
			room = found
			walk.ref.Room = roomRef(room)
			walk.resolved(level, seg, room.Name)
		case core.LevelDevice:
			found, err := l.locStore.GetDeviceByCode(ctx, room.ID, seg)
			if err != nil {
				return walk.fail(level, core.StepHierarchyValidation,
					fmt.Sprintf("Device with code '%s' does not exist under room '%s'.", seg, room.Name)), nil
			}
			if !found.Active && !req.AllowInactive {
				return walk.fail(level, core.StepActivityCheck,
					fmt.Sprintf("Device '%s' is inactive.", found.Name)), nil
			}
			device = found
			walk.ref.Device = deviceRef(device)
			walk.resolved(level, seg, device.Name)
		case core.LevelShelf:
			found, err := l.locStore.GetShelfByLabel(ctx, device.ID, seg)
			if err != nil {
				return walk.fail(level, core.StepHierarchyValidation,
					fmt.Sprintf("Shelf with label '%s' does not exist under device '%s'.", seg, device.Name)), nil
			}
			if !found.Active && !req.AllowInactive {
				return walk.fail(level, core.StepActivityCheck,
					fmt.Sprintf("Shelf '%s' is inactive.", found.Label)), nil
			}
			shelf = found
			walk.ref.Shelf = shelfRef(shelf)
			walk.resolved(level, seg, shelf.Label)
		case core.LevelRack:
			found, err := l.locStore.GetRackByLabel(ctx, shelf.ID, seg)
			if err != nil {
				return walk.fail(level, core.StepHierarchyValidation,
					fmt.Sprintf("Rack with label '%s' does not exist under shelf '%s'.", seg, shelf.Label)), nil
			}
			if !found.Active && !req.AllowInactive {
				return walk.fail(level, core.StepActivityCheck,
					fmt.Sprintf("Rack '%s' is inactive.", found.Label)), nil
			}
			rack = found
			walk.ref.Rack = rackRef(rack)
			walk.resolved(level, seg, rack.Label)
		case core.LevelPosition:
			coordinate, err := core.NormalizeCoordinate(seg, rack.RowCount, rack.ColCount)
			if err != nil {
				// 坐标越界按失败段处理，已解析的层级仍然可用
				return walk.fail(level, core.StepHierarchyValidation,
					fmt.Sprintf("Position '%s' is outside the %dx%d grid of rack '%s'.",
						seg, rack.RowCount, rack.ColCount, rack.Label)), nil
			}
			walk.ref.Position = &coordinate
			walk.resolved(level, seg, coordinate)
		}
	}

	return &core.BarcodeResult{
		Valid:           true,
		BarcodeType:     core.BarcodeLocation,
		Reference:       walk.ref,
		ValidComponents: walk.ref,
	}, nil
}
