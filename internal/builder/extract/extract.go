package extract

import (
	"fmt"
	"math"

	"ifc-builder/internal/builder/ifc"
	"ifc-builder/internal/builder/models"
)

// ============================================================
// Geometry Extractor
// ============================================================

// Tolerance: сегмент короче этого считается вырожденным.
const degenerateTolerance = 1e-9

// Причины пропуска сегмента.
const (
	SkipUnsupportedArc = "unsupported-arc"
	SkipDegenerate     = "degenerate-segment"
	SkipUnknownKind    = "unknown-kind"
)

// Result — исход обработки одного сегмента: параметры стены или
// пропуск с причиной. Стены и пропуски не смешиваются.
type Result struct {
	Index  int
	Kind   string
	Wall   *ifc.WallParams
	Reason string
	Detail string
}

// Extractor превращает сегменты полилинии в параметры размещения
// стен. Ширина и высота стен задаются конфигурацией.
type Extractor struct {
	width  float64
	height float64
}

func New(width, height float64) *Extractor {
	return &Extractor{width: width, height: height}
}

// Extract обходит сегменты по порядку. Линия дает стену
// (середина, направление, длина); дуга и вырожденный сегмент —
// диагностический пропуск, обработка продолжается.
func (e *Extractor) Extract(segments []models.Segment) []Result {
	results := make([]Result, 0, len(segments))
	for i, seg := range segments {
		results = append(results, e.extractOne(i, seg))
	}
	return results
}

func (e *Extractor) extractOne(index int, seg models.Segment) Result {
	res := Result{Index: index, Kind: seg.Kind}

	switch seg.Kind {
	case models.KindLine:
		dx := seg.End.X - seg.Start.X
		dy := seg.End.Y - seg.Start.Y
		length := math.Hypot(dx, dy)
		if length < degenerateTolerance {
			res.Reason = SkipDegenerate
			res.Detail = fmt.Sprintf("segment %d has zero length at (%v, %v)", index, seg.Start.X, seg.Start.Y)
			return res
		}

		res.Wall = &ifc.WallParams{
			PosX:   (seg.Start.X + seg.End.X) / 2,
			PosY:   (seg.Start.Y + seg.End.Y) / 2,
			DirX:   dx / length,
			DirY:   dy / length,
			DirZ:   0,
			Length: length,
			Width:  e.width,
			Height: e.height,
		}
		return res

	case models.KindArc:
		// Дуги в стены не конвертируются — только диагностика.
		res.Reason = SkipUnsupportedArc
		res.Detail = arcDetail(index, seg)
		return res

	default:
		res.Reason = SkipUnknownKind
		res.Detail = fmt.Sprintf("segment %d has unsupported kind %q", index, seg.Kind)
		return res
	}
}

// arcDetail восстанавливает радиус и центр дуги из bulge
// (bulge = tan(theta/4)) для диагностического сообщения.
func arcDetail(index int, seg models.Segment) string {
	chord := math.Hypot(seg.End.X-seg.Start.X, seg.End.Y-seg.Start.Y)
	if chord < degenerateTolerance || seg.Bulge == 0 {
		return fmt.Sprintf("segment %d is a degenerate arc", index)
	}

	b := seg.Bulge
	radius := chord * (1 + b*b) / (4 * math.Abs(b))

	// Центр: середина хорды плюс перпендикулярное смещение.
	midX := (seg.Start.X + seg.End.X) / 2
	midY := (seg.Start.Y + seg.End.Y) / 2
	sagitta := b * chord / 2
	offset := radius - math.Abs(sagitta)
	if sagitta < 0 {
		offset = -offset
	}
	nx := -(seg.End.Y - seg.Start.Y) / chord
	ny := (seg.End.X - seg.Start.X) / chord
	centerX := midX - nx*offset
	centerY := midY - ny*offset

	return fmt.Sprintf(
		"segment %d is an arc: start (%v, %v) end (%v, %v) radius %.3f center (%.3f, %.3f)",
		index, seg.Start.X, seg.Start.Y, seg.End.X, seg.End.Y, radius, centerX, centerY,
	)
}
