package models

import "ifc-builder/internal/builder/ifc"

// ============================================================
// Segment descriptors
// ============================================================

// Kind сегмента полилинии, как его сообщает CAD-хост.
const (
	KindLine = "line"
	KindArc  = "arc"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment — один сегмент полилинии в порядке обхода.
// Bulge задает дугу в CAD-конвенции (tan четверти угла), для
// линейных сегментов равен нулю.
type Segment struct {
	Kind  string  `json:"kind"`
	Start Point   `json:"start"`
	End   Point   `json:"end"`
	Bulge float64 `json:"bulge,omitempty"`
}

// ============================================================
// Build API
// ============================================================

type SpaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LongName    string `json:"long_name"`
	Composition string `json:"composition"` // ELEMENT | COMPLEX | PARTIAL
}

type BuildRequest struct {
	Building   string        `json:"building"`
	Storey     string        `json:"storey"`
	Elevation  float64       `json:"elevation"`
	Segments   []Segment     `json:"segments"`
	WallWidth  float64       `json:"wall_width,omitempty"`  // 0 = значение из конфига
	WallHeight float64       `json:"wall_height,omitempty"` // 0 = значение из конфига
	Space      *SpaceRequest `json:"space,omitempty"`
}

// SegmentOutcome — типизированный результат обработки сегмента:
// либо стена, либо пропуск с причиной.
type SegmentOutcome struct {
	Index  int       `json:"index"`
	Kind   string    `json:"kind"`
	Wall   *WallInfo `json:"wall,omitempty"`
	Reason string    `json:"reason,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

type WallInfo struct {
	PosX   float64 `json:"pos_x"`
	PosY   float64 `json:"pos_y"`
	DirX   float64 `json:"dir_x"`
	DirY   float64 `json:"dir_y"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type BuildResponse struct {
	Project  string           `json:"project"`
	Building string           `json:"building"`
	Storey   string           `json:"storey"`
	Walls    int              `json:"walls"`
	Segments []SegmentOutcome `json:"segments"`
	Report   *ifc.Report      `json:"report"`
	Step     string           `json:"step,omitempty"`
}

// ModelSummary — срез живой модели процесса.
type ModelSummary struct {
	Project   string `json:"project"`
	Schema    string `json:"schema"`
	Instances int    `json:"instances"`
	Buildings int    `json:"buildings"`
	Walls     int    `json:"walls"`
	Spaces    int    `json:"spaces"`
}
