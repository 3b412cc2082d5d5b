package ifc

import (
	"errors"
	"testing"
)

func TestCreateBuildingWithoutProject(t *testing.T) {
	m := NewModel("p", testCredentials())

	_, err := CreateBuilding(m, "B1")
	if !errors.Is(err, ErrNoProject) {
		t.Fatalf("err = %v, want ErrNoProject", err)
	}
	if len(m.Instances()) != 0 {
		t.Errorf("got %d instances after failed create, want 0", len(m.Instances()))
	}
}

func TestCreateStoreyRequiresBuilding(t *testing.T) {
	m := newTestModel(t)

	if _, err := CreateStorey(m, "S1", 0, nil); !errors.Is(err, ErrNoBuilding) {
		t.Fatalf("err = %v, want ErrNoBuilding", err)
	}
}

func TestCreateWallRequiresStorey(t *testing.T) {
	m := newTestModel(t)

	if _, err := CreateWall(m, WallParams{Length: 1, Width: 1, Height: 1}, nil); !errors.Is(err, ErrNoStorey) {
		t.Fatalf("err = %v, want ErrNoStorey", err)
	}
}

// Профиль стены всегда в локальном (0,0): позиция сегмента уходит
// только во внешнее размещение.
func TestCreateWallProfileAtOrigin(t *testing.T) {
	m := newTestModel(t)
	building, _ := CreateBuilding(m, "B1")
	storey, _ := CreateStorey(m, "S1", 0, building)

	params := WallParams{
		PosX: 5, PosY: 3,
		DirX: 0, DirY: 1, DirZ: 0.7,
		Length: 10, Width: 0.5, Height: 2,
	}
	wall, err := CreateWall(m, params, storey)
	if err != nil {
		t.Fatalf("CreateWall: %v", err)
	}

	var profile *RectangleProfileDef
	for _, inst := range m.Instances() {
		if p, ok := inst.(*RectangleProfileDef); ok {
			profile = p
		}
	}
	if profile == nil {
		t.Fatal("no rectangle profile registered")
	}
	coords := profile.Position.Location.Coords
	if len(coords) != 2 || coords[0] != 0 || coords[1] != 0 {
		t.Errorf("profile origin = %v, want (0,0)", coords)
	}
	if profile.XDim != params.Length || profile.YDim != params.Width {
		t.Errorf("profile dims = %v x %v, want %v x %v", profile.XDim, profile.YDim, params.Length, params.Width)
	}

	// Внешнее размещение несет позицию и направление; DirZ в
	// reference direction не участвует.
	axisPlacement := wall.Placement.RelativePlacement
	loc := axisPlacement.Location.Coords
	if loc[0] != params.PosX || loc[1] != params.PosY || loc[2] != 0 {
		t.Errorf("wall location = %v, want (%v, %v, 0)", loc, params.PosX, params.PosY)
	}
	ref := axisPlacement.RefDirection.Ratios
	if ref[0] != params.DirX || ref[1] != params.DirY || ref[2] != 0 {
		t.Errorf("wall ref direction = %v, want (%v, %v, 0)", ref, params.DirX, params.DirY)
	}

	var solid *ExtrudedAreaSolid
	for _, inst := range m.Instances() {
		if s, ok := inst.(*ExtrudedAreaSolid); ok {
			solid = s
		}
	}
	if solid == nil {
		t.Fatal("no extruded solid registered")
	}
	if solid.Depth != params.Height {
		t.Errorf("extrusion depth = %v, want %v", solid.Depth, params.Height)
	}
	if dir := solid.Direction.Ratios; dir[0] != 0 || dir[1] != 0 || dir[2] != 1 {
		t.Errorf("extrusion direction = %v, want +Z", dir)
	}
}

func TestCreateWallMaterialLayer(t *testing.T) {
	m := newTestModel(t)
	building, _ := CreateBuilding(m, "B1")
	storey, _ := CreateStorey(m, "S1", 0, building)
	if _, err := CreateWall(m, WallParams{DirX: 1, Length: 10, Width: 0.5, Height: 2}, storey); err != nil {
		t.Fatalf("CreateWall: %v", err)
	}

	var layer *MaterialLayer
	var usage *MaterialLayerSetUsage
	for _, inst := range m.Instances() {
		switch v := inst.(type) {
		case *MaterialLayer:
			layer = v
		case *MaterialLayerSetUsage:
			usage = v
		}
	}
	if layer == nil || usage == nil {
		t.Fatal("material layer chain not registered")
	}
	if layer.Thickness != 10 {
		t.Errorf("layer thickness = %v, want 10", layer.Thickness)
	}
	if usage.Offset != 150 {
		t.Errorf("layer offset = %v, want 150", usage.Offset)
	}
	if usage.Direction != LayerSetDirectionAxis2 || usage.Sense != DirectionSenseNegative {
		t.Errorf("usage = %s/%s, want AXIS2/NEGATIVE", usage.Direction, usage.Sense)
	}
}

func TestCreateSpaceWithoutWalls(t *testing.T) {
	m := newTestModel(t)
	building, _ := CreateBuilding(m, "B1")
	storey, _ := CreateStorey(m, "S1", 0, building)

	space, err := CreateSpace(m, storey, nil, "Room", "", "Room 101", CompositionElement)
	if err != nil {
		t.Fatalf("CreateSpace: %v", err)
	}
	if got := len(m.Boundaries(space)); got != 0 {
		t.Errorf("boundaries = %d, want 0", got)
	}

	contained := false
	for _, el := range m.Elements(storey) {
		if el == Instance(space) {
			contained = true
		}
	}
	if !contained {
		t.Error("space is not contained in the storey")
	}
}

func TestCreateSpaceBoundaryPerWall(t *testing.T) {
	m := newTestModel(t)
	building, _ := CreateBuilding(m, "B1")
	storey, _ := CreateStorey(m, "S1", 0, building)

	w1, _ := CreateWall(m, WallParams{DirX: 1, Length: 10, Width: 0.5, Height: 2}, storey)
	w2, _ := CreateWall(m, WallParams{DirY: 1, Length: 5, Width: 0.5, Height: 2}, storey)

	space, err := CreateSpace(m, storey, []*Wall{w1, w2}, "Room", "corner room", "Room 101", CompositionElement)
	if err != nil {
		t.Fatalf("CreateSpace: %v", err)
	}

	boundaries := m.Boundaries(space)
	if len(boundaries) != 2 {
		t.Fatalf("boundaries = %d, want 2", len(boundaries))
	}
	if boundaries[0].RelatedElement != Instance(w1) || boundaries[1].RelatedElement != Instance(w2) {
		t.Error("boundaries do not reference the walls in order")
	}
}
