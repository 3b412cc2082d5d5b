package ifc

import "fmt"

// ============================================================
// Hierarchy Builder
// ============================================================

// Константы слоя материала стены (как в исходной модели).
const (
	wallLayerThickness = 10.0
	wallLayerOffset    = 150.0
	wallMaterialName   = "Wall Material"
)

// WallParams — параметры размещения стены, подготовленные
// экстрактором геометрии.
type WallParams struct {
	PosX   float64
	PosY   float64
	DirX   float64
	DirY   float64
	DirZ   float64 // принимается, но в reference direction не участвует
	Length float64
	Width  float64
	Height float64
}

// CreateBuilding создает здание (composition = ELEMENT, identity
// placement в начале координат) и присоединяет его к проекту.
// Без проекта — ErrNoProject.
func CreateBuilding(m *Model, name string) (*Building, error) {
	var building *Building
	err := m.RunInTransaction(fmt.Sprintf("create building %q", name), func(tx *Tx) error {
		project := m.Project()
		if project == nil {
			return ErrNoProject
		}

		placement := registerIdentityPlacement(tx)
		building = &Building{
			root: root{
				GlobalID: NewGlobalID(),
				History:  m.ownerHistory(),
				Name:     name,
			},
			Placement:   placement,
			Composition: CompositionElement,
		}
		tx.Register(building)

		rel := &RelAggregates{
			root:     root{GlobalID: NewGlobalID(), History: m.ownerHistory(), Name: "Project Container"},
			Relating: project,
			Related:  []Instance{building},
		}
		tx.Register(rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return building, nil
}

// CreateStorey создает этаж с заданной отметкой и включает его в
// spatial decomposition здания.
func CreateStorey(m *Model, name string, elevation float64, building *Building) (*Storey, error) {
	if building == nil {
		return nil, ErrNoBuilding
	}

	var storey *Storey
	err := m.RunInTransaction(fmt.Sprintf("create storey %q", name), func(tx *Tx) error {
		placement := registerIdentityPlacement(tx)
		storey = &Storey{
			root: root{
				GlobalID: NewGlobalID(),
				History:  m.ownerHistory(),
				Name:     name,
			},
			Placement: placement,
			Elevation: elevation,
		}
		tx.Register(storey)

		rel := &RelAggregates{
			root:     root{GlobalID: NewGlobalID(), History: m.ownerHistory(), Name: "Building Container"},
			Relating: building,
			Related:  []Instance{storey},
		}
		tx.Register(rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return storey, nil
}

// CreateWall строит стену целиком в одной транзакции:
// профиль → экструзия → размещение → слой материала → привязка к
// этажу. Частично построенная стена наружу не видна.
//
// Профиль всегда вставляется в локальном (0,0) — PosX/PosY задают
// только внешнее размещение стены. Нулевые длина и высота не
// отклоняются: вырожденную экструзию помечает валидатор.
func CreateWall(m *Model, p WallParams, storey *Storey) (*Wall, error) {
	if storey == nil {
		return nil, ErrNoStorey
	}

	var wall *Wall
	err := m.RunInTransaction("create wall", func(tx *Tx) error {
		context := m.Context()
		if context == nil {
			return ErrNoProject
		}

		// (a) прямоугольный профиль length × width в локальном нуле
		profileOrigin := &CartesianPoint{Coords: []float64{0, 0}}
		tx.Register(profileOrigin)
		profilePos := &Axis2Placement2D{Location: profileOrigin}
		tx.Register(profilePos)
		profile := &RectangleProfileDef{
			ProfileName: "Wall Perimeter",
			Position:    profilePos,
			XDim:        p.Length,
			YDim:        p.Width,
		}
		tx.Register(profile)

		// (b) экструзия профиля вдоль +Z на высоту
		solidOrigin := &CartesianPoint{Coords: []float64{0, 0, 0}}
		tx.Register(solidOrigin)
		solidPos := &Axis2Placement3D{Location: solidOrigin}
		tx.Register(solidPos)
		extrudeDir := &Direction{Ratios: []float64{0, 0, 1}}
		tx.Register(extrudeDir)
		solid := &ExtrudedAreaSolid{
			SweptArea: profile,
			Position:  solidPos,
			Direction: extrudeDir,
			Depth:     p.Height,
		}
		tx.Register(solid)

		shape := &ShapeRepresentation{
			Context:    context,
			Identifier: "Body",
			Type:       "SweptSolid",
			Items:      []Instance{solid},
		}
		tx.Register(shape)
		productShape := &ProductDefinitionShape{Representations: []Instance{shape}}
		tx.Register(productShape)

		// (c) внешнее размещение: точка (PosX,PosY,0), направление
		// (DirX,DirY,0); DirZ сюда не входит
		location := &CartesianPoint{Coords: []float64{p.PosX, p.PosY, 0}}
		tx.Register(location)
		axis := &Direction{Ratios: []float64{0, 0, 1}}
		tx.Register(axis)
		refDir := &Direction{Ratios: []float64{p.DirX, p.DirY, 0}}
		tx.Register(refDir)
		axisPlacement := &Axis2Placement3D{Location: location, Axis: axis, RefDirection: refDir}
		tx.Register(axisPlacement)
		placement := &LocalPlacement{RelativePlacement: axisPlacement}
		tx.Register(placement)

		wall = &Wall{
			root: root{
				GlobalID: NewGlobalID(),
				History:  m.ownerHistory(),
				Name:     "Wall",
			},
			Placement:      placement,
			Representation: productShape,
		}
		tx.Register(wall)

		// (d) слой материала: толщина 10, offset 150, AXIS2/NEGATIVE
		material := &Material{Name: wallMaterialName}
		tx.Register(material)
		layer := &MaterialLayer{Material: material, Thickness: wallLayerThickness}
		tx.Register(layer)
		layerSet := &MaterialLayerSet{Layers: []Instance{layer}, Name: wallMaterialName}
		tx.Register(layerSet)
		usage := &MaterialLayerSetUsage{
			LayerSet:  layerSet,
			Direction: LayerSetDirectionAxis2,
			Sense:     DirectionSenseNegative,
			Offset:    wallLayerOffset,
		}
		tx.Register(usage)
		assoc := &RelAssociatesMaterial{
			root:     root{GlobalID: NewGlobalID(), History: m.ownerHistory()},
			Related:  []Instance{wall},
			Relating: usage,
		}
		tx.Register(assoc)

		// (e) размещение на этаже
		contained := &RelContainedInSpatialStructure{
			root:     root{GlobalID: NewGlobalID(), History: m.ownerHistory(), Name: "Storey Container"},
			Related:  []Instance{wall},
			Relating: storey,
		}
		tx.Register(contained)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wall, nil
}

// CreateSpace создает помещение и по одной space-boundary связи на
// каждую переданную стену. Пустой список стен — не ошибка:
// помещение просто остается без границ.
func CreateSpace(m *Model, storey *Storey, walls []*Wall, name, description, longName string, composition Enum) (*Space, error) {
	if storey == nil {
		return nil, ErrNoStorey
	}

	var space *Space
	err := m.RunInTransaction(fmt.Sprintf("create space %q", name), func(tx *Tx) error {
		placement := registerIdentityPlacement(tx)
		space = &Space{
			root: root{
				GlobalID:    NewGlobalID(),
				History:     m.ownerHistory(),
				Name:        name,
				Description: description,
			},
			Placement:   placement,
			LongName:    longName,
			Composition: composition,
		}
		tx.Register(space)

		for _, wall := range walls {
			boundary := &RelSpaceBoundary{
				root:           root{GlobalID: NewGlobalID(), History: m.ownerHistory(), Name: "Space Boundary"},
				RelatingSpace:  space,
				RelatedElement: wall,
			}
			tx.Register(boundary)
		}

		contained := &RelContainedInSpatialStructure{
			root:     root{GlobalID: NewGlobalID(), History: m.ownerHistory(), Name: "Storey Container"},
			Related:  []Instance{space},
			Relating: storey,
		}
		tx.Register(contained)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return space, nil
}

// registerIdentityPlacement — local placement в начале координат.
func registerIdentityPlacement(tx *Tx) *LocalPlacement {
	origin := &CartesianPoint{Coords: []float64{0, 0, 0}}
	tx.Register(origin)
	axisPlacement := &Axis2Placement3D{Location: origin}
	tx.Register(axisPlacement)
	placement := &LocalPlacement{RelativePlacement: axisPlacement}
	tx.Register(placement)
	return placement
}
