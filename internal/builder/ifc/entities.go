package ifc

// ============================================================
// IFC4 Entities
// ============================================================

// Instance — зарегистрированный экземпляр модели (одна STEP-запись).
type Instance interface {
	StepType() string
	StepArgs() []any
	ID() int
	setID(int)
}

type base struct {
	id int
}

func (b *base) ID() int      { return b.id }
func (b *base) setID(id int) { b.id = id }

// root — общие атрибуты IfcRoot (GlobalId, история, имя).
type root struct {
	base
	GlobalID    string
	History     *OwnerHistory
	Name        string
	Description string
}

// Rooted реализуют все сущности, производные от IfcRoot.
type Rooted interface {
	Instance
	GID() string
}

func (r *root) GID() string { return r.GlobalID }

func (r *root) rootArgs() []any {
	return []any{r.GlobalID, opt(r.History), strOpt(r.Name), strOpt(r.Description)}
}

// Enum кодируется в STEP как .VALUE.
type Enum string

const (
	CompositionElement Enum = "ELEMENT"
	CompositionComplex Enum = "COMPLEX"
	CompositionPartial Enum = "PARTIAL"

	LayerSetDirectionAxis2 Enum = "AXIS2"
	DirectionSenseNegative Enum = "NEGATIVE"

	BoundaryPhysical Enum = "PHYSICAL"
	BoundaryInternal Enum = "INTERNAL"
)

// omitted — атрибут со значением * (выводимый).
type omitted struct{}

var derived = omitted{}

// ============================================================
// Geometry
// ============================================================

type CartesianPoint struct {
	base
	Coords []float64
}

func (p *CartesianPoint) StepType() string { return "IFCCARTESIANPOINT" }
func (p *CartesianPoint) StepArgs() []any  { return []any{p.Coords} }

type Direction struct {
	base
	Ratios []float64
}

func (d *Direction) StepType() string { return "IFCDIRECTION" }
func (d *Direction) StepArgs() []any  { return []any{d.Ratios} }

type Axis2Placement2D struct {
	base
	Location     *CartesianPoint
	RefDirection *Direction
}

func (p *Axis2Placement2D) StepType() string { return "IFCAXIS2PLACEMENT2D" }
func (p *Axis2Placement2D) StepArgs() []any {
	return []any{p.Location, opt(p.RefDirection)}
}

type Axis2Placement3D struct {
	base
	Location     *CartesianPoint
	Axis         *Direction
	RefDirection *Direction
}

func (p *Axis2Placement3D) StepType() string { return "IFCAXIS2PLACEMENT3D" }
func (p *Axis2Placement3D) StepArgs() []any {
	return []any{p.Location, opt(p.Axis), opt(p.RefDirection)}
}

type LocalPlacement struct {
	base
	PlacementRelTo    *LocalPlacement
	RelativePlacement *Axis2Placement3D
}

func (p *LocalPlacement) StepType() string { return "IFCLOCALPLACEMENT" }
func (p *LocalPlacement) StepArgs() []any {
	return []any{opt(p.PlacementRelTo), p.RelativePlacement}
}

// GeometricRepresentationContext — единый координатный контекст модели.
// Все shape representation обязаны ссылаться именно на него.
type GeometricRepresentationContext struct {
	base
	ContextType string
	Dimension   int
	Precision   float64
	WCS         *Axis2Placement3D
	TrueNorth   *Direction
}

func (c *GeometricRepresentationContext) StepType() string {
	return "IFCGEOMETRICREPRESENTATIONCONTEXT"
}

func (c *GeometricRepresentationContext) StepArgs() []any {
	return []any{nil, c.ContextType, c.Dimension, c.Precision, c.WCS, opt(c.TrueNorth)}
}

type RectangleProfileDef struct {
	base
	ProfileName string
	Position    *Axis2Placement2D
	XDim        float64
	YDim        float64
}

func (p *RectangleProfileDef) StepType() string { return "IFCRECTANGLEPROFILEDEF" }
func (p *RectangleProfileDef) StepArgs() []any {
	return []any{Enum("AREA"), strOpt(p.ProfileName), opt(p.Position), p.XDim, p.YDim}
}

type ExtrudedAreaSolid struct {
	base
	SweptArea *RectangleProfileDef
	Position  *Axis2Placement3D
	Direction *Direction
	Depth     float64
}

func (s *ExtrudedAreaSolid) StepType() string { return "IFCEXTRUDEDAREASOLID" }
func (s *ExtrudedAreaSolid) StepArgs() []any {
	return []any{s.SweptArea, s.Position, s.Direction, s.Depth}
}

type ShapeRepresentation struct {
	base
	Context    *GeometricRepresentationContext
	Identifier string
	Type       string
	Items      []Instance
}

func (r *ShapeRepresentation) StepType() string { return "IFCSHAPEREPRESENTATION" }
func (r *ShapeRepresentation) StepArgs() []any {
	return []any{r.Context, r.Identifier, r.Type, r.Items}
}

type ProductDefinitionShape struct {
	base
	Representations []Instance
}

func (s *ProductDefinitionShape) StepType() string { return "IFCPRODUCTDEFINITIONSHAPE" }
func (s *ProductDefinitionShape) StepArgs() []any {
	return []any{nil, nil, s.Representations}
}

// ============================================================
// Units & ownership
// ============================================================

type SIUnit struct {
	base
	UnitType Enum
	Prefix   Enum // пустая строка = $
	UnitName Enum
}

func (u *SIUnit) StepType() string { return "IFCSIUNIT" }
func (u *SIUnit) StepArgs() []any {
	var prefix any
	if u.Prefix != "" {
		prefix = u.Prefix
	}
	return []any{derived, u.UnitType, prefix, u.UnitName}
}

type UnitAssignment struct {
	base
	Units []Instance
}

func (u *UnitAssignment) StepType() string { return "IFCUNITASSIGNMENT" }
func (u *UnitAssignment) StepArgs() []any  { return []any{u.Units} }

type Person struct {
	base
	FamilyName string
	GivenName  string
}

func (p *Person) StepType() string { return "IFCPERSON" }
func (p *Person) StepArgs() []any {
	return []any{nil, strOpt(p.FamilyName), strOpt(p.GivenName), nil, nil, nil, nil, nil}
}

type Organization struct {
	base
	Name string
}

func (o *Organization) StepType() string { return "IFCORGANIZATION" }
func (o *Organization) StepArgs() []any {
	return []any{nil, o.Name, nil, nil, nil}
}

type PersonAndOrganization struct {
	base
	ThePerson       *Person
	TheOrganization *Organization
}

func (p *PersonAndOrganization) StepType() string { return "IFCPERSONANDORGANIZATION" }
func (p *PersonAndOrganization) StepArgs() []any {
	return []any{p.ThePerson, p.TheOrganization, nil}
}

type Application struct {
	base
	Developer  *Organization
	Version    string
	FullName   string
	Identifier string
}

func (a *Application) StepType() string { return "IFCAPPLICATION" }
func (a *Application) StepArgs() []any {
	return []any{a.Developer, a.Version, a.FullName, a.Identifier}
}

type OwnerHistory struct {
	base
	OwningUser        *PersonAndOrganization
	OwningApplication *Application
	CreationDate      int64
}

func (h *OwnerHistory) StepType() string { return "IFCOWNERHISTORY" }
func (h *OwnerHistory) StepArgs() []any {
	return []any{h.OwningUser, h.OwningApplication, nil, Enum("ADDED"), nil, nil, nil, int(h.CreationDate)}
}

// ============================================================
// Spatial structure
// ============================================================

type Project struct {
	root
	LongName string
	Contexts []Instance
	Units    *UnitAssignment
}

func (p *Project) StepType() string { return "IFCPROJECT" }
func (p *Project) StepArgs() []any {
	return append(p.rootArgs(), nil, strOpt(p.LongName), nil, p.Contexts, p.Units)
}

type Building struct {
	root
	Placement   *LocalPlacement
	Composition Enum
}

func (b *Building) StepType() string { return "IFCBUILDING" }
func (b *Building) StepArgs() []any {
	return append(b.rootArgs(), nil, opt(b.Placement), nil, nil, b.Composition, nil, nil, nil)
}

type Storey struct {
	root
	Placement *LocalPlacement
	Elevation float64
}

func (s *Storey) StepType() string { return "IFCBUILDINGSTOREY" }
func (s *Storey) StepArgs() []any {
	return append(s.rootArgs(), nil, opt(s.Placement), nil, nil, CompositionElement, s.Elevation)
}

type Wall struct {
	root
	Placement      *LocalPlacement
	Representation *ProductDefinitionShape
}

func (w *Wall) StepType() string { return "IFCWALLSTANDARDCASE" }
func (w *Wall) StepArgs() []any {
	return append(w.rootArgs(), nil, opt(w.Placement), opt(w.Representation), nil, Enum("STANDARD"))
}

type Space struct {
	root
	Placement   *LocalPlacement
	LongName    string
	Composition Enum
}

func (s *Space) StepType() string { return "IFCSPACE" }
func (s *Space) StepArgs() []any {
	return append(s.rootArgs(), nil, opt(s.Placement), nil, strOpt(s.LongName), s.Composition, nil, nil)
}

// ============================================================
// Materials
// ============================================================

type Material struct {
	base
	Name string
}

func (m *Material) StepType() string { return "IFCMATERIAL" }
func (m *Material) StepArgs() []any  { return []any{m.Name, nil, nil} }

type MaterialLayer struct {
	base
	Material  *Material
	Thickness float64
}

func (l *MaterialLayer) StepType() string { return "IFCMATERIALLAYER" }
func (l *MaterialLayer) StepArgs() []any {
	return []any{opt(l.Material), l.Thickness, nil, nil, nil, nil, nil}
}

type MaterialLayerSet struct {
	base
	Layers []Instance
	Name   string
}

func (s *MaterialLayerSet) StepType() string { return "IFCMATERIALLAYERSET" }
func (s *MaterialLayerSet) StepArgs() []any {
	return []any{s.Layers, strOpt(s.Name), nil}
}

type MaterialLayerSetUsage struct {
	base
	LayerSet  *MaterialLayerSet
	Direction Enum
	Sense     Enum
	Offset    float64
}

func (u *MaterialLayerSetUsage) StepType() string { return "IFCMATERIALLAYERSETUSAGE" }
func (u *MaterialLayerSetUsage) StepArgs() []any {
	return []any{u.LayerSet, u.Direction, u.Sense, u.Offset, nil}
}

// ============================================================
// Relations
// ============================================================

type RelAggregates struct {
	root
	Relating Instance
	Related  []Instance
}

func (r *RelAggregates) StepType() string { return "IFCRELAGGREGATES" }
func (r *RelAggregates) StepArgs() []any {
	return append(r.rootArgs(), r.Relating, r.Related)
}

type RelContainedInSpatialStructure struct {
	root
	Related  []Instance
	Relating Instance
}

func (r *RelContainedInSpatialStructure) StepType() string {
	return "IFCRELCONTAINEDINSPATIALSTRUCTURE"
}

func (r *RelContainedInSpatialStructure) StepArgs() []any {
	return append(r.rootArgs(), r.Related, r.Relating)
}

type RelAssociatesMaterial struct {
	root
	Related  []Instance
	Relating Instance
}

func (r *RelAssociatesMaterial) StepType() string { return "IFCRELASSOCIATESMATERIAL" }
func (r *RelAssociatesMaterial) StepArgs() []any {
	return append(r.rootArgs(), r.Related, r.Relating)
}

type RelSpaceBoundary struct {
	root
	RelatingSpace  *Space
	RelatedElement Instance
}

func (r *RelSpaceBoundary) StepType() string { return "IFCRELSPACEBOUNDARY" }
func (r *RelSpaceBoundary) StepArgs() []any {
	return append(r.rootArgs(), r.RelatingSpace, r.RelatedElement, nil, BoundaryPhysical, BoundaryInternal)
}

// ============================================================
// Helpers
// ============================================================

// opt превращает nil-указатель в $ (отсутствующий атрибут).
func opt[T interface {
	Instance
	comparable
}](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// strOpt: пустая строка кодируется как $.
func strOpt(s string) any {
	if s == "" {
		return nil
	}
	return s
}
