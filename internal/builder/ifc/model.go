package ifc

import (
	"errors"
	"fmt"
	"sync"
)

// ============================================================
// Model
// ============================================================

// SchemaIFC4 — версия схемы фиксирована при создании модели.
const SchemaIFC4 = "IFC4"

var (
	ErrTransactionActive = errors.New("model transaction already active")
	ErrNoProject         = errors.New("invalid state: model has no project")
	ErrNoBuilding        = errors.New("invalid state: building is required")
	ErrNoStorey          = errors.New("invalid state: storey is required")
)

// Credentials — статические метаданные приложения, попадают в
// owner history и в заголовок STEP-файла.
type Credentials struct {
	DevelopersName          string
	ApplicationName         string
	ApplicationID           string
	ApplicationVersion      string
	EditorsFamilyName       string
	EditorsGivenName        string
	EditorsOrganisationName string
}

// Model — единственный агрегат: реестр экземпляров в порядке
// регистрации плюс однописательские транзакции.
type Model struct {
	ProjectName string
	Schema      string
	Credentials Credentials

	mu        sync.Mutex // держится на время транзакции
	instances []Instance
	nextID    int
}

// NewModel создает пустую модель без проекта. Проект создается
// отдельной init-транзакцией (см. Store.GetOrCreate).
func NewModel(projectName string, cred Credentials) *Model {
	return &Model{
		ProjectName: projectName,
		Schema:      SchemaIFC4,
		Credentials: cred,
		nextID:      1,
	}
}

// FileName — имя файла выгрузки: <project>.ifc.
func (m *Model) FileName() string {
	return m.ProjectName + ".ifc"
}

// ============================================================
// Transactions
// ============================================================

// Tx накапливает созданные сущности; они становятся видимыми
// в модели только после успешного завершения тела транзакции.
type Tx struct {
	model  *Model
	label  string
	next   int
	staged []Instance
}

// Register присваивает сущности номер и ставит её в очередь на
// коммит. Порядок регистрации сохраняется, поэтому сущность
// всегда попадает в модель раньше ссылающихся на неё отношений.
func (t *Tx) Register(inst Instance) {
	inst.setID(t.next)
	t.next++
	t.staged = append(t.staged, inst)
}

// Model возвращает модель для чтения уже закоммиченного состояния.
func (t *Tx) Model() *Model { return t.model }

// RunInTransaction выполняет body атомарно: при ошибке все
// зарегистрированные сущности отбрасываются вместе со счетчиком
// номеров. Вложенные и параллельные транзакции запрещены —
// повторный вход завершается ErrTransactionActive.
func (m *Model) RunInTransaction(label string, body func(tx *Tx) error) error {
	if !m.mu.TryLock() {
		return ErrTransactionActive
	}
	defer m.mu.Unlock()

	tx := &Tx{model: m, label: label, next: m.nextID}
	if err := body(tx); err != nil {
		return fmt.Errorf("transaction %q: %w", label, err)
	}

	m.instances = append(m.instances, tx.staged...)
	m.nextID = tx.next
	return nil
}

// ============================================================
// Queries
// ============================================================

// Instances — все зарегистрированные экземпляры в порядке создания.
func (m *Model) Instances() []Instance {
	return m.instances
}

// Project возвращает единственный проект модели или nil.
func (m *Model) Project() *Project {
	for _, inst := range m.instances {
		if p, ok := inst.(*Project); ok {
			return p
		}
	}
	return nil
}

// Context — общий geometric representation context модели.
func (m *Model) Context() *GeometricRepresentationContext {
	for _, inst := range m.instances {
		if c, ok := inst.(*GeometricRepresentationContext); ok {
			return c
		}
	}
	return nil
}

func (m *Model) ownerHistory() *OwnerHistory {
	for _, inst := range m.instances {
		if h, ok := inst.(*OwnerHistory); ok {
			return h
		}
	}
	return nil
}

// Buildings — здания, присоединенные к проекту через IfcRelAggregates.
func (m *Model) Buildings() []*Building {
	var out []*Building
	for _, inst := range m.instances {
		rel, ok := inst.(*RelAggregates)
		if !ok {
			continue
		}
		if _, ok := rel.Relating.(*Project); !ok {
			continue
		}
		for _, related := range rel.Related {
			if b, ok := related.(*Building); ok {
				out = append(out, b)
			}
		}
	}
	return out
}

// Storeys — этажи здания (spatial decomposition).
func (m *Model) Storeys(b *Building) []*Storey {
	var out []*Storey
	for _, inst := range m.instances {
		rel, ok := inst.(*RelAggregates)
		if !ok || rel.Relating != Instance(b) {
			continue
		}
		for _, related := range rel.Related {
			if s, ok := related.(*Storey); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// Elements — элементы, размещенные на этаже.
func (m *Model) Elements(s *Storey) []Instance {
	var out []Instance
	for _, inst := range m.instances {
		rel, ok := inst.(*RelContainedInSpatialStructure)
		if !ok || rel.Relating != Instance(s) {
			continue
		}
		out = append(out, rel.Related...)
	}
	return out
}

// Walls — все стены модели.
func (m *Model) Walls() []*Wall {
	var out []*Wall
	for _, inst := range m.instances {
		if w, ok := inst.(*Wall); ok {
			out = append(out, w)
		}
	}
	return out
}

// Spaces — все помещения модели.
func (m *Model) Spaces() []*Space {
	var out []*Space
	for _, inst := range m.instances {
		if s, ok := inst.(*Space); ok {
			out = append(out, s)
		}
	}
	return out
}

// Boundaries — границы помещения (ассоциативные связи со стенами).
func (m *Model) Boundaries(sp *Space) []*RelSpaceBoundary {
	var out []*RelSpaceBoundary
	for _, inst := range m.instances {
		if rel, ok := inst.(*RelSpaceBoundary); ok && rel.RelatingSpace == sp {
			out = append(out, rel)
		}
	}
	return out
}
