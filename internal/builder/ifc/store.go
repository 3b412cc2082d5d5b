package ifc

import (
	"sync"
	"time"
)

// ============================================================
// Model Store
// ============================================================

// Store владеет единственной моделью процесса. Модель создается
// лениво при первом обращении; sync.Once гарантирует, что
// init-транзакция выполнится ровно один раз даже при
// конкурентных первых вызовах.
type Store struct {
	projectName string
	cred        Credentials

	once  sync.Once
	model *Model
	err   error
}

// NewStore создает хранилище; сама модель еще не существует.
func NewStore(projectName string, cred Credentials) *Store {
	return &Store{projectName: projectName, cred: cred}
}

// GetOrCreate возвращает модель процесса, создавая её при первом
// вызове: проект, единицы СИ, общий координатный контекст и
// owner history создаются одной init-транзакцией.
func (s *Store) GetOrCreate() (*Model, error) {
	s.once.Do(func() {
		m := NewModel(s.projectName, s.cred)
		if err := m.RunInTransaction("init model", func(tx *Tx) error {
			return initProject(tx, s.projectName, s.cred)
		}); err != nil {
			s.err = err
			return
		}
		s.model = m
	})
	return s.model, s.err
}

// initProject регистрирует корень пространственной иерархии.
func initProject(tx *Tx, projectName string, cred Credentials) error {
	person := &Person{FamilyName: cred.EditorsFamilyName, GivenName: cred.EditorsGivenName}
	tx.Register(person)

	org := &Organization{Name: cred.EditorsOrganisationName}
	tx.Register(org)

	personOrg := &PersonAndOrganization{ThePerson: person, TheOrganization: org}
	tx.Register(personOrg)

	developer := &Organization{Name: cred.DevelopersName}
	tx.Register(developer)

	app := &Application{
		Developer:  developer,
		Version:    cred.ApplicationVersion,
		FullName:   cred.ApplicationName,
		Identifier: cred.ApplicationID,
	}
	tx.Register(app)

	history := &OwnerHistory{
		OwningUser:        personOrg,
		OwningApplication: app,
		CreationDate:      time.Now().Unix(),
	}
	tx.Register(history)

	// СИ: миллиметры для длин, метры в производных.
	units := []Instance{
		&SIUnit{UnitType: "LENGTHUNIT", Prefix: "MILLI", UnitName: "METRE"},
		&SIUnit{UnitType: "AREAUNIT", UnitName: "SQUARE_METRE"},
		&SIUnit{UnitType: "VOLUMEUNIT", UnitName: "CUBIC_METRE"},
		&SIUnit{UnitType: "PLANEANGLEUNIT", UnitName: "RADIAN"},
	}
	for _, u := range units {
		tx.Register(u)
	}
	assignment := &UnitAssignment{Units: units}
	tx.Register(assignment)

	origin := &CartesianPoint{Coords: []float64{0, 0, 0}}
	tx.Register(origin)
	axis := &Direction{Ratios: []float64{0, 0, 1}}
	tx.Register(axis)
	refDir := &Direction{Ratios: []float64{1, 0, 0}}
	tx.Register(refDir)
	wcs := &Axis2Placement3D{Location: origin, Axis: axis, RefDirection: refDir}
	tx.Register(wcs)
	north := &Direction{Ratios: []float64{0, 1}}
	tx.Register(north)

	// Единственный координатный контекст модели.
	context := &GeometricRepresentationContext{
		ContextType: "Model",
		Dimension:   3,
		Precision:   1e-5,
		WCS:         wcs,
		TrueNorth:   north,
	}
	tx.Register(context)

	project := &Project{
		root: root{
			GlobalID: NewGlobalID(),
			History:  history,
			Name:     projectName,
		},
		Contexts: []Instance{context},
		Units:    assignment,
	}
	tx.Register(project)

	return nil
}
