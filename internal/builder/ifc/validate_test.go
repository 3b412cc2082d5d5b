package ifc

import "testing"

func rules(violations []Violation) map[string]int {
	out := make(map[string]int)
	for _, v := range violations {
		out[v.Rule]++
	}
	return out
}

func TestValidateCleanModel(t *testing.T) {
	m := newTestModel(t)
	building, _ := CreateBuilding(m, "B1")
	storey, _ := CreateStorey(m, "S1", 0, building)
	w1, err := CreateWall(m, WallParams{DirX: 1, PosX: 5, Length: 10, Width: 0.5, Height: 2}, storey)
	if err != nil {
		t.Fatalf("CreateWall: %v", err)
	}
	if _, err := CreateSpace(m, storey, []*Wall{w1}, "Room", "", "Room 101", CompositionElement); err != nil {
		t.Fatalf("CreateSpace: %v", err)
	}

	violations := Validate(m)
	if len(violations) != 0 {
		t.Fatalf("violations = %v, want none", violations)
	}
}

// Вырожденная стена проходит создание, но не валидацию.
func TestValidateDegenerateWall(t *testing.T) {
	m := newTestModel(t)
	building, _ := CreateBuilding(m, "B1")
	storey, _ := CreateStorey(m, "S1", 0, building)
	if _, err := CreateWall(m, WallParams{Length: 0, Width: 0.5, Height: 0}, storey); err != nil {
		t.Fatalf("CreateWall: %v", err)
	}

	got := rules(Validate(m))
	if got["degenerate-extrusion"] == 0 {
		t.Errorf("rules = %v, want degenerate-extrusion", got)
	}
}

func TestValidateMissingProject(t *testing.T) {
	m := NewModel("p", testCredentials())

	err := m.RunInTransaction("orphan wall", func(tx *Tx) error {
		tx.Register(&Wall{root: root{GlobalID: NewGlobalID(), Name: "Wall"}})
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}

	got := rules(Validate(m))
	for _, rule := range []string{"missing-project", "wall-incomplete", "orphan-element", "wall-unassociated-material"} {
		if got[rule] == 0 {
			t.Errorf("rules = %v, want %s", got, rule)
		}
	}
}

func TestValidateGlobalIDRules(t *testing.T) {
	m := newTestModel(t)
	gid := NewGlobalID()

	err := m.RunInTransaction("bad ids", func(tx *Tx) error {
		b1 := &Building{root: root{GlobalID: gid, Name: "B1"}}
		tx.Register(b1)
		b2 := &Building{root: root{GlobalID: gid, Name: "B2"}}
		tx.Register(b2)
		b3 := &Building{root: root{GlobalID: "short", Name: "B3"}}
		tx.Register(b3)
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}

	got := rules(Validate(m))
	if got["duplicate-globalid"] != 1 {
		t.Errorf("duplicate-globalid = %d, want 1", got["duplicate-globalid"])
	}
	if got["missing-globalid"] != 1 {
		t.Errorf("missing-globalid = %d, want 1", got["missing-globalid"])
	}
}

func TestValidateForeignContext(t *testing.T) {
	m := newTestModel(t)

	err := m.RunInTransaction("foreign shape", func(tx *Tx) error {
		foreign := &GeometricRepresentationContext{ContextType: "Model", Dimension: 3}
		tx.Register(foreign)
		shape := &ShapeRepresentation{Context: foreign, Identifier: "Body", Type: "SweptSolid"}
		tx.Register(shape)
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}

	got := rules(Validate(m))
	if got["foreign-context"] == 0 {
		t.Errorf("rules = %v, want foreign-context", got)
	}
}

func TestValidateUnregisteredReference(t *testing.T) {
	m := newTestModel(t)
	ghost := &Building{root: root{GlobalID: NewGlobalID(), Name: "Ghost"}}

	err := m.RunInTransaction("dangling rel", func(tx *Tx) error {
		rel := &RelAggregates{
			root:     root{GlobalID: NewGlobalID()},
			Relating: m.Project(),
			Related:  []Instance{ghost},
		}
		tx.Register(rel)
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}

	got := rules(Validate(m))
	if got["unregistered-reference"] == 0 {
		t.Errorf("rules = %v, want unregistered-reference", got)
	}
}
