package ifc

import (
	"strings"
	"testing"
)

func TestEncodeSTEPLayout(t *testing.T) {
	m := newTestModel(t)
	building, _ := CreateBuilding(m, "B1")
	storey, _ := CreateStorey(m, "S1", 0, building)
	if _, err := CreateWall(m, WallParams{DirX: 1, Length: 10, Width: 0.5, Height: 2}, storey); err != nil {
		t.Fatalf("CreateWall: %v", err)
	}

	out := EncodeSTEP(m)

	if !strings.HasPrefix(out, "ISO-10303-21;\nHEADER;\n") {
		t.Errorf("output does not start with the STEP header:\n%s", out[:60])
	}
	if !strings.HasSuffix(out, "ENDSEC;\nEND-ISO-10303-21;\n") {
		t.Error("output does not end with END-ISO-10303-21")
	}
	for _, want := range []string{
		"FILE_DESCRIPTION((''),'2;1');",
		"FILE_NAME('Test Project.ifc',",
		"FILE_SCHEMA(('IFC4'));",
		"DATA;",
		"IFCPROJECT(",
		"IFCBUILDING(",
		"IFCBUILDINGSTOREY(",
		"IFCWALLSTANDARDCASE(",
		"IFCRELAGGREGATES(",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Записи нумеруются с единицы в порядке регистрации.
	if !strings.Contains(out, "#1=") {
		t.Error("output missing record #1")
	}
}

func TestEncodeSTEPQuoting(t *testing.T) {
	m, err := NewStore("O'Brien Tower", testCredentials()).GetOrCreate()
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	out := EncodeSTEP(m)
	if !strings.Contains(out, "'O''Brien Tower.ifc'") {
		t.Error("apostrophe in project name is not doubled in FILE_NAME")
	}
	if !strings.Contains(out, "'O''Brien Tower'") {
		t.Error("apostrophe in project name is not doubled in IFCPROJECT")
	}
}

func TestEncodeValue(t *testing.T) {
	point := &CartesianPoint{Coords: []float64{1, 2}}
	point.setID(7)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "$"},
		{"omitted", omitted{}, "*"},
		{"enum", CompositionElement, ".ELEMENT."},
		{"string", "Wall", "'Wall'"},
		{"string quote", "O'Brien", "'O''Brien'"},
		{"bool true", true, ".T."},
		{"bool false", false, ".F."},
		{"int", 3, "3"},
		{"real keeps point", 10.0, "10."},
		{"real fraction", 0.5, "0.5"},
		{"float list", []float64{0, 0, 1}, "(0.,0.,1.)"},
		{"instance ref", Instance(point), "#7"},
		{"instance list", []Instance{point}, "(#7)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeValue(tt.in); got != tt.want {
				t.Errorf("encodeValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
