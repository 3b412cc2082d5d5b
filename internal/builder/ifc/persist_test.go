package ifc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateAndSaveValidModel(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t)
	building, _ := CreateBuilding(m, "B1")
	storey, _ := CreateStorey(m, "S1", 0, building)
	if _, err := CreateWall(m, WallParams{DirX: 1, Length: 10, Width: 0.5, Height: 2}, storey); err != nil {
		t.Fatalf("CreateWall: %v", err)
	}

	report, err := ValidateAndSave(m, dir)
	if err != nil {
		t.Fatalf("ValidateAndSave: %v", err)
	}
	if !report.Valid {
		t.Fatalf("report not valid: %v", report.Violations)
	}
	if report.SavedPath == "" {
		t.Error("report has no saved path")
	}

	data, err := os.ReadFile(filepath.Join(dir, "Test Project.ifc"))
	if err != nil {
		t.Fatalf("read ifc: %v", err)
	}
	if !strings.HasPrefix(string(data), "ISO-10303-21;") {
		t.Error("saved file is not a STEP file")
	}

	reportData, err := os.ReadFile(filepath.Join(dir, "Test Project.report.json"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(reportData, &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !decoded.Valid || decoded.FileName != "Test Project.ifc" {
		t.Errorf("decoded report = %+v", decoded)
	}
}

// Невалидная модель: отчет пишется, .ifc — нет.
func TestValidateAndSaveInvalidModel(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t)
	building, _ := CreateBuilding(m, "B1")
	storey, _ := CreateStorey(m, "S1", 0, building)
	if _, err := CreateWall(m, WallParams{Length: 0, Width: 0, Height: 0}, storey); err != nil {
		t.Fatalf("CreateWall: %v", err)
	}

	report, err := ValidateAndSave(m, dir)
	if err != nil {
		t.Fatalf("ValidateAndSave: %v", err)
	}
	if report.Valid {
		t.Fatal("degenerate model reported as valid")
	}
	if report.SavedPath != "" {
		t.Errorf("saved path = %q, want empty", report.SavedPath)
	}

	if _, err := os.Stat(filepath.Join(dir, "Test Project.ifc")); !os.IsNotExist(err) {
		t.Error("invalid model was written to disk")
	}
	if _, err := os.Stat(filepath.Join(dir, "Test Project.report.json")); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}
