package ifc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ============================================================
// Validator / Persister
// ============================================================

// Report — итог валидации и сохранения модели.
type Report struct {
	Project    string      `json:"project"`
	FileName   string      `json:"file_name"`
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
	SavedPath  string      `json:"saved_path,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ValidateAndSave сначала валидирует модель, затем сохраняет:
// отчет пишется всегда (<project>.report.json), сам <project>.ifc —
// только при нуле нарушений. Невалидная модель на диск не попадает.
func ValidateAndSave(m *Model, dir string) (*Report, error) {
	violations := Validate(m)
	if violations == nil {
		violations = []Violation{}
	}

	report := &Report{
		Project:    m.ProjectName,
		FileName:   m.FileName(),
		Valid:      len(violations) == 0,
		Violations: violations,
		CreatedAt:  time.Now().UTC(),
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir output dir: %w", err)
	}

	if report.Valid {
		path := filepath.Join(dir, m.FileName())
		if err := os.WriteFile(path, []byte(EncodeSTEP(m)), 0o644); err != nil {
			return nil, fmt.Errorf("write ifc: %w", err)
		}
		report.SavedPath = path
	}

	reportPath := filepath.Join(dir, reportName(m.ProjectName))
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(reportPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	return report, nil
}

func reportName(project string) string {
	return strings.TrimSuffix(project, ".ifc") + ".report.json"
}
