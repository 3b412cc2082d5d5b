package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// File Storage
// ============================================================

// FileStorage раскладывает артефакты сборок по каталогам:
// <root>/<clientID>/<buildID>/{model.ifc, report.json}.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) ClientDir(clientID string) string {
	return filepath.Join(s.root, clientID)
}

func (s *FileStorage) BuildDir(clientID, buildID string) string {
	return filepath.Join(s.ClientDir(clientID), buildID)
}

func (s *FileStorage) ModelPath(clientID, buildID string) string {
	return filepath.Join(s.BuildDir(clientID, buildID), "model.ifc")
}

func (s *FileStorage) ReportPath(clientID, buildID string) string {
	return filepath.Join(s.BuildDir(clientID, buildID), "report.json")
}

func (s *FileStorage) EnsureBuildDir(clientID, buildID string) error {
	path := s.BuildDir(clientID, buildID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir build dir: %w", err)
	}
	return nil
}

func (s *FileStorage) SaveModel(clientID, buildID string, step []byte) error {
	if err := s.EnsureBuildDir(clientID, buildID); err != nil {
		return err
	}
	return os.WriteFile(s.ModelPath(clientID, buildID), step, 0o644)
}

func (s *FileStorage) SaveReport(clientID, buildID string, report []byte) error {
	if err := s.EnsureBuildDir(clientID, buildID); err != nil {
		return err
	}
	return os.WriteFile(s.ReportPath(clientID, buildID), report, 0o644)
}
