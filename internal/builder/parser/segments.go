package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"ifc-builder/internal/builder/models"
)

// ============================================================
// Segment Parser
// ============================================================

// ParseBuildRequest разбирает тело запроса и нормализует сегменты.
func ParseBuildRequest(body []byte) (*models.BuildRequest, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	var req models.BuildRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	if req.Building == "" {
		req.Building = "Building"
	}
	if req.Storey == "" {
		req.Storey = "Storey"
	}
	if len(req.Segments) == 0 {
		return nil, fmt.Errorf("segments required")
	}

	for i := range req.Segments {
		req.Segments[i].Kind = NormalizeKind(req.Segments[i])
	}

	return &req, nil
}

// NormalizeKind приводит kind к известному значению. Линейный
// сегмент с ненулевым bulge — на самом деле дуга; незнакомый kind
// остается как есть и будет пропущен экстрактором.
func NormalizeKind(s models.Segment) string {
	kind := strings.ToLower(strings.TrimSpace(s.Kind))
	switch kind {
	case "", KindAliasSegment, models.KindLine:
		if s.Bulge != 0 {
			return models.KindArc
		}
		return models.KindLine
	case models.KindArc:
		return models.KindArc
	default:
		return kind
	}
}

// KindAliasSegment — хосты иногда шлют "segment" вместо "line".
const KindAliasSegment = "segment"

// Composition переводит строку запроса в composition type модели.
func Composition(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ELEMENT":
		return "ELEMENT", nil
	case "COMPLEX":
		return "COMPLEX", nil
	case "PARTIAL":
		return "PARTIAL", nil
	default:
		return "", fmt.Errorf("unknown composition type %q", s)
	}
}
