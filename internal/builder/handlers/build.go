package handlers

import (
	"errors"
	"log"
	"net/http"

	"ifc-builder/internal/builder/extract"
	"ifc-builder/internal/builder/ifc"
	"ifc-builder/internal/builder/models"
	"ifc-builder/internal/builder/parser"
	"ifc-builder/internal/common/config"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================
// Build Handler
// ============================================================

var (
	buildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "builder_builds_total",
		Help: "Processed build requests.",
	})
	wallsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "builder_walls_created_total",
		Help: "Walls created from line segments.",
	})
	segmentsSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "builder_segments_skipped_total",
		Help: "Segments skipped by reason.",
	}, []string{"reason"})
	violationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "builder_validation_violations_total",
		Help: "Validation violations reported.",
	})
)

type BuildHandler struct {
	store *ifc.Store
	cfg   *config.Config
}

func NewBuildHandler(store *ifc.Store, cfg *config.Config) *BuildHandler {
	return &BuildHandler{store: store, cfg: cfg}
}

// Build прогоняет сегменты полилинии через конвейер:
// здание → этаж → стены (по одной транзакции на сущность) →
// помещение → валидация и сохранение.
func (h *BuildHandler) Build(c fiber.Ctx) error {
	log.Printf("[BUILDER] Build request (%d bytes)", len(c.Body()))

	req, err := parser.ParseBuildRequest(c.Body())
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	composition := "ELEMENT"
	if req.Space != nil {
		composition, err = parser.Composition(req.Space.Composition)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	model, err := h.store.GetOrCreate()
	if err != nil {
		log.Printf("[BUILDER] model init error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to initialize model"})
	}

	building, err := ifc.CreateBuilding(model, req.Building)
	if err != nil {
		return buildError(c, "create building", err)
	}

	storey, err := ifc.CreateStorey(model, req.Storey, req.Elevation, building)
	if err != nil {
		return buildError(c, "create storey", err)
	}

	width := req.WallWidth
	if width == 0 {
		width = h.cfg.WallWidth
	}
	height := req.WallHeight
	if height == 0 {
		height = h.cfg.WallHeight
	}

	results := extract.New(width, height).Extract(req.Segments)

	var walls []*ifc.Wall
	outcomes := make([]models.SegmentOutcome, 0, len(results))
	for _, res := range results {
		outcome := models.SegmentOutcome{Index: res.Index, Kind: res.Kind}

		if res.Wall == nil {
			// Неподдерживаемая геометрия не фатальна — идем дальше.
			log.Printf("[BUILDER] skip: %s", res.Detail)
			segmentsSkippedTotal.WithLabelValues(res.Reason).Inc()
			outcome.Reason = res.Reason
			outcome.Detail = res.Detail
			outcomes = append(outcomes, outcome)
			continue
		}

		wall, err := ifc.CreateWall(model, *res.Wall, storey)
		if err != nil {
			return buildError(c, "create wall", err)
		}
		walls = append(walls, wall)
		wallsCreatedTotal.Inc()

		outcome.Wall = &models.WallInfo{
			PosX:   res.Wall.PosX,
			PosY:   res.Wall.PosY,
			DirX:   res.Wall.DirX,
			DirY:   res.Wall.DirY,
			Length: res.Wall.Length,
			Width:  res.Wall.Width,
			Height: res.Wall.Height,
		}
		outcomes = append(outcomes, outcome)
	}

	if req.Space != nil {
		_, err := ifc.CreateSpace(model, storey, walls,
			req.Space.Name, req.Space.Description, req.Space.LongName, ifc.Enum(composition))
		if err != nil {
			return buildError(c, "create space", err)
		}
	}

	report, err := ifc.ValidateAndSave(model, h.cfg.OutputDir)
	if err != nil {
		log.Printf("[BUILDER] save error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save model"})
	}
	violationsTotal.Add(float64(len(report.Violations)))
	buildsTotal.Inc()

	log.Printf("[BUILDER] built %d walls, valid=%v (%d violations)",
		len(walls), report.Valid, len(report.Violations))

	return c.JSON(models.BuildResponse{
		Project:  model.ProjectName,
		Building: req.Building,
		Storey:   req.Storey,
		Walls:    len(walls),
		Segments: outcomes,
		Report:   report,
		Step:     ifc.EncodeSTEP(model),
	})
}

// ModelSummary возвращает срез живой модели процесса.
func (h *BuildHandler) ModelSummary(c fiber.Ctx) error {
	model, err := h.store.GetOrCreate()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to initialize model"})
	}

	return c.JSON(models.ModelSummary{
		Project:   model.ProjectName,
		Schema:    model.Schema,
		Instances: len(model.Instances()),
		Buildings: len(model.Buildings()),
		Walls:     len(model.Walls()),
		Spaces:    len(model.Spaces()),
	})
}

func buildError(c fiber.Ctx, op string, err error) error {
	log.Printf("[BUILDER] %s error: %v", op, err)

	switch {
	case errors.Is(err, ifc.ErrTransactionActive):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "model is busy, retry later"})
	case errors.Is(err, ifc.ErrNoProject), errors.Is(err, ifc.ErrNoBuilding), errors.Is(err, ifc.ErrNoStorey):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to " + op})
	}
}
