package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"ifc-builder/internal/archive/models"
	"ifc-builder/internal/archive/repository"
	"ifc-builder/internal/archive/service"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ============================================================
// Archive Handler
// ============================================================

type ArchiveHandler struct {
	repo     *repository.Repository
	sessions *service.SessionManager
	storage  *service.FileStorage
	builder  *service.BuilderClient
}

func NewArchiveHandler(repo *repository.Repository, sessions *service.SessionManager, storage *service.FileStorage, builder *service.BuilderClient) *ArchiveHandler {
	return &ArchiveHandler{
		repo:     repo,
		sessions: sessions,
		storage:  storage,
		builder:  builder,
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string        `json:"token"`
	Client clientPayload `json:"client"`
}

type clientPayload struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Login выдает простой токен по паре login/password.
func (h *ArchiveHandler) Login(c fiber.Ctx) error {
	log.Printf("[ARCHIVE] Login request")

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var req loginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	if req.Login == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "login and password required"})
	}

	client, err := h.repo.GetByCredentials(context.Background(), req.Login, req.Password)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token := h.sessions.Issue(client.ID)

	return c.JSON(loginResponse{
		Token:  token,
		Client: mapClient(client),
	})
}

// Logout отзывает токен текущей сессии.
func (h *ArchiveHandler) Logout(c fiber.Ctx) error {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	h.sessions.Revoke(strings.TrimPrefix(auth, "Bearer "))
	return c.JSON(fiber.Map{"status": "ok"})
}

// GetClient возвращает данные клиента.
func (h *ArchiveHandler) GetClient(c fiber.Ctx) error {
	clientID, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	targetID := c.Params("id")
	if targetID == "" || targetID != clientID {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	client, err := h.repo.GetByID(context.Background(), targetID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "client not found"})
	}

	return c.JSON(mapClient(client))
}

// SubmitBuild пересылает сегменты в Builder, складывает .ifc и отчет
// в файловое хранилище и пишет запись в журнал сборок.
func (h *ArchiveHandler) SubmitBuild(c fiber.Ctx) error {
	clientID, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	targetID := c.Params("id")
	if targetID == "" || targetID != clientID {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	result, err := h.builder.Build(c.Body())
	if err != nil {
		log.Printf("[ARCHIVE] builder call error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "builder failed"})
	}

	buildID := uuid.NewString()

	// .ifc пишем только для валидных моделей, отчет — всегда.
	if result.Report.Valid && result.Step != "" {
		if err := h.storage.SaveModel(targetID, buildID, []byte(result.Step)); err != nil {
			log.Printf("[ARCHIVE] save model error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save model"})
		}
	}
	if err := h.storage.SaveReport(targetID, buildID, result.ReportRaw); err != nil {
		log.Printf("[ARCHIVE] save report error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save report"})
	}

	rec := &models.BuildRecord{
		ID:         buildID,
		ClientID:   targetID,
		Project:    result.Project,
		FileName:   result.Report.FileName,
		Valid:      result.Report.Valid,
		Violations: len(result.Report.Violations),
		Walls:      result.Walls,
	}
	if err := h.repo.InsertBuild(context.Background(), rec); err != nil {
		log.Printf("[ARCHIVE] insert build error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record build"})
	}

	log.Printf("[ARCHIVE] build %s stored for client %s (valid=%v, walls=%d)",
		buildID, targetID, rec.Valid, rec.Walls)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"build_id":   buildID,
		"project":    rec.Project,
		"file_name":  rec.FileName,
		"valid":      rec.Valid,
		"violations": rec.Violations,
		"walls":      rec.Walls,
	})
}

// ListBuilds возвращает журнал сборок клиента.
func (h *ArchiveHandler) ListBuilds(c fiber.Ctx) error {
	clientID, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	targetID := c.Params("id")
	if targetID == "" || targetID != clientID {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	builds, err := h.repo.ListBuilds(context.Background(), targetID)
	if err != nil {
		log.Printf("[ARCHIVE] list builds error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list builds"})
	}

	return c.JSON(fiber.Map{"builds": builds})
}

// GetModel отдает сохраненный .ifc файл сборки.
func (h *ArchiveHandler) GetModel(c fiber.Ctx) error {
	return h.getBuildFile(c, h.storage.ModelPath, "application/x-step")
}

// GetReport отдает отчет валидации сборки.
func (h *ArchiveHandler) GetReport(c fiber.Ctx) error {
	return h.getBuildFile(c, h.storage.ReportPath, "application/json")
}

// ============================================================
// Helpers
// ============================================================

func (h *ArchiveHandler) authorize(c fiber.Ctx) (string, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	clientID, ok := h.sessions.Resolve(token)
	return clientID, ok
}

func (h *ArchiveHandler) getBuildFile(c fiber.Ctx, pathFn func(string, string) string, contentType string) error {
	clientID, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	targetID := c.Params("id")
	if targetID == "" || targetID != clientID {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}

	buildID := c.Params("build")
	if buildID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "build id required"})
	}
	if _, err := h.repo.GetBuild(context.Background(), targetID, buildID); err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "build not found"})
	}

	path := pathFn(targetID, buildID)
	if _, err := os.Stat(path); err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}

	c.Set("Content-Type", contentType)
	return c.SendFile(path)
}

func mapClient(cl *models.Client) clientPayload {
	return clientPayload{
		ID:        cl.ID,
		Login:     cl.Login,
		Name:      cl.Name,
		CreatedAt: cl.CreatedAt,
	}
}
