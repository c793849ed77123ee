package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/slipwaylabs/slipway/internal/core/domain"
	"github.com/slipwaylabs/slipway/internal/core/ports"
)

type AppHandler struct {
	service ports.AppService
	builder ports.BuilderService
}

func NewAppHandler(service ports.AppService, builder ports.BuilderService) *AppHandler {
	return &AppHandler{service: service, builder: builder}
}

func (h *AppHandler) Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *AppHandler) ListApps(c *fiber.Ctx) error {
	apps, err := h.service.ListApps(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(apps)
}

type CreateAppRequest struct {
	Name    string `json:"name"`
	Image   string `json:"image"`
	RepoURL string `json:"repo_url"`
	Path    string `json:"path"`
	Port    string `json:"port"`
}

// CreateApp builds an image when a source is given, then launches it.
// With neither a source nor an image name there is nothing to run.
func (h *AppHandler) CreateApp(c *fiber.Ctx) error {
	var req CreateAppRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	imageToRun := req.Image

	if req.RepoURL != "" || req.Path != "" {
		if imageToRun == "" {
			imageToRun = "app-" + uuid.NewString()[:8]
		}

		// Blocking operation; a real multi-tenant setup would hand this
		// to a background worker.
		src := domain.BuildSource{RepoURL: req.RepoURL, Dir: req.Path}
		if _, err := h.builder.BuildImage(c.Context(), src, imageToRun); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Build failed: " + err.Error(),
			})
		}
	} else if imageToRun == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image name, repo URL, or path is required",
		})
	}

	id, err := h.service.LaunchApp(c.Context(), domain.LaunchSpec{
		Image: imageToRun,
		Name:  req.Name,
		Port:  req.Port,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    id,
		"image": imageToRun,
	})
}

func (h *AppHandler) StopApp(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "App ID is required",
		})
	}

	if err := h.service.StopApp(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *AppHandler) GetAppLogs(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "App ID is required",
		})
	}

	logs, err := h.service.GetAppLogs(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "text/plain")
	return c.SendStream(logs)
}
