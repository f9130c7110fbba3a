package handlers

import (
	"errors"
	"log"

	"synthara-api/config"
	"synthara-api/middleware"
	"synthara-api/models"
	"synthara-api/services"
	"synthara-api/utils"

	"github.com/gofiber/fiber/v2"
)

type loraRequest struct {
	Version          string `json:"version"`
	PassportMetadata string `json:"passport_metadata"`
}

func SetupModelRoutes(app *fiber.App, cfg *config.Config, modelService *services.ModelService, avatars AvatarUploader) {
	h := &modelHandler{models: modelService, avatars: avatars}
	write := writeGuard(cfg)

	group := app.Group("/models")
	group.Get("/", h.list)
	group.Post("/", guarded(write, h.create)...)
	group.Post("/seed", middleware.RequireDevAdmin(cfg), h.seed)
	group.Get("/slug/:slug", h.bySlug)
	group.Get("/:id", h.detail)
	group.Put("/:id", guarded(write, h.update)...)
	group.Get("/:id/lora", h.listLoras)
	group.Post("/:id/lora", guarded(write, h.createLora)...)
	group.Get("/:id/gold", h.gold)
	group.Post("/:id/gold/drop", guarded(write, h.createDrop)...)
	group.Post("/:id/gold/auction", guarded(write, h.createAuction)...)
	group.Post("/:id/avatar", guarded(write, h.uploadAvatar)...)
}

type modelHandler struct {
	models  *services.ModelService
	avatars AvatarUploader
}

func modelID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// modelError maps service errors, answering 404 for unknown models.
func modelError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrModelNotFound) {
		return fail(c, fiber.StatusNotFound, "Model not found")
	}
	return internalError(c, "MODELS", err)
}

func (h *modelHandler) list(c *fiber.Ctx) error {
	views, err := h.models.List(c.UserContext())
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(views)
}

func (h *modelHandler) create(c *fiber.Ctx) error {
	var in services.ModelProfileInput
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if in.Name == "" || in.Tagline == "" {
		return fail(c, fiber.StatusBadRequest, "name and tagline are required")
	}
	view, err := h.models.Create(c.UserContext(), in)
	if err != nil {
		return modelError(c, err)
	}
	log.Printf("✅ [MODELS] Created %q (%s)", view.Name, view.Slug)
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *modelHandler) seed(c *fiber.Ctx) error {
	views, err := h.models.SeedDemoContent(c.UserContext())
	if err != nil {
		return modelError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(views)
}

func (h *modelHandler) detail(c *fiber.Ctx) error {
	id, ok := modelID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid model id")
	}
	detail, err := h.models.Detail(c.UserContext(), id)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(detail)
}

func (h *modelHandler) bySlug(c *fiber.Ctx) error {
	detail, err := h.models.BySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(detail)
}

func (h *modelHandler) update(c *fiber.Ctx) error {
	id, ok := modelID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid model id")
	}
	var in services.ModelProfileUpdate
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	view, err := h.models.Update(c.UserContext(), id, in)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(view)
}

func (h *modelHandler) listLoras(c *fiber.Ctx) error {
	id, ok := modelID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid model id")
	}
	loras, err := h.models.Loras(c.UserContext(), id)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(loras)
}

func (h *modelHandler) createLora(c *fiber.Ctx) error {
	id, ok := modelID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid model id")
	}
	var req loraRequest
	if err := c.BodyParser(&req); err != nil || req.Version == "" {
		return fail(c, fiber.StatusBadRequest, "version is required")
	}
	lora, err := h.models.CreateLora(c.UserContext(), id, req.Version, req.PassportMetadata)
	if err != nil {
		return modelError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lora)
}

func (h *modelHandler) gold(c *fiber.Ctx) error {
	id, ok := modelID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid model id")
	}
	status, err := h.models.GoldStatus(c.UserContext(), id)
	if err != nil {
		return modelError(c, err)
	}
	return c.JSON(status)
}

func (h *modelHandler) createDrop(c *fiber.Ctx) error {
	id, ok := modelID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid model id")
	}
	var drop models.GoldNFTDrop
	if err := c.BodyParser(&drop); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	created, err := h.models.CreateDrop(c.UserContext(), id, drop)
	if err != nil {
		return modelError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *modelHandler) createAuction(c *fiber.Ctx) error {
	id, ok := modelID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid model id")
	}
	var auction models.Auction
	if err := c.BodyParser(&auction); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	created, err := h.models.CreateAuction(c.UserContext(), id, auction)
	if err != nil {
		return modelError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *modelHandler) uploadAvatar(c *fiber.Ctx) error {
	if h.avatars == nil {
		return fail(c, fiber.StatusServiceUnavailable, "Avatar storage not configured")
	}
	id, ok := modelID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid model id")
	}
	if _, err := h.models.Get(c.UserContext(), id); err != nil {
		return modelError(c, err)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "avatar file is required")
	}
	if !utils.IsImageFile(fileHeader.Filename) {
		return fail(c, fiber.StatusBadRequest, "avatar must be an image")
	}

	url, err := h.avatars.Upload(c.UserContext(), fileHeader, utils.AvatarKey(id, fileHeader.Filename))
	if err != nil {
		log.Printf("❌ [MODELS] Avatar upload failed for model %d: %v", id, err)
		return fail(c, fiber.StatusBadGateway, "Avatar upload failed")
	}
	view, err := h.models.SetAvatar(c.UserContext(), id, url)
	if err != nil {
		return modelError(c, err)
	}
	log.Printf("🖼️ [MODELS] Avatar for model %d stored at %s", id, url)
	return c.JSON(view)
}
