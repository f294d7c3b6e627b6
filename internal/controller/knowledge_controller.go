package controller

import (
	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/pkg/serverutils"
	"ai-rooms-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Upsert(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Put("room/:roomId", c.Upsert)
	h.Get("room/:roomId", c.Show)
}

func (c *knowledgeController) Upsert(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	var req dto.UpsertKnowledgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = roomId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.Upsert(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert knowledge base", res))
}

func (c *knowledgeController) Show(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	res, err := c.knowledgeService.Show(ctx.Context(), roomId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Knowledge base not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show knowledge base", res))
}
