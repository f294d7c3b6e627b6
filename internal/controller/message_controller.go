package controller

import (
	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/pkg/serverutils"
	"ai-rooms-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	AddReaction(ctx *fiber.Ctx) error
}

type messageController struct {
	messageService service.IMessageService
}

func NewMessageController(messageService service.IMessageService) IMessageController {
	return &messageController{
		messageService: messageService,
	}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message/v1")
	h.Post("room/:roomId", c.Create)
	h.Get("room/:roomId", c.List)
	h.Post(":id/reactions", c.AddReaction)
}

func (c *messageController) Create(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	var req dto.CreateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = roomId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create message", res))
}

func (c *messageController) List(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	limit := ctx.QueryInt("limit", 50)

	res, err := c.messageService.List(ctx.Context(), roomId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *messageController) AddReaction(ctx *fiber.Ctx) error {
	messageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid message id")
	}

	var req dto.AddReactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.MessageId = messageId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.AddReaction(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Message not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add reaction", res))
}
