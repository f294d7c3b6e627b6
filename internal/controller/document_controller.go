package controller

import (
	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/pkg/serverutils"
	"ai-rooms-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("room/:roomId", c.Upload)
	h.Get("room/:roomId", c.List)
	h.Post("room/:roomId/ask", c.Ask)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	var req dto.UploadDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = roomId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Upload(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for ingestion", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	res, err := c.documentService.List(ctx.Context(), roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	if err := c.documentService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}

func (c *documentController) Ask(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	var req dto.AskDocumentsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = roomId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer from documents", res))
}
