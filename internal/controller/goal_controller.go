package controller

import (
	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/pkg/serverutils"
	"ai-rooms-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGoalController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type goalController struct {
	goalService service.IGoalService
}

func NewGoalController(goalService service.IGoalService) IGoalController {
	return &goalController{
		goalService: goalService,
	}
}

func (c *goalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/goal/v1")
	h.Post("room/:roomId", c.Create)
	h.Get("room/:roomId", c.List)
	h.Delete(":id", c.Delete)
}

func (c *goalController) Create(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	var req dto.CreateGoalRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = roomId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.goalService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create goal", res))
}

func (c *goalController) List(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	res, err := c.goalService.List(ctx.Context(), roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list goals", res))
}

func (c *goalController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid goal id")
	}

	if err := c.goalService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete goal", nil))
}
