package controller

import (
	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/pkg/serverutils"
	"ai-rooms-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRoomController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AddMember(ctx *fiber.Ctx) error
	RemoveMember(ctx *fiber.Ctx) error
	ListMembers(ctx *fiber.Ctx) error
}

type roomController struct {
	roomService service.IRoomService
}

func NewRoomController(roomService service.IRoomService) IRoomController {
	return &roomController{
		roomService: roomService,
	}
}

func (c *roomController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/room/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/members", c.AddMember)
	h.Get(":id/members", c.ListMembers)
	h.Delete(":id/members/:memberId", c.RemoveMember)
}

func (c *roomController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.roomService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create room", res))
}

func (c *roomController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	res, err := c.roomService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Room not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show room", res))
}

func (c *roomController) List(ctx *fiber.Ctx) error {
	ownerId, err := uuid.Parse(ctx.Query("owner_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid owner_id")
	}

	res, err := c.roomService.List(ctx.Context(), ownerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list rooms", res))
}

func (c *roomController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	var req dto.UpdateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.roomService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Room not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update room", res))
}

func (c *roomController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	if err := c.roomService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete room", nil))
}

func (c *roomController) AddMember(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	var req dto.AddMemberRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = roomId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.roomService.AddMember(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add member", res))
}

func (c *roomController) RemoveMember(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}
	memberId, err := uuid.Parse(ctx.Params("memberId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid member id")
	}

	if err := c.roomService.RemoveMember(ctx.Context(), roomId, memberId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove member", nil))
}

func (c *roomController) ListMembers(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	res, err := c.roomService.ListMembers(ctx.Context(), roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list members", res))
}
