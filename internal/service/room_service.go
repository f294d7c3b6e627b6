package service

import (
	"context"
	"time"

	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/memory"
	"ai-rooms-be/internal/repository/specification"
	"ai-rooms-be/internal/repository/unitofwork"
	"ai-rooms-be/pkg/events"
	pktNats "ai-rooms-be/pkg/nats"

	"github.com/google/uuid"
)

type IRoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.CreateRoomResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error)
	List(ctx context.Context, ownerId uuid.UUID) ([]*dto.RoomResponse, error)
	Update(ctx context.Context, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, roomId uuid.UUID, memberId uuid.UUID) error
	ListMembers(ctx context.Context, roomId uuid.UUID) ([]*dto.MemberResponse, error)
}

type roomService struct {
	uowFactory     unitofwork.RepositoryFactory
	rosterCache    *memory.RosterRepository
	eventPublisher *pktNats.Publisher
}

func NewRoomService(
	uowFactory unitofwork.RepositoryFactory,
	rosterCache *memory.RosterRepository,
	eventPublisher *pktNats.Publisher,
) IRoomService {
	return &roomService{
		uowFactory:     uowFactory,
		rosterCache:    rosterCache,
		eventPublisher: eventPublisher,
	}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest) (*dto.CreateRoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	room := entity.Room{
		Id:         uuid.New(),
		Name:       req.Name,
		Directives: req.Directives,
		OwnerId:    req.OwnerId,
		CreatedAt:  time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.RoomRepository().Create(ctx, &room); err != nil {
		return nil, err
	}

	// The owner is always a member of their own room.
	owner := entity.Member{
		Id:        uuid.New(),
		RoomId:    room.Id,
		UserId:    req.OwnerId,
		Username:  req.OwnerName,
		Role:      "owner",
		CreatedAt: time.Now(),
	}
	if err := uow.MemberRepository().Create(ctx, &owner); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "ROOM_CREATED", map[string]interface{}{
		"room_id": room.Id,
		"name":    room.Name,
	})

	return &dto.CreateRoomResponse{Id: room.Id}, nil
}

func (s *roomService) Show(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, nil
	}
	return toRoomResponse(room), nil
}

func (s *roomService) List(ctx context.Context, ownerId uuid.UUID) ([]*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rooms, err := uow.RoomRepository().FindAll(ctx,
		specification.ByOwnerID{OwnerID: ownerId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		res = append(res, toRoomResponse(room))
	}
	return res, nil
}

func (s *roomService) Update(ctx context.Context, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, nil
	}

	now := time.Now()
	room.Name = req.Name
	room.Directives = req.Directives
	room.UpdatedAt = &now

	if err := uow.RoomRepository().Update(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.RoomRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.rosterCache.Delete(id)
	return nil
}

func (s *roomService) AddMember(ctx context.Context, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.MemberRepository().FindOne(ctx,
		specification.ByRoomID{RoomID: req.RoomId},
		specification.ByUserID{UserID: req.UserId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return toMemberResponse(existing), nil
	}

	role := req.Role
	if role == "" {
		role = "member"
	}

	member := entity.Member{
		Id:        uuid.New(),
		RoomId:    req.RoomId,
		UserId:    req.UserId,
		Username:  req.Username,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := uow.MemberRepository().Create(ctx, &member); err != nil {
		return nil, err
	}

	// The AI pipeline memoizes rosters; membership changes must bust it.
	s.rosterCache.Delete(req.RoomId)

	s.publishEvent(ctx, "MEMBER_ADDED", map[string]interface{}{
		"room_id":  req.RoomId,
		"user_id":  req.UserId,
		"username": req.Username,
	})

	return toMemberResponse(&member), nil
}

func (s *roomService) RemoveMember(ctx context.Context, roomId uuid.UUID, memberId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MemberRepository().Delete(ctx, memberId); err != nil {
		return err
	}
	s.rosterCache.Delete(roomId)
	return nil
}

func (s *roomService) ListMembers(ctx context.Context, roomId uuid.UUID) ([]*dto.MemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	members, err := uow.MemberRepository().FindAll(ctx, specification.ByRoomID{RoomID: roomId})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MemberResponse, 0, len(members))
	for _, m := range members {
		res = append(res, toMemberResponse(m))
	}
	return res, nil
}

func (s *roomService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		// Auxiliary stream; the request itself already succeeded.
		return
	}
}

func toRoomResponse(room *entity.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		Id:         room.Id,
		Name:       room.Name,
		Directives: room.Directives,
		OwnerId:    room.OwnerId,
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
	}
}

func toMemberResponse(m *entity.Member) *dto.MemberResponse {
	return &dto.MemberResponse{
		Id:       m.Id,
		UserId:   m.UserId,
		Username: m.Username,
		Role:     m.Role,
	}
}
