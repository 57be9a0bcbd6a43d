package api

import (
	"context"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

type Chat struct{ r Requester }

func (c *Chat) Rooms(ctx context.Context, params ListParams) (*models.List[models.ChatRoom], error) {
	return get[models.List[models.ChatRoom]](ctx, c.r, "/chat/rooms/", params)
}

func (c *Chat) Room(ctx context.Context, id int64) (*models.ChatRoom, error) {
	return get[models.ChatRoom](ctx, c.r, path("/chat/rooms/%d/", id), nil)
}

// CreateRoom opens the chat room of an accepted appointment.
func (c *Chat) CreateRoom(ctx context.Context, req models.ChatRoomRequest) (*models.ChatRoom, error) {
	return post[models.ChatRoom](ctx, c.r, "/chat/rooms/", req)
}

func (c *Chat) Messages(ctx context.Context, roomID int64, params ListParams) (*models.List[models.ChatMessage], error) {
	return get[models.List[models.ChatMessage]](ctx, c.r, path("/chat/rooms/%d/messages/", roomID), params)
}

// SendMessage posts to roomID. The room in msg is overwritten with roomID.
func (c *Chat) SendMessage(ctx context.Context, roomID int64, msg models.ChatMessageRequest) (*models.ChatMessage, error) {
	msg.ChatRoom = roomID
	if msg.MessageType == "" {
		msg.MessageType = models.MessageText
	}
	return post[models.ChatMessage](ctx, c.r, path("/chat/rooms/%d/messages/", roomID), msg)
}

// MarkRead marks every message in the room sent by the other party as read.
func (c *Chat) MarkRead(ctx context.Context, roomID int64) (*models.Message, error) {
	return post[models.Message](ctx, c.r, path("/chat/rooms/%d/mark-read/", roomID), nil)
}
