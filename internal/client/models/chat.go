package models

import "time"

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageFile  MessageType = "file"
)

type ChatRoom struct {
	ID            int64        `json:"id"`
	Appointment   int64        `json:"appointment"`
	AppointmentID int64        `json:"appointment_id,omitempty"`
	Patient       int64        `json:"patient"`
	Doctor        int64        `json:"doctor"`
	PatientName   string       `json:"patient_name,omitempty"`
	DoctorName    string       `json:"doctor_name,omitempty"`
	IsActive      bool         `json:"is_active"`
	LastMessage   *ChatMessage `json:"last_message,omitempty"`
	UnreadCount   int          `json:"unread_count"`
	CreatedAt     time.Time    `json:"created_at,omitempty"`
	UpdatedAt     time.Time    `json:"updated_at,omitempty"`
}

type ChatMessage struct {
	ID              int64       `json:"id"`
	ChatRoom        int64       `json:"chat_room"`
	Sender          int64       `json:"sender"`
	SenderName      string      `json:"sender_name,omitempty"`
	SenderRole      Role        `json:"sender_role,omitempty"`
	MessageType     MessageType `json:"message_type"`
	Content         string      `json:"content"`
	FileAttachment  string      `json:"file_attachment,omitempty"`
	ImageAttachment string      `json:"image_attachment,omitempty"`
	IsRead          bool        `json:"is_read"`
	Timestamp       time.Time   `json:"timestamp"`
}

type ChatRoomRequest struct {
	Appointment int64 `json:"appointment"`
}

type ChatMessageRequest struct {
	ChatRoom    int64       `json:"chat_room"`
	MessageType MessageType `json:"message_type"`
	Content     string      `json:"content"`
}
