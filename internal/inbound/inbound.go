// Package inbound holds the transport-independent records the bot reports on
// and decodes them from Telegram Bot API update payloads.
package inbound

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// User is a Telegram user as delivered in an update.
type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Chat is the conversation a message was posted in.
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title,omitempty"`
	Username string `json:"username,omitempty"`
}

// OriginKind tells who a forwarded message originally came from.
type OriginKind string

const (
	OriginUser       OriginKind = "user"
	OriginHiddenUser OriginKind = "hidden_user"
	OriginChat       OriginKind = "chat"
	OriginChannel    OriginKind = "channel"
)

// ForwardOrigin describes the original sender of a forwarded message.
// Exactly one of User, SenderName or Chat is set, according to Kind.
type ForwardOrigin struct {
	Kind       OriginKind
	Date       time.Time
	User       *User
	SenderName string
	Chat       *Chat
}

// Message is a single inbound message. It lives only for the request that
// delivered it.
type Message struct {
	ID      int64
	From    *User
	Chat    Chat
	Text    string
	Forward *ForwardOrigin
}

// Update is one webhook delivery. Message is nil for update kinds the bot
// does not handle.
type Update struct {
	ID      int64
	Message *Message
}

type wireUpdate struct {
	UpdateID int64        `json:"update_id"`
	Message  *wireMessage `json:"message"`
}

type wireMessage struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`

	ForwardOrigin *wireOrigin `json:"forward_origin"`

	// Pre Bot API 7.0 forward fields, still sent by some gateways.
	ForwardFrom       *User  `json:"forward_from"`
	ForwardFromChat   *Chat  `json:"forward_from_chat"`
	ForwardSenderName string `json:"forward_sender_name"`
	ForwardDate       int64  `json:"forward_date"`
}

type wireOrigin struct {
	Type           OriginKind `json:"type"`
	Date           int64      `json:"date"`
	SenderUser     *User      `json:"sender_user"`
	SenderUserName string     `json:"sender_user_name"`
	SenderChat     *Chat      `json:"sender_chat"`
	Chat           *Chat      `json:"chat"`
}

// DecodeUpdate reads a JSON update from r.
func DecodeUpdate(r io.Reader) (*Update, error) {
	var wu wireUpdate
	if err := json.NewDecoder(r).Decode(&wu); err != nil {
		return nil, fmt.Errorf("failed to decode update: %w", err)
	}

	u := &Update{ID: wu.UpdateID}
	if wu.Message != nil {
		u.Message = wu.Message.toMessage()
	}
	return u, nil
}

func (w *wireMessage) toMessage() *Message {
	return &Message{
		ID:      w.MessageID,
		From:    w.From,
		Chat:    w.Chat,
		Text:    w.Text,
		Forward: w.forward(),
	}
}

func (w *wireMessage) forward() *ForwardOrigin {
	if o := w.ForwardOrigin; o != nil {
		fo := &ForwardOrigin{Kind: o.Type, Date: unixDate(o.Date)}
		switch o.Type {
		case OriginUser:
			fo.User = o.SenderUser
		case OriginHiddenUser:
			fo.SenderName = o.SenderUserName
		case OriginChat:
			fo.Chat = o.SenderChat
		case OriginChannel:
			fo.Chat = o.Chat
		default:
			return nil
		}
		return fo
	}

	date := unixDate(w.ForwardDate)
	switch {
	case w.ForwardFrom != nil:
		return &ForwardOrigin{Kind: OriginUser, Date: date, User: w.ForwardFrom}
	case w.ForwardFromChat != nil:
		kind := OriginChat
		if w.ForwardFromChat.Type == "channel" {
			kind = OriginChannel
		}
		return &ForwardOrigin{Kind: kind, Date: date, Chat: w.ForwardFromChat}
	case w.ForwardSenderName != "":
		return &ForwardOrigin{Kind: OriginHiddenUser, Date: date, SenderName: w.ForwardSenderName}
	}
	return nil
}

func unixDate(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
