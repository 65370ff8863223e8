package entity

import "time"

// Chat is a dialog between exactly two participants. At most one chat
// exists per participant pair.
type Chat struct {
	ID           string     `json:"id"`
	Participants []Redacted `json:"participants,omitempty"`
	Messages     []Message  `json:"messages,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Message is a single text entry in a chat.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// HasParticipant reports whether userID belongs to the dialog.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}
