package entity

import "time"

// Message is one customer turn together with the assistant's reply.
type Message struct {
	ID        string
	UserID    int64
	Username  string
	Text      string
	Response  string
	Timestamp time.Time
}

// ChatContext holds one user's recent conversation window.
type ChatContext struct {
	UserID   int64
	Messages []Message
	LastUsed time.Time
}
