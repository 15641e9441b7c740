package model

import "time"

type Message struct {
	Id          string    `json:"id" db:"id"`
	SenderId    string    `json:"sender_id" db:"sender_id"`
	RecipientId string    `json:"recipient_id" db:"recipient_id"`
	Body        string    `json:"body" db:"body"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type SendMessageRequest struct {
	RecipientId string `json:"recipient_id" binding:"required,uuid"`
	Body        string `json:"body" binding:"required,max=4096"`
}
