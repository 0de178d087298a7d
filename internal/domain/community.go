package domain

import "time"

type Workshop struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	HostName     string    `json:"host_name"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Capacity     int64     `json:"capacity"`
	Registered   int64     `json:"registered"`
}

type Discussion struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	CategoryID int64     `json:"category_id,omitempty"`
	ReplyCount int64     `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type DiscussionReply struct {
	ID           int64     `json:"id"`
	DiscussionID int64     `json:"-"`
	UserID       int64     `json:"-"`
	AuthorName   string    `json:"author_name"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
}
