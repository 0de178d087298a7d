package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Auth0Subject string    `json:"-"`
	IsAdmin      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileStats summarises a user's platform activity for the profile page.
type ProfileStats struct {
	Orders              int64 `json:"orders"`
	WorkshopsRegistered int64 `json:"workshops_registered"`
	DiscussionPosts     int64 `json:"discussion_posts"`
	ArticlesRead        int64 `json:"articles_read"`
}
