package domain

import "time"

type Article struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Summary      string    `json:"summary"`
	Body         string    `json:"body,omitempty"`
	AuthorName   string    `json:"author_name"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
	CreatedAt    time.Time `json:"-"`
}

type ArticleFilters struct {
	CategoryID    int64
	TitleFulltext string
	PublishedOnly bool
}

type ArticleListOptions struct {
	Page, PageSize int
}
