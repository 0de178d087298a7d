package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

const rssFeedPageSize = 50

// RSS serves the Wellness Hub article feed.
type RSS struct {
	FeedHostname    string
	FeedPath        string
	FeedAuthorName  string
	FeedAuthorEmail string
	Articles        datasources.ArticleLister
	CacheMaxAge     time.Duration
}

func (c RSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	feed := &feeds.Feed{
		Title:       "Verdantly Wellness Hub",
		Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath},
		Description: "New articles from the Verdantly Wellness Hub",
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     time.Now(),
	}

	articles, err := c.Articles.ListArticles(r.Context(),
		domain.ArticleFilters{PublishedOnly: true},
		domain.ArticleListOptions{Page: 1, PageSize: rssFeedPageSize},
	)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch articles for feed", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for _, a := range articles {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%d", a.ID),
			IsPermaLink: "false",
			Title:       a.Title,
			Link:        &feeds.Link{Href: c.FeedHostname + "/hub/" + a.Slug},
			Description: a.Summary,
			Author: &feeds.Author{
				Name: a.AuthorName,
			},
			Created: a.PublishedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}
