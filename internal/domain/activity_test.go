package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeActivityType(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want ActivityType
	}{
		{"exact_article_view", "article_view", ActivityTypeArticleView},
		{"exact_product_view", "product_view", ActivityTypeProductView},
		{"exact_page_view", "page_view", ActivityTypePageView},
		{"exact_time_spent", "time_spent", ActivityTypeTimeSpent},
		{"camelcase_article", "articleView", ActivityTypeArticleView},
		{"contains_article", "my_article_thing", ActivityTypeArticleView},
		{"contains_product", "viewedProduct", ActivityTypeProductView},
		{"contains_time", "timeOnPage", ActivityTypeTimeSpent},
		{"article_wins_over_time", "article_time", ActivityTypeArticleView},
		{"unknown_falls_back", "bananas", ActivityTypePageView},
		{"empty_falls_back", "", ActivityTypePageView},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeActivityType(tc.raw))
		})
	}
}

func TestNormalizeContentType(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want ContentType
	}{
		{"exact_article", "article", ContentTypeArticle},
		{"exact_product", "product", ContentTypeProduct},
		{"exact_page", "page", ContentTypePage},
		{"contains_article", "Articles", ContentTypeArticle},
		{"contains_product", "shop-product", ContentTypeProduct},
		{"unknown_falls_back", "video", ContentTypePage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeContentType(tc.raw))
		})
	}
}

func TestInterestIncrement(t *testing.T) {
	cases := []struct {
		name    string
		seconds int64
		want    float64
	}{
		{"zero_seconds_base_point_only", 0, 1},
		{"forty_five_seconds", 45, 5.5},
		{"cap_boundary", 100, 11},
		{"beyond_cap", 3600, 11},
		{"negative_clamped", -5, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, InterestIncrement(tc.seconds), 1e-9)
		})
	}
}
