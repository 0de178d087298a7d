package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// DiscussionsList handles GET /v1/discussions, newest first.
type DiscussionsList struct {
	Lister datasources.DiscussionLister
}

type DiscussionsListResponse struct {
	Data []domain.Discussion `json:"data"`
}

func (c DiscussionsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	page, pageSize, err := parsePagination(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse pagination in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	discussions, err := c.Lister.ListDiscussions(ctx, page, pageSize)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch discussions", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if discussions == nil {
		discussions = []domain.Discussion{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(DiscussionsListResponse{Data: discussions}); err != nil {
		logger.ErrorContext(ctx, "unable to write discussions to response", "error", err)
	}
}

// DiscussionCreateRequest is the JSON body for starting a thread.
type DiscussionCreateRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	CategoryID int64  `json:"category_id,omitempty"`
}

// DiscussionCreate handles POST /v1/discussions.
type DiscussionCreate struct {
	Creator datasources.DiscussionCreator
	Users   datasources.UserFetcher
}

func (c DiscussionCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var reqBody DiscussionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.ErrorContext(ctx, "unable to parse discussion body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(reqBody.Title) == "" || strings.TrimSpace(reqBody.Body) == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	userID := domain.UserIDFromContext(ctx)
	user, err := c.Users.GetUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch posting user", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	discussion := domain.Discussion{
		UserID:     userID,
		AuthorName: user.DisplayName,
		Title:      reqBody.Title,
		Body:       reqBody.Body,
		CategoryID: reqBody.CategoryID,
	}

	discussionID, err := c.Creator.CreateDiscussion(ctx, discussion)
	if err != nil {
		logger.ErrorContext(ctx, "unable to create discussion", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	discussion.ID = discussionID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(discussion); err != nil {
		logger.ErrorContext(ctx, "unable to write discussion to response", "error", err)
	}
}

// DiscussionGetResponse is a thread with its replies.
type DiscussionGetResponse struct {
	Discussion domain.Discussion        `json:"discussion"`
	Replies    []domain.DiscussionReply `json:"replies"`
}

// DiscussionGet handles GET /v1/discussions/{discussion_id}.
type DiscussionGet struct {
	Fetcher datasources.DiscussionFetcher
}

func (c DiscussionGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	discussionID, err := strconv.ParseInt(mux.Vars(r)["discussion_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid discussion ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	discussion, replies, err := c.Fetcher.GetDiscussion(ctx, discussionID)
	if err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to fetch discussion", "error", err, "discussion_id", discussionID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if replies == nil {
		replies = []domain.DiscussionReply{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(DiscussionGetResponse{
		Discussion: discussion,
		Replies:    replies,
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write discussion to response", "error", err)
	}
}

// DiscussionReplyCreateRequest is the JSON body for replying to a thread.
type DiscussionReplyCreateRequest struct {
	Body string `json:"body"`
}

// DiscussionReplyCreate handles POST /v1/discussions/{discussion_id}/replies.
type DiscussionReplyCreate struct {
	Creator datasources.DiscussionReplyCreator
	Users   datasources.UserFetcher
}

func (c DiscussionReplyCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	discussionID, err := strconv.ParseInt(mux.Vars(r)["discussion_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid discussion ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var reqBody DiscussionReplyCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.ErrorContext(ctx, "unable to parse reply body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(reqBody.Body) == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	userID := domain.UserIDFromContext(ctx)
	user, err := c.Users.GetUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch posting user", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	reply := domain.DiscussionReply{
		DiscussionID: discussionID,
		UserID:       userID,
		AuthorName:   user.DisplayName,
		Body:         reqBody.Body,
	}

	replyID, err := c.Creator.CreateDiscussionReply(ctx, reply)
	if err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to create reply", "error", err, "discussion_id", discussionID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	reply.ID = replyID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(reply); err != nil {
		logger.ErrorContext(ctx, "unable to write reply to response", "error", err)
	}
}
