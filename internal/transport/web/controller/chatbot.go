package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/verdantly/wellness-api/internal/domain"
)

// ChatbotMessageRequest is the JSON body for the support chat widget.
type ChatbotMessageRequest struct {
	Message string `json:"message"`
}

// ChatbotMessageResponse carries the canned reply.
type ChatbotMessageResponse struct {
	Reply string `json:"reply"`
}

// ChatbotMessage handles POST /v1/chatbot. The bot is a static keyword
// table; no state is kept between messages.
type ChatbotMessage struct{}

func (c ChatbotMessage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var reqBody ChatbotMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.ErrorContext(ctx, "unable to parse chatbot message body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(reqBody.Message) == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ChatbotMessageResponse{
		Reply: domain.ChatbotReply(reqBody.Message),
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write chatbot reply to response", "error", err)
	}
}
