package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatbotMessage_ServeHTTP(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantIn     string
	}{
		{
			name:       "order_keyword",
			body:       `{"message":"where can I see my order?"}`,
			wantStatus: http.StatusOK,
			wantIn:     "orders",
		},
		{
			name:       "shipping_keyword",
			body:       `{"message":"How long does SHIPPING take"}`,
			wantStatus: http.StatusOK,
			wantIn:     "3-5 business days",
		},
		{
			name:       "fallback_for_unknown",
			body:       `{"message":"what is the meaning of life"}`,
			wantStatus: http.StatusOK,
			wantIn:     "not sure",
		},
		{
			name:       "empty_message",
			body:       `{"message":"   "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed_json",
			body:       `{"message":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/chatbot", strings.NewReader(tc.body))
			req = testContext()(req)
			rec := httptest.NewRecorder()

			ChatbotMessage{}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusOK {
				var resp ChatbotMessageResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Contains(t, resp.Reply, tc.wantIn)
			}
		})
	}
}
