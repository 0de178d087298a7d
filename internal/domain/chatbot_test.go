package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatbotReply(t *testing.T) {
	cases := []struct {
		name         string
		message      string
		wantContains string
	}{
		{"order_keyword", "where is my order?", "My Account > Orders"},
		{"shipping_keyword", "SHIPPING time?", "3-5 business days"},
		{"first_rule_wins", "return my order", "My Account > Orders"},
		{"workshop_keyword", "how do I join a workshop", "Community page"},
		{"fallback", "what is the meaning of life", "I'm not sure"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply := ChatbotReply(tc.message)
			assert.True(t, strings.Contains(reply, tc.wantContains),
				"reply %q should contain %q", reply, tc.wantContains)
		})
	}
}
