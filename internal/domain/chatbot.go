package domain

import "strings"

// chatbotRules is the keyword lookup table behind the support chat widget.
// Rules are evaluated in order and the first keyword contained in the
// message wins.
var chatbotRules = []struct {
	keyword string
	reply   string
}{
	{"order", "You can review your orders under My Account > Orders. Order numbers start appearing as soon as checkout completes."},
	{"shipping", "Standard shipping takes 3-5 business days. You'll receive a tracking link by email once your order ships."},
	{"return", "Unopened products can be returned within 30 days. Reply with your order number and we'll send a return label."},
	{"refund", "Refunds are issued to the original payment method within 5 business days of receiving your return."},
	{"workshop", "Upcoming workshops are listed on the Community page. Registration is free for members."},
	{"meditation", "Our Wellness Hub has a beginner meditation series, and the shop carries guided meditation kits."},
	{"yoga", "Check the Wellness Hub for yoga articles, or browse yoga mats and props in the shop."},
	{"sleep", "Browse our sleep category for articles and products that support a better night's rest."},
	{"hello", "Hi! Ask me about orders, shipping, returns, workshops, or anything wellness."},
	{"hi", "Hi! Ask me about orders, shipping, returns, workshops, or anything wellness."},
	{"help", "I can help with orders, shipping, returns, refunds and workshop questions. What do you need?"},
}

const chatbotFallbackReply = "I'm not sure about that one. Try asking about orders, shipping, returns or workshops, or email support@verdantly.example."

// ChatbotReply returns the canned reply for a message. This is a keyword
// table, not an inference engine; unmatched messages get the fallback.
func ChatbotReply(message string) string {
	lowered := strings.ToLower(message)
	for _, rule := range chatbotRules {
		if strings.Contains(lowered, rule.keyword) {
			return rule.reply
		}
	}
	return chatbotFallbackReply
}
