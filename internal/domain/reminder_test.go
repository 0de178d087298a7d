package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncouragementForCategory(t *testing.T) {
	cases := []struct {
		name     string
		category string
		want     string
	}{
		{"exact_match", "yoga", "A single stretch is a good place to start."},
		{"case_insensitive", "Meditation", "Take five quiet minutes for yourself today."},
		{"substring_match", "yoga & pilates", "A single stretch is a good place to start."},
		{"exact_beats_substring_order", "sleep", "Rest is part of the work."},
		{"no_match", "crystals", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EncouragementForCategory(tc.category))
		})
	}
}

func TestComposeReminderMessage(t *testing.T) {
	quote := MotivationalQuote{Text: "Begin again.", Author: "Anon"}

	assert.Equal(t, "Begin again. - Anon\n\nA single stretch is a good place to start.",
		ComposeReminderMessage(quote, "yoga"))

	noAuthor := MotivationalQuote{Text: "Begin again."}
	assert.Equal(t, "Begin again.", ComposeReminderMessage(noAuthor, "crystals"))
}

func TestReminderPreferenceAllowsCategory(t *testing.T) {
	all := ReminderPreference{}
	assert.True(t, all.AllowsCategory(7))

	some := ReminderPreference{PreferredCategoryIDs: []int64{1, 2}}
	assert.True(t, some.AllowsCategory(2))
	assert.False(t, some.AllowsCategory(7))
}
