package command

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

type fakePreferences struct {
	pref domain.ReminderPreference
	err  error
}

func (f *fakePreferences) GetReminderPreference(_ context.Context, userID int64) (domain.ReminderPreference, error) {
	if f.err != nil {
		return domain.ReminderPreference{}, f.err
	}
	pref := f.pref
	pref.UserID = userID
	return pref, nil
}

// fakeReminderStore mimics the unique-key idempotence of the real table.
type fakeReminderStore struct {
	existing map[string]domain.DailyReminder
	nextID   int64
	creates  int
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{existing: map[string]domain.DailyReminder{}, nextID: 1}
}

func reminderKey(userID int64, reminderType domain.ReminderType, sentDate string) string {
	return sentDate + "|" + string(reminderType) + "|" + strconv.FormatInt(userID, 10)
}

func (f *fakeReminderStore) GetDailyReminderByDate(
	_ context.Context, userID int64, reminderType domain.ReminderType, sentDate string,
) (domain.DailyReminder, error) {
	reminder, ok := f.existing[reminderKey(userID, reminderType, sentDate)]
	if !ok {
		return domain.DailyReminder{}, datasources.ErrNotFound
	}
	return reminder, nil
}

func (f *fakeReminderStore) CreateDailyReminder(
	ctx context.Context, reminder domain.DailyReminder,
) (domain.DailyReminder, error) {
	f.creates++
	key := reminderKey(reminder.UserID, reminder.ReminderType, reminder.SentDate)
	if existing, ok := f.existing[key]; ok {
		return existing, nil
	}
	reminder.ID = f.nextID
	f.nextID++
	f.existing[key] = reminder
	return reminder, nil
}

type fakeQuotePicker struct {
	quote domain.MotivationalQuote
	err   error
}

func (f *fakeQuotePicker) PickQuote(_ context.Context, _ int64) (domain.MotivationalQuote, error) {
	if f.err != nil {
		return domain.MotivationalQuote{}, f.err
	}
	return f.quote, nil
}

// A Monday.
var reminderTestNow = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

func newReminderCmd(
	pref domain.ReminderPreference,
	store *fakeReminderStore,
	interestsList []domain.CategoryInterest,
	quote domain.MotivationalQuote,
) *GetDailyReminder {
	cmd := NewGetDailyReminder(
		&fakePreferences{pref: pref},
		store,
		&fakeInterestsLister{interests: interestsList},
		&fakeQuotePicker{quote: quote},
	)
	cmd.Now = func() time.Time { return reminderTestNow }
	return cmd
}

func TestGetDailyReminder_Execute(t *testing.T) {
	yoga := []domain.CategoryInterest{{CategoryID: 1, CategoryName: "Yoga", Score: 12}}
	quote := domain.MotivationalQuote{ID: 3, Text: "Begin again.", Author: "Anon"}

	t.Run("generates_once_then_reads_through", func(t *testing.T) {
		store := newFakeReminderStore()
		cmd := newReminderCmd(domain.DefaultReminderPreference(0), store, yoga, quote)

		first, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, domain.ReminderTypeMotivationalQuote, first.ReminderType)
		assert.Equal(t, int64(1), first.CategoryID)
		assert.Equal(t, "2026-08-31", first.SentDate)
		assert.Equal(t, "Begin again. - Anon\n\nA single stretch is a good place to start.", first.Message)

		second, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, store.creates)
	})

	t.Run("frequency_never_returns_nil", func(t *testing.T) {
		store := newFakeReminderStore()
		pref := domain.ReminderPreference{Frequency: domain.ReminderFrequencyNever}
		cmd := newReminderCmd(pref, store, yoga, quote)

		reminder, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.NoError(t, err)
		assert.Nil(t, reminder)
		assert.Zero(t, store.creates)
	})

	t.Run("weekly_on_monday_generates", func(t *testing.T) {
		store := newFakeReminderStore()
		pref := domain.ReminderPreference{Frequency: domain.ReminderFrequencyWeekly}
		cmd := newReminderCmd(pref, store, yoga, quote)

		reminder, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.NoError(t, err)
		assert.NotNil(t, reminder)
	})

	t.Run("weekly_off_monday_returns_nil", func(t *testing.T) {
		store := newFakeReminderStore()
		pref := domain.ReminderPreference{Frequency: domain.ReminderFrequencyWeekly}
		cmd := newReminderCmd(pref, store, yoga, quote)
		cmd.Now = func() time.Time { return reminderTestNow.AddDate(0, 0, 1) }

		reminder, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.NoError(t, err)
		assert.Nil(t, reminder)
	})

	t.Run("no_interest_signal_returns_nil", func(t *testing.T) {
		store := newFakeReminderStore()
		cmd := newReminderCmd(domain.DefaultReminderPreference(0), store, nil, quote)

		reminder, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.NoError(t, err)
		assert.Nil(t, reminder)
	})

	t.Run("preference_filters_categories", func(t *testing.T) {
		store := newFakeReminderStore()
		multi := []domain.CategoryInterest{
			{CategoryID: 1, CategoryName: "Yoga", Score: 12},
			{CategoryID: 2, CategoryName: "Sleep", Score: 8},
		}
		pref := domain.ReminderPreference{
			Frequency:            domain.ReminderFrequencyDaily,
			PreferredCategoryIDs: []int64{2},
		}
		cmd := newReminderCmd(pref, store, multi, quote)

		reminder, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.NoError(t, err)
		require.NotNil(t, reminder)
		assert.Equal(t, int64(2), reminder.CategoryID)
	})

	t.Run("no_allowed_category_returns_nil", func(t *testing.T) {
		store := newFakeReminderStore()
		pref := domain.ReminderPreference{
			Frequency:            domain.ReminderFrequencyDaily,
			PreferredCategoryIDs: []int64{99},
		}
		cmd := newReminderCmd(pref, store, yoga, quote)

		reminder, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.NoError(t, err)
		assert.Nil(t, reminder)
	})

	t.Run("no_matching_quote_returns_nil", func(t *testing.T) {
		store := newFakeReminderStore()
		cmd := newReminderCmd(domain.DefaultReminderPreference(0), store, yoga, quote)
		cmd.Quotes = &fakeQuotePicker{err: datasources.ErrNotFound}

		reminder, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.NoError(t, err)
		assert.Nil(t, reminder)
	})

	t.Run("preference_error_propagates", func(t *testing.T) {
		store := newFakeReminderStore()
		cmd := newReminderCmd(domain.DefaultReminderPreference(0), store, yoga, quote)
		cmd.Preferences = &fakePreferences{err: errors.New("database error")}

		_, err := cmd.Execute(testCtx(), GetDailyReminderRequest{UserID: 7})
		require.Error(t, err)
	})
}
