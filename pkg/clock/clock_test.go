package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_Now(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	now := New(loc).Now()
	assert.Equal(t, loc, now.Location())
	assert.Equal(t, time.UTC, New(nil).Now().Location())
}

func TestFixed(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.True(t, Fixed{At: at}.Now().Equal(at))
}

func TestDateIn(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Дата из запроса приходит как полночь UTC
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	got := DateIn(date, loc)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), got)
	assert.Equal(t, "2024-03-15", got.Format("2006-01-02"))
}

func TestStartOfDay(t *testing.T) {
	t1 := time.Date(2024, 3, 15, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), StartOfDay(t1))
}
