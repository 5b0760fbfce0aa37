package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdpstats/rdp-session-stats/types"
)

func TestParsePSDate(t *testing.T) {
	ts, ok := parsePSDate("/Date(1745060200298)/")
	require.True(t, ok)
	assert.True(t, ts.Equal(time.UnixMilli(1745060200298).Truncate(time.Second)))
	assert.Zero(t, ts.Nanosecond())

	_, ok = parsePSDate("not a date")
	assert.False(t, ok)

	_, ok = parsePSDate("")
	assert.False(t, ok)
}

func TestParseEventsArray(t *testing.T) {
	payload := `[
		{"TimeCreated":"/Date(1751360400000)/","Id":21,"User":"S-1-5-21-1000","UserName":"ivanov"},
		{"TimeCreated":"/Date(1751392800000)/","Id":23,"User":"S-1-5-21-1000","UserName":"ivanov"}
	]`
	events, err := parseEvents(payload, "server1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, types.KindLogin, events[0].Kind)
	assert.Equal(t, types.KindLogout, events[1].Kind)
	assert.Equal(t, "S-1-5-21-1000", events[0].UserID)
	assert.Equal(t, "ivanov", events[0].Username)
	assert.Equal(t, "server1", events[0].Server)
	assert.True(t, events[0].Timestamp.Equal(time.UnixMilli(1751360400000)))
}

func TestParseEventsSingleObject(t *testing.T) {
	payload := `{"TimeCreated":"/Date(1751360400000)/","Id":21,"User":"S-1-5-21-1000","UserName":"ivanov"}`
	events, err := parseEvents(payload, "server2")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "server2", events[0].Server)
}

func TestParseEventsEmptyOutput(t *testing.T) {
	for _, payload := range []string{"", "   ", "\r\n"} {
		events, err := parseEvents(payload, "server1")
		assert.NoError(t, err)
		assert.Empty(t, events)
	}
}

func TestParseEventsDropsMalformedTimestamps(t *testing.T) {
	payload := `[
		{"TimeCreated":"garbage","Id":21,"User":"S-1","UserName":"a"},
		{"TimeCreated":"/Date(1751360400000)/","Id":23,"User":"S-1","UserName":"a"}
	]`
	events, err := parseEvents(payload, "server1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.KindLogout, events[0].Kind)
}

func TestParseEventsDropsUnexpectedIDs(t *testing.T) {
	payload := `[
		{"TimeCreated":"/Date(1751360400000)/","Id":24,"User":"S-1","UserName":"a"},
		{"TimeCreated":"/Date(1751360400000)/","Id":21,"User":"S-1","UserName":"a"}
	]`
	events, err := parseEvents(payload, "server1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, types.KindLogin, events[0].Kind)
}

func TestParseEventsRejectsBrokenJSON(t *testing.T) {
	_, err := parseEvents(`{"TimeCreated":`, "server1")
	assert.Error(t, err)
}
