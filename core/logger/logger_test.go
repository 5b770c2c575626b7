package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLinesRecorder(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLinesRecorder(&buf).NewSession()

	err := log.RecordEvent(Event{
		Command: &Command{
			Raw:        "sleep 5 &",
			Argv:       []string{"sleep", "5"},
			Background: true,
			Outcome:    "dispatched",
		},
	})
	require.NoError(t, err)

	err = log.RecordEvent(Event{SessionEnd: &SessionEnd{}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first Entry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.NotZero(t, first.TimestampMicros)
	assert.NotEmpty(t, first.SessionID)
	require.NotNil(t, first.Event.Command)
	assert.Equal(t, "sleep 5 &", first.Event.Command.Raw)
	assert.Equal(t, []string{"sleep", "5"}, first.Event.Command.Argv)
	assert.True(t, first.Event.Command.Background)

	var second Entry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, first.SessionID, second.SessionID, "events in a session share an ID")
	assert.NotNil(t, second.Event.SessionEnd)
}

func TestSessionlessOmitsID(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLinesRecorder(&buf).Sessionless()

	require.NoError(t, log.RecordEvent(Event{SessionStart: &SessionStart{Username: "demo"}}))

	var entry Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Empty(t, entry.SessionID)
}

func TestDiscard(t *testing.T) {
	log := Discard().Sessionless()
	assert.NoError(t, log.RecordEvent(Event{SessionEnd: &SessionEnd{}}))
}
