package services

import (
	"testing"

	"synthara-api/models"

	"github.com/stretchr/testify/require"
)

func Test_EventLog_DropsOldest(t *testing.T) {
	l := NewEventLog()
	l.capacity = 3
	l.Now = fixedClock(testNow)

	for i := 0; i < 5; i++ {
		l.Append(models.EventGoldEarned, map[string]any{"n": i})
	}
	entries := l.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, 2, entries[0].Metadata["n"])
	require.Equal(t, 4, entries[2].Metadata["n"])
	require.Equal(t, models.NewTimestamp(testNow), entries[0].Ts)
}

func Test_EventLog_NilMetadata(t *testing.T) {
	l := NewEventLog()
	entry := l.Append(models.EventRewardClaimed, nil)
	require.NotNil(t, entry.Metadata)
}
