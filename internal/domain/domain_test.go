package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueName(t *testing.T) {
	assert.Equal(t, "TFT Ranked", QueueName(1100))
	assert.Equal(t, "Ranked Solo/Duo", QueueName(420))
	assert.Equal(t, "Unknown (ID: 9999)", QueueName(9999))
}

func TestQueues_SortedAndBijective(t *testing.T) {
	qs := Queues()
	require.Len(t, qs, 11)

	names := map[string]bool{}
	for i, q := range qs {
		if i > 0 {
			assert.Less(t, qs[i-1].ID, q.ID)
		}
		assert.False(t, names[q.Name], "duplicate name %q", q.Name)
		names[q.Name] = true
		assert.Equal(t, q.Name, QueueName(q.ID))
	}
}

func TestSettings_Allows(t *testing.T) {
	id := func(v int) *int { return &v }

	all := NewSettings("", "", true, nil)
	assert.True(t, all.AcceptsAll())
	assert.True(t, all.Allows(id(1090)))
	assert.True(t, all.Allows(nil))

	ranked := NewSettings("", "", true, []int{420, 1100})
	assert.False(t, ranked.AcceptsAll())
	assert.True(t, ranked.Allows(id(420)))
	assert.False(t, ranked.Allows(id(1090)))
	assert.False(t, ranked.Allows(nil))
}

func TestSettings_CopiesInput(t *testing.T) {
	ids := []int{420}
	s := NewSettings("", "", false, ids)
	ids[0] = 1090

	v := 420
	assert.True(t, s.Allows(&v))
}

func TestSettings_AllowedQueueIDs(t *testing.T) {
	s := NewSettings("", "", false, []int{9001, 1100, 420, 42})
	assert.Equal(t, []int{420, 1100, 42, 9001}, s.AllowedQueueIDs())
}

func TestReadyCheckEvent_Pending(t *testing.T) {
	assert.True(t, ReadyCheckEvent{State: StateInProgress, PlayerResponse: ResponseNone}.Pending())
	assert.False(t, ReadyCheckEvent{State: StateInProgress, PlayerResponse: ResponseAccepted}.Pending())
	assert.False(t, ReadyCheckEvent{State: StateEveryoneReady, PlayerResponse: ResponseNone}.Pending())
}
