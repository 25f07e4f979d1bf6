package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/lcu-queue-bot/internal/domain"
)

type memRepo struct {
	st  domain.Settings
	err error
}

func (m *memRepo) Get(context.Context) (domain.Settings, error) { return m.st, m.err }
func (m *memRepo) Upsert(_ context.Context, s domain.Settings) error {
	if m.err != nil {
		return m.err
	}
	m.st = s
	return nil
}

func TestDescribe_Defaults(t *testing.T) {
	msg := Describe(domain.NewSettings("", "", true, nil))
	assert.Contains(t, msg, "Webhook: Disabled")
	assert.Contains(t, msg, "User ID: None")
	assert.Contains(t, msg, "Allowed queues: All")
}

func TestPolicyService_Update(t *testing.T) {
	repo := &memRepo{st: domain.NewSettings("https://old", "7", true, []int{1100})}
	svc := NewPolicyService(repo)

	url := "  https://discord.com/api/webhooks/1/abc  "
	desktop := false
	queues := []int{420, 440}
	msg, err := svc.Update(context.Background(), PolicyPatch{
		WebhookURL:           &url,
		DesktopNotifications: &desktop,
		AllowedQueueIDs:      &queues,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", repo.st.WebhookURL)
	assert.Equal(t, "7", repo.st.MentionUserID, "untouched field keeps its value")
	assert.False(t, repo.st.DesktopNotifications)
	assert.Equal(t, []int{420, 440}, repo.st.AllowedQueueIDs())
	assert.Contains(t, msg, "Ranked Solo/Duo, Ranked Flex")
}

func TestPolicyService_UpdateClearsAllowList(t *testing.T) {
	repo := &memRepo{st: domain.NewSettings("", "", true, []int{1100})}
	empty := []int{}

	_, err := NewPolicyService(repo).Update(context.Background(), PolicyPatch{AllowedQueueIDs: &empty})
	require.NoError(t, err)
	assert.True(t, repo.st.AcceptsAll())
}

func TestPolicyService_RepoError(t *testing.T) {
	repo := &memRepo{err: errBoom}
	_, err := NewPolicyService(repo).Update(context.Background(), PolicyPatch{})
	assert.ErrorIs(t, err, errBoom)
}

func TestPolicyPatch_Empty(t *testing.T) {
	assert.True(t, PolicyPatch{}.Empty())
	v := true
	assert.False(t, PolicyPatch{DesktopNotifications: &v}.Empty())
}
