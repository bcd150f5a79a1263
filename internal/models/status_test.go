package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuditStatus(t *testing.T) {
	for _, valid := range []string{"pending", "analyzing", "completed", "failed"} {
		status, err := ParseAuditStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(status))
	}

	_, err := ParseAuditStatus("archived")
	assert.Error(t, err, "statuses outside the closed set must be rejected")

	_, err = ParseAuditStatus("")
	assert.Error(t, err)
}

func TestAuditStatusIsTerminal(t *testing.T) {
	assert.False(t, AuditStatusPending.IsTerminal())
	assert.False(t, AuditStatusAnalyzing.IsTerminal())
	assert.True(t, AuditStatusCompleted.IsTerminal())
	assert.True(t, AuditStatusFailed.IsTerminal())
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "User", RoleUser.Label())
	assert.Equal(t, "Assistant", RoleAssistant.Label())
}
