// Package notify pushes audit lifecycle notifications to external channels.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/slack-go/slack"

	"auditease-backend/internal/models"
)

// Notifier receives terminal audit transitions. Implementations must not
// block the caller on failure; notification delivery is best-effort.
type Notifier interface {
	AuditFinished(ctx context.Context, audit *models.Audit)
}

// SlackNotifier posts a summary message to a Slack channel when an audit
// reaches a terminal status.
type SlackNotifier struct {
	client    *slack.Client
	channelID string
}

// NewSlackNotifier creates a notifier for the given bot token and channel.
func NewSlackNotifier(botToken, channelID string) (*SlackNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("slack notifier: bot token is empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("slack notifier: channel ID is empty")
	}
	return &SlackNotifier{
		client:    slack.New(botToken),
		channelID: channelID,
	}, nil
}

// AuditFinished posts the completion (or failure) summary. Errors are logged
// and swallowed: a missed notification must never fail the status update that
// triggered it.
func (n *SlackNotifier) AuditFinished(ctx context.Context, audit *models.Audit) {
	text := formatAuditMessage(audit)

	_, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		log.Printf("WARN [SlackNotifier] Failed to post to channel %s for audit %s: %v",
			n.channelID, audit.ID, err)
		return
	}
	log.Printf("[SlackNotifier] Posted %s notification for audit %s", audit.Status, audit.ID)
}

func formatAuditMessage(audit *models.Audit) string {
	if audit.Status == models.AuditStatusFailed {
		return fmt.Sprintf("Audit of %q against %q failed. The analysis can be retried from the dashboard.",
			audit.SubjectName, audit.StandardName)
	}

	score := 0
	if audit.HealthScore != nil {
		score = *audit.HealthScore
	}
	liability := 0.0
	if audit.TotalLiabilityUSD != nil {
		liability = *audit.TotalLiabilityUSD
	}
	return fmt.Sprintf("Audit of %q against %q completed: compliance score %d/100, potential liability $%.2f.",
		audit.SubjectName, audit.StandardName, score, liability)
}
