package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditease-backend/internal/models"
	"auditease-backend/internal/prompt"
	"auditease-backend/internal/store"
)

// fakeGateway records composed payloads and serves canned replies. When block
// is set, GenerateContent waits on it after signalling started, which lets a
// test hold a submission open.
type fakeGateway struct {
	mu       sync.Mutex
	payloads []string
	reply    string
	err      error
	block    chan struct{}
	started  chan struct{}
}

func (g *fakeGateway) GenerateContent(ctx context.Context, payload string) (string, error) {
	g.mu.Lock()
	g.payloads = append(g.payloads, payload)
	started := g.started
	block := g.block
	reply, err := g.reply, g.err
	g.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	return reply, err
}

func (g *fakeGateway) lastPayload(t *testing.T) string {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	require.NotEmpty(t, g.payloads, "gateway was never called")
	return g.payloads[len(g.payloads)-1]
}

func newChatFixture(t *testing.T, subjectName, subjectText string) (*ChatService, *fakeStore, *fakeGateway, uuid.UUID) {
	t.Helper()
	st := newFakeStore()
	gw := &fakeGateway{reply: "The agreement renews automatically."}
	auditID := seedAuditFixture(st, subjectName, subjectText)
	return NewChatService(st, gw), st, gw, auditID
}

func TestGetConversationSeedsFromSubjectName(t *testing.T) {
	svc, _, _, auditID := newChatFixture(t, "Vendor MSA.pdf", "Clause 1. Payment due in 30 days.")

	resp, err := svc.GetConversation(context.Background(), auditID)
	require.NoError(t, err)

	require.Len(t, resp.Turns, 1)
	assert.Equal(t, models.RoleAssistant, resp.Turns[0].Role)
	assert.Contains(t, resp.Turns[0].Content, "**Vendor MSA.pdf**")
	assert.Contains(t, resp.Turns[0].HTML, `<strong class="font-bold">Vendor MSA.pdf</strong>`)
	assert.Empty(t, resp.Notice)
}

func TestGetConversationUnknownAudit(t *testing.T) {
	svc, _, _, _ := newChatFixture(t, "doc", "text")

	_, err := svc.GetConversation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSendMessageAppendsUserAndAssistantVerbatim(t *testing.T) {
	svc, _, gw, auditID := newChatFixture(t, "Vendor MSA.pdf", "Clause 9. Either party may terminate with 30 days written notice.")

	resp, err := svc.SendMessage(context.Background(), auditID, "What is the notice period?")
	require.NoError(t, err)
	assert.Empty(t, resp.Notice)

	require.Len(t, resp.Turns, 3)
	assert.Equal(t, models.RoleUser, resp.Turns[1].Role)
	assert.Equal(t, "What is the notice period?", resp.Turns[1].Content)
	assert.Equal(t, models.RoleAssistant, resp.Turns[2].Role)
	assert.Equal(t, "The agreement renews automatically.", resp.Turns[2].Content)

	payload := gw.lastPayload(t)
	assert.Contains(t, payload, `"Vendor MSA.pdf"`)
	assert.Contains(t, payload, "Clause 9. Either party may terminate with 30 days written notice.")
	assert.Contains(t, payload, "User Question: What is the notice period?")
}

func TestSendMessageBoundsDocumentExcerpt(t *testing.T) {
	longText := strings.Repeat("a", prompt.MaxExcerptChars) + "OVERFLOW MARKER"
	svc, _, gw, auditID := newChatFixture(t, "Huge.pdf", longText)

	_, err := svc.SendMessage(context.Background(), auditID, "summarize")
	require.NoError(t, err)

	payload := gw.lastPayload(t)
	assert.Contains(t, payload, longText[:prompt.MaxExcerptChars])
	assert.NotContains(t, payload, "OVERFLOW MARKER", "text past the excerpt bound must not reach the gateway")
}

func TestSendMessageHistoryExcludesSeedAndNewQuestion(t *testing.T) {
	svc, _, gw, auditID := newChatFixture(t, "doc.pdf", "some text")

	_, err := svc.SendMessage(context.Background(), auditID, "first question")
	require.NoError(t, err)

	firstPayload := gw.lastPayload(t)
	historySection := firstPayload[strings.Index(firstPayload, "History:"):]
	assert.NotContains(t, historySection, "Hello! I've analyzed", "seed turn must not be serialized")
	assert.NotContains(t, strings.Split(historySection, "User Question:")[0], "first question",
		"the new question belongs in the question section, not the history")

	_, err = svc.SendMessage(context.Background(), auditID, "second question")
	require.NoError(t, err)

	secondPayload := gw.lastPayload(t)
	assert.Contains(t, secondPayload, "User: first question")
	assert.Contains(t, secondPayload, "Assistant: The agreement renews automatically.")
}

func TestSendMessageGrowsSeedPlusTwoPerExchange(t *testing.T) {
	svc, _, _, auditID := newChatFixture(t, "doc.pdf", "text")

	var resp *models.ConversationResponse
	var err error
	for i := 0; i < 3; i++ {
		resp, err = svc.SendMessage(context.Background(), auditID, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	require.Len(t, resp.Turns, 7, "seed plus two turns per exchange")
	for i := 1; i < len(resp.Turns); i++ {
		want := models.RoleUser
		if i%2 == 0 {
			want = models.RoleAssistant
		}
		assert.Equal(t, want, resp.Turns[i].Role, "turn %d", i)
	}
}

func TestSendMessageRejectsBlankMessage(t *testing.T) {
	svc, _, gw, auditID := newChatFixture(t, "doc.pdf", "text")

	_, err := svc.SendMessage(context.Background(), auditID, "   \n\t")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, gw.payloads, "gateway must not be called for a blank message")
}

func TestSendMessageGatewayFailureAppendsApology(t *testing.T) {
	svc, _, gw, auditID := newChatFixture(t, "doc.pdf", "text")
	gw.err = errors.New("503 service unavailable")

	resp, err := svc.SendMessage(context.Background(), auditID, "question")
	require.NoError(t, err, "a gateway failure is recovered, not propagated")

	assert.Equal(t, failureNotice, resp.Notice)
	require.Len(t, resp.Turns, 3)
	assert.Equal(t, models.RoleAssistant, resp.Turns[2].Role)
	assert.Equal(t, apologyContent, resp.Turns[2].Content)

	// The failed turn is not retried; a later submission proceeds normally.
	gw.err = nil
	resp, err = svc.SendMessage(context.Background(), auditID, "again")
	require.NoError(t, err)
	assert.Empty(t, resp.Notice)
	assert.Len(t, resp.Turns, 5)
}

func TestSendMessageStripsTagsFromAnswer(t *testing.T) {
	svc, _, gw, auditID := newChatFixture(t, "doc.pdf", "text")
	gw.reply = `<script>alert(1)</script>The clause is **binding**.`

	resp, err := svc.SendMessage(context.Background(), auditID, "question")
	require.NoError(t, err)

	last := resp.Turns[len(resp.Turns)-1]
	assert.Equal(t, "alert(1)The clause is **binding**.", last.Content)
	assert.Equal(t, `alert(1)The clause is <strong class="font-bold">binding</strong>.`, last.HTML)
}

func TestSendMessageRejectsSecondInFlightSubmission(t *testing.T) {
	svc, _, gw, auditID := newChatFixture(t, "doc.pdf", "text")
	gw.block = make(chan struct{})
	gw.started = make(chan struct{}, 1)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.SendMessage(context.Background(), auditID, "slow question")
		firstDone <- err
	}()

	select {
	case <-gw.started:
	case <-time.After(time.Second):
		t.Fatal("first submission never reached the gateway")
	}

	_, err := svc.SendMessage(context.Background(), auditID, "impatient question")
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(gw.block)
	require.NoError(t, <-firstDone)

	// The rejected submission left no trace in the conversation.
	resp, err := svc.GetConversation(context.Background(), auditID)
	require.NoError(t, err)
	require.Len(t, resp.Turns, 3)
	assert.Equal(t, "slow question", resp.Turns[1].Content)
}

func TestClearConversationRestoresSeed(t *testing.T) {
	svc, _, _, auditID := newChatFixture(t, "Vendor MSA.pdf", "text")

	_, err := svc.SendMessage(context.Background(), auditID, "question")
	require.NoError(t, err)

	resp, err := svc.ClearConversation(context.Background(), auditID)
	require.NoError(t, err)
	require.Len(t, resp.Turns, 1)
	assert.Contains(t, resp.Turns[0].Content, "**Vendor MSA.pdf**")
}

func TestClearConversationSeedsUnopenedChat(t *testing.T) {
	// DELETE is symmetric with GET: clearing a chat nobody opened yet still
	// returns the seeded conversation.
	svc, _, _, auditID := newChatFixture(t, "Vendor MSA.pdf", "text")

	resp, err := svc.ClearConversation(context.Background(), auditID)
	require.NoError(t, err)
	require.Len(t, resp.Turns, 1)
	assert.Contains(t, resp.Turns[0].Content, "**Vendor MSA.pdf**")
}

func TestClearConversationUnknownAudit(t *testing.T) {
	svc, _, _, _ := newChatFixture(t, "doc.pdf", "text")

	_, err := svc.ClearConversation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
