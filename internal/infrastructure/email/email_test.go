package email

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/lumastory/lumastory/internal/application/testutil"
	"github.com/lumastory/lumastory/internal/domain/support"
	vo "github.com/lumastory/lumastory/internal/domain/support/valueobjects"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

type recordingMailer struct {
	mu       sync.Mutex
	messages []Message
	failTo   string
}

func (r *recordingMailer) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.To == r.failTo {
		return errors.New("smtp down")
	}
	r.messages = append(r.messages, msg)
	return nil
}

func newTestTicket(t *testing.T, message string) *support.Ticket {
	t.Helper()

	name := "Sam"
	ticket, err := support.NewTicket("tkt_1", "sup_AbCd1234", nil, "parent@example.com", &name,
		vo.CategoryBillingPayment, "Charged twice", message)
	require.NoError(t, err)
	return ticket
}

func TestSMTPEmailService_Send(t *testing.T) {
	fake := &fakeSender{}
	svc := &SMTPEmailService{fromAddress: "hello@lumastory.app", fromName: "LumaStory", sender: fake}

	err := svc.Send(context.Background(), Message{
		To:      "parent@example.com",
		ReplyTo: "support@lumastory.app",
		Subject: "Hi",
		HTML:    "<p>Hi</p>",
		Plain:   "Hi",
	})
	require.NoError(t, err)
	require.Len(t, fake.sent, 1)
	assert.Equal(t, []string{"parent@example.com"}, fake.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"support@lumastory.app"}, fake.sent[0].GetHeader("Reply-To"))

	var buf bytes.Buffer
	_, err = fake.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestSMTPEmailService_CancelledContext(t *testing.T) {
	fake := &fakeSender{}
	svc := &SMTPEmailService{fromAddress: "hello@lumastory.app", sender: fake}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, svc.Send(ctx, Message{To: "parent@example.com"}))
	assert.Empty(t, fake.sent)
}

func TestMarkdownRenderer_Sanitizes(t *testing.T) {
	out, err := NewMarkdownRenderer().Render("**bold** <script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestTicketNotifier_SendsBothEmails(t *testing.T) {
	mailer := &recordingMailer{}
	notifier := NewTicketNotifier(mailer, "support@lumastory.app", testutil.NewMockLogger())

	err := notifier.NotifyTicketCreated(context.Background(), newTestTicket(t, "I was charged **twice** this month for Pro."))
	require.NoError(t, err)
	require.Len(t, mailer.messages, 2)

	inbox := mailer.messages[0]
	assert.Equal(t, "support@lumastory.app", inbox.To)
	assert.Equal(t, "parent@example.com", inbox.ReplyTo)
	assert.True(t, strings.HasPrefix(inbox.Subject, "[sup_AbCd1234] [high]"))
	assert.Contains(t, inbox.HTML, "<strong>twice</strong>")

	confirmation := mailer.messages[1]
	assert.Equal(t, "parent@example.com", confirmation.To)
	assert.Contains(t, confirmation.Subject, "sup_AbCd1234")
}

func TestTicketNotifier_JoinsFailures(t *testing.T) {
	mailer := &recordingMailer{failTo: "support@lumastory.app"}
	notifier := NewTicketNotifier(mailer, "support@lumastory.app", testutil.NewMockLogger())

	err := notifier.NotifyTicketCreated(context.Background(), newTestTicket(t, "Please help with my billing question."))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "support inbox")
	assert.Len(t, mailer.messages, 1, "confirmation still attempted")
}

type blockingNotifier struct {
	done chan error
	err  error
}

func (b *blockingNotifier) NotifyTicketCreated(ctx context.Context, _ *support.Ticket) error {
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		b.done <- errors.New("missing deadline")
		return nil
	}
	b.done <- nil
	return b.err
}

func TestAsyncTicketNotifier(t *testing.T) {
	inner := &blockingNotifier{done: make(chan error, 1), err: errors.New("smtp down")}
	log := testutil.NewMockLogger()
	async := NewAsyncTicketNotifier(inner, time.Second, log)

	require.NoError(t, async.NotifyTicketCreated(context.Background(), newTestTicket(t, "Please help with my billing question.")))

	select {
	case err := <-inner.done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
	}
	assert.Eventually(t, func() bool { return log.HasLevel("WARN") }, time.Second, 10*time.Millisecond)
}
