package email

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/lumastory/lumastory/internal/domain/support"
	"github.com/lumastory/lumastory/internal/shared/goroutine"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

type mailer interface {
	Send(ctx context.Context, msg Message) error
}

// TicketNotifier emails the support inbox and sends the requester a
// confirmation carrying the ticket reference.
type TicketNotifier struct {
	mailer       mailer
	renderer     *MarkdownRenderer
	supportInbox string
	logger       logger.Interface
}

func NewTicketNotifier(mailer mailer, supportInbox string, logger logger.Interface) *TicketNotifier {
	return &TicketNotifier{
		mailer:       mailer,
		renderer:     NewMarkdownRenderer(),
		supportInbox: supportInbox,
		logger:       logger,
	}
}

// NotifyTicketCreated attempts both emails and joins their errors.
func (n *TicketNotifier) NotifyTicketCreated(ctx context.Context, ticket *support.Ticket) error {
	body, err := n.renderer.Render(ticket.Message())
	if err != nil {
		body = "<pre>" + html.EscapeString(ticket.Message()) + "</pre>"
	}

	var errs []error
	if n.supportInbox != "" {
		if err := n.mailer.Send(ctx, n.inboxMessage(ticket, body)); err != nil {
			errs = append(errs, fmt.Errorf("support inbox: %w", err))
		}
	}
	if err := n.mailer.Send(ctx, n.confirmationMessage(ticket, body)); err != nil {
		errs = append(errs, fmt.Errorf("requester confirmation: %w", err))
	}

	if len(errs) == 0 {
		n.logger.Infow("support ticket notifications sent", "reference", ticket.Reference())
	}
	return errors.Join(errs...)
}

func (n *TicketNotifier) inboxMessage(ticket *support.Ticket, body string) Message {
	name := "anonymous"
	if ticket.Name() != nil {
		name = *ticket.Name()
	}

	subject := fmt.Sprintf("[%s] [%s] %s", ticket.Reference(), ticket.Priority(), ticket.Subject())
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New support ticket %s</h2>
			<p><strong>From:</strong> %s &lt;%s&gt;</p>
			<p><strong>Category:</strong> %s<br><strong>Priority:</strong> %s</p>
			<h3>%s</h3>
			%s
		</body>
		</html>
	`, ticket.Reference(), html.EscapeString(name), html.EscapeString(ticket.Email()),
		ticket.Category(), ticket.Priority(), html.EscapeString(ticket.Subject()), body)

	plainBody := fmt.Sprintf(`New support ticket %s

From: %s <%s>
Category: %s
Priority: %s

%s

%s
`, ticket.Reference(), name, ticket.Email(), ticket.Category(), ticket.Priority(), ticket.Subject(), ticket.Message())

	return Message{
		To:      n.supportInbox,
		ReplyTo: ticket.Email(),
		Subject: subject,
		HTML:    htmlBody,
		Plain:   plainBody,
	}
}

func (n *TicketNotifier) confirmationMessage(ticket *support.Ticket, body string) Message {
	subject := fmt.Sprintf("We received your request [%s]", ticket.Reference())
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Thanks for contacting LumaStory</h2>
			<p>Your request has been logged with reference <strong>%s</strong>. Please quote it if you write to us again.</p>
			<h3>%s</h3>
			%s
		</body>
		</html>
	`, ticket.Reference(), html.EscapeString(ticket.Subject()), body)

	plainBody := fmt.Sprintf(`Thanks for contacting LumaStory

Your request has been logged with reference %s. Please quote it if you write to us again.

%s

%s
`, ticket.Reference(), ticket.Subject(), ticket.Message())

	return Message{
		To:      ticket.Email(),
		Subject: subject,
		HTML:    htmlBody,
		Plain:   plainBody,
	}
}

type ticketNotifier interface {
	NotifyTicketCreated(ctx context.Context, ticket *support.Ticket) error
}

// AsyncTicketNotifier sends notifications on a panic-safe goroutine with its
// own deadline and always returns nil to the caller.
type AsyncTicketNotifier struct {
	next    ticketNotifier
	timeout time.Duration
	logger  logger.Interface
}

func NewAsyncTicketNotifier(next ticketNotifier, timeout time.Duration, logger logger.Interface) *AsyncTicketNotifier {
	return &AsyncTicketNotifier{
		next:    next,
		timeout: timeout,
		logger:  logger,
	}
}

func (a *AsyncTicketNotifier) NotifyTicketCreated(_ context.Context, ticket *support.Ticket) error {
	goroutine.Detached(a.logger, "support-ticket-notify:"+ticket.Reference(), a.timeout, func(ctx context.Context) error {
		return a.next.NotifyTicketCreated(ctx, ticket)
	})
	return nil
}

// DisabledTicketNotifier is used when SMTP is not configured.
type DisabledTicketNotifier struct {
	logger logger.Interface
}

func NewDisabledTicketNotifier(logger logger.Interface) *DisabledTicketNotifier {
	return &DisabledTicketNotifier{logger: logger}
}

func (d *DisabledTicketNotifier) NotifyTicketCreated(_ context.Context, ticket *support.Ticket) error {
	d.logger.Infow("email not configured, skipping support ticket notification", "reference", ticket.Reference())
	return nil
}
