// Package ingest provides functionality for turning one inbound webhook event
// into one stored email.
package ingest

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_letterfeed/internal/service/errors"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/feeds"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/ingest"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/modelmail"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/pattern"
)

// Check interface implementation explicitly
var (
	_ ingest.Processor = (*Processor)(nil)
)

// Processor struct defines data structure handling and provides support for adding new implementations.
type Processor struct {
	keeper  feeds.Keeper
	matcher pattern.Extractor
	mailCfg *config.MailConfig
}

// InitProcessor initializes a Processor object and sets its attributes.
func InitProcessor(k feeds.Keeper, m pattern.Extractor, mailCfg *config.MailConfig) (*Processor, error) {
	if k == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil feeds keeper was passed to service initializer"}
	}
	if m == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil pattern matcher was passed to service initializer"}
	}
	if mailCfg == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil mail configuration was passed to service initializer"}
	}
	return &Processor{
		keeper:  k,
		matcher: m,
		mailCfg: mailCfg,
	}, nil
}

// Process drives one event through verification, routing, link extraction and
// storage. An unknown recipient feed drops the event, the provider is not asked
// to redeliver. No idempotency check is performed against re-delivery of the
// same event id, the record is overwritten in place and the index entry may be
// inserted twice.
func (p *Processor) Process(ctx context.Context, token string, event modelmail.InboundEmail) (emailID string, err error) {
	// Verified
	if subtle.ConstantTimeCompare([]byte(token), []byte(p.mailCfg.WebhookToken)) != 1 || p.mailCfg.WebhookToken == "" {
		return "", &serviceErrors.AuthenticationError{Msg: "webhook verification token mismatch"}
	}
	// Routed
	feedID := localPart(event.Recipient)
	if feedID == "" {
		return "", &serviceErrors.ValidationError{Msg: "event recipient has no local part"}
	}
	feed, err := p.keeper.GetFeed(ctx, feedID)
	if err != nil {
		log.Println("Routing inbound email:", err)
		return "", err
	}
	// Extract & Transform
	var sender modelmail.Sender
	if len(event.Senders) > 0 {
		sender = event.Senders[0]
	}
	link, found := p.matcher.Extract(ctx, event.HTML, feed.ID)
	if !found {
		link = ""
	}
	emailID = event.ID
	if emailID == "" {
		emailID = uuid.New().String()
	}
	timestamp := event.ReceivedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	// Stored
	storedEmail := modelmail.StoredEmail{
		ID:          emailID,
		FeedID:      feed.ID,
		Subject:     event.Subject,
		From:        sender,
		HTML:        event.HTML,
		Text:        event.Text,
		Timestamp:   timestamp,
		WebViewLink: link,
	}
	err = p.keeper.AppendEmail(ctx, feed.ID, storedEmail)
	if err != nil {
		log.Println("Storing inbound email:", err)
		return "", err
	}
	log.Println("Stored inbound email:", emailID, "for feed", feed.ID)
	return emailID, nil
}

// localPart returns the substring of an email address before the @ separator.
func localPart(address string) string {
	address = strings.TrimSpace(address)
	idx := strings.Index(address, "@")
	if idx < 0 {
		return address
	}
	return address[:idx]
}
