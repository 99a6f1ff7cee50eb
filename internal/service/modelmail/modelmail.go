// Package modelmail provides locally used types and their structure for feed and email handling between modules.
package modelmail

import "time"

// Sender identifies one email sender.
type Sender struct {
	Name  string
	Email string
}

// User represents an account owning zero or more feeds.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Feed represents a named destination address converting inbound newsletters into a syndication feed.
type Feed struct {
	ID           string
	UserID       string
	Name         string
	EmailAddress string
	CreatedAt    time.Time
}

// StoredEmail represents one ingested newsletter issue, immutable after creation.
type StoredEmail struct {
	ID          string
	FeedID      string
	Subject     string
	From        Sender
	HTML        string
	Text        string
	Timestamp   time.Time
	WebViewLink string
}

// InboundEmail represents one pre-parsed inbound email event as handed over by
// the email-reception provider.
type InboundEmail struct {
	ID         string
	Recipient  string
	Subject    string
	Senders    []Sender
	HTML       string
	Text       string
	ReceivedAt time.Time
}
