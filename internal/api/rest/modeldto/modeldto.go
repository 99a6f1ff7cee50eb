// Package modeldto provides locally used types and their structure for data transfer objects.
package modeldto

type (
	// InboundAddress is one parsed sender address of an inbound email event.
	InboundAddress struct {
		Address string `json:"address"`
		Name    string `json:"name,omitempty"`
	}

	// InboundFrom is the parsed sender block of an inbound email event.
	InboundFrom struct {
		Text      string           `json:"text"`
		Addresses []InboundAddress `json:"addresses"`
	}

	// InboundParsedData carries the pre-parsed email bodies.
	InboundParsedData struct {
		TextBody string `json:"textBody"`
		HTMLBody string `json:"htmlBody"`
	}

	// InboundEmail is the email object of an inbound webhook event.
	InboundEmail struct {
		ID         string            `json:"id"`
		From       InboundFrom       `json:"from"`
		To         string            `json:"to"`
		Recipient  string            `json:"recipient"`
		Subject    string            `json:"subject"`
		ReceivedAt string            `json:"receivedAt"`
		ParsedData InboundParsedData `json:"parsedData"`
	}

	// InboundEvent is the body of an inbound webhook request.
	InboundEvent struct {
		Event     string       `json:"event"`
		Timestamp int64        `json:"timestamp"`
		Email     InboundEmail `json:"email"`
	}

	// ResponseWebhook acknowledges one stored inbound email.
	ResponseWebhook struct {
		Success bool   `json:"success"`
		EmailID string `json:"emailId"`
	}

	// RequestUser carries account credentials for registration and login.
	RequestUser struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// ResponseUser describes one account.
	ResponseUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	// RequestFeed carries parameters for feed creation.
	RequestFeed struct {
		Name string `json:"name"`
	}

	// ResponseFeed describes one feed.
	ResponseFeed struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		EmailAddress string `json:"emailAddress"`
		CreatedAt    int64  `json:"createdAt"`
	}
)
