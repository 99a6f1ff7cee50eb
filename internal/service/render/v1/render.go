// Package render provides functionality for serving stored feeds as RSS 2.0 and
// Atom documents and stored emails as HTML pages.
package render

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/gorilla/feeds"

	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_letterfeed/internal/service/errors"
	feedsService "github.com/danilovkiri/dk_go_letterfeed/internal/service/feeds"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/modelmail"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/render"
)

// SummaryLength bounds the plain-text summary of one feed entry.
const SummaryLength = 500

// Check interface implementation explicitly
var (
	_ render.Renderer = (*Renderer)(nil)
)

// viewTemplate renders one stored email as an HTML page. Subject, sender and
// date are escaped by the template engine, the HTML body is rendered as-is
// since it is trusted from the upstream provider.
const viewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Subject}}</title>
</head>
<body>
<article>
<h1>{{.Subject}}</h1>
<p>From {{.Sender}} on {{.Date}}</p>
{{if .WebViewLink}}<p><a href="{{.WebViewLink}}">View original</a></p>
{{end}}{{if .Body}}{{.Body}}{{else}}<pre>{{.Text}}</pre>{{end}}
</article>
</body>
</html>
`

// viewData holds the template inputs for one email page.
type viewData struct {
	Subject     string
	Sender      string
	Date        string
	WebViewLink string
	Body        template.HTML
	Text        string
}

// Renderer struct defines data structure handling and provides support for adding new implementations.
type Renderer struct {
	keeper    feedsService.Keeper
	serverCfg *config.ServerConfig
	mailCfg   *config.MailConfig
	view      *template.Template
}

// InitRenderer initializes a Renderer object and sets its attributes.
func InitRenderer(k feedsService.Keeper, serverCfg *config.ServerConfig, mailCfg *config.MailConfig) (*Renderer, error) {
	if k == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil feeds keeper was passed to service initializer"}
	}
	if serverCfg == nil || mailCfg == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil configuration was passed to service initializer"}
	}
	view, err := template.New("view").Parse(viewTemplate)
	if err != nil {
		return nil, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	return &Renderer{
		keeper:    k,
		serverCfg: serverCfg,
		mailCfg:   mailCfg,
		view:      view,
	}, nil
}

// RenderFeed serializes one feed as RSS 2.0 or Atom. Both formats carry the
// identical entry set, newest first, only the envelope syntax differs.
func (r *Renderer) RenderFeed(ctx context.Context, feedID string, format string) ([]byte, error) {
	feed, err := r.keeper.GetFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}
	emails, err := r.keeper.ListEmails(ctx, feedID, r.mailCfg.FeedPageSize)
	if err != nil {
		return nil, err
	}
	updated := time.Now()
	if len(emails) > 0 {
		updated = emails[0].Timestamp
	}
	document := &feeds.Feed{
		Title:       feed.Name,
		Link:        &feeds.Link{Href: r.feedURL(feed.ID)},
		Id:          r.feedURL(feed.ID),
		Description: "Newsletters delivered to " + feed.EmailAddress,
		Updated:     updated,
		Created:     feed.CreatedAt,
	}
	for _, email := range emails {
		document.Items = append(document.Items, r.feedItem(feed.ID, email))
	}
	var serialized string
	switch format {
	case render.FormatAtom:
		serialized, err = document.ToAtom()
	case render.FormatRSS:
		serialized, err = document.ToRss()
	default:
		return nil, &serviceErrors.ValidationError{Msg: "unknown feed format " + format}
	}
	if err != nil {
		return nil, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	return []byte(serialized), nil
}

// RenderView serializes one stored email as an HTML page. An absent email or a
// feed mismatch renders nothing.
func (r *Renderer) RenderView(ctx context.Context, feedID string, emailID string) ([]byte, error) {
	email, err := r.keeper.GetEmail(ctx, feedID, emailID)
	if err != nil {
		return nil, err
	}
	data := viewData{
		Subject:     email.Subject,
		Sender:      senderLabel(email),
		Date:        email.Timestamp.Format("January 2, 2006 15:04"),
		WebViewLink: email.WebViewLink,
		Body:        template.HTML(email.HTML),
		Text:        email.Text,
	}
	var buf bytes.Buffer
	if err := r.view.Execute(&buf, data); err != nil {
		return nil, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	return buf.Bytes(), nil
}

// feedItem maps one stored email onto a feed entry.
func (r *Renderer) feedItem(feedID string, email modelmail.StoredEmail) *feeds.Item {
	viewURL := r.viewURL(feedID, email.ID)
	return &feeds.Item{
		Title:       email.Subject,
		Link:        &feeds.Link{Href: viewURL},
		Id:          viewURL,
		Description: summarize(email.Text),
		Content:     email.HTML,
		Author:      &feeds.Author{Name: senderLabel(email)},
		Created:     email.Timestamp,
	}
}

func (r *Renderer) feedURL(feedID string) string {
	return r.serverCfg.BaseURL + "/feeds/" + feedID
}

func (r *Renderer) viewURL(feedID string, emailID string) string {
	return r.serverCfg.BaseURL + "/feeds/" + feedID + "/view/" + emailID
}

// senderLabel returns the sender name falling back to the sender email.
func senderLabel(email modelmail.StoredEmail) string {
	if email.From.Name != "" {
		return email.From.Name
	}
	return email.From.Email
}

// summarize truncates plain text to SummaryLength characters.
func summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= SummaryLength {
		return text
	}
	return string(runes[:SummaryLength])
}
