// Package feeds provides functionality for maintaining feeds, their emails and
// their relational indices inside the key-value storage.
package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/speps/go-hashids/v2"

	"github.com/danilovkiri/dk_go_letterfeed/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_letterfeed/internal/service/errors"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/feeds"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/modelmail"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_letterfeed/internal/storage/errors"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage/modelstorage"
)

const SaltKey = "Some Hashing Key"

// MinLength sets the feed identifier length, which doubles as the local part of
// the feed's inbound email address.
const MinLength = 10

// Alphabet restricts feed identifiers to URL-safe characters valid in an email
// local part.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Check interface implementation explicitly
var (
	_ feeds.Keeper = (*Keeper)(nil)
)

// Keeper struct defines data structure handling and provides support for adding new implementations.
type Keeper struct {
	kvStorage storage.KVStorage
	mailCfg   *config.MailConfig
	hashID    *hashids.HashID
}

// InitKeeper initializes a Keeper object and sets its attributes.
func InitKeeper(s storage.KVStorage, mailCfg *config.MailConfig) (*Keeper, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if mailCfg == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil mail configuration was passed to service initializer"}
	}
	hd := hashids.NewData()
	hd.Salt = SaltKey
	hd.MinLength = MinLength
	hd.Alphabet = Alphabet
	hashID, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	return &Keeper{
		kvStorage: s,
		mailCfg:   mailCfg,
		hashID:    hashID,
	}, nil
}

// CreateFeed generates a fresh feed id, derives its email address, writes the
// feed record and an empty email index, and appends the id to the user's feed list.
func (k *Keeper) CreateFeed(ctx context.Context, userID string, name string) (modelmail.Feed, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return modelmail.Feed{}, &serviceErrors.ValidationError{Msg: "feed name must not be empty"}
	}
	feedID, err := k.generateFeedID()
	if err != nil {
		return modelmail.Feed{}, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	record := modelstorage.FeedRecord{
		ID:           feedID,
		UserID:       userID,
		Name:         name,
		EmailAddress: feedID + "@" + k.mailCfg.ServiceDomain,
		CreatedAt:    time.Now().Unix(),
	}
	if err := k.putJSON(ctx, keyFeed(feedID), record); err != nil {
		return modelmail.Feed{}, err
	}
	if err := k.putJSON(ctx, keyFeedEmails(feedID), []string{}); err != nil {
		return modelmail.Feed{}, err
	}
	feedIDs, err := k.getIDList(ctx, keyUserFeeds(userID))
	if err != nil {
		return modelmail.Feed{}, err
	}
	feedIDs = append(feedIDs, feedID)
	if err := k.putJSON(ctx, keyUserFeeds(userID), feedIDs); err != nil {
		return modelmail.Feed{}, err
	}
	log.Println("Creating feed:", feedID, "for user", userID)
	return feedFromRecord(record), nil
}

// ListFeeds returns the user's feeds in creation order, oldest first.
func (k *Keeper) ListFeeds(ctx context.Context, userID string) ([]modelmail.Feed, error) {
	feedIDs, err := k.getIDList(ctx, keyUserFeeds(userID))
	if err != nil {
		return nil, err
	}
	result := make([]modelmail.Feed, 0, len(feedIDs))
	for _, feedID := range feedIDs {
		feed, err := k.GetFeed(ctx, feedID)
		if err != nil {
			var notFoundError *serviceErrors.NotFoundError
			// a feed deleted mid-cascade may still be listed, skip it
			if errors.As(err, &notFoundError) {
				continue
			}
			return nil, err
		}
		result = append(result, feed)
	}
	return result, nil
}

// GetFeed returns one feed by its id.
func (k *Keeper) GetFeed(ctx context.Context, feedID string) (modelmail.Feed, error) {
	value, err := k.kvStorage.Get(ctx, keyFeed(feedID))
	if err != nil {
		var notFoundError *storageErrors.NotFoundError
		if errors.As(err, &notFoundError) {
			return modelmail.Feed{}, &serviceErrors.NotFoundError{ID: feedID}
		}
		return modelmail.Feed{}, err
	}
	var record modelstorage.FeedRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return modelmail.Feed{}, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	return feedFromRecord(record), nil
}

// DeleteFeed removes a feed owned by requestingUserID with all of its emails.
// The cascade is an ordered sequence of independent writes: emails, then the
// index, then the feed record, then the user's list entry. A failure mid-cascade
// leaves orphaned email records rather than a dangling feed pointer.
func (k *Keeper) DeleteFeed(ctx context.Context, feedID string, requestingUserID string) error {
	feed, err := k.GetFeed(ctx, feedID)
	if err != nil {
		return err
	}
	if feed.UserID != requestingUserID {
		return &serviceErrors.AuthorizationError{Msg: "feed " + feedID + " is not owned by user " + requestingUserID}
	}
	emailIDs, err := k.getIDList(ctx, keyFeedEmails(feedID))
	if err != nil {
		return err
	}
	for _, emailID := range emailIDs {
		if err := k.kvStorage.Delete(ctx, keyEmail(emailID)); err != nil {
			return err
		}
	}
	if err := k.kvStorage.Delete(ctx, keyFeedEmails(feedID)); err != nil {
		return err
	}
	if err := k.kvStorage.Delete(ctx, keyFeed(feedID)); err != nil {
		return err
	}
	feedIDs, err := k.getIDList(ctx, keyUserFeeds(requestingUserID))
	if err != nil {
		return err
	}
	remaining := make([]string, 0, len(feedIDs))
	for _, id := range feedIDs {
		if id != feedID {
			remaining = append(remaining, id)
		}
	}
	if err := k.putJSON(ctx, keyUserFeeds(requestingUserID), remaining); err != nil {
		return err
	}
	log.Println("Deleting feed:", feedID, "with", len(emailIDs), "emails")
	return nil
}

// AppendEmail writes the email record and prepends its id to the feed's index.
// The index read-then-write is not atomic against the underlying storage,
// concurrent appends for one feed may lose a prepend under last-write-wins.
// A re-delivered email id overwrites the record and double-inserts the index entry.
func (k *Keeper) AppendEmail(ctx context.Context, feedID string, email modelmail.StoredEmail) error {
	if _, err := k.GetFeed(ctx, feedID); err != nil {
		return err
	}
	record := modelstorage.EmailRecord{
		ID:          email.ID,
		FeedID:      feedID,
		Subject:     email.Subject,
		FromName:    email.From.Name,
		FromEmail:   email.From.Email,
		HTML:        email.HTML,
		Text:        email.Text,
		Timestamp:   email.Timestamp.Unix(),
		WebViewLink: email.WebViewLink,
	}
	if err := k.putJSON(ctx, keyEmail(email.ID), record); err != nil {
		return err
	}
	emailIDs, err := k.getIDList(ctx, keyFeedEmails(feedID))
	if err != nil {
		return err
	}
	emailIDs = append([]string{email.ID}, emailIDs...)
	if err := k.putJSON(ctx, keyFeedEmails(feedID), emailIDs); err != nil {
		return err
	}
	log.Println("Appending email:", email.ID, "to feed", feedID)
	return nil
}

// ListEmails returns up to limit emails of one feed, newest first. Records whose
// feedId does not match the index owner are skipped as misrouted.
func (k *Keeper) ListEmails(ctx context.Context, feedID string, limit int) ([]modelmail.StoredEmail, error) {
	if limit <= 0 || limit > k.mailCfg.FeedPageSize {
		limit = k.mailCfg.FeedPageSize
	}
	emailIDs, err := k.getIDList(ctx, keyFeedEmails(feedID))
	if err != nil {
		return nil, err
	}
	result := make([]modelmail.StoredEmail, 0, limit)
	for _, emailID := range emailIDs {
		if len(result) == limit {
			break
		}
		email, err := k.GetEmail(ctx, feedID, emailID)
		if err != nil {
			var notFoundError *serviceErrors.NotFoundError
			if errors.As(err, &notFoundError) {
				continue
			}
			return nil, err
		}
		result = append(result, email)
	}
	return result, nil
}

// GetEmail returns one stored email, requiring its feedId to match the
// requested feed as a guard against key-space misrouting.
func (k *Keeper) GetEmail(ctx context.Context, feedID string, emailID string) (modelmail.StoredEmail, error) {
	value, err := k.kvStorage.Get(ctx, keyEmail(emailID))
	if err != nil {
		var notFoundError *storageErrors.NotFoundError
		if errors.As(err, &notFoundError) {
			return modelmail.StoredEmail{}, &serviceErrors.NotFoundError{ID: emailID}
		}
		return modelmail.StoredEmail{}, err
	}
	var record modelstorage.EmailRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return modelmail.StoredEmail{}, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	if record.FeedID != feedID {
		return modelmail.StoredEmail{}, &serviceErrors.NotFoundError{ID: emailID}
	}
	return emailFromRecord(record), nil
}

// PingDB verifies the underlying storage connection.
func (k *Keeper) PingDB() error {
	return k.kvStorage.PingDB()
}

// generateFeedID generates and returns a short URL-safe unique identifier.
func (k *Keeper) generateFeedID() (string, error) {
	now := time.Now().UnixNano()
	return k.hashID.Encode([]int{int(now), rand.Intn(1 << 30)})
}

// getIDList reads an id list under key, an absent key reads as an empty list.
func (k *Keeper) getIDList(ctx context.Context, key string) ([]string, error) {
	value, err := k.kvStorage.Get(ctx, key)
	if err != nil {
		var notFoundError *storageErrors.NotFoundError
		if errors.As(err, &notFoundError) {
			return []string{}, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(value, &ids); err != nil {
		return nil, &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	return ids, nil
}

// putJSON marshals v and stores it under key.
func (k *Keeper) putJSON(ctx context.Context, key string, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return &serviceErrors.InternalError{Msg: err.Error(), Err: err}
	}
	return k.kvStorage.Put(ctx, key, value)
}

func feedFromRecord(record modelstorage.FeedRecord) modelmail.Feed {
	return modelmail.Feed{
		ID:           record.ID,
		UserID:       record.UserID,
		Name:         record.Name,
		EmailAddress: record.EmailAddress,
		CreatedAt:    time.Unix(record.CreatedAt, 0),
	}
}

func emailFromRecord(record modelstorage.EmailRecord) modelmail.StoredEmail {
	return modelmail.StoredEmail{
		ID:      record.ID,
		FeedID:  record.FeedID,
		Subject: record.Subject,
		From: modelmail.Sender{
			Name:  record.FromName,
			Email: record.FromEmail,
		},
		HTML:        record.HTML,
		Text:        record.Text,
		Timestamp:   time.Unix(record.Timestamp, 0),
		WebViewLink: record.WebViewLink,
	}
}

func keyUserFeeds(userID string) string {
	return "user:" + userID + ":feeds"
}

func keyFeed(feedID string) string {
	return "feed:" + feedID
}

func keyFeedEmails(feedID string) string {
	return "feed:" + feedID + ":emails"
}

func keyEmail(emailID string) string {
	return "email:" + emailID
}
