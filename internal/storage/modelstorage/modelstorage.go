// Package modelstorage provides locally used types and their structure for storage objects.
package modelstorage

// KVStorageEntry defines one record of the append-only file storage log. A nil
// Value marks a key deletion so that restore replays removals as well.
type KVStorageEntry struct {
	Key   string `json:"key"`
	Value []byte `json:"value"`
}

// UserRecord defines the user:{id} value layout.
type UserRecord struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	CreatedAt    int64  `json:"createdAt"`
}

// FeedRecord defines the feed:{id} value layout.
type FeedRecord struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
	CreatedAt    int64  `json:"createdAt"`
}

// EmailRecord defines the email:{id} value layout.
type EmailRecord struct {
	ID          string `json:"id"`
	FeedID      string `json:"feedId"`
	Subject     string `json:"subject"`
	FromName    string `json:"fromName"`
	FromEmail   string `json:"fromEmail"`
	HTML        string `json:"html"`
	Text        string `json:"text"`
	Timestamp   int64  `json:"timestamp"`
	WebViewLink string `json:"webViewLink,omitempty"`
}

// PatternRecord defines one element of the patterns:global and patterns:feed:{id} value layouts.
type PatternRecord struct {
	Regex        string `json:"regex"`
	Source       string `json:"source"`
	FeedID       string `json:"feedId,omitempty"`
	SuccessCount int    `json:"successCount"`
	CreatedAt    int64  `json:"createdAt"`
}
