// Package pattern provides functionality for locating a newsletter's canonical
// "read online" link inside an HTML body.
package pattern

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	serviceErrors "github.com/danilovkiri/dk_go_letterfeed/internal/service/errors"
	"github.com/danilovkiri/dk_go_letterfeed/internal/service/pattern"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage"
	"github.com/danilovkiri/dk_go_letterfeed/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ pattern.Extractor = (*Matcher)(nil)
)

// SourceSuggested marks patterns appended to the pattern table by a Suggester.
const SourceSuggested = "suggested"

// defaultHeuristics lists the built-in anchor text heuristics, case-insensitive
// and tolerant of a bounded number of intervening words.
var defaultHeuristics = []string{
	`(?i)\bview\b(?:\s+\S+){0,4}?\s+(?:in|this)(?:\s+\S+){0,2}?\s+browser\b`,
	`(?i)\bview\b(?:\s+\S+){0,4}?\s+online\b`,
	`(?i)\bweb\b(?:\s+\S+){0,3}?\s+version\b`,
	`(?i)\bread\b(?:\s+\S+){0,4}?\s+(?:in|on)(?:\s+\S+){0,2}?\s+browser\b`,
	`(?i)\bhaving\s+trouble(?:\s+\S+){0,4}?\s+viewing\b`,
	`(?i)\bclick\s+here(?:\s+\S+){0,4}?\s+view\b`,
	`(?i)\bview\b(?:\s+\S+){0,3}?\s+email(?:\s+\S+){0,3}?\s+(?:in|on)(?:\s+\S+){0,2}?\s+browser\b`,
}

// anchor holds one anchor element in document order.
type anchor struct {
	text string
	href string
}

// Matcher struct defines data structure handling and provides support for adding new implementations.
type Matcher struct {
	kvStorage storage.KVStorage
	suggester pattern.Suggester
	defaults  []*regexp.Regexp
}

// InitMatcher initializes a Matcher object and sets its attributes, suggester may be nil.
func InitMatcher(s storage.KVStorage, sug pattern.Suggester) (*Matcher, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	defaults := make([]*regexp.Regexp, 0, len(defaultHeuristics))
	for _, expr := range defaultHeuristics {
		defaults = append(defaults, regexp.MustCompile(expr))
	}
	return &Matcher{
		kvStorage: s,
		suggester: sug,
		defaults:  defaults,
	}, nil
}

// Extract scans html for the first anchor in document order whose visible text
// matches any known pattern and whose href carries an absolute http/https
// scheme. Per-feed stored patterns are tried before global stored patterns,
// then built-in heuristics. Fails closed on malformed HTML or no match.
func (m *Matcher) Extract(ctx context.Context, html string, feedID string) (link string, found bool) {
	anchors := collectAnchors(html)
	if len(anchors) == 0 {
		return "", false
	}
	feedPatterns := m.loadPatterns(ctx, keyFeedPatterns(feedID))
	globalPatterns := m.loadPatterns(ctx, keyGlobalPatterns())
	for _, a := range anchors {
		if !isAbsoluteHTTP(a.href) {
			continue
		}
		text := normalizeText(a.text)
		if hit := matchStored(feedPatterns, text); hit != nil {
			m.bumpSuccess(ctx, keyFeedPatterns(feedID), hit.Regex)
			return a.href, true
		}
		if hit := matchStored(globalPatterns, text); hit != nil {
			m.bumpSuccess(ctx, keyGlobalPatterns(), hit.Regex)
			return a.href, true
		}
		for _, re := range m.defaults {
			if re.MatchString(text) {
				return a.href, true
			}
		}
	}
	// fixed heuristics missed, consult the suggester if one is wired
	if m.suggester == nil {
		return "", false
	}
	expr, ok := m.suggester.Suggest(html)
	if !ok {
		return "", false
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		log.Println("Suggested pattern rejected:", err)
		return "", false
	}
	for _, a := range anchors {
		if !isAbsoluteHTTP(a.href) {
			continue
		}
		if re.MatchString(normalizeText(a.text)) {
			// learned patterns are persisted off the matching hot path,
			// a failed write costs only a future re-suggestion
			if err := m.Learn(ctx, expr, feedID, SourceSuggested); err != nil {
				log.Println("Learning pattern:", err)
			}
			return a.href, true
		}
	}
	return "", false
}

// Learn appends a pattern to the per-feed table when feedID is set, otherwise
// to the global table.
func (m *Matcher) Learn(ctx context.Context, regex string, feedID string, source string) error {
	if _, err := regexp.Compile(regex); err != nil {
		return &serviceErrors.ValidationError{Msg: err.Error()}
	}
	key := keyGlobalPatterns()
	if feedID != "" {
		key = keyFeedPatterns(feedID)
	}
	records := m.loadRecords(ctx, key)
	records = append(records, modelstorage.PatternRecord{
		Regex:     regex,
		Source:    source,
		FeedID:    feedID,
		CreatedAt: time.Now().Unix(),
	})
	return m.storeRecords(ctx, key, records)
}

// storedPattern pairs a compiled regex with its storage record.
type storedPattern struct {
	re     *regexp.Regexp
	record modelstorage.PatternRecord
}

// loadPatterns reads and compiles a pattern table, invalid entries are skipped.
func (m *Matcher) loadPatterns(ctx context.Context, key string) []storedPattern {
	records := m.loadRecords(ctx, key)
	patterns := make([]storedPattern, 0, len(records))
	for _, record := range records {
		re, err := regexp.Compile(record.Regex)
		if err != nil {
			log.Println("Skipping stored pattern:", err)
			continue
		}
		patterns = append(patterns, storedPattern{re: re, record: record})
	}
	return patterns
}

// loadRecords reads a raw pattern table, absent or corrupt tables read as empty.
func (m *Matcher) loadRecords(ctx context.Context, key string) []modelstorage.PatternRecord {
	value, err := m.kvStorage.Get(ctx, key)
	if err != nil {
		return nil
	}
	var records []modelstorage.PatternRecord
	if err := json.Unmarshal(value, &records); err != nil {
		log.Println("Reading pattern table:", err)
		return nil
	}
	return records
}

// storeRecords writes a pattern table back to storage.
func (m *Matcher) storeRecords(ctx context.Context, key string, records []modelstorage.PatternRecord) error {
	value, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return m.kvStorage.Put(ctx, key, value)
}

// bumpSuccess increments successCount of one stored pattern, best effort.
func (m *Matcher) bumpSuccess(ctx context.Context, key string, regex string) {
	records := m.loadRecords(ctx, key)
	for i := range records {
		if records[i].Regex == regex {
			records[i].SuccessCount++
			break
		}
	}
	if err := m.storeRecords(ctx, key, records); err != nil {
		log.Println("Updating pattern success count:", err)
	}
}

// matchStored returns the first stored pattern matching text, nil otherwise.
func matchStored(patterns []storedPattern, text string) *modelstorage.PatternRecord {
	for i := range patterns {
		if patterns[i].re.MatchString(text) {
			return &patterns[i].record
		}
	}
	return nil
}

// collectAnchors returns all anchor elements of html in document order. Parsing
// is tolerant, malformed HTML yields whatever anchors survive parsing.
func collectAnchors(html string) []anchor {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var anchors []anchor
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		anchors = append(anchors, anchor{text: sel.Text(), href: href})
	})
	return anchors
}

// normalizeText collapses anchor text whitespace for pattern matching.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// isAbsoluteHTTP reports whether href parses to an absolute http/https URL.
func isAbsoluteHTTP(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func keyGlobalPatterns() string {
	return "patterns:global"
}

func keyFeedPatterns(feedID string) string {
	return "patterns:feed:" + feedID
}
