package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"fleet-inspector/internal/domain"
)

// supported is the closed set of display languages. Spanish first: it is
// the matcher's fallback and the product's primary language.
var supported = []language.Tag{
	language.Spanish,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Localizer resolves checklist item labels for the active language. It only
// affects display strings; verdicts and evidence are never touched by a
// language change.
type Localizer struct {
	mu  sync.RWMutex
	tag language.Tag
}

// New creates a localizer. An unrecognized initial code falls back to the
// default language instead of failing: first launch must always render.
func New(code string) *Localizer {
	tag, err := match(code)
	if err != nil {
		tag = supported[0]
	}
	return &Localizer{tag: tag}
}

// SetLanguage switches the active display language. Codes outside the
// supported set are rejected and the current language is kept.
func (l *Localizer) SetLanguage(code string) error {
	tag, err := match(code)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.tag = tag
	l.mu.Unlock()
	return nil
}

// Language returns the active language code.
func (l *Localizer) Language() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tag.String()
}

// Label returns the display label for a checklist item key in the active
// language. Untranslated keys fall back to the raw key string so a label is
// never blank.
func (l *Localizer) Label(key domain.ItemKey) string {
	l.mu.RLock()
	tag := l.tag
	l.mu.RUnlock()

	table, ok := labels[tag]
	if !ok {
		return string(key)
	}
	if label, ok := table[key]; ok {
		return label
	}
	return string(key)
}

// Supported reports whether a language code resolves against the closed
// supported set.
func Supported(code string) bool {
	_, err := match(code)
	return err == nil
}

// match resolves a BCP-47 code against the supported set.
func match(code string) (language.Tag, error) {
	parsed, err := language.Parse(code)
	if err != nil {
		return language.Tag{}, fmt.Errorf("parse language %q: %w", code, err)
	}

	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return language.Tag{}, fmt.Errorf("unsupported language: %s", code)
	}
	return supported[idx], nil
}
