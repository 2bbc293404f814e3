package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the languages with a full catalog. The first entry is
// the fallback.
var Supported = []language.Tag{language.English, language.Vietnamese}

type ctxKey struct{}

// Translator negotiates a request language and renders catalog messages.
type Translator struct {
	matcher language.Matcher
	catalog *catalog.Builder
	known   map[string]struct{}
}

func NewTranslator() *Translator {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	known := make(map[string]struct{})
	for tag, entries := range messages {
		for key, msg := range entries {
			// SetString only fails on malformed tags.
			_ = b.SetString(tag, key, msg)
			known[key] = struct{}{}
		}
	}

	return &Translator{
		matcher: language.NewMatcher(Supported),
		catalog: b,
		known:   known,
	}
}

// Negotiate picks a supported language. An explicit choice (query string,
// then cookie) wins over Accept-Language; unparseable values are skipped.
func (t *Translator) Negotiate(query, cookie, acceptLanguage string) language.Tag {
	for _, explicit := range []string{query, cookie} {
		explicit = strings.TrimSpace(explicit)
		if explicit == "" {
			continue
		}
		tag, err := language.Parse(explicit)
		if err != nil {
			continue
		}
		if _, idx, conf := t.matcher.Match(tag); conf != language.No {
			return Supported[idx]
		}
	}

	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			if _, idx, conf := t.matcher.Match(tags...); conf != language.No {
				return Supported[idx]
			}
		}
	}

	return Supported[0]
}

// Translate renders key in tag, or fallback when the catalog has no entry.
func (t *Translator) Translate(tag language.Tag, key string, fallback string) string {
	if _, ok := t.known[key]; !ok {
		return fallback
	}
	return message.NewPrinter(tag, message.Catalog(t.catalog)).Sprintf(key)
}

func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns the negotiated language, English when unset.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return Supported[0]
}
