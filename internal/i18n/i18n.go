// Package i18n holds the UI string tables and picks a locale per request.
package i18n

import (
	"regexp"
	"sort"

	"golang.org/x/text/language"
)

// Catalog resolves message keys for the supported locales.
type Catalog struct {
	fallback string
	tags     []language.Tag
	matcher  language.Matcher
}

// New returns a Catalog whose fallback locale is def. An unsupported def falls back to "ru".
func New(def string) *Catalog {
	if _, ok := messages[def]; !ok {
		def = "ru"
	}
	// The fallback must be first: the matcher returns it when nothing matches.
	locales := []string{def}
	for l := range messages {
		if l != def {
			locales = append(locales, l)
		}
	}
	sort.Strings(locales[1:])

	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = language.Make(l)
	}
	return &Catalog{fallback: def, tags: tags, matcher: language.NewMatcher(tags)}
}

// Default returns the fallback locale.
func (c *Catalog) Default() string { return c.fallback }

// Locales lists the supported locales, fallback first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}

// Supported reports whether locale has its own table.
func (c *Catalog) Supported(locale string) bool {
	_, ok := messages[locale]
	return ok
}

// Lookup returns the supported locale for a language tag such as "en-GB".
func (c *Catalog) Lookup(tag string) (string, bool) {
	if tag == "" {
		return "", false
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", false
	}
	base, _ := t.Base()
	if !c.Supported(base.String()) {
		return "", false
	}
	return base.String(), true
}

// Negotiate picks a locale. An explicit preference (cookie or query) wins when
// supported; otherwise the Accept-Language header is matched.
func (c *Catalog) Negotiate(acceptLanguage, preferred string) string {
	if l, ok := c.Lookup(preferred); ok {
		return l
	}
	if acceptLanguage == "" {
		return c.fallback
	}
	// ParseAcceptLanguage errors are ignored; MatchStrings copes with junk.
	_, idx := language.MatchStrings(c.matcher, acceptLanguage)
	return c.tags[idx].String()
}

var placeholder = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}|\{(\w+)\}`)

// T returns the message for key in locale, interpolating {name} and
// {{ name }} placeholders from args. Missing keys fall back to the default
// locale and then to the key itself.
func (c *Catalog) T(locale, key string, args map[string]string) string {
	msg, ok := messages[locale][key]
	if !ok {
		if msg, ok = messages[c.fallback][key]; !ok {
			return key
		}
	}
	if len(args) == 0 {
		return msg
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		if v, ok := args[name]; ok {
			return v
		}
		return m
	})
}

// Messages returns a copy of the table for locale, falling back to the default locale.
func (c *Catalog) Messages(locale string) map[string]string {
	table, ok := messages[locale]
	if !ok {
		table = messages[c.fallback]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}
