package models

import "strings"

// Locale describes the wiki edition queried and how its titles are cleaned
type Locale struct {
	Code             string   // language code, e.g. "pt"
	Project          string   // pageviews project identifier, e.g. "pt.wikipedia"
	URLPrefix        string   // canonical article URL prefix
	NamespaceMarkers []string // title substrings identifying internal/meta pages
}

// SupportedLanguage is the only language this tool can analyze
const SupportedLanguage = "pt"

// SupportedLocale returns the Portuguese Wikipedia locale
func SupportedLocale() Locale {
	return Locale{
		Code:      SupportedLanguage,
		Project:   "pt.wikipedia",
		URLPrefix: "https://pt.wikipedia.org/wiki/",
		NamespaceMarkers: []string{
			"Wikipédia:",
			"Especial:Pesquisar",
		},
	}
}

// ResolveLocale maps a requested language code to a locale.
// Only the exact code "pt" matches; anything else ("PT", "por", "pt-BR")
// resolves to it anyway and overridden is reported as true.
func ResolveLocale(requested string) (loc Locale, overridden bool) {
	return SupportedLocale(), requested != SupportedLanguage
}

// IsNamespacePage reports whether a cleaned title belongs to an internal/meta namespace
func (l Locale) IsNamespacePage(title string) bool {
	for _, marker := range l.NamespaceMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// ArticleURL builds the canonical URL for a title, raw or cleaned
func (l Locale) ArticleURL(title string) string {
	return l.URLPrefix + strings.ReplaceAll(title, " ", "_")
}
