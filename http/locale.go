package http

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// LangParam selects the response locale and takes precedence over Accept-Language.
const LangParam = "lang"

var (
	supportedLanguages = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.Spanish,
		language.German,
		language.French,
	}
	languageMatcher = language.NewMatcher(supportedLanguages)
)

// ResolveTag picks the best supported language for the request, or fallback when
// neither the query parameter nor Accept-Language names one.
func ResolveTag(r *http.Request, fallback language.Tag) language.Tag {
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, err := language.Parse(value); err == nil {
			return match(tag)
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return match(tags...)
		}
	}

	return fallback
}

func match(tags ...language.Tag) language.Tag {
	_, index, _ := languageMatcher.Match(tags...)
	return supportedLanguages[index]
}
