package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language selects one of the label bundles
type Language string

const (
	German  Language = "de"
	English Language = "en"
)

// Default is used when no tag matches
const Default = German

var (
	supported = []language.Tag{language.German, language.English}
	matcher   = language.NewMatcher(supported)
)

// ParseLanguage maps a BCP 47 tag or POSIX locale name such as "en_US.UTF-8"
// to a supported language. Unknown or empty input yields Default.
func ParseLanguage(s string) Language {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || strings.EqualFold(s, "C") || strings.EqualFold(s, "POSIX") {
		return Default
	}

	tag, err := language.Parse(s)
	if err != nil {
		return Default
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default
	}
	if supported[index] == language.English {
		return English
	}
	return German
}

// IsSupported reports whether s names a supported language exactly
func IsSupported(s string) bool {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case German, English:
		return true
	}
	return false
}

// Tag returns the language tag of l
func (l Language) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.German
}

// String returns the two-letter code
func (l Language) String() string {
	return string(l)
}
