package domain

import "strings"

// Localized is a bilingual value; required fields must carry both legs.
type Localized struct {
	En string `bson:"en" json:"en"`
	Ar string `bson:"ar" json:"ar"`
}

// Complete reports whether both language legs are present.
func (l Localized) Complete() bool {
	return l.En != "" && l.Ar != ""
}

// Empty reports whether neither leg is present.
func (l Localized) Empty() bool {
	return l.En == "" && l.Ar == ""
}

// Pick returns the leg for the requested language, defaulting to English.
func (l Localized) Pick(lang string) string {
	if lang == "ar" {
		return l.Ar
	}
	return l.En
}

// SplitLines normalizes free text into a list: one entry per line, trimmed,
// blank lines dropped.
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// LocalizedList is a bilingual list of strings (responsibilities,
// requirements).
type LocalizedList struct {
	En []string `bson:"en,omitempty" json:"en,omitempty"`
	Ar []string `bson:"ar,omitempty" json:"ar,omitempty"`
}

// PickList returns the leg for the requested language, defaulting to English.
func (l LocalizedList) PickList(lang string) []string {
	if lang == "ar" {
		return l.Ar
	}
	return l.En
}
