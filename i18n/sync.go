package i18n

import (
	"strings"

	"seleniumguide/config"
)

// SyncLanguageFromConfig synchronizes language setting from application config
// This should be called when the application starts or when config changes
func SyncLanguageFromConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	SetLanguage(ParseLanguage(cfg.Language))
}

// ParseLanguage converts a config value or Accept-Language header to a
// Language. Anything unrecognized is English.
func ParseLanguage(langStr string) Language {
	s := strings.ToLower(strings.TrimSpace(langStr))
	switch {
	case s == strings.ToLower(string(Chinese)), strings.HasPrefix(s, "zh"):
		return Chinese
	default:
		return English
	}
}

// Code returns the short code used in config files.
func (l Language) Code() string {
	if l == Chinese {
		return "zh"
	}
	return "en"
}
