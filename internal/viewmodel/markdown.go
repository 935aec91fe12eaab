package viewmodel

import (
	"regexp"
	"strings"
)

var markdownRules = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`(?m)^#+\s+`), ""},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "$1"},
	{regexp.MustCompile(`__(.*?)__`), "$1"},
	{regexp.MustCompile(`\*(.*?)\*`), "$1"},
	{regexp.MustCompile(`_(.*?)_`), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile("`{1,3}[^`]+`{1,3}"), ""},
}

// StripMarkdown reduces inline markdown to plain text on a single line.
func StripMarkdown(text string) string {
	if text == "" {
		return ""
	}
	for _, rule := range markdownRules {
		text = rule.pattern.ReplaceAllString(text, rule.replace)
	}
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}
