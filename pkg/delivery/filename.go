package delivery

import (
	"regexp"
	"strings"
)

const filenameSuffix = "-Gift-Guide"

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\- ]`)
	whitespace  = regexp.MustCompile(`\s+`)
	hyphenRuns  = regexp.MustCompile(`-+`)
)

// AttachmentFilename derives a filesystem-safe attachment name from a company
// name: punctuation stripped, whitespace collapsed to single hyphens, hyphen
// runs collapsed, suffixed "-Gift-Guide". The extension is left to the caller.
func AttachmentFilename(companyName string) string {
	name := unsafeChars.ReplaceAllString(companyName, "")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "-")
	name = hyphenRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "Company"
	}
	return name + filenameSuffix
}
