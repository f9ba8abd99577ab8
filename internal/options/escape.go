package options

import (
	"strings"

	"choosy/internal/domain"
)

// Backtick is included alongside the usual five so option text can never
// break out of attribute-style quoting in a host document.
var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"`", "&#96;",
)

var entityRestorer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&#96;", "`",
	"&amp;", "&",
)

// EscapeText converts text to its entity-escaped form for rendering
func EscapeText(text string) string {
	return entityReplacer.Replace(text)
}

// UnescapeText restores entity-escaped text to its literal form, for
// surfaces that render plain text rather than markup
func UnescapeText(text string) string {
	return entityRestorer.Replace(text)
}

// DisplayText returns the option's text as it should be rendered: escaped,
// unless the entry carried pre-escaped markup from the host
func DisplayText(opt *domain.Option) string {
	if opt.RawMarkup {
		return opt.Text
	}
	return EscapeText(opt.Text)
}

// DisplayLabel returns the group's label as it should be rendered
func DisplayLabel(group *domain.Group) string {
	return EscapeText(group.Label)
}
