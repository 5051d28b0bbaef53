// Package translate provides gettext style lookups for user facing strings.
//
// T translates a plain message id, P translates a message id qualified by a context string the same way
// pgettext does. Unknown ids fall back to the source string so untranslated text is always readable.
package translate

import (
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// contextSeparator joins a context and message id, matching the gettext msgctxt convention.
const contextSeparator = "\x04"

var (
	supported = []language.Tag{language.English, language.German, language.French} //nolint:gochecknoglobals
	matcher   = language.NewMatcher(supported)                                     //nolint:gochecknoglobals
	messages  = newCatalog()                                                       //nolint:gochecknoglobals
	current   atomic.Pointer[message.Printer]                                      //nolint:gochecknoglobals
)

func init() {
	current.Store(message.NewPrinter(language.English, message.Catalog(messages)))
}

func newCatalog() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))

	for tag, entries := range translations {
		for key, msg := range entries {
			if err := builder.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}

	return builder
}

// SetLanguage switches the active language to the closest supported match and returns the tag in use.
func SetLanguage(tag language.Tag) language.Tag {
	_, index, _ := matcher.Match(tag)
	matched := supported[index]

	current.Store(message.NewPrinter(matched, message.Catalog(messages)))

	return matched
}

// Supported lists the languages with a translation catalog.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// T translates msg.
func T(msg string) string {
	return current.Load().Sprintf(message.Key(msg, msg))
}

// P translates msg in the given context.
func P(context string, msg string) string {
	return current.Load().Sprintf(message.Key(contextKey(context, msg), msg))
}

func contextKey(context string, msg string) string {
	return context + contextSeparator + msg
}
