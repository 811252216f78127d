package protocol

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators.
func FormatCount(n uint32) string { return numbers.Sprintf("%d", n) }
