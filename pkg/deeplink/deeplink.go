// Package deeplink builds the external links the site hands to the visitor's
// device: mailto drafts, telephone calls and WhatsApp chats.
package deeplink

import (
	"strings"
	"unicode"
)

const upperHex = "0123456789ABCDEF"

// EncodeComponent percent-encodes s the way browsers' encodeURIComponent does.
// Spaces become %20, never '+', because mail clients do not decode '+' in
// mailto headers.
func EncodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// Mailto returns mailto:<recipient>?subject=<subject>&body=<body>.
// The recipient is used verbatim; subject and body are encoded.
func Mailto(recipient, subject, body string) string {
	return "mailto:" + recipient +
		"?subject=" + EncodeComponent(subject) +
		"&body=" + EncodeComponent(body)
}

// Tel returns a tel: link, keeping only the leading '+' and digits.
func Tel(number string) string {
	return "tel:" + normalizeNumber(number, true)
}

// WhatsApp returns a wa.me chat link. wa.me expects digits only.
func WhatsApp(number string) string {
	return "https://wa.me/" + normalizeNumber(number, false)
}

func normalizeNumber(number string, keepPlus bool) string {
	number = strings.TrimSpace(number)
	var b strings.Builder
	for i, r := range number {
		if r == '+' && i == 0 && keepPlus {
			b.WriteRune(r)
			continue
		}
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
