package util

import (
	"net/mail"
	"strings"
)

// NormalizeAddress canonicalizes an address taken from a message header so
// the Gmail importer can dedupe candidate recipients.
// - Accepts RFC 5322 forms like "Name <user+alias@Example.COM>"
// - Lowercases the whole address
// - Strips a +alias suffix from the local part
// Returns empty string when no parsable address is present.
func NormalizeAddress(header string) string {
	addr := parseFirstAddress(header)
	if addr == "" {
		return ""
	}

	email := strings.ToLower(strings.TrimSpace(addr))
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return email
	}
	local := email[:at]
	domain := email[at+1:]

	if plus := strings.IndexByte(local, '+'); plus > -1 {
		local = local[:plus]
	}
	// Dots in the local part stay: removing them would over-merge addresses
	// from providers that treat them as significant.

	return local + "@" + domain
}

// parseFirstAddress extracts the first valid address from a header value,
// tolerating comma-separated lists with unparsable entries mixed in.
func parseFirstAddress(header string) string {
	if header == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(header); err == nil && addr != nil {
		return addr.Address
	}
	for _, part := range strings.Split(header, ",") {
		if addr, err := mail.ParseAddress(strings.TrimSpace(part)); err == nil && addr != nil {
			return addr.Address
		}
	}
	return ""
}
