package providers

import "strings"

// splitEmail returns the local part and domain of an address. Malformed
// input yields the whole string as the local part and an empty domain.
func splitEmail(email string) (string, string) {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, ""
	}
	return email[:at], email[at+1:]
}

// mockFirstName derives a deterministic first name from an email local part,
// e.g. "jane.doe" -> "Jane".
func mockFirstName(username string) string {
	if i := strings.Index(username, "."); i > 0 {
		return titleCase(username[:i])
	}
	return titleCase(username)
}

// mockLastName derives a deterministic last name from an email local part,
// e.g. "jane.doe" -> "Doe". Single-token local parts get a placeholder.
func mockLastName(username string) string {
	if i := strings.LastIndex(username, "."); i >= 0 && i < len(username)-1 {
		return titleCase(username[i+1:])
	}
	return "User"
}

// companyNameFromDomain extracts a display label from a domain,
// e.g. "acme.com" -> "acme".
func companyNameFromDomain(domain string) string {
	if i := strings.Index(domain, "."); i > 0 {
		return domain[:i]
	}
	return domain
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
