package identity

import (
	"regexp"
	"strings"
)

var (
	// Permissive RFC-like shape: local part, @, host, dot, non-space tail.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s]+$`)
	// Registrable label (alphanumeric edges, interior hyphens) plus a
	// top-level label of at least two letters.
	domainPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?\.[A-Za-z]{2,}$`)
)

type fieldRule struct {
	name  string
	value string
	check func(string) (string, bool)
}

func formatEmail(v string) (string, bool) {
	return "must be a valid email address", emailPattern.MatchString(v)
}

func formatDomain(v string) (string, bool) {
	return "must be a valid domain", domainPattern.MatchString(v)
}

// Validate checks the raw request field by field in a fixed order and fails
// fast on the first violation. Every field must be non-blank after trimming;
// email and domain fields must additionally match their format shapes.
// No side effects; the returned Request carries trimmed values.
func Validate(raw RawRequest) (*Request, error) {
	rules := []fieldRule{
		{"companyName", raw.CompanyName, nil},
		{"domain", raw.Domain, formatDomain},
		{"recipientEmail", raw.RecipientEmail, formatEmail},
		{"aeName", raw.AEName, nil},
		{"aeEmail", raw.AEEmail, formatEmail},
		{"aePhone", raw.AEPhone, nil},
	}

	trimmed := make(map[string]string, len(rules))
	for _, rule := range rules {
		value := strings.TrimSpace(rule.value)
		if value == "" {
			return nil, &FieldError{Field: rule.name, Reason: "is required"}
		}
		if rule.check != nil {
			if reason, ok := rule.check(value); !ok {
				return nil, &FieldError{Field: rule.name, Reason: reason}
			}
		}
		trimmed[rule.name] = value
	}

	return &Request{
		CompanyName:    trimmed["companyName"],
		Domain:         trimmed["domain"],
		RecipientEmail: trimmed["recipientEmail"],
		Contact: Contact{
			Name:  trimmed["aeName"],
			Email: trimmed["aeEmail"],
			Phone: trimmed["aePhone"],
		},
	}, nil
}
