package identity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/brandforge/giftguide/internal/identity"
)

func validRaw() identity.RawRequest {
	return identity.RawRequest{
		CompanyName:    "Nike",
		Domain:         "nike.com",
		RecipientEmail: "test@example.com",
		AEName:         "Jordan Reyes",
		AEEmail:        "jordan@brandforge.io",
		AEPhone:        "+1 555 0100",
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts a well-formed request", func(t *testing.T) {
		req, err := identity.Validate(validRaw())
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if req.CompanyName != "Nike" || req.Domain != "nike.com" {
			t.Errorf("request = %+v", req)
		}
		if req.Contact.Name != "Jordan Reyes" {
			t.Errorf("contact name = %q", req.Contact.Name)
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		raw := validRaw()
		raw.CompanyName = "  Nike  "
		req, err := identity.Validate(raw)
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if req.CompanyName != "Nike" {
			t.Errorf("companyName = %q, want trimmed", req.CompanyName)
		}
	})

	t.Run("rejects invalid domain", func(t *testing.T) {
		raw := validRaw()
		raw.Domain = "not a domain"
		_, err := identity.Validate(raw)
		if !errors.Is(err, identity.ErrValidation) {
			t.Fatalf("error = %v, want ErrValidation", err)
		}
		if !strings.Contains(err.Error(), "domain") {
			t.Errorf("error = %q, want mention of domain", err.Error())
		}
	})

	t.Run("rejects invalid recipient email", func(t *testing.T) {
		raw := validRaw()
		raw.RecipientEmail = "not-an-email"
		_, err := identity.Validate(raw)
		if !errors.Is(err, identity.ErrValidation) {
			t.Fatalf("error = %v, want ErrValidation", err)
		}
		if !strings.Contains(err.Error(), "recipientEmail") {
			t.Errorf("error = %q, want mention of recipientEmail", err.Error())
		}
	})

	t.Run("fails fast on first offending field", func(t *testing.T) {
		raw := validRaw()
		raw.CompanyName = "   "
		raw.Domain = "also invalid"
		_, err := identity.Validate(raw)
		if err == nil {
			t.Fatal("expected error")
		}
		var fieldErr *identity.FieldError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("error = %T, want *FieldError", err)
		}
		if fieldErr.Field != "companyName" {
			t.Errorf("field = %s, want companyName (checked first)", fieldErr.Field)
		}
	})

	t.Run("every field is required", func(t *testing.T) {
		fields := []struct {
			name  string
			clear func(*identity.RawRequest)
		}{
			{"companyName", func(r *identity.RawRequest) { r.CompanyName = "" }},
			{"domain", func(r *identity.RawRequest) { r.Domain = "" }},
			{"recipientEmail", func(r *identity.RawRequest) { r.RecipientEmail = "" }},
			{"aeName", func(r *identity.RawRequest) { r.AEName = "" }},
			{"aeEmail", func(r *identity.RawRequest) { r.AEEmail = "" }},
			{"aePhone", func(r *identity.RawRequest) { r.AEPhone = "" }},
		}

		for _, tc := range fields {
			t.Run(tc.name, func(t *testing.T) {
				raw := validRaw()
				tc.clear(&raw)
				_, err := identity.Validate(raw)
				var fieldErr *identity.FieldError
				if !errors.As(err, &fieldErr) {
					t.Fatalf("error = %v, want *FieldError", err)
				}
				if fieldErr.Field != tc.name {
					t.Errorf("field = %s, want %s", fieldErr.Field, tc.name)
				}
			})
		}
	})

	t.Run("domain shapes", func(t *testing.T) {
		accept := []string{"nike.com", "a.co", "big-brand.io", "x2.dev"}
		reject := []string{"-nike.com", "nike-.com", "nike", "nike.c", ".com", "nike..com"}

		for _, d := range accept {
			raw := validRaw()
			raw.Domain = d
			if _, err := identity.Validate(raw); err != nil {
				t.Errorf("domain %q rejected: %v", d, err)
			}
		}
		for _, d := range reject {
			raw := validRaw()
			raw.Domain = d
			if _, err := identity.Validate(raw); err == nil {
				t.Errorf("domain %q accepted, want rejection", d)
			}
		}
	})

	t.Run("contact email must match email shape", func(t *testing.T) {
		raw := validRaw()
		raw.AEEmail = "jordan at brandforge"
		var fieldErr *identity.FieldError
		_, err := identity.Validate(raw)
		if !errors.As(err, &fieldErr) || fieldErr.Field != "aeEmail" {
			t.Errorf("error = %v, want aeEmail FieldError", err)
		}
	})
}
