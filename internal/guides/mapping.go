package guides

import (
	"net/url"

	"github.com/brandforge/giftguide/pkg/query"
	"github.com/brandforge/giftguide/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "guides", "g").
	Project("id", "ID").
	Project("company_name", "CompanyName").
	Project("domain", "Domain").
	Project("recipient_email", "RecipientEmail").
	Project("ae_name", "AEName").
	Project("ae_email", "AEEmail").
	Project("ae_phone", "AEPhone").
	Project("logo_found", "LogoFound").
	Project("logo_url", "LogoURL").
	Project("primary_color", "PrimaryColor").
	Project("secondary_color", "SecondaryColor").
	Project("background_color", "BackgroundColor").
	Project("accent_color", "AccentColor").
	Project("page_count", "PageCount").
	Project("size_bytes", "SizeBytes").
	Project("storage_key", "StorageKey").
	Project("delivery_status", "DeliveryStatus").
	Project("delivery_id", "DeliveryID").
	Project("delivery_detail", "DeliveryDetail").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for guide queries. Nil fields
// are ignored. Domain, DeliveryStatus, and LogoFound use exact matching;
// CompanyName and RecipientEmail use case-insensitive contains matching.
type Filters struct {
	CompanyName    *string `json:"company_name,omitempty"`
	Domain         *string `json:"domain,omitempty"`
	RecipientEmail *string `json:"recipient_email,omitempty"`
	DeliveryStatus *string `json:"delivery_status,omitempty"`
	LogoFound      *bool   `json:"logo_found,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("CompanyName", f.CompanyName).
		WhereEquals("Domain", f.Domain).
		WhereContains("RecipientEmail", f.RecipientEmail).
		WhereEquals("DeliveryStatus", f.DeliveryStatus).
		WhereEquals("LogoFound", f.LogoFound)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if cn := values.Get("company_name"); cn != "" {
		f.CompanyName = &cn
	}

	if d := values.Get("domain"); d != "" {
		f.Domain = &d
	}

	if re := values.Get("recipient_email"); re != "" {
		f.RecipientEmail = &re
	}

	if ds := values.Get("delivery_status"); ds != "" {
		f.DeliveryStatus = &ds
	}

	if lf := values.Get("logo_found"); lf == "true" || lf == "false" {
		v := lf == "true"
		f.LogoFound = &v
	}

	return f
}

func scanGuide(s repository.Scanner) (Guide, error) {
	var g Guide
	err := s.Scan(
		&g.ID,
		&g.CompanyName,
		&g.Domain,
		&g.RecipientEmail,
		&g.AEName,
		&g.AEEmail,
		&g.AEPhone,
		&g.LogoFound,
		&g.LogoURL,
		&g.PrimaryColor,
		&g.SecondaryColor,
		&g.BackgroundColor,
		&g.AccentColor,
		&g.PageCount,
		&g.SizeBytes,
		&g.StorageKey,
		&g.DeliveryStatus,
		&g.DeliveryID,
		&g.DeliveryDetail,
		&g.CreatedAt,
	)
	return g, err
}
