// Package guides implements the gift guide domain: generation through the
// pipeline, the audit record of every generated guide, artifact storage, and
// the HTTP surface for generating, browsing, and retrieving guides.
package guides

import (
	"time"

	"github.com/google/uuid"

	"github.com/brandforge/giftguide/internal/pipeline"
)

// Guide is the persisted record of a generated gift guide. The document
// itself lives in blob storage under StorageKey; the row captures the
// request identity, the branding that was applied, and the delivery outcome.
type Guide struct {
	ID              uuid.UUID `json:"id"`
	CompanyName     string    `json:"company_name"`
	Domain          string    `json:"domain"`
	RecipientEmail  string    `json:"recipient_email"`
	AEName          string    `json:"ae_name"`
	AEEmail         string    `json:"ae_email"`
	AEPhone         string    `json:"ae_phone"`
	LogoFound       bool      `json:"logo_found"`
	LogoURL         string    `json:"logo_url"`
	PrimaryColor    string    `json:"primary_color"`
	SecondaryColor  string    `json:"secondary_color"`
	BackgroundColor string    `json:"background_color"`
	AccentColor     *string   `json:"accent_color"`
	PageCount       int       `json:"page_count"`
	SizeBytes       int64     `json:"size_bytes"`
	StorageKey      string    `json:"storage_key"`
	DeliveryStatus  string    `json:"delivery_status"`
	DeliveryID      *string   `json:"delivery_id"`
	DeliveryDetail  *string   `json:"delivery_detail"`
	CreatedAt       time.Time `json:"created_at"`
}

// GenerateRequest is the inbound payload for guide generation.
type GenerateRequest struct {
	CompanyName    string `json:"companyName"`
	Domain         string `json:"domain"`
	RecipientEmail string `json:"recipientEmail"`
	AEName         string `json:"aeName"`
	AEEmail        string `json:"aeEmail"`
	AEPhone        string `json:"aePhone"`
}

// GenerateResponse reports the outcome of a generation request. Success is
// true whenever a document was produced, including runs whose delivery
// failed; Message carries the human-readable summary on success, Error the
// failure text otherwise.
type GenerateResponse struct {
	Success        bool                    `json:"success"`
	Message        string                  `json:"message,omitempty"`
	Error          string                  `json:"error,omitempty"`
	CompanyName    string                  `json:"companyName,omitempty"`
	RecipientEmail string                  `json:"recipientEmail,omitempty"`
	Delivery       pipeline.DeliveryStatus `json:"delivery,omitempty"`
	Guide          *Guide                  `json:"guide,omitempty"`
	HTMLPreview    string                  `json:"htmlPreview,omitempty"`
	Stack          string                  `json:"stack,omitempty"`
}

// Outcome pairs the pipeline result with the persisted record. Record is nil
// when persistence degraded; the generation itself still succeeded.
type Outcome struct {
	Result *pipeline.Result
	Record *Guide
}
