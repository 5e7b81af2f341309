// Package pipeline orchestrates guide generation end to end: validation,
// branding resolution, composition, rendering, and delivery. The pipeline
// embodies the degradation policy: a missing logo or failed palette never
// stops generation, and a failed delivery still yields a finished document.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/brandforge/giftguide/internal/branding"
	"github.com/brandforge/giftguide/internal/compose"
	"github.com/brandforge/giftguide/internal/identity"
	"github.com/brandforge/giftguide/pkg/delivery"
	"github.com/brandforge/giftguide/pkg/formatting"
	"github.com/brandforge/giftguide/pkg/render"
)

// Stage identifies a pipeline phase for errors, logs, and persisted records.
type Stage string

const (
	StageValidating       Stage = "validating"
	StageResolvingLogo    Stage = "resolving_logo"
	StageResolvingPalette Stage = "resolving_palette"
	StageComposing        Stage = "composing"
	StageRendering        Stage = "rendering"
	StageDelivering       Stage = "delivering"
	StageDone             Stage = "done"
)

// DeliveryStatus describes the outcome of the delivery stage.
type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliverySkipped DeliveryStatus = "skipped"
	DeliveryFailed  DeliveryStatus = "failed"
)

// Result is the complete outcome of a successful pipeline run. A Result
// always carries a finished document; delivery state is reported alongside
// rather than gating success.
type Result struct {
	Request        identity.Request
	LogoURL        string
	LogoFound      bool
	Palette        branding.Palette
	Markup         string
	Document       []byte
	PageCount      int
	Delivery       DeliveryStatus
	DeliveryID     string
	DeliveryDetail string
}

// Orchestrator runs the guide pipeline. A nil dispatcher marks delivery as
// unconfigured; generation proceeds and the delivery stage is skipped.
type Orchestrator struct {
	logos      branding.LogoResolver
	palettes   branding.PaletteResolver
	renderer   render.System
	dispatcher delivery.System
	logger     *slog.Logger
}

func New(
	logos branding.LogoResolver,
	palettes branding.PaletteResolver,
	renderer render.System,
	dispatcher delivery.System,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		logos:      logos,
		palettes:   palettes,
		renderer:   renderer,
		dispatcher: dispatcher,
		logger:     logger.With("system", "pipeline"),
	}
}

// Run executes the pipeline for a raw request. Validation and rendering
// failures are terminal and return a StageError; logo, palette, and delivery
// failures degrade into the Result instead.
func (o *Orchestrator) Run(ctx context.Context, raw identity.RawRequest) (*Result, error) {
	start := time.Now()

	req, err := identity.Validate(raw)
	if err != nil {
		return nil, stageFailure(StageValidating, err)
	}

	logger := o.logger.With("company", req.CompanyName, "domain", req.Domain)

	logo := o.logos.Resolve(ctx, req.Domain)
	palette := o.palettes.Resolve(ctx, logo)

	markup, err := compose.Compose(*req, logo, palette)
	if err != nil {
		return nil, stageFailure(StageComposing, err)
	}

	document, err := o.renderer.Render(ctx, markup)
	if err != nil {
		return nil, stageFailure(StageRendering, err)
	}

	pageCount, err := api.PageCount(bytes.NewReader(document), nil)
	if err != nil {
		return nil, stageFailure(StageRendering, fmt.Errorf("rendered document unreadable: %w", err))
	}
	if pageCount < 1 {
		return nil, stageFailure(StageRendering, fmt.Errorf("rendered document has no pages"))
	}

	result := &Result{
		Request:   *req,
		LogoURL:   logo.URL,
		LogoFound: logo.Found,
		Palette:   palette,
		Markup:    markup,
		Document:  document,
		PageCount: pageCount,
	}

	o.deliver(ctx, result, logger)

	logger.Info("pipeline complete",
		"logo_found", logo.Found,
		"pages", pageCount,
		"size", formatting.FormatBytes(int64(len(document)), 1),
		"delivery", result.Delivery,
		"duration", time.Since(start),
	)

	return result, nil
}

func (o *Orchestrator) deliver(ctx context.Context, result *Result, logger *slog.Logger) {
	if o.dispatcher == nil {
		result.Delivery = DeliverySkipped
		result.DeliveryDetail = "delivery not configured"
		return
	}

	req := result.Request
	msg := delivery.Message{
		To:      req.RecipientEmail,
		Subject: fmt.Sprintf("Your %s Gift Guide", req.CompanyName),
		HTMLBody: fmt.Sprintf(
			"<p>Hi,</p><p>Your personalized %s gift guide is attached.</p><p>%s<br>%s<br>%s</p>",
			html.EscapeString(req.CompanyName),
			html.EscapeString(req.Contact.Name),
			html.EscapeString(req.Contact.Email),
			html.EscapeString(req.Contact.Phone),
		),
		Attachment: &delivery.Attachment{
			Filename:    delivery.AttachmentFilename(req.CompanyName) + ".pdf",
			ContentType: "application/pdf",
			Data:        result.Document,
		},
	}

	id, err := o.dispatcher.Send(ctx, msg)
	if err != nil {
		// Degraded success: the document exists even though delivery failed.
		result.Delivery = DeliveryFailed
		result.DeliveryDetail = fmt.Sprintf("delivery failed: %v", err)
		logger.Warn("delivery failed", "recipient", req.RecipientEmail, "error", err)
		return
	}

	result.Delivery = DeliverySent
	result.DeliveryID = id
}
