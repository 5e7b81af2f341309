package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/brandforge/giftguide/internal/branding"
	"github.com/brandforge/giftguide/internal/identity"
	"github.com/brandforge/giftguide/internal/pipeline"
	"github.com/brandforge/giftguide/pkg/delivery"
)

type mockLogos struct {
	resolve func(ctx context.Context, domain string) branding.LogoResolution
}

func (m *mockLogos) Resolve(ctx context.Context, domain string) branding.LogoResolution {
	return m.resolve(ctx, domain)
}

type mockPalettes struct {
	resolve func(ctx context.Context, logo branding.LogoResolution) branding.Palette
}

func (m *mockPalettes) Resolve(ctx context.Context, logo branding.LogoResolution) branding.Palette {
	return m.resolve(ctx, logo)
}

type mockRenderer struct {
	render func(ctx context.Context, markup string) ([]byte, error)
}

func (m *mockRenderer) Render(ctx context.Context, markup string) ([]byte, error) {
	return m.render(ctx, markup)
}

type mockDispatcher struct {
	send func(ctx context.Context, msg delivery.Message) (string, error)
}

func (m *mockDispatcher) Send(ctx context.Context, msg delivery.Message) (string, error) {
	return m.send(ctx, msg)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rawRequest() identity.RawRequest {
	return identity.RawRequest{
		CompanyName:    "Nike",
		Domain:         "nike.com",
		RecipientEmail: "buyer@nike.com",
		AEName:         "Jordan Reyes",
		AEEmail:        "jordan@brandforge.io",
		AEPhone:        "+1 555 0100",
	}
}

// minimalPDF assembles a structurally valid PDF with the given page count,
// computing real xref offsets so document inspection succeeds.
func minimalPDF(t *testing.T, pageCount int) []byte {
	t.Helper()

	var buf bytes.Buffer
	offsets := make([]int, 0, pageCount+2)

	buf.WriteString("%PDF-1.4\n")

	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	kids := make([]string, pageCount)
	for i := range pageCount {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}

	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pageCount))
	for i := range pageCount {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n", 3+i))
	}

	xrefOffset := buf.Len()
	size := len(offsets) + 1
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xrefOffset)

	return buf.Bytes()
}

func orchestrator(renderer *mockRenderer, dispatcher *mockDispatcher) *pipeline.Orchestrator {
	logos := &mockLogos{resolve: func(_ context.Context, domain string) branding.LogoResolution {
		return branding.LogoResolution{URL: "https://cdn.example.com/domain:" + domain, Found: true}
	}}
	palettes := &mockPalettes{resolve: func(context.Context, branding.LogoResolution) branding.Palette {
		return branding.Palette{Primary: "#cc3300", Secondary: "#0033cc", Background: "#FFFFFF"}
	}}

	// A typed nil pointer would defeat the orchestrator's nil check.
	if dispatcher == nil {
		return pipeline.New(logos, palettes, renderer, nil, testLogger())
	}
	return pipeline.New(logos, palettes, renderer, dispatcher, testLogger())
}

func TestRun(t *testing.T) {
	t.Run("full pipeline delivers the rendered document", func(t *testing.T) {
		doc := minimalPDF(t, 2)
		renderer := &mockRenderer{render: func(_ context.Context, markup string) ([]byte, error) {
			if markup == "" {
				t.Fatal("renderer received empty markup")
			}
			return doc, nil
		}}

		var sent delivery.Message
		dispatcher := &mockDispatcher{send: func(_ context.Context, msg delivery.Message) (string, error) {
			sent = msg
			return "delivery-1", nil
		}}

		result, err := orchestrator(renderer, dispatcher).Run(context.Background(), rawRequest())
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}

		if result.Delivery != pipeline.DeliverySent {
			t.Errorf("delivery = %s, want sent", result.Delivery)
		}
		if result.DeliveryID != "delivery-1" {
			t.Errorf("delivery id = %s", result.DeliveryID)
		}
		if result.PageCount != 2 {
			t.Errorf("page count = %d, want 2", result.PageCount)
		}
		if !result.LogoFound {
			t.Error("logo not marked found")
		}
		if !bytes.Equal(result.Document, doc) {
			t.Error("result document differs from rendered bytes")
		}
		if sent.To != "buyer@nike.com" {
			t.Errorf("message to = %s", sent.To)
		}
		if sent.Attachment == nil || sent.Attachment.Filename != "Nike-Gift-Guide.pdf" {
			t.Errorf("attachment = %+v", sent.Attachment)
		}
	})

	t.Run("validation failure is terminal with stage", func(t *testing.T) {
		raw := rawRequest()
		raw.Domain = "not a domain"

		renderer := &mockRenderer{render: func(context.Context, string) ([]byte, error) {
			t.Fatal("renderer invoked for invalid request")
			return nil, nil
		}}

		_, err := orchestrator(renderer, nil).Run(context.Background(), raw)

		var stageErr *pipeline.StageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("error = %T, want *StageError", err)
		}
		if stageErr.Stage != pipeline.StageValidating {
			t.Errorf("stage = %s, want validating", stageErr.Stage)
		}
		if !errors.Is(err, identity.ErrValidation) {
			t.Errorf("error = %v, want wrapped ErrValidation", err)
		}
	})

	t.Run("render failure is terminal with stage", func(t *testing.T) {
		renderer := &mockRenderer{render: func(context.Context, string) ([]byte, error) {
			return nil, errors.New("browser crashed")
		}}

		_, err := orchestrator(renderer, nil).Run(context.Background(), rawRequest())

		var stageErr *pipeline.StageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("error = %T, want *StageError", err)
		}
		if stageErr.Stage != pipeline.StageRendering {
			t.Errorf("stage = %s, want rendering", stageErr.Stage)
		}
	})

	t.Run("unreadable rendered bytes fail the render stage", func(t *testing.T) {
		renderer := &mockRenderer{render: func(context.Context, string) ([]byte, error) {
			return []byte("not a pdf"), nil
		}}

		_, err := orchestrator(renderer, nil).Run(context.Background(), rawRequest())

		var stageErr *pipeline.StageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("error = %T, want *StageError", err)
		}
		if stageErr.Stage != pipeline.StageRendering {
			t.Errorf("stage = %s, want rendering", stageErr.Stage)
		}
	})

	t.Run("unconfigured delivery skips without error", func(t *testing.T) {
		renderer := &mockRenderer{render: func(context.Context, string) ([]byte, error) {
			return minimalPDF(t, 2), nil
		}}

		result, err := orchestrator(renderer, nil).Run(context.Background(), rawRequest())
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if result.Delivery != pipeline.DeliverySkipped {
			t.Errorf("delivery = %s, want skipped", result.Delivery)
		}
		if result.DeliveryDetail == "" {
			t.Error("delivery detail empty, want explanation")
		}
	})

	t.Run("delivery failure degrades instead of failing", func(t *testing.T) {
		renderer := &mockRenderer{render: func(context.Context, string) ([]byte, error) {
			return minimalPDF(t, 2), nil
		}}
		dispatcher := &mockDispatcher{send: func(context.Context, delivery.Message) (string, error) {
			return "", errors.New("smtp refused")
		}}

		result, err := orchestrator(renderer, dispatcher).Run(context.Background(), rawRequest())
		if err != nil {
			t.Fatalf("Run error: %v, want degraded success", err)
		}
		if result.Delivery != pipeline.DeliveryFailed {
			t.Errorf("delivery = %s, want failed", result.Delivery)
		}
		if !strings.Contains(result.DeliveryDetail, "smtp refused") {
			t.Errorf("detail = %q, want failure message", result.DeliveryDetail)
		}
		if len(result.Document) == 0 {
			t.Error("document missing from degraded result")
		}
	})

	t.Run("missing logo still generates with resolved palette", func(t *testing.T) {
		logos := &mockLogos{resolve: func(context.Context, string) branding.LogoResolution {
			return branding.LogoResolution{URL: "https://cdn.example.com/domain:nike.com", Reason: "probe returned status 404"}
		}}
		palettes := &mockPalettes{resolve: func(_ context.Context, logo branding.LogoResolution) branding.Palette {
			if logo.Found {
				t.Fatal("palette resolver saw found logo")
			}
			return branding.DefaultPalette()
		}}
		renderer := &mockRenderer{render: func(context.Context, string) ([]byte, error) {
			return minimalPDF(t, 2), nil
		}}

		result, err := pipeline.New(logos, palettes, renderer, nil, testLogger()).
			Run(context.Background(), rawRequest())
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if result.LogoFound {
			t.Error("logo marked found")
		}
		if result.Palette != branding.DefaultPalette() {
			t.Errorf("palette = %+v, want default", result.Palette)
		}
	})
}
