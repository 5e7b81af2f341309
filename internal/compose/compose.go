// Package compose assembles the gift guide document markup. Composition is a
// pure projection: identical identity, logo resolution, and palette inputs
// always yield identical markup, and every dynamic value passes through
// html/template's contextual escaping.
package compose

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/brandforge/giftguide/internal/branding"
	"github.com/brandforge/giftguide/internal/identity"
)

//go:embed templates/*.tmpl templates/products/*.svg
var templateFS embed.FS

var guideTemplate = template.Must(
	template.New("guide.html.tmpl").
		Funcs(template.FuncMap{"productImage": productImage}).
		ParseFS(templateFS, "templates/guide.html.tmpl"),
)

// productImage inlines the embedded artwork for a catalog image reference as
// a data URL, so the rendered page needs no network fetches.
func productImage(ref string) (template.URL, error) {
	data, err := templateFS.ReadFile("templates/products/" + ref + ".svg")
	if err != nil {
		return "", fmt.Errorf("unknown product image %q: %w", ref, err)
	}
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(data)), nil
}

// GuideData is the complete input set for the guide template.
type GuideData struct {
	CompanyName string
	Initial     string
	Contact     identity.Contact
	LogoURL     string
	LogoFound   bool
	Palette     branding.Palette
	Products    []Product
}

// Compose renders the two-page guide markup for the request. The returned
// markup is guaranteed non-empty on success.
func Compose(req identity.Request, logo branding.LogoResolution, palette branding.Palette) (string, error) {
	data := GuideData{
		CompanyName: req.CompanyName,
		Initial:     initial(req.CompanyName),
		Contact:     req.Contact,
		LogoURL:     logo.URL,
		LogoFound:   logo.Found,
		Palette:     palette,
		Products:    Catalog(),
	}

	var buf bytes.Buffer
	if err := guideTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute guide template: %w", err)
	}

	markup := buf.String()
	if markup == "" {
		return "", fmt.Errorf("guide template produced empty markup")
	}

	return markup, nil
}

// initial returns the first rune of name uppercased for the placeholder badge.
func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}
