package render

import "errors"

// Renderer errors.
var (
	// ErrBrowserNotFound indicates no usable browser binary was located.
	ErrBrowserNotFound = errors.New("browser binary not found")
	// ErrRenderFailed indicates the browser session failed to produce a document.
	ErrRenderFailed = errors.New("render failed")
	// ErrEmptyDocument indicates the browser returned zero document bytes.
	ErrEmptyDocument = errors.New("render produced an empty document")
)
