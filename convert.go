// Package html2rsx converts HTML markup into brace-delimited element blocks
// ready to paste into component code.
//
//	<div class="card"><p>Hi</p></div>
//
// becomes
//
//	div {
//	    class: "card",
//	    p {
//	        "Hi"
//	    }
//	}
package html2rsx

import (
	"strings"
	"time"

	"github.com/livefir/html2rsx/internal/markup"
	"github.com/livefir/html2rsx/internal/render"
)

// Warning is a non-fatal problem found while rendering.
type Warning = render.Warning

// Report is the result of ConvertReport.
type Report struct {
	Output   string
	Warnings []Warning
	Elements int
	Duration time.Duration
}

// Config holds conversion options
type Config struct {
	Minify bool // Collapse insignificant whitespace before parsing
	MaxBuf int  // Tokenizer buffer limit per token, 0 for none
}

// Option is a functional option for ConvertReport
type Option func(*Config)

// WithMinify runs the HTML minifier over the input before parsing
func WithMinify(enabled bool) Option {
	return func(c *Config) {
		c.Minify = enabled
	}
}

// WithMaxBuf caps the bytes the tokenizer buffers for a single token.
// Inputs with a longer token fail with a ParseError.
func WithMaxBuf(n int) Option {
	return func(c *Config) {
		c.MaxBuf = n
	}
}

// Convert converts HTML into block text. Leading and trailing whitespace
// of input is ignored. The only error is *ParseError.
func Convert(input string) (string, error) {
	report, err := ConvertReport(input)
	if err != nil {
		return "", err
	}
	return report.Output, nil
}

// ConvertReport converts input like Convert and also reports warnings and
// statistics about the conversion.
func ConvertReport(input string, opts ...Option) (*Report, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	input = strings.TrimSpace(input)
	if cfg.Minify && input != "" {
		minified, err := Minify(input)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		input = strings.TrimSpace(minified)
	}

	doc, err := markup.Parse(input, markup.Options{MaxBuf: cfg.MaxBuf})
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	r := &render.Renderer{}
	out := r.Render(doc.Children)
	return &Report{
		Output:   out,
		Warnings: r.Warnings(),
		Elements: r.Elements(),
		Duration: time.Since(start),
	}, nil
}
