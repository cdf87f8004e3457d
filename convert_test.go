package html2rsx

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty div",
			input:    "<div></div>\n",
			expected: "div {}\n",
		},
		{
			name:     "empty span",
			input:    "<span></span>\n",
			expected: "span {}\n",
		},
		{
			name:     "self closing div",
			input:    "<div />\n",
			expected: "div {}\n",
		},
		{
			name:     "empty input",
			input:    "  \n\t",
			expected: "",
		},
		{
			name:  "comments become line comments",
			input: "<div><!-- nothing in here --></div><!-- nothing out here -->\n",
			expected: `div {
    // nothing in here
}
// nothing out here
`,
		},
		{
			name:  "div with attributes",
			input: `<div class="example"></div>`,
			expected: `div {
    class: "example",
}
`,
		},
		{
			name:  "div with multiple attributes",
			input: `<div class="example" id="id"></div>`,
			expected: `div {
    class: "example",
    id: "id",
}
`,
		},
		{
			name:  "div with inner text",
			input: `<div>Some text</div>`,
			expected: `div {
    "Some text"
}
`,
		},
		{
			name:  "capitalised attributes become snake case",
			input: `<div SomeAttribute="door"></div>`,
			expected: `div {
    some_attribute: "door",
}
`,
		},
		{
			name:  "solo attributes are true",
			input: `<input disabled />`,
			expected: `input {
    disabled: true,
}
`,
		},
		{
			name:  "text is escaped",
			input: "<pre>a \\ \"b\"\n\tc</pre>",
			expected: `pre {
    "a \\ \"b\"\n\tc"
}
`,
		},
		{
			name:  "realistic html",
			input: `<html><head><title>HTML Tutorial</title></head><body id="body"><h1>This is a heading</h1><p class="bold">This is a paragraph.</p></body></html>`,
			expected: `html {
    head {
        title {
            "HTML Tutorial"
        }
    }
    body {
        id: "body",
        h1 {
            "This is a heading"
        }
        p {
            class: "bold",
            "This is a paragraph."
        }
    }
}
`,
		},
		{
			name:  "realistic svg",
			input: `<svg width="800px" height="800px" viewBox="0 0 1024 1024" class="icon"  version="1.1" xmlns="http://www.w3.org/2000/svg"><path d="M512 301.2m-10 0a10 10 0 1 0 20 0 10 10 0 1 0-20 0Z" fill="#E73B37" /><path d="M400.3 744.5c2.1-0.7 4.1-1.4 6.2-2-2 0.6-4.1 1.3-6.2 2z" fill="#39393A" /></svg>`,
			expected: `svg {
    class: "icon",
    height: "800px",
    version: "1.1",
    view_box: "0 0 1024 1024",
    width: "800px",
    xmlns: "http://www.w3.org/2000/svg",
    path {
        d: "M512 301.2m-10 0a10 10 0 1 0 20 0 10 10 0 1 0-20 0Z",
        fill: "#E73B37",
    }
    path {
        d: "M400.3 744.5c2.1-0.7 4.1-1.4 6.2-2-2 0.6-4.1 1.3-6.2 2z",
        fill: "#39393A",
    }
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.input)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Convert mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertAttributeOrderIrrelevant(t *testing.T) {
	a, err := Convert(`<div b="2" a="1"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Convert(`<div a="1" b="2"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	expected := "div {\n    a: \"1\",\n    b: \"2\",\n}\n"
	if a != expected || b != expected {
		t.Errorf("Expected both orders to render %q, got %q and %q", expected, a, b)
	}
}

func TestConvertKeepsSourceText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "entities in attribute",
			input:    `<a title="x &lt; y"></a>`,
			expected: "a {\n    title: \"x &lt; y\",\n}\n",
		},
		{
			name:     "entities in text",
			input:    `<p>Tom &amp; Jerry</p>`,
			expected: "p {\n    \"Tom &amp; Jerry\"\n}\n",
		},
		{
			name:     "carriage returns escaped",
			input:    "<pre>a\r\nb\rc</pre>",
			expected: `pre {
    "a\r\nb\rc"
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.input)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Convert mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertSelfClosingMatchesEmptyPair(t *testing.T) {
	for _, name := range []string{"div", "span", "section", "custom-element"} {
		pair, err := Convert("<" + name + "></" + name + ">")
		if err != nil {
			t.Fatal(err)
		}
		self, err := Convert("<" + name + "/>")
		if err != nil {
			t.Fatal(err)
		}
		if pair != self || pair != name+" {}\n" {
			t.Errorf("%s: expected %q for both spellings, got %q and %q", name, name+" {}\n", pair, self)
		}
	}
}

func TestConvertParseError(t *testing.T) {
	_, err := ConvertReport(`<div title="`+strings.Repeat("x", 64)+`"></div>`, WithMaxBuf(16))
	if err == nil {
		t.Fatal("Expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected *ParseError, got %T", err)
	}
	if !errors.Is(err, html.ErrBufferExceeded) {
		t.Errorf("Expected wrapped ErrBufferExceeded, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "failed to parse html") {
		t.Errorf("Unexpected error message: %s", err)
	}
}

func TestParseErrorMessage(t *testing.T) {
	if got := (&ParseError{}).Error(); got != "failed to parse html" {
		t.Errorf("Unexpected message %q", got)
	}
	inner := errors.New("boom")
	err := &ParseError{Err: inner}
	if got := err.Error(); got != "failed to parse html: boom" {
		t.Errorf("Unexpected message %q", got)
	}
	if !errors.Is(err, inner) {
		t.Error("Expected ParseError to unwrap to its cause")
	}
}

func TestConvertReport(t *testing.T) {
	report, err := ConvertReport(`<ul><li>a</li><li>b</li></ul>`)
	if err != nil {
		t.Fatal(err)
	}
	if report.Elements != 3 {
		t.Errorf("Expected 3 elements, got %d", report.Elements)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", report.Warnings)
	}

	report, err = ConvertReport("<p>\xff</p>")
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Kind != "text" {
		t.Errorf("Expected one text warning, got %v", report.Warnings)
	}
	if report.Output != "p {\n    \"\"\n}\n" {
		t.Errorf("Expected invalid text rendered as empty, got %q", report.Output)
	}
}

func TestConvertReportMinify(t *testing.T) {
	input := `
<div>
    <p>Hi</p>
</div>
`
	plain, err := ConvertReport(input)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(plain.Output, `"\n    "`) {
		t.Errorf("Expected whitespace text nodes without minify, got:\n%s", plain.Output)
	}

	minified, err := ConvertReport(input, WithMinify(true))
	if err != nil {
		t.Fatal(err)
	}
	expected := "div {\n    p {\n        \"Hi\"\n    }\n}\n"
	if diff := cmp.Diff(expected, minified.Output); diff != "" {
		t.Errorf("minified output mismatch (-want +got):\n%s", diff)
	}
}
