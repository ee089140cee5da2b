// Package markdown renders comment bodies the way they will appear on a
// pull request.
package markdown

import (
	"bytes"
	stdhtml "html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// suggestionLang is the fence info string GitHub turns into a one-click
// "Suggested change" block.
const suggestionLang = "suggestion"

var (
	commentRenderer goldmark.Markdown
	commentPolicy   *bluemonday.Policy
)

func init() {
	commentRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(fencedBlockRenderer{}, 100)),
		),
	)

	commentPolicy = bluemonday.UGCPolicy()
	commentPolicy.AllowElements("div")
	commentPolicy.AllowAttrs("class").
		Matching(regexp.MustCompile(`^(suggested-change|language-[\w-]+)$`)).
		OnElements("div", "code")
}

// Render converts a GitHub-flavored markdown comment body to sanitized HTML.
// A ```suggestion fence is wrapped in a "Suggested change" block.
// Returns empty string for empty input.
func Render(body string) string {
	if body == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := commentRenderer.Convert([]byte(body), &buf); err != nil {
		return commentPolicy.Sanitize(body)
	}

	return commentPolicy.Sanitize(buf.String())
}

// fencedBlockRenderer replaces goldmark's fenced code block rendering so
// suggestion fences can be labeled. Other fences render as <pre><code>.
type fencedBlockRenderer struct{}

func (r fencedBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.render)
}

func (r fencedBlockRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	block := node.(*ast.FencedCodeBlock)
	lang := string(block.Language(source))
	suggestion := lang == suggestionLang

	if suggestion {
		_, _ = w.WriteString("<div class=\"suggested-change\"><p>Suggested change</p>\n")
	}
	_, _ = w.WriteString("<pre><code")
	if lang != "" {
		_, _ = w.WriteString(` class="language-` + stdhtml.EscapeString(lang) + `"`)
	}
	_ = w.WriteByte('>')

	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.WriteString(stdhtml.EscapeString(string(seg.Value(source))))
	}

	_, _ = w.WriteString("</code></pre>\n")
	if suggestion {
		_, _ = w.WriteString("</div>\n")
	}
	return ast.WalkSkipChildren, nil
}
