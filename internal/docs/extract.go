package docs

import (
	"bytes"
	"path"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultDescriptionLimit bounds extracted descriptions. Truncation cuts
// at the last space at or before the limit and appends "...".
const DefaultDescriptionLimit = 200

// Record is the extracted model for one markdown file. Built once during
// extraction and read-only thereafter; both renderers consume the same
// ordered record list.
type Record struct {
	RelPath     string // slash-separated path relative to the docs root
	Route       string // extension-stripped route, index collapsed to its directory
	Title       string
	Description string
	URL         string
	Content     string // raw file text, untouched
}

// Extract derives a Record from one file. It never fails: missing
// headings or paragraphs degrade to the filename-derived title and an
// empty description.
func Extract(relPath string, content []byte, baseURL string, descLimit int) Record {
	if descLimit <= 0 {
		descLimit = DefaultDescriptionLimit
	}
	route := Route(relPath)
	title, desc := scanMarkdown(content, descLimit)
	if title == "" {
		title = fallbackTitle(route)
	}
	return Record{
		RelPath:     relPath,
		Route:       route,
		Title:       title,
		Description: desc,
		URL:         docURL(baseURL, route),
		Content:     string(content),
	}
}

// Route maps a relative file path to its public route: strip the
// markdown extension and collapse index basenames to their directory.
func Route(relPath string) string {
	p := relPath
	if ext := path.Ext(p); strings.EqualFold(ext, ".md") {
		p = p[:len(p)-len(ext)]
	}
	if path.Base(p) == "index" {
		p = path.Dir(p)
		if p == "." {
			p = ""
		}
	}
	return p
}

// docURL joins the route with the base URL, or falls back to the bare
// route when no base URL is known so links stay locally relative.
func docURL(baseURL, route string) string {
	if baseURL == "" {
		if route == "" {
			return "."
		}
		return route
	}
	base := strings.TrimRight(baseURL, "/")
	if route == "" {
		return base
	}
	return base + "/" + route
}

// scanMarkdown walks the goldmark AST and returns the first level-1
// heading text and the first paragraph after it. Best effort: malformed
// markdown yields empty strings, never an error.
func scanMarkdown(src []byte, descLimit int) (title, desc string) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && title == "" {
				title = strings.TrimSpace(string(node.Text(src)))
			}
		case *ast.Paragraph:
			if desc != "" {
				continue
			}
			if t := strings.TrimSpace(inlineText(node, src)); t != "" {
				desc = truncateAtWord(collapseSpace(t), descLimit)
			}
		}
		if title != "" && desc != "" {
			break
		}
	}
	return title, desc
}

// inlineText collects the plain text of a block node's inline children.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

// collapseSpace folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateAtWord cuts s to at most limit runes, breaking at the last
// space before the limit, with a trailing ellipsis when truncated.
func truncateAtWord(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := limit
	for i := limit; i > 0; i-- {
		if unicode.IsSpace(runes[i-1]) {
			cut = i - 1
			break
		}
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "..."
}

// fallbackTitle normalizes a route into a display title when the file
// has no level-1 heading: path separators become " > ", dashes and
// underscores become spaces, words are title-cased.
func fallbackTitle(route string) string {
	if route == "" {
		route = "index"
	}
	s := strings.ReplaceAll(route, "/", " > ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
