// Package render emits the two output artifacts. Both renderers are pure
// functions of (metadata, records): identical inputs produce byte-identical
// output, with no timestamps and no reordering.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/llmstxt-cli/internal/docs"
	"github.com/KaramelBytes/llmstxt-cli/internal/github"
	"github.com/KaramelBytes/llmstxt-cli/internal/utils"
)

// IndexFileName returns llms.txt, or llms-<version>.txt when a version
// label is set.
func IndexFileName(version string) string {
	if version != "" {
		return "llms-" + version + ".txt"
	}
	return "llms.txt"
}

// FullFileName returns llms-full.txt, or llms-full-<version>.txt when a
// version label is set.
func FullFileName(version string) string {
	if version != "" {
		return "llms-full-" + version + ".txt"
	}
	return "llms-full.txt"
}

// header writes the shared heading block: title line, optional
// description blockquote, optional homepage line.
func header(sb *strings.Builder, meta github.Metadata, qualifier string) {
	title := meta.Name + " Documentation" + qualifier
	if meta.Version != "" {
		title += " - " + meta.Version
	}
	fmt.Fprintf(sb, "# %s\n\n", title)
	if meta.Description != "" {
		fmt.Fprintf(sb, "> %s\n\n", meta.Description)
	}
	if meta.BaseURL != "" {
		fmt.Fprintf(sb, "Website: %s\n", meta.BaseURL)
	}
}

// Index renders the compact llms.txt index: one linked subsection per
// record plus a footer pointing at the full-content file.
func Index(meta github.Metadata, records []docs.Record) string {
	var sb strings.Builder
	header(&sb, meta, "")
	sb.WriteString("\n")

	sb.WriteString("## Documentation Index\n\n")
	for _, r := range records {
		fmt.Fprintf(&sb, "### [%s](%s)\n\n", r.Title, r.URL)
		if r.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", r.Description)
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString("## Notes\n\n")
	fmt.Fprintf(&sb, "- For complete documentation content, see `%s`\n", FullFileName(meta.Version))
	fmt.Fprintf(&sb, "- Total sections: %d\n", len(records))
	return sb.String()
}

// Full renders llms-full.txt: the same header with a Complete qualifier,
// then every record's raw content verbatim under its title, in index
// order, separated by a delimiter line.
func Full(meta github.Metadata, records []docs.Record) string {
	var sb strings.Builder
	header(&sb, meta, " - Complete")
	sb.WriteString("\n---\n\n")

	for _, r := range records {
		fmt.Fprintf(&sb, "## %s\n\n", r.Title)
		fmt.Fprintf(&sb, "**Path:** `%s`  \n", r.RelPath)
		if meta.BaseURL != "" {
			fmt.Fprintf(&sb, "**URL:** %s\n\n", r.URL)
		} else {
			fmt.Fprintf(&sb, "**File:** `%s`\n\n", r.RelPath)
		}
		sb.WriteString(r.Content)
		sb.WriteString("\n\n")
		sb.WriteString("---\n\n")
	}
	return sb.String()
}

// Write places rendered text in dir under name using an atomic write.
func Write(dir, name, text string) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("ensure output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := utils.SafeWriteFile(path, []byte(text)); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
