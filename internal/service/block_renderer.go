package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/zolaexport/internal/export"
)

// maxRowDepth is the deepest attachment-row nesting the renderer accepts.
const maxRowDepth = 1

var ErrRowNestingTooDeep = errors.New("attachment rows nested too deeply")

// BlockRenderer 把帖子内容块渲染为 Zola 可用的 markdown/短代码片段。
type BlockRenderer struct {
	staticPath string
	sourceDir  string
	project    string
	env        runEnv
}

// NewBlockRenderer creates a renderer for blocks of the post stored in sourceDir.
func NewBlockRenderer(paths Paths, sourceDir, project string, opts Options) *BlockRenderer {
	return &BlockRenderer{
		staticPath: paths.StaticPath,
		sourceDir:  sourceDir,
		project:    project,
		env:        opts.env(),
	}
}

// Render appends the markup for block to buf, followed by a blank-line separator.
func (r *BlockRenderer) Render(buf *bytes.Buffer, block export.Block) error {
	return r.render(buf, block, 0)
}

func (r *BlockRenderer) render(buf *bytes.Buffer, block export.Block, depth int) error {
	switch block.Type {
	case export.BlockMarkdown:
		r.renderMarkdown(buf, block.Markdown)
	case export.BlockAttachment:
		if err := r.renderAttachment(buf, block.Attachment); err != nil {
			return err
		}
	case export.BlockAttachmentRow:
		if depth >= maxRowDepth {
			return ErrRowNestingTooDeep
		}
		buf.WriteString("<div class=\"row\">\n")
		for _, nested := range block.Attachments {
			if err := r.render(buf, nested, depth+1); err != nil {
				return err
			}
		}
		buf.WriteString("</div>\n")
	default:
		return fmt.Errorf("%w: %q", export.ErrUnknownBlockType, block.Type)
	}

	buf.WriteString("\n")
	return nil
}

func (r *BlockRenderer) renderMarkdown(buf *bytes.Buffer, block *export.MarkdownBlock) {
	embed, ok := parseEmbedURL(block.Content)
	if !ok {
		// 空行包裹，避免与相邻的 HTML 容器合并
		buf.WriteString("\n")
		buf.WriteString(block.Content)
		buf.WriteString("\n\n")
		return
	}

	buf.WriteString("<div class=\"embed\">\n")
	if videoID, ok := youtubeVideoID(embed); ok {
		fmt.Fprintf(buf, "{{ youtube(v=\"%s\") }}\n", escapeQuotes(videoID))
	}
	fmt.Fprintf(buf, "<a class=\"url\" target=\"_blank\" rel=\"noopener noreferrer\" href=\"%s\">%s</a>\n",
		escapeQuotes(block.Content), block.Content)
	buf.WriteString("</div>\n")
}

func (r *BlockRenderer) renderAttachment(buf *bytes.Buffer, attachment *export.AttachmentBlock) error {
	buf.WriteString("<div class=\"attachment\">\n")

	resource, err := CopyStaticResource(r.staticPath, r.sourceDir, &attachment.FileURL.URL)
	if err != nil {
		return err
	}

	entry := AssetEntry{
		Resource:     resource,
		Project:      r.project,
		Kind:         attachment.Kind,
		AttachmentID: attachment.CanonicalID(),
	}
	if attachment.Width != nil {
		entry.Width = *attachment.Width
	}
	if attachment.Height != nil {
		entry.Height = *attachment.Height
	}
	if err := r.env.recorder.RecordAsset(entry); err != nil {
		return fmt.Errorf("recording asset '%s': %w", resource.LocalPath, err)
	}

	switch attachment.Kind {
	case "image":
		fmt.Fprintf(buf, "{{ image(path=\"%s\", alt=\"%s\") }}\n",
			escapeQuotes(resource.LocalPath), escapeQuotes(attachment.Alt()))
	case "audio":
		fmt.Fprintf(buf, "{{ audio(path=\"%s\") }}\n", escapeQuotes(resource.LocalPath))
	default:
		r.env.logger.Printf("[render] unknown attachment kind %q (%s)", attachment.Kind, resource.LocalPath)
	}

	buf.WriteString("</div>\n")
	return nil
}

// escapeQuotes 将双引号替换为 &quot;，用于属性值插值。
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}
