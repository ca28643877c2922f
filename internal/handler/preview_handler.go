package handler

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// PreviewTemplateName 是预览页面模板在 gin 中注册的名字。
const PreviewTemplateName = "preview"

// PreviewTemplate renders one content document or section.
var PreviewTemplate = template.Must(template.New(PreviewTemplateName).Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<main>
<h1>{{.Title}}</h1>
{{if .Date}}<time datetime="{{.Date}}">{{.Date}}</time>{{end}}
{{if .Tags}}<ul class="tags">{{range .Tags}}<li>#{{.}}</li>{{end}}</ul>{{end}}
{{.Body}}
{{if .Pages}}<ul class="pages">{{range .Pages}}<li><a href="{{.URL}}">{{.Title}}</a> <time>{{.Date}}</time></li>{{end}}</ul>{{end}}
</main>
</body>
</html>`))

// PreviewHandler 在本地预览转换输出：静态资源原样返回，内容文档渲染为 HTML。
type PreviewHandler struct {
	contentPath string
	staticPath  string
	engine      goldmark.Markdown
	sanitizer   *bluemonday.Policy
}

// NewPreviewHandler creates a handler over an output tree.
func NewPreviewHandler(contentPath, staticPath string) *PreviewHandler {
	return &PreviewHandler{
		contentPath: contentPath,
		staticPath:  staticPath,
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Table),
			goldmark.WithRendererOptions(html.WithUnsafe(), html.WithXHTML()),
		),
		sanitizer: buildContentSanitizer(),
	}
}

type previewPage struct {
	Title string
	Date  string
	Tags  []string
	Body  template.HTML
	Pages []pageLink
}

// Serve resolves the request path against the static root first, then the content root.
func (h *PreviewHandler) Serve(c *gin.Context) {
	if !isReadMethod(c.Request.Method) {
		respondError(c, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	staticFile := filepath.Join(h.staticPath, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
	if info, err := os.Stat(staticFile); err == nil && info.Mode().IsRegular() {
		c.Status(http.StatusOK)
		c.File(staticFile)
		return
	}

	rel := strings.Trim(path.Clean("/"+c.Request.URL.EscapedPath()), "/")
	documentPath, isSection, ok := h.locate(rel)
	if !ok {
		respondError(c, http.StatusNotFound, "not found")
		return
	}

	doc, err := loadDocument(documentPath)
	if err != nil {
		log.Printf("[preview] loading '%s': %v", documentPath, err)
		respondError(c, http.StatusInternalServerError, "failed to load document")
		return
	}

	body, err := h.renderBody(doc.Body)
	if err != nil {
		log.Printf("[preview] rendering '%s': %v", documentPath, err)
		respondError(c, http.StatusInternalServerError, "failed to render document")
		return
	}

	page := previewPage{
		Title: doc.Title(),
		Date:  doc.Date(),
		Tags:  documentTags(doc),
		Body:  body,
	}
	if isSection {
		pages, err := listSectionPages(h.contentPath, filepath.Dir(documentPath))
		if err != nil {
			log.Printf("[preview] listing '%s': %v", filepath.Dir(documentPath), err)
		}
		page.Pages = pages
	}

	c.HTML(http.StatusOK, PreviewTemplateName, page)
}

func (h *PreviewHandler) locate(rel string) (string, bool, bool) {
	if rel != "" {
		candidate := filepath.Join(h.contentPath, filepath.FromSlash(rel)+".md")
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, false, true
		}
	}
	candidate := filepath.Join(h.contentPath, filepath.FromSlash(rel), "_index.md")
	if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
		return candidate, true, true
	}
	return "", false, false
}

func (h *PreviewHandler) renderBody(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.engine.Convert([]byte(expandShortcodes(body)), &buf); err != nil {
		return "", err
	}
	safe := h.sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

func documentTags(doc document) []string {
	taxonomies, ok := doc.FrontMatter["taxonomies"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := taxonomies["tags"].([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, item := range raw {
		if tag, ok := item.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
