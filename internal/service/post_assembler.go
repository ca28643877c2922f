package service

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zolaexport/internal/export"
)

const (
	postDocumentName = "post.json"
	postTemplate     = "project-post.html"
	documentSuffix   = ".md"
)

var ErrPostPathInvalid = errors.New("post url has no usable path")

// PostAssembler 负责把单篇帖子写成带前言的 Zola 文档。
type PostAssembler struct {
	paths   Paths
	project string
	opts    Options
}

// NewPostAssembler creates an assembler for posts of the given project.
func NewPostAssembler(paths Paths, project string, opts Options) *PostAssembler {
	return &PostAssembler{paths: paths, project: project, opts: opts}
}

// Assemble 读取 postDir/post.json，渲染完整文档后写入内容目录，返回写入路径。
// 渲染失败时不会留下半成品文档。
func (a *PostAssembler) Assemble(postDir string) (string, error) {
	post, err := export.LoadPost(filepath.Join(postDir, postDocumentName))
	if err != nil {
		return "", err
	}

	documentPath, err := a.documentPath(post)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := a.write(&buf, post, postDir); err != nil {
		return "", fmt.Errorf("rendering '%s': %w", documentPath, err)
	}

	if err := ensureParentDir(documentPath); err != nil {
		return "", fmt.Errorf("creating '%s': %w", filepath.Dir(documentPath), err)
	}
	env := a.opts.env()
	env.logger.Printf("\twriting '%s'", documentPath)
	if err := os.WriteFile(documentPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing '%s': %w", documentPath, err)
	}

	if err := env.recorder.RecordPost(PostEntry{
		PostID:       post.PostID,
		Project:      a.project,
		Headline:     post.Headline,
		PublishedAt:  post.PublishedAt,
		DocumentPath: documentPath,
		PreviewImage: findPreviewImage(post.Blocks),
		BlockCount:   len(post.Blocks),
	}); err != nil {
		return "", fmt.Errorf("recording post %d: %w", post.PostID, err)
	}

	return documentPath, nil
}

func (a *PostAssembler) documentPath(post *export.Post) (string, error) {
	urlPath := strings.TrimPrefix(post.SinglePostPageURL.EscapedPath(), "/")
	if urlPath == "" {
		return "", fmt.Errorf("%w: %s", ErrPostPathInvalid, post.SinglePostPageURL.String())
	}
	return filepath.Join(a.paths.ContentPath, filepath.FromSlash(urlPath)+documentSuffix), nil
}

func (a *PostAssembler) write(buf *bytes.Buffer, post *export.Post, postDir string) error {
	frontMatter := postFrontMatter{
		Title:    post.Headline,
		Date:     post.PublishedAt.Format(time.RFC3339Nano),
		Template: postTemplate,
		Taxonomies: postTaxonomies{
			Tags: append([]string{}, post.Tags...),
		},
		Extra: postExtra{
			PreviewImage: findPreviewImage(post.Blocks),
		},
	}
	if err := writeFrontMatter(buf, frontMatter); err != nil {
		return err
	}

	renderer := NewBlockRenderer(a.paths, postDir, a.project, a.opts)
	for _, block := range post.Blocks {
		if err := renderer.Render(buf, block); err != nil {
			return err
		}
	}
	return nil
}

// findPreviewImage 按块顺序深度优先查找第一张图片附件，返回其 URL 路径。
func findPreviewImage(blocks []export.Block) string {
	for _, block := range blocks {
		switch block.Type {
		case export.BlockAttachment:
			if block.Attachment.Kind == "image" {
				return block.Attachment.FileURL.EscapedPath()
			}
		case export.BlockAttachmentRow:
			if found := findPreviewImage(block.Attachments); found != "" {
				return found
			}
		}
	}
	return ""
}
