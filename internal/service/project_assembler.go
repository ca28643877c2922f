package service

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/zolaexport/internal/export"
)

const (
	projectTemplate   = "project-home.html"
	projectPaginateBy = 20
	sectionIndexName  = "_index.md"
)

// ProjectAssembler 生成项目主页文档并依次处理项目下的所有已发布帖子。
type ProjectAssembler struct {
	paths Paths
	opts  Options
}

// NewProjectAssembler creates a ProjectAssembler sharing the run's read-only paths.
func NewProjectAssembler(paths Paths, opts Options) *ProjectAssembler {
	return &ProjectAssembler{paths: paths, opts: opts}
}

// Assemble processes one project. The first failing post aborts the project.
func (a *ProjectAssembler) Assemble(handle string) error {
	env := a.opts.env()
	sourcePath := filepath.Join(a.paths.ExportPath, "project", handle)
	env.logger.Printf("Processing '%s' project (path: '%s')", handle, sourcePath)

	metadataPath := filepath.Join(sourcePath, handle+".json")
	project, err := export.LoadProject(metadataPath)
	if err != nil {
		return fmt.Errorf("loading '%s': %w", metadataPath, err)
	}

	projectPath := filepath.Join(a.paths.ContentPath, handle)
	homePath := filepath.Join(projectPath, sectionIndexName)
	if err := a.writeHome(homePath, project); err != nil {
		return err
	}

	if err := a.copyProjectMedia(handle, sourcePath, "avatar", project.AvatarURL); err != nil {
		return err
	}
	if err := a.copyProjectMedia(handle, sourcePath, "header", project.HeaderURL); err != nil {
		return err
	}

	publishedPath := filepath.Join(sourcePath, "posts", "published")
	entries, err := os.ReadDir(publishedPath)
	if err != nil {
		return fmt.Errorf("reading '%s': %w", publishedPath, err)
	}

	posts := NewPostAssembler(a.paths, handle, a.opts)
	postCount := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := posts.Assemble(filepath.Join(publishedPath, entry.Name())); err != nil {
			return err
		}
		postCount++
	}

	postIndexPath := filepath.Join(projectPath, "post", sectionIndexName)
	if err := a.writePostIndex(postIndexPath); err != nil {
		return err
	}

	if err := env.recorder.RecordProject(ProjectEntry{
		Handle:       handle,
		DisplayName:  project.DisplayName,
		DocumentPath: homePath,
		PostCount:    postCount,
	}); err != nil {
		return fmt.Errorf("recording project '%s': %w", handle, err)
	}
	return nil
}

func (a *ProjectAssembler) writeHome(path string, project *export.Project) error {
	urlShort := ""
	if project.URL != "" {
		parsed, err := url.Parse(project.URL)
		if err != nil {
			return fmt.Errorf("parsing project url '%s': %w", project.URL, err)
		}
		urlShort = shortURL(parsed)
	}

	frontMatter := projectFrontMatter{
		SortBy:     "date",
		Template:   projectTemplate,
		PaginateBy: projectPaginateBy,
		Extra: projectExtra{
			Handle:      project.Handle,
			DisplayName: project.DisplayName,
			Dek:         project.Dek,
			Description: project.Description,
			HeaderURL:   referencePath(project.HeaderURL),
			AvatarURL:   referencePath(project.AvatarURL),
			Pronouns:    project.Pronouns,
			URL:         project.URL,
			URLShort:    urlShort,
			AvatarShape: project.AvatarShape,
		},
	}

	var buf bytes.Buffer
	if err := writeFrontMatter(&buf, frontMatter); err != nil {
		return err
	}
	return a.writeDocument(path, buf.Bytes())
}

func (a *ProjectAssembler) writePostIndex(path string) error {
	var buf bytes.Buffer
	if err := writeFrontMatter(&buf, postIndexFrontMatter{
		SortBy:       "date",
		Transparent:  true,
		Template:     "404.html",
		PageTemplate: "blog-page.html",
	}); err != nil {
		return err
	}
	return a.writeDocument(path, buf.Bytes())
}

func (a *ProjectAssembler) writeDocument(path string, content []byte) error {
	if err := ensureParentDir(path); err != nil {
		return fmt.Errorf("creating '%s': %w", filepath.Dir(path), err)
	}
	a.opts.env().logger.Printf("\twriting '%s'", path)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing '%s': %w", path, err)
	}
	return nil
}

func (a *ProjectAssembler) copyProjectMedia(handle, sourcePath, kind string, ref *export.URL) error {
	if ref == nil {
		return nil
	}
	resource, err := CopyStaticResource(a.paths.StaticPath, sourcePath, &ref.URL)
	if err != nil {
		return err
	}
	if err := a.opts.env().recorder.RecordAsset(AssetEntry{Resource: resource, Project: handle, Kind: kind}); err != nil {
		return fmt.Errorf("recording asset '%s': %w", resource.LocalPath, err)
	}
	return nil
}

// referencePath 返回元数据中原样的 URL 路径（不复制、不解码）。
func referencePath(ref *export.URL) string {
	if ref == nil {
		return ""
	}
	return ref.EscapedPath()
}

// shortURL drops the scheme: host followed by path.
func shortURL(u *url.URL) string {
	return u.Hostname() + u.EscapedPath()
}
