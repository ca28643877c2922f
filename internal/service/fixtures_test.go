package service

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"testing"
)

const testAttachmentID = "6f1d0c1e-8a34-4a0b-9f52-3e2e2b6a1c11"

// exportFixture builds a throwaway export tree and output root.
type exportFixture struct {
	t      *testing.T
	root   string
	output string
	logs   bytes.Buffer
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	base := t.TempDir()
	f := &exportFixture{
		t:      t,
		root:   filepath.Join(base, "export"),
		output: filepath.Join(base, "zola"),
	}
	f.writeFile(filepath.Join(f.root, "user.json"), []byte(`{"email": "someone@example.com"}`))
	return f
}

func (f *exportFixture) paths() Paths {
	return NewPaths(f.root, f.output)
}

func (f *exportFixture) options() Options {
	return Options{Logger: log.New(&f.logs, "", 0)}
}

func (f *exportFixture) projectDir(handle string) string {
	return filepath.Join(f.root, "project", handle)
}

func (f *exportFixture) addProject(handle string, project map[string]any) {
	f.t.Helper()
	base := map[string]any{
		"handle":                  handle,
		"displayName":             "Display " + handle,
		"dek":                     "a dek",
		"description":             "a description",
		"avatarURL":               nil,
		"avatarPreviewURL":        nil,
		"headerURL":               nil,
		"headerPreviewURL":        nil,
		"projectId":               7,
		"privacy":                 "public",
		"pronouns":                "they/them",
		"url":                     "",
		"flags":                   []string{},
		"avatarShape":             "circle",
		"loggedOutPostVisibility": "public",
		"askSettings":             map[string]any{"enabled": false, "allowAnon": false, "requireLoggedInAnon": false},
		"frequentlyUsedTags":      []string{},
		"contactCard":             []string{},
		"deleteAfter":             nil,
		"isSelfProject":           true,
	}
	for k, v := range project {
		base[k] = v
	}
	f.writeJSON(filepath.Join(f.projectDir(handle), handle+".json"), base)
	if err := os.MkdirAll(filepath.Join(f.projectDir(handle), "posts", "published"), 0o755); err != nil {
		f.t.Fatalf("create published dir: %v", err)
	}
}

func (f *exportFixture) addPost(handle, dir string, post map[string]any) string {
	f.t.Helper()
	base := map[string]any{
		"postId":            1,
		"headline":          "a headline",
		"publishedAt":       "2024-03-01T12:30:00Z",
		"state":             1,
		"cws":               []string{},
		"tags":              []string{},
		"blocks":            []any{},
		"pinned":            false,
		"commentsLocked":    false,
		"sharesLocked":      false,
		"singlePostPageUrl": "https://example.com/" + handle + "/post/1-a-headline",
	}
	for k, v := range post {
		base[k] = v
	}
	postDir := filepath.Join(f.projectDir(handle), "posts", "published", dir)
	f.writeJSON(filepath.Join(postDir, "post.json"), base)
	return postDir
}

func (f *exportFixture) writeJSON(path string, v any) {
	f.t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		f.t.Fatalf("encode %s: %v", path, err)
	}
	f.writeFile(path, data)
}

func (f *exportFixture) writeFile(path string, data []byte) {
	f.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		f.t.Fatalf("create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		f.t.Fatalf("write %s: %v", path, err)
	}
}

func (f *exportFixture) readFile(path string) string {
	f.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		f.t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func markdownBlock(content string) map[string]any {
	return map[string]any{"type": "markdown", "markdown": map[string]any{"content": content}}
}

func attachmentBlock(kind, fileURL string, alt any) map[string]any {
	return map[string]any{"type": "attachment", "attachment": map[string]any{
		"kind":         kind,
		"fileURL":      fileURL,
		"previewURL":   fileURL,
		"attachmentId": testAttachmentID,
		"altText":      alt,
		"width":        nil,
		"height":       nil,
	}}
}

func rowBlock(blocks ...map[string]any) map[string]any {
	return map[string]any{"type": "attachment-row", "attachments": blocks}
}
