package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// 示例导出生成器：生成一个覆盖所有内容块类型的最小导出目录
func main() {
	var outputPath string
	var handle string
	flag.StringVar(&outputPath, "o", "sample-export", "directory to write the sample export into")
	flag.StringVar(&handle, "handle", "sample", "project handle")
	flag.Parse()

	fmt.Println("开始生成示例导出...")
	if err := generateSampleExport(outputPath, handle); err != nil {
		log.Fatal("示例导出生成失败:", err)
	}

	fmt.Println("示例导出生成完成！")
	fmt.Printf("项目: %s\n", handle)
	fmt.Println("帖子: 3篇（文本/视频链接、附件行、音频）")
}

const sampleAssetHost = "https://staging.example.com"

func generateSampleExport(root, handle string) error {
	if err := writeJSON(filepath.Join(root, "user.json"), map[string]any{
		"userId": 1,
		"email":  "sample@example.com",
	}); err != nil {
		return err
	}

	projectDir := filepath.Join(root, "project", handle)
	avatarURL := fmt.Sprintf("%s/rc/avatar/%s/avatar%%20image.png", sampleAssetHost, attachmentID("avatar"))
	if err := writePNG(filepath.Join(projectDir, "avatar%20image.png"), color.RGBA{R: 200, G: 80, B: 120, A: 255}); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(projectDir, handle+".json"), map[string]any{
		"handle":                  handle,
		"displayName":             "Sample Project",
		"dek":                     "a sample project",
		"description":             "Generated for trying out the converter.",
		"avatarURL":               avatarURL,
		"avatarPreviewURL":        avatarURL,
		"headerURL":               nil,
		"headerPreviewURL":        nil,
		"projectId":               1,
		"privacy":                 "public",
		"pronouns":                "they/them",
		"url":                     "https://sample.example.org/",
		"flags":                   []string{},
		"avatarShape":             "circle",
		"loggedOutPostVisibility": "public",
		"askSettings":             map[string]any{"enabled": false, "allowAnon": false, "requireLoggedInAnon": false},
		"frequentlyUsedTags":      []string{"sample"},
		"contactCard":             []string{},
		"deleteAfter":             nil,
		"isSelfProject":           true,
	}); err != nil {
		return err
	}

	posts := []struct {
		dir    string
		post   map[string]any
		assets map[string]color.RGBA
		audio  []string
	}{
		{
			dir: "1-hello",
			post: samplePost(handle, 1, "Hello", "2024-01-02T10:00:00Z", []string{"sample", "text"}, []any{
				map[string]any{"type": "markdown", "markdown": map[string]any{"content": "Hello from the **sample** export."}},
				map[string]any{"type": "markdown", "markdown": map[string]any{"content": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}},
			}),
		},
		{
			dir: "2-gallery",
			post: samplePost(handle, 2, "Gallery", "2024-02-03T11:00:00Z", []string{"sample", "art"}, []any{
				map[string]any{"type": "attachment-row", "attachments": []any{
					sampleAttachment("image", "red%20square.png", "a red square"),
					sampleAttachment("image", "blue.png", `a "blue" square`),
				}},
			}),
			assets: map[string]color.RGBA{
				"red%20square.png": {R: 255, A: 255},
				"blue.png":         {B: 255, A: 255},
			},
		},
		{
			dir: "3-listen",
			post: samplePost(handle, 3, "Listen", "2024-03-04T12:00:00Z", nil, []any{
				sampleAttachment("audio", "tune.mp3", ""),
			}),
			audio: []string{"tune.mp3"},
		},
	}

	for _, p := range posts {
		postDir := filepath.Join(projectDir, "posts", "published", p.dir)
		if err := writeJSON(filepath.Join(postDir, "post.json"), p.post); err != nil {
			return err
		}
		for name, c := range p.assets {
			if err := writePNG(filepath.Join(postDir, name), c); err != nil {
				return err
			}
		}
		for _, name := range p.audio {
			if err := os.WriteFile(filepath.Join(postDir, name), []byte("ID3 sample"), 0o644); err != nil {
				return err
			}
		}
		fmt.Printf("✅ 帖子 %s 生成完成\n", p.dir)
	}
	return nil
}

func samplePost(handle string, id int, headline, publishedAt string, tags []string, blocks []any) map[string]any {
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"postId":            id,
		"headline":          headline,
		"publishedAt":       publishedAt,
		"state":             1,
		"cws":               []string{},
		"tags":              tags,
		"blocks":            blocks,
		"pinned":            false,
		"commentsLocked":    false,
		"sharesLocked":      false,
		"singlePostPageUrl": fmt.Sprintf("https://example.com/%s/post/%d-%s", handle, id, headline),
	}
}

func sampleAttachment(kind, filename, alt string) map[string]any {
	id := attachmentID(filename)
	fileURL := fmt.Sprintf("%s/rc/attachment/%s/%s", sampleAssetHost, id, filename)
	var altText any
	if alt != "" {
		altText = alt
	}
	return map[string]any{"type": "attachment", "attachment": map[string]any{
		"kind":         kind,
		"fileURL":      fileURL,
		"previewURL":   fileURL,
		"attachmentId": id,
		"altText":      altText,
		"width":        nil,
		"height":       nil,
	}}
}

// attachmentID 基于名字生成稳定的 UUID，保证多次生成结果一致。
func attachmentID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sampleAssetHost+"/"+name)).String()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writePNG(path string, c color.RGBA) error {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
