package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrResourceNoSegment   = errors.New("resource url has no path segment")
	ErrResourcePathInvalid = errors.New("resource path is not valid utf-8 after decoding")
)

// Resource describes one media file copied from the export into the static tree.
type Resource struct {
	URL        string
	LocalPath  string
	SourcePath string
	DestPath   string
	Size       int64
	Checksum   string
}

// CopyStaticResource 把远程资源映射到静态目录并复制文件。
// 源文件按 URL 最后一段（保持百分号编码）在 sourceDir 中查找，
// 目标路径是解码后的完整 URL 路径，挂在 destRoot 之下。
func CopyStaticResource(destRoot, sourceDir string, resource *url.URL) (Resource, error) {
	encodedPath := resource.EscapedPath()
	segments := strings.Split(strings.TrimPrefix(encodedPath, "/"), "/")
	filename := segments[len(segments)-1]
	if filename == "" {
		return Resource{}, fmt.Errorf("%w: %s", ErrResourceNoSegment, resource)
	}

	decoded, err := url.PathUnescape(encodedPath)
	if err != nil {
		return Resource{}, fmt.Errorf("decoding '%s': %w", encodedPath, err)
	}
	if !utf8.ValidString(decoded) {
		return Resource{}, fmt.Errorf("%w: %s", ErrResourcePathInvalid, encodedPath)
	}
	if !strings.HasPrefix(decoded, "/") {
		decoded = "/" + decoded
	}

	src := filepath.Join(sourceDir, filename)
	dest := filepath.Join(destRoot, filepath.FromSlash(strings.TrimPrefix(decoded, "/")))

	size, checksum, err := copyFile(src, dest)
	if err != nil {
		return Resource{}, fmt.Errorf("copying '%s' to '%s': %w", src, dest, err)
	}

	return Resource{
		URL:        resource.String(),
		LocalPath:  decoded,
		SourcePath: src,
		DestPath:   dest,
		Size:       size,
		Checksum:   checksum,
	}, nil
}

func copyFile(src, dest string) (int64, string, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, "", err
	}
	defer in.Close()

	if err := ensureParentDir(dest); err != nil {
		return 0, "", err
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, "", err
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		out.Close()
		return 0, "", err
	}

	size, err := io.Copy(io.MultiWriter(out, hasher), in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, "", err
	}

	return size, hex.EncodeToString(hasher.Sum(nil)), nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
