package service

import (
	"github.com/zolaexport/internal/db"
	"gorm.io/gorm"
)

// ManifestService 把转换结果写入 sqlite 清单，实现 Recorder。
// 所有写入按自然键 upsert，重复运行不会产生重复记录。
// Assign 传 map 而不是结构体，零值字段（如 PostCount=0）也会被覆盖。
type ManifestService struct {
	db *gorm.DB
}

// NewManifestService creates a ManifestService instance.
func NewManifestService(gdb *gorm.DB) *ManifestService {
	return &ManifestService{db: gdb}
}

// RecordProject upserts the project row keyed by handle.
func (s *ManifestService) RecordProject(entry ProjectEntry) error {
	var record db.ProjectRecord
	return s.db.Where(db.ProjectRecord{Handle: entry.Handle}).
		Assign(map[string]any{
			"display_name":  entry.DisplayName,
			"document_path": entry.DocumentPath,
			"post_count":    entry.PostCount,
		}).
		FirstOrCreate(&record).Error
}

// RecordPost upserts the post row keyed by post id.
func (s *ManifestService) RecordPost(entry PostEntry) error {
	var record db.PostRecord
	return s.db.Where(db.PostRecord{PostID: entry.PostID}).
		Assign(map[string]any{
			"project_handle": entry.Project,
			"headline":       entry.Headline,
			"published_at":   entry.PublishedAt,
			"document_path":  entry.DocumentPath,
			"preview_image":  entry.PreviewImage,
			"block_count":    entry.BlockCount,
		}).
		FirstOrCreate(&record).Error
}

// RecordAsset upserts the asset row keyed by local path. Image dimensions missing
// from the export are read from the copied file.
func (s *ManifestService) RecordAsset(entry AssetEntry) error {
	width, height := entry.Width, entry.Height
	if entry.Kind == "image" && (width == 0 || height == 0) {
		if w, h, ok := probeImageSize(entry.DestPath); ok {
			width, height = w, h
		}
	}

	var record db.AssetRecord
	return s.db.Where(db.AssetRecord{LocalPath: entry.LocalPath}).
		Assign(map[string]any{
			"url":            entry.URL,
			"project_handle": entry.Project,
			"kind":           entry.Kind,
			"attachment_id":  entry.AttachmentID,
			"source_path":    entry.SourcePath,
			"dest_path":      entry.DestPath,
			"size":           entry.Size,
			"checksum":       entry.Checksum,
			"width":          width,
			"height":         height,
		}).
		FirstOrCreate(&record).Error
}

// Assets lists recorded assets ordered by local path.
func (s *ManifestService) Assets() ([]db.AssetRecord, error) {
	var items []db.AssetRecord
	if err := s.db.Order("local_path asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Posts lists recorded posts, newest first.
func (s *ManifestService) Posts() ([]db.PostRecord, error) {
	var items []db.PostRecord
	if err := s.db.Order("published_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Projects lists recorded projects ordered by handle.
func (s *ManifestService) Projects() ([]db.ProjectRecord, error) {
	var items []db.ProjectRecord
	if err := s.db.Order("handle asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
