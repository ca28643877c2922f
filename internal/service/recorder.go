package service

import "time"

// ProjectEntry 汇总一次项目转换的结果。
type ProjectEntry struct {
	Handle       string
	DisplayName  string
	DocumentPath string
	PostCount    int
}

// PostEntry describes one written post document.
type PostEntry struct {
	PostID       uint64
	Project      string
	Headline     string
	PublishedAt  time.Time
	DocumentPath string
	PreviewImage string
	BlockCount   int
}

// AssetEntry describes one copied media file.
type AssetEntry struct {
	Resource
	Project      string
	Kind         string
	AttachmentID string
	Width        int
	Height       int
}

// Recorder receives conversion results. The pipeline never reads them back.
type Recorder interface {
	RecordProject(entry ProjectEntry) error
	RecordPost(entry PostEntry) error
	RecordAsset(entry AssetEntry) error
}

type nopRecorder struct{}

func (nopRecorder) RecordProject(ProjectEntry) error { return nil }
func (nopRecorder) RecordPost(PostEntry) error       { return nil }
func (nopRecorder) RecordAsset(AssetEntry) error     { return nil }
