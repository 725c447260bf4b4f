// Package attachments resolves upstream attachment descriptors into local
// files: downloadable content is streamed to disk, restricted attachments
// get a metadata dump instead.
package attachments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/openregs/docketsync/internal/regsapi"
)

// Downloader streams one URL to a local file.
type Downloader interface {
	Download(ctx context.Context, rawURL string, dest string) (string, error)
}

// Resolver materializes attachments under a single directory.
type Resolver struct {
	downloader Downloader
	dir        string
	logger     *zap.Logger
}

// New returns a Resolver rooted at dir, creating it if missing.
func New(downloader Downloader, dir string, logger *zap.Logger) (*Resolver, error) {
	if dir == "" {
		return nil, fmt.Errorf("attachments directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create attachments dir %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		downloader: downloader,
		dir:        dir,
		logger:     logger,
	}, nil
}

// Resolve returns the local paths produced for one attachment descriptor,
// in file-list URI order. seq is the 1-based position of the attachment on
// its document, used to name restricted-metadata files.
func (r *Resolver) Resolve(ctx context.Context, docID string, seq int, att regsapi.Attachment) ([]string, error) {
	if att.Restricted() {
		path, err := r.writeRestricted(docID, seq, att)
		if err != nil {
			return nil, err
		}
		r.logger.Info("attachment restricted, metadata saved",
			zap.String("docid", docID),
			zap.Int("attachment", seq),
			zap.String("path", path))
		return []string{path}, nil
	}

	paths := make([]string, 0, len(att.FileFormats))
	for _, uri := range att.FileFormats {
		dest, err := r.destPath(uri)
		if err != nil {
			return nil, err
		}
		if _, err := r.downloader.Download(ctx, uri, dest); err != nil {
			return nil, err
		}
		r.logger.Info("attachment downloaded",
			zap.String("docid", docID),
			zap.String("path", dest))
		paths = append(paths, dest)
	}
	return paths, nil
}

// writeRestricted dumps the full descriptor as indented JSON.
func (r *Resolver) writeRestricted(docID string, seq int, att regsapi.Attachment) (string, error) {
	descriptor, err := att.Descriptor()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, descriptor, "", "  "); err != nil {
		return "", fmt.Errorf("indent attachment descriptor: %w", err)
	}
	path := filepath.Join(r.dir, fmt.Sprintf("%s_%d.json", docID, seq))
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("write restricted metadata %s: %w", path, err)
	}
	return path, nil
}

// destPath derives the local filename from the download URI's identifying
// query parameters. All three are required.
func (r *Resolver) destPath(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse attachment url %s: %w", raw, err)
	}
	q := u.Query()
	docID := q.Get("documentId")
	attNum := q.Get("attachmentNumber")
	ext := q.Get("contentType")
	if docID == "" || attNum == "" || ext == "" {
		return "", fmt.Errorf("attachment url %s is missing documentId, attachmentNumber or contentType", raw)
	}
	return filepath.Join(r.dir, fmt.Sprintf("%s_%s.%s", docID, attNum, ext)), nil
}
