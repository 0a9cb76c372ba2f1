package core

import (
	"context"
	"encoding/base64"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/aretw0/myflomo/pkg/content"
)

// ImageScheme prefixes every image reference produced by AddImage.
const ImageScheme = "local-image://"

// ImageRef returns the content-addressed reference for an image payload.
// Identical payloads share a reference.
func ImageRef(data []byte) string {
	return ImageScheme + strconv.FormatUint(xxhash.Sum64(data), 16)
}

// ImageMarkdown returns the snippet that embeds ref in note content.
func ImageMarkdown(ref string) string {
	return fmt.Sprintf("![image](%s)", ref)
}

// AddImage stores data as a data URL in the image bucket and returns its
// reference. mimeType must be an image type and data must fit MaxImageSize.
func (s *Service) AddImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %q", ErrImageType, mimeType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return "", ErrReadOnly
	}
	if int64(len(data)) > s.maxImageSize {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrImageTooLarge, len(data), s.maxImageSize)
	}

	ref := ImageRef(data)
	if _, ok := s.images[ref]; ok {
		return ref, nil
	}

	s.images[ref] = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	s.persistImages(ctx)

	s.logger.Debug("image stored", "ref", ref, "bytes", len(data))
	return ref, nil
}

// Image resolves ref to its data URL.
func (s *Service) Image(ref string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dataURL, ok := s.images[ref]
	return dataURL, ok
}

// Images returns a copy of the image bucket.
func (s *Service) Images() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.images)
}

// OrphanedImages lists, sorted, the stored references no note embeds.
// Orphans are reported only; the bucket is never swept.
func (s *Service) OrphanedImages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	used := make(map[string]struct{})
	for _, n := range s.notes {
		for _, img := range content.ExtractImageReferences(n.Content) {
			used[img.Ref] = struct{}{}
		}
	}

	var orphans []string
	for ref := range s.images {
		if _, ok := used[ref]; !ok {
			orphans = append(orphans, ref)
		}
	}
	slices.Sort(orphans)
	return orphans
}
