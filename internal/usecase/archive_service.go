package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/scorefeed/scorefeed/internal/domain/rawdata"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
)

// ArchiveService stores raw upstream response blobs for replay and
// audit. It sits behind the upstream client as a fire-and-forget sink:
// archival failures are logged, never surfaced to the fetch path.
type ArchiveService struct {
	rawDataRepo rawdata.Repository
	logger      *logging.Logger
}

func NewArchiveService(rawDataRepo rawdata.Repository, logger *logging.Logger) *ArchiveService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ArchiveService{
		rawDataRepo: rawDataRepo,
		logger:      logger,
	}
}

// ArchivePayloads hashes and persists the given blobs. Items missing
// an entity key or body are dropped silently.
func (s *ArchiveService) ArchivePayloads(ctx context.Context, items []rawdata.Payload) {
	if s == nil || s.rawDataRepo == nil || len(items) == 0 {
		return
	}

	cleaned, err := s.prepare(items)
	if err != nil {
		s.logger.WarnContext(ctx, "raw payload preparation failed", "error", err)
		return
	}
	if len(cleaned) == 0 {
		return
	}

	if err := s.rawDataRepo.UpsertMany(ctx, cleaned); err != nil {
		s.logger.WarnContext(ctx, "raw payload archival failed", "count", len(cleaned), "error", err)
	}
}

func (s *ArchiveService) prepare(items []rawdata.Payload) ([]rawdata.Payload, error) {
	cleaned := make([]rawdata.Payload, 0, len(items))
	for _, item := range items {
		item.Source = strings.ToLower(strings.TrimSpace(item.Source))
		item.EntityType = strings.ToLower(strings.TrimSpace(item.EntityType))
		item.EntityKey = strings.TrimSpace(item.EntityKey)
		item.PayloadJSON = strings.TrimSpace(item.PayloadJSON)
		if item.Source == "" || item.EntityType == "" {
			return nil, fmt.Errorf("%w: source and entity_type are required", ErrInvalidInput)
		}
		if item.EntityKey == "" || item.PayloadJSON == "" {
			continue
		}

		// The hash covers source and key too, so identical bodies
		// fetched from different endpoints stay distinguishable.
		buf := bytebufferpool.Get()
		buf.B = append(buf.B, item.Source...)
		buf.B = append(buf.B, '|')
		buf.B = append(buf.B, item.EntityKey...)
		buf.B = append(buf.B, '|')
		buf.B = append(buf.B, item.PayloadJSON...)
		hash := sha256.Sum256(buf.B)
		bytebufferpool.Put(buf)

		item.PayloadHash = hex.EncodeToString(hash[:])
		cleaned = append(cleaned, item)
	}
	return cleaned, nil
}
