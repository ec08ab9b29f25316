package archives

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/promptvault/internal/categories"
	"github.com/JaimeStill/promptvault/internal/prompts"
	"github.com/JaimeStill/promptvault/pkg/formatting"
	"github.com/JaimeStill/promptvault/pkg/storage"
)

const contentType = "application/json"

type repo struct {
	prompts    prompts.System
	categories categories.System
	store      storage.System
	logger     *slog.Logger
	now        func() time.Time
}

// New creates an archive System. store may be nil, which leaves Snapshot
// working and disables everything else.
func New(
	prompts prompts.System,
	categories categories.System,
	store storage.System,
	logger *slog.Logger,
) System {
	return &repo{
		prompts:    prompts,
		categories: categories,
		store:      store,
		logger:     logger.With("system", "archives"),
		now:        time.Now,
	}
}

func (r *repo) Handler(maxListSize int32) *Handler {
	return NewHandler(r, r.logger, maxListSize)
}

func (r *repo) Snapshot(ctx context.Context) (*Snapshot, error) {
	s := &Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: r.now().UTC(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Categories, err = r.categories.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		s.Prompts, err = r.prompts.List(gctx, prompts.Filters{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("snapshot library: %w", err)
	}

	return s, nil
}

func (r *repo) Save(ctx context.Context) (*Archive, error) {
	if r.store == nil {
		return nil, ErrDisabled
	}

	s, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	size := int64(buf.Len())

	key := fmt.Sprintf("%s%s-%s.json", Prefix, s.ExportedAt.Format("20060102T150405Z"), uuid.NewString())
	if err := r.store.Upload(ctx, key, &buf, contentType); err != nil {
		return nil, err
	}

	r.logger.Info("archive saved",
		"key", key,
		"size", formatting.FormatBytes(size, 1),
		"prompts", len(s.Prompts),
		"categories", len(s.Categories),
	)

	return &Archive{
		Key:       key,
		Size:      size,
		SizeText:  formatting.FormatBytes(size, 1),
		CreatedAt: s.ExportedAt,
	}, nil
}

func (r *repo) List(ctx context.Context, marker string, maxResults int32) (*Listing, error) {
	if r.store == nil {
		return nil, ErrDisabled
	}

	result, err := r.store.List(ctx, Prefix, marker, maxResults)
	if err != nil {
		return nil, err
	}

	listing := &Listing{
		Archives:   make([]Archive, 0, len(result.Blobs)),
		NextMarker: result.NextMarker,
	}
	for _, b := range result.Blobs {
		listing.Archives = append(listing.Archives, Archive{
			Key:       b.Key,
			Size:      b.ContentLength,
			SizeText:  formatting.FormatBytes(b.ContentLength, 1),
			CreatedAt: b.LastModified,
		})
	}

	return listing, nil
}

func (r *repo) Open(ctx context.Context, key string) (*storage.Blob, error) {
	if r.store == nil {
		return nil, ErrDisabled
	}

	blob, err := r.store.Download(ctx, Key(key))
	if err != nil {
		return nil, mapStorageError(err)
	}
	return blob, nil
}

func (r *repo) Exists(ctx context.Context, key string) (bool, error) {
	if r.store == nil {
		return false, ErrDisabled
	}
	return r.store.Exists(ctx, Key(key))
}

func (r *repo) Delete(ctx context.Context, key string) error {
	if r.store == nil {
		return ErrDisabled
	}

	key = Key(key)
	if err := r.store.Delete(ctx, key); err != nil {
		return mapStorageError(err)
	}

	r.logger.Info("archive deleted", "key", key)
	return nil
}

// Key places name under Prefix unless it already is.
func Key(name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + name
}

func mapStorageError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
