// Package archives exports the prompt library as a JSON snapshot and keeps
// snapshots in blob storage when storage is configured.
package archives

import (
	"time"

	"github.com/JaimeStill/promptvault/internal/categories"
	"github.com/JaimeStill/promptvault/internal/prompts"
)

// SnapshotVersion identifies the snapshot document layout.
const SnapshotVersion = 1

// Prefix is the storage key prefix shared by all archives.
const Prefix = "archives/"

// Snapshot is a full export of the library.
type Snapshot struct {
	Version    int                   `json:"version"`
	ExportedAt time.Time             `json:"exported_at"`
	Categories []categories.Category `json:"categories"`
	Prompts    []prompts.Prompt      `json:"prompts"`
}

// Archive describes a stored snapshot.
type Archive struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	SizeText  string    `json:"size_text"`
	CreatedAt time.Time `json:"created_at"`
}

// Listing is one page of stored archives. NextMarker is empty on the last page.
type Listing struct {
	Archives   []Archive `json:"archives"`
	NextMarker string    `json:"next_marker,omitempty"`
}
