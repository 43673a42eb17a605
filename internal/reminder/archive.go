package reminder

import (
	"contestd/internal/models"
	"contestd/internal/providers"
	"contestd/internal/reminder/interfaces"
	"contestd/internal/structures"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// ArchiveFile is the on-disk format for one platform's archived
// contests.
type ArchiveFile struct {
	Contests []models.Contest `json:"contests"`
}

// Archive keeps a compressed append-only record of contests that ran
// to completion and were pruned from the registry. Cancellations are
// not archived. Appends are buffered in memory and written on Flush.
type Archive struct {
	mu         sync.Mutex
	dir        string
	pending    map[models.Platform][]models.Contest
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

// NewArchiveProvider wires the archive from config for DI.
func NewArchiveProvider(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Archive {
	return NewArchive(conf.Archive.Dir, compressor, logger)
}

// NewArchive returns nil when dir is empty; the scheduler treats a nil
// archive as disabled.
func NewArchive(dir string, compressor interfaces.CompressorInterface, logger providers.Logger) *Archive {
	if dir == "" {
		return nil
	}
	return &Archive{
		dir:        dir,
		pending:    make(map[models.Platform][]models.Contest),
		compressor: compressor,
		logger:     logger,
	}
}

func (a *Archive) Add(c models.Contest) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending[c.Platform] = append(a.pending[c.Platform], c)
}

// List returns the archived contests for one platform, including any
// not yet flushed.
func (a *Archive) List(platform models.Platform) ([]models.Contest, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	file, err := a.load(platform)
	if err != nil {
		return nil, err
	}
	out := make([]models.Contest, 0, len(file.Contests)+len(a.pending[platform]))
	out = append(out, file.Contests...)
	out = append(out, a.pending[platform]...)
	return out, nil
}

// Flush appends pending contests to their platform files.
func (a *Archive) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}

	for platform, contests := range a.pending {
		if len(contests) == 0 {
			continue
		}
		file, err := a.load(platform)
		if err != nil {
			a.logger.Warnf(providers.TypeApp, "archive %s unreadable, rewriting: %s", platform, err)
			file = &ArchiveFile{}
		}
		file.Contests = append(file.Contests, contests...)
		if err := a.write(platform, file); err != nil {
			return err
		}
		delete(a.pending, platform)
	}
	return nil
}

func (a *Archive) path(platform models.Platform) string {
	return filepath.Join(a.dir, string(platform)+".dat")
}

func (a *Archive) load(platform models.Platform) (*ArchiveFile, error) {
	data, err := os.ReadFile(a.path(platform))
	if err != nil {
		if os.IsNotExist(err) {
			return &ArchiveFile{}, nil
		}
		return nil, err
	}

	decompressed, err := a.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}
	var file ArchiveFile
	if err := json.Unmarshal(decompressed, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (a *Archive) write(platform models.Platform, file *ArchiveFile) error {
	jsonData, err := json.Marshal(file)
	if err != nil {
		return err
	}
	data, err := a.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmp := a.path(platform) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, a.path(platform))
}
