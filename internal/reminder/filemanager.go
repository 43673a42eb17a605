package reminder

import (
	"contestd/internal/models"
	"contestd/internal/providers"
	"contestd/internal/reminder/interfaces"
	"contestd/internal/services"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// FileManager persists the registry and subscription state as one
// compressed snapshot. Writes are atomic: tmp file, fsync, rename.
type FileManager struct {
	registry   services.ContestRegistryInterface
	subs       services.SubscriptionStoreInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, registry services.ContestRegistryInterface, subs services.SubscriptionStoreInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		registry:   registry,
		subs:       subs,
		compressor: compressor,
		logger:     logger,
	}
}

// Probe verifies the persistence location is usable. An unusable
// location at startup is fatal: running without durable state risks
// re-notifying every group after a restart.
func (f *FileManager) Probe(fileName string) error {
	dir := filepath.Dir(fileName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persistence dir %s: %w", dir, err)
	}
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("persistence file %s: %w", fileName, err)
	}
	return file.Close()
}

func (f *FileManager) SaveToFile(fileName string) error {
	storage := models.StorageV1{
		Version:       models.StorageVersion,
		Entries:       f.registry.Export(),
		Subscriptions: f.subs.Export(),
	}

	jsonData, err := json.Marshal(&storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		// Fresh file created by Probe.
		return nil
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress snapshot: %w", err)
	}

	var storage models.StorageV1
	if err := json.Unmarshal(decompressed, &storage); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if storage.Version > models.StorageVersion {
		return fmt.Errorf("snapshot version %d is newer than supported %d", storage.Version, models.StorageVersion)
	}

	f.registry.Import(storage.Entries)
	f.subs.Import(storage.Subscriptions)
	f.logger.Infof(providers.TypeApp, "Restored %d contests, %d groups from %s",
		len(storage.Entries), len(storage.Subscriptions), fileName)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
