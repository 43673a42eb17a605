package models

// StorageV1 is the persistence envelope with an explicit version field.
// Entries and Subscriptions are keyed by ContestKey string and group id
// respectively; a save and restore across a restart must reproduce both
// maps exactly.
type StorageV1 struct {
	Version       int                       `json:"version"`
	Entries       map[string]*RegistryEntry `json:"entries"`
	Subscriptions map[string]*Subscription  `json:"subscriptions"`
}

const StorageVersion = 1

func NewStorageV1() *StorageV1 {
	return &StorageV1{
		Version:       StorageVersion,
		Entries:       make(map[string]*RegistryEntry),
		Subscriptions: make(map[string]*Subscription),
	}
}
