package prefs

import (
	"github.com/quasilyte/gdata/v2"
)

// GDataStore keeps each key as a property of one gdata object per profile,
// stored under the platform's per-user data directory.
type GDataStore struct {
	*buffered
}

type gdataBackend struct {
	m      *gdata.Manager
	object string
}

// NewGDataStore opens (or creates) the data directory for appName.
func NewGDataStore(appName, profile string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, err
	}
	return NewGDataStoreWithManager(m, profile), nil
}

// NewGDataStoreWithManager uses an already opened manager.
func NewGDataStoreWithManager(m *gdata.Manager, profile string) *GDataStore {
	return &GDataStore{buffered: newBuffered(&gdataBackend{m: m, object: "profile_" + profile})}
}

func (b *gdataBackend) name() string { return "gdata" }

func (b *gdataBackend) load(key string) (string, bool, error) {
	if !b.m.ObjectPropExists(b.object, key) {
		return "", false, nil
	}
	data, err := b.m.LoadObjectProp(b.object, key)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (b *gdataBackend) flush(values map[string]string) error {
	for k, v := range values {
		if err := b.m.SaveObjectProp(b.object, k, []byte(v)); err != nil {
			return err
		}
	}
	return nil
}
