package odoorpc

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/odoo-tools/domainconv/internal/schema"
)

// fieldsCache holds fields_get results keyed by a hash of the server URL,
// database and model name. It is bounded: once maxEntries is reached the
// whole cache is cleared rather than tracking per-entry age.
type fieldsCache struct {
	mu         sync.RWMutex
	entries    map[uint64]map[string]schema.FieldInfo
	maxEntries int
}

func newFieldsCache(maxEntries int) *fieldsCache {
	return &fieldsCache{
		entries:    make(map[uint64]map[string]schema.FieldInfo),
		maxEntries: maxEntries,
	}
}

func (fc *fieldsCache) key(url, database, model string) uint64 {
	h := xxhash.New()
	h.WriteString(url)
	h.WriteString("|")
	h.WriteString(database)
	h.WriteString("|")
	h.WriteString(model)
	return h.Sum64()
}

func (fc *fieldsCache) get(key uint64) (map[string]schema.FieldInfo, bool) {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	fields, ok := fc.entries[key]
	return fields, ok
}

func (fc *fieldsCache) put(key uint64, fields map[string]schema.FieldInfo) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if len(fc.entries) >= fc.maxEntries {
		fc.entries = make(map[uint64]map[string]schema.FieldInfo)
	}
	fc.entries[key] = fields
}
