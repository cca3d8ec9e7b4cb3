package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"stylint/internal/config"
	"stylint/internal/diag"
	"stylint/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest = [sha256.Size]byte

// DiskCache keeps per-file lint results on disk, keyed by content and
// configuration digests. A file whose content and effective configuration
// both match a cached entry skips the pipeline entirely.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores one file's cached findings.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash Digest
	ConfigHash  Digest

	Diagnostics []CachedDiagnostic
	Skipped     bool
}

// CachedDiagnostic is a Diagnostic flattened for serialization.
type CachedDiagnostic struct {
	Category   string
	Message    string
	Line       uint32
	Confidence uint8
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// ConfigFingerprint hashes every configuration field that can change which
// diagnostics a file produces.
func ConfigFingerprint(cfg *config.Config) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "v%d|len=%d|tab=%d|indent=%d|conf=%d|", diskCacheSchemaVersion,
		cfg.LineLength, cfg.TabWidth, cfg.IndentSize, cfg.MinConfidence)
	for _, rule := range cfg.Filters {
		fmt.Fprintf(h, "f=%s|", rule.String())
	}
	fmt.Fprintf(h, "hdr=%v|src=%v|root=%s|max=%d",
		cfg.HeaderExtensions, cfg.SourceExtensions, cfg.Root, cfg.MaxDiagnostics)
	var d Digest
	h.Sum(d[:0])
	return d
}

func cacheKey(file *source.File, cfgHash Digest) Digest {
	h := sha256.New()
	h.Write(file.Hash[:])
	h.Write(cfgHash[:])
	var d Digest
	h.Sum(d[:0])
	return d
}

func cacheLookup(cache *DiskCache, file *source.File, cfg *config.Config) (FileResult, bool) {
	if cache == nil {
		return FileResult{}, false
	}
	cfgHash := ConfigFingerprint(cfg)
	var payload DiskPayload
	ok, err := cache.Get(cacheKey(file, cfgHash), &payload)
	if err != nil || !ok || payload.Schema != diskCacheSchemaVersion {
		return FileResult{}, false
	}
	if payload.ContentHash != Digest(file.Hash) || payload.ConfigHash != cfgHash {
		return FileResult{}, false
	}

	bag := diag.NewBag(cfg.MaxDiagnostics)
	for _, cd := range payload.Diagnostics {
		bag.Add(diag.Diagnostic{
			Category:   diag.Category(cd.Category),
			Message:    cd.Message,
			Path:       file.Path,
			Line:       cd.Line,
			Confidence: diag.Confidence(cd.Confidence),
		})
	}
	return FileResult{Path: file.Path, FileID: file.ID, Bag: bag, Skipped: payload.Skipped}, true
}

func cacheStore(cache *DiskCache, file *source.File, cfg *config.Config, res FileResult) {
	if cache == nil || res.Bag == nil {
		return
	}
	cfgHash := ConfigFingerprint(cfg)
	payload := DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        file.Path,
		ContentHash: Digest(file.Hash),
		ConfigHash:  cfgHash,
		Skipped:     res.Skipped,
	}
	for _, d := range res.Bag.Items() {
		payload.Diagnostics = append(payload.Diagnostics, CachedDiagnostic{
			Category:   string(d.Category),
			Message:    d.Message,
			Line:       d.Line,
			Confidence: uint8(d.Confidence),
		})
	}
	// Cache writes are best effort; a failed write just means a re-lint.
	_ = cache.Put(cacheKey(file, cfgHash), &payload)
}
