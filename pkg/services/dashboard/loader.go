package dashboard

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/de-tools/cost-analyzer/pkg/store/report"
)

// ErrNoReport means the requested source does not point at a readable report.
var ErrNoReport = errors.New("no report loaded")

const maxUploads = 32

// Loader memoizes normalized reports by source until Reload is called.
// Uploaded bytes are kept so a reload re-parses them.
type Loader struct {
	mu          sync.RWMutex
	datasets    map[string]domain.Dataset
	uploads     map[string][]byte
	uploadOrder []string
}

func NewLoader() *Loader {
	return &Loader{
		datasets: make(map[string]domain.Dataset),
		uploads:  make(map[string][]byte),
	}
}

func (l *Loader) LoadPath(path string) (domain.Dataset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return domain.Dataset{}, fmt.Errorf("%w: no report path given", ErrNoReport)
	}

	key := "path:" + path
	if ds, ok := l.cached(key); ok {
		return ds, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %v", ErrNoReport, err)
	}
	if !info.Mode().IsRegular() {
		return domain.Dataset{}, fmt.Errorf("%w: %s is not a file", ErrNoReport, path)
	}

	records, err := report.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Dataset{}, fmt.Errorf("%w: %s does not exist", ErrNoReport, path)
	}
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to load report %s: %w", path, err)
	}

	ds := domain.Dataset{Source: path, Records: records}
	l.store(key, ds)
	return ds, nil
}

// StoreUpload validates and caches an uploaded report, returning the digest
// that LoadUpload accepts.
func (l *Loader) StoreUpload(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	records, err := report.Normalize(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse uploaded report: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.uploads[digest]; !exists {
		if len(l.uploadOrder) >= maxUploads {
			oldest := l.uploadOrder[0]
			l.uploadOrder = l.uploadOrder[1:]
			delete(l.uploads, oldest)
			delete(l.datasets, "upload:"+oldest)
		}
		l.uploads[digest] = data
		l.uploadOrder = append(l.uploadOrder, digest)
	}
	l.datasets["upload:"+digest] = domain.Dataset{Source: "upload:" + digest[:12], Records: records}

	return digest, nil
}

func (l *Loader) LoadUpload(digest string) (domain.Dataset, error) {
	key := "upload:" + digest
	if ds, ok := l.cached(key); ok {
		return ds, nil
	}

	l.mu.RLock()
	data, ok := l.uploads[digest]
	l.mu.RUnlock()
	if !ok {
		return domain.Dataset{}, fmt.Errorf("%w: unknown upload %q", ErrNoReport, digest)
	}

	records, err := report.Normalize(bytes.NewReader(data))
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to parse uploaded report: %w", err)
	}

	ds := domain.Dataset{Source: "upload:" + digest[:12], Records: records}
	l.store(key, ds)
	return ds, nil
}

// Reload drops every memoized dataset.
func (l *Loader) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.datasets = make(map[string]domain.Dataset)
}

func (l *Loader) cached(key string) (domain.Dataset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ds, ok := l.datasets[key]
	return ds, ok
}

func (l *Loader) store(key string, ds domain.Dataset) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.datasets[key] = ds
}
