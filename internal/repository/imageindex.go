package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Aricg/PuckDraft/internal/constants"
	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var deviceNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// ImageIndexRepository derives the camera image listing from the upload
// directory layout: <root>/<device>/<YYYY-MM-DD>/<unix-millis>.<ext>. The
// filesystem is the source of truth; nothing is cached, the tree is walked
// on every call.
type ImageIndexRepository struct {
	root   string
	logger zerolog.Logger
}

func NewImageIndexRepository(root string, logger zerolog.Logger) *ImageIndexRepository {
	return &ImageIndexRepository{root: root, logger: logger}
}

// Root returns the upload directory path.
func (r *ImageIndexRepository) Root() string {
	return r.root
}

// SanitizeDevice strips everything but alphanumerics, dashes and
// underscores from a device name. An empty result becomes "unknown".
func SanitizeDevice(name string) string {
	cleaned := deviceNameSanitizer.ReplaceAllString(name, "")
	if cleaned == "" {
		return "unknown"
	}
	return cleaned
}

// SaveUpload stores one camera frame under the device/date tree and returns
// the path relative to the upload root. The timestamp in the filename is
// the upload arrival time in unix milliseconds.
func (r *ImageIndexRepository) SaveUpload(device, ext string, src io.Reader) (string, error) {
	device = SanitizeDevice(device)
	now := time.Now()
	dir := filepath.Join(r.root, device, now.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	filename := strconv.FormatInt(now.UnixMilli(), 10) + strings.ToLower(ext)
	path := filepath.Join(dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	rel, _ := filepath.Rel(r.root, path)
	r.logger.Info().Str("device", device).Str("file", rel).Msg("image stored")
	return rel, nil
}

// List walks the upload tree and builds the device/date index. Devices are
// scanned in parallel; per-date entries come back sorted ascending by
// timestamp. A missing upload root yields an empty index, not an error.
func (r *ImageIndexRepository) List(ctx context.Context) (domain.ImageIndex, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ImageScanTimeout)
	defer cancel()

	devices, err := os.ReadDir(r.root)
	if os.IsNotExist(err) {
		return domain.ImageIndex{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read upload root: %w", err)
	}

	index := domain.ImageIndex{}
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for _, device := range devices {
		if !device.IsDir() {
			continue
		}
		deviceName := device.Name()
		g.Go(func() error {
			dates, err := r.scanDevice(deviceName)
			if err != nil {
				return err
			}
			if len(dates) == 0 {
				return nil
			}
			mu.Lock()
			index[deviceName] = dates
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return index, nil
}

func (r *ImageIndexRepository) scanDevice(device string) (map[string][]domain.ImageEntry, error) {
	dates, err := os.ReadDir(filepath.Join(r.root, device))
	if err != nil {
		return nil, fmt.Errorf("failed to read device directory %s: %w", device, err)
	}

	result := map[string][]domain.ImageEntry{}
	for _, date := range dates {
		if !date.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(r.root, device, date.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read date directory %s/%s: %w", device, date.Name(), err)
		}

		var entries []domain.ImageEntry
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			name := file.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if !imageExtensions[ext] {
				continue
			}
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			ts, err := strconv.ParseInt(stem, 10, 64)
			if err != nil || ts <= 0 {
				// Stray files that are not timestamp-named are invisible
				// to the index.
				r.logger.Debug().Str("file", name).Msg("skipping non-timestamp image file")
				continue
			}
			entries = append(entries, domain.ImageEntry{
				URL:       "/uploads/" + device + "/" + date.Name() + "/" + name,
				Timestamp: ts,
				Filename:  name,
			})
		}
		if len(entries) == 0 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Timestamp < entries[j].Timestamp
		})
		result[date.Name()] = entries
	}
	return result, nil
}
