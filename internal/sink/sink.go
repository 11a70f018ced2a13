// Package sink persists output images under caller-chosen names.
package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"panostills/internal/projection"
)

// Tags annotate an image. They never change its pixels.
type Tags map[string]string

// Sink stores one encoded image per name and reports where it went.
// Implementations are safe for concurrent use.
type Sink interface {
	Write(name string, img *projection.Image, tags Tags) (string, error)
}

// StillName names the still of a frame: <prefix>_<nnnn>.
func StillName(prefix string, frame int) string {
	return fmt.Sprintf("%s_%04d", prefix, frame)
}

// FaceName names one cube face of a frame: <prefix>_<nnnn>_<F|R|B|L|U|D>.
func FaceName(prefix string, frame int, face projection.Face) string {
	return StillName(prefix, frame) + "_" + face.String()
}

// encodeTagged encodes img and, for JPEG, embeds tags as EXIF. sidecar
// reports whether the tags still need to be stored next to the image.
func encodeTagged(img *projection.Image, f Format, opts Options, tags Tags) (data []byte, sidecar bool, err error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, opts); err != nil {
		return nil, false, err
	}
	if len(tags) == 0 {
		return buf.Bytes(), false, nil
	}
	if f != JPEG {
		return buf.Bytes(), true, nil
	}
	data, err = EmbedExif(buf.Bytes(), tags)
	return data, false, err
}

// Files writes <Dir>/<name>.<ext>. JPEG stills carry their tags as EXIF;
// other formats get a <name>.<ext>.json sidecar when tags are given.
type Files struct {
	Dir     string
	Format  Format
	Options Options
}

// NewFiles creates dir if needed.
func NewFiles(dir string, f Format, opts Options) (*Files, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("sink: create %s: %w", dir, err)
	}
	return &Files{Dir: dir, Format: f, Options: opts}, nil
}

func (s *Files) Write(name string, img *projection.Image, tags Tags) (string, error) {
	path := filepath.Join(s.Dir, name+"."+s.Format.Ext())
	data, sidecar, err := encodeTagged(img, s.Format, s.Options, tags)
	if err != nil {
		return "", fmt.Errorf("sink: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("sink: %w", err)
	}

	if sidecar {
		data, err := json.MarshalIndent(tags, "", "  ")
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path+".json", data, 0644); err != nil {
			return "", fmt.Errorf("sink: write tags: %w", err)
		}
	}
	return path, nil
}

// Memory keeps encoded images in memory, keyed by <name>.<ext>. Tags are
// kept for every format and also embedded in JPEG data.
type Memory struct {
	Format  Format
	Options Options

	mu    sync.Mutex
	files map[string][]byte
	tags  map[string]Tags
}

// NewMemory returns an empty in-memory sink.
func NewMemory(f Format, opts Options) *Memory {
	return &Memory{Format: f, Options: opts, files: map[string][]byte{}, tags: map[string]Tags{}}
}

func (s *Memory) Write(name string, img *projection.Image, tags Tags) (string, error) {
	data, _, err := encodeTagged(img, s.Format, s.Options, tags)
	if err != nil {
		return "", fmt.Errorf("sink: encode %s: %w", name, err)
	}
	key := name + "." + s.Format.Ext()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	if len(tags) > 0 {
		s.tags[key] = tags
	}
	return key, nil
}

// Bytes returns the encoded image stored under key.
func (s *Memory) Bytes(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[key]
	return b, ok
}

// Tags returns the tags stored with key.
func (s *Memory) Tags(key string) Tags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags[key]
}

// Keys lists the stored keys in order.
func (s *Memory) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
