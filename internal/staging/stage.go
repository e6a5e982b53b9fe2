// Package staging keeps images an admin has picked on a property form but not
// yet uploaded. Each staged file has a preview URI served from a local
// directory until the file is removed, flushed or discarded.
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/domain"
)

// PreviewPrefix is the URI path previews are served under.
const PreviewPrefix = "/staging/preview/"

// File is one staged image on disk.
type File struct {
	ID   string
	Name string
	Path string
	MIME string
	Size int64
}

// Incoming is a file offered to Append.
type Incoming struct {
	Name string
	Data io.Reader
}

// Uploader sends staged files to remote storage and returns their URLs in
// order.
type Uploader func(files []apiclient.Upload) ([]string, error)

// Stage is the staged image list of one form. files and previews are always
// the same length and index-aligned.
type Stage struct {
	reg      *Registry
	mu       sync.Mutex
	files    []File
	previews []string
}

func (s *Stage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

func (s *Stage) Files() []File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]File(nil), s.files...)
}

func (s *Stage) Previews() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.previews...)
}

// Append stages every incoming file or none of them. Files that are not
// images or exceed the size limit are rejected.
func (s *Stage) Append(in ...Incoming) error {
	type sniffed struct {
		name string
		data []byte
		mime *mimetype.MIME
	}
	ready := make([]sniffed, 0, len(in))
	for _, f := range in {
		data, err := io.ReadAll(io.LimitReader(f.Data, s.reg.MaxBytes+1))
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Name, err)
		}
		if int64(len(data)) > s.reg.MaxBytes {
			return fmt.Errorf("%s: %w", f.Name, domain.ErrTooLarge)
		}
		m := mimetype.Detect(data)
		if !strings.HasPrefix(m.String(), "image/") {
			return fmt.Errorf("%s: %w", f.Name, domain.ErrNotImage)
		}
		ready = append(ready, sniffed{name: filepath.Base(f.Name), data: data, mime: m})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.files)+len(ready) > s.reg.MaxFiles {
		return domain.ErrStageFull
	}
	added := make([]File, 0, len(ready))
	for _, r := range ready {
		id := uuid.NewString()
		path := filepath.Join(s.reg.Dir, id+r.mime.Extension())
		if err := os.WriteFile(path, r.data, 0o600); err != nil {
			for _, f := range added {
				s.reg.release(f)
			}
			return fmt.Errorf("stage %s: %w", r.name, err)
		}
		f := File{ID: id, Name: r.name, Path: path, MIME: r.mime.String(), Size: int64(len(r.data))}
		s.reg.register(f)
		added = append(added, f)
	}
	for _, f := range added {
		s.files = append(s.files, f)
		s.previews = append(s.previews, PreviewPrefix+f.ID)
	}
	return nil
}

// Remove drops the file at index i and releases its preview.
func (s *Stage) Remove(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.files) {
		return domain.ErrStageIndex
	}
	f := s.files[i]
	s.files = append(s.files[:i:i], s.files[i+1:]...)
	s.previews = append(s.previews[:i:i], s.previews[i+1:]...)
	s.reg.release(f)
	return nil
}

// Flush hands every staged file to up. On success the stage is emptied and
// the remote URLs returned; on failure nothing is dropped.
func (s *Stage) Flush(up Uploader) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.files) == 0 {
		return nil, nil
	}
	uploads := make([]apiclient.Upload, 0, len(s.files))
	for _, f := range s.files {
		b, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("read staged %s: %w", f.Name, err)
		}
		uploads = append(uploads, apiclient.Upload{Name: f.Name, Content: b})
	}
	urls, err := up(uploads)
	if err != nil {
		return nil, err
	}
	s.clear()
	return urls, nil
}

// Discard releases every staged file.
func (s *Stage) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Stage) clear() {
	for _, f := range s.files {
		s.reg.release(f)
	}
	s.files, s.previews = nil, nil
}
