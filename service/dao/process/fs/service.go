package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/stepflow/model"
	"github.com/viant/stepflow/service/dao"
	"github.com/viant/stepflow/service/dao/criteria"
)

// Service implements a filesystem-based process instance store; one JSON
// document per instance so a workflow survives restarts and may pause
// indefinitely between steps.
type Service struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[string, model.Process] = (*Service)(nil)

// Save persists a process instance to the filesystem
func (s *Service) Save(ctx context.Context, process *model.Process) error {
	if process == nil {
		return dao.ErrNilEntity
	}
	if process.ID == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(process)
	if err != nil {
		return fmt.Errorf("failed to marshal process: %w", err)
	}

	filePath := s.processPath(process.ID)
	err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to save process to file %s: %w", filePath, err)
	}

	return nil
}

// Load retrieves a process instance from the filesystem
func (s *Service) Load(ctx context.Context, id string) (*model.Process, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filePath := s.processPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if process exists: %w", err)
	}

	if !exists {
		return nil, dao.ErrNotFound
	}

	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read process file: %w", err)
	}

	var process model.Process
	if err := json.Unmarshal(data, &process); err != nil {
		return nil, fmt.Errorf("failed to unmarshal process data: %w", err)
	}

	return &process, nil
}

// Delete removes a process instance from the filesystem
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.processPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check if process exists: %w", err)
	}

	if !exists {
		return dao.ErrNotFound
	}

	if err := s.fs.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete process file: %w", err)
	}

	return nil
}

// List returns all process instances from the filesystem
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Process, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.basePath, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list process files: %w", err)
	}

	var processes []*model.Process
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		if !strings.HasSuffix(object.Name(), ".json") {
			continue
		}

		data, err := s.fs.Download(ctx, object)
		if err != nil {
			continue
		}

		var process model.Process
		if err := json.Unmarshal(data, &process); err != nil {
			continue
		}
		if !criteria.Matches(&process, parameters) {
			continue
		}

		processes = append(processes, &process)
	}

	return processes, nil
}

// processPath returns the file path for a process instance
func (s *Service) processPath(id string) string {
	return path.Join(s.basePath, fmt.Sprintf("%s.json", id))
}

// New creates a new filesystem process instance store
func New(basePath string) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	fs := afs.New()

	ctx := context.Background()
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}

	basePath = url.Normalize(basePath, file.Scheme)

	return &Service{
		basePath: basePath,
		fs:       fs,
	}, nil
}
