package meta

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/stepflow/model"
	"gopkg.in/yaml.v3"
)

// Service loads process-type configuration documents. Each process type is a
// YAML document named <type>.yaml under the base URL; decoded configurations
// are cached until Refresh or Upsert.
type Service struct {
	fs        afs.Service
	baseURL   string
	fsOptions []storage.Option
	cache     map[string]*model.ProcessConfig
	mux       sync.RWMutex
}

// Lookup returns the configuration for the supplied process type or nil when
// the type is unknown.
func (s *Service) Lookup(ctx context.Context, processType string) (*model.ProcessConfig, error) {
	if processType == "" {
		return nil, nil
	}

	s.mux.RLock()
	cached, ok := s.cache[processType]
	s.mux.RUnlock()
	if ok {
		return cached, nil
	}

	URL := url.Join(s.baseURL, processType+".yaml")
	exists, err := s.fs.Exists(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to check config %s: %w", URL, err)
	}
	if !exists {
		return nil, nil
	}

	data, err := s.fs.DownloadWithURL(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	config, err := s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config from %s: %w", URL, err)
	}

	s.mux.Lock()
	s.cache[processType] = config
	s.mux.Unlock()
	return config, nil
}

// DecodeYAML decodes a process configuration from YAML without caching it.
func (s *Service) DecodeYAML(encoded []byte) (*model.ProcessConfig, error) {
	return s.decode(encoded)
}

func (s *Service) decode(encoded []byte) (*model.ProcessConfig, error) {
	config := &model.ProcessConfig{}
	if err := yaml.Unmarshal(encoded, config); err != nil {
		return nil, err
	}
	if issues := config.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	return config, nil
}

// Refresh discards any cached copy of the supplied process type so the next
// Lookup reloads it from storage.
func (s *Service) Refresh(processType string) {
	s.mux.Lock()
	delete(s.cache, processType)
	s.mux.Unlock()
}

// Upsert stores the supplied configuration in the cache under the specified
// process type, making it immediately available without a storage round-trip.
func (s *Service) Upsert(processType string, config *model.ProcessConfig) {
	s.mux.Lock()
	s.cache[processType] = config
	s.mux.Unlock()
}

// New creates a configuration service rooted at baseURL.
func New(fs afs.Service, baseURL string, fsOptions ...storage.Option) *Service {
	return &Service{
		fs:        fs,
		baseURL:   baseURL,
		fsOptions: fsOptions,
		cache:     map[string]*model.ProcessConfig{},
	}
}
