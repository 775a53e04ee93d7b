// Package spreads serves the canonical spread layouts from embedded YAML.
package spreads

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/randomtoy/arcana-go/internal/domain"
)

//go:embed data/*.yaml
var layoutFS embed.FS

// EmbeddedStore loads and validates the embedded layouts once, then serves
// them by spread type.
type EmbeddedStore struct {
	once    sync.Once
	layouts map[string]domain.SpreadLayout
	err     error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	s.layouts = make(map[string]domain.SpreadLayout)
	entries, err := layoutFS.ReadDir("data")
	if err != nil {
		s.err = fmt.Errorf("list embedded layouts: %w", err)
		return
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		raw, err := layoutFS.ReadFile("data/" + e.Name())
		if err != nil {
			s.err = fmt.Errorf("read layout %s: %w", e.Name(), err)
			return
		}
		var layout domain.SpreadLayout
		if err := yaml.Unmarshal(raw, &layout); err != nil {
			s.err = fmt.Errorf("parse layout %s: %w", e.Name(), err)
			return
		}
		if err := layout.Validate(); err != nil {
			s.err = fmt.Errorf("layout %s: %w", e.Name(), err)
			return
		}
		s.layouts[layout.Type] = layout
	}
}

func (s *EmbeddedStore) GetLayout(spreadType string) (domain.SpreadLayout, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.SpreadLayout{}, s.err
	}
	layout, ok := s.layouts[spreadType]
	if !ok {
		return domain.SpreadLayout{}, fmt.Errorf("%w: %s (available: %s)",
			domain.ErrSpreadNotFound, spreadType, strings.Join(s.types(), ", "))
	}
	return layout, nil
}

func (s *EmbeddedStore) ListLayouts() []domain.SpreadLayout {
	s.once.Do(s.init)
	out := make([]domain.SpreadLayout, 0, len(s.layouts))
	for _, t := range s.types() {
		out = append(out, s.layouts[t])
	}
	return out
}

func (s *EmbeddedStore) types() []string {
	types := make([]string, 0, len(s.layouts))
	for t := range s.layouts {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
