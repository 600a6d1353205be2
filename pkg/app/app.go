// Package app wires quest loading, persistence and the checklist together so
// the terminal UI, the CLI and the MCP server share one code path.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/questlog/pkg/checklist"
	"tableflip.dev/questlog/pkg/quest"
	"tableflip.dev/questlog/pkg/store"
)

// Service loads the quest document and mounts checklists over persistence.
type Service struct {
	Loader      quest.Loader
	Persistence store.Persistence
	Options     checklist.RenderOptions
	Logger      *log.Logger
	ExportName  string
}

var errNoPersistence = errors.New("app: no persistence configured")

// New builds a Service from resolved configuration.
func New(cfg store.Config, p store.Persistence, logger *log.Logger) *Service {
	return &Service{
		Loader: quest.Source{
			Location: cfg.Source(),
			Client:   &http.Client{Timeout: 30 * time.Second},
		},
		Persistence: p,
		Options: checklist.RenderOptions{
			ARIA:          cfg.ARIA(),
			ClickAnywhere: cfg.ClickAnywhere(),
		},
		Logger:     logger,
		ExportName: cfg.ExportName(),
	}
}

// Load fetches and builds the quest tree. Failures are *quest.LoadError.
func (s *Service) Load(ctx context.Context) ([]*quest.Node, error) {
	if s.Loader == nil {
		return nil, &quest.LoadError{Source: "(none)", Err: errors.New("no quest source configured")}
	}
	doc, err := s.Loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	nodes := quest.Build(doc)
	s.logger().Debug("quest data loaded", "categories", doc.Len())
	return nodes, nil
}

// Open loads the quest tree and mounts it on surface.
func (s *Service) Open(ctx context.Context, surface checklist.Surface) (*checklist.Checklist, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	nodes, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.Mount(nodes, surface), nil
}

// Mount renders already loaded nodes on surface.
func (s *Service) Mount(nodes []*quest.Node, surface checklist.Surface) *checklist.Checklist {
	return checklist.Mount(nodes, surface, s.Persistence,
		checklist.WithLogger(s.logger()),
		checklist.WithRenderOptions(s.Options),
	)
}

// OpenHeadless mounts the checklist on an in-memory surface.
func (s *Service) OpenHeadless(ctx context.Context) (*checklist.Checklist, *checklist.Headless, error) {
	h := checklist.NewHeadless()
	c, err := s.Open(ctx, h)
	if err != nil {
		return nil, nil, err
	}
	return c, h, nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Reset forgets all persisted progress and expansion state.
func (s *Service) Reset(ctx context.Context) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range []string{store.ProgressKey, store.ExpansionKey} {
		if err := s.Persistence.Erase(key); err != nil {
			return err
		}
	}
	s.logger().Info("persisted state cleared")
	return nil
}

func (s *Service) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
