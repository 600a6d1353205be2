// Package mcp provides the Model Context Protocol server integration for questlog.
package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/questlog/pkg/app"
	"tableflip.dev/questlog/pkg/checklist"
	"tableflip.dev/questlog/pkg/quest"
)

// Service serves checklist operations to MCP clients. The quest tree is
// loaded once; every call mounts it over current persisted state, so writes
// from the terminal UI are visible to the next call.
type Service struct {
	App *app.Service

	mu    sync.Mutex
	nodes []*quest.Node
}

// ProgressSummary is the payload of get_progress and the progress resource.
type ProgressSummary struct {
	Progress    checklist.Progress `json:"progress"`
	AllExpanded bool               `json:"allExpanded"`
	Sections    []SectionSummary   `json:"sections"`
}

// SectionSummary is a section without its quests.
type SectionSummary struct {
	Category string             `json:"category"`
	Header   string             `json:"header"`
	Level    int                `json:"level"`
	Progress checklist.Progress `json:"progress"`
}

// QuestResult reports the state of one quest after a change.
type QuestResult struct {
	ID       quest.ItemID       `json:"id"`
	Checked  bool               `json:"checked"`
	Progress checklist.Progress `json:"progress"`
}

// NewService builds a service over a.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// open mounts a fresh checklist. Callers hold s.mu.
func (s *Service) open(ctx context.Context) (*checklist.Checklist, *checklist.Headless, error) {
	if s.App == nil {
		return nil, nil, errors.New("app service is not configured")
	}
	if s.nodes == nil {
		nodes, err := s.App.Load(ctx)
		if err != nil {
			return nil, nil, err
		}
		s.nodes = nodes
	}
	h := checklist.NewHeadless()
	return s.App.Mount(s.nodes, h), h, nil
}

// ListQuests returns sections and quests, optionally limited to sections
// whose category matches (case-insensitively).
func (s *Service) ListQuests(ctx context.Context, category string) ([]app.ReportSection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, h, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	sections := app.Report(c, h).Sections
	category = strings.TrimSpace(category)
	if category == "" {
		return sections, nil
	}
	var out []app.ReportSection
	for _, sec := range sections {
		if strings.EqualFold(sec.Category, category) {
			out = append(out, sec)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", checklist.ErrUnknownCategory, category)
	}
	return out, nil
}

// SetQuest checks or unchecks a quest and persists progress.
func (s *Service) SetQuest(ctx context.Context, id string, checked bool) (QuestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, _, err := s.open(ctx)
	if err != nil {
		return QuestResult{}, err
	}
	qid := quest.ItemID(strings.TrimSpace(id))
	if err := c.SetChecked(qid, checked); err != nil {
		return QuestResult{}, fmt.Errorf("%w: %s", err, id)
	}
	return QuestResult{ID: qid, Checked: checked, Progress: c.Progress()}, nil
}

// Progress summarises completion.
func (s *Service) Progress(ctx context.Context) (ProgressSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, h, err := s.open(ctx)
	if err != nil {
		return ProgressSummary{}, err
	}
	return summarize(app.Report(c, h)), nil
}

// Export returns the export document.
func (s *Service) Export(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, _, err := s.open(ctx)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := c.Export(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Import applies an export document.
func (s *Service) Import(ctx context.Context, document string) (checklist.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, _, err := s.open(ctx)
	if err != nil {
		return checklist.Progress{}, err
	}
	if err := c.Import(strings.NewReader(document)); err != nil {
		return checklist.Progress{}, err
	}
	return c.Progress(), nil
}

// ToggleAll expands or collapses every section and reports the new flag.
func (s *Service) ToggleAll(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, _, err := s.open(ctx)
	if err != nil {
		return false, err
	}
	if err := c.ToggleAll(); err != nil {
		return false, err
	}
	return c.AllExpanded(), nil
}

func summarize(r app.ReportResult) ProgressSummary {
	out := ProgressSummary{
		Progress:    r.Progress,
		AllExpanded: r.AllExpanded,
		Sections:    make([]SectionSummary, 0, len(r.Sections)),
	}
	for _, s := range r.Sections {
		out.Sections = append(out.Sections, SectionSummary{
			Category: s.Category,
			Header:   s.Header,
			Level:    s.Level,
			Progress: s.Progress,
		})
	}
	return out
}
