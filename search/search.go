// Package search provides full-text lookup over a task list using an
// in-memory Bleve index.
//
// The index is a snapshot. Like the renderer, it does not follow the store;
// callers Rebuild it after mutating.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/vinayprograms/tasklist/errors"
	"github.com/vinayprograms/tasklist/tasks"
)

var errClosed = errors.Unavailable("search index closed")

// DefaultLimit is used when a Filter has no Limit.
const DefaultLimit = 10

// taskDocument is what gets indexed for each task.
type taskDocument struct {
	Text      string    `json:"text"`
	Priority  string    `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows a search.
type Filter struct {
	// Priority restricts hits to one priority. Empty means any.
	Priority tasks.Priority

	// Completed restricts hits by status. Nil means any.
	Completed *bool

	// Limit caps the number of hits. Zero means DefaultLimit.
	Limit int
}

// Index is a rebuildable full-text index of tasks.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
}

// New creates an empty index.
func New() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	taskMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name

	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	boolFieldMapping := bleve.NewBooleanFieldMapping()
	dateFieldMapping := bleve.NewDateTimeFieldMapping()

	taskMapping.AddFieldMappingsAt("text", textFieldMapping)
	taskMapping.AddFieldMappingsAt("priority", keywordFieldMapping)
	taskMapping.AddFieldMappingsAt("completed", boolFieldMapping)
	taskMapping.AddFieldMappingsAt("created_at", dateFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = taskMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// Rebuild replaces the indexed snapshot with list. Failures are
// UNAVAILABLE and leave the previous snapshot in place.
func (i *Index) Rebuild(list []tasks.Task) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return errors.Unavailable("failed to create bleve index", errors.WithCause(err))
	}

	batch := fresh.NewBatch()
	for _, t := range list {
		doc := taskDocument{
			Text:      t.Text,
			Priority:  string(t.Priority),
			Completed: t.Completed,
			CreatedAt: t.CreatedAt,
		}
		if err := batch.Index(strconv.Itoa(t.ID), doc); err != nil {
			fresh.Close()
			return errors.Unavailable(fmt.Sprintf("failed to index task %d", t.ID),
				errors.WithTaskID(t.ID), errors.WithCause(err))
		}
	}
	if batch.Size() > 0 {
		if err := fresh.Batch(batch); err != nil {
			fresh.Close()
			return errors.Unavailable("failed to index tasks", errors.WithCause(err))
		}
	}

	i.mu.Lock()
	old := i.index
	i.index = fresh
	i.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// Search returns the ids of tasks matching text, best match first.
func (i *Index) Search(ctx context.Context, text string, filter Filter) ([]int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.InvalidInput("search query is empty")
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown priority %q", filter.Priority))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	textQuery := bleve.NewMatchQuery(text)
	textQuery.SetField("text")

	conjuncts := []query.Query{textQuery}
	if filter.Priority != "" {
		pq := bleve.NewTermQuery(string(filter.Priority))
		pq.SetField("priority")
		conjuncts = append(conjuncts, pq)
	}
	if filter.Completed != nil {
		cq := bleve.NewBoolFieldQuery(*filter.Completed)
		cq.SetField("completed")
		conjuncts = append(conjuncts, cq)
	}

	req := bleve.NewSearchRequest(bleve.NewConjunctionQuery(conjuncts...))
	req.Size = limit

	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.index == nil {
		return nil, errClosed
	}
	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "search canceled")
		}
		return nil, errors.Wrap(err, "search failed")
	}

	ids := make([]int, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := strconv.Atoi(hit.ID)
		if err != nil {
			return nil, errors.New(errors.ErrCodeCorruption, fmt.Sprintf("non-numeric document id %q", hit.ID))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Count returns the number of indexed tasks.
func (i *Index) Count() (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.index == nil {
		return 0, errClosed
	}
	n, err := i.index.DocCount()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close releases the index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.index == nil {
		return nil
	}
	err := i.index.Close()
	i.index = nil
	return err
}
