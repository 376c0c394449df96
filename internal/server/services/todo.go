package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"taskkeeper/internal/common"
	"taskkeeper/internal/server/models"
	"taskkeeper/internal/server/repositories/todos"
)

// ListQuery carries the caller-supplied filter and sort parameters for List.
// All fields are optional; zero values mean "no restriction".
type ListQuery struct {
	Completed   string // "true" (any case) selects completed, any other non-empty value pending
	DueDate     string // calendar-day match; unparsable values are ignored
	SortBy      string // duedate | title | creationdate | completed (case-insensitive)
	Descending  bool
	TitleFilter string // case-insensitive substring match
	UserID      string // owner filter; overwritten for non-admin callers
}

// sort sentinels for records without a due date
var (
	minDueDate = time.Time{}
	maxDueDate = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

type TodoService struct {
	todos todos.Repository
}

func NewTodoService(repo todos.Repository) *TodoService {
	return &TodoService{todos: repo}
}

// List returns the records visible to the caller, filtered and sorted.
// A non-admin caller is always scoped to their own records, regardless of
// any UserID the query carries. An empty result is not an error.
func (s *TodoService) List(ctx context.Context, q ListQuery, callerID string, isAdmin bool) ([]*models.TodoItem, error) {
	items, err := s.todos.All(ctx)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		q.UserID = callerID
	}

	filtered := make([]*models.TodoItem, 0, len(items))
	for _, t := range items {
		if matches(t, q) {
			filtered = append(filtered, t)
		}
	}

	sortItems(filtered, q.SortBy, q.Descending)
	return filtered, nil
}

func matches(t *models.TodoItem, q ListQuery) bool {
	if q.UserID != "" && t.UserID != q.UserID {
		return false
	}

	if q.Completed != "" {
		want := strings.EqualFold(q.Completed, "true")
		if t.Completed != want {
			return false
		}
	}

	if q.DueDate != "" {
		if due, ok := parseDate(q.DueDate); ok {
			if t.DueDate == nil || !sameDay(*t.DueDate, due) {
				return false
			}
		}
	}

	if q.TitleFilter != "" &&
		!strings.Contains(strings.ToLower(t.Title), strings.ToLower(q.TitleFilter)) {
		return false
	}

	return true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sortItems(items []*models.TodoItem, sortBy string, descending bool) {
	var less func(a, b *models.TodoItem) bool

	switch strings.ToLower(sortBy) {
	case "duedate":
		less = func(a, b *models.TodoItem) bool {
			return dueDateOrDefault(a, descending).Before(dueDateOrDefault(b, descending))
		}
	case "title":
		less = func(a, b *models.TodoItem) bool { return a.Title < b.Title }
	case "creationdate":
		less = func(a, b *models.TodoItem) bool { return a.CreationDate.Before(b.CreationDate) }
	case "completed":
		less = func(a, b *models.TodoItem) bool { return !a.Completed && b.Completed }
	default:
		// unrecognized key leaves the order unchanged
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		if descending {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

// dueDateOrDefault substitutes the extreme of the chosen direction for a
// missing due date, so undated records float to the front either way.
func dueDateOrDefault(t *models.TodoItem, descending bool) time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	if descending {
		return maxDueDate
	}
	return minDueDate
}

// GetByID returns the caller's record or common.ErrorNotFound; ownership
// failures are indistinguishable from absence.
func (s *TodoService) GetByID(ctx context.Context, id int, callerID string) (*models.TodoItem, error) {
	return s.todos.GetByID(ctx, id, callerID)
}

// Create stores a new record owned by the caller.
func (s *TodoService) Create(ctx context.Context, item *models.TodoItem, callerID string) (*models.TodoItem, error) {
	item.UserID = callerID
	return s.todos.Create(ctx, item)
}

// Update merges the patch into the caller's record and returns the updated
// state, or common.ErrorNotFound when no owned record matches.
func (s *TodoService) Update(ctx context.Context, id int, patch *models.TodoItem, callerID string) (*models.TodoItem, error) {
	ok, err := s.todos.Update(ctx, id, patch, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s.todos.GetByID(ctx, id, callerID)
}

// Complete marks the caller's record completed and returns it.
func (s *TodoService) Complete(ctx context.Context, id int, callerID string) (*models.TodoItem, error) {
	return s.todos.MarkCompleted(ctx, id, callerID)
}

// Delete removes a record: owners remove their own, admins remove any.
func (s *TodoService) Delete(ctx context.Context, id int, callerID string, isAdmin bool) error {
	var (
		ok  bool
		err error
	)
	if isAdmin {
		ok, err = s.todos.DeleteAny(ctx, id)
	} else {
		ok, err = s.todos.Delete(ctx, id, callerID)
	}
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}
