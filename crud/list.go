package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"attendancepro-server-go/db"
)

// Errors returned by List operations
var (
	ErrDuplicateID    = errors.New("id already exists")
	ErrNotFound       = errors.New("record not found")
	ErrDeleteDeclined = errors.New("delete not confirmed")
)

// Confirmer asks the user to approve a destructive action
type Confirmer func(ctx context.Context, prompt string) bool

// AlwaysConfirm approves every prompt
func AlwaysConfirm(context.Context, string) bool { return true }

// Options describe one page dataset
type Options[T any] struct {
	Key  string     // Storage key
	Seed func() []T // Fallback dataset when the key is empty or unreadable

	ID     func(T) string   // Natural key
	Fields func(T) []string // Fields matched by Filter

	UniqueIDs bool // Reject Add when the id is taken
	Append    bool // Add to the end instead of the front

	Prepare func(T) T           // Create-time defaults
	Merge   func(old, next T) T // Edit-time carry-over from the stored record

	DeletePrompt string
}

// List is the load / filter / mutate / persist controller shared by every roster page.
// Every mutation rewrites the whole array under Key.
type List[T any] struct {
	store  db.Store
	opts   Options[T]
	logger *slog.Logger
	mu     sync.Mutex
}

// New creates a List over store
func New[T any](store db.Store, opts Options[T], logger *slog.Logger) *List[T] {
	if opts.Seed == nil {
		opts.Seed = func() []T { return []T{} }
	}
	if opts.DeletePrompt == "" {
		opts.DeletePrompt = "Are you sure you want to delete this record?"
	}
	return &List[T]{
		store:  store,
		opts:   opts,
		logger: logger.With("key", opts.Key),
	}
}

// Key returns the storage key
func (l *List[T]) Key() string {
	return l.opts.Key
}

// Load returns the stored dataset, writing the seed first when nothing usable is stored
func (l *List[T]) Load(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

func (l *List[T]) load(ctx context.Context) ([]T, error) {
	data, err := l.store.Get(ctx, l.opts.Key)
	if err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to load %s: %w", l.opts.Key, err)
	}

	if err == nil {
		var records []T
		if jsonErr := json.Unmarshal(data, &records); jsonErr == nil && records != nil {
			return records, nil
		} else if jsonErr != nil {
			l.logger.WarnContext(ctx, "Stored dataset unreadable, falling back to seed", "error", jsonErr)
		}
	} else {
		l.logger.InfoContext(ctx, "No stored dataset, writing seed")
	}

	seed := l.opts.Seed()
	if err := l.save(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func (l *List[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", l.opts.Key, err)
	}
	if err := l.store.Set(ctx, l.opts.Key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", l.opts.Key, err)
	}
	return nil
}

// Filter returns, in stored order, the records whose searched fields contain text
// case-insensitively. Empty text matches everything.
func (l *List[T]) Filter(ctx context.Context, text string) ([]T, error) {
	records, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Match(records, text, l.opts.Fields), nil
}

// Match is the substring filter behind List.Filter
func Match[T any](records []T, text string, fields func(T) []string) []T {
	needle := strings.ToLower(text)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if needle == "" || fields == nil || containsAny(fields(r), needle) {
			out = append(out, r)
		}
	}
	return out
}

func containsAny(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Get finds one record by id
func (l *List[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	records, err := l.Load(ctx)
	if err != nil {
		return zero, err
	}
	if i := l.indexOf(records, id); i >= 0 {
		return records[i], nil
	}
	return zero, ErrNotFound
}

func (l *List[T]) indexOf(records []T, id string) int {
	for i, r := range records {
		if l.opts.ID(r) == id {
			return i
		}
	}
	return -1
}

// Add stores a new record and returns it as stored
func (l *List[T]) Add(ctx context.Context, rec T) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.opts.Prepare != nil {
		rec = l.opts.Prepare(rec)
	}

	records, err := l.load(ctx)
	if err != nil {
		return rec, err
	}
	if l.opts.UniqueIDs && l.indexOf(records, l.opts.ID(rec)) >= 0 {
		return rec, ErrDuplicateID
	}

	if l.opts.Append {
		records = append(records, rec)
	} else {
		records = append([]T{rec}, records...)
	}
	if err := l.save(ctx, records); err != nil {
		return rec, err
	}
	l.logger.InfoContext(ctx, "Record added", "id", l.opts.ID(rec))
	return rec, nil
}

// AddMany adds records in one write. Records whose id is already taken (or repeated in
// the batch) are skipped when UniqueIDs is set; their ids are returned.
func (l *List[T]) AddMany(ctx context.Context, recs []T) (int, []string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load(ctx)
	if err != nil {
		return 0, nil, err
	}

	added := make([]T, 0, len(recs))
	var skipped []string
	for _, rec := range recs {
		if l.opts.Prepare != nil {
			rec = l.opts.Prepare(rec)
		}
		id := l.opts.ID(rec)
		if l.opts.UniqueIDs && (l.indexOf(records, id) >= 0 || l.indexOf(added, id) >= 0) {
			skipped = append(skipped, id)
			continue
		}
		added = append(added, rec)
	}
	if len(added) == 0 {
		return 0, skipped, nil
	}

	if l.opts.Append {
		records = append(records, added...)
	} else {
		records = append(added, records...)
	}
	if err := l.save(ctx, records); err != nil {
		return 0, nil, err
	}
	l.logger.InfoContext(ctx, "Records added", "count", len(added), "skipped", len(skipped))
	return len(added), skipped, nil
}

// Update replaces the record with id in place. An unknown id changes nothing and
// reports false.
func (l *List[T]) Update(ctx context.Context, id string, rec T) (T, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load(ctx)
	if err != nil {
		return rec, false, err
	}
	i := l.indexOf(records, id)
	if i < 0 {
		return rec, false, nil
	}

	if l.opts.Merge != nil {
		rec = l.opts.Merge(records[i], rec)
	}
	records[i] = rec
	if err := l.save(ctx, records); err != nil {
		return rec, false, err
	}
	l.logger.InfoContext(ctx, "Record updated", "id", id)
	return rec, true, nil
}

// Delete removes every record with id once confirm approves. A declined prompt
// returns ErrDeleteDeclined and leaves storage untouched.
func (l *List[T]) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm(ctx, l.opts.DeletePrompt) {
		return false, ErrDeleteDeclined
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load(ctx)
	if err != nil {
		return false, err
	}
	kept := records[:0:0]
	for _, r := range records {
		if l.opts.ID(r) != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	if err := l.save(ctx, kept); err != nil {
		return false, err
	}
	l.logger.InfoContext(ctx, "Record deleted", "id", id)
	return true, nil
}

// Prompt is the confirmation text shown before a delete
func (l *List[T]) Prompt() string {
	return l.opts.DeletePrompt
}

// Replace overwrites the whole dataset
func (l *List[T]) Replace(ctx context.Context, records []T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save(ctx, records)
}
