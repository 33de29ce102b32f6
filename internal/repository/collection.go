package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/models"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// Collection names. Each maps to one whole JSON document in the store.
const (
	CollectionUsers       = "users"
	CollectionLectures    = "lectures"
	CollectionAssignments = "assignments"
	CollectionSubmissions = "submissions"
)

// Load outcomes reported to the observer.
const (
	LoadOK      = "ok"
	LoadMissing = "missing"
	LoadCorrupt = "corrupt"
)

// CollectionStore reads and writes whole collection documents by name.
// Read must return an error matching appErrors.ErrCollectionMissing when the
// collection has never been written.
type CollectionStore interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// Pinger is implemented by stores that can report their own availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repository is the load/save/next-id contract every caller depends on.
type Repository[T models.Record] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, records []T) error
	NextID(records []T) int
}

// CollectionObserver receives load outcomes and save results, typically to
// feed metrics.
type CollectionObserver interface {
	ObserveCollectionLoad(name, outcome string)
	ObserveCollectionSave(name string, err error)
}

// Collection is a named, whole-document JSON collection of records.
//
// Load never fails hard: a missing or unreadable document yields an empty,
// non-nil slice together with an error classifying why. Save rewrites the
// whole document. Neither call locks, so two request cycles that load before
// either saves will hand out the same NextID and the later save wins.
type Collection[T models.Record] struct {
	name     string
	store    CollectionStore
	logger   *zap.Logger
	observer CollectionObserver
}

// NewCollection binds a typed collection to a store. logger and observer may be nil.
func NewCollection[T models.Record](name string, store CollectionStore, logger *zap.Logger, observer CollectionObserver) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{name: name, store: store, logger: logger.With(zap.String("collection", name)), observer: observer}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load reads and decodes the whole collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Read(ctx, c.name)
	if err != nil {
		if errors.Is(err, appErrors.ErrCollectionMissing) {
			c.observeLoad(LoadMissing)
			c.logger.Debug("collection missing, using empty collection")
			return []T{}, appErrors.Wrap(err, appErrors.ErrCollectionMissing, fmt.Sprintf("collection %s does not exist", c.name))
		}
		return c.corrupt(err, "read")
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return c.corrupt(err, "decode")
	}
	if records == nil {
		records = []T{}
	}
	c.observeLoad(LoadOK)
	return records, nil
}

// Save encodes the full slice and overwrites the stored document.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err == nil {
		err = c.store.Write(ctx, c.name, data)
	}
	if c.observer != nil {
		c.observer.ObserveCollectionSave(c.name, err)
	}
	if err != nil {
		c.logger.Error("failed to save collection", zap.Int("records", len(records)), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrCollectionWrite, fmt.Sprintf("failed to save collection %s", c.name))
	}
	return nil
}

// NextID implements Repository.
func (c *Collection[T]) NextID(records []T) int {
	return NextID(records)
}

// NextID returns 1 for an empty slice, otherwise one more than the largest id.
func NextID[T models.Record](records []T) int {
	if len(records) == 0 {
		return 1
	}
	highest := records[0].RecordID()
	for _, r := range records[1:] {
		if id := r.RecordID(); id > highest {
			highest = id
		}
	}
	return highest + 1
}

func (c *Collection[T]) corrupt(err error, stage string) ([]T, error) {
	c.observeLoad(LoadCorrupt)
	c.logger.Warn("collection unreadable, using empty collection", zap.String("stage", stage), zap.Error(err))
	return []T{}, appErrors.Wrap(err, appErrors.ErrCollectionCorrupt, fmt.Sprintf("collection %s is unreadable", c.name))
}

func (c *Collection[T]) observeLoad(outcome string) {
	if c.observer != nil {
		c.observer.ObserveCollectionLoad(c.name, outcome)
	}
}

// Collections bundles the four portal collections over one store.
type Collections struct {
	Users       *Collection[models.User]
	Lectures    *Collection[models.Lecture]
	Assignments *Collection[models.Assignment]
	Submissions *Collection[models.Submission]
}

// NewCollections wires every portal collection to store.
func NewCollections(store CollectionStore, logger *zap.Logger, observer CollectionObserver) *Collections {
	return &Collections{
		Users:       NewCollection[models.User](CollectionUsers, store, logger, observer),
		Lectures:    NewCollection[models.Lecture](CollectionLectures, store, logger, observer),
		Assignments: NewCollection[models.Assignment](CollectionAssignments, store, logger, observer),
		Submissions: NewCollection[models.Submission](CollectionSubmissions, store, logger, observer),
	}
}
