package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// MemoryStore is an in-memory implementation of the whole persistence port.
//
// Its RunInTransaction holds an exclusive lock for the duration of the body
// and restores a snapshot when the body fails, mirroring the port's
// commit-or-abort guarantee and serializing concurrent writers exactly like
// the real transaction primitive. Store methods themselves do not lock:
// mutations are expected to happen inside a transaction, and tests that
// read outside one do so from a single goroutine.
type MemoryStore struct {
	mu sync.Mutex

	items   map[uuid.UUID]domain.Item
	records []domain.StudyRecord
	stats   *domain.UserStats
	unlocks map[string]domain.UnlockState
	anchor  *int64

	// Failure hooks. When set, the matching operation returns the error,
	// letting tests exercise mid-transaction rollback.
	FailRecordInsert  error
	FailStatsUpsert   error
	FailUnlockUpsert  error
	FailAnchorSet     error
	FailMasteryUpdate error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:   make(map[uuid.UUID]domain.Item),
		unlocks: make(map[string]domain.UnlockState),
	}
}

// Ensure MemoryStore satisfies the transactor port.
var _ store.Transactor = (*MemoryStore)(nil)

// RunInTransaction implements store.Transactor with snapshot semantics.
// The tx handle passed to fn is nil; the memory substores ignore it.
func (m *MemoryStore) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	if err := fn(ctx, nil); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memorySnapshot struct {
	items   map[uuid.UUID]domain.Item
	records []domain.StudyRecord
	stats   *domain.UserStats
	unlocks map[string]domain.UnlockState
	anchor  *int64
}

func (m *MemoryStore) snapshot() memorySnapshot {
	snap := memorySnapshot{
		items:   make(map[uuid.UUID]domain.Item, len(m.items)),
		records: append([]domain.StudyRecord(nil), m.records...),
		unlocks: make(map[string]domain.UnlockState, len(m.unlocks)),
	}
	for id, item := range m.items {
		snap.items[id] = item
	}
	for id, state := range m.unlocks {
		snap.unlocks[id] = state
	}
	if m.stats != nil {
		statsCopy := *m.stats
		snap.stats = &statsCopy
	}
	if m.anchor != nil {
		anchorCopy := *m.anchor
		snap.anchor = &anchorCopy
	}
	return snap
}

func (m *MemoryStore) restore(snap memorySnapshot) {
	m.items = snap.items
	m.records = snap.records
	m.stats = snap.stats
	m.unlocks = snap.unlocks
	m.anchor = snap.anchor
}

// SeedItem adds an item directly, bypassing transactions. Test setup only.
func (m *MemoryStore) SeedItem(item domain.Item) {
	m.items[item.ID] = item
}

// Records returns a copy of the append-only review history.
func (m *MemoryStore) Records() []domain.StudyRecord {
	return append([]domain.StudyRecord(nil), m.records...)
}

// Anchor returns the persisted trusted anchor, or 0 when unset.
func (m *MemoryStore) Anchor() int64 {
	if m.anchor == nil {
		return 0
	}
	return *m.anchor
}

// Items returns the ItemStore view of the memory store.
func (m *MemoryStore) Items() store.ItemStore { return &memItems{m: m} }

// StudyRecords returns the StudyRecordStore view of the memory store.
func (m *MemoryStore) StudyRecords() store.StudyRecordStore { return &memRecords{m: m} }

// Stats returns the StatsStore view of the memory store.
func (m *MemoryStore) Stats() store.StatsStore { return &memStats{m: m} }

// Unlocks returns the UnlockStore view of the memory store.
func (m *MemoryStore) Unlocks() store.UnlockStore { return &memUnlocks{m: m} }

// Anchors returns the AnchorStore view of the memory store.
func (m *MemoryStore) Anchors() store.AnchorStore { return &memAnchor{m: m} }

// --- ItemStore ---

type memItems struct{ m *MemoryStore }

var _ store.ItemStore = (*memItems)(nil)

func (s *memItems) Create(_ context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return store.ErrInvalidEntity
	}
	if _, ok := s.m.items[item.ID]; ok {
		return store.ErrDuplicate
	}
	s.m.items[item.ID] = *item
	return nil
}

func (s *memItems) GetByID(_ context.Context, id uuid.UUID) (*domain.Item, error) {
	item, ok := s.m.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	itemCopy := item
	return &itemCopy, nil
}

func (s *memItems) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	// The transaction lock already serializes writers.
	return s.GetByID(ctx, id)
}

func (s *memItems) UpdateMastery(_ context.Context, id uuid.UUID, level int) error {
	if s.m.FailMasteryUpdate != nil {
		return s.m.FailMasteryUpdate
	}
	item, ok := s.m.items[id]
	if !ok {
		return store.ErrItemNotFound
	}
	item.MasteryLevel = level
	s.m.items[id] = item
	return nil
}

func (s *memItems) ListReviewQueue(_ context.Context, levelID string, limit int) ([]domain.Item, error) {
	var queue []domain.Item
	for _, item := range s.m.items {
		if item.LevelID == levelID && item.ReviewEligible() {
			queue = append(queue, item)
		}
	}
	sort.Slice(queue, func(i, j int) bool {
		if queue[i].MasteryLevel != queue[j].MasteryLevel {
			return queue[i].MasteryLevel < queue[j].MasteryLevel
		}
		return queue[i].ID.String() < queue[j].ID.String()
	})
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}
	return queue, nil
}

func (s *memItems) ListAnswerPool(
	_ context.Context,
	levelID string,
	excludeID uuid.UUID,
	limit int,
) ([]domain.Item, error) {
	var pool []domain.Item
	for _, item := range s.m.items {
		if item.ID == excludeID {
			continue
		}
		if levelID != "" && item.LevelID != levelID {
			continue
		}
		pool = append(pool, item)
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID.String() < pool[j].ID.String() })
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, nil
}

func (s *memItems) Count(_ context.Context) (int, error) {
	return len(s.m.items), nil
}

func (s *memItems) WithTx(*sql.Tx) store.ItemStore { return s }

// --- StudyRecordStore ---

type memRecords struct{ m *MemoryStore }

var _ store.StudyRecordStore = (*memRecords)(nil)

func (s *memRecords) Insert(_ context.Context, record *domain.StudyRecord) error {
	if s.m.FailRecordInsert != nil {
		return s.m.FailRecordInsert
	}
	if err := record.Validate(); err != nil {
		return store.ErrInvalidEntity
	}
	s.m.records = append(s.m.records, *record)
	return nil
}

func (s *memRecords) ListByItem(_ context.Context, itemID uuid.UUID, limit int) ([]domain.StudyRecord, error) {
	var out []domain.StudyRecord
	for _, rec := range s.m.records {
		if rec.ItemID == itemID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimestampMillis > out[j].TimestampMillis })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memRecords) WithTx(*sql.Tx) store.StudyRecordStore { return s }

// --- StatsStore ---

type memStats struct{ m *MemoryStore }

var _ store.StatsStore = (*memStats)(nil)

func (s *memStats) Get(context.Context) (*domain.UserStats, error) {
	if s.m.stats == nil {
		return nil, store.ErrStatsNotFound
	}
	statsCopy := *s.m.stats
	return &statsCopy, nil
}

func (s *memStats) GetForUpdate(ctx context.Context) (*domain.UserStats, error) {
	return s.Get(ctx)
}

func (s *memStats) Upsert(_ context.Context, stats *domain.UserStats) error {
	if s.m.FailStatsUpsert != nil {
		return s.m.FailStatsUpsert
	}
	statsCopy := *stats
	s.m.stats = &statsCopy
	return nil
}

func (s *memStats) WithTx(*sql.Tx) store.StatsStore { return s }

// --- UnlockStore ---

type memUnlocks struct{ m *MemoryStore }

var _ store.UnlockStore = (*memUnlocks)(nil)

func (s *memUnlocks) Get(_ context.Context, levelID string) (*domain.UnlockState, error) {
	state, ok := s.m.unlocks[levelID]
	if !ok {
		return nil, store.ErrUnlockStateNotFound
	}
	stateCopy := state
	return &stateCopy, nil
}

func (s *memUnlocks) GetForUpdate(ctx context.Context, levelID string) (*domain.UnlockState, error) {
	return s.Get(ctx, levelID)
}

func (s *memUnlocks) Upsert(_ context.Context, state *domain.UnlockState) error {
	if s.m.FailUnlockUpsert != nil {
		return s.m.FailUnlockUpsert
	}
	if err := state.Validate(); err != nil {
		return store.ErrInvalidEntity
	}
	s.m.unlocks[state.LevelID] = *state
	return nil
}

func (s *memUnlocks) WithTx(*sql.Tx) store.UnlockStore { return s }

// --- AnchorStore ---

type memAnchor struct{ m *MemoryStore }

var _ store.AnchorStore = (*memAnchor)(nil)

func (s *memAnchor) Get(context.Context) (int64, error) {
	if s.m.anchor == nil {
		return 0, store.ErrAnchorNotFound
	}
	return *s.m.anchor, nil
}

func (s *memAnchor) Set(_ context.Context, millis int64) error {
	if s.m.FailAnchorSet != nil {
		return s.m.FailAnchorSet
	}
	if s.m.anchor == nil || millis > *s.m.anchor {
		s.m.anchor = &millis
	}
	return nil
}

func (s *memAnchor) WithTx(*sql.Tx) store.AnchorStore { return s }
