package core

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultMaxHistory caps the in-memory ledger before old records are
// archived and dropped.
const DefaultMaxHistory uint64 = 1_000_000

// DefaultRemovalBatch is how many of the oldest records are archived at
// once when history exceeds DefaultMaxHistory. Evicting in batches
// amortizes the cost of shifting the retained records.
const DefaultRemovalBatch uint64 = 10_000

// MaxTransactionQueryLen bounds how many records a single get_transactions
// call can return.
const MaxTransactionQueryLen = 1000

// LedgerConfig controls where and how often a Ledger persists to disk.
// Every path is optional; an empty WALPath runs the ledger purely in
// memory.
type LedgerConfig struct {
	WALPath          string
	SnapshotPath     string
	ArchivePath      string
	SnapshotInterval int
	MaxHistory       uint64
	RemovalBatch     uint64
}

// ledgerSnapshot is the on-disk form written by Ledger.snapshot.
type ledgerSnapshot struct {
	History   []TxRecord `json:"history"`
	VecOffset uint64     `json:"vec_offset"`
}

// Ledger is the append-only, ring-truncated transaction history. Record
// ids are stable across truncation: vecOffset tracks how many records have
// been evicted so TxId - vecOffset always addresses the in-memory slice.
type Ledger struct {
	mu            sync.RWMutex
	history       []TxRecord
	vecOffset     uint64
	notifications map[TxId]*Principal

	walMu         sync.Mutex
	walFile       *os.File
	snapshotPath  string
	archivePath   string
	snapshotEvery int
	sinceSnapshot int
	maxHistory    uint64
	removalBatch  uint64
}

// NewLedger opens (or creates) the ledger described by cfg, replaying its
// write-ahead log if one exists.
func NewLedger(cfg LedgerConfig) (*Ledger, error) {
	if cfg.MaxHistory == 0 {
		cfg.MaxHistory = DefaultMaxHistory
	}
	if cfg.RemovalBatch == 0 {
		cfg.RemovalBatch = DefaultRemovalBatch
	}
	l := &Ledger{
		notifications: make(map[TxId]*Principal),
		maxHistory:    cfg.MaxHistory,
		removalBatch:  cfg.RemovalBatch,
		snapshotPath:  cfg.SnapshotPath,
		archivePath:   cfg.ArchivePath,
		snapshotEvery: cfg.SnapshotInterval,
	}
	if cfg.WALPath == "" {
		return l, nil
	}
	wal, err := os.OpenFile(cfg.WALPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("ledger: open WAL: %w", err)
	}
	l.walFile = wal
	if err := l.replayWAL(); err != nil {
		wal.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) replayWAL() error {
	if _, err := l.walFile.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("ledger: seek WAL: %w", err)
	}
	scanner := bufio.NewScanner(l.walFile)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec TxRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("ledger: malformed WAL entry: %w", err)
		}
		l.history = append(l.history, rec)
		l.notifications[rec.Index] = nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("ledger: scan WAL: %w", err)
	}
	if len(l.history) > 0 {
		l.vecOffset = l.history[0].Index
	}
	if _, err := l.walFile.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("ledger: seek WAL end: %w", err)
	}
	logrus.WithField("records", len(l.history)).Info("ledger: WAL replayed")
	return nil
}

// Append assigns the next TxId to rec and adds it to history, persisting
// and truncating as configured. It returns the assigned id.
func (l *Ledger) Append(rec TxRecord) TxId {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec.Index = l.vecOffset + uint64(len(l.history))
	l.history = append(l.history, rec)
	l.notifications[rec.Index] = nil

	logrus.WithFields(logrus.Fields{
		"index":     rec.Index,
		"operation": rec.Operation.String(),
		"from":      rec.From.Hex(),
		"to":        rec.To.Hex(),
		"amount":    rec.Amount.String(),
	}).Debug("ledger: record appended")

	l.persistAppend(rec)
	if uint64(len(l.history)) > l.maxHistory+l.removalBatch {
		l.truncate()
	}
	return rec.Index
}

func (l *Ledger) persistAppend(rec TxRecord) {
	if l.walFile == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		logrus.WithError(err).Error("ledger: marshal WAL record")
		return
	}
	l.walMu.Lock()
	defer l.walMu.Unlock()
	if _, err := l.walFile.Write(append(data, '\n')); err != nil {
		logrus.WithError(err).Error("ledger: write WAL")
		return
	}
	if err := l.walFile.Sync(); err != nil {
		logrus.WithError(err).Error("ledger: sync WAL")
	}
	l.sinceSnapshot++
	if l.snapshotEvery > 0 && l.sinceSnapshot >= l.snapshotEvery {
		if err := l.snapshot(); err != nil {
			logrus.WithError(err).Error("ledger: write snapshot")
		}
		l.sinceSnapshot = 0
	}
}

// truncate archives and evicts the oldest removalBatch records. Callers
// must hold l.mu.
func (l *Ledger) truncate() {
	batch := l.removalBatch
	if uint64(len(l.history)) < batch {
		batch = uint64(len(l.history))
	}
	if l.archivePath != "" {
		if err := l.archiveRecords(l.history[:batch]); err != nil {
			logrus.WithError(err).Error("ledger: archive evicted records")
		}
	}
	for _, rec := range l.history[:batch] {
		delete(l.notifications, rec.Index)
	}
	l.history = append([]TxRecord(nil), l.history[batch:]...)
	l.vecOffset += batch
	logrus.WithFields(logrus.Fields{"removed": batch, "vec_offset": l.vecOffset}).Info("ledger: history truncated")
}

func (l *Ledger) archiveRecords(records []TxRecord) error {
	f, err := os.OpenFile(l.archivePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("ledger: open archive: %w", err)
	}
	defer f.Close()
	gz := gzip.NewWriter(f)
	defer gz.Close()
	enc := json.NewEncoder(gz)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("ledger: encode archived record: %w", err)
		}
	}
	return nil
}

// snapshot writes the full in-memory history to SnapshotPath. Its only
// caller is persistAppend, which runs under Append's hold of l.mu.
func (l *Ledger) snapshot() error {
	if l.snapshotPath == "" {
		return nil
	}
	f, err := os.Create(l.snapshotPath)
	if err != nil {
		return fmt.Errorf("ledger: create snapshot: %w", err)
	}
	defer f.Close()
	snap := ledgerSnapshot{History: l.history, VecOffset: l.vecOffset}
	if err := json.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("ledger: encode snapshot: %w", err)
	}
	logrus.WithFields(logrus.Fields{"path": l.snapshotPath, "records": len(l.history)}).Info("ledger: snapshot written")
	return nil
}

// Get looks up a record by id without panicking, used internally and by
// notification bookkeeping.
func (l *Ledger) Get(id TxId) (TxRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if id < l.vecOffset {
		return TxRecord{}, false
	}
	idx := id - l.vecOffset
	if idx >= uint64(len(l.history)) {
		return TxRecord{}, false
	}
	return l.history[idx], true
}

// Len returns the number of records ever appended, including truncated
// ones, i.e. the next id Append will assign.
func (l *Ledger) Len() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.vecOffset + uint64(len(l.history))
}

// PaginatedResult is the response shape for get_transactions: at most Count
// records plus, if more remain, the id to resume from.
type PaginatedResult struct {
	Result []TxRecord `json:"result"`
	Next   *TxId      `json:"next"`
}

// GetTransactions returns up to count records at or before startId (most
// recent first), optionally filtered to ones that mention who as caller,
// sender or recipient. A nil startId begins at the most recent record.
func (l *Ledger) GetTransactions(who *Principal, count int, startID *TxId) PaginatedResult {
	if count > MaxTransactionQueryLen {
		count = MaxTransactionQueryLen
	}
	if count < 0 {
		count = 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]TxRecord, 0, count+1)
	for i := len(l.history) - 1; i >= 0; i-- {
		rec := l.history[i]
		if startID != nil && rec.Index > *startID {
			continue
		}
		if who != nil && rec.From != *who && rec.To != *who && rec.Caller != *who {
			continue
		}
		out = append(out, rec)
		if len(out) == count+1 {
			break
		}
	}
	var next *TxId
	if len(out) == count+1 {
		n := out[count].Index
		next = &n
		out = out[:count]
	}
	return PaginatedResult{Result: out, Next: next}
}

// GetLenUserHistory counts how many records mention who as caller, sender
// or recipient.
func (l *Ledger) GetLenUserHistory(who Principal) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, rec := range l.history {
		if rec.From == who || rec.To == who || rec.Caller == who {
			n++
		}
	}
	return n
}

// NotificationExists reports whether id has a pending-notification entry,
// i.e. whether it has not been truncated out of history.
func (l *Ledger) NotificationExists(id TxId) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.notifications[id]
	return ok
}

// NotificationActioned reports whether id's notification has already been
// acknowledged.
func (l *Ledger) NotificationActioned(id TxId) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.notifications[id]
	return ok && p != nil
}

// SetNotificationActioned marks id's notification acknowledged by by.
func (l *Ledger) SetNotificationActioned(id TxId, by Principal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ack := by
	l.notifications[id] = &ack
}

// Snapshot renders the ledger's full history for persistence.
func (l *Ledger) Snapshot() ([]TxRecord, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]TxRecord, len(l.history))
	copy(out, l.history)
	return out, l.vecOffset
}

// Restore replaces the ledger's history wholesale from a persisted
// snapshot. It does not touch the WAL; callers that persist to disk should
// treat this as a one-time load at startup.
func (l *Ledger) Restore(history []TxRecord, vecOffset uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = append([]TxRecord(nil), history...)
	l.vecOffset = vecOffset
	l.notifications = make(map[TxId]*Principal, len(history))
	for _, rec := range history {
		l.notifications[rec.Index] = nil
	}
}

// Close flushes and releases the underlying WAL file, if any.
func (l *Ledger) Close() error {
	if l.walFile == nil {
		return nil
	}
	return l.walFile.Close()
}
