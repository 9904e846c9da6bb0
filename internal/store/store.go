// Package store persists goals, portfolio projects, journey milestones and
// the wealth metrics record in SQLite or Postgres and notifies subscribers
// of every change.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Lookup errors for unknown IDs.
var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
)

// Store is the single owner of persisted records.
type Store struct {
	db     *sqlx.DB
	driver string
	now    func() time.Time

	mu     sync.RWMutex
	nextID int
	subs   map[int]func(model.ChangeEvent)
}

// Open connects to the database and applies migrations. For SQLite the dsn
// is a file path and its directory is created if needed.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	conn := dsn
	switch driver {
	case DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		conn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, conn)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", driver, err)
	}
	if driver == DriverSQLite {
		// One writer keeps WAL mode free of SQLITE_BUSY between goroutines.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := Migrate(db.DB, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		driver: driver,
		now:    time.Now,
		subs:   make(map[int]func(model.ChangeEvent)),
	}, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns the database driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Subscribe registers fn for change events. Events are delivered
// synchronously after the mutation commits. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(model.ChangeEvent)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) publish(ev model.ChangeEvent) {
	s.mu.RLock()
	fns := make([]func(model.ChangeEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
