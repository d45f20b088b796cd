package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/schollz/sqlite3dump"
	"golang.org/x/sync/singleflight"
)

type database struct {
	a  *postClock
	db *sql.DB
	// Prepared statement cache
	sg    singleflight.Group
	psc   sync.Map
	debug bool
}

func (a *postClock) initDatabase(logging bool) (err error) {
	if a.db != nil {
		return nil
	}
	if logging {
		a.info("Initialize database")
	}
	// Create folder for database file
	if err = os.MkdirAll(filepath.Dir(a.cfg.Db.File), 0777); err != nil {
		return err
	}
	// Open database
	db, err := a.openDatabase(a.cfg.Db.File, logging)
	if err != nil {
		return err
	}
	a.db = db
	a.shutdown.Add(func() {
		if err := db.close(); err != nil {
			a.error("Failed to close database", "err", err)
		} else if logging {
			a.info("Closed database")
		}
	})
	if a.cfg.Db.DumpFile != "" {
		db.dump(a.cfg.Db.DumpFile)
	}
	if logging {
		a.info("Initialized database")
	}
	return nil
}

func (a *postClock) openDatabase(file string, logging bool) (*database, error) {
	db, err := sql.Open("sqlite3", file+"?mode=rwc&_journal_mode=WAL&_busy_timeout=100&cache=shared")
	if err != nil {
		return nil, err
	}
	// Limit to one connection to prevent sqlite lock errors
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// Migrate database
	if err = migrateDb(db, logging); err != nil {
		return nil, err
	}
	return &database{
		a:     a,
		db:    db,
		debug: a.cfg != nil && a.cfg.Debug,
	}, nil
}

func (db *database) dump(file string) {
	if db == nil || db.db == nil {
		return
	}
	f, err := os.Create(file)
	if err != nil {
		db.a.error("Error while dump db", "err", err)
		return
	}
	defer f.Close()
	if err = sqlite3dump.DumpDB(db.db, f); err != nil {
		db.a.error("Error while dump db", "err", err)
	}
}

func (db *database) close() error {
	if db == nil || db.db == nil {
		return nil
	}
	return db.db.Close()
}

func (db *database) prepare(query string) (*sql.Stmt, error) {
	stmt, err, _ := db.sg.Do(query, func() (any, error) {
		// Look if statement already exists
		st, ok := db.psc.Load(query)
		if ok {
			return st, nil
		}
		// ... otherwise prepare ...
		st, err := db.db.Prepare(query)
		if err != nil {
			return nil, err
		}
		// ... and store it
		db.psc.Store(query, st)
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return stmt.(*sql.Stmt), nil
}

func (db *database) exec(query string, args ...any) (sql.Result, error) {
	return db.execContext(context.Background(), query, args...)
}

func (db *database) execContext(c context.Context, query string, args ...any) (sql.Result, error) {
	if db == nil || db.db == nil {
		return nil, sql.ErrConnDone
	}
	if db.debug {
		db.a.debug("Exec", "query", query)
	}
	st, err := db.prepare(query)
	if err != nil {
		return nil, err
	}
	return st.ExecContext(c, args...)
}

func (db *database) query(query string, args ...any) (*sql.Rows, error) {
	return db.queryContext(context.Background(), query, args...)
}

func (db *database) queryContext(c context.Context, query string, args ...any) (*sql.Rows, error) {
	if db == nil || db.db == nil {
		return nil, sql.ErrConnDone
	}
	if db.debug {
		db.a.debug("Query", "query", query)
	}
	st, err := db.prepare(query)
	if err != nil {
		return nil, err
	}
	return st.QueryContext(c, args...)
}

func (db *database) queryRow(query string, args ...any) (*sql.Row, error) {
	return db.queryRowContext(context.Background(), query, args...)
}

func (db *database) queryRowContext(c context.Context, query string, args ...any) (*sql.Row, error) {
	if db == nil || db.db == nil {
		return nil, sql.ErrConnDone
	}
	if db.debug {
		db.a.debug("QueryRow", "query", query)
	}
	st, err := db.prepare(query)
	if err != nil {
		return nil, err
	}
	return st.QueryRowContext(c, args...), nil
}
