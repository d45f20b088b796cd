package main

import (
	"database/sql"

	"github.com/lopezator/migrator"
)

func migrateDb(db *sql.DB, logging bool) error {
	opts := []migrator.Option{
		migrator.Migrations(
			&migrator.Migration{
				Name: "00001",
				Func: func(tx *sql.Tx) error {
					_, err := tx.Exec(`
					create table posts (
						id integer primary key autoincrement,
						text text not null,
						image text not null,
						schedule_time text not null,
						published integer not null default 0,
						published_at text
					);
					create index index_posts_published on posts (published, schedule_time);
					`)
					return err
				},
			},
		),
	}
	if !logging {
		opts = append(opts, migrator.WithLogger(migrator.LoggerFunc(func(string, ...interface{}) {
			// hide migration logs
		})))
	}
	m, err := migrator.New(opts...)
	if err != nil {
		return err
	}
	return m.Migrate(db)
}
