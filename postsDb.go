package main

import (
	"database/sql"
	"errors"
	"time"

	"github.com/araddon/dateparse"
	"github.com/samber/lo"
)

func (db *database) savePost(p *post) error {
	res, err := db.exec(
		"insert into posts (text, image, schedule_time, published, published_at) values (@text, @image, @schedule_time, @published, @published_at)",
		sql.Named("text", p.Text),
		sql.Named("image", p.Image),
		sql.Named("schedule_time", dbTimeString(p.ScheduleTime)),
		sql.Named("published", lo.Ternary(p.Published, 1, 0)),
		sql.Named("published_at", publishedAtString(p)),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

func (db *database) updatePost(p *post) error {
	_, err := db.exec(
		"update posts set text = @text, image = @image, schedule_time = @schedule_time where id = @id",
		sql.Named("text", p.Text),
		sql.Named("image", p.Image),
		sql.Named("schedule_time", dbTimeString(p.ScheduleTime)),
		sql.Named("id", p.ID),
	)
	return err
}

func (db *database) deletePost(id int) error {
	_, err := db.exec("delete from posts where id = @id", sql.Named("id", id))
	return err
}

func (db *database) getPost(id int) (*post, error) {
	row, err := db.queryRow(
		"select id, text, image, schedule_time, published, published_at from posts where id = @id",
		sql.Named("id", id),
	)
	if err != nil {
		return nil, err
	}
	p, err := scanPost(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errPostNotFound
	}
	return p, err
}

type postsRequestConfig struct {
	published bool
	ascending bool
}

func (db *database) getPosts(config *postsRequestConfig) ([]*post, error) {
	order := lo.Ternary(config.ascending, "asc", "desc")
	rows, err := db.query(
		"select id, text, image, schedule_time, published, published_at from posts where published = @published order by schedule_time "+order,
		sql.Named("published", lo.Ternary(config.published, 1, 0)),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []*post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Posts that should have published already but did not, used for the
// restart warning as in-memory timers do not survive restarts
func (db *database) countOverduePosts(before time.Time) (count int, err error) {
	row, err := db.queryRow(
		"select count(*) from posts where published = 0 and schedule_time < @before",
		sql.Named("before", dbTimeString(before)),
	)
	if err != nil {
		return 0, err
	}
	err = row.Scan(&count)
	return count, err
}

// markPostPublished flips the published flag and stamps the publish time.
// The published guard in the query makes the transition happen at most once,
// it reports whether this call did the transition.
func (db *database) markPostPublished(id int, at time.Time) (bool, error) {
	res, err := db.exec(
		"update posts set published = 1, published_at = @published_at where id = @id and published = 0",
		sql.Named("published_at", dbTimeString(at)),
		sql.Named("id", id),
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func scanPost(scan func(dest ...any) error) (*post, error) {
	var (
		p                         post
		published                 int
		scheduleTime, publishedAt sql.NullString
	)
	if err := scan(&p.ID, &p.Text, &p.Image, &scheduleTime, &published, &publishedAt); err != nil {
		return nil, err
	}
	p.Published = published == 1
	if scheduleTime.Valid && scheduleTime.String != "" {
		t, err := dateparse.ParseIn(scheduleTime.String, time.UTC)
		if err != nil {
			return nil, err
		}
		p.ScheduleTime = t
	}
	if publishedAt.Valid && publishedAt.String != "" {
		t, err := dateparse.ParseIn(publishedAt.String, time.UTC)
		if err != nil {
			return nil, err
		}
		p.PublishedAt = t
	}
	return &p, nil
}

func publishedAtString(p *post) any {
	if p.PublishedAt.IsZero() {
		return nil
	}
	return dbTimeString(p.PublishedAt)
}
