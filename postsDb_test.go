package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_postsDb(t *testing.T) {
	app := &postClock{
		cfg: createDefaultTestConfig(t),
	}
	require.NoError(t, app.initConfig(false))

	now := time.Now()

	soon := &post{
		Text:         "Launch",
		Image:        "a.png",
		ScheduleTime: now.Add(5 * time.Minute),
	}
	later := &post{
		Text:         "Follow-up",
		Image:        "b.png",
		ScheduleTime: now.Add(1 * time.Hour),
	}
	require.NoError(t, app.db.savePost(soon))
	require.NoError(t, app.db.savePost(later))
	assert.NotZero(t, soon.ID)
	assert.NotEqual(t, soon.ID, later.ID)

	t.Run("get", func(t *testing.T) {
		p, err := app.db.getPost(soon.ID)
		require.NoError(t, err)
		assert.Equal(t, "Launch", p.Text)
		assert.Equal(t, "a.png", p.Image)
		assert.False(t, p.Published)
		assert.True(t, p.PublishedAt.IsZero())
		assert.WithinDuration(t, soon.ScheduleTime, p.ScheduleTime, time.Second)
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := app.db.getPost(12345)
		assert.ErrorIs(t, err, errPostNotFound)
	})

	t.Run("unpublished list is soonest first", func(t *testing.T) {
		posts, err := app.db.getPosts(&postsRequestConfig{published: false, ascending: true})
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "Launch", posts[0].Text)
		assert.Equal(t, "Follow-up", posts[1].Text)
	})

	t.Run("update", func(t *testing.T) {
		soon.Text = "Launch day"
		soon.ScheduleTime = now.Add(10 * time.Minute)
		require.NoError(t, app.db.updatePost(soon))
		p, err := app.db.getPost(soon.ID)
		require.NoError(t, err)
		assert.Equal(t, "Launch day", p.Text)
		assert.WithinDuration(t, soon.ScheduleTime, p.ScheduleTime, time.Second)
	})

	t.Run("publish transition happens once", func(t *testing.T) {
		published, err := app.db.markPostPublished(later.ID, now)
		require.NoError(t, err)
		assert.True(t, published)
		published, err = app.db.markPostPublished(later.ID, now.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, published)
		p, err := app.db.getPost(later.ID)
		require.NoError(t, err)
		assert.True(t, p.Published)
		assert.WithinDuration(t, now, p.PublishedAt, time.Second)
	})

	t.Run("published list is most recent first", func(t *testing.T) {
		posts, err := app.db.getPosts(&postsRequestConfig{published: true, ascending: false})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Follow-up", posts[0].Text)
		unpublished, err := app.db.getPosts(&postsRequestConfig{published: false, ascending: true})
		require.NoError(t, err)
		require.Len(t, unpublished, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, app.db.deletePost(soon.ID))
		_, err := app.db.getPost(soon.ID)
		assert.ErrorIs(t, err, errPostNotFound)
	})
}

func Test_countOverduePosts(t *testing.T) {
	app := &postClock{
		cfg: createDefaultTestConfig(t),
	}
	require.NoError(t, app.initConfig(false))

	require.NoError(t, app.db.savePost(&post{
		Text:         "Overdue",
		Image:        "a.png",
		ScheduleTime: time.Now().Add(-1 * time.Hour),
	}))
	require.NoError(t, app.db.savePost(&post{
		Text:         "Future",
		Image:        "b.png",
		ScheduleTime: time.Now().Add(1 * time.Hour),
	}))

	count, err := app.db.countOverduePosts(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
