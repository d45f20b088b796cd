package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_publishPost(t *testing.T) {
	app := &postClock{
		cfg: createDefaultTestConfig(t),
	}
	require.NoError(t, app.initConfig(false))

	p := &post{
		Text:         "Launch",
		Image:        "a.png",
		ScheduleTime: time.Now().Add(-1 * time.Minute),
	}
	require.NoError(t, app.db.savePost(p))

	app.publishPost(p.ID)

	first, err := app.db.getPost(p.ID)
	require.NoError(t, err)
	assert.True(t, first.Published)
	assert.False(t, first.PublishedAt.IsZero())

	// A second invocation must not touch the publish time
	time.Sleep(1100 * time.Millisecond)
	app.publishPost(p.ID)

	second, err := app.db.getPost(p.ID)
	require.NoError(t, err)
	assert.True(t, second.Published)
	assert.Equal(t, first.PublishedAt, second.PublishedAt)
}

func Test_publishPost_missing(t *testing.T) {
	app := &postClock{
		cfg: createDefaultTestConfig(t),
	}
	require.NoError(t, app.initConfig(false))

	// A timer referencing a deleted post is not a failure
	app.publishPost(12345)

	posts, err := app.db.getPosts(&postsRequestConfig{published: true})
	require.NoError(t, err)
	assert.Empty(t, posts)
}
