package main

import (
	"errors"
	"time"
)

// publishPost marks a post published and stamps the publish time. It is
// idempotent and tolerates posts that were deleted in the meantime, both
// can happen when a replaced or duplicated timer still fires.
func (a *postClock) publishPost(postID int) {
	p, err := a.db.getPost(postID)
	if errors.Is(err, errPostNotFound) {
		a.info("Post for scheduled publish no longer exists", "post", postID)
		return
	} else if err != nil {
		a.error("Failed to load post for publishing", "post", postID, "err", err)
		return
	}
	if p.Published {
		a.info("Post already published", "post", postID)
		return
	}
	published, err := a.db.markPostPublished(postID, time.Now())
	if err != nil {
		a.error("Failed to publish post", "post", postID, "err", err)
		return
	}
	if !published {
		// Lost the race against another firing
		a.info("Post already published", "post", postID)
		return
	}
	a.info("Published post", "post", postID, "text", p.Text)
}
