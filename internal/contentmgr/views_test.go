package contentmgr

import (
	"context"
	"testing"
	"time"

	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPostCommentsMemoizesResolution(t *testing.T) {
	e := newEnv()
	post := e.seedPost(1, 3)

	viewer := 4
	e.comments.rows = []models.CommentWithVote{
		{Comment: models.Comment{ID: 1, PostID: post.ID.Hex(), UserID: 3, Content: "<p>first</p>"}, Rating: 2, ViewerVote: &viewer},
		{Comment: models.Comment{ID: 2, PostID: post.ID.Hex(), UserID: 5, Content: "<p>second</p>"}, Rating: 0},
		{Comment: models.Comment{ID: 3, PostID: post.ID.Hex(), UserID: 3, Content: "<p>third</p>"}, Rating: -1},
	}

	views, err := e.manager.GetPostComments(context.Background(), post.ID.Hex(), 9)
	require.NoError(t, err)
	require.Len(t, views, 3)

	// Three comments on the same post cost one post lookup and one site lookup
	assert.Equal(t, 1, e.posts.byIDCalls)
	assert.Equal(t, 1, e.sites.byIDCalls)

	assert.Equal(t, "blog", views[0].SiteName)
	assert.Equal(t, post.ID.Hex(), views[0].PostID)
	assert.Equal(t, 2, views[0].Rating)
	require.NotNil(t, views[0].Vote)
	assert.Equal(t, 4, *views[0].Vote)
	assert.Nil(t, views[1].Vote)
}

func TestGetUserCommentsAcrossPosts(t *testing.T) {
	e := newEnv()
	e.sites.sites["wiki"] = &models.Site{ID: 2, Name: "wiki"}
	postA := e.seedPost(1, 3)
	postB := e.seedPost(2, 3)

	e.comments.rows = []models.CommentWithVote{
		{Comment: models.Comment{ID: 1, PostID: postA.ID.Hex(), UserID: 7, CreatedAt: time.Now()}},
		{Comment: models.Comment{ID: 2, PostID: postB.ID.Hex(), UserID: 7, CreatedAt: time.Now()}},
		{Comment: models.Comment{ID: 3, PostID: postA.ID.Hex(), UserID: 7, CreatedAt: time.Now()}},
	}

	views, err := e.manager.GetUserComments(context.Background(), 7, 7, 0, 20)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "blog", views[0].SiteName)
	assert.Equal(t, "wiki", views[1].SiteName)
	assert.Equal(t, "blog", views[2].SiteName)

	// Two distinct posts, two distinct sites: two lookups each
	assert.Equal(t, 2, e.posts.byIDCalls)
	assert.Equal(t, 2, e.sites.byIDCalls)
}

func TestGetSitePostsJoinsViewerState(t *testing.T) {
	e := newEnv()
	read := e.seedPost(1, 3)
	read.Title = "seen before"
	read.CommentsCount = 5
	unread := e.seedPost(1, 5)
	unread.CommentsCount = 2

	e.watches.records[watchKey{read.ID.Hex(), 9}] = &models.Watch{
		PostID: read.ID.Hex(), UserID: 9,
		Bookmarked: true, Watching: true, LastReadCount: 2,
	}

	views, err := e.manager.GetSitePosts(context.Background(), "blog", 9, 0, 20)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "seen before", views[0].Title)
	assert.Equal(t, "blog", views[0].SiteName)
	assert.Equal(t, 5, views[0].CommentsCount)
	assert.Equal(t, 3, views[0].NewCommentsCount)
	assert.True(t, views[0].Bookmarked)
	assert.True(t, views[0].Watching)

	// No watch record: everything is new, nothing is flagged
	assert.Equal(t, 2, views[1].NewCommentsCount)
	assert.False(t, views[1].Bookmarked)
	assert.False(t, views[1].Watching)
}

func TestGetSitePostsUnknownSite(t *testing.T) {
	e := newEnv()

	_, err := e.manager.GetSitePosts(context.Background(), "nope", 9, 0, 20)
	require.ErrorIs(t, err, ErrSiteNotFound)
}

func TestGetUserPostsResolvesSitesOnce(t *testing.T) {
	e := newEnv()
	e.sites.sites["wiki"] = &models.Site{ID: 2, Name: "wiki"}
	e.seedPost(1, 7)
	e.seedPost(2, 7)
	e.seedPost(1, 7)
	e.seedPost(1, 4) // someone else's post, filtered out

	views, err := e.manager.GetUserPosts(context.Background(), 7, 9, 0, 20)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "blog", views[0].SiteName)
	assert.Equal(t, "wiki", views[1].SiteName)
	assert.Equal(t, "blog", views[2].SiteName)
	assert.Equal(t, 2, e.sites.byIDCalls)
}

func TestGetPostCommentsMissingPostSurfaces(t *testing.T) {
	e := newEnv()
	e.comments.rows = []models.CommentWithVote{
		{Comment: models.Comment{ID: 1, PostID: "deadbeefdeadbeefdeadbeef", UserID: 7}},
	}

	_, err := e.manager.GetPostComments(context.Background(), "deadbeefdeadbeefdeadbeef", 7)
	require.ErrorIs(t, err, repositories.ErrPostNotFound)
}
