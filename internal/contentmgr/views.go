package contentmgr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rdmitry/openforum/backend/internal/models"
	"gorm.io/gorm"
)

// PostView is the denormalized response shape for a post. Assembled fresh
// per request, never cached here.
type PostView struct {
	ID               string    `json:"id"`
	SiteName         string    `json:"site_name"`
	AuthorID         uint      `json:"author_id"`
	CreatedAt        time.Time `json:"created_at"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Rating           int       `json:"rating"`
	CommentsCount    int       `json:"comments_count"`
	NewCommentsCount int       `json:"new_comments_count"`
	Vote             *int      `json:"vote,omitempty"`
	Bookmarked       bool      `json:"bookmarked"`
	Watching         bool      `json:"watching"`
}

// CommentView is the denormalized response shape for a comment
type CommentView struct {
	ID        uint      `json:"id"`
	PostID    string    `json:"post_id"`
	SiteName  string    `json:"site_name"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	Deleted   bool      `json:"deleted"`
	Rating    int       `json:"rating"`
	ParentID  *uint     `json:"parent_id,omitempty"`
	Vote      *int      `json:"vote,omitempty"`
}

// GetSitePosts returns a page of a site's posts as view-models, newest first
func (m *Manager) GetSitePosts(ctx context.Context, siteName string, viewerID uint, skip, limit int64) ([]PostView, error) {
	site, err := m.siteRepository.GetSiteByName(siteName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrSiteNotFound, siteName)
		}
		return nil, fmt.Errorf("resolve site %q: %w", siteName, err)
	}

	posts, err := m.postRepository.GetPostsBySiteID(ctx, site.ID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("load posts of site %q: %w", siteName, err)
	}
	return m.newViewConverter().posts(ctx, posts, viewerID)
}

// GetUserPosts returns a page of a user's posts as view-models, newest first
func (m *Manager) GetUserPosts(ctx context.Context, userID, viewerID uint, skip, limit int64) ([]PostView, error) {
	posts, err := m.postRepository.GetPostsByUserID(ctx, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("load posts of user %d: %w", userID, err)
	}
	return m.newViewConverter().posts(ctx, posts, viewerID)
}

// GetPostComments returns all comments of a post as view-models, oldest
// first, with the viewer's vote already joined in by the store
func (m *Manager) GetPostComments(ctx context.Context, postID string, viewerID uint) ([]CommentView, error) {
	rows, err := m.commentRepository.GetCommentsByPostID(postID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load comments of post %s: %w", postID, err)
	}
	return m.newViewConverter().comments(ctx, rows)
}

// GetUserComments returns a page of a user's comments as view-models, newest first
func (m *Manager) GetUserComments(ctx context.Context, userID, viewerID uint, offset, limit int) ([]CommentView, error) {
	rows, err := m.commentRepository.GetCommentsByUserID(userID, viewerID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("load comments of user %d: %w", userID, err)
	}
	return m.newViewConverter().comments(ctx, rows)
}

// viewConverter memoizes post and site lookups for the duration of one
// conversion pass. The maps live and die with the call; nothing is shared
// across requests.
type viewConverter struct {
	m         *Manager
	postByID  map[string]*models.Post
	siteNames map[uint]string
}

func (m *Manager) newViewConverter() *viewConverter {
	return &viewConverter{
		m:         m,
		postByID:  make(map[string]*models.Post),
		siteNames: make(map[uint]string),
	}
}

func (c *viewConverter) posts(ctx context.Context, rows []models.Post, viewerID uint) ([]PostView, error) {
	views := make([]PostView, 0, len(rows))
	for i := range rows {
		post := &rows[i]
		siteName, ok := c.siteNames[post.SiteID]
		if !ok {
			site, err := c.m.siteRepository.GetSiteByID(post.SiteID)
			if err != nil {
				return nil, fmt.Errorf("resolve site %d: %w", post.SiteID, err)
			}
			siteName = site.Name
			c.siteNames[post.SiteID] = siteName
		}

		watch, err := c.m.watchRepository.GetWatch(post.ID.Hex(), viewerID)
		if err != nil {
			return nil, fmt.Errorf("load watch state of post %s: %w", post.ID.Hex(), err)
		}
		newCount := post.CommentsCount - watch.LastReadCount
		if newCount < 0 {
			newCount = 0
		}

		views = append(views, PostView{
			ID:               post.ID.Hex(),
			SiteName:         siteName,
			AuthorID:         post.UserID,
			CreatedAt:        post.CreatedAt,
			Title:            post.Title,
			Content:          post.Content,
			CommentsCount:    post.CommentsCount,
			NewCommentsCount: newCount,
			Bookmarked:       watch.Bookmarked,
			Watching:         watch.Watching,
		})
	}
	return views, nil
}

func (c *viewConverter) comments(ctx context.Context, rows []models.CommentWithVote) ([]CommentView, error) {
	views := make([]CommentView, 0, len(rows))
	for _, row := range rows {
		siteName, err := c.siteNameOf(ctx, row.PostID)
		if err != nil {
			return nil, err
		}
		views = append(views, CommentView{
			ID:        row.ID,
			PostID:    row.PostID,
			SiteName:  siteName,
			Content:   row.Content,
			AuthorID:  row.UserID,
			CreatedAt: row.CreatedAt,
			Deleted:   row.Deleted,
			Rating:    row.Rating,
			ParentID:  row.ParentID,
			Vote:      row.ViewerVote,
		})
	}
	return views, nil
}

func (c *viewConverter) siteNameOf(ctx context.Context, postID string) (string, error) {
	post, ok := c.postByID[postID]
	if !ok {
		var err error
		post, err = c.m.postRepository.GetPostByID(ctx, postID)
		if err != nil {
			return "", fmt.Errorf("resolve post %s: %w", postID, err)
		}
		c.postByID[postID] = post
	}

	name, ok := c.siteNames[post.SiteID]
	if !ok {
		site, err := c.m.siteRepository.GetSiteByID(post.SiteID)
		if err != nil {
			return "", fmt.Errorf("resolve site %d: %w", post.SiteID, err)
		}
		name = site.Name
		c.siteNames[post.SiteID] = name
	}
	return name, nil
}
