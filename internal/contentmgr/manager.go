package contentmgr

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rdmitry/openforum/backend/internal/content"
	"github.com/rdmitry/openforum/backend/internal/fanout"
	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/notify"
	"github.com/rdmitry/openforum/backend/internal/repositories"
	"gorm.io/gorm"
)

var (
	// ErrSiteNotFound means the named site does not exist; nothing was written
	ErrSiteNotFound = errors.New("site not found")
	// ErrCommentNotFound means the referenced parent comment does not exist; nothing was written
	ErrCommentNotFound = errors.New("comment not found")
)

// TaskRunner schedules supervised background work off the request path
type TaskRunner interface {
	Go(name string, fn func(ctx context.Context) error)
}

// Manager orchestrates content authoring: it sequences parsing, storage,
// the author's self-watch, mention and reply notifications, and feed fan-out.
// It holds no state of its own; everything durable lives in the stores.
type Manager struct {
	siteRepository    repositories.SiteRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	watchRepository   repositories.WatchRepository
	parser            content.Parser
	dispatcher        notify.Dispatcher
	fanoutService     fanout.Service
	taskRunner        TaskRunner
}

// NewManager creates a new Manager
func NewManager(
	siteRepo repositories.SiteRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	watchRepo repositories.WatchRepository,
	parser content.Parser,
	dispatcher notify.Dispatcher,
	fanoutService fanout.Service,
	taskRunner TaskRunner,
) *Manager {
	return &Manager{
		siteRepository:    siteRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
		watchRepository:   watchRepo,
		parser:            parser,
		dispatcher:        dispatcher,
		fanoutService:     fanoutService,
		taskRunner:        taskRunner,
	}
}

// CreatePost creates a post under the named site. The site must exist before
// anything is written. Once the store returns, the post exists: the author's
// self-watch must then succeed or the whole operation fails, mention
// notifications are attempted independently of each other, and feed fan-out
// is scheduled without being awaited.
func (m *Manager) CreatePost(ctx context.Context, siteName string, authorID uint, title, source string, format models.ContentFormat) (*PostView, error) {
	site, err := m.siteRepository.GetSiteByName(siteName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrSiteNotFound, siteName)
		}
		return nil, fmt.Errorf("resolve site %q: %w", siteName, err)
	}

	parsed := m.parser.Parse(source)

	post := &models.Post{
		SiteID:  site.ID,
		UserID:  authorID,
		Title:   title,
		Source:  source,
		Content: parsed.HTML,
	}
	if err := m.postRepository.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	postID := post.ID.Hex()

	// Author self-watch is part of the notification model, not an optional
	// side effect. If it fails, the operation fails.
	if err := m.watchRepository.SetWatch(postID, authorID, true); err != nil {
		return nil, fmt.Errorf("set author watch on post %s: %w", postID, err)
	}

	m.dispatchMentions(parsed.Mentions, authorID, postID, nil)

	m.taskRunner.Go("fanout post "+postID, func(ctx context.Context) error {
		return m.fanoutService.FanOutPost(ctx, post)
	})

	return &PostView{
		ID:        postID,
		SiteName:  site.Name,
		AuthorID:  authorID,
		CreatedAt: post.CreatedAt,
		Title:     title,
		Content:   rendition(source, parsed.HTML, format),
		Watching:  true,
	}, nil
}

// CreateComment creates a comment on a post, optionally replying to another
// comment. The parent comment, when supplied, must exist before anything is
// written; the post itself is trusted and a missing post surfaces as the
// store's not-found. A supplied parent produces exactly one reply
// notification addressed to the parent's author, on top of any mentions.
func (m *Manager) CreateComment(ctx context.Context, authorID uint, postID string, parentID *uint, source string, format models.ContentFormat) (*CommentView, error) {
	var parent *models.Comment
	if parentID != nil {
		var err error
		parent, err = m.commentRepository.GetCommentByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: parent %d", ErrCommentNotFound, *parentID)
			}
			return nil, fmt.Errorf("resolve parent comment %d: %w", *parentID, err)
		}
	}

	post, err := m.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("resolve post %s: %w", postID, err)
	}
	site, err := m.siteRepository.GetSiteByID(post.SiteID)
	if err != nil {
		return nil, fmt.Errorf("resolve site %d: %w", post.SiteID, err)
	}

	parsed := m.parser.Parse(source)

	comment := &models.Comment{
		PostID:   postID,
		UserID:   authorID,
		ParentID: parentID,
		Source:   source,
		Content:  parsed.HTML,
	}
	if err := m.commentRepository.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// Same invariant as post creation, re-applied on every comment.
	// Setting an already-true watch is a no-op.
	if err := m.watchRepository.SetWatch(postID, authorID, true); err != nil {
		return nil, fmt.Errorf("set author watch on post %s: %w", postID, err)
	}

	m.dispatchMentions(parsed.Mentions, authorID, postID, &comment.ID)

	if parent != nil {
		if err := m.dispatcher.NotifyReply(parent.UserID, authorID, postID, comment.ID); err != nil {
			log.Printf("reply notification for comment %d failed: %v", comment.ID, err)
		}
	}

	m.taskRunner.Go(fmt.Sprintf("fanout comment %d", comment.ID), func(ctx context.Context) error {
		return m.fanoutService.FanOutComment(ctx, postID, comment)
	})
	m.taskRunner.Go("bump comment count "+postID, func(ctx context.Context) error {
		return m.postRepository.IncrementCommentsCount(ctx, postID)
	})

	return &CommentView{
		ID:        comment.ID,
		PostID:    postID,
		SiteName:  site.Name,
		Content:   rendition(source, parsed.HTML, format),
		AuthorID:  authorID,
		CreatedAt: comment.CreatedAt,
		ParentID:  parentID,
	}, nil
}

// dispatchMentions requests one "mentioned" notification per mention, in
// source order. A failed dispatch is logged and never stops the rest.
func (m *Manager) dispatchMentions(mentions []string, actorID uint, postID string, commentID *uint) {
	for _, username := range mentions {
		if err := m.dispatcher.NotifyMention(username, actorID, postID, commentID); err != nil {
			log.Printf("mention notification for @%s on post %s failed: %v", username, postID, err)
		}
	}
}

// rendition selects which text a caller gets back in the view-model
func rendition(source, html string, format models.ContentFormat) string {
	if format == models.FormatSource {
		return source
	}
	return html
}
