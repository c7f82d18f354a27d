package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/repositories"
)

// Service propagates newly created content into the feeds of interested
// users. Callers schedule it off the request path; its outcome never reaches
// the author.
type Service interface {
	FanOutPost(ctx context.Context, post *models.Post) error
	FanOutComment(ctx context.Context, postID string, comment *models.Comment) error
}

// FeedFanout implements Service by writing feed entries to the feed store.
// Posts go to the author's followers; comments go to the owning post's
// watchers, minus the comment's own author.
type FeedFanout struct {
	feedRepository   repositories.FeedRepository
	followRepository repositories.FollowRepository
	watchRepository  repositories.WatchRepository
	postRepository   repositories.PostRepository
}

// NewFeedFanout creates a new FeedFanout
func NewFeedFanout(
	feedRepo repositories.FeedRepository,
	followRepo repositories.FollowRepository,
	watchRepo repositories.WatchRepository,
	postRepo repositories.PostRepository,
) *FeedFanout {
	return &FeedFanout{
		feedRepository:   feedRepo,
		followRepository: followRepo,
		watchRepository:  watchRepo,
		postRepository:   postRepo,
	}
}

// FanOutPost writes one feed entry per follower of the post's author
func (s *FeedFanout) FanOutPost(ctx context.Context, post *models.Post) error {
	followerIDs, err := s.followRepository.GetFollowerIDs(post.UserID)
	if err != nil {
		return fmt.Errorf("fan out post %s: %w", post.ID.Hex(), err)
	}

	now := time.Now()
	entries := make([]models.FeedEntry, 0, len(followerIDs))
	for _, uid := range followerIDs {
		entries = append(entries, models.FeedEntry{
			UserID:    uid,
			Kind:      models.FeedEntryPost,
			PostID:    post.ID.Hex(),
			SiteID:    post.SiteID,
			ActorID:   post.UserID,
			CreatedAt: now,
		})
	}
	return s.feedRepository.InsertEntries(ctx, entries)
}

// FanOutComment writes one feed entry per watcher of the owning post.
// Comments propagate under their parent post's identity, not their own.
func (s *FeedFanout) FanOutComment(ctx context.Context, postID string, comment *models.Comment) error {
	post, err := s.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("fan out comment %d: %w", comment.ID, err)
	}

	watcherIDs, err := s.watchRepository.GetWatcherIDs(postID)
	if err != nil {
		return fmt.Errorf("fan out comment %d: %w", comment.ID, err)
	}

	now := time.Now()
	commentID := comment.ID
	entries := make([]models.FeedEntry, 0, len(watcherIDs))
	for _, uid := range watcherIDs {
		if uid == comment.UserID {
			continue
		}
		entries = append(entries, models.FeedEntry{
			UserID:    uid,
			Kind:      models.FeedEntryComment,
			PostID:    postID,
			CommentID: &commentID,
			SiteID:    post.SiteID,
			ActorID:   comment.UserID,
			CreatedAt: now,
		})
	}
	return s.feedRepository.InsertEntries(ctx, entries)
}
