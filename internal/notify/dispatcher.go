package notify

import (
	"fmt"

	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/repositories"
)

// Dispatcher records notification events for target users. Callers treat
// dispatch as best-effort: a returned error means the single event was not
// recorded, nothing more.
type Dispatcher interface {
	NotifyMention(username string, actorID uint, postID string, commentID *uint) error
	NotifyReply(recipientID, actorID uint, postID string, commentID uint) error
	MarkReadForPost(recipientID uint, postID string) (bool, error)
}

// RepoDispatcher implements Dispatcher on top of the notification store
type RepoDispatcher struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewRepoDispatcher creates a new RepoDispatcher
func NewRepoDispatcher(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *RepoDispatcher {
	return &RepoDispatcher{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// NotifyMention resolves a mentioned username and records a "mentioned"
// notification. An unknown username is a dispatch failure, not a lookup the
// caller has to pre-validate; duplicates are not suppressed here.
func (d *RepoDispatcher) NotifyMention(username string, actorID uint, postID string, commentID *uint) error {
	user, err := d.userRepository.GetUserByName(username)
	if err != nil {
		return fmt.Errorf("resolve mentioned user %q: %w", username, err)
	}
	return d.notificationRepository.CreateNotification(&models.Notification{
		Type:        models.NotificationMentioned,
		ActorID:     actorID,
		RecipientID: user.ID,
		PostID:      postID,
		CommentID:   commentID,
	})
}

// NotifyReply records a "replied_to" notification for the parent comment's
// author. Self-replies are not suppressed.
func (d *RepoDispatcher) NotifyReply(recipientID, actorID uint, postID string, commentID uint) error {
	return d.notificationRepository.CreateNotification(&models.Notification{
		Type:        models.NotificationRepliedTo,
		ActorID:     actorID,
		RecipientID: recipientID,
		PostID:      postID,
		CommentID:   &commentID,
	})
}

// MarkReadForPost reconciles the recipient's notification read state for one
// post, reporting whether anything changed
func (d *RepoDispatcher) MarkReadForPost(recipientID uint, postID string) (bool, error) {
	return d.notificationRepository.MarkReadForPost(recipientID, postID)
}
