package contentmgr

import (
	"fmt"

	"github.com/rdmitry/openforum/backend/internal/models"
)

// SetRead reconciles the two stores that track "has this user seen this
// post": the notification store's per-post read markers and the watch
// store's last-read watermark. The calls are sequential so a failure in the
// second never leaves doubt about the first; the result is true when either
// store actually changed.
func (m *Manager) SetRead(postID string, userID uint, readCount int, lastCommentID *uint) (bool, error) {
	notifChanged, err := m.dispatcher.MarkReadForPost(userID, postID)
	if err != nil {
		return false, fmt.Errorf("mark notifications read for post %s: %w", postID, err)
	}

	watchChanged, err := m.watchRepository.SetLastRead(postID, userID, readCount, lastCommentID)
	if err != nil {
		return false, fmt.Errorf("advance read watermark for post %s: %w", postID, err)
	}

	return notifChanged || watchChanged, nil
}

// GetBookmark returns the flag record for (post, user); absent flags read as false
func (m *Manager) GetBookmark(postID string, userID uint) (*models.Watch, error) {
	return m.watchRepository.GetWatch(postID, userID)
}

// SetBookmark sets the bookmark flag for (post, user)
func (m *Manager) SetBookmark(postID string, userID uint, bookmarked bool) error {
	return m.watchRepository.SetBookmark(postID, userID, bookmarked)
}

// SetWatch sets the watching flag for (post, user)
func (m *Manager) SetWatch(postID string, userID uint, watching bool) error {
	return m.watchRepository.SetWatch(postID, userID, watching)
}

// Preview renders markup without persisting anything or dispatching any
// notification, even when the text contains valid mention syntax
func (m *Manager) Preview(source string) string {
	return m.parser.Parse(source).HTML
}
