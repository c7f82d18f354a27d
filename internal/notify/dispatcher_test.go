package notify

import (
	"errors"
	"testing"

	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) CreateUser(user *models.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByName(name string) (*models.User, error) {
	if u, ok := f.users[name]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error { return nil }

type fakeNotifRepo struct {
	created     []models.Notification
	createErr   error
	readChanged bool
	readErr     error
}

func (f *fakeNotifRepo) CreateNotification(n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotifRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotifRepo) GetUnreadCount(recipientID uint) (int64, error) { return 0, nil }
func (f *fakeNotifRepo) MarkAsRead(notificationID uint) error          { return nil }
func (f *fakeNotifRepo) MarkAllAsRead(recipientID uint) error          { return nil }

func (f *fakeNotifRepo) MarkReadForPost(recipientID uint, postID string) (bool, error) {
	return f.readChanged, f.readErr
}

func TestNotifyMentionRecordsNotification(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"alice": {ID: 12, Name: "alice"}}}
	notifs := &fakeNotifRepo{}
	d := NewRepoDispatcher(notifs, users)

	commentID := uint(8)
	err := d.NotifyMention("alice", 7, "p1", &commentID)
	require.NoError(t, err)

	require.Len(t, notifs.created, 1)
	n := notifs.created[0]
	assert.Equal(t, models.NotificationMentioned, n.Type)
	assert.Equal(t, uint(12), n.RecipientID)
	assert.Equal(t, uint(7), n.ActorID)
	assert.Equal(t, "p1", n.PostID)
	require.NotNil(t, n.CommentID)
	assert.Equal(t, uint(8), *n.CommentID)
}

func TestNotifyMentionOnPostHasNoComment(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{"alice": {ID: 12}}}
	notifs := &fakeNotifRepo{}
	d := NewRepoDispatcher(notifs, users)

	require.NoError(t, d.NotifyMention("alice", 7, "p1", nil))
	require.Len(t, notifs.created, 1)
	assert.Nil(t, notifs.created[0].CommentID)
}

func TestNotifyMentionUnknownUserFails(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{}}
	notifs := &fakeNotifRepo{}
	d := NewRepoDispatcher(notifs, users)

	err := d.NotifyMention("ghost", 7, "p1", nil)
	require.Error(t, err)
	assert.Empty(t, notifs.created, "nothing recorded for an unresolvable mention")
}

func TestNotifyReplyRecordsNotification(t *testing.T) {
	notifs := &fakeNotifRepo{}
	d := NewRepoDispatcher(notifs, &fakeUserRepo{})

	err := d.NotifyReply(3, 7, "p1", 42)
	require.NoError(t, err)

	require.Len(t, notifs.created, 1)
	n := notifs.created[0]
	assert.Equal(t, models.NotificationRepliedTo, n.Type)
	assert.Equal(t, uint(3), n.RecipientID)
	assert.Equal(t, uint(7), n.ActorID)
	require.NotNil(t, n.CommentID)
	assert.Equal(t, uint(42), *n.CommentID)
}

func TestMarkReadForPostPassesThrough(t *testing.T) {
	notifs := &fakeNotifRepo{readChanged: true}
	d := NewRepoDispatcher(notifs, &fakeUserRepo{})

	changed, err := d.MarkReadForPost(3, "p1")
	require.NoError(t, err)
	assert.True(t, changed)

	notifs.readErr = errors.New("store down")
	_, err = d.MarkReadForPost(3, "p1")
	require.Error(t, err)
}
