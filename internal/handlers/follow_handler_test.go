package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFollowRepo struct {
	followers map[uint][]uint
	following map[uint][]uint
}

func (f *fakeFollowRepo) CreateFollow(follow *models.Follow) error { return nil }

func (f *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error { return nil }

func (f *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	return false, nil
}

func (f *fakeFollowRepo) GetFollowerIDs(userID uint) ([]uint, error) {
	return f.followers[userID], nil
}

func (f *fakeFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	return f.following[userID], nil
}

type fakeUserStore struct {
	users map[uint]*models.User
}

func (f *fakeUserStore) CreateUser(user *models.User) error { return nil }

func (f *fakeUserStore) GetUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetUserByEmail(email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetUserByName(name string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetUserByFirebaseUID(uid string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) UpdateUser(user *models.User) error { return nil }

func followTestContext(t *testing.T, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(userID)
	return c, rec
}

func TestGetFollowingListsFollowedUsers(t *testing.T) {
	h := NewFollowHandler(
		&fakeFollowRepo{following: map[uint][]uint{7: {3, 5}}},
		&fakeUserStore{users: map[uint]*models.User{
			7: {ID: 7, Name: "me"},
			3: {ID: 3, Name: "alice"},
			5: {ID: 5, Name: "bob"},
		}},
	)

	c, rec := followTestContext(t, "7")
	require.NoError(t, h.GetFollowing(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Following []models.UserCompact `json:"following"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Following, 2)
	assert.Equal(t, "alice", body.Data.Following[0].Name)
	assert.Equal(t, "bob", body.Data.Following[1].Name)
}

func TestGetFollowersListsFollowers(t *testing.T) {
	h := NewFollowHandler(
		&fakeFollowRepo{followers: map[uint][]uint{3: {7}}},
		&fakeUserStore{users: map[uint]*models.User{
			3: {ID: 3, Name: "alice"},
			7: {ID: 7, Name: "me"},
		}},
	)

	c, rec := followTestContext(t, "3")
	require.NoError(t, h.GetFollowers(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Followers []models.UserCompact `json:"followers"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Followers, 1)
	assert.Equal(t, uint(7), body.Data.Followers[0].ID)
}

func TestGetFollowingUnknownUser(t *testing.T) {
	h := NewFollowHandler(&fakeFollowRepo{}, &fakeUserStore{users: map[uint]*models.User{}})

	c, _ := followTestContext(t, "99")
	err := h.GetFollowing(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
