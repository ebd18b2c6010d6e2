package httpapi

import (
	"net/http"
	"testing"

	"yatube/internal/core/follower"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_CreatesEdgeAndFeed(t *testing.T) {
	h := newHarness(t)
	leo := h.signup("leo")
	mia := h.signup("mia")
	ann := h.signup("ann")
	h.post(mia, nil, "Post by a followed author")
	h.post(ann, nil, "Post by a stranger")

	w := h.get("/profile/mia/follow/", leo)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/mia/", w.Header().Get("Location"))
	assert.Equal(t, int64(1), h.count(&follower.Follow{}))

	var edge follower.Follow
	require.NoError(t, h.db.First(&edge).Error)
	assert.Equal(t, uuid.FromStringOrNil(leo.ID), edge.UserID)
	assert.Equal(t, uuid.FromStringOrNil(mia.ID), edge.AuthorID)

	body := h.get("/follow/", leo).Body.String()
	assert.Contains(t, body, "Post by a followed author")
	assert.NotContains(t, body, "Post by a stranger")

	body = h.get("/follow/", ann).Body.String()
	assert.NotContains(t, body, "Post by a followed author", "only followers see the author in their feed")

	body = h.get("/profile/mia/", leo).Body.String()
	assert.Contains(t, body, "/profile/mia/unfollow/")
	assert.Contains(t, body, "Followers: 1")
}

func TestFollow_DuplicateAndSelfAreForbidden(t *testing.T) {
	h := newHarness(t)
	leo := h.signup("leo")
	h.signup("mia")

	require.Equal(t, http.StatusFound, h.get("/profile/mia/follow/", leo).Code)

	w := h.get("/profile/mia/follow/", leo)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")

	w = h.get("/profile/leo/follow/", leo)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Equal(t, int64(1), h.count(&follower.Follow{}))
}

func TestFollow_UnknownAuthorAndAnonymous(t *testing.T) {
	h := newHarness(t)
	leo := h.signup("leo")

	assert.Equal(t, http.StatusNotFound, h.get("/profile/nobody/follow/", leo).Code)

	w := h.get("/profile/leo/follow/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/profile/leo/follow/", w.Header().Get("Location"))

	w = h.get("/follow/", nil)
	assert.Equal(t, "/auth/login/?next=/follow/", w.Header().Get("Location"))
}

func TestUnfollow(t *testing.T) {
	h := newHarness(t)
	leo := h.signup("leo")
	h.signup("mia")

	assert.Equal(t, http.StatusNotFound, h.get("/profile/mia/unfollow/", leo).Code, "no edge yet")

	require.Equal(t, http.StatusFound, h.get("/profile/mia/follow/", leo).Code)
	w := h.get("/profile/mia/unfollow/", leo)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/mia/", w.Header().Get("Location"))
	assert.Zero(t, h.count(&follower.Follow{}))

	assert.Equal(t, http.StatusNotFound, h.get("/profile/nobody/unfollow/", leo).Code)
}

func TestFollowFeed_Empty(t *testing.T) {
	h := newHarness(t)
	leo := h.signup("leo")
	h.post(leo, nil, "My own post")

	w := h.get("/follow/", leo)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, cards(w.Body.String()))
	assert.Contains(t, w.Body.String(), "Follow some authors")
}
