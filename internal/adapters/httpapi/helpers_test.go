package httpapi

import (
	"bytes"
	"context"
	"maps"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/adapters/memory"
	"yatube/internal/adapters/storage"
	"yatube/internal/config"
	commentapp "yatube/internal/core/comment/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	testPassword = "password123"
	perPage      = 10
	testCSRF     = "0123456789abcdef0123456789abcdef"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	t         *testing.T
	db        *gorm.DB
	engine    *gin.Engine
	cache     *memory.PageCache
	clock     *fakeClock
	mediaRoot string
	tokens    map[string]string

	users    *userapp.UserService
	groups   *groupapp.GroupService
	posts    *postapp.PostService
	comments *commentapp.CommentService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zap.NewNop()

	db, err := config.OpenDB("sqlite", filepath.Join(t.TempDir(), "yatube.db"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = config.CloseDB(db) })

	userRepo := database.NewUserRepositoryDatabase(db)
	groupRepo := database.NewGroupRepositoryDatabase(db)
	postRepo := database.NewPostRepositoryDatabase(db)
	commentRepo := database.NewCommentRepositoryDatabase(db)
	followerRepo := database.NewFollowerRepositoryDatabase(db)
	mediaRoot := t.TempDir()

	h := &harness{
		t:         t,
		db:        db,
		clock:     &fakeClock{now: time.Date(2022, 10, 13, 12, 0, 0, 0, time.UTC)},
		mediaRoot: mediaRoot,
		tokens:    map[string]string{},
		users:     userapp.NewUserService(userRepo, storage.NewLocalStorage(mediaRoot), []byte("test-secret"), logger),
		groups:    groupapp.NewGroupService(groupRepo, logger),
		posts:     postapp.NewPostService(postRepo, groupRepo, userRepo, storage.NewLocalStorage(mediaRoot), perPage, logger),
		comments:  commentapp.NewCommentService(commentRepo, postRepo, logger),
	}
	h.cache = memory.NewPageCache(h.clock.Now)
	followers := followerapp.NewFollowerService(followerRepo, userRepo, logger)

	h.engine, err = SetupRoutes(h.users, h.groups, h.posts, h.comments, followers, Options{
		PageCache:     h.cache,
		IndexCacheTTL: 20 * time.Second,
		MediaRoot:     mediaRoot,
		Logger:        logger,
	})
	require.NoError(t, err)
	return h
}

func (h *harness) signup(username string) *userPort.UserDTO {
	h.t.Helper()
	u, err := h.users.RegisterUser(context.Background(), userPort.SignupInput{
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		Username:  username,
		Email:     username + "@example.com",
		Password:  testPassword,
	})
	require.NoError(h.t, err)
	return u
}

func (h *harness) group(slug string) *groupPort.GroupDTO {
	h.t.Helper()
	g, err := h.groups.CreateGroup(context.Background(), "Group "+slug, slug, "about "+slug)
	require.NoError(h.t, err)
	return g
}

func (h *harness) post(author *userPort.UserDTO, g *groupPort.GroupDTO, text string) *postPort.PostDTO {
	h.t.Helper()
	in := postPort.PostInput{Text: text}
	if g != nil {
		in.GroupID = &g.ID
	}
	p, err := h.posts.CreatePost(context.Background(), author.ID, in)
	require.NoError(h.t, err)
	return p
}

func (h *harness) count(model any) int64 {
	h.t.Helper()
	var n int64
	require.NoError(h.t, h.db.Model(model).Count(&n).Error)
	return n
}

func (h *harness) do(req *http.Request, as *userPort.UserDTO) *httptest.ResponseRecorder {
	h.t.Helper()
	if as != nil {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: h.token(as)})
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func (h *harness) token(u *userPort.UserDTO) string {
	h.t.Helper()
	if tok, ok := h.tokens[u.Username]; ok {
		return tok
	}
	login, err := h.users.LoginUser(context.Background(), u.Username, testPassword)
	require.NoError(h.t, err)
	h.tokens[u.Username] = login.Token
	return login.Token
}

func (h *harness) get(path string, as *userPort.UserDTO) *httptest.ResponseRecorder {
	return h.do(httptest.NewRequest(http.MethodGet, path, nil), as)
}

// postForm submits form the way a browser would, CSRF token included.
func (h *harness) postForm(path string, form url.Values, as *userPort.UserDTO) *httptest.ResponseRecorder {
	form = maps.Clone(form)
	if form == nil {
		form = url.Values{}
	}
	form.Set(middleware.CSRFField, testCSRF)
	return h.do(h.rawPostForm(path, form), as)
}

// rawPostForm builds a form POST carrying the CSRF cookie but nothing else.
func (h *harness) rawPostForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookie, Value: testCSRF})
	return req
}

func (h *harness) postMultipart(path string, fields map[string]string, fileField, fileName string, data []byte, as *userPort.UserDTO) *httptest.ResponseRecorder {
	h.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(h.t, mw.WriteField(middleware.CSRFField, testCSRF))
	for k, v := range fields {
		require.NoError(h.t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(h.t, err)
		_, err = fw.Write(data)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookie, Value: testCSRF})
	return h.do(req, as)
}

// cards counts rendered post cards.
func cards(body string) int {
	return strings.Count(body, `class="post"`)
}

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}
