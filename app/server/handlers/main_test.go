package handlers

import (
	"bulletin-board/app/server/config"
	"bulletin-board/app/server/constants"
	"bulletin-board/app/server/inits"
	"bulletin-board/app/server/jwt"
	"bulletin-board/app/server/models"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingMailer 记录发送的邮件，替代真实的 SMTP
type recordedMail struct {
	From    string
	To      string
	Subject string
	Body    string
	HTML    bool
}

type recordingMailer struct {
	sent []recordedMail
	fail bool // 为 true 时模拟邮件服务不可达
}

func (m *recordingMailer) Send(from string, to string, subject string, body string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, recordedMail{From: from, To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) SendHTML(from string, to string, subject string, htmlBody string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, recordedMail{From: from, To: to, Subject: subject, Body: htmlBody, HTML: true})
	return nil
}

func newTestApp(t *testing.T) (*App, *echo.Echo, *recordingMailer) {
	t.Helper()

	// 每个测试一份独立的内存数据库
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, inits.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	j, err := jwt.New("test-secret")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.System.PageSize = 10
	cfg.System.UploadDir = t.TempDir()
	cfg.Mail.From = "board@localhost"

	mail := &recordingMailer{}
	app := NewApp(zap.NewNop(), db, rdb, j, mail, cfg)

	e := echo.New()
	app.RegisterRoutes(e)

	return app, e, mail
}

func createUser(t *testing.T, a *App, username string, email string, staff bool) *models.User {
	t.Helper()

	hash, err := argon2id.CreateHash("password123", argon2id.DefaultParams)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    email,
		IsActive: true,
		IsStaff:  staff,
		Password: hash,
	}
	require.NoError(t, a.db.Create(user).Error)
	return user
}

func createCategory(t *testing.T, a *App, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	require.NoError(t, a.db.Create(category).Error)
	return category
}

func createPost(t *testing.T, a *App, owner *models.User, category *models.Category, title string) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:      title,
		Text:       "some text",
		OwnerID:    owner.ID,
		CategoryID: category.ID,
	}
	require.NoError(t, a.db.Create(post).Error)
	return post
}

func createComment(t *testing.T, a *App, owner *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Text:    text,
		OwnerID: owner.ID,
		PostID:  post.ID,
	}
	require.NoError(t, a.db.Create(comment).Error)
	return comment
}

func bearer(t *testing.T, a *App, user *models.User) string {
	t.Helper()

	token, err := a.jwt.SignToken(&jwt.User{
		ID:      user.ID,
		IsStaff: user.IsStaff,
		Expires: time.Now().Add(constants.AuthTokenDuration).Unix(),
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(e *echo.Echo, method string, target string, body io.Reader, contentType string, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doJSON(e *echo.Echo, method string, target string, body string, auth string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return doRequest(e, method, target, reader, echo.MIMEApplicationJSON, auth)
}

func doGet(e *echo.Echo, target string, auth string) *httptest.ResponseRecorder {
	return doRequest(e, http.MethodGet, target, nil, "", auth)
}
