package handlers

import (
	"bulletin-board/app/server/models"
	"bulletin-board/app/server/types"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreateNotifiesPostOwner(t *testing.T) {
	a, e, mail := newTestApp(t)
	owner := createUser(t, a, "alice", "alice@example.com", false)
	commenter := createUser(t, a, "bob", "bob@example.com", false)
	category := createCategory(t, a, "General")
	post := createPost(t, a, owner, category, "hello")

	rec := doJSON(e, http.MethodPost, "/comment",
		fmt.Sprintf(`{"text":"nice post","post":%d}`, post.ID), bearer(t, a, commenter))
	require.Equal(t, http.StatusCreated, rec.Code)

	var res types.CommentInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Accepted)
	assert.Equal(t, commenter.ID, res.Owner)
	assert.Equal(t, post.ID, res.Post)

	// 楼主收到一封通知，内容就是评论正文
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "alice@example.com", mail.sent[0].To)
	assert.Equal(t, "alice you have new comment", mail.sent[0].Subject)
	assert.Equal(t, "nice post", mail.sent[0].Body)
	assert.Equal(t, "board@localhost", mail.sent[0].From)
}

func TestCommentCreateMailFailure(t *testing.T) {
	a, e, mail := newTestApp(t)
	owner := createUser(t, a, "alice", "alice@example.com", false)
	commenter := createUser(t, a, "bob", "bob@example.com", false)
	category := createCategory(t, a, "General")
	post := createPost(t, a, owner, category, "hello")

	// 邮件发不出去要让请求失败，而不是吞掉
	mail.fail = true
	rec := doJSON(e, http.MethodPost, "/comment",
		fmt.Sprintf(`{"text":"nice post","post":%d}`, post.ID), bearer(t, a, commenter))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	// 评论本身在通知之前已经落库
	var counter int64
	require.NoError(t, a.db.Model(&models.Comment{}).Count(&counter).Error)
	assert.EqualValues(t, 1, counter)
}

func TestCommentCreateUnauthenticated(t *testing.T) {
	a, e, mail := newTestApp(t)
	owner := createUser(t, a, "alice", "alice@example.com", false)
	category := createCategory(t, a, "General")
	post := createPost(t, a, owner, category, "hello")

	rec := doJSON(e, http.MethodPost, "/comment",
		fmt.Sprintf(`{"text":"nice post","post":%d}`, post.ID), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, mail.sent)
}

func TestCommentCreateBadPost(t *testing.T) {
	a, e, mail := newTestApp(t)
	commenter := createUser(t, a, "bob", "bob@example.com", false)

	rec := doJSON(e, http.MethodPost, "/comment",
		`{"text":"nice post","post":999}`, bearer(t, a, commenter))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res types.ErrorMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res.Fields, "post")
	assert.Empty(t, mail.sent)
}

func TestCommentListRequiresAuth(t *testing.T) {
	_, e, _ := newTestApp(t)

	rec := doGet(e, "/comment", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCommentDelete(t *testing.T) {
	a, e, _ := newTestApp(t)
	owner := createUser(t, a, "alice", "alice@example.com", false)
	commenter := createUser(t, a, "bob", "bob@example.com", false)
	category := createCategory(t, a, "General")
	post := createPost(t, a, owner, category, "hello")
	comment := createComment(t, a, commenter, post, "nice")

	// 不存在的评论是 404 而不是静默成功
	rec := doJSON(e, http.MethodDelete, "/comment/12345", "", bearer(t, a, commenter))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var counter int64
	require.NoError(t, a.db.Model(&models.Comment{}).Count(&counter).Error)
	assert.EqualValues(t, 1, counter)

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/comment/%d", comment.ID), "", bearer(t, a, commenter))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, a.db.Model(&models.Comment{}).Count(&counter).Error)
	assert.EqualValues(t, 0, counter)
}

func TestCommentUpdateNotifiesAgain(t *testing.T) {
	a, e, mail := newTestApp(t)
	owner := createUser(t, a, "alice", "alice@example.com", false)
	commenter := createUser(t, a, "bob", "bob@example.com", false)
	category := createCategory(t, a, "General")
	post := createPost(t, a, owner, category, "hello")
	comment := createComment(t, a, commenter, post, "first draft")

	// 保存即通知：编辑评论会再次给楼主发信
	rec := doJSON(e, http.MethodPut, fmt.Sprintf("/comment/%d", comment.ID),
		fmt.Sprintf(`{"text":"second draft","post":%d}`, post.ID), bearer(t, a, commenter))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "alice@example.com", mail.sent[0].To)
	assert.Equal(t, "second draft", mail.sent[0].Body)

	var kept models.Comment
	require.NoError(t, a.db.First(&kept, "id = ?", comment.ID).Error)
	assert.Equal(t, "second draft", kept.Text)
}
