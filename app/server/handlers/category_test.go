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

func TestCategoryListAnonymous(t *testing.T) {
	a, e, _ := newTestApp(t)
	createCategory(t, a, "General")
	createCategory(t, a, "For sale")

	rec := doGet(e, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res []types.CategoryInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res, 2)
	assert.Equal(t, "General", res[0].Name)
}

func TestCategoryCreatePolicy(t *testing.T) {
	a, e, _ := newTestApp(t)
	user := createUser(t, a, "alice", "alice@example.com", false)
	staff := createUser(t, a, "root", "root@example.com", true)

	// 匿名
	rec := doJSON(e, http.MethodPost, "/categories", `{"name":"Jobs"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 普通用户
	rec = doJSON(e, http.MethodPost, "/categories", `{"name":"Jobs"}`, bearer(t, a, user))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// 管理人员
	rec = doJSON(e, http.MethodPost, "/categories", `{"name":"Jobs"}`, bearer(t, a, staff))
	require.Equal(t, http.StatusCreated, rec.Code)

	var res types.CategoryInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Jobs", res.Name)
}

func TestCategoryUpdate(t *testing.T) {
	a, e, _ := newTestApp(t)
	staff := createUser(t, a, "root", "root@example.com", true)
	category := createCategory(t, a, "Genral")

	rec := doJSON(e, http.MethodPut, fmt.Sprintf("/categories/%d", category.ID),
		`{"name":"General"}`, bearer(t, a, staff))
	require.Equal(t, http.StatusOK, rec.Code)

	var kept models.Category
	require.NoError(t, a.db.First(&kept, "id = ?", category.ID).Error)
	assert.Equal(t, "General", kept.Name)
}

func TestCategoryDeleteCascades(t *testing.T) {
	a, e, _ := newTestApp(t)
	staff := createUser(t, a, "root", "root@example.com", true)
	user := createUser(t, a, "alice", "alice@example.com", false)
	doomed := createCategory(t, a, "Doomed")
	kept := createCategory(t, a, "Kept")

	doomedPost := createPost(t, a, user, doomed, "in doomed")
	keptPost := createPost(t, a, user, kept, "in kept")
	createComment(t, a, user, doomedPost, "on doomed")
	keptComment := createComment(t, a, user, keptPost, "on kept")

	rec := doJSON(e, http.MethodDelete, fmt.Sprintf("/categories/%d", doomed.ID), "", bearer(t, a, staff))
	require.Equal(t, http.StatusOK, rec.Code)

	// 分类下的帖子和评论一并删除，其余不受影响
	var counter int64
	require.NoError(t, a.db.Model(&models.Post{}).Count(&counter).Error)
	assert.EqualValues(t, 1, counter)
	require.NoError(t, a.db.Model(&models.Comment{}).Count(&counter).Error)
	assert.EqualValues(t, 1, counter)

	var survivor models.Comment
	require.NoError(t, a.db.First(&survivor, "id = ?", keptComment.ID).Error)
	assert.Equal(t, "on kept", survivor.Text)
}
