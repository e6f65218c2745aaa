package handlers

import (
	"bulletin-board/app/server/jwt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostPolicies(t *testing.T) {
	owner := &jwt.User{ID: 1}
	other := &jwt.User{ID: 2}
	staff := &jwt.User{ID: 3, IsStaff: true}

	// 读操作对所有人放行
	assert.True(t, allowed(postPolicies, nil, actionList, 0))
	assert.True(t, allowed(postPolicies, nil, actionRetrieve, 1))

	// 写操作要求所有者或管理人员
	assert.False(t, allowed(postPolicies, nil, actionUpdate, 1))
	assert.False(t, allowed(postPolicies, other, actionUpdate, 1))
	assert.True(t, allowed(postPolicies, owner, actionUpdate, 1))
	assert.True(t, allowed(postPolicies, owner, actionPartialUpdate, 1))
	assert.True(t, allowed(postPolicies, staff, actionDestroy, 1))

	// 创建只要求登录
	assert.False(t, allowed(postPolicies, nil, actionCreate, 0))
	assert.True(t, allowed(postPolicies, other, actionCreate, 0))
}

func TestPrivatePolicies(t *testing.T) {
	other := &jwt.User{ID: 2}

	// 全部操作只要求登录，所有权由查询范围保证而不是策略层
	assert.True(t, allowed(privatePolicies, other, actionList, 1))
	assert.False(t, allowed(privatePolicies, nil, actionList, 1))
	assert.True(t, allowed(privatePolicies, other, actionRetrieve, 1))
	assert.True(t, allowed(privatePolicies, other, actionUpdate, 1))
	assert.True(t, allowed(privatePolicies, other, actionDestroy, 1))

	assert.False(t, allowed(privatePolicies, nil, actionRetrieve, 1))
	assert.False(t, allowed(privatePolicies, nil, actionUpdate, 1))

	// 私有视图没有创建入口
	assert.False(t, allowed(privatePolicies, other, actionCreate, 0))
}

func TestCategoryPolicies(t *testing.T) {
	user := &jwt.User{ID: 1}
	staff := &jwt.User{ID: 2, IsStaff: true}

	assert.True(t, allowed(categoryPolicies, nil, actionList, 0))
	assert.False(t, allowed(categoryPolicies, nil, actionCreate, 0))
	assert.False(t, allowed(categoryPolicies, user, actionCreate, 0))
	assert.True(t, allowed(categoryPolicies, staff, actionCreate, 0))
	assert.True(t, allowed(categoryPolicies, staff, actionDestroy, 0))
}

func TestDenyStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, denyStatus(nil))
	assert.Equal(t, http.StatusForbidden, denyStatus(&jwt.User{ID: 1}))
}
