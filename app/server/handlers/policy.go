package handlers

import "bulletin-board/app/server/jwt"

type action string

const (
	actionList          action = "list"
	actionRetrieve      action = "retrieve"
	actionCreate        action = "create"
	actionUpdate        action = "update"
	actionPartialUpdate action = "partial_update"
	actionDestroy       action = "destroy"
)

// policy 是纯谓词：判断 actor 能否对归 ownerID 所有的对象执行 act 。
// actor 为 nil 表示匿名调用方。
type policy func(actor *jwt.User, act action, ownerID uint) bool

func isReadAction(act action) bool {
	return act == actionList || act == actionRetrieve
}

// ownerOrReadOnly 读操作放行所有人，写操作要求已登录且是所有者或管理人员
func ownerOrReadOnly(actor *jwt.User, act action, ownerID uint) bool {
	if isReadAction(act) {
		return true
	}
	return actor != nil && (actor.ID == ownerID || actor.IsStaff)
}

// authenticatedOnly 只要求已登录
func authenticatedOnly(actor *jwt.User, _ action, _ uint) bool {
	return actor != nil
}

// staffOrReadOnly 读操作放行所有人，写操作只允许管理人员
func staffOrReadOnly(actor *jwt.User, act action, _ uint) bool {
	if isReadAction(act) {
		return true
	}
	return actor != nil && actor.IsStaff
}

// 每个资源的 action -> policy 映射表。
// 发帖只要求登录（所有权是创建时注入的，不存在创建前检查）。
var postPolicies = map[action]policy{
	actionList:          ownerOrReadOnly,
	actionRetrieve:      ownerOrReadOnly,
	actionCreate:        authenticatedOnly,
	actionUpdate:        ownerOrReadOnly,
	actionPartialUpdate: ownerOrReadOnly,
	actionDestroy:       ownerOrReadOnly,
}

var commentPolicies = map[action]policy{
	actionList:          authenticatedOnly,
	actionRetrieve:      authenticatedOnly,
	actionCreate:        authenticatedOnly,
	actionUpdate:        authenticatedOnly,
	actionPartialUpdate: authenticatedOnly,
	actionDestroy:       authenticatedOnly,
}

// 私有视图：所有操作都只要求登录，所有权限制不在策略层，
// 而是由查询范围（只查自己帖子下的评论）保证
var privatePolicies = map[action]policy{
	actionList:          authenticatedOnly,
	actionRetrieve:      authenticatedOnly,
	actionUpdate:        authenticatedOnly,
	actionPartialUpdate: authenticatedOnly,
	actionDestroy:       authenticatedOnly,
}

var categoryPolicies = map[action]policy{
	actionList:          staffOrReadOnly,
	actionRetrieve:      staffOrReadOnly,
	actionCreate:        staffOrReadOnly,
	actionUpdate:        staffOrReadOnly,
	actionPartialUpdate: staffOrReadOnly,
	actionDestroy:       staffOrReadOnly,
}

func allowed(table map[action]policy, actor *jwt.User, act action, ownerID uint) bool {
	p, ok := table[act]
	if !ok {
		return false
	}
	return p(actor, act, ownerID)
}
