// Package auth carries request identity through context. Token verification
// happens at the edge gateway; by the time a request reaches this service the
// member id and role arrive as trusted headers.
package auth

import (
	"context"
)

const (
	XMemberIDHeader   = "X-Member-Id"
	XMemberRoleHeader = "X-Member-Role"

	RoleMember    = "MEMBER"
	RoleLibrarian = "LIBRARIAN"
)

type ctxKey int

const (
	memberIDKey ctxKey = iota + 1
	roleKey
)

func SetAuthContext(ctx context.Context, memberID, role string) context.Context {
	ctx = context.WithValue(ctx, memberIDKey, memberID)
	return context.WithValue(ctx, roleKey, role)
}

func MemberID(ctx context.Context) string {
	id, _ := ctx.Value(memberIDKey).(string)
	return id
}

func Role(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

func IsLibrarian(ctx context.Context) bool {
	return Role(ctx) == RoleLibrarian
}
