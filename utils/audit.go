package utils

import (
	"encoding/json"
	"net"
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/ammarsarhan/hagz-sub001/models"
	"github.com/ammarsarhan/hagz-sub001/storage"
)

// Audit records an admin mutation with before/after snapshots.
func Audit(ctx iris.Context, action, resourceType string, resourceID uint, before interface{}, after interface{}) {
	var beforeStr, afterStr string
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			beforeStr = string(b)
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			afterStr = string(a)
		}
	}
	var adminID uint
	if tok := jwt.Get(ctx); tok != nil {
		if at, ok := tok.(*AccessToken); ok {
			adminID = at.ID
		}
	}
	entry := models.AuditLog{
		AdminUserID:  adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeJSON:   beforeStr,
		AfterJSON:    afterStr,
		IPAddress:    clientIP(ctx),
	}
	storage.DB.Create(&entry)
}

func clientIP(ctx iris.Context) string {
	if fwd := ctx.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(ctx.Request().RemoteAddr)
	if err != nil {
		return ctx.Request().RemoteAddr
	}
	return host
}
