package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts user ID from JWT token and stores it in context
// Use this for routes that don't have {id} parameter in URL
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("userRole", claims.Role)
	ctx.Next()
}

// OwnerOnlyMiddleware ensures the requester has the owner or admin role.
func OwnerOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "owner" && claims.Role != "admin" {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"error": "forbidden", "message": "owner access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("userRole", claims.Role)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester has the admin role.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "admin" {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}
