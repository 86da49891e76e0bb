package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// UserIDFromTokenMiddleware extracts the actor identity from the JWT and
// stores it in the request context so handlers never reach for ambient
// session state.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("userRole", claims.Role)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester has the admin role.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("userRole", claims.Role)
	ctx.Next()
}

// Actor returns the authenticated user's ID and whether they are an admin.
func Actor(ctx iris.Context) (uint, bool) {
	var id uint
	if v := ctx.Values().Get("userID"); v != nil {
		if u, ok := v.(uint); ok {
			id = u
		}
	}
	role, _ := ctx.Values().Get("userRole").(string)
	return id, role == "admin"
}
