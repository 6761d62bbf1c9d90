package controller

import "github.com/gin-gonic/gin"

// userIDFrom resolves the requesting user. Identity currently arrives as a
// header or query parameter; this is the single place to swap in a real
// auth token later.
func userIDFrom(ctx *gin.Context) *string {
	if id := ctx.GetHeader("X-User-ID"); id != "" {
		return &id
	}
	if id := ctx.Query("user_id"); id != "" {
		return &id
	}
	return nil
}
