package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The wire shape is a bare {"message": ...} object; auth endpoints add a
// numeric code field mirrored from the HTTP status. Existing clients parse
// these exact shapes.

func RespondMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondMessage(ctx, http.StatusBadRequest, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondMessage(ctx, http.StatusNotFound, message)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondMessage(ctx, http.StatusInternalServerError, message)
}

func RespondCoded(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message, "code": status})
}
