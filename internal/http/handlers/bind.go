package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds the body into out and answers the request itself on
// failure. Missing required keys get the historical field-presence message;
// anything else (bad JSON, type mismatch) gets a generic one.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		var validatorErr validator.ValidationErrors

		if errors.As(err, &validatorErr) {
			RespondBadRequest(ctx, "All fields are required.")
			return false
		}

		RespondBadRequest(ctx, "Invalid request body.")

		return false
	}

	return true
}
