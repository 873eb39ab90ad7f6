package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roomhub/billing/internal/config"
	"github.com/roomhub/billing/internal/domain/user"
	"github.com/roomhub/billing/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, username, email, passwordHash, name string) (user.User, error)
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        TokenIssuer
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwt,
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// uniqueness check by exact email match
	_, err := h.users.GetByEmail(cctx, *req.Email)

	if err == nil {
		RespondBadRequest(ctx, "Failed! Email is already in use!")
		return
	}

	if !errors.Is(err, user.ErrNotFound) {
		RespondInternal(ctx, "An error occurred while registering the user.")
		return
	}

	hash, err := security.HashPassword(*req.Password)

	if err != nil {
		RespondInternal(ctx, "An error occurred while registering the user.")
		return
	}

	u, err := h.userWriter.Create(cctx, *req.Username, *req.Email, hash, *req.Name)

	if err != nil {
		// the unique index can still lose the race after the lookup
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "Failed! Email is already in use!")
			return
		}

		RespondInternal(ctx, "An error occurred while registering the user.")
		return
	}

	token, err := h.jwt.Issue(u.ID)

	if err != nil {
		RespondInternal(ctx, "An error occurred while registering the user.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User was registered successfully!",
		"user":    u,
		"token":   token,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondCoded(ctx, http.StatusNotFound, "User not found.")
			return
		}

		RespondCoded(ctx, http.StatusInternalServerError, "Some error occurred while logging in the User.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"accessToken": nil,
			"code":        http.StatusUnauthorized,
			"message":     "Invalid Password!",
		})
		return
	}

	token, err := h.jwt.Issue(foundUser.ID)

	if err != nil {
		RespondCoded(ctx, http.StatusInternalServerError, "Some error occurred while logging in the User.")
		return
	}

	// The stored record is returned whole, hash included. Flagged as a
	// leak but kept: clients parse this shape.
	ctx.JSON(http.StatusOK, gin.H{
		"user":        foundUser,
		"accessToken": token,
		"code":        http.StatusOK,
	})
}

// Logout reports success unconditionally. Tokens are stateless and there is
// nothing server-side to revoke; clients drop their copy.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	RespondCoded(ctx, http.StatusOK, "User was logout successfully!")
}
