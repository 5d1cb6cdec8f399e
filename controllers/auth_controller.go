package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/CUknot/meetroom/models"
	"github.com/CUknot/meetroom/repository"
	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=2,max=64" example:"alice"`
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterInput true "Registration"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Username or email taken"
// @Router /api/register [post]
func (a *API) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	user := models.User{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: input.Password,
	}
	if err := a.store.CreateUser(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	a.respondWithToken(c, http.StatusCreated, &user)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginInput true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /api/login [post]
func (a *API) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	user, err := a.store.UserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if err := user.ValidatePassword(input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	a.respondWithToken(c, http.StatusOK, user)
}

// Me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/me [get]
func (a *API) Me(c *gin.Context) {
	user, err := a.store.UserByID(c.Request.Context(), currentIdentity(c).UserID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

func (a *API) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := a.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, AuthResponse{
		Token: token,
		User:  UserResponse{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}
