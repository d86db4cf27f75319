package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/auth"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/config"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/database"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// AuthHandler handles authentication routes
type AuthHandler struct {
	Users database.UserStore
	Cfg   *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users database.UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Cfg: cfg}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.UserRegistration

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	// Create user
	user, err := h.Users.CreateUser(c.Request.Context(), input.Name, input.Email, hashedPassword, input.Role)
	if err == database.ErrUserAlreadyExists {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Return user data (without password)
	c.JSON(http.StatusCreated, user.ToResponse())
}

// Login handles user login and sets the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.UserLogin

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Get user by email
	user, err := h.Users.GetUserByEmail(c.Request.Context(), input.Email)
	if err == database.ErrUserNotFound {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	// Check password
	if !auth.CheckPasswordHash(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Update last seen; not worth failing the login over
	_ = h.Users.UpdateLastSeen(c.Request.Context(), user.ID)

	// Generate session token
	token, expiry, err := auth.GenerateToken(user, h.Cfg.SessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// The browser carries the session as an httpOnly cookie; the token
	// is also returned for non-browser clients.
	maxAge := int(h.Cfg.SessionTTL.Seconds())
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", h.Cfg.Env == "production", true)

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"expiry": expiry,
		"user":   user.ToResponse(),
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", h.Cfg.Env == "production", true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe gets the current user profile
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	// Get user from database
	user, err := h.Users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// GetAllUsers returns every user except the caller
func (h *AuthHandler) GetAllUsers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	users, err := h.Users.GetAllUsers(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}
