package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client // nil when Firebase is not configured
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client) *AuthHandler {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey"
	}
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	if h.firebaseAuth != nil {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
}

// Signup handles user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Check if user with this email already exists
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

// SignIn handles user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token and issues a local JWT,
// creating the user on first login
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.firebaseAuth.VerifyIDToken(context.Background(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := h.userRepository.GetUserByFirebaseUID(token.UID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
		}
		// First login: attach the UID to an existing account by email, or create one
		user, err = h.userRepository.GetUserByEmail(email)
		if err == nil {
			user.FirebaseUID = token.UID
			if err := h.userRepository.UpdateUser(user); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user with Firebase UID")
			}
		} else if err == gorm.ErrRecordNotFound {
			user = &models.User{Name: name, Email: email, FirebaseUID: token.UID}
			if err := h.userRepository.CreateUser(user); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
			}
		} else {
			return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
		}
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate local JWT")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": localJWT})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
