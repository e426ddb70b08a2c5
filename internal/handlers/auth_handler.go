package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/campushub/backend/internal/middleware"
	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/campushub/backend/pkg/wechat"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 72 * time.Hour

// AuthHandler handles signup, signin and WeChat mini-program login.
type AuthHandler struct {
	userRepository repositories.UserRepository
	wechatClient   *wechat.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler. wechatClient may be nil when the
// mini-program credentials are not configured.
func NewAuthHandler(userRepo repositories.UserRepository, wechatClient *wechat.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		wechatClient:   wechatClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers the unauthenticated routes.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/signup", h.Signup)
	g.POST("/auth/signin", h.SignIn)
	g.POST("/wx/login", h.WXLogin)
}

// Signup handles local user registration with username and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Nickname: req.Nickname,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return domainError(err)
	}

	return h.respondWithToken(c, http.StatusCreated, user)
}

// SignIn handles local login
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return h.respondWithToken(c, http.StatusOK, user)
}

// WXLogin exchanges a wx.login code for a session and signs the user in,
// creating the account on first login.
func (h *AuthHandler) WXLogin(c echo.Context) error {
	if h.wechatClient == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "WeChat login not configured")
	}

	var req models.WXLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.wechatClient.Code2Session(c.Request().Context(), req.Code)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "WeChat login failed")
	}

	user, err := h.userRepository.GetUserByOpenID(session.OpenID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		openID := session.OpenID
		user = &models.User{
			Username: "wx_" + openID,
			OpenID:   &openID,
		}
		if err := h.userRepository.CreateUser(user); err != nil {
			return domainError(err)
		}
	} else if err != nil {
		return domainError(err)
	}

	return h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, user *models.User) error {
	token, err := middleware.GenerateToken(user.ID, h.jwtSecret, tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue token")
	}
	return c.JSON(status, echo.Map{
		"token": token,
		"user":  user,
	})
}
