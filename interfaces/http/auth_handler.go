package http

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"

	"tubenotes/infrastructure/configuration"
	"tubenotes/infrastructure/logger"
	"tubenotes/interfaces/middleware"
	"tubenotes/usecase"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// IAuthHandler implements the Google OAuth login flow. The callback upserts
// the account, caches the Drive token pair and issues the session JWT.
type IAuthHandler interface {
	GetAuthURL(ctx *gin.Context)
	Callback(ctx *gin.Context)
	Status(ctx *gin.Context)
}

type AuthHandler struct {
	oauth2Config *oauth2.Config
	userUsecase  usecase.IUserUsecase
}

func NewAuthHandler(userUsecase usecase.IUserUsecase) (IAuthHandler, error) {
	cfg := configuration.C.Google
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("google oauth client not configured")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{
			goauth2.UserinfoEmailScope,
			goauth2.UserinfoProfileScope,
			gdrive.DriveFileScope,
		}
	}

	return &AuthHandler{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		userUsecase: userUsecase,
	}, nil
}

// GetAuthURL handles GET /auth/google
func (h *AuthHandler) GetAuthURL(ctx *gin.Context) {
	state, err := generateRandomState()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to generate oauth state")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}
	ctx.SetCookie("oauth_state", state, 600, "/", "", false, true)

	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	ctx.JSON(http.StatusOK, gin.H{"auth_url": authURL})
}

// Callback handles GET /auth/google/callback
func (h *AuthHandler) Callback(ctx *gin.Context) {
	if errorParam := ctx.Query("error"); errorParam != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("oauth error: %s", errorParam)})
		return
	}
	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "authorization code not found"})
		return
	}
	if cookie, err := ctx.Cookie("oauth_state"); err != nil || cookie != ctx.Query("state") {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
		return
	}
	ctx.SetCookie("oauth_state", "", -1, "/", "", false, true)

	reqCtx := ctx.Request.Context()
	token, err := h.oauth2Config.Exchange(reqCtx, code)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Code exchange failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to exchange code for token", "details": err.Error()})
		return
	}

	svc, err := goauth2.NewService(reqCtx, option.WithTokenSource(h.oauth2Config.TokenSource(reqCtx, token)))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create userinfo service", "details": err.Error()})
		return
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Userinfo fetch failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user profile", "details": err.Error()})
		return
	}

	user, session, err := h.userUsecase.LoginWithGoogle(reqCtx, info.Id, info.Email, info.Name, token.AccessToken, token.RefreshToken)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   session,
		"user":    user,
	})
}

// Status handles GET /api/auth/status
func (h *AuthHandler) Status(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	ctx.JSON(http.StatusOK, gin.H{
		"success":     true,
		"email":       user.Email,
		"name":        user.Name,
		"driveLinked": user.HasDriveTokens(),
		"lastLogin":   user.LastLogin,
	})
}

func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
