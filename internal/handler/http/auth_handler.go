package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/handler/http/dto"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

const (
	oauthStateCookie = "oauthState"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// OAuthConfig carries the Google client credentials.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type AuthHandler struct {
	userUsecase usecasecontract.IUserUseCase
	randomGen   contract.IRandomGenerator
	oauth       *oauth2.Config
	secure      bool
}

func NewAuthHandler(uc usecasecontract.IUserUseCase, randomGen contract.IRandomGenerator, cfg OAuthConfig, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		userUsecase: uc,
		randomGen:   randomGen,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		secure: secureCookies,
	}
}

type googleUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (h *AuthHandler) HandleGoogleLogin(c *gin.Context) {
	if h.oauth.ClientID == "" {
		ErrorHandler(c, http.StatusNotImplemented, "google login is not configured")
		return
	}
	state, err := h.randomGen.GenerateRandomToken(16)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.SetCookie(oauthStateCookie, state, 300, "/", "", h.secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

func (h *AuthHandler) HandleGoogleCallback(c *gin.Context) {
	state := c.Query("state")
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		ErrorHandler(c, http.StatusUnauthorized, "invalid CSRF state token")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secure, true)

	code := c.Query("code")
	if code == "" {
		ErrorHandler(c, http.StatusBadRequest, "authorization code not provided")
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		_ = c.Error(err)
		ErrorHandler(c, http.StatusBadGateway, "failed to exchange authorization code")
		return
	}

	info, err := fetchGoogleUser(h.oauth.Client(ctx, token))
	if err != nil {
		_ = c.Error(err)
		ErrorHandler(c, http.StatusBadGateway, "failed to get user info")
		return
	}

	accessToken, refreshToken, err := h.userUsecase.LoginWithOAuth(ctx, info.Name, info.Email, info.Picture)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

func fetchGoogleUser(client *http.Client) (*googleUser, error) {
	resp, err := client.Get(googleUserInfo)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned %s", resp.Status)
	}
	var info googleUser
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("user info has no email")
	}
	return &info, nil
}
