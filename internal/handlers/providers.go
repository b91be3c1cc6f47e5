package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// nativeProvider porte la config oauth2 du flux "code → token" des apps
// natives ; le flux navigateur, lui, passe par goth.
type nativeProvider struct {
	name   string
	config *oauth2.Config
}

func (p *nativeProvider) exchange(code string) (*oauth2.Token, error) {
	return p.config.Exchange(context.Background(), code)
}

// Providers couvre le flux "code → token" des apps natives : le mobile
// obtient lui-même le code d'autorisation, sans session gothic.
var Providers = map[string]*nativeProvider{}

func InitProviders() {
	Providers["google"] = &nativeProvider{
		name: "google",
		config: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}

	Providers["facebook"] = &nativeProvider{
		name: "facebook",
		config: &oauth2.Config{
			ClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
			ClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("FACEBOOK_REDIRECT_URL"),
			Scopes:       []string{"email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://www.facebook.com/v15.0/dialog/oauth",
				TokenURL: "https://graph.facebook.com/v15.0/oauth/access_token",
			},
		},
	}
}

var userInfoURLs = map[string]string{
	"google":   "https://www.googleapis.com/oauth2/v2/userinfo",
	"facebook": "https://graph.facebook.com/me?fields=id,name,email,picture.type(large)",
}

// ExchangeAuthCode - POST /api/auth/:provider/token
// Échange un code d'autorisation obtenu côté mobile contre un JWT Velora.
func ExchangeAuthCode(c *gin.Context) {
	providerName := c.Param("provider")
	provider, ok := Providers[providerName]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider inconnu"})
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := provider.exchange(req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Code d'autorisation invalide"})
		return
	}

	gothUser, err := fetchUserInfo(provider, token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération du profil"})
		return
	}

	customer, err := upsertCustomer(gothUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création du compte"})
		return
	}

	jwtToken, refreshToken, err := issueTokens(customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         jwtToken,
		"refresh_token": refreshToken,
		"customer":      customer,
	})
}

func fetchUserInfo(provider *nativeProvider, token *oauth2.Token) (goth.User, error) {
	client := provider.config.Client(context.Background(), token)
	resp, err := client.Get(userInfoURLs[provider.name])
	if err != nil {
		return goth.User{}, err
	}
	defer resp.Body.Close()

	// Google renvoie picture en string, Facebook en objet imbriqué
	var info struct {
		ID      string          `json:"id"`
		Email   string          `json:"email"`
		Name    string          `json:"name"`
		Picture json.RawMessage `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return goth.User{}, err
	}

	return goth.User{
		Provider:  provider.name,
		UserID:    info.ID,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: pictureURL(info.Picture),
	}, nil
}

func pictureURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var direct string
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct
	}
	var nested struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested.Data.URL
	}
	return ""
}
