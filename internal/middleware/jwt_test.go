package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	if database.Redis == nil {
		// Client jamais connecté : Exists échoue silencieusement et le
		// token n'est pas considéré comme révoqué.
		database.Redis = redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
		})
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"customer_id": c.GetString("customer_id")})
	})
	return r
}

// Un token émis par GenerateJWT doit être accepté par AuthRequired,
// y compris quand JWT_SECRET n'est pas posé : les deux côtés passent
// par utils.JWTSecret, lu au moment de l'appel et non à l'init.
func TestAuthRequiredAcceptsFreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	r := setupAuthRouter(t)

	token, err := utils.GenerateJWT(models.Customer{ID: "cust-1", Email: "a@velora.be", Role: "admin"})
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
	}
}

// Le secret doit être relu après un changement d'environnement (cas du
// .env chargé dans main après l'init des packages).
func TestAuthRequiredReadsSecretAtCallTime(t *testing.T) {
	t.Setenv("JWT_SECRET", "cle-posee-apres-init")
	r := setupAuthRouter(t)

	token, err := utils.GenerateJWT(models.Customer{ID: "cust-2", Email: "b@velora.be"})
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAuthRequiredRejectsBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	r := setupAuthRouter(t)

	cases := []struct {
		name   string
		header string
	}{
		{"header absent", ""},
		{"format invalide", "Basic abc"},
		{"token forgé", "Bearer eyJhbGciOiJIUzI1NiJ9.e30.invalide"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("code = %d, attendu 401", w.Code)
			}
		})
	}
}
