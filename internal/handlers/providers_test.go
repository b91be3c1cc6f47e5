package handlers

import (
	"encoding/json"
	"testing"
)

func TestInitProvidersRegistersNativeFlows(t *testing.T) {
	InitProviders()

	for _, name := range []string{"google", "facebook"} {
		p, ok := Providers[name]
		if !ok {
			t.Fatalf("provider %s absent", name)
		}
		if p.name != name {
			t.Errorf("provider %s: nom %q", name, p.name)
		}
		if p.config.Endpoint.TokenURL == "" {
			t.Errorf("provider %s: endpoint token vide", name)
		}
		if userInfoURLs[name] == "" {
			t.Errorf("provider %s: URL userinfo manquante", name)
		}
	}
}

// Google renvoie picture en string, Facebook en objet imbriqué.
func TestPictureURL(t *testing.T) {
	cases := []struct {
		name, raw, want string
	}{
		{"google", `"https://lh3.googleusercontent.com/photo.jpg"`, "https://lh3.googleusercontent.com/photo.jpg"},
		{"facebook", `{"data":{"url":"https://graph.facebook.com/photo.jpg","is_silhouette":false}}`, "https://graph.facebook.com/photo.jpg"},
		{"absent", ``, ""},
		{"illisible", `42`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pictureURL(json.RawMessage(tc.raw)); got != tc.want {
				t.Fatalf("got %q, expected %q", got, tc.want)
			}
		})
	}
}
