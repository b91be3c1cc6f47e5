package database

import (
	"strings"
	"sync"
	"testing"
)

// Chaque lecture concurrente de coupon doit porter sa propre requête :
// le résultat doit toujours correspondre au code demandé. Nécessite un
// cluster Scylla configuré, sinon le test est sauté.
func TestGetCouponByCodeConcurrent(t *testing.T) {
	if Scylla == nil {
		t.Skip("Scylla non connecté")
	}
	if _, err := GetOrdersSession(); err != nil {
		t.Skipf("Scylla indisponible: %v", err)
	}

	codes := []string{"WELCOME10", "SUMMER20"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, code := range codes {
			wg.Add(1)
			go func(code string) {
				defer wg.Done()
				coupon, err := GetCouponByCode(code)
				if err != nil {
					// Coupon absent : seul un croisement de codes compte.
					return
				}
				if !strings.EqualFold(coupon.Code, code) {
					t.Errorf("code croisé: demandé %s, reçu %s", code, coupon.Code)
				}
			}(code)
		}
	}
	wg.Wait()
}
