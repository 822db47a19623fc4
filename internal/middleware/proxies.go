package middleware

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
)

// TrustProxies limits which peers may set X-Forwarded-For.
// With no proxies, ClientIP is always the connection's remote address.
func TrustProxies(engine *gin.Engine, proxies []string) error {
	if err := engine.SetTrustedProxies(proxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	if len(proxies) == 0 {
		log.Println("INFO: no trusted proxies, forwarded client IPs are ignored")
	} else {
		log.Printf("INFO: trusting forwarded client IPs from %v", proxies)
	}
	return nil
}
