// Command admintoken mints a bearer token for the admin API endpoints using
// the server's JWT secret.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jktraffic/traffic-backend-go/internal/config"
	"github.com/jktraffic/traffic-backend-go/internal/middleware"
)

func main() {
	var (
		subject = flag.String("subject", "operator", "token subject")
		ttl     = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	cfg := config.Load()

	token, err := middleware.GenerateToken(cfg.JWTSecret, *subject, "admin", *ttl)
	if err != nil {
		log.Fatal("Failed to generate token:", err)
	}

	fmt.Println(token)
}
