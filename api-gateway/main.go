package main

import (
	"log"
	"net/http"

	"fastgrab/api-gateway/internal/gateway"
	"fastgrab/config"

	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()

	gwConfig := gateway.Config{
		OrderSvcURL: config.GetEnv("ORDER_SVC_URL", "http://localhost:8081"),
		AdminSvcURL: config.GetEnv("ADMIN_SVC_URL", "http://localhost:8082"),
		FrontendDir: config.GetEnv("FRONTEND_DIR", "./frontend"),
	}

	gw := gateway.NewGateway(gwConfig, &http.Client{})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   config.SplitList(config.GetEnv("ALLOWED_ORIGINS", "http://localhost:8080,http://127.0.0.1:8080")),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Session-ID", "X-CSRF-Token"},
		ExposedHeaders:   []string{"X-Session-ID", "X-CSRF-Token"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	port := config.GetEnv("PORT", "8080")
	log.Printf("API Gateway starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
