package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "cookie-ledger/internal/adapters/web"
	"cookie-ledger/internal/app"
	"cookie-ledger/internal/core"
	"cookie-ledger/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	userService := core.NewUserService(pool)
	catalogService := core.NewCatalogService(pool)
	customerService := core.NewCustomerService(pool)
	orderService := core.NewOrderService(pool)
	inventoryService := core.NewInventoryService(pool)
	routeService := core.NewRouteService(pool)

	svc := app.NewAppService(userService, catalogService, customerService,
		orderService, inventoryService, routeService)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
