package main

import (
	"context"
	"log"
	"time"

	"github.com/ntai0404/map-excel-api-chat/config/database"
	"github.com/ntai0404/map-excel-api-chat/config/environment"
	"github.com/ntai0404/map-excel-api-chat/middleware"
	"github.com/ntai0404/map-excel-api-chat/models"
	route "github.com/ntai0404/map-excel-api-chat/routes/v1"
	"github.com/ntai0404/map-excel-api-chat/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment values")
	}

	// Firestore chat history is optional.
	database.InitFirebase()

	catalog := loadCatalog()

	r := gin.Default()

	r.Use(middleware.ErrorHandlerMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	route.RegisterRoutes(r, catalog)

	// Frontend, mounted after the API routes.
	r.Static("/static", "./static")
	r.StaticFile("/", "./static/index.html")

	port := environment.GetPort()
	log.Println("Server running on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadCatalog builds the immutable store snapshot: sheet ingest, geocoding of
// stores with missing coordinates, geohash stamping. A failed load does not
// stop the server; chat requests fail with 503 until a restart with good data.
func loadCatalog() *models.Catalog {
	ctx := context.Background()

	log.Println("Loading store data on startup...")
	catalogService := services.NewCatalogService(environment.GetSheetCSVURL())
	catalog, err := catalogService.LoadCatalog(ctx)
	if err != nil {
		log.Println("Error loading store data:", err)
		return &models.Catalog{}
	}

	geocodeService := services.NewGeocodeService(
		services.NewNominatimProvider(),
		environment.GetGeocodeCacheFile(),
		environment.GetGeocodeTimeout(),
	)
	geocodeService.FillMissingCoordinates(ctx, catalog.Stores)

	log.Printf("Loaded %d stores. Categories: %v", len(catalog.Stores), catalog.Categories)
	return catalog
}
