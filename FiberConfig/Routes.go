package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"Osprey/Controllers"
	"Osprey/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	assetController := Controllers.NewAssetController(db)
	maintenanceController := Controllers.NewMaintenanceController(db)
	inspectionController := Controllers.NewInspectionController(db)
	calendarController := Controllers.NewCalendarController(db)
	reportController := Controllers.NewReportController(db)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{"Title": "Osprey Asset Tracker"})
	})

	// API group
	api := app.Group("/api")

	// Auth
	api.Post("/login", Controllers.Login)
	api.Post("/logout", Controllers.Logout)
	api.Get("/user", middleware.Verify(1), Controllers.CurrentUser)

	// Asset routes
	assets := api.Group("/assets", middleware.Verify(1))
	assets.Get("/", assetController.GetAssets)
	// Place the scan route BEFORE the ID route to avoid conflicts
	assets.Get("/scan", assetController.GetAssetByTag)
	assets.Post("/import", middleware.Verify(3), assetController.ImportAssets)
	assets.Get("/:id", assetController.GetAsset)
	assets.Post("/", middleware.Verify(3), assetController.CreateAsset)
	assets.Put("/:id", middleware.Verify(3), assetController.UpdateAsset)
	assets.Delete("/:id", middleware.Verify(3), assetController.DeleteAsset)

	// Maintenance routes
	maintenances := api.Group("/maintenances", middleware.Verify(1))
	maintenances.Get("/", maintenanceController.GetMaintenances)
	maintenances.Get("/:id", maintenanceController.GetMaintenance)
	maintenances.Post("/", middleware.Verify(3), maintenanceController.CreateMaintenance)
	maintenances.Put("/:id", middleware.Verify(3), maintenanceController.UpdateMaintenance)
	maintenances.Delete("/:id", middleware.Verify(3), maintenanceController.DeleteMaintenance)

	// Task routes under maintenances
	maintenances.Get("/:id/tasks", maintenanceController.GetTasks)
	maintenances.Post("/:id/tasks", middleware.Verify(3), maintenanceController.CreateTask)
	maintenances.Put("/:id/tasks/:task_id", middleware.Verify(3), maintenanceController.UpdateTask)
	maintenances.Delete("/:id/tasks/:task_id", middleware.Verify(3), maintenanceController.DeleteTask)
	maintenances.Get("/:id/tasks/:task_id/schedule", maintenanceController.GetTaskSchedule)
	maintenances.Put("/:id/tasks/:task_id/schedule", middleware.Verify(3), maintenanceController.UpdateTaskSchedule)

	// Calendar: the reconciled schedule view
	maintenances.Get("/:id/tasks/:task_id/calendar", calendarController.GetTaskCalendar)

	// Inspection routes
	inspections := api.Group("/inspections", middleware.Verify(1))
	inspections.Get("/", inspectionController.GetInspections)
	inspections.Post("/", inspectionController.SubmitInspection)
	inspections.Put("/:id/unlink", middleware.Verify(3), inspectionController.UnlinkInspection)

	// Report routes
	reports := api.Group("/reports", middleware.Verify(2))
	reports.Get("/inspections", reportController.ExportInspections)
	reports.Get("/assets", reportController.ExportAssets)
}

func FiberConfig(db *gorm.DB) {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	// Html Template engine
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*", // Allow all origins
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
