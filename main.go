package main

import (
	"log"

	"lms/config"
	"lms/database"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	franchiseeRoutes "lms/routers/franchiseeRoutes"
	publicRoutes "lms/routers/publicRoutes"
	superAdminRoutes "lms/routers/superAdmin"
	unitRoutes "lms/routers/unitRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve stored certificates and uploaded artifacts
	app.Static("/", "./public")

	publicRoutes.SetupPublicRoutes(app)
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	unitRoutes.SetupUnitRoutes(app)
	franchiseeRoutes.SetupFranchiseeRoutes(app)
	superAdminRoutes.SetupSuperAdminRoutes(app)

	utils.InitializeTurmaScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
