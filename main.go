package main

import (
	"deptportal/config"
	passwordResetController "deptportal/controllers/passwordReset"
	"deptportal/database"
	"deptportal/otpstore"
	adminRoutes "deptportal/routers/adminRoutes"
	authRoutes "deptportal/routers/authRoutes"
	facultyRoutes "deptportal/routers/facultyRoutes"
	passwordResetRoutes "deptportal/routers/passwordResetRoutes"
	publicRoutes "deptportal/routers/publicRoutes"
	studentRoutes "deptportal/routers/studentRoutes"
	"deptportal/utils"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// The OTP store owns its sweep loop; stopped on shutdown below.
	otpStore := otpstore.New()
	passwordResetController.Store = otpStore

	digestCron := utils.InitializeDigestScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	publicRoutes.SetupPublicRoutes(app)
	authRoutes.SetupAuthRoutes(app)
	passwordResetRoutes.SetupPasswordResetRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	facultyRoutes.SetupFacultyRoutes(app)
	studentRoutes.SetupStudentRoutes(app)

	// Deterministic teardown for the sweeper and scheduler
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down...")
		otpStore.Stop()
		digestCron.Stop()
		_ = app.Shutdown()
	}()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Fatal(err)
	}
}
