package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authControllers.Login)
	authGroup.Post("/send/otp", middleware.JWTMiddleware, authControllers.SendOTP)
	authGroup.Patch("/verify/otp", middleware.JWTMiddleware, authControllers.VerifyOTP)
	authGroup.Put("/change/password", middleware.JWTMiddleware, authControllers.ChangePassword)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authControllers.LoginHistoryList)
}
