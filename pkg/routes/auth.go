package routes

import (
	"github.com/donlinch/archdon-sub001/app/controllers"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

func AuthRoutes(a *fiber.App, ctl *controllers.AuthController) {
	route := a.Group("/user")

	route.Post("/register", ctl.CreateUser)
	route.Post("/login", ctl.Login)
}

// PrivateRoutes are mounted behind the token check.
func PrivateRoutes(a *fiber.App, secret string) {
	protected := jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
	})

	a.Get("/user/cur", protected, controllers.Cur)
}
