package routes

import (
	"github.com/donlinch/archdon-sub001/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, ctl *controllers.GameController) {
	route := a.Group("/game")
	route.Post("/create", ctl.CreateGame)
	route.Get("/verify", ctl.VerifyGame)
	route.Get("/all", ctl.GetAllAvailGames)
	route.Get("/:code/state", ctl.GetState)
}
