package controllers

import (
	"errors"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/donlinch/archdon-sub001/pkg"
	"github.com/donlinch/archdon-sub001/platform/cache"
	"github.com/donlinch/archdon-sub001/platform/game"
	"github.com/donlinch/archdon-sub001/platform/queries"
	"github.com/go-pg/pg/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const codeLength = 6

type SnapshotReader interface {
	Load(code string) (game.Snapshot, error)
}

type GameController struct {
	DB         *pg.DB
	Snapshots  SnapshotReader
	TargetLaps int
}

func (g *GameController) CreateGame(c *fiber.Ctx) error {
	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if gameCreateDto.TargetLaps < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "target_laps must be positive"})
	}
	laps := gameCreateDto.TargetLaps
	if laps == 0 {
		laps = g.TargetLaps
	}

	newGame := &models.Game{
		Id:         pkg.RandString(codeLength),
		Name:       gameCreateDto.Name,
		Status:     models.GameOpen,
		TargetLaps: laps,
	}
	if err := queries.CreateGame(newGame, g.DB); err != nil {
		logrus.WithError(err).Error("create game")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"id": newGame.Id})
}

func (g *GameController) GetAllAvailGames(c *fiber.Ctx) error {
	games, err := queries.ListOpenGames(g.DB)
	if err != nil {
		logrus.WithError(err).Error("list games")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(games)
}

func (g *GameController) VerifyGame(c *fiber.Ctx) error {
	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil || verifyGameDto.Code == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	return c.JSON(fiber.Map{"status": queries.VerifyGame(verifyGameDto.Code, g.DB)})
}

// GetState serves the last published snapshot of a running room.
func (g *GameController) GetState(c *fiber.Ctx) error {
	snap, err := g.Snapshots.Load(c.Params("code"))
	if errors.Is(err, cache.ErrMiss) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		logrus.WithError(err).Error("load snapshot")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(snap)
}
