package queries

import (
	"errors"
	"fmt"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/go-pg/pg/v10"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameStarted   = errors.New("game already started")
	ErrAlreadySeated = errors.New("user already seated in this game")
)

func CreateGame(game *models.Game, db *pg.DB) error {
	if game.Status == "" {
		game.Status = models.GameOpen
	}
	_, err := db.Model(game).Insert()
	return err
}

func GetGame(id string, db *pg.DB) (*models.Game, error) {
	game := &models.Game{Id: id}
	err := db.Model(game).WherePK().Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

func VerifyGame(id string, db *pg.DB) bool {
	_, err := GetGame(id, db)
	return err == nil
}

func ListOpenGames(db *pg.DB) ([]models.Game, error) {
	var games []models.Game
	err := db.Model(&games).Where("status = ?", models.GameOpen).Select()
	return games, err
}

func SetGameStatus(id, status string, db *pg.DB) error {
	game := &models.Game{Id: id}
	res, err := db.Model(game).WherePK().Set("status = ?", status).Update()
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}

// CreatePlayer seats a user at the next free seat of an open game. A user who
// is already seated gets ErrAlreadySeated with player.Seat set to that seat.
func CreatePlayer(player *models.Player, db *pg.DB) error {
	return db.RunInTransaction(db.Context(), func(tx *pg.Tx) error {
		game := &models.Game{Id: player.Game_id}
		// row lock serialises concurrent joins of one room
		err := tx.Model(game).WherePK().For("UPDATE").Select()
		if errors.Is(err, pg.ErrNoRows) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}
		var seated []models.Player
		if err := tx.Model(&seated).Where("game_id = ?", player.Game_id).Select(); err != nil {
			return err
		}
		seat, taken := nextSeat(seated, player.User_id)
		player.Seat = seat
		if taken {
			return ErrAlreadySeated
		}
		if game.Status != models.GameOpen {
			return ErrGameStarted
		}
		_, err = tx.Model(player).Insert()
		return err
	})
}

// nextSeat returns the seat userID already holds, or one past the highest
// seat in use so numbers freed by leavers are never handed out twice.
func nextSeat(seated []models.Player, userID string) (seat int, taken bool) {
	for _, p := range seated {
		if p.User_id == userID {
			return p.Seat, true
		}
		if p.Seat >= seat {
			seat = p.Seat + 1
		}
	}
	return seat, false
}

// GetPlayers returns the seats of a game in seat order.
func GetPlayers(game_id string, db *pg.DB) ([]models.Player, error) {
	var players []models.Player
	err := db.Model(&players).Where("game_id = ?", game_id).Order("seat ASC").Select()
	return players, err
}

func DeletePlayer(user_id, game_id string, db *pg.DB) error {
	_, err := db.Model((*models.Player)(nil)).Where("user_id = ? AND game_id = ?", user_id, game_id).Delete()
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return CheckDB(game_id, db)
}

// CheckDB removes a game nobody is seated at anymore.
func CheckDB(game_id string, db *pg.DB) error {
	count, err := db.Model((*models.Player)(nil)).Where("game_id = ?", game_id).Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = db.Model((*models.Game)(nil)).Where("id = ?", game_id).Delete()
	return err
}

func GetUserData(user_id string, db *pg.DB) (*models.User, error) {
	user := &models.User{Id: user_id}
	if err := db.Model(user).WherePK().Select(); err != nil {
		return nil, err
	}
	return user, nil
}
