package socket

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/donlinch/archdon-sub001/platform/game"
	"github.com/donlinch/archdon-sub001/platform/queries"
	"github.com/donlinch/archdon-sub001/platform/session"
	"github.com/go-pg/pg/v10"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type request struct {
	GameID     string `json:"game_id"`
	UserID     string `json:"user_id"`
	TargetLaps int    `json:"target_laps"`
}

type diceRolled struct {
	UserID string `json:"user_id"`
	Value  int    `json:"value"`
}

// Lobby is the part of the game registry rows the table commands touch.
type Lobby interface {
	SetStatus(code, status string) error
	Unseat(userID, code string) error
	Exists(code string) bool
}

type pgLobby struct {
	db *pg.DB
}

func (l pgLobby) SetStatus(code, status string) error { return queries.SetGameStatus(code, status, l.db) }
func (l pgLobby) Unseat(userID, code string) error   { return queries.DeletePlayer(userID, code, l.db) }
func (l pgLobby) Exists(code string) bool             { return queries.VerifyGame(code, l.db) }

type roomBroadcaster struct {
	io *socketio.Server
}

func (b roomBroadcaster) Broadcast(room, event string, payload interface{}) {
	b.io.BroadcastToRoom("/", room, event, payload)
}

// Server relays table commands from socket clients to the session registry
// and pushes engine events back to the room.
type Server struct {
	io     *socketio.Server
	db     *pg.DB
	tables *session.Registry
	lobby  Lobby
	out    session.Broadcaster
	board  []models.Square
}

func NewServer(db *pg.DB, cfg game.Config, store session.SnapshotStore) (*Server, error) {
	io, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}
	out := roomBroadcaster{io: io}
	s := &Server{
		io:     io,
		db:     db,
		tables: session.NewRegistry(cfg, store, out),
		lobby:  pgLobby{db: db},
		out:    out,
		board:  cfg.Squares,
	}
	s.routes()
	return s, nil
}

func (s *Server) Tables() *session.Registry { return s.tables }

func parse(c socketio.Conn, raw string) (request, bool) {
	var req request
	if err := json.Unmarshal([]byte(raw), &req); err != nil || req.GameID == "" {
		c.Emit("error-message", "Malformed request")
		return req, false
	}
	return req, true
}

func (s *Server) routes() {
	s.io.OnConnect("/", func(c socketio.Conn) error {
		c.SetContext("")
		return nil
	})

	s.io.OnEvent("/", "join-game", func(c socketio.Conn, raw string) {
		req, ok := parse(c, raw)
		if !ok {
			return
		}
		if req.UserID == "" {
			c.Emit("error-message", "User not authenticated")
			c.Emit("failed")
			return
		}
		user, err := queries.GetUserData(req.UserID, s.db)
		if err != nil {
			c.Emit("error-message", "User retrieval failed")
			c.Emit("failed")
			return
		}
		player := &models.Player{Game_id: req.GameID, User_id: req.UserID, Username: user.Email}
		err = queries.CreatePlayer(player, s.db)
		switch {
		case errors.Is(err, queries.ErrAlreadySeated):
			// another tab of a seated user; it only needs the room
		case err != nil:
			logrus.WithError(err).WithField("game", req.GameID).Warn("join failed")
			c.Emit("error-message", "Failed joining game")
			c.Emit("failed")
			return
		default:
			s.out.Broadcast(req.GameID, "player-join", player.Username)
		}

		c.Join(req.GameID)
		c.Emit("joined-game", player.Seat)
		logrus.WithFields(logrus.Fields{"game": req.GameID, "conn": c.ID(), "seat": player.Seat}).Info("player joined")
	})

	s.io.OnEvent("/", "leave-game", func(c socketio.Conn, raw string) {
		req, ok := parse(c, raw)
		if !ok {
			return
		}
		c.Leave(req.GameID)
		s.leave(req)
	})

	s.io.OnEvent("/", "start-game", func(c socketio.Conn, raw string) {
		req, ok := parse(c, raw)
		if !ok {
			return
		}
		g, err := queries.GetGame(req.GameID, s.db)
		if err != nil {
			c.Emit("error-message", "Invalid game")
			return
		}
		players, err := queries.GetPlayers(req.GameID, s.db)
		if err != nil {
			c.Emit("error-message", "Unable to start game")
			return
		}
		seats := make([]models.PlayerDto, len(players))
		for i, p := range players {
			seats[i] = models.PlayerDto{User_id: p.User_id, Username: p.Username, Seat: p.Seat}
		}
		laps := g.TargetLaps
		if req.TargetLaps > 0 {
			laps = req.TargetLaps
		}
		if err := s.start(req.GameID, seats, laps); err != nil {
			c.Emit("error-message", "Unable to start game: "+err.Error())
		}
	})

	s.io.OnEvent("/", "roll-dice", func(c socketio.Conn, raw string) {
		req, ok := parse(c, raw)
		if !ok {
			return
		}
		if err := s.roll(req); err != nil {
			c.Emit("error-message", rejection(err))
		}
	})

	s.io.OnEvent("/", "acknowledge-card", func(c socketio.Conn, raw string) {
		req, ok := parse(c, raw)
		if !ok {
			return
		}
		if err := s.acknowledge(req); err != nil {
			c.Emit("error-message", rejection(err))
		}
	})

	s.io.OnEvent("/", "restart-game", func(c socketio.Conn, raw string) {
		req, ok := parse(c, raw)
		if !ok {
			return
		}
		if err := s.restart(req); err != nil {
			c.Emit("error-message", rejection(err))
		}
	})

	s.io.OnEvent("/", "get-state", func(c socketio.Conn, raw string) {
		req, ok := parse(c, raw)
		if !ok {
			return
		}
		st, err := s.tables.State(req.GameID)
		if err != nil {
			c.Emit("error-message", rejection(err))
			return
		}
		c.Emit("state", st)
	})

	s.io.OnError("/", func(c socketio.Conn, e error) {
		logrus.WithError(e).Warn("socket error")
	})

	s.io.OnDisconnect("/", func(c socketio.Conn, reason string) {
		for _, room := range c.Rooms() {
			s.io.BroadcastToRoom("/", room, "player-left")
		}
		c.LeaveAll()
	})
}

// start opens the table and tells the room only once the game is running.
func (s *Server) start(code string, seats []models.PlayerDto, laps int) error {
	if _, err := s.tables.Open(code, seats, laps); err != nil {
		return err
	}
	s.out.Broadcast(code, "game-start", s.board)
	s.setStatus(code, models.GameInProgress)
	return nil
}

func (s *Server) roll(req request) error {
	n, err := s.tables.Roll(req.GameID, req.UserID)
	if err != nil {
		return err
	}
	s.out.Broadcast(req.GameID, "dice-rolled", diceRolled{UserID: req.UserID, Value: n})
	s.markFinished(req.GameID)
	return nil
}

func (s *Server) acknowledge(req request) error {
	if err := s.tables.Acknowledge(req.GameID, req.UserID); err != nil {
		return err
	}
	s.markFinished(req.GameID)
	return nil
}

func (s *Server) restart(req request) error {
	if err := s.tables.Restart(req.GameID); err != nil {
		return err
	}
	s.setStatus(req.GameID, models.GameInProgress)
	return nil
}

// leave ends the running game, frees the seat and drops the room once its
// lobby row is gone with the last seat.
func (s *Server) leave(req request) {
	if _, err := s.tables.Leave(req.GameID, req.UserID); err != nil && !errors.Is(err, session.ErrNoTable) {
		logrus.WithError(err).WithField("game", req.GameID).Debug("leave")
	}
	s.markFinished(req.GameID)
	if err := s.lobby.Unseat(req.UserID, req.GameID); err != nil {
		logrus.WithError(err).WithField("game", req.GameID).Warn("seat not removed")
	}
	s.out.Broadcast(req.GameID, "player-left", req.UserID)

	if !s.lobby.Exists(req.GameID) {
		if err := s.tables.Close(req.GameID); err != nil {
			logrus.WithError(err).WithField("game", req.GameID).Warn("room not closed")
		}
	}
}

// markFinished flips the lobby row once the engine reports game over.
func (s *Server) markFinished(code string) {
	st, err := s.tables.State(code)
	if err != nil || st.Active {
		return
	}
	s.setStatus(code, models.GameFinished)
}

func (s *Server) setStatus(code, status string) {
	if err := s.lobby.SetStatus(code, status); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"game": code, "status": status}).Warn("status not updated")
	}
}

func rejection(err error) string {
	switch {
	case errors.Is(err, session.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, session.ErrNoTable):
		return "Game has not started"
	case errors.Is(err, game.ErrInvalidState):
		return "That action is not available right now"
	}
	return "Something went wrong"
}

// Serve blocks serving socket.io on addr.
func (s *Server) Serve(addr string, origins []string) error {
	go s.io.Serve()
	defer s.io.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io)
	return http.ListenAndServe(addr, c.Handler(mux))
}
