package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/donlinch/archdon-sub001/app/controllers"
	"github.com/donlinch/archdon-sub001/platform/cache"
	"github.com/donlinch/archdon-sub001/platform/game"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type snapshots map[string]game.Snapshot

func (s snapshots) Load(code string) (game.Snapshot, error) {
	snap, ok := s[code]
	if !ok {
		return game.Snapshot{}, cache.ErrMiss
	}
	return snap, nil
}

func newApp(snaps snapshots) *fiber.App {
	app := fiber.New()
	AuthRoutes(app, &controllers.AuthController{Secret: secret})
	GameRoutes(app, &controllers.GameController{Snapshots: snaps, TargetLaps: 3})
	PrivateRoutes(app, secret)
	return app
}

func token(t *testing.T, key, userID string) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID})
	signed, err := tok.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestCurRequiresToken(t *testing.T) {
	app := newApp(nil)

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/user/cur", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)

	req := httptest.NewRequest(http.MethodGet, "/user/cur", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "other", "u1"))
	status, _ = do(t, app, req)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	req = httptest.NewRequest(http.MethodGet, "/user/cur", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, secret, "u1"))
	status, body := do(t, app, req)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "u1", body)
}

func TestCredentialsAreValidatedBeforeStorage(t *testing.T) {
	app := newApp(nil)

	for _, path := range []string{"/user/register", "/user/login"} {
		for _, body := range []string{`{`, `{"email":"","pass":"x"}`, `{"email":"a@b.c"}`} {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
			req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
			status, _ := do(t, app, req)
			assert.Equal(t, fiber.StatusBadRequest, status, "%s %s", path, body)
		}
	}
}

func TestCreateGameRejectsNegativeLaps(t *testing.T) {
	app := newApp(nil)

	req := httptest.NewRequest(http.MethodPost, "/game/create", strings.NewReader(`{"name":"x","target_laps":-1}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	status, _ := do(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestVerifyNeedsCode(t *testing.T) {
	status, _ := do(t, newApp(nil), httptest.NewRequest(http.MethodGet, "/game/verify", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGameState(t *testing.T) {
	app := newApp(snapshots{
		"ABC123": {Active: true, Phase: game.PhaseAwaitingRoll, TargetLaps: 2, TurnNumber: 4},
	})

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/game/ABC123/state", nil))
	require.Equal(t, fiber.StatusOK, status)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal([]byte(body), &snap))
	assert.True(t, snap.Active)
	assert.Equal(t, game.PhaseAwaitingRoll, snap.Phase)
	assert.Equal(t, 4, snap.TurnNumber)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/game/NOPE/state", nil))
	assert.Equal(t, fiber.StatusNotFound, status)
}
