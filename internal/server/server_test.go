package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hailam/greedychess/internal/board"
)

func newTestApp(t *testing.T) (*fiber.App, *Registry) {
	t.Helper()
	reg := NewRegistry(nil)
	return New(reg, Config{LogOutput: io.Discard}).App(), reg
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, data, err)
		}
	}
	return resp.StatusCode, out
}

func TestCreateAndGetGame(t *testing.T) {
	app, reg := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/games", "")
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d, body %v", status, body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("no id in %v", body)
	}
	if body["toMove"] != "white" || body["autoReply"] != false {
		t.Errorf("create body = %v", body)
	}
	if reg.Len() != 1 {
		t.Errorf("registry has %d games", reg.Len())
	}

	status, body = do(t, app, http.MethodGet, "/api/games/"+id, "")
	if status != fiber.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	rows, _ := body["board"].([]any)
	if len(rows) != 8 || rows[0] != "rnbqkbnr" {
		t.Errorf("board = %v", body["board"])
	}
}

func TestGameNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/games/nope", ""},
		{http.MethodDelete, "/api/games/nope", ""},
		{http.MethodPost, "/api/games/nope/moves", `{"from":"e2","to":"e4"}`},
		{http.MethodPost, "/api/games/nope/bot", ""},
		{http.MethodGet, "/api/games/nope/moves", ""},
		{http.MethodGet, "/ws/games/nope", ""},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, body := do(t, app, tc.method, tc.path, tc.body)
			if status != fiber.StatusNotFound {
				t.Errorf("status = %d, want 404", status)
			}
			if body["error"] != ErrGameNotFound.Error() {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestPostMove(t *testing.T) {
	app, reg := newTestApp(t)
	id := reg.Create(false, board.White).Game.ID

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad json", `{"from":`, fiber.StatusBadRequest},
		{"bad square", `{"from":"e9","to":"e4"}`, fiber.StatusBadRequest},
		{"bad promotion", `{"from":"e2","to":"e4","promotion":"k"}`, fiber.StatusBadRequest},
		{"illegal", `{"from":"e2","to":"e5"}`, fiber.StatusUnprocessableEntity},
		{"wrong side", `{"from":"e7","to":"e5"}`, fiber.StatusUnprocessableEntity},
		{"legal", `{"from":"e2","to":"e4"}`, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, "/api/games/"+id+"/moves", tt.body)
			if status != tt.status {
				t.Fatalf("status = %d, want %d (body %v)", status, tt.status, body)
			}
			if status != fiber.StatusOK {
				if _, ok := body["error"].(string); !ok {
					t.Errorf("error body = %v", body)
				}
			}
		})
	}

	_, body := do(t, app, http.MethodGet, "/api/games/"+id, "")
	if body["toMove"] != "black" || body["enPassant"] != "e3" || body["lastMove"] != "e2e4" {
		t.Errorf("state after e2e4 = %v", body)
	}
}

func TestAutoReply(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/games", `{"bot":true}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	id := body["id"].(string)

	status, body = do(t, app, http.MethodPost, "/api/games/"+id+"/moves", `{"from":"e2","to":"e4"}`)
	if status != fiber.StatusOK {
		t.Fatalf("move status = %d, body %v", status, body)
	}
	if body["lastMove"] != "b8a6" || body["toMove"] != "white" {
		t.Errorf("bot did not answer: %v", body)
	}
	history, _ := body["moveHistory"].([]any)
	if len(history) != 2 {
		t.Errorf("history = %v", history)
	}
}

func TestCreateAsBlack(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/games", `{"bot":true,"color":"black"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if body["lastMove"] != "a2a4" || body["toMove"] != "black" || body["human"] != "black" {
		t.Errorf("bot did not open: %v", body)
	}

	status, _ = do(t, app, http.MethodPost, "/api/games", `{"color":"green"}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("unknown color status = %d", status)
	}
}

func TestBotEndpoint(t *testing.T) {
	app, reg := newTestApp(t)
	e := reg.Create(false, board.White)

	status, body := do(t, app, http.MethodPost, "/api/games/"+e.Game.ID+"/bot", "")
	if status != fiber.StatusOK {
		t.Fatalf("bot status = %d", status)
	}
	// The bot plays the side to move; White minimizes and every opening move scores 0.
	if body["lastMove"] != "a2a4" {
		t.Errorf("bot move = %v", body["lastMove"])
	}
}

func TestListMoves(t *testing.T) {
	app, reg := newTestApp(t)
	id := reg.Create(false, board.White).Game.ID

	status, body := do(t, app, http.MethodGet, "/api/games/"+id+"/moves", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	moves, _ := body["moves"].([]any)
	if len(moves) != 20 || moves[0] != "a2a4" {
		t.Errorf("moves = %v", moves)
	}
	if body["toMove"] != "white" {
		t.Errorf("toMove = %v", body["toMove"])
	}
}

func TestListAndDelete(t *testing.T) {
	app, reg := newTestApp(t)
	a := reg.Create(false, board.White).Game.ID
	b := reg.Create(false, board.White).Game.ID

	_, body := do(t, app, http.MethodGet, "/api/games", "")
	ids, _ := body["games"].([]any)
	if len(ids) != 2 {
		t.Fatalf("games = %v", ids)
	}
	if ids[0].(string) > ids[1].(string) {
		t.Errorf("ids not sorted: %v", ids)
	}

	status, _ := do(t, app, http.MethodDelete, "/api/games/"+a, "")
	if status != fiber.StatusNoContent {
		t.Fatalf("delete status = %d", status)
	}
	if got := reg.List(); len(got) != 1 || got[0] != b {
		t.Errorf("after delete: %v", got)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app, reg := newTestApp(t)
	id := reg.Create(false, board.White).Game.ID

	status, _ := do(t, app, http.MethodGet, "/ws/games/"+id, "")
	if status != fiber.StatusUpgradeRequired {
		t.Errorf("status = %d, want 426", status)
	}
}

func TestAutoReplyEnforcesTurns(t *testing.T) {
	app, _ := newTestApp(t)

	_, body := do(t, app, http.MethodPost, "/api/games", `{"bot":true,"color":"white"}`)
	id := body["id"].(string)

	status, body := do(t, app, http.MethodPost, "/api/games/"+id+"/bot", "")
	if status != fiber.StatusConflict {
		t.Fatalf("bot on the client's turn: status = %d, body %v", status, body)
	}

	status, body = do(t, app, http.MethodPost, "/api/games/"+id+"/moves", `{"from":"e7","to":"e5"}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("moving the bot's pawn: status = %d, body %v", status, body)
	}

	_, body = do(t, app, http.MethodGet, "/api/games/"+id, "")
	if history, _ := body["moveHistory"].([]any); len(history) != 0 {
		t.Errorf("history = %v, want empty", history)
	}
	if body["toMove"] != "white" {
		t.Errorf("toMove = %v", body["toMove"])
	}
}

func TestAutoReplyRejectsMoveOnBotTurn(t *testing.T) {
	reg := NewRegistry(nil)
	e := reg.Create(true, board.White)

	// Put the game on the bot's turn without letting it answer.
	if _, err := e.Game.Play(board.NewSquare(6, 4), board.NewSquare(4, 4)); err != nil {
		t.Fatal(err)
	}

	_, err := play(e, moveRequest{From: "e7", To: "e5"})
	if statusFor(err) != fiber.StatusConflict {
		t.Fatalf("err = %v (status %d), want 409", err, statusFor(err))
	}
	if got := len(e.Game.State().History); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestResponseCarriesCreated(t *testing.T) {
	app, reg := newTestApp(t)
	e := reg.Create(false, board.White)

	_, body := do(t, app, http.MethodGet, "/api/games/"+e.Game.ID, "")
	created, _ := body["created"].(string)
	parsed, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		t.Fatalf("created = %q: %v", created, err)
	}
	if !parsed.Equal(e.Created) {
		t.Errorf("created = %v, want %v", parsed, e.Created)
	}
}
