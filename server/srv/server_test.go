package srv

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rintaro-s/kurikka/server/auth"
	"github.com/rintaro-s/kurikka/server/store"
	"github.com/rintaro-s/kurikka/shared/protocol"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "players.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	a, err := auth.New(dir)
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	ts := httptest.NewServer(New(st, a).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, token string, body, out interface{}) int {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req, err := http.NewRequest("POST", url, bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode
}

func register(t *testing.T, ts *httptest.Server, name string) protocol.RegisterResponse {
	t.Helper()
	var resp protocol.RegisterResponse
	code := postJSON(t, ts.URL+"/api/player/register", "", protocol.RegisterRequest{PlayerName: name}, &resp)
	if code != http.StatusOK {
		t.Fatalf("register %q: status %d", name, code)
	}
	return resp
}

func TestRegisterNewAccount(t *testing.T) {
	ts := newTestServer(t)

	resp := register(t, ts, "alice")
	if resp.PlayerID == "" || resp.Token == "" {
		t.Fatalf("missing id or token: %+v", resp)
	}
	if resp.Message != "Account created!" {
		t.Fatalf("message = %q", resp.Message)
	}
	if resp.Progress.Stage != 1 || resp.Progress.MaxPlayerBaseHP != 1000 || resp.Progress.MaxEnemyBaseHP != 500 {
		t.Fatalf("default progress: %+v", resp.Progress)
	}
}

func TestRegisterWelcomesBackByName(t *testing.T) {
	ts := newTestServer(t)

	first := register(t, ts, "Bob")

	// Push some progress so the returning login has something to load.
	var updated protocol.PlayerProfile
	code := postJSON(t, ts.URL+"/api/player/"+first.PlayerID+"/update", first.Token,
		protocol.SyncRequest{Progress: protocol.PlayerProgress{Stage: 7, Coins: 4200, MaxPlayerBaseHP: 1200, MaxEnemyBaseHP: 600}},
		&updated)
	if code != http.StatusOK {
		t.Fatalf("update: status %d", code)
	}

	again := register(t, ts, "  BOB ")
	if again.PlayerID != first.PlayerID {
		t.Fatalf("returning player got a new id: %s vs %s", again.PlayerID, first.PlayerID)
	}
	if again.Message != "Welcome back! Progress loaded." {
		t.Fatalf("message = %q", again.Message)
	}
	if again.Progress.Stage != 7 || again.Progress.Coins != 4200 {
		t.Fatalf("stored progress not returned: %+v", again.Progress)
	}
	if again.Token == "" {
		t.Fatalf("no session token on returning login")
	}
}

func TestRegisterRejectsBlankName(t *testing.T) {
	ts := newTestServer(t)
	var apiErr protocol.APIError
	code := postJSON(t, ts.URL+"/api/player/register", "", protocol.RegisterRequest{PlayerName: "   "}, &apiErr)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d", code)
	}
	if apiErr.Error == "" {
		t.Fatalf("no error body")
	}
}

func TestUpdateRequiresMatchingToken(t *testing.T) {
	ts := newTestServer(t)
	alice := register(t, ts, "alice")
	mallory := register(t, ts, "mallory")

	body := protocol.SyncRequest{Progress: protocol.PlayerProgress{Stage: 99}}

	if code := postJSON(t, ts.URL+"/api/player/"+alice.PlayerID+"/update", "", body, nil); code != http.StatusUnauthorized {
		t.Fatalf("no token: status %d", code)
	}
	if code := postJSON(t, ts.URL+"/api/player/"+alice.PlayerID+"/update", mallory.Token, body, nil); code != http.StatusUnauthorized {
		t.Fatalf("wrong player's token: status %d", code)
	}

	// Alice's own progress is untouched.
	var profile protocol.PlayerProfile
	if code := getJSON(t, ts.URL+"/api/player/"+alice.PlayerID, &profile); code != http.StatusOK {
		t.Fatalf("get: status %d", code)
	}
	if profile.Progress.Stage != 1 {
		t.Fatalf("progress changed without auth: %+v", profile.Progress)
	}
}

func TestUpdateBumpsLastUpdate(t *testing.T) {
	ts := newTestServer(t)
	alice := register(t, ts, "alice")

	var updated protocol.PlayerProfile
	code := postJSON(t, ts.URL+"/api/player/"+alice.PlayerID+"/update", alice.Token,
		protocol.SyncRequest{Progress: protocol.PlayerProgress{Stage: 3, Coins: 500, MaxPlayerBaseHP: 1000, MaxEnemyBaseHP: 500}},
		&updated)
	if code != http.StatusOK {
		t.Fatalf("update: status %d", code)
	}
	if updated.Progress.Stage != 3 || updated.Progress.Coins != 500 {
		t.Fatalf("progress not replaced: %+v", updated.Progress)
	}
	if updated.LastUpdate < alice.LastUpdate {
		t.Fatalf("last_update went backwards: %d -> %d", alice.LastUpdate, updated.LastUpdate)
	}
}

func TestGetPlayerNotFound(t *testing.T) {
	ts := newTestServer(t)
	var apiErr protocol.APIError
	if code := getJSON(t, ts.URL+"/api/player/no-such-id", &apiErr); code != http.StatusNotFound {
		t.Fatalf("status = %d", code)
	}
	if apiErr.Error != "Player not found" {
		t.Fatalf("error = %q", apiErr.Error)
	}
}

func TestListPlayers(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice")
	register(t, ts, "bob")

	var summaries []protocol.PlayerSummary
	if code := getJSON(t, ts.URL+"/api/players", &summaries); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	names := map[string]bool{}
	for _, s := range summaries {
		if s.PlayerID == "" || s.Stage != 1 {
			t.Fatalf("bad summary: %+v", s)
		}
		names[s.PlayerName] = true
	}
	if !names["alice"] || !names["bob"] {
		t.Fatalf("names missing: %v", names)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice")

	var hs protocol.HealthStatus
	if code := getJSON(t, ts.URL+"/health", &hs); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if hs.Status != "ok" || hs.PlayerCount != 1 || hs.Timestamp == 0 {
		t.Fatalf("health: %+v", hs)
	}
}
