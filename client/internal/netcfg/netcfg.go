package netcfg

import "os"

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// EngineURL is the websocket endpoint of the simulation engine.
var EngineURL = getenv("KURIKKA_ENGINE_WS", "ws://127.0.0.1:7777/ws")

// SyncServerURL is the multiplayer progress service. Empty disables
// multiplayer; the engine config record can override it at runtime.
var SyncServerURL = getenv("KURIKKA_SYNC_URL", "")
