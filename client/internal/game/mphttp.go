package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// getJSON performs a GET against the sync service and decodes the response.
func getJSON[T any](hc *http.Client, url, token string) (T, error) {
	var result T

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return result, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(&result)
	return result, err
}

// postJSON performs a POST with a JSON body and decodes the JSON response.
func postJSON[Req any, Res any](hc *http.Client, url, token string, body Req) (Res, error) {
	var result Res

	jsonData, err := json.Marshal(body)
	if err != nil {
		return result, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return result, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return result, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}

	err = json.Unmarshal(bodyBytes, &result)
	return result, err
}
