//go:build e2e

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// Runs against a live server, e.g. `go run ./cmd/server` with defaults.
func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	var state map[string]any
	t.Run("state", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/api/game/state", nil)
		if status != http.StatusOK {
			t.Fatalf("state status=%d body=%s", status, string(body))
		}
		if err := json.Unmarshal(body, &state); err != nil {
			t.Fatalf("unmarshal state: %v body=%s", err, string(body))
		}
		if _, ok := state["session_id"].(string); !ok {
			t.Fatalf("state missing session_id: %s", string(body))
		}
	})

	t.Run("malformed body is rejected before dispatch", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/exchange", map[string]any{"from": "Rabbit"})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	t.Run("turn cycle", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/roll", map[string]any{})
		if status != http.StatusOK && status != http.StatusConflict {
			t.Fatalf("roll status=%d body=%s", status, string(body))
		}

		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/game/roll", map[string]any{})
		if status != http.StatusConflict {
			t.Fatalf("second roll expected 409, got %d body=%s", status, string(body))
		}
		var rejected map[string]any
		_ = json.Unmarshal(body, &rejected)
		if rejected["ok"] != false || rejected["reason"] == "" {
			t.Fatalf("expected rule rejection body, got %s", string(body))
		}

		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/game/end-turn", nil)
		if status != http.StatusOK {
			t.Fatalf("end turn status=%d body=%s", status, string(body))
		}
	})

	t.Run("journal and ops", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/api/game/journal?limit=10", nil)
		if status != http.StatusOK {
			t.Fatalf("journal status=%d body=%s", status, string(body))
		}
		var journal map[string]any
		if err := json.Unmarshal(body, &journal); err != nil {
			t.Fatalf("unmarshal journal: %v body=%s", err, string(body))
		}
		if entries, _ := journal["entries"].([]any); len(entries) == 0 {
			t.Fatalf("expected journal entries, got %s", string(body))
		}

		status, body = mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, payload any) (int, []byte) {
	t.Helper()
	status, body, err := doRequest(client, method, url, payload)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return status, body
}

func doRequest(client *http.Client, method, url string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, b, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
