package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

const apiBase = "http://localhost:5000"

type tokenResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type insertResponse struct {
	InsertedID string `json:"InsertedID"`
}

func doJSON(t *testing.T, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiBase+path, body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// TestAPIEndpoints runs tests against a locally running server with its
// MongoDB attached.
func TestAPIEndpoints(t *testing.T) {
	resp, err := http.Get(apiBase)
	if err != nil {
		t.Skipf("API server is not running at %s: %v", apiBase, err)
	}
	resp.Body.Close()

	suffix := time.Now().UnixNano()
	requesterEmail := fmt.Sprintf("e2e-requester-%d@example.com", suffix)
	donorEmail := fmt.Sprintf("e2e-donor-%d@example.com", suffix)

	t.Run("Issue JWT requires email", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/api/auth/jwt", "", map[string]string{})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", resp.StatusCode)
		}
	})

	var requesterToken, donorToken string
	t.Run("Issue JWT", func(t *testing.T) {
		for _, pair := range []struct {
			email string
			out   *string
		}{
			{requesterEmail, &requesterToken},
			{donorEmail, &donorToken},
		} {
			resp := doJSON(t, http.MethodPost, "/api/auth/jwt", "", map[string]string{"email": pair.email})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Expected 200, got %d", resp.StatusCode)
			}
			var body tokenResponse
			decode(t, resp, &body)
			if body.Token == "" {
				t.Fatal("No token received")
			}
			*pair.out = body.Token
		}
	})

	var firstCreatedAt time.Time
	t.Run("Register normalizes email", func(t *testing.T) {
		// Email posted with uppercase letters must come back lowercased.
		upper := fmt.Sprintf("E2E-Requester-%d@Example.COM", suffix)
		resp := doJSON(t, http.MethodPost, "/api/users", "", map[string]string{
			"email": upper,
			"name":  "Requester One",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var user userResponse
		decode(t, resp, &user)
		if user.Email != requesterEmail {
			t.Fatalf("Expected email %q, got %q", requesterEmail, user.Email)
		}
		if user.Role != "donor" || user.Status != "active" {
			t.Fatalf("Expected donor/active defaults, got %s/%s", user.Role, user.Status)
		}
		firstCreatedAt = user.CreatedAt
	})

	t.Run("Re-register keeps role, status and createdAt", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/api/users", "", map[string]string{
			"email": requesterEmail,
			"name":  "Requester Renamed",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var user userResponse
		decode(t, resp, &user)
		if user.Name != "Requester Renamed" {
			t.Fatalf("Expected refreshed name, got %q", user.Name)
		}
		if user.Role != "donor" || user.Status != "active" {
			t.Fatalf("Defaults must survive re-registration, got %s/%s", user.Role, user.Status)
		}
		if !user.CreatedAt.Equal(firstCreatedAt) {
			t.Fatalf("createdAt changed on re-registration: %v -> %v", firstCreatedAt, user.CreatedAt)
		}

		// second account for the claim flow
		resp = doJSON(t, http.MethodPost, "/api/users", "", map[string]string{
			"email": donorEmail,
			"name":  "Donor Two",
		})
		resp.Body.Close()
	})

	t.Run("Get me", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, "/api/users/me", requesterToken, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var user userResponse
		decode(t, resp, &user)
		if user.Email != requesterEmail {
			t.Fatalf("Expected %q, got %q", requesterEmail, user.Email)
		}
	})

	t.Run("Get me without token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, "/api/users/me", "", nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("Admin listing forbidden for donors", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, "/api/users", requesterToken, nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("Expected 403, got %d", resp.StatusCode)
		}
	})

	var requestID string
	t.Run("Create donation request", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/api/requests", requesterToken, map[string]string{
			"recipientName": "Patient Zero",
			"bloodGroup":    "O+",
			"hospitalName":  "General Hospital",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var inserted insertResponse
		decode(t, resp, &inserted)
		if inserted.InsertedID == "" {
			t.Fatal("No inserted id returned")
		}
		requestID = inserted.InsertedID
	})

	t.Run("Owner cannot resolve a pending request", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, "/api/requests/"+requestID+"/status", requesterToken,
			map[string]string{"status": "done"})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("Expected 403, got %d", resp.StatusCode)
		}
	})

	t.Run("Claim request", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, "/api/requests/"+requestID+"/confirm-donate", donorToken,
			map[string]string{"donorName": "Donor Two", "donorEmail": donorEmail})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("Second claim is rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, "/api/requests/"+requestID+"/confirm-donate", donorToken,
			map[string]string{"donorName": "Donor Two", "donorEmail": donorEmail})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("Expected 409, got %d", resp.StatusCode)
		}
	})

	t.Run("Owner resolves in-progress request", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, "/api/requests/"+requestID+"/status", requesterToken,
			map[string]string{"status": "done"})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("Non-owner cannot update a request", func(t *testing.T) {
		resp := doJSON(t, http.MethodPatch, "/api/requests/"+requestID, donorToken,
			map[string]string{"hospitalName": "Hijacked"})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("Expected 403, got %d", resp.StatusCode)
		}
	})

	t.Run("Public request listing", func(t *testing.T) {
		resp, err := http.Get(apiBase + "/api/requests/public")
		if err != nil {
			t.Fatalf("Failed to list public requests: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("Payment intent rejects sub-minimum amount", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, "/api/fundings/payment-intent", donorToken,
			map[string]float64{"amount": 0.49})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("Funding total forbidden for donors", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, "/api/fundings/total", donorToken, nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("Expected 403, got %d", resp.StatusCode)
		}
	})
}
