// Smoke driver for a locally running contestd. It exercises the whole
// HTTP surface: queues opt-ins and opt-outs for a set of groups, reads
// them back after the scheduler's idle window, and polls the query
// endpoints. Run the daemon first, then this.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	baseURL   = "http://127.0.0.1:8080"
	numGroups = 20
	applyWait = 2 * time.Second
)

var httpClient = &http.Client{Timeout: 5 * time.Second}

type subscriptionResponse struct {
	Group   string `json:"group"`
	Enabled bool   `json:"enabled"`
}

func main() {
	checks := 0
	failures := 0

	check := func(name string, err error) {
		checks++
		if err != nil {
			failures++
			fmt.Printf("FAIL %-40s %s\n", name, err)
			return
		}
		fmt.Printf("ok   %s\n", name)
	}

	check("GET /health", expectStatus(http.MethodGet, "/health", nil, http.StatusOK))
	check("GET /contests", expectStatus(http.MethodGet, "/contests", nil, http.StatusOK))
	check("GET /contests?platform=codeforces", expectStatus(http.MethodGet, "/contests?platform=codeforces", nil, http.StatusOK))
	check("GET /contests?platform=bogus is 400", expectStatus(http.MethodGet, "/contests?platform=bogus", nil, http.StatusBadRequest))
	check("GET /archive?platform=codeforces", expectStatus(http.MethodGet, "/archive?platform=codeforces", nil, http.StatusOK))
	check("POST /subscriptions/enable bad body is 400", expectStatus(http.MethodPost, "/subscriptions/enable", []byte(`{}`), http.StatusBadRequest))

	for i := 0; i < numGroups; i++ {
		group := fmt.Sprintf("90000%02d", i)
		body, _ := json.Marshal(map[string]string{"group": group})
		check("enable group "+group, expectStatus(http.MethodPost, "/subscriptions/enable", body, http.StatusAccepted))
	}

	// Commands apply at the scheduler's next idle window, not inline.
	fmt.Printf("waiting %s for queued commands to apply...\n", applyWait)
	time.Sleep(applyWait)

	for i := 0; i < numGroups; i++ {
		group := fmt.Sprintf("90000%02d", i)
		check("group "+group+" is enabled", expectEnabled(group, true))
	}

	for i := 0; i < numGroups; i++ {
		group := fmt.Sprintf("90000%02d", i)
		body, _ := json.Marshal(map[string]string{"group": group})
		check("disable group "+group, expectStatus(http.MethodPost, "/subscriptions/disable", body, http.StatusAccepted))
	}
	time.Sleep(applyWait)
	for i := 0; i < numGroups; i++ {
		group := fmt.Sprintf("90000%02d", i)
		check("group "+group+" is disabled", expectEnabled(group, false))
	}

	fmt.Printf("\n%d checks, %d failures\n", checks, failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func expectStatus(method, path string, body []byte, want int) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != want {
		return fmt.Errorf("got status %d, want %d", resp.StatusCode, want)
	}
	return nil
}

func expectEnabled(group string, want bool) error {
	resp, err := httpClient.Get(baseURL + "/subscriptions?group=" + group)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("got status %d", resp.StatusCode)
	}
	var sub subscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return err
	}
	if sub.Enabled != want {
		return fmt.Errorf("enabled=%t, want %t", sub.Enabled, want)
	}
	return nil
}
