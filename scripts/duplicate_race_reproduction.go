package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"NYCU-SDC/photo-survey-backend/test/testdata"
)

// Fires the same survey submission concurrently and reports how many were
// accepted. Exactly one 201 is expected per fingerprint; anything else means
// the duplicate check raced past the store's unique constraint.
//
// Usage:
//
//	go run ./scripts -base-url http://localhost:8080 -variant photographer -workers 50

const (
	photographerEndpoint = "/api/survey/photographer"
	userEndpoint         = "/api/survey/user"
)

var (
	baseURL    = flag.String("base-url", "http://localhost:8080", "target server base URL")
	variant    = flag.String("variant", "photographer", "survey variant (photographer or user)")
	numWorkers = flag.Int("workers", 50, "number of concurrent submissions")
)

type result struct {
	status int
	body   string
}

func payload(fingerprint string) ([]byte, string, error) {
	var (
		answers  any
		endpoint string
	)
	switch *variant {
	case "photographer":
		answers, endpoint = testdata.RandomPhotographerAnswers(), photographerEndpoint
	case "user":
		answers, endpoint = testdata.RandomUserAnswers(), userEndpoint
	default:
		return nil, "", fmt.Errorf("unknown variant %q", *variant)
	}

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, "", err
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, "", err
	}
	body["fingerprint"] = fingerprint

	raw, err = json.Marshal(body)
	return raw, endpoint, err
}

func worker(id int, client *http.Client, url string, body []byte, start <-chan struct{}, results chan<- result, wg *sync.WaitGroup) {
	defer wg.Done()
	<-start

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("Worker %d: request failed: %v", id, err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Worker %d: failed to read response body: %v", id, err)
		return
	}

	results <- result{status: resp.StatusCode, body: string(respBody)}
}

func main() {
	flag.Parse()

	fingerprint := testdata.RandomFingerprint()
	body, endpoint, err := payload(fingerprint)
	if err != nil {
		log.Fatalf("Failed to build payload: %v", err)
	}

	url := *baseURL + endpoint
	client := &http.Client{Timeout: 10 * time.Second}

	log.Printf("Sending %d concurrent submissions to %s with fingerprint %s", *numWorkers, url, fingerprint)

	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make(chan result, *numWorkers)
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go worker(i+1, client, url, body, start, results, &wg)
	}
	close(start)
	wg.Wait()
	close(results)

	counts := make(map[int]int)
	for r := range results {
		counts[r.status]++
		if r.status >= http.StatusInternalServerError {
			log.Printf("Unexpected server error: %s", r.body)
		}
	}

	log.Printf("Responses by status: %v", counts)
	if counts[http.StatusCreated] == 1 && counts[http.StatusInternalServerError] == 0 {
		log.Println("--- Result: OK, exactly one submission accepted ---")
		return
	}
	log.Fatalf("--- Result: DUPLICATE RACE, %d submissions accepted ---", counts[http.StatusCreated])
}
