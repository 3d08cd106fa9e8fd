package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

var (
	baseURL  = flag.String("url", "http://127.0.0.1:3000", "flixmap base URL")
	workers  = flag.Int("workers", 50, "concurrent clients")
	duration = flag.Duration("duration", 10*time.Second, "length of each phase")
	episodes = flag.Int("episodes", 200, "distinct episode keys to spread skip traffic over")
	mapIDs   = flag.String("map-ids", "", "comma separated movie ids already mapped, used for cache reads")
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	latency  time.Duration
	failed   bool
}

type endpointStats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// submissionIDs collects ids returned by POST /skip so voters have targets.
type submissionIDs struct {
	mu  sync.Mutex
	ids []string
}

func (s *submissionIDs) add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
}

func (s *submissionIDs) pick(rng *rand.Rand) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ids) == 0 {
		return "", false
	}
	return s.ids[rng.Intn(len(s.ids))], true
}

func main() {
	flag.Parse()
	fmt.Println("=== flixmap load test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n\n", *baseURL, *workers, *duration)

	fmt.Print("Waiting for server... ")
	if !waitForHealth(30) {
		fmt.Println("FAILED: server not responding")
		return
	}
	fmt.Println("OK")

	ids := &submissionIDs{}
	mapped := parseIDs(*mapIDs)

	fmt.Println("\n--- Phase 1: skip submissions ---")
	runPhase(func(rng *rand.Rand) result { return submitSkip(rng, ids) })

	fmt.Println("\n--- Phase 2: mixed (40% submit, 30% best, 20% vote, 10% latest) ---")
	runPhase(func(rng *rand.Rand) result {
		switch r := rng.Float64(); {
		case r < 0.40:
			return submitSkip(rng, ids)
		case r < 0.70:
			return getBest(rng)
		case r < 0.90:
			return vote(rng, ids)
		default:
			return getLatest(rng)
		}
	})

	fmt.Println("\n--- Phase 3: read heavy ---")
	runPhase(func(rng *rand.Rand) result {
		switch r := rng.Float64(); {
		case r < 0.50:
			return getBest(rng)
		case r < 0.80 && len(mapped) > 0:
			return getMapping(mapped[rng.Intn(len(mapped))])
		default:
			return getLatest(rng)
		}
	})
}

func waitForHealth(attempts int) bool {
	for i := 0; i < attempts; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			drain(resp)
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func parseIDs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func runPhase(work func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var total atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- work(rng)
					total.Add(1)
				}
			}
		}(time.Now().UnixNano() + int64(i))
	}

	collected := make(map[string]*endpointStats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := collected[r.endpoint]
			if !ok {
				s = &endpointStats{}
				collected[r.endpoint] = s
			}
			s.count++
			if r.failed {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(*duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(collected)
}

func printResults(collected map[string]*endpointStats) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(collected))
	for ep := range collected {
		endpoints = append(endpoints, ep)
	}
	slices.Sort(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 76))
	for _, ep := range endpoints {
		s := collected[ep]
		totalOps += s.count
		totalErrors += s.errors
		slices.Sort(s.latencies)
		fmt.Printf("  %-26s %8d %6d %10s %10s %10s\n", ep, s.count, s.errors,
			percentile(s.latencies, 0.50), percentile(s.latencies, 0.95), percentile(s.latencies, 0.99))
	}
	fmt.Println("  " + strings.Repeat("-", 76))
	if totalOps > 0 {
		fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
			totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
	}
}

func episodePath(rng *rand.Rand) string {
	n := rng.Intn(*episodes)
	return fmt.Sprintf("/skip/%d/%d/%d", 1000+n/10, 1, n%10+1)
}

func submitSkip(rng *rand.Rand, ids *submissionIDs) result {
	start := 30 + rng.Intn(60)
	body := map[string]any{
		"intro": map[string]any{"start": start, "end": fmt.Sprintf("%d:%02d", (start+85)/60, (start+85)%60)},
		"outro": map[string]any{"start": 1250 + rng.Intn(20), "end": 1330},
	}
	data, _ := json.Marshal(body)

	began := time.Now()
	resp, err := httpClient.Post(*baseURL+episodePath(rng), "application/json", bytes.NewReader(data))
	lat := time.Since(began)
	if err != nil {
		return result{"POST /skip/{key}", lat, true}
	}
	defer resp.Body.Close()

	var out struct {
		Submission struct {
			ID string `json:"id"`
		} `json:"submission"`
	}
	if resp.StatusCode == http.StatusCreated && json.NewDecoder(resp.Body).Decode(&out) == nil {
		ids.add(out.Submission.ID)
	}
	return result{"POST /skip/{key}", lat, resp.StatusCode != http.StatusCreated}
}

func vote(rng *rand.Rand, ids *submissionIDs) result {
	id, ok := ids.pick(rng)
	if !ok {
		return getLatest(rng)
	}
	direction := "upvote"
	if rng.Intn(3) == 0 {
		direction = "downvote"
	}
	data, _ := json.Marshal(map[string]string{"id": id, "direction": direction})
	return timed("POST /skip/vote", http.StatusOK, func() (*http.Response, error) {
		return httpClient.Post(*baseURL+"/skip/vote", "application/json", bytes.NewReader(data))
	})
}

func getBest(rng *rand.Rand) result {
	target := *baseURL + episodePath(rng)
	return timed("GET /skip/{key}", http.StatusOK, func() (*http.Response, error) {
		return httpClient.Get(target)
	})
}

func getLatest(rng *rand.Rand) result {
	modes := []string{"ascending", "descending", "max"}
	target := fmt.Sprintf("%s/getlatest?type=%s", *baseURL, modes[rng.Intn(len(modes))])
	return timed("GET /getlatest", http.StatusOK, func() (*http.Response, error) {
		return httpClient.Get(target)
	})
}

func getMapping(id string) result {
	return timed("GET /map/tmdb/{id}", http.StatusOK, func() (*http.Response, error) {
		return httpClient.Get(*baseURL + "/map/tmdb/" + id + "?type=movie")
	})
}

func timed(endpoint string, want int, call func() (*http.Response, error)) result {
	began := time.Now()
	resp, err := call()
	lat := time.Since(began)
	if err != nil {
		return result{endpoint, lat, true}
	}
	drain(resp)
	return result{endpoint, lat, resp.StatusCode != want}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx].Round(10 * time.Microsecond)
}
