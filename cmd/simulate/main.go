// simulate drives booking traffic against a running clinic-server so the
// contention behavior is observable: many workers race for the same slot
// pool, and every slot should end up booked exactly once at the API level
// while the rest of the attempts come back as conflicts.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

type SimConfig struct {
	APIBaseURL string
	Duration   time.Duration
	Workers    int
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else if conflict {
		atomic.AddInt64(&om.Conflict, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]

	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, min, max, p95
}

type Simulator struct {
	config   SimConfig
	client   *http.Client
	patients []string
	slots    []string
	booking  OperationMetrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := SimConfig{
		APIBaseURL: getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:   getDuration("SIM_DURATION", 15*time.Second),
		Workers:    getInt("SIM_WORKERS", 8),
	}
	if cfg.Workers <= 0 || cfg.Duration <= 0 {
		log.Fatal("SIM_WORKERS and SIM_DURATION must be positive")
	}

	sim := &Simulator{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	if err := sim.loadPool(); err != nil {
		log.Fatalf("load data pool: %v", err)
	}
	log.Printf("loaded: %d patients, %d bookable slots", len(sim.patients), len(sim.slots))

	sim.Run()
	sim.PrintReport()
}

// loadPool pulls patient ids and bookable slot ids over the API.
func (s *Simulator) loadPool() error {
	var patients []struct {
		ID string `json:"id"`
	}
	if err := s.getJSON("/patients", &patients); err != nil {
		return err
	}
	for _, p := range patients {
		s.patients = append(s.patients, p.ID)
	}

	var doctors []struct {
		ID string `json:"id"`
	}
	if err := s.getJSON("/doctors", &doctors); err != nil {
		return err
	}
	for _, d := range doctors {
		var slots []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		}
		if err := s.getJSON("/doctors/"+d.ID+"/slots", &slots); err != nil {
			return err
		}
		for _, sl := range slots {
			if sl.Category == "available" {
				s.slots = append(s.slots, sl.ID)
			}
		}
	}

	if len(s.patients) == 0 {
		return fmt.Errorf("no patients loaded, run the seed first")
	}
	if len(s.slots) == 0 {
		return fmt.Errorf("no available slots loaded, run the seed first")
	}
	return nil
}

func (s *Simulator) Run() {
	deadline := time.Now().Add(s.config.Duration)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				s.tryBooking()
			}
		}()
	}
	wg.Wait()
}

func (s *Simulator) tryBooking() {
	slotID := s.slots[rand.Intn(len(s.slots))]
	patientID := s.patients[rand.Intn(len(s.patients))]

	body, _ := json.Marshal(map[string]string{"patientId": patientID})

	start := time.Now()
	resp, err := s.client.Post(
		s.config.APIBaseURL+"/slots/"+slotID+"/book",
		"application/json",
		bytes.NewReader(body),
	)
	latency := time.Since(start)
	if err != nil {
		s.booking.Record(latency, false, false)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	success := resp.StatusCode == http.StatusOK
	conflict := resp.StatusCode == http.StatusConflict
	s.booking.Record(latency, success, conflict)
}

func (s *Simulator) PrintReport() {
	avg, min, max, p95 := s.booking.Stats()

	fmt.Println()
	fmt.Println("=== booking simulation report ===")
	fmt.Printf("attempts:  %d\n", s.booking.Total)
	fmt.Printf("booked:    %d\n", s.booking.Success)
	fmt.Printf("conflicts: %d\n", s.booking.Conflict)
	fmt.Printf("errors:    %d\n", s.booking.Error)
	fmt.Printf("latency:   avg=%s min=%s max=%s p95=%s\n", avg, min, max, p95)

	if int(s.booking.Success) > len(s.slots) {
		fmt.Printf("WARNING: more successful bookings (%d) than slots (%d), lost updates occurred\n",
			s.booking.Success, len(s.slots))
	}
}

func (s *Simulator) getJSON(path string, v any) error {
	resp, err := s.client.Get(s.config.APIBaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
