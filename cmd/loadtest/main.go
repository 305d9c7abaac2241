// Command loadtest exercises a running hotel-frontdesk server with a mix of
// front-desk traffic: guest lookups, availability searches, reservation list
// views and complete booking walks through the reservation wizard.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sort"
	"sync"
	"time"
)

type options struct {
	baseURL  string
	workers  int
	duration time.Duration
	username string
	password string
	minThink time.Duration
	maxThink time.Duration
}

type stat struct {
	count     int
	errors    int
	latencies []time.Duration
}

type recorder struct {
	mu    sync.Mutex
	stats map[string]*stat
}

func newRecorder() *recorder {
	return &recorder{stats: map[string]*stat{}}
}

func (r *recorder) observe(name string, elapsed time.Duration, failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats[name]
	if s == nil {
		s = &stat{}
		r.stats[name] = s
	}
	s.count++
	if failed {
		s.errors++
	}
	s.latencies = append(s.latencies, elapsed)
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

func (r *recorder) report() {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.stats))
	for name := range r.stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%-28s %8s %8s %10s %10s %10s\n", "endpoint", "count", "errors", "median", "p95", "max")
	for _, name := range names {
		s := r.stats[name]
		sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
		fmt.Printf("%-28s %8d %8d %10s %10s %10s\n",
			name, s.count, s.errors,
			percentile(s.latencies, 0.5).Round(time.Millisecond),
			percentile(s.latencies, 0.95).Round(time.Millisecond),
			percentile(s.latencies, 1.0).Round(time.Millisecond),
		)
	}
}

type worker struct {
	id     int
	opts   options
	client *http.Client
	rec    *recorder
	rng    *rand.Rand
}

func (w *worker) think() {
	span := w.opts.maxThink - w.opts.minThink
	if span <= 0 {
		time.Sleep(w.opts.minThink)
		return
	}
	time.Sleep(w.opts.minThink + time.Duration(w.rng.Int63n(int64(span))))
}

func (w *worker) do(name, method, path string, body any) (*http.Response, error) {
	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewBuffer(data)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, w.opts.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := w.client.Do(req)
	elapsed := time.Since(start)
	failed := err != nil || resp.StatusCode >= 400
	w.rec.observe(name, elapsed, failed)
	return resp, err
}

func drain(resp *http.Response) {
	if resp != nil {
		resp.Body.Close()
	}
}

func (w *worker) login() error {
	resp, err := w.do("POST /auth/login", http.MethodPost, "/api/auth/login", map[string]string{
		"username": w.opts.username,
		"password": w.opts.password,
	})
	if err != nil {
		return err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login returned %d", resp.StatusCode)
	}
	return nil
}

func (w *worker) listGuests() {
	resp, _ := w.do("GET /guests", http.MethodGet, "/api/guests", nil)
	drain(resp)
}

func (w *worker) searchAvailability() {
	start := time.Now().AddDate(0, 0, w.rng.Intn(30))
	nights := 1 + w.rng.Intn(7)
	q := url.Values{}
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("length_of_stay", fmt.Sprint(nights))
	resp, _ := w.do("GET /available-rooms", http.MethodGet, "/api/available-rooms?"+q.Encode(), nil)
	drain(resp)
}

func (w *worker) listReservations() {
	resp, _ := w.do("GET /reservations", http.MethodGet, "/api/reservations", nil)
	drain(resp)
}

// bookStay runs the whole wizard: search, hold a room, pick the first guest
// and post the prefilled reservation back.
func (w *worker) bookStay() {
	start := time.Now().AddDate(0, 0, w.rng.Intn(30))
	nights := 1 + w.rng.Intn(7)
	startStr := start.Format("2006-01-02")

	q := url.Values{}
	q.Set("start_date", startStr)
	q.Set("length_of_stay", fmt.Sprint(nights))

	resp, err := w.do("GET /available-rooms", http.MethodGet, "/api/available-rooms?"+q.Encode(), nil)
	if err != nil || resp.StatusCode != http.StatusOK {
		drain(resp)
		return
	}
	var searchBody struct {
		Data struct {
			Rooms []struct {
				RoomNumber int `json:"roomNumber"`
			} `json:"rooms"`
		} `json:"data"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&searchBody)
	drain(resp)
	if decodeErr != nil || len(searchBody.Data.Rooms) == 0 {
		return
	}
	room := searchBody.Data.Rooms[w.rng.Intn(len(searchBody.Data.Rooms))]

	reservePath := fmt.Sprintf("/api/available-rooms/%d/reserve?%s", room.RoomNumber, q.Encode())
	resp, err = w.do("POST /reserve", http.MethodPost, reservePath, nil)
	drain(resp)
	if err != nil {
		return
	}

	resp, err = w.do("GET /guest-selection", http.MethodGet, "/api/available-rooms/guest-selection", nil)
	if err != nil || resp.StatusCode != http.StatusOK {
		drain(resp)
		return
	}
	var selBody struct {
		Data struct {
			Guests []struct {
				ID uint `json:"id"`
			} `json:"guests"`
		} `json:"data"`
	}
	decodeErr = json.NewDecoder(resp.Body).Decode(&selBody)
	drain(resp)
	if decodeErr != nil || len(selBody.Data.Guests) == 0 {
		return
	}
	guest := selBody.Data.Guests[w.rng.Intn(len(selBody.Data.Guests))]

	draftPath := fmt.Sprintf("/api/reservations/new/%d", guest.ID)
	resp, _ = w.do("GET /reservations/new", http.MethodGet, draftPath, nil)
	drain(resp)

	resp, _ = w.do("POST /reservations/new", http.MethodPost, draftPath, map[string]any{
		"numberOfGuests": 1 + w.rng.Intn(2),
	})
	drain(resp)
}

func (w *worker) run(deadline time.Time) {
	if err := w.login(); err != nil {
		log.Printf("worker %d: login failed: %v", w.id, err)
		return
	}

	// Weights match typical front-desk traffic: lookups dominate, full
	// bookings are the rare heavy path.
	tasks := []func(){
		w.listGuests, w.listGuests, w.listGuests,
		w.searchAvailability, w.searchAvailability,
		w.listReservations, w.listReservations,
		w.bookStay,
	}

	for time.Now().Before(deadline) {
		tasks[w.rng.Intn(len(tasks))]()
		w.think()
	}
}

func main() {
	var opts options
	flag.StringVar(&opts.baseURL, "base-url", "http://localhost:8080", "server to target")
	flag.IntVar(&opts.workers, "workers", 10, "number of concurrent simulated staff")
	flag.DurationVar(&opts.duration, "duration", time.Minute, "how long to run")
	flag.StringVar(&opts.username, "username", "reception@hotel.local", "login username")
	flag.StringVar(&opts.password, "password", "reception123", "login password")
	flag.DurationVar(&opts.minThink, "min-think", time.Second, "minimum pause between requests")
	flag.DurationVar(&opts.maxThink, "max-think", 5*time.Second, "maximum pause between requests")
	flag.Parse()

	rec := newRecorder()
	deadline := time.Now().Add(opts.duration)

	var wg sync.WaitGroup
	for i := 0; i < opts.workers; i++ {
		jar, err := cookiejar.New(nil)
		if err != nil {
			log.Fatalf("cookie jar: %v", err)
		}
		w := &worker{
			id:     i,
			opts:   opts,
			client: &http.Client{Jar: jar, Timeout: 30 * time.Second},
			rec:    rec,
			rng:    rand.New(rand.NewSource(time.Now().UnixNano() + int64(i))),
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(deadline)
		}()
	}
	wg.Wait()

	rec.report()

	failed := false
	rec.mu.Lock()
	for _, s := range rec.stats {
		if s.errors > 0 {
			failed = true
		}
	}
	rec.mu.Unlock()
	if failed {
		os.Exit(1)
	}
}
