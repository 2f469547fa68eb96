// Command shadow_compare replays read-only requests against two deployments
// of the API (for example a Postgres-backed primary and a pgx or SQLite
// candidate) and reports any status or body differences.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

type side struct {
	Status   int
	Body     []byte
	Duration time.Duration
}

type comparison struct {
	Target      target
	Primary     side
	Candidate   side
	StatusMatch bool
	BodyMatch   bool
	Error       error
}

func (c comparison) diverged() bool {
	return c.Error != nil || !c.StatusMatch || !c.BodyMatch
}

type requester struct {
	client *http.Client
	token  string
}

func main() {
	var (
		primaryBase   string
		candidateBase string
		targetsPath   string
		token         string
		timeout       time.Duration
	)

	flag.StringVar(&primaryBase, "primary", "http://localhost:8080/api", "Primary API base URL")
	flag.StringVar(&candidateBase, "candidate", "http://localhost:8081/api", "Candidate API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.StringVar(&token, "token", os.Getenv("SSIS_ACCESS_TOKEN"), "Bearer token sent to both deployments")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	r := requester{client: &http.Client{Timeout: timeout}, token: token}
	var (
		results  []comparison
		breaking int
		optional int
	)
	for _, t := range targets {
		res := r.compare(primaryBase, candidateBase, t)
		if res.diverged() {
			if t.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(os.Stdout, results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f targetFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return f.Targets, nil
}

func (r requester) compare(primaryBase, candidateBase string, tgt target) comparison {
	res := comparison{Target: tgt}

	primary, err := r.fetch(primaryBase, tgt)
	if err != nil {
		res.Error = fmt.Errorf("primary: %w", err)
		return res
	}
	candidate, err := r.fetch(candidateBase, tgt)
	if err != nil {
		res.Error = fmt.Errorf("candidate: %w", err)
		return res
	}

	res.Primary, res.Candidate = primary, candidate
	res.StatusMatch = primary.Status == candidate.Status
	res.BodyMatch = bodiesEqual(primary.Body, candidate.Body)
	return res
}

func (r requester) fetch(base string, tgt target) (side, error) {
	if r.client == nil {
		return side{}, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	if method != http.MethodGet && method != http.MethodHead {
		return side{}, fmt.Errorf("refusing non-read method %s", method)
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return side{}, err
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return side{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return side{}, fmt.Errorf("read body: %w", err)
	}
	return side{Status: resp.StatusCode, Body: body, Duration: time.Since(start)}, nil
}

// bodiesEqual compares JSON bodies structurally and anything else byte for byte
// after trimming surrounding whitespace.
func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(aj, bj)
}

func printReport(w io.Writer, results []comparison) {
	fmt.Fprintln(w, "Shadow Compare Report")
	fmt.Fprintln(w, "=====================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Error != nil:
			status = "ERROR"
		case res.diverged():
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Error != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Error)
			continue
		}
		fmt.Fprintf(w, "  Primary: %d (%s) | Candidate: %d (%s)\n",
			res.Primary.Status, res.Primary.Duration, res.Candidate.Status, res.Candidate.Duration)
		fmt.Fprintf(w, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
