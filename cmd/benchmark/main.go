// Benchmark tool for load-testing the Socle simulation pipeline.
//
// Usage:
//   go run cmd/benchmark/main.go -url http://localhost:8080 -count 10000
//
// This tool:
//   1. Generates randomized loan portfolios
//   2. Sends each portfolio to POST /simulations
//   3. Tracks advisory outcomes (OK/ATTENTION), errors and latency
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Loan mirrors the simulation API loan input.
type Loan struct {
	Capital   float64 `json:"capital"`
	TauxAssur float64 `json:"tauxAssur"`
	AssurMode string  `json:"assurMode"`
	Taux      float64 `json:"taux"`
	DureeMois int     `json:"dureeMois"`
}

// SimulationRequest is the Socle API request format.
type SimulationRequest struct {
	Loans []Loan `json:"loans"`
}

// SimulationResponse is the subset of the Socle API response we inspect.
type SimulationResponse struct {
	SimID   string   `json:"simId"`
	Status  string   `json:"status"` // "OK" or "ATTENTION"
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
	Summary struct {
		DureeMois       int     `json:"dureeMois"`
		CapitalEmprunte float64 `json:"capitalEmprunte"`
	} `json:"summary"`
}

// Metrics tracks benchmark results.
type Metrics struct {
	TotalProcessed int64
	TotalOK        int64
	TotalAttention int64
	TotalErrors    int64

	ProcessingTimeMs int64
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Socle base URL")
	tenantID := flag.String("tenant", "benchmark-test", "Tenant ID for requests")
	count := flag.Int("count", 1000, "Number of simulations to run")
	workers := flag.Int("workers", 10, "Number of concurrent workers")
	maxLoans := flag.Int("max-loans", 3, "Maximum loans per portfolio")
	seed := flag.Int64("seed", 42, "Random seed for portfolio generation")
	verbose := flag.Bool("verbose", false, "Print each simulation result")
	flag.Parse()

	fmt.Println("SOCLE BENCHMARK - Credit Simulation Pipeline")
	fmt.Printf("\nSocle URL:   %s\n", *baseURL)
	fmt.Printf("Tenant ID:   %s\n", *tenantID)
	fmt.Printf("Workers:     %d\n", *workers)
	fmt.Printf("Count:       %d\n", *count)
	fmt.Printf("Max Loans:   %d\n", *maxLoans)
	fmt.Println()

	// Check Socle is running
	if err := checkHealth(*baseURL); err != nil {
		fmt.Printf("ERROR: Socle not reachable at %s: %v\n", *baseURL, err)
		fmt.Println("\nMake sure Socle is running:")
		fmt.Println("  go run cmd/socle/main.go")
		os.Exit(1)
	}
	fmt.Println("Socle is healthy")

	// Generate portfolios up front so all workers race on the same set
	rng := rand.New(rand.NewSource(*seed))
	portfolios := make([]SimulationRequest, *count)
	for i := range portfolios {
		portfolios[i] = randomPortfolio(rng, *maxLoans)
	}
	fmt.Printf("Generated %d portfolios\n", len(portfolios))

	fmt.Printf("\nRunning benchmark with %d workers...\n", *workers)
	startTime := time.Now()
	metrics := runBenchmark(portfolios, *baseURL, *tenantID, *workers, *verbose)
	duration := time.Since(startTime)

	printResults(metrics, duration)
}

func checkHealth(baseURL string) error {
	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// randomPortfolio builds a plausible loan portfolio: one main property loan,
// optionally topped up with smaller secondary loans.
func randomPortfolio(rng *rand.Rand, maxLoans int) SimulationRequest {
	nbLoans := 1 + rng.Intn(maxLoans)
	loans := make([]Loan, nbLoans)

	for i := range loans {
		capital := 50000 + rng.Float64()*450000
		if i > 0 {
			// Secondary loans are smaller
			capital = 10000 + rng.Float64()*90000
		}

		mode := "CRD"
		if rng.Intn(2) == 0 {
			mode = "CI"
		}

		loans[i] = Loan{
			Capital:   float64(int(capital)),
			TauxAssur: 0.1 + rng.Float64()*0.5,
			AssurMode: mode,
			Taux:      1.0 + rng.Float64()*4.0,
			DureeMois: 60 + 12*rng.Intn(21), // 5 to 25 years
		}
	}

	return SimulationRequest{Loans: loans}
}

func runBenchmark(portfolios []SimulationRequest, baseURL, tenantID string, numWorkers int, verbose bool) *Metrics {
	metrics := &Metrics{}

	work := make(chan SimulationRequest, 100)
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := &http.Client{Timeout: 10 * time.Second}

			for portfolio := range work {
				start := time.Now()
				result, err := runSimulation(client, baseURL, tenantID, portfolio)
				elapsed := time.Since(start).Milliseconds()

				atomic.AddInt64(&metrics.ProcessingTimeMs, elapsed)
				atomic.AddInt64(&metrics.TotalProcessed, 1)

				if err != nil {
					atomic.AddInt64(&metrics.TotalErrors, 1)
					if verbose {
						fmt.Printf("ERROR: %v\n", err)
					}
					continue
				}

				if result.Status == "ATTENTION" {
					atomic.AddInt64(&metrics.TotalAttention, 1)
				} else {
					atomic.AddInt64(&metrics.TotalOK, 1)
				}

				if verbose {
					fmt.Printf("%-9s | Loans: %d | Capital: %10.0f | Duree: %4d mois | Score: %.2f | %dms\n",
						result.Status,
						len(portfolio.Loans),
						result.Summary.CapitalEmprunte,
						result.Summary.DureeMois,
						result.Score,
						elapsed,
					)
				}
			}
		}()
	}

	for _, p := range portfolios {
		work <- p
	}
	close(work)

	wg.Wait()

	return metrics
}

func runSimulation(client *http.Client, baseURL, tenantID string, req SimulationRequest) (*SimulationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+"/simulations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Tenant-ID", tenantID)

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var result SimulationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

func printResults(m *Metrics, duration time.Duration) {
	fmt.Println("\nBENCHMARK RESULTS")

	fmt.Printf("\nOUTCOMES\n")
	fmt.Printf("   Total Processed:  %d\n", m.TotalProcessed)
	fmt.Printf("   OK:               %d\n", m.TotalOK)
	fmt.Printf("   ATTENTION:        %d\n", m.TotalAttention)
	fmt.Printf("   Errors:           %d\n", m.TotalErrors)

	if m.TotalOK+m.TotalAttention > 0 {
		attentionRate := float64(m.TotalAttention) / float64(m.TotalOK+m.TotalAttention) * 100
		fmt.Printf("   Attention Rate:   %.2f%%\n", attentionRate)
	}

	fmt.Printf("\nPERFORMANCE\n")
	fmt.Printf("   Total Duration:   %v\n", duration.Round(time.Millisecond))
	if m.TotalProcessed > 0 {
		avgMs := float64(m.ProcessingTimeMs) / float64(m.TotalProcessed)
		sps := float64(m.TotalProcessed) / duration.Seconds()
		fmt.Printf("   Avg Latency:      %.2f ms\n", avgMs)
		fmt.Printf("   Throughput:       %.2f sim/sec\n", sps)
	}

	fmt.Println()
}
