package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	vegeta "github.com/tsenart/vegeta/lib"
)

var (
	benchRPS  int
	benchDur  time.Duration
	benchPath string
	benchAuth bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Load-test the forum backend",
	Long: `Run a constant-rate load test against a read endpoint of the backend
and report latency percentiles and status distribution. Defaults to GET
/topics. Use --auth to attach the stored bearer token.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchRPS, "rate", 50, "requests per second")
	benchCmd.Flags().DurationVar(&benchDur, "duration", 10*time.Second, "attack duration")
	benchCmd.Flags().StringVar(&benchPath, "path", "/topics", "request path to attack")
	benchCmd.Flags().BoolVar(&benchAuth, "auth", false, "send the stored bearer token")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	hdr := http.Header{}
	if benchAuth {
		tok := a.api.Token()
		if tok == "" {
			return fmt.Errorf("--auth requires a stored session; run \"forumcli login\" first")
		}
		hdr.Set("Authorization", "Bearer "+tok)
	}

	target := vegeta.Target{
		Method: http.MethodGet,
		URL:    a.api.BaseURL() + benchPath,
		Header: hdr,
	}
	rate := vegeta.Rate{Freq: benchRPS, Per: time.Second}
	attacker := vegeta.NewAttacker()

	fmt.Printf("Attacking %s at %d req/s for %s...\n", target.URL, benchRPS, benchDur)

	var metrics vegeta.Metrics
	for res := range attacker.Attack(vegeta.NewStaticTargeter(target), rate, benchDur, "forumcli-bench") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Printf("Requests:  %d\n", metrics.Requests)
	fmt.Printf("Success:   %.2f%%\n", metrics.Success*100)
	fmt.Printf("p50:       %s\n", metrics.Latencies.P50)
	fmt.Printf("p95:       %s\n", metrics.Latencies.P95)
	fmt.Printf("p99:       %s\n", metrics.Latencies.P99)
	fmt.Printf("max:       %s\n", metrics.Latencies.Max)
	fmt.Printf("Statuses:  %v\n", metrics.StatusCodes)
	if len(metrics.Errors) > 0 {
		fmt.Printf("Errors:    %v\n", metrics.Errors)
	}
	return nil
}
