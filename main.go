package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/sogeti/site-contract-tests/apitests"
	"github.com/sogeti/site-contract-tests/framework"
	"github.com/sogeti/site-contract-tests/randdata"
	"github.com/sogeti/site-contract-tests/uitests"
)

const (
	apiTargetName  = "postal-code API"
	siteTargetName = "website"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	harness, err := framework.NewTestHarness(
		[]framework.Target{
			{Name: apiTargetName, BaseURL: params.apiURL},
			{Name: siteTargetName, BaseURL: params.siteURL},
		},
		params.probeTimeout,
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Startup error: %s\n", err)
		os.Exit(1)
	}

	rnd, seed := randdata.NewRand(params.seed)
	fmt.Printf("Random seed for form values: %d\n", seed)

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	apiConfig := apitests.Config{
		BaseURL:       harness.TargetURL(apiTargetName),
		LatencyBudget: params.latencyThreshold,
	}
	uiConfig := uitests.Config{
		SiteURL: harness.TargetURL(siteTargetName),
		Session: uitests.SessionConfig{
			Headless:    params.headless,
			NoSandbox:   params.noSandbox,
			ChromePath:  params.chromePath,
			WaitTimeout: params.waitTimeout,
			TestTimeout: params.testTimeout,
		},
		FillMode:   params.fillMode,
		Rand:       rnd,
		LinkClient: &http.Client{Timeout: params.linkTimeout},
	}

	results := framework.Run(params.filters.AsFilter, testLogger, func(c *framework.Context) {
		c.RunGroup("api", func(c *framework.Context) {
			apitests.DoAllTests(c, apiConfig)
		})
		c.RunGroup("ui", func(c *framework.Context) {
			uitests.DoAllTests(c, uiConfig)
		})
	})

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests again:")
		fmt.Printf("  %s\n", params.rerunCommand(seed, results.FailedIDs()))
		os.Exit(1)
	}
}
