package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	bookUser    string
	bookTrainer string
	bookDate    string
	bookSlot    string
	dryRun      bool
)

func init() {
	bookCmd.Flags().StringVar(&bookUser, "user", "", "Username making the booking")
	bookCmd.Flags().StringVar(&bookTrainer, "trainer", "", "Trainer username")
	bookCmd.Flags().StringVar(&bookDate, "date", "", "Date of the session (YYYY-MM-DD)")
	bookCmd.Flags().StringVar(&bookSlot, "slot", "", "Slot start time, e.g. 10:00")
	for _, name := range []string{"user", "trainer", "date", "slot"} {
		_ = bookCmd.MarkFlagRequired(name)
	}
	relayCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Pass dry_run=true to the server")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(trainersCmd)
	rootCmd.AddCommand(trainerCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var trainersCmd = &cobra.Command{
	Use:   "trainers",
	Short: "List all trainers with their availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/v1/trainers")
	},
}

var trainerCmd = &cobra.Command{
	Use:   "trainer [username]",
	Short: "Show a single trainer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/v1/trainers/" + url.PathEscape(args[0]))
	},
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a trainer slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/v1/trainers/book", map[string]string{
			"username":        bookUser,
			"trainerUsername": bookTrainer,
			"date":            bookDate,
			"timeSlot":        bookSlot,
		})
	},
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings [username]",
	Short: "List a user's bookings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/v1/bookings/" + url.PathEscape(args[0]))
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches [username]",
	Short: "List open matches, or the matches of one player",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/api/v1/matches/player/" + url.PathEscape(args[0]))
		}
		return performGetRequest("/api/v1/matches")
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/v1/users")
	},
}

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Publish pending outbox events now",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/outbox/relay"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performPostRequest(endpoint, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload any) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := http.Post(target, "application/json", body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
