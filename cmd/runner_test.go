package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/seven7een/museick-go/internal/models"
	"github.com/seven7een/museick-go/internal/shared"
	tu "github.com/seven7een/museick-go/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
				continue
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "auth", "search", "top", "muse", "ick", "month", "playlist", "cache"} {
			if !names[want] {
				t.Errorf("expected %q command to be registered", want)
			}
		}
	})

	t.Run("monthArg", func(t *testing.T) {
		resolve := func(t *testing.T, args ...string) (models.MonthKey, error) {
			t.Helper()
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			var month models.MonthKey
			var monthErr error
			cmd := &cli.Command{
				Name:  "month-arg",
				Flags: []cli.Flag{monthFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					month, monthErr = runner.monthArg(c)
					return nil
				},
			}
			if err := cmd.Run(context.Background(), append([]string{"month-arg"}, args...)); err != nil {
				t.Fatalf("command run failed: %v", err)
			}
			return month, monthErr
		}

		t.Run("defaults to the current month", func(t *testing.T) {
			restore := nowFunc
			nowFunc = func() time.Time {
				return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
			}
			defer func() { nowFunc = restore }()

			month, err := resolve(t)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if month != models.MonthKey("2025-03") {
				t.Errorf("expected 2025-03, got %s", month)
			}
		})

		t.Run("accepts an explicit month", func(t *testing.T) {
			month, err := resolve(t, "--month", "2024-11")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if month != models.MonthKey("2024-11") {
				t.Errorf("expected 2024-11, got %s", month)
			}
		})

		t.Run("rejects a malformed month", func(t *testing.T) {
			_, err := resolve(t, "--month", "November 2024")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("rejects an out-of-range month", func(t *testing.T) {
			_, err := resolve(t, "--month", "2024-13")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("parseItemTypes", func(t *testing.T) {
		t.Run("defaults to track", func(t *testing.T) {
			types, err := parseItemTypes("")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(types) != 1 || types[0] != models.ItemTypeTrack {
				t.Errorf("expected [track], got %v", types)
			}
		})

		t.Run("splits and trims a comma list", func(t *testing.T) {
			types, err := parseItemTypes("track, album ,artist")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			want := []models.ItemType{models.ItemTypeTrack, models.ItemTypeAlbum, models.ItemTypeArtist}
			if len(types) != len(want) {
				t.Fatalf("expected %v, got %v", want, types)
			}
			for i := range want {
				if types[i] != want[i] {
					t.Errorf("expected %v, got %v", want, types)
					break
				}
			}
		})

		t.Run("rejects unknown types", func(t *testing.T) {
			if _, err := parseItemTypes("track,podcast"); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("sessionProvider", func(t *testing.T) {
		t.Run("environment overrides the store", func(t *testing.T) {
			t.Setenv(sessionTokenEnv, "env-token")

			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
			token, err := runner.sessionProvider()(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != "env-token" {
				t.Errorf("expected the environment token, got %q", token)
			}
		})
	})
}
