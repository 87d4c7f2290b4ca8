package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/db"
	"github.com/folio-dev/folio/internal/models"
)

var (
	trackData  string
	trackSince time.Duration
	trackLimit int
	trackType  string
)

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackListCmd)

	trackCmd.Flags().StringVar(&trackData, "data", "", "event data as a JSON object")
	trackListCmd.Flags().DurationVar(&trackSince, "since", 0, "only events newer than this (e.g. 24h)")
	trackListCmd.Flags().IntVar(&trackLimit, "limit", 50, "maximum events to show")
	trackListCmd.Flags().StringVar(&trackType, "type", "", "filter by event type")
}

var trackCmd = &cobra.Command{
	Use:   "track <event-type>",
	Short: "Record an analytics event",
	Example: `  folio track page_view --data '{"page":"contrast"}'
  folio track theme_changed --data '{"from":"light","to":"dark"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventType := models.EventType(strings.TrimSpace(args[0]))
		data, err := parseEventData(trackData)
		if err != nil {
			return err
		}

		ctx := commandContext(cmd)
		cfg := currentConfig()
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		callCtx, cancel := withTimeout(ctx, cfg)
		defer cancel()
		if err := newPrefsClient(st.Backend).TrackEvent(callCtx, eventType, data); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, map[string]any{"tracked": true, "event_type": eventType})
		}
		fmt.Fprintf(out, "Tracked %s\n", eventType)
		return nil
	},
}

// parseEventData decodes a JSON object, keeping numbers as json.Number.
func parseEventData(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("--data must be a JSON object: %w", err)
	}
	if dec.More() {
		return nil, errors.New("--data must contain a single JSON object")
	}
	return data, nil
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded events (sqlite store only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		cfg := currentConfig()
		if cfg.Store.Backend != config.BackendSQLite {
			return &PreflightError{
				Message:  fmt.Sprintf("listing events is not supported by the %s store", cfg.Store.Backend),
				Hint:     "Query the hosted table directly, or use store.backend: sqlite",
				NextStep: "FOLIO_STORE_BACKEND=sqlite folio track list",
			}
		}

		sqliteStore, err := db.OpenStore(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return err
		}
		defer sqliteStore.Close()

		query := db.EventQuery{Limit: trackLimit}
		if trackType != "" {
			eventType := models.EventType(trackType)
			query.Type = &eventType
		}
		if trackSince > 0 {
			since := time.Now().Add(-trackSince)
			query.Since = &since
		}

		page, err := sqliteStore.Query(ctx, query)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, page.Events)
		}
		rows := make([][]string, 0, len(page.Events))
		for _, event := range page.Events {
			data, _ := json.Marshal(event.EventData)
			rows = append(rows, []string{formatTimestamp(event.CreatedAt), string(event.EventType), string(data)})
		}
		return writeTable(out, []string{"CREATED", "TYPE", "DATA"}, rows)
	},
}
