package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/goto/siphon/domain"
	"github.com/spf13/cobra"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

type rangeFlags struct {
	start      string
	end        string
	maxRecords int
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "Start of the date range, yyyy-mm-dd or RFC3339")
	cmd.Flags().StringVar(&f.end, "end", "", "End of the date range, yyyy-mm-dd or RFC3339")
	cmd.Flags().IntVar(&f.maxRecords, "max", 0, "Maximum number of records to request")
}

func (f *rangeFlags) options() (domain.FetchOptions, error) {
	opts := domain.FetchOptions{MaxRecords: f.maxRecords}
	if f.start == "" && f.end == "" {
		return opts, nil
	}
	if f.start == "" || f.end == "" {
		return opts, fmt.Errorf("--start and --end must be set together")
	}

	start, err := parseDate(f.start)
	if err != nil {
		return opts, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := parseDate(f.end)
	if err != nil {
		return opts, fmt.Errorf("invalid --end: %w", err)
	}
	opts.StartDate, opts.EndDate = &start, &end
	return opts, nil
}

func parseDate(v string) (time.Time, error) {
	var (
		t   time.Time
		err error
	)
	for _, layout := range dateLayouts {
		if t, err = time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return t, err
}

// splitEntity accepts either "api/endpoint" or two separate arguments
func splitEntity(args []string) (string, string, error) {
	if len(args) >= 2 {
		return args[0], args[1], nil
	}
	if apiName, endpointName, ok := strings.Cut(args[0], "/"); ok && apiName != "" && endpointName != "" {
		return apiName, endpointName, nil
	}
	return "", "", fmt.Errorf("expected <api>/<endpoint>, got %q", args[0])
}
