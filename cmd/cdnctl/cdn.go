package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourorg/cdnctl/internal/api"
	"github.com/yourorg/cdnctl/internal/cdn"
	"github.com/yourorg/cdnctl/internal/config"
	"github.com/yourorg/cdnctl/internal/format"
	"github.com/yourorg/cdnctl/pkg/types"
)

func newCDNCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cdn",
		Short: "Manage CDN domain mappings, origins, purges and metrics",
	}
	cmd.AddCommand(newListCmd(cfgPath))
	cmd.AddCommand(newDetailCmd(cfgPath))
	cmd.AddCommand(newOriginListCmd(cfgPath))
	cmd.AddCommand(newOriginAddCmd(cfgPath))
	cmd.AddCommand(newOriginRemoveCmd(cfgPath))
	cmd.AddCommand(newPurgeCmd(cfgPath))
	cmd.AddCommand(newMetricsCmd(cfgPath))
	return cmd
}

func newManager(cfgPath string) (*cdn.Manager, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := &api.Client{
		Endpoint:   cfg.API.Endpoint,
		Username:   cfg.API.Username,
		APIKey:     cfg.API.APIKey,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second},
		Logger:     newLogger(cfg.Log.Level),
	}
	return cdn.NewManager(client), nil
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn", "warning":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}

func newListCmd(cfgPath *string) *cobra.Command {
	var mask string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List CDN domain mappings in the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(*cfgPath)
			if err != nil {
				return err
			}
			mappings, err := mgr.List(&api.CallOptions{Mask: mask, Limit: limit})
			if err != nil {
				return err
			}
			table := format.NewTable("Unique Id", "Domain", "Origin", "Vendor", "Status")
			for _, m := range mappings {
				table.AddRow(m.UniqueID, m.Domain, m.Origin, m.VendorName, m.Status)
			}
			return table.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&mask, "mask", "", "object mask for the remote call")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of mappings to return")
	return cmd
}

func newDetailCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <unique-id>",
		Short: "Show one CDN domain mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(*cfgPath)
			if err != nil {
				return err
			}
			mapping, err := mgr.Get(args[0], nil)
			if err != nil {
				return err
			}
			table := format.NewTable("Name", "Value")
			table.AddRow("Unique Id", mapping.UniqueID)
			table.AddRow("Domain", mapping.Domain)
			table.AddRow("Origin", mapping.Origin)
			table.AddRow("Origin Type", mapping.OriginType)
			table.AddRow("Protocol", mapping.Protocol)
			table.AddRow("CNAME", mapping.CName)
			table.AddRow("Vendor", mapping.VendorName)
			table.AddRow("Status", mapping.Status)
			return table.Render(cmd.OutOrStdout())
		},
	}
}

func newOriginListCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "origin-list <unique-id>",
		Short: "List origin-pull mappings for a CDN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(*cfgPath)
			if err != nil {
				return err
			}
			origins, err := mgr.Origins(args[0], nil)
			if err != nil {
				return err
			}
			table := format.NewTable("Path", "Origin", "Origin Type", "HTTP Port", "Status")
			for _, o := range origins {
				table.AddRow(o.Path, o.Origin, o.OriginType, strconv.Itoa(o.HTTPPort), o.Status)
			}
			return table.Render(cmd.OutOrStdout())
		},
	}
}

func newOriginAddCmd(cfgPath *string) *cobra.Command {
	var opts cdn.OriginOpts
	var originType string
	cmd := &cobra.Command{
		Use:   "origin-add <unique-id> <path> <origin>",
		Short: "Create an origin-pull mapping under a CDN",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(*cfgPath)
			if err != nil {
				return err
			}
			opts.Path = args[1]
			opts.Origin = args[2]
			opts.OriginType = types.OriginType(originType)
			created, err := mgr.AddOrigin(args[0], opts)
			if err != nil {
				return err
			}
			table := format.NewTable("Path", "Origin", "Origin Type", "HTTP Port", "Protocol", "Status")
			table.AddRow(created.Path, created.Origin, created.OriginType,
				strconv.Itoa(created.HTTPPort), created.Protocol, created.Status)
			return table.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&originType, "origin-type", string(types.OriginTypeHostServer), "HOST_SERVER or OBJECT_STORAGE")
	cmd.Flags().StringVar(&opts.Header, "header", "", "host header override")
	cmd.Flags().IntVar(&opts.Port, "port", 80, "origin HTTP port")
	cmd.Flags().StringVar(&opts.Protocol, "protocol", "HTTP", "origin protocol")
	cmd.Flags().StringVar(&opts.BucketName, "bucket-name", "", "bucket name (required for OBJECT_STORAGE)")
	cmd.Flags().StringVar(&opts.FileExtensions, "file-extensions", "", "file extension filter (OBJECT_STORAGE only)")
	cmd.Flags().StringVar(&opts.OptimizeFor, "optimize-for", "General web delivery", "performance configuration")
	cmd.Flags().StringVar(&opts.CacheQuery, "cache-query", "include all", "cache key query rule")
	return cmd
}

func newOriginRemoveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "origin-remove <unique-id> <path>",
		Short: "Delete an origin-pull mapping",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(*cfgPath)
			if err != nil {
				return err
			}
			ack, err := mgr.RemoveOrigin(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ack)
			return nil
		},
	}
}

func newPurgeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     "purge <unique-id> <path>",
		Short:   "Purge a cached path from all edge nodes",
		Example: "  cdnctl cdn purge 9779455 /article/file.txt",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(*cfgPath)
			if err != nil {
				return err
			}
			records, err := mgr.Purge(args[0], args[1])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errors.New("purge returned no records")
			}
			r := records[0]
			table := format.NewTable("Date", "Path", "Saved", "Status")
			table.AddRow(r.Date, r.Path, r.Saved, r.Status)
			return table.Render(cmd.OutOrStdout())
		},
	}
}

func newMetricsCmd(cfgPath *string) *cobra.Command {
	var opts cdn.UsageOpts
	var frequency string
	cmd := &cobra.Command{
		Use:   "metrics <unique-id>",
		Short: "Show usage metrics for a CDN over a date window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(*cfgPath)
			if err != nil {
				return err
			}
			opts.Frequency = types.MetricFrequency(frequency)
			usage, err := mgr.UsageMetrics(args[0], opts)
			if err != nil {
				return err
			}
			table := format.NewTable("Metric", "Total")
			for i, name := range usage.Names {
				total := ""
				if i < len(usage.Totals) {
					total = strconv.FormatFloat(usage.Totals[i], 'f', -1, 64)
				}
				table.AddRow(name, total)
			}
			return table.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.StartDate, "start-date", "", `window start, "YYYY-MM-DD HH:MM:SS"`)
	cmd.Flags().StringVar(&opts.EndDate, "end-date", "", `window end, "YYYY-MM-DD HH:MM:SS"`)
	cmd.Flags().IntVar(&opts.Days, "days", 30, "last N days when no explicit window is given")
	cmd.Flags().StringVar(&frequency, "frequency", string(types.FrequencyAggregate), "day, week, month or aggregate")
	return cmd
}
