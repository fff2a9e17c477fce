package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pinata "github.com/substratelabs/go-pinata"
	"github.com/substratelabs/go-pinata/internal/app"
	"github.com/substratelabs/go-pinata/internal/config"
	"github.com/substratelabs/go-pinata/internal/retry"
)

const version = "0.1.0"

const configTemplate = `# Optional log level, default "info"
loglevel = "info"

[pinata]
# Required. API key pair from the Pinata account page. Both values can also
# be provided via the PINATA_API_KEY and PINATA_SECRET_API_KEY environment
# variables.
api_key = ""
secret_api_key = ""
`

var configPath string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = "./config.toml"
	}

	rootCmd := &cobra.Command{
		Use:   "pinata",
		Short: "Pinata IPFS pinning service client",
		Long:  "Command line client for the Pinata pinning service. Pin files, directories, JSON or existing IPFS hashes, manage metadata and pin policies, and inspect the pin queue.",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to config file")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newPinCmd())
	rootCmd.AddCommand(newUnpinCmd())
	rootCmd.AddCommand(newMetadataCmd())
	rootCmd.AddCommand(newPolicyCmd())
	rootCmd.AddCommand(newJobsCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newTotalCmd())
	rootCmd.AddCommand(newGenerateConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newContainer loads and validates the config, then wires the dependencies.
func newContainer(ctx context.Context, validateAuth bool) (*app.Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return app.NewContainer(ctx, cfg, app.WithAuthValidation(validateAuth))
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// parseKeyValues turns repeated key=value flags into metadata values.
// Values that parse as numbers are sent as numbers.
func parseKeyValues(pairs []string) (map[string]pinata.MetadataValue, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	keyvalues := make(map[string]pinata.MetadataValue, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid key/value %q, expected key=value", pair)
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			keyvalues[key] = pinata.MetadataNumber(n)
		} else {
			keyvalues[key] = pinata.MetadataString(value)
		}
	}

	return keyvalues, nil
}

func metadataFromFlags(name string, pairs []string) (*pinata.Metadata, error) {
	keyvalues, err := parseKeyValues(pairs)
	if err != nil {
		return nil, err
	}
	if name == "" && keyvalues == nil {
		return nil, nil
	}

	return &pinata.Metadata{Name: name, KeyValues: keyvalues}, nil
}

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Test that the configured credentials are accepted",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newContainer(cmd.Context(), true)
			if err != nil {
				return err
			}
			container.Logger.Info("Credentials accepted")
			return nil
		},
	}
}

func newPinCmd() *cobra.Command {
	pinCmd := &cobra.Command{
		Use:   "pin",
		Short: "Pin content to IPFS",
	}
	pinCmd.AddCommand(newPinFileCmd())
	pinCmd.AddCommand(newPinJSONCmd())
	pinCmd.AddCommand(newPinHashCmd())
	return pinCmd
}

func newPinFileCmd() *cobra.Command {
	var (
		name       string
		keyvalues  []string
		cidVersion int
	)

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Pin a file, or every file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx, false)
			if err != nil {
				return err
			}

			metadata, err := metadataFromFlags(name, keyvalues)
			if err != nil {
				return err
			}

			pin := pinata.PinByFile{Path: args[0], Metadata: metadata}
			if cmd.Flags().Changed("cid-version") {
				pin.Options = &pinata.PinOptions{CIDVersion: pinata.Int(cidVersion)}
			}

			result, err := container.Pinata.PinFile(ctx, pin)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Metadata name for the pin")
	cmd.Flags().StringArrayVar(&keyvalues, "keyvalue", nil, "Metadata key=value (repeatable)")
	cmd.Flags().IntVar(&cidVersion, "cid-version", 0, "CID version to use when hashing")
	return cmd
}

func newPinJSONCmd() *cobra.Command {
	var (
		name      string
		keyvalues []string
	)

	cmd := &cobra.Command{
		Use:   "json <file>",
		Short: "Pin a JSON document (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read JSON input: %w", err)
			}

			var content any
			if err := json.Unmarshal(data, &content); err != nil {
				return fmt.Errorf("input is not valid JSON: %w", err)
			}

			container, err := newContainer(ctx, false)
			if err != nil {
				return err
			}

			metadata, err := metadataFromFlags(name, keyvalues)
			if err != nil {
				return err
			}

			result, err := container.Pinata.PinJSON(ctx, pinata.PinByJSON{
				Content:  content,
				Metadata: metadata,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Metadata name for the pin")
	cmd.Flags().StringArrayVar(&keyvalues, "keyvalue", nil, "Metadata key=value (repeatable)")
	return cmd
}

func newPinHashCmd() *cobra.Command {
	var (
		name         string
		keyvalues    []string
		hostNodes    []string
		wait         bool
		waitAttempts int
		waitInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "hash <cid>",
		Short: "Queue an existing IPFS hash for pinning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx, false)
			if err != nil {
				return err
			}

			metadata, err := metadataFromFlags(name, keyvalues)
			if err != nil {
				return err
			}

			pin := pinata.PinByHash{HashToPin: args[0], Metadata: metadata}
			if len(hostNodes) > 0 {
				pin.Options = &pinata.PinOptions{HostNodes: hostNodes}
			}

			result, err := container.Pinata.PinByHash(ctx, pin)
			if err != nil {
				return err
			}
			if err := printJSON(result); err != nil {
				return err
			}

			if !wait {
				return nil
			}
			return waitForPin(ctx, container, result.IPFSHash, waitAttempts, waitInterval)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Metadata name for the pin")
	cmd.Flags().StringArrayVar(&keyvalues, "keyvalue", nil, "Metadata key=value (repeatable)")
	cmd.Flags().StringArrayVar(&hostNodes, "host-node", nil, "Multiaddress of a node already hosting the content (repeatable)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll the pin queue until the job completes")
	cmd.Flags().IntVar(&waitAttempts, "wait-attempts", 10, "Maximum number of queue polls")
	cmd.Flags().DurationVar(&waitInterval, "wait-interval", 2*time.Second, "Base delay between queue polls (doubles per poll)")
	return cmd
}

var errStillQueued = errors.New("pin job still in queue")

// waitForPin polls the pin queue until the job for hash leaves it or reaches
// a terminal failure status.
func waitForPin(ctx context.Context, container *app.Container, hash string, attempts int, interval time.Duration) error {
	container.Logger.Infof("Waiting for %s to be pinned", hash)

	return retry.Do(ctx, retry.Config{
		MaxAttempts: attempts,
		BaseDelay:   interval,
		ShouldRetry: func(err error) bool { return errors.Is(err, errStillQueued) },
	}, func(attempt int) error {
		jobs, err := container.Pinata.PinJobs(ctx, pinata.PinJobsFilter{IPFSPinHash: hash})
		if err != nil {
			return err
		}

		// The job disappears from the queue once the content is pinned.
		if jobs.Count == 0 || len(jobs.Rows) == 0 {
			container.Logger.Infof("%s is pinned", hash)
			return nil
		}

		job := jobs.Rows[0]
		switch job.Status {
		case pinata.JobExpired, pinata.JobOverFreeLimit, pinata.JobOverMaxSize,
			pinata.JobInvalidObject, pinata.JobBadHostNode:
			return fmt.Errorf("pin job failed with status %s", job.Status)
		}

		container.Logger.Infof("Pin job status: %s", job.Status)
		return errStillQueued
	})
}

func newUnpinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpin <cid>",
		Short: "Unpin previously pinned content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx, false)
			if err != nil {
				return err
			}

			if err := container.Pinata.Unpin(ctx, args[0]); err != nil {
				return err
			}
			container.Logger.Infof("Unpinned %s", args[0])
			return nil
		},
	}
}

func newMetadataCmd() *cobra.Command {
	var (
		name    string
		sets    []string
		deletes []string
	)

	cmd := &cobra.Command{
		Use:   "metadata <cid>",
		Short: "Update the name and key/values of pinned content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			keyvalues, err := parseKeyValues(sets)
			if err != nil {
				return err
			}
			if len(deletes) > 0 && keyvalues == nil {
				keyvalues = make(map[string]pinata.MetadataValue, len(deletes))
			}
			for _, key := range deletes {
				keyvalues[key] = pinata.MetadataDelete()
			}
			if name == "" && len(keyvalues) == 0 {
				return fmt.Errorf("nothing to change: provide --name, --set or --delete")
			}

			container, err := newContainer(ctx, false)
			if err != nil {
				return err
			}

			change := pinata.ChangeHashMetadata{
				IPFSPinHash: args[0],
				Name:        name,
				KeyValues:   keyvalues,
			}
			if err := container.Pinata.ChangeHashMetadata(ctx, change); err != nil {
				return err
			}
			container.Logger.Infof("Updated metadata for %s", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New metadata name")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a metadata key=value (repeatable)")
	cmd.Flags().StringArrayVar(&deletes, "delete", nil, "Delete a metadata key (repeatable)")
	return cmd
}

func newPolicyCmd() *cobra.Command {
	var regions []string

	cmd := &cobra.Command{
		Use:   "policy <cid>",
		Short: "Change the pin policy for pinned content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			policy, err := parseRegions(regions)
			if err != nil {
				return err
			}

			container, err := newContainer(ctx, false)
			if err != nil {
				return err
			}

			err = container.Pinata.SetHashPinPolicy(ctx, pinata.HashPinPolicy{
				IPFSPinHash:  args[0],
				NewPinPolicy: policy,
			})
			if err != nil {
				return err
			}
			container.Logger.Infof("Updated pin policy for %s", args[0])
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&regions, "region", nil, "Region and replica count as REGION=COUNT, e.g. FRA1=2 (repeatable)")
	_ = cmd.MarkFlagRequired("region")
	return cmd
}

func parseRegions(pairs []string) (pinata.PinPolicy, error) {
	var policy pinata.PinPolicy
	for _, pair := range pairs {
		region, count, found := strings.Cut(pair, "=")
		if !found || region == "" {
			return pinata.PinPolicy{}, fmt.Errorf("invalid region %q, expected REGION=COUNT", pair)
		}
		replicas, err := strconv.Atoi(count)
		if err != nil || replicas < 1 {
			return pinata.PinPolicy{}, fmt.Errorf("invalid replica count in %q", pair)
		}
		policy.Regions = append(policy.Regions, pinata.RegionPolicy{
			ID:                      pinata.Region(region),
			DesiredReplicationCount: replicas,
		})
	}
	return policy, nil
}

func newJobsCmd() *cobra.Command {
	var (
		sort   string
		status string
		hash   string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List pins currently in the pin queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx, false)
			if err != nil {
				return err
			}

			filter := pinata.PinJobsFilter{
				Sort:        pinata.SortDirection(sort),
				Status:      pinata.JobStatus(status),
				IPFSPinHash: hash,
			}
			if cmd.Flags().Changed("limit") {
				filter.Limit = pinata.Int(limit)
			}
			if cmd.Flags().Changed("offset") {
				filter.Offset = pinata.Int(offset)
			}

			jobs, err := container.Pinata.PinJobs(ctx, filter)
			if err != nil {
				return err
			}
			return printJSON(jobs)
		},
	}
	cmd.Flags().StringVar(&sort, "sort", "", "Sort direction: ASC or DESC")
	cmd.Flags().StringVar(&status, "status", "", "Filter by job status")
	cmd.Flags().StringVar(&hash, "hash", "", "Filter by IPFS pin hash")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records per page")
	cmd.Flags().IntVar(&offset, "offset", 0, "Record offset for pagination")
	return cmd
}

func newListCmd() *cobra.Command {
	var (
		hashContains string
		status       string
		name         string
		limit        int
		offset       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the account's pin records",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx, false)
			if err != nil {
				return err
			}

			filter := pinata.PinListFilter{
				HashContains: hashContains,
				Status:       pinata.PinListStatus(status),
				MetadataName: name,
			}
			if cmd.Flags().Changed("limit") {
				filter.PageLimit = pinata.Int(limit)
			}
			if cmd.Flags().Changed("offset") {
				filter.PageOffset = pinata.Int(offset)
			}

			list, err := container.Pinata.PinList(ctx, filter)
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}
	cmd.Flags().StringVar(&hashContains, "hash-contains", "", "Filter by hash substring")
	cmd.Flags().StringVar(&status, "status", "", "Filter by pin state: all, pinned or unpinned")
	cmd.Flags().StringVar(&name, "name", "", "Filter by metadata name")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records per page")
	cmd.Flags().IntVar(&offset, "offset", 0, "Record offset for pagination")
	return cmd
}

func newTotalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Show total pinned data usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx, false)
			if err != nil {
				return err
			}

			total, err := container.Pinata.TotalPinnedData(ctx)
			if err != nil {
				return err
			}
			return printJSON(total)
		},
	}
}

func newGenerateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-config",
		Short: "Generate a config file template",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateConfig(configPath)
		},
	}
}

// generateConfig writes the config template, backing up any existing file.
func generateConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		backupPath := path + ".bak"
		fmt.Printf("Backing up config %s\n", path)
		if err := os.Rename(path, backupPath); err != nil {
			return fmt.Errorf("failed to backup config: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	fmt.Printf("Writing %s\n", path)
	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pinata version %s\n", version)
		},
	}
}
