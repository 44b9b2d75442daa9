package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/services"
)

var configNeeds = map[string]string{annotationNeeds: needsConfig}

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View and edit settings",
	Long:        `View and edit the settings stored in config.toml.`,
	Annotations: configNeeds,
	RunE:        runConfigList,
}

var configListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List effective settings",
	Args:        cobra.NoArgs,
	Annotations: configNeeds,
	RunE:        runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:         "get KEY",
	Short:       "Print one effective setting",
	Args:        cobra.ExactArgs(1),
	Annotations: configNeeds,
	RunE:        runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a setting",
	Long: `Store a setting in config.toml.

Keys:
  feed.endpoint          blog base URL, e.g. https://example.blogspot.com
  feed.max_results       entries requested per query
  feed.timeout_ms        request timeout in milliseconds
  feed.rate_per_second   outbound request rate (0 = unthrottled)
  search.debounce_ms     quiet period before a query resolves
  cache.backend          sqlite, badger or memory
  cache.dir              data directory for the durable cache
  cache.quota_bytes      durable cache size cap (0 = unbounded)

Flags must come before KEY; everything after it is taken literally,
so "feedsearch config set cache.quota_bytes -1" reaches validation.`,
	Args:        cobra.ExactArgs(2),
	Annotations: configNeeds,
	RunE:        runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file path",
	Args:        cobra.NoArgs,
	Annotations: configNeeds,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if deps == nil || deps.Config == nil {
			return errNotConfigured
		}
		cmd.Println(deps.Config.Path())
		return nil
	},
}

func init() {
	configSetCmd.Flags().SetInterspersed(false)

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	settings, err := effectiveSettings()
	if err != nil {
		return err
	}
	for _, key := range services.SettingKeys() {
		value := settingValue(settings, key)
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("%-22s %s\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !slices.Contains(services.SettingKeys(), key) {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}
	settings, err := effectiveSettings()
	if err != nil {
		return err
	}
	cmd.Println(settingValue(settings, key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if deps == nil || deps.Settings == nil || deps.Config == nil {
		return errNotConfigured
	}
	key, raw := args[0], args[1]
	if err := setConfigValue(key, raw); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

func effectiveSettings() (*domain.Settings, error) {
	if deps == nil || deps.Settings == nil {
		return nil, errNotConfigured
	}
	settings, err := deps.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// settingValue formats the setting stored under key.
func settingValue(s *domain.Settings, key string) string {
	switch key {
	case services.KeyFeedEndpoint:
		return s.Feed.Endpoint
	case services.KeyFeedMaxResults:
		return strconv.Itoa(s.Feed.MaxResults)
	case services.KeyFeedTimeoutMS:
		return strconv.FormatInt(s.Feed.Timeout.Milliseconds(), 10)
	case services.KeyFeedRate:
		return strconv.FormatFloat(s.Feed.RatePerSecond, 'g', -1, 64)
	case services.KeyDebounceMS:
		return strconv.FormatInt(s.Search.Debounce.Milliseconds(), 10)
	case services.KeyCacheBackend:
		return s.Cache.Backend.String()
	case services.KeyCacheDir:
		return s.Cache.Dir
	case services.KeyCacheQuota:
		return strconv.FormatInt(s.Cache.QuotaBytes, 10)
	default:
		return ""
	}
}

// setConfigValue parses raw for key and stores it.
func setConfigValue(key, raw string) error {
	switch key {
	case services.KeyFeedEndpoint:
		return deps.Settings.SetEndpoint(raw)
	case services.KeyCacheBackend:
		return deps.Settings.SetCacheBackend(domain.CacheBackend(raw))
	case services.KeyCacheDir:
		return deps.Config.Set(key, raw)
	case services.KeyFeedRate:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		return deps.Config.Set(key, f)
	case services.KeyFeedMaxResults, services.KeyFeedTimeoutMS:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return deps.Config.Set(key, n)
	case services.KeyDebounceMS, services.KeyCacheQuota:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return deps.Config.Set(key, n)
	default:
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}
}
