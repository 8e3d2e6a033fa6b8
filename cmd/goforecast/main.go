// Command goforecast fits a Holt-Winters model to monthly category sales
// and writes the forecast as CSV. Data sources, model settings, and the
// cache backend come from a YAML configuration file.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sartorproj/goforecast/config"
	"github.com/sartorproj/goforecast/forecastcache"
	"github.com/sartorproj/goforecast/holtwinters"
	"github.com/sartorproj/goforecast/timeseries"
)

var (
	configPath string
	category   string
	horizon    int
	outPath    string

	log zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "goforecast",
	Short: "Monthly sales forecasting with Holt-Winters exponential smoothing",
	Long: `goforecast loads monthly sales history for a product category,
fits a triple exponential smoothing model, and writes the forecast
as CSV. Fitted results are cached by series content and horizon, in
memory or in Redis depending on configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fit a model for one category and write its forecast",
	RunE:  runForecast,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories defined in the configuration",
	RunE:  runCategories,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "goforecast.yaml", "Path to the YAML configuration file")

	runCmd.Flags().StringVar(&category, "category", "", "Category to forecast (required)")
	runCmd.Flags().IntVar(&horizon, "horizon", 0, "Months to forecast (default: model.default_horizon)")
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output CSV path (default: stdout)")
	_ = runCmd.MarkFlagRequired("category")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "goforecast: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Logging) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level: %w", err)
	}

	var out = os.Stderr
	var w zerolog.Logger
	if cfg.Format == "console" {
		w = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	} else {
		w = zerolog.New(out)
	}
	return w.Level(level).With().Timestamp().Logger(), nil
}

func newCache(cfg config.Cache) (*forecastcache.Cache, error) {
	switch cfg.Backend {
	case "redis":
		store, err := forecastcache.NewRedisStore(forecastcache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return forecastcache.New(store, cfg.TTL), nil
	default:
		return forecastcache.New(forecastcache.NewMemoryStore(cfg.MaxEntries), cfg.TTL), nil
	}
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	log, err = newLogger(cfg.Logging)
	if err != nil {
		return err
	}

	cat, ok := cfg.Categories[category]
	if !ok {
		return fmt.Errorf("unknown category %q (see 'goforecast categories')", category)
	}

	h := horizon
	if h == 0 {
		h = cfg.Model.DefaultHorizon
	}
	if h < config.MinHorizon || h > config.MaxHorizon {
		return fmt.Errorf("horizon must be in [%d,%d], got %d", config.MinHorizon, config.MaxHorizon, h)
	}

	series, err := timeseries.LoadCSV(cat.File, &timeseries.LoadOptions{
		Name:        category,
		DateColumn:  cat.DateColumn,
		ValueColumn: cat.ValueColumn,
	})
	if err != nil {
		return fmt.Errorf("load %s: %w", cat.File, err)
	}

	log.Info().
		Str("category", category).
		Int("observations", series.Len()).
		Str("first", series.First().Format("2006-01")).
		Str("last", series.Last().Format("2006-01")).
		Float64("mean", series.Mean()).
		Float64("min", series.Min()).
		Float64("max", series.Max()).
		Float64("std", series.Std()).
		Msg("loaded series")

	cache, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer cache.Close()

	trend := holtwinters.ComponentType(cfg.Model.Trend)
	seasonal := holtwinters.ComponentType(cfg.Model.Seasonal)
	period := cfg.Model.Period

	ctx := context.Background()
	start := time.Now()
	summary, forecast, err := cache.GetOrCompute(ctx, series, h, func() (*holtwinters.Model, *timeseries.Series, error) {
		return holtwinters.FitAndForecast(series, h, trend, seasonal, period)
	})
	if err != nil {
		return fmt.Errorf("forecast %s: %w", category, err)
	}

	log.Info().
		Float64("alpha", summary.Alpha).
		Float64("beta", summary.Beta).
		Float64("gamma", summary.Gamma).
		Float64("rmse", summary.RMSE).
		Float64("mape", summary.MAPE).
		Int("period", summary.Period).
		Int("horizon", h).
		Dur("elapsed", time.Since(start)).
		Msg("model fitted")

	if outPath == "" {
		return timeseries.WriteForecastCSV(os.Stdout, forecast)
	}
	if err := timeseries.SaveForecastCSV(forecast, outPath); err != nil {
		return err
	}
	log.Info().Str("path", outPath).Int("rows", forecast.Len()).Msg("forecast written")
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(cfg.Categories))
	for name := range cfg.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s\t%s\n", name, cfg.Categories[name].File)
	}
	return nil
}
