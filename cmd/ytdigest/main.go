// Package main provides the ytdigest CLI entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/ytdigest/internal/aggregator"
	"github.com/gauthierbraillon/ytdigest/internal/config"
	"github.com/gauthierbraillon/ytdigest/internal/dislikes"
	"github.com/gauthierbraillon/ytdigest/internal/display"
	"github.com/gauthierbraillon/ytdigest/internal/logging"
	"github.com/gauthierbraillon/ytdigest/internal/transcript"
	"github.com/gauthierbraillon/ytdigest/internal/youtube"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version, then the module version
// recorded by go install.
func resolveVersion(ldflagsVersion string, bi *debug.BuildInfo) string {
	if ldflagsVersion != "dev" {
		return ldflagsVersion
	}
	if bi == nil || bi.Main.Version == "" || bi.Main.Version == "(devel)" {
		return "dev"
	}
	return bi.Main.Version
}

func buildInfo() *debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return bi
}

// newRootCmd creates the root command for ytdigest CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ytdigest",
		Short:        "Collect YouTube video metadata into one report",
		Long:         "ytdigest takes a list of YouTube links and reports tags, title, engagement counts, top comments, duration, description and transcript for each video.",
		Version:      resolveVersion(version, buildInfo()),
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("ytdigest version {{.Version}}\n")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// newReportCmd creates the report subcommand.
func newReportCmd() *cobra.Command {
	var (
		formatName string
		inputFile  string
		outputFile string
		comments   int
		language   string
	)

	cmd := &cobra.Command{
		Use:   "report [links...]",
		Short: "Collect data for a list of YouTube links",
		Long: `Collect data for YouTube links given as arguments or read from a file.
Links may be separated by commas or newlines. Links that are not YouTube
watch or short links are skipped with a notice.`,
		Example: `  ytdigest report "https://www.youtube.com/watch?v=abc123, https://youtu.be/xyz789"
  ytdigest report --file links.txt --format csv --output report.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cmd.Flags().Changed("comments") {
				cfg.CommentLimit = comments
			}
			if language != "" {
				cfg.SubLanguage = language
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			format, err := display.ParseFormat(formatName)
			if err != nil {
				return err
			}

			block := strings.Join(args, ",")
			if inputFile != "" {
				data, err := readInput(cmd.InOrStdin(), inputFile)
				if err != nil {
					return err
				}
				block += "\n" + data
			}
			refs := aggregator.ParseReferences(block)
			if len(refs) == 0 {
				return errors.New("enter at least one link")
			}

			logger, closer, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			formatter := display.NewTerminalFormatter()
			stderr := cmd.ErrOrStderr()
			report := newPipeline(cfg, logger, nil).Run(ctx, refs, aggregator.Hooks{
				OnProgress: func(done, total int) {
					fmt.Fprintln(stderr, formatter.FormatProgress(done, total))
				},
				OnNotice: func(n aggregator.Notice) {
					fmt.Fprintln(stderr, n.Message)
				},
			})

			if err := writeReport(cmd.OutOrStdout(), outputFile, formatter, format, report); err != nil {
				return err
			}
			fmt.Fprint(stderr, formatter.FormatSummary(report))

			if report.Status() == aggregator.StatusCanceled {
				return errors.New("report canceled")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "text", "Output format (text, csv, json)")
	cmd.Flags().StringVarP(&inputFile, "file", "i", "", "Read links from a file (- for stdin)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().IntVarP(&comments, "comments", "c", 20, "Number of top comments to collect per video")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Caption language for transcripts (default from YTDIGEST_SUB_LANG)")

	return cmd
}

// newPipeline wires the YouTube, dislike and transcript sources from cfg.
func newPipeline(cfg *config.Config, logger logrus.FieldLogger, recorder aggregator.Recorder) *aggregator.Pipeline {
	yt := youtube.NewClient(cfg.APIKey, youtube.WithBaseURL(cfg.APIURL))
	dl := dislikes.NewClient(
		dislikes.WithBaseURL(cfg.DislikeAPIURL),
		dislikes.WithTimeout(cfg.DislikeTimeout),
	)
	tr := transcript.NewFetcher(
		transcript.WithBinary(cfg.YTDLPPath),
		transcript.WithLanguage(cfg.SubLanguage),
		transcript.WithWorkDir(cfg.WorkDir),
		transcript.WithLogger(logger),
	)
	limit := cfg.CommentLimit

	sources := aggregator.Sources{
		Metadata: aggregator.SourceFunc[*youtube.Video](yt.FetchVideo),
		Dislikes: aggregator.SourceFunc[int64](dl.FetchDislikes),
		Comments: aggregator.SourceFunc[[]string](func(ctx context.Context, id string) ([]string, error) {
			return yt.FetchComments(ctx, id, limit)
		}),
		Transcript: aggregator.SourceFunc[string](tr.FetchTranscript),
	}

	return aggregator.New(sources,
		aggregator.WithLogger(logger),
		aggregator.WithPace(cfg.Pace),
		aggregator.WithRecorder(recorder),
	)
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), errors.Wrap(err, "read links from stdin")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read links from %s", path)
	}
	return string(data), nil
}

func writeReport(stdout io.Writer, path string, f *display.TerminalFormatter, format display.Format, report *aggregator.Report) error {
	if path == "" {
		return f.Write(stdout, format, report)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := f.Write(file, format, report); err != nil {
		_ = file.Close()
		return err
	}
	return errors.Wrapf(file.Close(), "close %s", path)
}

// newConfigCmd creates the config subcommand.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long:  "Show the ytdigest configuration resolved from the environment and .env files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			out := cmd.OutOrStdout()

			apiKey := "not set"
			if cfg.APIKey != "" {
				apiKey = "set"
			}

			fmt.Fprintf(out, "Config directory: %s\n", cfg.ConfigDir)
			fmt.Fprintf(out, "API key: %s\n", apiKey)
			fmt.Fprintf(out, "API URL: %s\n", cfg.APIURL)
			fmt.Fprintf(out, "Dislike API URL: %s\n", cfg.DislikeAPIURL)
			fmt.Fprintf(out, "yt-dlp: %s\n", cfg.YTDLPPath)
			fmt.Fprintf(out, "Caption language: %s\n", cfg.SubLanguage)
			fmt.Fprintf(out, "Work directory: %s\n", cfg.WorkDir)
			fmt.Fprintf(out, "Comment limit: %d\n", cfg.CommentLimit)
			fmt.Fprintf(out, "Pace: %s\n", cfg.Pace)
			fmt.Fprintf(out, "Log level: %s\n", cfg.LogLevel)
			if cfg.LogFile != "" {
				fmt.Fprintf(out, "Log file: %s\n", cfg.LogFile)
			}
			return nil
		},
	}

	return cmd
}
