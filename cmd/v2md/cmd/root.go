package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"video2md/cmd/v2md/cmd/export"
	"video2md/cmd/v2md/cmd/serve"
	"video2md/cmd/v2md/cmd/version"
	"video2md/internal/app"
	"video2md/internal/app/model"
	"video2md/internal/app/pipeline"
	"video2md/internal/app/util/files"
	"video2md/internal/config"
	"video2md/internal/logger"
)

var (
	Verbose    bool
	language   string
	listFile   string
	configPath string
	audioOnly  bool
	force      bool
)

// rootCmd processes a single input directly; batch and interactive modes
// hang off the same command.
var rootCmd = &cobra.Command{
	Use:   "v2md [input]",
	Short: "Convert a YouTube video or local video file to a Markdown transcript",
	Long: `Convert a YouTube video or local video file to a Markdown transcript.

- YouTube URLs are downloaded with yt-dlp, local files are used directly
- Audio is extracted with ffmpeg and transcribed with whisper.cpp or the OpenAI API
- The transcript is formatted as Markdown, optionally polished by an AI pass
- With no input and no list file, v2md prompts interactively`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(version.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(serve.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
	rootCmd.Flags().StringVarP(&language, "language", "l", "", "transcription language hint (zh, en, ja, ...); empty = auto-detect")
	rootCmd.Flags().StringVarP(&listFile, "file", "f", "", "batch list file: one URL or path per line, # comments allowed")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "config file path")
	rootCmd.Flags().BoolVar(&audioOnly, "audio-only", false, "download audio only (remote inputs)")
	rootCmd.Flags().BoolVar(&force, "force", false, "reprocess inputs that already have a successful run")
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if audioOnly {
		settings.Download.AudioOnly = true
	}

	keys, err := config.GetAPIKeys()
	if err != nil {
		return err
	}

	zl := logger.MustNew(settings.Logging.Level, settings.Logging.File, Verbose)
	defer zl.Sync()
	log := zl.Sugar()

	p, err := app.InitializePipeline(settings, keys, log)
	if err != nil {
		return err
	}
	defer p.Close()
	p.SetForce(force)

	ctx := cmd.Context()

	switch {
	case len(args) == 1:
		job := p.ProcessOne(ctx, args[0], language)
		printJobResult(job)
		if !job.Succeeded() {
			return fmt.Errorf("processing failed at stage %s: %v", job.FailedStage, job.Err)
		}
		return nil

	case listFile != "":
		inputs, err := files.ReadBatchList(listFile)
		if err != nil {
			return err
		}
		progress := pipeline.NewProgress(!Verbose, len(inputs), nil)
		summary := p.ProcessBatch(ctx, inputs, language, progress)
		fmt.Printf("batch completed: %d/%d succeeded\n", summary.Succeeded, summary.Total)
		for _, job := range summary.FailedJobs() {
			fmt.Printf("  failed: %s (stage %s: %v)\n", job.RawInput, job.FailedStage, job.Err)
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d inputs failed", summary.Failed, summary.Total)
		}
		return nil

	default:
		return runInteractive(cmd, p)
	}
}

// runInteractive prompts for inputs until the user quits. Failures are
// reported per input and never end the loop.
func runInteractive(cmd *cobra.Command, p *pipeline.Pipeline) error {
	fmt.Println("v2md interactive mode — enter a YouTube URL or local video path ('quit' to exit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "quit") {
			return nil
		}

		job := p.ProcessOne(cmd.Context(), input, language)
		printJobResult(job)
	}
}

func printJobResult(job *model.Job) {
	if !job.Succeeded() {
		fmt.Printf("processing failed: %s\n", job.RawInput)
		return
	}
	if a, ok := job.ArtifactFor(model.StageFormat); ok {
		fmt.Printf("done: %s\n", a.Path)
	} else if a, ok := job.ArtifactFor(model.StageTranscribe); ok {
		fmt.Printf("done: %s\n", a.Path)
	} else {
		fmt.Printf("done: %s\n", job.RawInput)
	}
}
