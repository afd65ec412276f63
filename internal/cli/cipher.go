package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cipherwen/pkg/article"
	"github.com/matzehuels/cipherwen/pkg/config"
	"github.com/matzehuels/cipherwen/pkg/pipeline"
)

// cipherOpts holds the command-line flags for the cipher command.
type cipherOpts struct {
	configPath   string
	ternary      bool // transcode the cipher text
	image        bool // render the ternary text, implies ternary
	render       renderFlags
	textMin      int
	answerMin    int
	workers      int
	noCache      bool
	refresh      bool
	interactive  bool
	watch        bool
	showArticles bool
}

// cipherCommand creates the cipher command, which runs the complete pipeline
// over an articles file.
func (c *CLI) cipherCommand() *cobra.Command {
	var opts cipherOpts

	cmd := &cobra.Command{
		Use:   "cipher <articles-file>",
		Short: "Encipher an articles file",
		Long: `Cipher reads articles separated by the article separator, each holding a text
and "Q:"/"A:" line pairs after the Q&A separator. It finds the shortest
segments that tell the texts apart, and for every article the shortest
segments that tell its answers apart, and joins them into the cipher text.
A lone text or answer has nothing to differ from and keeps its leading
letters.

With --ternary the cipher text is transcoded to ternary; with --image the
ternary text is also painted as a grid image. --interactive asks instead.
--watch reruns whenever the articles file is saved.`,
		Example: `  # Print the cipher text
  cipherwen cipher quiz.txt

  # Transcode and render with custom colors
  cipherwen cipher quiz.txt --image -o quiz.png --colors "0=#1d1d1d,1=#6b6b6b,2=#f0f0f0"

  # Decide step by step
  cipherwen cipher quiz.txt -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.watch {
				return c.runCipher(cmd.Context(), args[0], opts)
			}
			return c.watchCipher(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/cipherwen/config.toml)")
	cmd.Flags().BoolVar(&opts.ternary, "ternary", false, "transcode the cipher text to ternary")
	cmd.Flags().BoolVar(&opts.image, "image", false, "render the ternary text as a grid image (implies --ternary)")
	opts.render.register(cmd)
	cmd.Flags().IntVar(&opts.textMin, "text-min", 0, "minimum segment length for article texts (default from config)")
	cmd.Flags().IntVar(&opts.answerMin, "answer-min", 0, "minimum segment length for answers (default from config)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent answer searches (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached fingerprints")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "ask before transcoding and rendering")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rerun when the articles file changes")
	cmd.MarkFlagsMutuallyExclusive("interactive", "watch")
	cmd.Flags().BoolVar(&opts.showArticles, "show-articles", false, "print the parsed articles")

	return cmd
}

// pipelineOptions builds the run options from the flags over cfg.
func (o cipherOpts) pipelineOptions(cfg *config.Config) pipeline.Options {
	popts := pipeline.Options{
		TextMinLength:   cfg.Fingerprint.TextMinLength,
		AnswerMinLength: cfg.Fingerprint.AnswerMinLength,
		Workers:         o.workers,
		Refresh:         o.refresh,
		Ternary:         o.ternary || o.image,
		Render:          o.image,
	}
	if o.textMin != 0 {
		popts.TextMinLength = o.textMin
	}
	if o.answerMin != 0 {
		popts.AnswerMinLength = o.answerMin
	}
	return popts
}

// runCipher parses the articles file and runs the pipeline.
func (c *CLI) runCipher(ctx context.Context, path string, opts cipherOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prog := newProgress(logger)
	articles, err := article.ReadFile(path, cfg.Separator)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d articles", len(articles)))

	if opts.showArticles {
		printArticles(articles)
	}

	popts := opts.pipelineOptions(cfg)
	popts.Logger = c.Logger
	render := opts.render.apply(cfg.Render)
	if popts.Render {
		if popts.Grid, err = gridOptions(render, logger); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Interactive runs decide on the later stages after seeing the cipher.
	if opts.interactive {
		popts.Ternary, popts.Render = false, false
	}

	spinner := newSpinnerWithContext(ctx, "Fingerprinting articles...")
	spinner.Start()

	result, err := runner.Cipher(ctx, articles, popts)
	if err != nil {
		spinner.StopWithError("Cipher failed")
		return err
	}
	spinner.Stop()

	printCipherTables(result)
	printSuccess("Cipher complete")
	printKeyValue("Cipher", result.CipherText)

	gopts := popts.Grid
	if opts.interactive {
		encodeOpts, err := c.promptEncode(opts, render)
		if err != nil {
			return err
		}
		encodeOpts.Logger = c.Logger
		if err := runner.Encode(ctx, result, encodeOpts); err != nil {
			return err
		}
		gopts = encodeOpts.Grid
	}

	if result.Ternary != "" {
		printKeyValue("Ternary", result.Ternary)
	}
	if result.ImagePath != "" {
		printKeyValue("Preview", swatches(result.Ternary, gopts))
		printFile(result.ImagePath)
	}
	printStats(result.Stats, result.CacheInfo)

	if result.Ternary == "" {
		fmt.Println()
		printNextStep("Transcode", appName+" encode "+result.CipherText)
	}
	return nil
}

// watchCipher runs the pipeline now and again after every change to path.
// Failed runs are reported and watching continues.
func (c *CLI) watchCipher(ctx context.Context, path string, opts cipherOpts) error {
	if err := c.runCipher(ctx, path, opts); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		printError("%v", err)
	}

	fmt.Println()
	printInfo("Watching %s for changes (Ctrl+C to stop)", path)
	return watchFile(ctx, path, watchDebounce, c.Logger, func(ctx context.Context) error {
		return c.runCipher(ctx, path, opts)
	})
}

// promptEncode asks whether to transcode and render, and asks for every
// render setting the flags left open.
func (c *CLI) promptEncode(opts cipherOpts, render config.Render) (pipeline.Options, error) {
	var popts pipeline.Options

	ok, err := c.Prompt.Confirm("Transcode the cipher to ternary?")
	if err != nil || !ok {
		return popts, err
	}
	popts.Ternary = true

	if ok, err = c.Prompt.Confirm("Disguise it as a grid image?"); err != nil || !ok {
		return popts, err
	}
	popts.Render = true

	questions := []struct {
		flag  string
		title string
		value *string
	}{
		{opts.render.output, "Output path:", &render.OutputPath},
		{opts.render.colors, "Trit colors:", &render.ColorMap},
		{opts.render.marker, "Marker image (empty for built-in):", &render.MarkerPath},
		{opts.render.background, "Background color:", &render.Background},
		{opts.render.backgroundImage, "Background image (empty for none):", &render.BackgroundPath},
	}
	for _, q := range questions {
		if q.flag != "" {
			continue
		}
		answer, err := c.Prompt.Input(q.title, *q.value)
		if err != nil {
			return popts, err
		}
		*q.value = answer
	}

	popts.Grid, err = gridOptions(render, c.Logger)
	return popts, err
}
