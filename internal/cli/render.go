package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cipherwen/pkg/colorspec"
	"github.com/matzehuels/cipherwen/pkg/config"
	"github.com/matzehuels/cipherwen/pkg/grid"
	"github.com/matzehuels/cipherwen/pkg/ternary"
)

// renderFlags holds the image flags shared by cipher and render. Empty
// values keep the config file's setting.
type renderFlags struct {
	output          string // output image path or directory
	colors          string // trit color map, e.g. "0=#000000,1=(128,128,128),2=#fff"
	marker          string // corner marker image
	background      string // canvas background color
	backgroundImage string // full-bleed background image
}

// register adds the render flags to cmd.
func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output image path or directory (default from config)")
	cmd.Flags().StringVar(&f.colors, "colors", "", `trit colors, e.g. "0=#000000,1=#808080,2=#ffffff"`)
	cmd.Flags().StringVar(&f.marker, "marker", "", "corner marker image (default built-in finder pattern)")
	cmd.Flags().StringVar(&f.background, "background", "", `background color, e.g. "255,255,255" or "#ffffff"`)
	cmd.Flags().StringVar(&f.backgroundImage, "background-image", "", "background image, resized to the canvas")
}

// apply overlays the set flags on r.
func (f renderFlags) apply(r config.Render) config.Render {
	if f.output != "" {
		r.OutputPath = f.output
	}
	if f.colors != "" {
		r.ColorMap = f.colors
	}
	if f.marker != "" {
		r.MarkerPath = f.marker
	}
	if f.background != "" {
		r.Background = f.background
	}
	if f.backgroundImage != "" {
		r.BackgroundPath = f.backgroundImage
	}
	return r
}

// gridOptions converts r into grid options. An unusable background color is
// reported and replaced by white; any other bad value is an error.
func gridOptions(r config.Render, logger *log.Logger) (grid.Options, error) {
	if r.Background != "" {
		if _, err := colorspec.ParseRGB(r.Background); err != nil {
			logger.Warn("invalid background color, using white", "background", r.Background, "err", err)
			r.Background = colorspec.FormatRGB(grid.White)
		}
	}
	return r.Options()
}

// renderOpts holds the flags for the render command.
type renderOpts struct {
	configPath string
	flags      renderFlags
}

// renderCommand creates the render command for painting a ternary string.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <ternary>",
		Short: "Paint a ternary string as a grid image",
		Long: `Render paints each trit as one cell of a square grid, frames it with three
corner markers and saves the image. The extension of --output selects the
format (.png, .jpg, .gif); anything else gets .png appended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/cipherwen/config.toml)")
	opts.flags.register(cmd)

	return cmd
}

// runRender validates t and writes its grid image.
func (c *CLI) runRender(ctx context.Context, t string, opts renderOpts) error {
	if err := ternary.Validate(t); err != nil {
		return err
	}

	cfg, err := c.loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gopts, err := gridOptions(opts.flags.apply(cfg.Render), c.Logger)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering grid...")
	spinner.Start()

	path, err := grid.Render(ctx, t, gopts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	l := grid.NewLayout(len(t))
	printSuccess("Rendered %d trits on a %d×%d grid", l.Cells, l.Side, l.Side)
	printKeyValue("Preview", swatches(t, gopts))
	printFile(path)
	return nil
}
