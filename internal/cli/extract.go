package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/img2color/internal/colour"
	"github.com/jmylchreest/img2color/internal/image"
	"github.com/jmylchreest/img2color/internal/naming"
	"github.com/jmylchreest/img2color/internal/node"
)

// Output formats.
const (
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatLines = "lines"
)

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract and name the colour palette of an image",
		Long: `Extract the dominant colours of an image and name each one.

Use "-" as the image path to read from standard input.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 5 colours (default) and show every naming system
  img2color extract wallpaper.jpg

  # Extract 8 colours, naming them with CSS3 and XKCD only
  img2color extract -c 8 --taxonomies css3,xkcd wallpaper.png

  # Describe the complementary palette
  img2color extract --complementary photo.jpg

  # Print the comma separated lists, leaving out greys
  img2color extract --format lines --exclude gray,grey photo.jpg

  # Fail instead of skipping naming systems that cannot be loaded
  img2color extract --on-missing abort --format json photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntP("colours", "c", colour.DefaultColourCount, "number of colours to extract (at least 1)")
	flags.Bool("complementary", false, "name the complement of each extracted colour")
	flags.StringSliceP("taxonomies", "t", nil, "naming systems to use (default: all)")
	flags.StringP("algorithm", "a", string(colour.AlgorithmKMeans), "extraction algorithm (kmeans, prominent, clusters)")
	flags.Int("accuracy", colour.DefaultAccuracy, "clustering accuracy (1-100), more is slower")
	flags.Float64("convergence", colour.DefaultConvergence, "stop kmeans once no centroid moves further than this (RGB units)")
	flags.Uint64("seed", colour.DefaultSeed, "random seed for kmeans initialisation (ignored by prominent and clusters)")
	flags.StringSlice("exclude", nil, "colour names to leave out of the joined lists")
	flags.String("on-missing", string(node.MissingExclude), "when a naming system cannot be loaded (exclude, abort)")
	flags.StringP("format", "f", formatText, "output format (text, json, yaml, lines)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("preview", "auto", "show colour swatches in text output (auto, always, never)")
	a.bindFlags(flags)

	return cmd
}

// nodeConfig builds the node configuration from flags, environment and
// config file.
func (a *app) nodeConfig() (node.Config, error) {
	policy, err := node.ParseMissingPolicy(a.v.GetString("on-missing"))
	if err != nil {
		return node.Config{}, err
	}

	return node.Config{
		Colours:       a.v.GetInt("colours"),
		Complementary: a.v.GetBool("complementary"),
		Taxonomies:    naming.ParseIDs(strings.Join(a.v.GetStringSlice("taxonomies"), ",")),
		Algorithm:     colour.Algorithm(strings.ToLower(a.v.GetString("algorithm"))),
		Accuracy:      a.v.GetInt("accuracy"),
		Convergence:   a.v.GetFloat64("convergence"),
		Seed:          a.v.GetUint64("seed"),
		Exclude:       node.ParseExclude(strings.Join(a.v.GetStringSlice("exclude"), ",")),
		OnMissing:     policy,
	}, nil
}

func (a *app) runExtract(cmd *cobra.Command, imagePath string) error {
	format := strings.ToLower(a.v.GetString("format"))
	switch format {
	case formatText, formatJSON, formatYAML, formatLines:
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, yaml, lines)", format)
	}

	cfg, err := a.nodeConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	registry, err := a.registry()
	if err != nil {
		return err
	}

	a.logger.Debug("loading image", "path", imagePath)
	loader := image.NewFileLoader()
	loader.Stdin = cmd.InOrStdin()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	a.logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	n := node.New(node.WithRegistry(registry), node.WithLogger(a.logger.Named("node")))
	result, err := n.RunImage(cmd.Context(), img, cfg)
	if err != nil {
		return node.AsError(err)
	}

	outputPath := a.v.GetString("output")
	var output string
	switch format {
	case formatJSON:
		raw, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		output = string(raw) + "\n"
	case formatYAML:
		raw, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to convert to YAML: %w", err)
		}
		output = string(raw)
	case formatLines:
		output = formatOutputs(result.Outputs())
	default:
		preview, err := wantPreview(a.v.GetString("preview"), outputPath)
		if err != nil {
			return err
		}
		output = formatTable(result, registry, preview)
	}

	if outputPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	}

	a.logger.Debug("writing output", "path", outputPath)
	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil { // #nosec G306 - palette output is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// wantPreview resolves the preview mode. Auto shows swatches only when
// writing to a terminal.
func wantPreview(mode, outputPath string) (bool, error) {
	switch strings.ToLower(mode) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return outputPath == "" && term.IsTerminal(int(os.Stdout.Fd())), nil
	default:
		return false, fmt.Errorf("invalid preview mode: %s (valid: auto, always, never)", mode)
	}
}

// formatOutputs prints one labelled line per joined output.
func formatOutputs(out node.Outputs) string {
	var b strings.Builder
	for i, value := range out.Strings() {
		fmt.Fprintf(&b, "%s: %s\n", node.OutputLabels[i], value)
	}
	return b.String()
}

// formatTable renders one row per colour and one column per resolved
// taxonomy, followed by any taxonomies that were skipped. Complementary
// results also show the extracted colour each row was derived from.
func formatTable(result *node.Result, registry *naming.Registry, preview bool) string {
	var ids []naming.ID
	for _, id := range registry.IDs() {
		if len(result.Colours) > 0 {
			if _, ok := result.Colours[0].Names[id]; ok {
				ids = append(ids, id)
			}
		}
	}

	headers := []string{"Hex", "RGB", "Share"}
	if result.Complementary {
		headers = append(headers, "Original")
	}
	for _, id := range ids {
		headers = append(headers, taxonomyTitle(registry, id))
	}

	table := NewTable(headers)
	for _, c := range result.Colours {
		hex, original := c.Hex, c.Original.Hex()
		if preview {
			hex = colour.ColourPreviewWithText(c.RGB, c.Hex, len(c.Hex)+2)
			original = colour.FormatColourWithPreview(c.Original, 2)
		}

		row := []string{hex, c.RGB.Tuple(), strconv.FormatFloat(c.Fraction*100, 'f', 1, 64) + "%"}
		if result.Complementary {
			row = append(row, original)
		}
		for _, id := range ids {
			m := c.Names[id]
			cell := m.Name
			if m.Category != "" {
				cell += " (" + m.Category + ")"
			}
			row = append(row, cell)
		}
		table.AddRow(row)
	}

	var b strings.Builder
	b.WriteString(table.Render())
	for _, m := range result.Missing {
		fmt.Fprintf(&b, "skipped %s: %s\n", m.ID, m.Reason)
	}
	return b.String()
}

func taxonomyTitle(registry *naming.Registry, id naming.ID) string {
	if tax, err := registry.Taxonomy(id); err == nil && tax.Name != "" {
		return tax.Name
	}
	return string(id)
}
