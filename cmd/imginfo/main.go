package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"imgbridge/pkg/bridge"
	"imgbridge/pkg/config"
	"imgbridge/pkg/legacy"
	"imgbridge/pkg/meta"
	"imgbridge/pkg/planestats"
)

func main() {
	// Parse command line arguments
	input := flag.String("input", "", "Image file to inspect")
	configPath := flag.String("config", "imgbridge.yaml", "Tool configuration file (YAML)")
	series := flag.Int("series", -1, "Series to read a plane from (-1: metadata only)")
	plane := flag.Int("plane", 0, "Plane index within the series")
	region := flag.String("region", "", "Region to read as x,y,width,height (default: full plane)")
	showStats := flag.Bool("stats", false, "Print sample statistics of the plane read")
	probeOnly := flag.Bool("probe", false, "Only report whether the file is recognized")
	flag.Parse()

	// Validate inputs
	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := []bridge.Option{
		bridge.WithExclusions(exclusions(cfg)),
	}
	if cfg.Output.Verbose {
		lggr, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to build logger: %v", err)
		}
		defer lggr.Sync()
		opts = append(opts, bridge.WithLogger(lggr.Sugar()))
	}
	format := bridge.New(opts...)

	fmt.Printf("%s\n", format.Name())
	fmt.Printf("Recognized suffixes: %s\n\n", strings.Join(format.Suffixes(), ", "))

	if *probeOnly {
		if format.IsFormat(*input, true) {
			fmt.Printf("%s: recognized\n", *input)
			return
		}
		fmt.Printf("%s: not recognized\n", *input)
		os.Exit(1)
	}

	md, err := format.Parse(*input)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", *input, err)
	}
	defer md.Close()

	fmt.Printf("Source: %s\n", *input)
	fmt.Printf("Format: %s\n", md.Reader().FormatName())
	fmt.Printf("Series count: %d\n", len(md.Images))

	for s, img := range md.Images {
		fmt.Printf("\nSeries %d:\n", s)

		axes := make([]string, len(img.Axes))
		for i, a := range img.Axes {
			axes[i] = fmt.Sprintf("%s(%d)", a.Type, a.Length)
		}
		fmt.Printf("  Shape: %s\n", strings.Join(axes, " x "))
		fmt.Printf("  Pixel type: %s (%d significant bits)\n", img.PixelType, img.BitsPerPixel)
		fmt.Printf("  Planes: %d\n", img.PlaneCount)
		fmt.Printf("  RGB: %v  Interleaved: %v  Indexed: %v  Little-endian: %v\n",
			img.RGB, img.Interleaved, img.Indexed, img.LittleEndian)

		if cfg.Output.ShowTable && len(img.Table) > 0 {
			keys := make([]string, 0, len(img.Table))
			for k := range img.Table {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Printf("  Metadata:\n")
			for _, k := range keys {
				fmt.Printf("    %s = %v\n", k, img.Table[k])
			}
		}
	}

	// Read one plane if requested
	if *series < 0 {
		return
	}
	if *series >= len(md.Images) {
		log.Fatalf("Series %d out of range (source has %d)", *series, len(md.Images))
	}

	img := md.Images[*series]
	req := bridge.PlaneRequest{Series: *series, Plane: *plane}
	req.Region, err = parseRegion(*region, img)
	if err != nil {
		log.Fatalf("Bad region: %v", err)
	}

	channels := 1
	if img.Interleaved {
		channels = interleavedChannels(img.Axes)
	}
	dst := make([]byte, req.Region.Width*req.Region.Height*channels*img.PixelType.BytesPerSample())

	result, err := md.ReadPlane(req, dst)
	if err != nil {
		log.Fatalf("Failed to read plane: %v", err)
	}

	fmt.Printf("\nRead series %d plane %d region %dx%d+%d+%d (%d bytes)\n",
		req.Series, req.Plane, req.Region.Width, req.Region.Height,
		req.Region.X, req.Region.Y, len(result.Bytes))
	if result.ColorTable != nil {
		fmt.Printf("Color table: %d-bit, %d components of %d entries\n",
			result.ColorTable.Bits(), result.ColorTable.ComponentCount(), result.ColorTable.Length())
	}

	if *showStats || cfg.Output.ShowStats {
		stats, err := planestats.Summarize(result.Bytes, img.PixelType, img.LittleEndian)
		if err != nil {
			log.Fatalf("Failed to summarize plane: %v", err)
		}
		fmt.Printf("Samples: %d  Min: %g  Max: %g  Mean: %.3f  StdDev: %.3f\n",
			stats.Samples, stats.Min, stats.Max, stats.Mean, stats.StdDev)
	}
}

// exclusions merges the built-in native-format list with the config's
// additions and removals.
func exclusions(cfg *config.Config) []string {
	included := make(map[string]bool)
	for _, name := range cfg.Readers.IncludeNative {
		included[name] = true
	}
	var out []string
	for _, name := range bridge.NativeFormats {
		if !included[name] {
			out = append(out, name)
		}
	}
	return append(out, cfg.Readers.Exclude...)
}

// parseRegion parses "x,y,width,height"; an empty spec means the full
// plane of the given series.
func parseRegion(spec string, img meta.ImageMetadata) (legacy.Region, error) {
	if spec == "" {
		return legacy.Region{Width: axisLength(img, meta.AxisX), Height: axisLength(img, meta.AxisY)}, nil
	}
	var r legacy.Region
	if _, err := fmt.Sscanf(spec, "%d,%d,%d,%d", &r.X, &r.Y, &r.Width, &r.Height); err != nil {
		return legacy.Region{}, fmt.Errorf("expected x,y,width,height: %w", err)
	}
	return r, nil
}

func axisLength(img meta.ImageMetadata, t meta.AxisType) int {
	for _, a := range img.Axes {
		if a.Type == t {
			return a.Length
		}
	}
	return 0
}

// interleavedChannels returns the product of the channel axis lengths that
// precede the X axis; those are the sub-dimensions woven into each plane's
// byte layout.
func interleavedChannels(axes []meta.Axis) int {
	n := 1
	for _, a := range axes {
		if a.Type == meta.AxisX {
			break
		}
		n *= a.Length
	}
	return n
}
