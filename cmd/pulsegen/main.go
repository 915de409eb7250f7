// Command pulsegen loads a YAML schedule document and compiles it into
// one WAV file per channel.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	pulsegen "github.com/cbegin/pulsegen"
	"github.com/cbegin/pulsegen/config"
)

func main() {
	var (
		docPath   = pflag.StringP("file", "f", "", "path to a schedule YAML document (required)")
		outDir    = pflag.StringP("out", "o", ".", "directory to write per-channel WAV files into")
		allowOver = pflag.Bool("allow-oversize", false, "allow Absolute children to overflow their container")
	)
	pflag.Parse()

	if *docPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pulsegen -f schedule.yaml [-o outdir]")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	doc, err := config.Load(*docPath)
	if err != nil {
		log.Fatal(err)
	}
	channels, err := doc.ChannelConfigs()
	if err != nil {
		log.Fatal(err)
	}
	shapes, err := doc.Shapes()
	if err != nil {
		log.Fatal(err)
	}
	root, err := doc.Build()
	if err != nil {
		log.Fatal(err)
	}

	opts := pulsegen.Options{AllowOversize: *allowOver}
	if doc.Crosstalk != nil {
		opts.Crosstalk = &pulsegen.Crosstalk{Channels: doc.Crosstalk.Channels, Matrix: doc.Crosstalk.Matrix}
	}

	result, err := pulsegen.GenerateWaveforms(root, channels, shapes, opts)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}
	for name, cfg := range channels {
		rails := result.Waveforms[name]
		samples := interleaveFloat32(rails)
		wav := pulsegen.EncodeWAVFloat32LE(samples, int(cfg.SampleRate), len(rails))
		path := filepath.Join(*outDir, name+".wav")
		if err := os.WriteFile(path, wav, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s (%d samples, %d rail(s))\n", path, cfg.Length, len(rails))
	}
}

func interleaveFloat32(rails [][]float64) []float32 {
	if len(rails) == 0 {
		return nil
	}
	n := len(rails[0])
	out := make([]float32, n*len(rails))
	for i := 0; i < n; i++ {
		for r, rail := range rails {
			out[i*len(rails)+r] = float32(rail[i])
		}
	}
	return out
}
