package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ambitone/ambitone"
	"github.com/ambitone/ambitone/oto"
	"github.com/ambitone/ambitone/version"
)

func main() {
	outPath := flag.String("o", "", "Output file path. By default, derived from the scene file name, or ambient.wav when rendering the built-in scene.")
	rawOut := flag.Bool("r", false, "Output headerless raw samples instead of a .wav file.")
	floatOut := flag.Bool("f", false, "Write 32-bit float samples instead of 16-bit signed PCM.")
	play := flag.Bool("p", false, "Play the rendered tone after writing it.")
	duration := flag.Float64("d", 0, "Override the render duration, in seconds. The progression loops if it is shorter.")
	level := flag.Bool("level", false, "Print the peak and RMS levels of the render.")
	versionFlag := flag.Bool("v", false, "Print version.")
	help := flag.Bool("h", false, "Show help.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *outPath != "" && flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "-o can only be used with a single scene file")
		os.Exit(1)
	}
	process := func(filename string) error {
		cfg := ambitone.DefaultRenderConfig()
		prog := ambitone.DefaultProgression()
		if filename != "" {
			inputBytes, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("could not read file %v: %v", filename, err)
			}
			scene, err := ambitone.ParseScene(inputBytes)
			if err != nil {
				return fmt.Errorf("could not load scene %v: %v", filename, err)
			}
			cfg, prog = scene.Config, scene.Progression
		}
		if *duration > 0 {
			cfg.Duration = *duration
		}
		if *floatOut {
			cfg.BitDepth = 32
		}
		buffer, err := ambitone.Render(cfg, prog)
		if err != nil {
			return fmt.Errorf("render failed: %v", err)
		}
		target := *outPath
		if target == "" {
			name := "ambient"
			if filename != "" {
				_, name = filepath.Split(filename)
				name = strings.TrimSuffix(name, filepath.Ext(name))
			}
			extension := ".wav"
			if *rawOut {
				extension = ".raw"
			}
			target = name + extension
		}
		var data []byte
		if *rawOut {
			data, err = ambitone.Raw(buffer, cfg)
		} else {
			data, err = ambitone.Wav(buffer, cfg)
		}
		if err != nil {
			return fmt.Errorf("could not encode output: %v", err)
		}
		if err := ambitone.WriteFile(target, data); err != nil {
			return fmt.Errorf("could not write %v: %v", target, err)
		}
		if *level {
			fmt.Printf("%v: peak %.4f, rms %.4f\n", target, ambitone.Peak(buffer), ambitone.RMS(buffer))
		}
		if *play {
			if err := oto.Play(cfg, buffer); err != nil {
				return fmt.Errorf("could not play %v: %v", target, err)
			}
		}
		return nil
	}
	retval := 0
	if flag.NArg() == 0 {
		if err := process(""); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			retval = 1
		}
	}
	for _, param := range flag.Args() {
		if err := process(param); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Render an ambient chord progression to a .wav/.raw file.\nUsage: %s [flags] [scene.yml ...]\n", os.Args[0])
	flag.PrintDefaults()
}
