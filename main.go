package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"harmonium/display"
	"harmonium/fd"
	"harmonium/midi"
	"harmonium/parser"
	"harmonium/piece"
	"harmonium/player"
	"harmonium/solution"
	"harmonium/strudel"
	"harmonium/theory"
)

// Global soundfont path (can be set via --soundfont flag)
var soundFontPath string

func main() {
	args := parseArgs(os.Args[1:])

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]

	switch command {
	case "generate":
		if len(args) < 2 {
			fmt.Println("Error: generate requires a piece file")
			printUsage()
			os.Exit(1)
		}
		generatePiece(args[1])
	case "export":
		if len(args) < 2 {
			fmt.Println("Error: export requires a piece file")
			printUsage()
			os.Exit(1)
		}
		outputPath := ""
		if len(args) >= 3 {
			outputPath = args[2]
		}
		exportPiece(args[1], outputPath)
	case "strudel":
		if len(args) < 2 {
			fmt.Println("Error: strudel requires a piece file")
			printUsage()
			os.Exit(1)
		}
		outputPath := ""
		if len(args) >= 3 {
			outputPath = args[2]
		}
		exportStrudel(args[1], outputPath)
	case "browse":
		if len(args) < 2 {
			fmt.Println("Error: browse requires a piece file")
			printUsage()
			os.Exit(1)
		}
		browsePiece(args[1])
	case "play":
		if len(args) < 2 {
			fmt.Println("Error: play requires a piece file")
			printUsage()
			os.Exit(1)
		}
		playPiece(args[1])
	case "soundfonts":
		listSoundFonts()
	default:
		printUsage()
		os.Exit(1)
	}
}

// parseArgs extracts flags and returns remaining args
func parseArgs(args []string) []string {
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--soundfont" || arg == "-sf" {
			if i+1 < len(args) {
				soundFontPath = args[i+1]
				i++ // Skip next arg
			} else {
				fmt.Println("Error: --soundfont requires a path")
				os.Exit(1)
			}
		} else if strings.HasPrefix(arg, "--soundfont=") {
			soundFontPath = strings.TrimPrefix(arg, "--soundfont=")
		} else if strings.HasPrefix(arg, "-sf=") {
			soundFontPath = strings.TrimPrefix(arg, "-sf=")
		} else if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		} else {
			remaining = append(remaining, arg)
		}
	}

	if soundFontPath == "" {
		soundFontPath = os.Getenv("SOUNDFONT")
	}

	return remaining
}

// buildPiece parses a piece file and solves it, exiting the process on
// any error along the way.
func buildPiece(filename string) *solution.Piece {
	req, err := parser.LoadPieceRequest(filename)
	if err != nil {
		fmt.Printf("Error loading piece: %v\n", err)
		os.Exit(1)
	}

	pieceReq := piece.Request{
		Length: req.Length,
		Seed:   req.Seed,
	}
	if req.TimeoutSecs > 0 {
		pieceReq.Timeout = time.Duration(req.TimeoutSecs) * time.Second
	}

	for _, sec := range req.Sections {
		pieceReq.Sections = append(pieceReq.Sections, piece.SectionRequest{
			Tonality:            theory.Parse(sec.Key),
			MinChromaticPercent: sec.MinChromaticPct,
			MaxChromaticPercent: sec.MaxChromaticPct,
			MinSeventhPercent:   sec.MinSeventhPct,
			MaxSeventhPercent:   sec.MaxSeventhPct,
		})
	}

	for _, m := range req.Modulations {
		kind, err := parser.ModulationKindByName(m.Kind)
		if err != nil {
			fmt.Printf("Error in piece file: %v\n", err)
			os.Exit(1)
		}
		pieceReq.Modulations = append(pieceReq.Modulations, piece.ModulationRequest{
			Kind:  kind,
			Start: m.Start,
			End:   m.End,
		})
	}

	p, err := piece.New(pieceReq)
	if err != nil {
		fmt.Printf("Error building piece: %v\n", err)
		os.Exit(1)
	}

	sol, status := p.Solve()
	if status != fd.Solved {
		fmt.Println("Error: no admissible progression found for this piece")
		os.Exit(1)
	}

	return sol
}

func generatePiece(filename string) {
	sol := buildPiece(filename)
	display.Show(sol)
}

func exportPiece(filename, outputPath string) {
	sol := buildPiece(filename)
	display.Show(sol)

	tmpFile, err := midi.RenderSolution(sol, 120)
	if err != nil {
		fmt.Printf("Error generating MIDI: %v\n", err)
		os.Exit(1)
	}

	if outputPath == "" {
		base := filepath.Base(filename)
		ext := filepath.Ext(base)
		outputPath = strings.TrimSuffix(base, ext) + ".mid"
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		fmt.Printf("Error reading MIDI: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Printf("Error writing MIDI: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✓ Exported to: %s\n", outputPath)
}

func exportStrudel(filename, outputPath string) {
	sol := buildPiece(filename)
	display.Show(sol)

	code := strudel.Generate(sol, 120)

	if outputPath == "" {
		base := filepath.Base(filename)
		ext := filepath.Ext(base)
		outputPath = strings.TrimSuffix(base, ext) + ".strudel.js"
	}

	if err := os.WriteFile(outputPath, []byte(code), 0644); err != nil {
		fmt.Printf("Error writing Strudel file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✓ Exported to: %s\n", outputPath)
	fmt.Println("\nPaste the code into https://strudel.cc to play!")
}

func browsePiece(filename string) {
	sol := buildPiece(filename)
	if err := display.Browse(sol); err != nil {
		fmt.Printf("Error browsing: %v\n", err)
		os.Exit(1)
	}
}

func playPiece(filename string) {
	sol := buildPiece(filename)
	display.Show(sol)

	midiFile, err := midi.RenderSolution(sol, 120)
	if err != nil {
		fmt.Printf("Error generating MIDI: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("♪ Playing...")
	if err := player.Play(midiFile, soundFontPath); err != nil {
		fmt.Printf("Error playing: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n✓ Playback complete!")
}

func listSoundFonts() {
	fmt.Println("Available SoundFonts:")
	fmt.Println()

	found := player.ListSoundFonts()

	if len(found) == 0 {
		fmt.Println("  No SoundFonts found!")
		fmt.Println()
		fmt.Println("Install the default SoundFont:")
		fmt.Println("  sudo apt install fluid-soundfont-gm")
		fmt.Println()
		fmt.Println("Place .sf2 files in ./soundfonts/ or specify with --soundfont flag")
	} else {
		for _, sf := range found {
			fmt.Printf("  %s\n", sf)
		}
		fmt.Println()
		fmt.Println("Use with: ./harmonium play --soundfont <path> <file.yaml>")
	}
}

func printUsage() {
	fmt.Println("Harmonium v0.1")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  harmonium generate <file.yaml>          Solve and print a progression")
	fmt.Println("  harmonium export <file.yaml> [out.mid]   Solve and export to MIDI")
	fmt.Println("  harmonium strudel <file.yaml> [out.js]   Solve and export to Strudel code")
	fmt.Println("  harmonium browse <file.yaml>              Step through a solved piece")
	fmt.Println("  harmonium play <file.yaml>                 Solve and audition via FluidSynth")
	fmt.Println("  harmonium soundfonts                       List available SoundFonts")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --soundfont, -sf <path>   Use custom SoundFont (.sf2 file)")
	fmt.Println("  --help, -h                Show this help")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  SOUNDFONT                 Default SoundFont path")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  harmonium generate examples/modulating.yaml")
	fmt.Println("  harmonium export examples/modulating.yaml out.mid")
	fmt.Println("  harmonium browse examples/modulating.yaml")
}
