// Package player drives FluidSynth as a subprocess to audition a
// rendered MIDI file, the teacher's exec.Command-based synth driving
// kept verbatim in spirit; the live-performance TUI sync the teacher
// built on top of it does not apply to a finished, non-streaming
// rendering and is not carried over.
package player

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// localSoundFontPatterns are glob patterns checked before any system
// location, regardless of whether the caller wants one path or all of them.
var localSoundFontPatterns = []string{"./soundfonts/*.sf2", "./soundfonts/*.SF2"}

// wellKnownSoundFonts are the fixed system paths most distro soundfont
// packages install to, checked in this order before the broader system glob
// patterns below.
var wellKnownSoundFonts = []string{
	"/usr/share/sounds/sf2/FluidR3_GM.sf2",
	"/usr/share/sounds/sf2/default.sf2",
	"/usr/share/soundfonts/FluidR3_GM.sf2",
	"/usr/share/soundfonts/default.sf2",
	"/usr/share/soundfonts/default-GM.sf2",
	"/usr/share/sounds/sf2/TimGM6mb.sf2",
}

// systemSoundFontPatterns are the broad system glob patterns checked last.
var systemSoundFontPatterns = []string{"/usr/share/sounds/sf2/*.sf2", "/usr/share/soundfonts/*.sf2"}

// Play runs FluidSynth against midiFile to completion, blocking until
// playback finishes.
func Play(midiFile, customSoundFont string) error {
	if _, err := exec.LookPath("fluidsynth"); err != nil {
		return fmt.Errorf("fluidsynth not found: please install with 'sudo apt install fluidsynth'")
	}

	soundFont, err := findSoundFont(customSoundFont)
	if err != nil {
		return err
	}
	fmt.Printf("Using SoundFont: %s\n", soundFont)

	cmd := exec.Command("fluidsynth",
		"-ni",
		"-r", "48000",
		"-g", "1.0",
		soundFont,
		midiFile,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("fluidsynth error: %w", err)
	}
	return nil
}

// ListSoundFonts returns all available soundfonts on the system.
func ListSoundFonts() []string {
	var found []string

	for _, pattern := range localSoundFontPatterns {
		if matches, err := filepath.Glob(pattern); err == nil {
			found = append(found, matches...)
		}
	}

	for _, loc := range wellKnownSoundFonts {
		if _, err := os.Stat(loc); err == nil {
			found = append(found, loc)
		}
	}

	for _, pattern := range systemSoundFontPatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			dup := false
			for _, f := range found {
				if f == m {
					dup = true
					break
				}
			}
			if !dup {
				found = append(found, m)
			}
		}
	}

	return found
}

// findSoundFont locates a SoundFont file on the system, preferring a
// caller-specified path, then project-local, then well-known system
// locations.
func findSoundFont(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("soundfont not found: %s", customPath)
	}

	for _, pattern := range localSoundFontPatterns {
		if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}

	home, _ := os.UserHomeDir()
	userLocations := []string{
		filepath.Join(home, ".local/share/soundfonts"),
		filepath.Join(home, "soundfonts"),
	}
	for _, dir := range userLocations {
		if matches, err := filepath.Glob(filepath.Join(dir, "*.sf2")); err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}

	for _, loc := range wellKnownSoundFonts {
		if _, err := os.Stat(loc); err == nil {
			return loc, nil
		}
	}

	for _, pattern := range systemSoundFontPatterns {
		if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}

	return "", fmt.Errorf("no SoundFont (.sf2) file found. Please install fluid-soundfont-gm:\n" +
		"  sudo apt install fluid-soundfont-gm\n\n" +
		"Or place custom .sf2 files in ./soundfonts/ directory\n" +
		"Or specify with --soundfont flag")
}
