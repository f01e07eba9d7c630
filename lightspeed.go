// This file is part of Lightspeed.
//
// Lightspeed is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Lightspeed is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Lightspeed.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/jetsetilly/lightspeed/comparison"
	"github.com/jetsetilly/lightspeed/convert"
	"github.com/jetsetilly/lightspeed/curated"
	"github.com/jetsetilly/lightspeed/decoder"
	"github.com/jetsetilly/lightspeed/encoder"
	"github.com/jetsetilly/lightspeed/hardware/paula"
	"github.com/jetsetilly/lightspeed/logger"
	"github.com/jetsetilly/lightspeed/modalflag"
	"github.com/jetsetilly/lightspeed/paths"
	"github.com/jetsetilly/lightspeed/performance"
	"github.com/jetsetilly/lightspeed/performance/limiter"
	"github.com/jetsetilly/lightspeed/playback"
	"github.com/jetsetilly/lightspeed/prefs"
	"github.com/jetsetilly/lightspeed/statsview"
	"github.com/jetsetilly/lightspeed/tracker"
	"github.com/jetsetilly/lightspeed/version"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Stdout, os.Args[1:])
	stop()
	os.Exit(exitVal)
}

// launch runs the mode selected by the arguments and returns the exit value
// for the program.
func launch(ctx context.Context, output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("CONVERT", "PREVIEW", "VERIFY", "COMPARE", "PLAY", "BATCH", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "CONVERT":
		err = convertMode(ctx, md)
	case "PREVIEW":
		err = previewMode(md)
	case "VERIFY":
		err = verifyMode(ctx, md)
	case "COMPARE":
		err = compareMode(md)
	case "PLAY":
		err = playMode(ctx, md)
	case "BATCH":
		err = batchMode(ctx, md)
	case "PERFORMANCE":
		err = performanceMode(md)
	case "VERSION":
		err = versionMode(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		if !echoing {
			logger.Tail(output, 5)
		}
		return 20
	}

	return 0
}

// whether the log is being echoed to stdout
var echoing bool

// flags common to every mode
type common struct {
	log     *bool
	prefs   *string
	profile *string
}

func addCommon(md *modalflag.Modes) common {
	return common{
		log:     md.AddBool("log", false, "echo debugging log to stdout"),
		prefs:   md.AddString("prefs", "", "preferences for this run. eg. \"convert.shrink::true; batch.jobs::4\""),
		profile: md.AddString("profile", "none", "run through the profiler: CPU, MEM, ALL (comma separated)"),
	}
}

// apply the common flags after the mode has been parsed
func (c common) apply(md *modalflag.Modes) (performance.Profile, error) {
	echoing = *c.log
	if echoing {
		logger.SetEcho(logger.NewColorizer(os.Stdout), false)
	} else {
		logger.SetEcho(nil, false)
	}
	if *c.prefs != "" {
		prefs.PushCommandLineStack(*c.prefs)
	}
	return performance.ParseProfile(*c.profile)
}

// the flags of the original converter
type conversionFlags struct {
	insane        *bool
	getpos        *bool
	setpos        *bool
	shrink        *bool
	nosampleoptim *bool
	verbose       *bool
	pcpreview     *bool
	nosettempo    *bool
	amigapreview  *bool
	pack          *bool
	micro         *bool
	framemax      *int
}

func addConversionFlags(md *modalflag.Modes) conversionFlags {
	return conversionFlags{
		insane:        md.AddBool("insane", false, "generate insane mode fast replayer source code"),
		getpos:        md.AddBool("getpos", false, "enable LSP_MusicGetPos function use"),
		setpos:        md.AddBool("setpos", false, "enable LSP_MusicSetPos function use"),
		shrink:        md.AddBool("shrink", false, "shrink any non used sample data if possible"),
		nosampleoptim: md.AddBool("nosampleoptim", false, "preserve original MOD sound bank layout"),
		verbose:       md.AddBool("v", false, "verbose"),
		pcpreview:     md.AddBool("debugpcpreview", false, "write the sequencer mix to a wav file"),
		nosettempo:    md.AddBool("nosettempo", false, "remove $Fxx>$20 SetTempo support (for very old MODs)"),
		amigapreview:  md.AddBool("amigapreview", false, "generate a wav from LSP data (output of simulated LSP Amiga player)"),
		pack:          md.AddBool("pack", false, "display packing estimation size (.lsmusic file only)"),
		micro:         md.AddBool("micro", false, "produce larger but highly compressible .lsmusic file (needs micro replayer)"),
		framemax:      md.AddInt("framemax", 0, "maximum number of frames (0 for 30 minutes at 100Hz)"),
	}
}

// params returns the conversion parameters for the file. the preferences are
// used for the defaults and any flag set on the command line overrides them
func (f conversionFlags) params(md *modalflag.Modes, pr *convert.Preferences, filename string) convert.Params {
	p := pr.Params(filename)
	p.Insane = *f.insane
	p.GetPos = *f.getpos
	p.SetPos = *f.setpos
	p.PCPreview = *f.pcpreview
	p.Micro = *f.micro
	p.FrameMax = *f.framemax

	md.Visit(func(flag string) {
		switch flag {
		case "shrink":
			p.Shrink = *f.shrink
		case "nosampleoptim":
			p.KeepLayout = *f.nosampleoptim
			if p.KeepLayout {
				logger.Log(logger.Allow, "lightspeed", "keep original MOD sound bank layout")
			}
		case "v":
			p.Verbose = *f.verbose
		case "nosettempo":
			p.NoSetTempo = *f.nosettempo
		case "amigapreview":
			p.AmigaPreview = *f.amigapreview
		case "pack":
			p.Pack = *f.pack
		}
	})

	return p
}

func preferences() (*convert.Preferences, error) {
	pr, err := convert.NewPreferences()
	if err != nil {
		return nil, err
	}
	if prefs.SizeCommandLineStack() > 0 {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "lightspeed", "unused preferences: %s", unused)
		}
	}
	return pr, nil
}

func convertMode(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	com := addCommon(md)
	flags := addConversionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	profile, err := com.apply(md)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("MOD file required for %s mode", md)
	case 1:
		pr, err := preferences()
		if err != nil {
			return err
		}

		fmt.Fprintln(md.Output, version.Banner())

		params := flags.params(md, pr, md.GetArg(0))
		tag := paths.UniqueFilename("convert", params.Filename)
		return performance.RunProfiler(profile, tag, func() error {
			_, err := convert.Run(ctx, params, md.Output)
			return err
		})
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func previewMode(md *modalflag.Modes) error {
	md.NewMode()

	com := addCommon(md)
	wav := md.AddString("wav", "", "wav file to write (default is the score name with _amiga.wav)")
	verbose := md.AddBool("v", false, "log every decoded frame")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if _, err := com.apply(md); err != nil {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("score and sample bank required for %s mode", md)
	}

	score := md.GetArg(0)
	bank := md.GetArg(1)

	fn := *wav
	if fn == "" {
		fn = strings.TrimSuffix(score, filepath.Ext(score))
		fn = strings.TrimSuffix(fn, "_micro") + "_amiga.wav"
	}

	res, err := convert.Preview(score, bank, fn, *verbose)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%s: %d frames\n", fn, res.Frames)
	fmt.Fprintf(md.Output, "digest: %s\n", res.Digest)
	return nil
}

func verifyMode(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	com := addCommon(md)
	flags := addConversionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if _, err := com.apply(md); err != nil {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("MOD file required for %s mode", md)
	}

	pr, err := preferences()
	if err != nil {
		return err
	}

	var failed int
	for _, fn := range md.RemainingArgs() {
		params := flags.params(md, pr, fn)

		// verification writes no files
		params.Insane = false
		params.PCPreview = false
		params.AmigaPreview = false
		params.Pack = false

		if _, err := convert.Verify(ctx, params, md.Output); err != nil {
			if !curated.Is(err, convert.VerifyFailed) {
				fmt.Fprintf(md.Output, "* %s: %v\n", fn, err)
			}
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed verification", failed, len(md.RemainingArgs()))
	}
	return nil
}

func compareMode(md *modalflag.Modes) error {
	md.NewMode()

	com := addCommon(md)
	block := md.AddInt("block", 4800, "number of stereo samples in a comparison block")
	tolerance := md.AddInt("tolerance", 0, "largest sample difference treated as equal")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if _, err := com.apply(md); err != nil {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("two wav files required for %s mode", md)
	}

	a, err := comparison.Load(md.GetArg(0))
	if err != nil {
		return err
	}
	b, err := comparison.Load(md.GetArg(1))
	if err != nil {
		return err
	}

	cmp, err := comparison.NewComparison(a, b)
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output, a)
	fmt.Fprintln(md.Output, b)

	res := cmp.Compare(*block, *tolerance)
	fmt.Fprintln(md.Output, res)
	if !res.Identical() {
		return fmt.Errorf("recordings differ")
	}
	return nil
}

func playMode(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	com := addCommon(md)
	loop := md.AddBool("loop", false, "loop the music")
	list := md.AddBool("listing", !playback.Available(), "show the decoded frames as the music plays")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if _, err := com.apply(md); err != nil {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("score and sample bank required for %s mode", md)
	}

	score, err := os.ReadFile(md.GetArg(0))
	if err != nil {
		return err
	}
	bank, err := os.ReadFile(md.GetArg(1))
	if err != nil {
		return err
	}

	sc, err := decoder.Load(score, bank)
	if err != nil {
		return err
	}
	sc.Log(logger.Allow)

	g, ctx := errgroup.WithContext(ctx)

	if playback.Available() {
		pl := paula.NewPaula(encoder.HostRate)
		dec, err := decoder.NewDecoder(sc, pl)
		if err != nil {
			return err
		}
		dec.SetLooping(*loop)

		g.Go(func() error {
			return playback.Play(ctx, playback.NewStream(dec, pl), encoder.HostRate)
		})
	}

	if *list {
		g.Go(func() error {
			return listing(ctx, sc, *loop, md.Output)
		})
	}

	return g.Wait()
}

// listing prints the decoded frames of the score at the speed the music
// plays
func listing(ctx context.Context, sc *decoder.Score, loop bool, output io.Writer) error {
	tr := tracker.NewTracker(1)
	pl := paula.NewPaula(encoder.HostRate)
	pl.SetTracker(tr)

	dec, err := decoder.NewDecoder(sc, pl)
	if err != nil {
		return err
	}
	dec.SetTracker(tr)
	dec.SetLooping(loop)

	lim := limiter.NewLimiter(float64(dec.BPM()) * 2 / 5)
	defer lim.Stop()

	for {
		if _, err := dec.Step(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		for _, e := range tr.Copy() {
			fmt.Fprintln(output, e)
		}

		lim.SetRate(float64(dec.BPM()) * 2 / 5)

		select {
		case <-ctx.Done():
			return nil
		default:
			lim.Wait()
		}
	}
}

func batchMode(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	com := addCommon(md)
	flags := addConversionFlags(md)
	jobs := md.AddInt("j", 0, "number of concurrent conversions (0 for the preferred value)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsviewAvailability()))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	profile, err := com.apply(md)
	if err != nil {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("MOD files required for %s mode", md)
	}

	pr, err := preferences()
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(ctx, md.Output)
	}

	n := *jobs
	if n == 0 {
		n = pr.Jobs.Value()
	}

	params := flags.params(md, pr, "")

	var outcomes []convert.Outcome
	err = performance.RunProfiler(profile, paths.UniqueFilename("batch", ""), func() error {
		var err error
		outcomes, err = convert.Batch(ctx, md.RemainingArgs(), params, n, md.Output)
		return err
	})
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		if o.Err != nil {
			return fmt.Errorf("not every file was converted")
		}
	}
	return nil
}

func statsviewAvailability() string {
	if statsview.Available() {
		return "available"
	}
	return "not available in this build"
}

func performanceMode(md *modalflag.Modes) error {
	md.NewMode()

	com := addCommon(md)
	duration := md.AddDuration("duration", 5*time.Second, "run duration")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	profile, err := com.apply(md)
	if err != nil {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("score and sample bank required for %s mode", md)
	}

	score, err := os.ReadFile(md.GetArg(0))
	if err != nil {
		return err
	}
	bank, err := os.ReadFile(md.GetArg(1))
	if err != nil {
		return err
	}

	_, err = performance.Check(md.Output, profile, score, bank, *duration)
	return err
}

func versionMode(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v)
	fmt.Fprintf(md.Output, "LSP format v%s\n", version.Format())
	if *revision {
		fmt.Fprintln(md.Output, r)
	}
	return nil
}
