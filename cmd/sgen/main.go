// Command sgen renders synth programs to WAV, raw PCM or an audio device.
//
// Usage:
//
//	sgen [flags] program.yaml
//
// Examples:
//
//	sgen bell.yaml
//	sgen -o bell.wav -rate 48000 bell.yaml
//	sgen -raw -o - bell.yaml | aplay -f S16_LE -c 2 -r 44100
//	sgen -dither tpdf -shaping sharp bell.yaml
//	sgen -device oto bell.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/cwbudde/algo-synth/dsp/dither"
	"github.com/cwbudde/algo-synth/internal/sink"
	"github.com/cwbudde/algo-synth/stats/time"
	"github.com/cwbudde/algo-synth/synth/generator"
	"github.com/cwbudde/algo-synth/synth/program"
)

type options struct {
	out    string
	raw    bool
	device string
	rate   int
	block  int
	mono   bool
	amp    float64
	quiet  bool
	stats  bool
	dither string
	shape  string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o options
	fs.StringVar(&o.out, "o", "", "output path (default: program name with .wav or .raw; \"-\" for stdout)")
	fs.BoolVar(&o.raw, "raw", false, "write headerless little-endian 16-bit PCM instead of WAV")
	fs.StringVar(&o.device, "device", "", "play on an audio device instead of writing a file ("+devices()+")")
	fs.IntVar(&o.rate, "rate", 44100, "sample rate in Hz")
	fs.IntVar(&o.block, "block", 1024, "render block size in frames")
	fs.BoolVar(&o.mono, "mono", false, "render one channel instead of two")
	fs.Float64Var(&o.amp, "amp", 1, "output amplitude scale")
	fs.BoolVar(&o.quiet, "q", false, "suppress progress and warnings")
	fs.BoolVar(&o.stats, "stats", true, "print per-channel statistics when done")
	fs.StringVar(&o.dither, "dither", "", "dither the 16-bit output (none, rect, tpdf)")
	fs.StringVar(&o.shape, "shaping", "none", "noise shaping when dithering (none, efb, 9fc, sharp)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sgen [flags] program.yaml\n\n")
		fmt.Fprintf(stderr, "Renders a synth program to a WAV file, raw PCM or an audio device.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  sgen bell.yaml\n")
		fmt.Fprintf(stderr, "  sgen -o bell.wav -rate 48000 bell.yaml\n")
		fmt.Fprintf(stderr, "  sgen -raw -o - bell.yaml | aplay -f S16_LE -c 2 -r 44100\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one program file")
	}
	return render(fs.Arg(0), o, stdout, stderr)
}

func devices() string {
	names := sink.Devices()
	if len(names) == 0 {
		return "none compiled in; build with -tags oto or portaudio"
	}
	return strings.Join(names, ", ")
}

func render(path string, o options, stdout, stderr io.Writer) error {
	prog, err := program.Load(path)
	if err != nil {
		return err
	}

	channels := 2
	if o.mono {
		channels = 1
	}
	logger := log.New(stderr, "sgen: ", 0)
	if o.quiet {
		logger = nil
	}
	opts := []generator.Option{
		generator.WithSampleRate(o.rate),
		generator.WithBlockSize(o.block),
		generator.WithChannels(channels),
		generator.WithAmpScale(o.amp),
		generator.WithLogger(logger),
	}
	if o.dither != "" {
		typ, err := dither.ParseType(o.dither)
		if err != nil {
			return err
		}
		shaping, err := dither.ParseShaping(o.shape)
		if err != nil {
			return err
		}
		opts = append(opts, generator.WithDither(dither.WithType(typ), dither.WithShaping(shaping)))
	}
	g, err := generator.New(prog, opts...)
	if err != nil {
		return err
	}

	dst, err := openSink(path, o, channels, stdout)
	if err != nil {
		return err
	}

	var progress io.Writer
	if !o.quiet && isTerminal(stderr) {
		progress = stderr
	}
	total := int64(prog.DurationMS) * int64(o.rate) / 1000
	acc := time.NewAccumulator(channels)
	if err := stream(g, dst, acc, progress, total); err != nil {
		return err
	}

	if o.stats {
		out := stdout
		if o.out == "-" && o.device == "" {
			out = stderr
		}
		printStats(out, stderr, prog, o.rate, acc.Result())
	}
	return nil
}

// stream pulls the whole program from g into dst and closes it. On failure a
// partly written output file is removed. progress, when non-nil, receives a
// percentage of total frames.
func stream(g *generator.Generator, dst sink.Sink, acc *time.Accumulator, progress io.Writer, total int64) (err error) {
	defer func() {
		if f, ok := dst.(fileSink); ok && err != nil {
			if rerr := os.Remove(f.f.Name()); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				err = errors.Join(err, rerr)
			}
		}
	}()

	channels := g.Config().Channels
	buf := make([]int16, g.Config().BlockSize*channels)
	var done int64
	for {
		n, more := g.Run(buf)
		pcm := buf[:n*channels]
		acc.Update(pcm)
		if err := dst.Write(pcm); err != nil {
			_ = dst.Close()
			return fmt.Errorf("write: %w", err)
		}
		done += int64(n)
		if progress != nil && total > 0 {
			fmt.Fprintf(progress, "\r%3d%%", min(100, done*100/total))
		}
		if !more {
			break
		}
	}
	if progress != nil {
		fmt.Fprint(progress, "\r")
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// openSink returns the sink selected by o. Sinks writing to a file they
// created are fileSinks and close that file.
func openSink(path string, o options, channels int, stdout io.Writer) (sink.Sink, error) {
	if o.device != "" {
		return sink.OpenDevice(o.device, o.rate, channels)
	}

	out := o.out
	if out == "" {
		ext := ".wav"
		if o.raw {
			ext = ".raw"
		}
		out = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ext
	}
	if out == "-" {
		if !o.raw {
			return nil, errors.New("WAV output needs a seekable file; use -raw for stdout")
		}
		return sink.NewRaw(nopCloser{stdout}), nil
	}

	f, err := os.Create(out)
	if err != nil {
		return nil, err
	}
	if o.raw {
		return fileSink{sink.NewRaw(nopCloser{f}), f}, nil
	}
	w, err := sink.NewWAV(f, o.rate, channels)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return fileSink{w, f}, nil
}

type fileSink struct {
	sink.Sink
	f *os.File
}

func (s fileSink) Close() error {
	err := s.Sink.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

type nopCloser struct{ io.Writer }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printStats(w, errW io.Writer, prog *program.Program, rate int, stats []time.Stats) {
	name := prog.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "%s: %d voices, %d operators, %d events, %d ms\n\n",
		name, prog.VoiceCount, prog.OpCount, len(prog.Events), prog.DurationMS)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tFrames\tSeconds\tRMS [dB]\tPeak [dB]\tCrest\tDC\tClipped\tLead-in\n"); err != nil {
		_, _ = fmt.Fprintf(errW, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-------\t------\t-------\t--------\t---------\t-----\t--\t-------\t-------\n"); err != nil {
		_, _ = fmt.Fprintf(errW, "error: failed to write output header: %v\n", err)
		return
	}
	for i, s := range stats {
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%.3f\t%.2f\t%.2f\t%.3f\t%.5f\t%d\t%d\n",
			i,
			s.Length,
			float64(s.Length)/float64(rate),
			s.RMS_dB,
			s.Peak_dB,
			s.CrestFactor,
			s.DC,
			s.Clipped,
			s.LeadingSilence,
		); err != nil {
			_, _ = fmt.Fprintf(errW, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(errW, "error: failed to flush output: %v\n", err)
	}
}
