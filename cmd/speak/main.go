// Command speak is the minimal CLI surface of spec.md §6: an
// interactive prompt that synthesizes free text to a WAV file per
// utterance, with /voices, voice <n|name>, and exit commands. Grounded
// on cmd/gateway/main.go's slog/env bootstrapping, reduced to a
// network-free loop (spec.md §4.N expansion).
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hubenschmidt/klatt-tts/internal/dict"
	"github.com/hubenschmidt/klatt-tts/internal/env"
	"github.com/hubenschmidt/klatt-tts/internal/g2p"
	"github.com/hubenschmidt/klatt-tts/internal/prosody"
	"github.com/hubenschmidt/klatt-tts/internal/render"
	"github.com/hubenschmidt/klatt-tts/internal/synth"
	"github.com/hubenschmidt/klatt-tts/internal/text"
	"github.com/hubenschmidt/klatt-tts/internal/trace"
	"github.com/hubenschmidt/klatt-tts/internal/voice"
	"github.com/hubenschmidt/klatt-tts/internal/voiceio"
)

// voicesSearchPath is the order spec.md §6 specifies for locating the
// voices directory.
var voicesSearchPath = []string{"voices", "./voices", "../voices"}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	voices, names := loadVoices()
	if len(names) == 0 {
		voices = map[string]voice.Profile{voice.Default().Name: voice.Default()}
		names = []string{voice.Default().Name}
	}
	current := names[0]

	predictor := g2p.New(loadDict())
	tracer := maybeNewTracer()
	defer func() {
		if tracer != nil {
			tracer.Close()
		}
	}()

	repl(os.Stdin, os.Stdout, predictor, voices, names, &current, tracer)
}

func loadVoices() (map[string]voice.Profile, []string) {
	for _, dir := range voicesSearchPath {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		profiles, results, err := voiceio.Load(dir)
		if err != nil {
			slog.Warn("voice load failed", "dir", dir, "error", err)
			continue
		}
		for _, r := range results {
			if r.Err != nil {
				slog.Warn("skipped voice", "dir", r.Dir, "error", r.Err)
			}
		}
		if len(profiles) > 0 {
			names := make([]string, 0, len(profiles))
			for n := range profiles {
				names = append(names, n)
			}
			sort.Strings(names)
			return profiles, names
		}
	}
	return nil, nil
}

func loadDict() dict.Dict {
	path := env.Str("CMUDICT_PATH", "cmudict.dict")
	f, err := os.Open(path)
	if err != nil {
		slog.Warn("G2PUnavailableResource: no CMU dictionary, falling back to rule-based English", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	d, err := dict.Parse(f)
	if err != nil {
		slog.Warn("G2PUnavailableResource: CMU dictionary parse failed, falling back to rule-based English", "path", path, "error", err)
		return nil
	}
	return d
}

func maybeNewTracer() *trace.Tracer {
	connStr := env.Str("TRACE_DATABASE_URL", "")
	if connStr == "" {
		return nil
	}
	store, err := trace.Open(connStr)
	if err != nil {
		slog.Warn("tracer disabled: store open failed", "error", err)
		return nil
	}
	sessionID := fmt.Sprintf("cli-%d", time.Now().UnixNano())
	if err := store.CreateSession(sessionID, ""); err != nil {
		slog.Warn("tracer disabled: session create failed", "error", err)
		return nil
	}
	return trace.NewTracer(store, sessionID)
}

func repl(in *os.File, out *os.File, predictor *g2p.Predictor, voices map[string]voice.Profile, names []string, current *string, tracer *trace.Tracer) {
	scanner := bufio.NewScanner(in)
	parser := text.New(predictor)
	utteranceN := 0

	fmt.Fprintln(out, "klatt-tts — type text to speak, /voices to list voices, voice <n|name> to switch, exit to quit.")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "exit":
			os.Exit(0)
		case line == "/voices":
			for i, n := range names {
				marker := " "
				if n == *current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %d) %s\n", marker, i+1, n)
			}
		case strings.HasPrefix(line, "voice "):
			switchVoice(out, strings.TrimPrefix(line, "voice "), voices, names, current)
		default:
			utteranceN++
			if err := speakOne(parser, voices[*current], line, utteranceN, tracer); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

func switchVoice(out *os.File, arg string, voices map[string]voice.Profile, names []string, current *string) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(names) {
			fmt.Fprintf(os.Stderr, "Error: no voice numbered %d\n", n)
			return
		}
		*current = names[n-1]
		return
	}
	if _, ok := voices[arg]; !ok {
		fmt.Fprintf(os.Stderr, "Error: no voice named %q\n", arg)
		return
	}
	*current = arg
}

func speakOne(parser *text.Parser, v voice.Profile, utterance string, n int, tracer *trace.Tracer) error {
	ctx := context.Background()
	start := time.Now()
	utteranceID := tracer.StartUtterance(utterance, v.Name)

	parseStart := time.Now()
	events, err := parser.Parse(ctx, utterance)
	tracer.RecordStage(utteranceID, "parse", parseStart, time.Since(parseStart).Seconds()*1000, utterance, "", status(err), errString(err))
	if err != nil {
		tracer.EndUtterance(utteranceID, time.Since(start).Seconds()*1000, "error")
		return fmt.Errorf("parse: %w", err)
	}

	path := fmt.Sprintf("out-%03d.wav", n)
	f, err := os.Create(path)
	if err != nil {
		tracer.EndUtterance(utteranceID, time.Since(start).Seconds()*1000, "error")
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	gen := prosody.NewGenerator(v)
	syn := synth.New(v)
	sink := render.NewWAVSink(f)
	driver := render.New(gen, syn, sink)

	renderStart := time.Now()
	speakErr := driver.Speak(ctx, events)
	tracer.RecordStage(utteranceID, "synth", renderStart, time.Since(renderStart).Seconds()*1000, "", "", status(speakErr), errString(speakErr))
	tracer.EndUtterance(utteranceID, time.Since(start).Seconds()*1000, status(speakErr))
	if speakErr != nil {
		return fmt.Errorf("render: %w", speakErr)
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
