/*
Command correct reads text from stdin one line at a time and prints the corrected lines.

	correct -config spellpipe.toml < input.txt

With -audit every changed token is listed under its line together with the stages that
touched it:

	correct -config spellpipe.toml -audit -mode RW_ALL

-mode overrides CS_FUNC_MODE from the configuration file.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"spellpipe/internal/config"
	"spellpipe/internal/corrector"
	"spellpipe/internal/logger"
)

var (
	stageStyle = lipgloss.NewStyle().Bold(true).Width(16).
			Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"})
	beforeStyle = lipgloss.NewStyle().Strikethrough(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})
	afterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	statsStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"})
)

func main() {
	configPath := flag.String("config", "spellpipe.toml", "TOML or YAML configuration file")
	mode := flag.String("mode", "", "Pipeline mode, overrides CS_FUNC_MODE")
	audit := flag.Bool("audit", false, "Print the correction history of changed tokens")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	lg := logger.New("correct", "warn")
	if *debugMode {
		lg.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadFile(*configPath, true)
	if err != nil {
		lg.Fatal("config error", "err", err)
	}
	if *mode != "" {
		cfg.Mode = strings.ToUpper(*mode)
	}
	res, err := corrector.LoadResources(cfg, lg)
	if err != nil {
		lg.Fatal("init error", "err", err)
	}
	sc, err := corrector.NewSpellCorrector(cfg, res, lg)
	if err != nil {
		lg.Fatal("init error", "err", err)
	}

	if err := run(sc, os.Stdin, os.Stdout, *audit); err != nil {
		lg.Fatal("read error", "err", err)
	}
}

func run(sc *corrector.SpellCorrector, in io.Reader, out io.Writer, audit bool) error {
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		res := sc.CorrectText(s.Text())
		fmt.Fprintln(out, res.Corrected)
		if audit {
			fmt.Fprint(out, renderAudit(res))
		}
	}
	return s.Err()
}

// renderAudit lists every history entry of the changed tokens, one per line.
func renderAudit(res corrector.Result) string {
	var b strings.Builder
	for _, tok := range res.Changes() {
		for _, e := range tok.History {
			fmt.Fprintf(&b, "  %s %s -> %s",
				stageStyle.Render(e.Tag()),
				beforeStyle.Render(e.Before),
				afterStyle.Render(e.After))
			if e.Trigger != nil {
				fmt.Fprintf(&b, " (at %q)", e.Trigger.Word)
			}
			b.WriteString("\n")
		}
	}
	if res.Stats.Detected > 0 {
		b.WriteString(statsStyle.Render(fmt.Sprintf("  detected %d, corrected %d", res.Stats.Detected, res.Stats.Corrected)))
		b.WriteString("\n")
	}
	return b.String()
}
