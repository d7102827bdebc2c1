package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"git.lost.host/meutraa/reso/internal/clock"
	"git.lost.host/meutraa/reso/internal/config"
	"git.lost.host/meutraa/reso/internal/generator"
	"git.lost.host/meutraa/reso/internal/input"
	"git.lost.host/meutraa/reso/internal/judge"
	"git.lost.host/meutraa/reso/internal/media"
	"git.lost.host/meutraa/reso/internal/relay"
	"git.lost.host/meutraa/reso/internal/render"
	"git.lost.host/meutraa/reso/internal/score"
	"git.lost.host/meutraa/reso/internal/theme"
	"github.com/eiannone/keyboard"
	"gonum.org/v1/gonum/stat"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	config.Parse()

	// Ensure our Default implementations are used as interfaces
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}
	var gen generator.Generator = &generator.DefaultGenerator{}
	var scorer score.Scorer = &score.DefaultScorer{}

	var audioFile string
	if err := filepath.Walk(*config.Directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".mp3", ".ogg", ".wav":
			audioFile = p
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	if audioFile == "" {
		return errors.New("unable to find .mp3/.ogg/.wav file in given directory")
	}

	log.Printf("Analyzing %v\n", audioFile)
	samples, sampleRate, err := media.PCM(audioFile)
	if nil != err {
		return err
	}

	chart, err := gen.Generate(samples, sampleRate, generator.Options{
		Level:  *config.Level,
		Lanes:  *config.Lanes,
		LeadIn: *config.LeadIn,
		Seed:   *config.Seed,
	})
	if nil != err {
		return err
	}
	if len(chart.Notes) == 0 {
		fmt.Println("nothing to play, the track is silent")
		return nil
	}
	log.Printf("Generated %v notes (%v holds) at level %v\n",
		chart.NoteCount, chart.HoldCount, chart.Level)

	if err := scorer.Init(); nil != err {
		return err
	}
	defer scorer.Deinit()

	player, err := media.Open(audioFile)
	if nil != err {
		return err
	}
	defer player.Close()

	// The decoder's track length is authoritative; analysis drops a
	// partial tail window, which would end the session early
	if d := player.Duration() + *config.LeadIn; d > chart.Duration {
		chart.Duration = d
	}

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard:", err)
		}
	}()

	var evChannel chan *input.Event
	if *config.InputDevice != "" {
		evChannel = make(chan *input.Event, 128)
		if err := input.Read(*config.InputDevice, evChannel); nil != err {
			return fmt.Errorf("unable to open input device: %w", err)
		}
	}

	var rl *relay.Relay
	if *config.RelayAddr != "" {
		rl, err = relay.New(*config.RelayAddr)
		if nil != err {
			return err
		}
		defer rl.Close()
		log.Printf("Relay %v listening on %v\n", rl.ID(), rl.Addr())
	}

	if err := r.Init(); nil != err {
		return err
	}

	p := &Program{
		Renderer:   r,
		Theme:      th,
		chart:      chart,
		judge:      judge.New(chart, *config.Autoplay),
		clk:        clock.New(player, *config.LeadIn, *config.Offset),
		player:     player,
		relay:      rl,
		keyChannel: keyChannel,
		evChannel:  evChannel,
	}
	p.Run()

	if err := r.Deinit(); nil != err {
		return err
	}

	state := p.judge.State()
	rank := judge.Rank(state.Perfects, state.Goods, state.Misses)
	mean, stdev := 0.0, 0.0
	if len(p.Errors) > 1 {
		mean = stat.Mean(p.Errors, nil)
		stdev = stat.StdDev(p.Errors, nil)
	}

	fmt.Printf("   Rank:  %v\n", rank)
	fmt.Printf("  Score:  %v\n", state.Score)
	fmt.Printf("  Combo:  %v\n", state.MaxCombo)
	fmt.Printf("    Acc:  %.2f%%\n", judge.Accuracy(state.Perfects, state.Goods, state.Misses))
	fmt.Printf("   Mean:  %.2f ms\n", mean)
	fmt.Printf("  Stdev:  %.2f ms\n", stdev)

	result := score.Result{
		Score:    state.Score,
		Rank:     rank,
		Perfects: state.Perfects,
		Goods:    state.Goods,
		Bads:     state.Bads,
		Misses:   state.Misses,
		MaxCombo: state.MaxCombo,
	}
	if err := scorer.Save(chart, result); nil != err {
		log.Println("unable to save result:", err)
	}
	if best, err := scorer.Best(chart); nil == err && best != nil {
		fmt.Printf("   Best:  %v (%v)\n", best.Score, best.Rank)
	}

	return nil
}
