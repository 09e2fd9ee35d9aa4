package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/moolex/wallhaven-go/api"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wallsy/pkg/config"
	"wallsy/pkg/effects"
	"wallsy/pkg/gallery"
	"wallsy/pkg/rotate"
	"wallsy/pkg/wallpaper"
)

var size = flag.String("size", "1920x1080", "screen size the wallpaper is filled to")
var portrait = flag.Bool("portrait", false, "swap the fill size for a portrait screen")
var interval = flag.String("interval", "5m", "rotation interval")
var debug = flag.Bool("debug", false, "set debug")
var effectSpecs = flag.StringArray("effect", nil, "effect to apply each rotation, e.g. blur=8, repeatable")
var maxPage = flag.Int("max-page", -1, "wrap paging after this many result pages")
var maxSize = flag.Int("max-size", -1, "fetch only thumbnails above this many bytes")
var saveViews = flag.Int("save-views", 0, "auto save wallpapers with at least this many views")
var saveFavs = flag.Int("save-favorites", 0, "auto save wallpapers with at least this many favorites")
var saveDaily = flag.Int("save-daily", 0, "auto save wallpapers gaining this many favorites per day")
var whQuery = flag.String("wh-query", "", "wallhaven query string")
var whCategory = flag.String("wh-category", "", "wallhaven category names")
var whPurity = flag.String("wh-purity", "", "wallhaven purity levels")
var whRandom = flag.Bool("wh-random", false, "wallhaven random sort")
var whSorting = flag.String("wh-sorting", "", "wallhaven sorting type")
var whToplist = flag.String("wh-toplist", "1M", "wallhaven toplist range")
var whRatio = flag.String("wh-ratio", "", "wallhaven ratio filter")
var tgToken = flag.String("tg-token", "", "telegram bot token")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			newLogger,
			newConfig,
			newParams,
			newGallery,
			newDownloader,
			newCache,
			newChain,
			newSetter,
			rotate.NewHistory,
			newRotator,
		),
		fx.Invoke(run),
	).Run()
}

func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	if !*debug {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel))
	}
	return logger, nil
}

func newConfig() (*config.Config, error) {
	return config.Load("")
}

func newParams() (*rotate.Params, error) {
	w, h, err := parseSize(*size)
	if err != nil {
		return nil, err
	}

	p := rotate.NewParams(w, h)
	if *portrait {
		p.SwapRatio()
	}

	d, err := time.ParseDuration(*interval)
	if err != nil {
		return nil, err
	}
	p.ChangeWait = d

	return p, nil
}

func newGallery(cfg *config.Config, logger *zap.Logger) (*gallery.Gallery, error) {
	return gallery.New(afero.NewOsFs(), cfg.MediaDir, cfg.EffectsDir, logger)
}

func newDownloader(logger *zap.Logger) *gallery.Downloader {
	return gallery.NewDownloader(logger)
}

func newCache(cfg *config.Config) (*gallery.Cache, error) {
	return gallery.NewCache(afero.NewOsFs(), filepath.Join(cfg.Dir(), "cache"))
}

func newChain() (*effects.Chain, error) {
	return effects.ParseChain(*effectSpecs)
}

func newSetter(cfg *config.Config, logger *zap.Logger) *wallpaper.Setter {
	var opts []wallpaper.Option
	if cfg.SetCommand != "" {
		opts = append(opts, wallpaper.WithCommand(cfg.SetCommand))
	}
	return wallpaper.New(logger, opts...)
}

func newRotator(
	params *rotate.Params,
	dl *gallery.Downloader,
	g *gallery.Gallery,
	cache *gallery.Cache,
	chain *effects.Chain,
	setter *wallpaper.Setter,
	hist *rotate.History,
	cfg *config.Config,
	logger *zap.Logger,
) *rotate.Rotator {
	opts := []rotate.Option{
		rotate.WithMaxPage(*maxPage),
		rotate.WithMaxSize(*maxSize),
	}
	if *saveViews > 0 || *saveFavs > 0 || *saveDaily > 0 {
		opts = append(opts, rotate.WithAutoSave(logger, *saveViews, *saveFavs, *saveDaily))
	}

	return rotate.NewRotator(params, dl, g, cache, chain, setter, hist, cfg.WallpaperDir, logger, opts...)
}

func run(
	lc fx.Lifecycle,
	params *rotate.Params,
	rotator *rotate.Rotator,
	hist *rotate.History,
	cfg *config.Config,
	logger *zap.Logger,
) error {
	wh := api.New(cfg.WallhavenKey)
	wh.SetLogger(logger)
	if *debug {
		wh.SetDebug()
	}
	params.SetAPI(wh)
	params.SetQuery(buildQuery())

	var bot *rotate.Bot
	if *tgToken != "" {
		var err error
		if bot, err = rotate.NewBot(*tgToken, params, rotator, hist); err != nil {
			return err
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ret, err := wh.Query(params.GetQuery())
			if err != nil {
				return err
			}
			params.SetResult(ret)

			if bot != nil {
				bot.Start()
			}

			go loop(params, rotator, logger, stop, done)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			if bot != nil {
				bot.Stop()
			}

			select {
			case <-done:
			case <-ctx.Done():
			}

			logger.Info("exited")
			return nil
		},
	})

	return nil
}

func loop(params *rotate.Params, rotator *rotate.Rotator, logger *zap.Logger, stop <-chan struct{}, done chan<- struct{}) {
	timer := time.NewTimer(time.Nanosecond)

	defer func() {
		timer.Stop()
		close(done)
	}()

	for {
		select {
		case <-stop:
			return
		case <-params.WakeupChan():
			timer.Reset(time.Millisecond)
		case d := <-params.ResetChan():
			timer.Reset(d)
		case <-timer.C:
			if params.Paused() {
				logger.Info("rotation paused, skip...")
				continue
			}
			if err := rotator.Next(); err != nil {
				logger.With(zap.Error(err)).Info("rotation failed")
				timer.Reset(params.ErrorWait)
			} else {
				timer.Reset(params.ChangeWait)
			}
		}
	}
}

func buildQuery() *api.QueryCond {
	q := api.NewQuery(*whQuery)

	if *whCategory != "" {
		q.SetCategory(strings.Split(*whCategory, ",")...)
	}
	if *whPurity != "" {
		q.SetPurity(strings.Split(*whPurity, ",")...)
	}
	if *whRatio != "" {
		q.SetRatio(*whRatio)
	}

	if *whRandom {
		q.Random()
	} else if *whSorting != "" {
		q.SortBy(*whSorting)
	} else {
		q.SortBy(api.SortTopList)
		q.TopRange = *whToplist
	}

	return q
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH", s)
	}

	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH", s)
	}

	return w, h, nil
}
