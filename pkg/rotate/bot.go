package rotate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/moolex/wallhaven-go/api"
	"github.com/samber/lo"
	tele "gopkg.in/telebot.v3"
)

// NewBot builds a Telegram remote control for the rotation loop.
func NewBot(token string, params *Params, r *Rotator, h *History) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:      b,
		params: params,
		r:      r,
		h:      h,
	}, nil
}

type Bot struct {
	b      *tele.Bot
	params *Params
	r      *Rotator
	h      *History
}

func (b *Bot) handleBase() {
	b.b.Handle("/pause", func(context tele.Context) error {
		b.params.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/resume", func(context tele.Context) error {
		b.params.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/next", func(context tele.Context) error {
		b.params.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/interval", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply(b.params.ChangeWait.String())
		}

		duration, err := time.ParseDuration(in)
		if err != nil {
			return context.Reply(fmt.Sprintf("change failed: %s", err))
		}

		b.params.ChangeWait = duration
		b.params.Wakeup()
		return context.Reply("OK")
	})
}

func (b *Bot) handleQuery() {
	getPageInfo := func() string {
		r := b.params.GetResult()
		return fmt.Sprintf("items: %d, page: %d/%d", r.Meta.Total, r.Meta.CurrentPage, r.Meta.LastPage)
	}

	updateQuery := func(up func(q *api.QueryCond), ctx tele.Context) error {
		b.params.UpdateQuery(func(q *api.QueryCond) {
			q.Page = 1
			up(q)
		})

		if err := b.params.Querying(); err != nil {
			return ctx.Reply(fmt.Sprintf("update failed: %s", err))
		}

		return ctx.Reply(fmt.Sprintf("Updated, %s", getPageInfo()))
	}

	b.b.Handle("/query", func(context tele.Context) error {
		return updateQuery(func(q *api.QueryCond) {
			q.Query = context.Message().Payload
			q.SortBy(api.SortViews)
		}, context)
	})

	b.b.Handle("/toplist", func(context tele.Context) error {
		return updateQuery(func(q *api.QueryCond) {
			q.SortBy(api.SortTopList)
			q.TopRange = context.Message().Payload
		}, context)
	})

	b.b.Handle("/sorting", func(context tele.Context) error {
		return updateQuery(func(q *api.QueryCond) {
			q.SortBy(context.Message().Payload)
		}, context)
	})

	b.b.Handle("/category", func(context tele.Context) error {
		return updateQuery(func(q *api.QueryCond) {
			q.SetCategory(strings.Split(context.Message().Payload, ",")...)
		}, context)
	})

	b.b.Handle("/purity", func(context tele.Context) error {
		return updateQuery(func(q *api.QueryCond) {
			q.SetPurity(strings.Split(context.Message().Payload, ",")...)
		}, context)
	})

	b.b.Handle("/page", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply(fmt.Sprintf("Current %s", getPageInfo()))
		}

		return updateQuery(func(q *api.QueryCond) {
			p, e := strconv.Atoi(in)
			q.Page = lo.Ternary(e == nil, p, 1)
		}, context)
	})

	b.b.Handle("/preview", func(context tele.Context) error {
		query, err := b.params.GetQuery().ToMap()
		if err != nil {
			return context.Reply(fmt.Sprintf("preview error: %s", err))
		}

		values := make(url.Values)
		for k, v := range query {
			values.Set(k, v)
		}

		return context.Send(fmt.Sprintf("https://wallhaven.cc/search?%s", values.Encode()))
	})
}

func (b *Bot) handleAction() {
	b.b.Handle("/info", func(context tele.Context) error {
		entry := b.h.Curr()
		if entry == nil {
			return context.Reply("nothing rotated yet")
		}

		wp := entry.WP
		lines := []string{
			fmt.Sprintf("Category: %s", wp.Category),
			fmt.Sprintf("Purity: %s", wp.Purity),
			fmt.Sprintf("Views: %d", wp.Views),
			fmt.Sprintf("Favorites: %d", wp.Favorites),
			fmt.Sprintf("Resolution: %s", wp.Resolution),
			fmt.Sprintf("File size: %s", bytesize.New(float64(wp.FileSize)).String()),
			fmt.Sprintf("Created at: %s", wp.CreatedAt),
			fmt.Sprintf("URL: %s", wp.Url),
		}

		return context.Reply(strings.Join(lines, "\n"))
	})

	b.b.Handle("/logs", func(context tele.Context) error {
		var lines []string
		for _, entry := range b.h.Logs() {
			lines = append(lines, entry.WP.Url)
		}
		if len(lines) == 0 {
			return context.Reply("no history yet")
		}

		return context.Reply(strings.Join(lines, "\n"))
	})

	b.b.Handle("/prev", func(context tele.Context) error {
		entry := b.h.Prev()
		if entry == nil {
			return context.Reply("no previous wallpaper")
		}

		if err := b.r.Redraw(entry); err != nil {
			return context.Reply(fmt.Sprintf("redraw failed: %s", err))
		}

		b.params.Reset(b.params.ChangeWait)
		b.h.Push(entry)

		return context.Reply("OK")
	})

	b.b.Handle("/save", func(context tele.Context) error {
		entry := b.h.Curr()
		if entry == nil {
			return context.Reply("nothing rotated yet")
		}

		path, err := b.r.SaveOrigin(entry)
		if err != nil {
			return context.Reply(fmt.Sprintf("save failed: %s", err))
		}

		return context.Reply(fmt.Sprintf("Saved to %s", path))
	})
}

func (b *Bot) Start() {
	b.handleBase()
	b.handleQuery()
	b.handleAction()
	go b.b.Start()
}

func (b *Bot) Stop() {
	go b.b.Stop()
}
