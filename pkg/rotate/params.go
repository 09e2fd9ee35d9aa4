// Package rotate drives continuous wallpaper rotation from the Wallhaven
// API: pick a wallpaper from the query result, push it through the effect
// chain, fill it to screen size and set it as the desktop background.
package rotate

import (
	"sync"
	"time"

	"github.com/moolex/wallhaven-go/api"
)

func NewParams(width, height int) *Params {
	return &Params{
		ErrorWait:  3 * time.Second,
		ChangeWait: 5 * time.Minute,
		wakeup:     make(chan struct{}, 1),
		reset:      make(chan time.Duration, 1),
		width:      width,
		height:     height,
	}
}

// Params holds the mutable rotation state shared between the timer loop and
// the bot.
type Params struct {
	l sync.RWMutex

	ErrorWait  time.Duration
	ChangeWait time.Duration

	wakeup chan struct{}
	reset  chan time.Duration
	paused bool
	width  int
	height int
	api    *api.API
	q      *api.QueryCond
	r      *api.QueryResult
}

func (p *Params) Paused() bool {
	return p.paused
}

func (p *Params) WakeupChan() <-chan struct{} {
	return p.wakeup
}

func (p *Params) ResetChan() <-chan time.Duration {
	return p.reset
}

func (p *Params) Pause() {
	p.paused = true
}

func (p *Params) Wakeup() {
	p.paused = false
	p.wakeup <- struct{}{}
}

func (p *Params) Reset(dur time.Duration) {
	p.reset <- dur
}

func (p *Params) SetAPI(api *api.API) {
	p.api = api
}

func (p *Params) Size() (int, int) {
	return p.width, p.height
}

func (p *Params) SwapRatio() {
	p.width, p.height = p.height, p.width
}

func (p *Params) GetQuery() *api.QueryCond {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.q
}

func (p *Params) GetResult() *api.QueryResult {
	p.l.RLock()
	defer p.l.RUnlock()
	return p.r
}

func (p *Params) SetQuery(q *api.QueryCond) {
	p.l.Lock()
	defer p.l.Unlock()
	p.q = q
}

func (p *Params) SetResult(r *api.QueryResult) {
	p.l.Lock()
	defer p.l.Unlock()
	p.r = r
}

func (p *Params) UpdateQuery(fn func(q *api.QueryCond)) {
	p.l.Lock()
	defer p.l.Unlock()
	fn(p.q)
}

// Querying reruns the current query and wakes the rotation loop on success.
func (p *Params) Querying() error {
	p.l.Lock()
	defer p.l.Unlock()

	ret, err := p.api.Query(p.q)
	if err != nil {
		return err
	}

	p.r = ret
	p.Wakeup()
	return nil
}
