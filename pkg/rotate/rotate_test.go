package rotate

import (
	"testing"
	"time"

	"github.com/moolex/wallhaven-go/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsPauseAndWakeup(t *testing.T) {
	p := NewParams(1920, 1080)
	assert.False(t, p.Paused())

	p.Pause()
	assert.True(t, p.Paused())

	p.Wakeup()
	assert.False(t, p.Paused())

	select {
	case <-p.WakeupChan():
	default:
		t.Fatal("wakeup signal not queued")
	}
}

func TestParamsReset(t *testing.T) {
	p := NewParams(1920, 1080)
	p.Reset(42 * time.Second)

	select {
	case d := <-p.ResetChan():
		assert.Equal(t, 42*time.Second, d)
	default:
		t.Fatal("reset signal not queued")
	}
}

func TestParamsSwapRatio(t *testing.T) {
	p := NewParams(1920, 1080)

	w, h := p.Size()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	p.SwapRatio()
	w, h = p.Size()
	assert.Equal(t, 1080, w)
	assert.Equal(t, 1920, h)
}

func TestParamsQuery(t *testing.T) {
	p := NewParams(1920, 1080)

	q := api.NewQuery("landscape")
	p.SetQuery(q)
	assert.Same(t, q, p.GetQuery())

	p.UpdateQuery(func(q *api.QueryCond) {
		q.Page = 3
	})
	assert.Equal(t, 3, p.GetQuery().Page)
}

func TestHistoryKeepsLastThree(t *testing.T) {
	h := NewHistory()

	for _, id := range []string{"a", "b", "c", "d"} {
		h.Add(&api.Wallpaper{Id: id}, nil, false, nil)
	}

	logs := h.Logs()
	require.Len(t, logs, 3)
	assert.Equal(t, "b", logs[0].WP.Id)
	assert.Equal(t, "d", logs[2].WP.Id)
}

func TestHistoryCurrAndPrev(t *testing.T) {
	h := NewHistory()
	assert.Nil(t, h.Curr())
	assert.Nil(t, h.Prev())

	h.Add(&api.Wallpaper{Id: "a"}, nil, false, nil)
	require.NotNil(t, h.Curr())
	assert.Equal(t, "a", h.Curr().WP.Id)
	assert.Nil(t, h.Prev())

	// exactly two entries is the boundary: the first one must be reachable
	h.Add(&api.Wallpaper{Id: "b"}, nil, true, nil)
	assert.Equal(t, "b", h.Curr().WP.Id)
	require.NotNil(t, h.Prev())
	assert.Equal(t, "a", h.Prev().WP.Id)
	assert.True(t, h.Curr().Thumb)

	prev := h.Prev()
	h.Push(prev)
	assert.Equal(t, "a", h.Curr().WP.Id)
}
