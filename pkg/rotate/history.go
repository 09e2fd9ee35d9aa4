package rotate

import (
	"image"

	"github.com/moolex/wallhaven-go/api"
	"github.com/samber/lo"

	"wallsy/pkg/gallery"
)

func NewHistory() *History {
	return &History{max: 3}
}

// History keeps the last few rotated wallpapers so the bot can inspect,
// restore or save them.
type History struct {
	max   int
	items []*Entry
}

type Entry struct {
	WP     *api.Wallpaper
	Filled image.Image
	Thumb  bool
	Origin *gallery.VFile
}

func (h *History) push(item *Entry) {
	h.items = append(h.items, item)
	if len(h.items) > h.max {
		h.items = h.items[1:]
	}
}

func (h *History) Logs() []*Entry {
	return h.items
}

func (h *History) Add(wp *api.Wallpaper, filled image.Image, thumb bool, origin *gallery.VFile) {
	h.push(&Entry{WP: wp, Filled: filled, Thumb: thumb, Origin: origin})
}

func (h *History) Push(item *Entry) {
	h.push(item)
}

func (h *History) Curr() *Entry {
	item, _ := lo.Last(h.items)
	return item
}

func (h *History) Prev() *Entry {
	if len(h.items) < 2 {
		return nil
	}
	return h.items[len(h.items)-2]
}
