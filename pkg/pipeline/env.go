package pipeline

import (
	"go.uber.org/zap"

	"wallsy/pkg/config"
	"wallsy/pkg/gallery"
	"wallsy/pkg/wallpaper"
)

// Env bundles the shared dependencies a stage may need.
type Env struct {
	Config  *config.Config
	Gallery *gallery.Gallery
	DL      *gallery.Downloader
	Setter  *wallpaper.Setter
	Log     *zap.Logger
}

// DefaultRegistry registers every built-in wallsy command against env.
func DefaultRegistry(env *Env) *Registry {
	r := NewRegistry()

	r.Register("add", func() Command { return &addCmd{env: env} })
	r.Register("random", func() Command { return &randomCmd{env: env} })
	r.Register("watch", func() Command { return &watchCmd{env: env} })

	r.Register("blur", func() Command { return &blurCmd{env: env} })
	r.Register("noir", func() Command { return &noirCmd{env: env} })
	r.Register("posterize", func() Command { return &posterizeCmd{env: env} })
	r.Register("colorize", func() Command { return &colorizeCmd{env: env} })

	r.Register("save", func() Command { return &saveCmd{env: env} })
	r.Register("show", func() Command { return &showCmd{env: env} })
	r.Register("desktop", func() Command { return &desktopCmd{env: env} })

	r.Register("every", func() Command { return &everyCmd{} })

	return r
}
