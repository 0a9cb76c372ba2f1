package platform

import (
	"context"
	"io"
	"time"

	"github.com/aretw0/myflomo/pkg/core"
)

// WelcomeContent seeds an empty store when the welcome note is enabled.
const WelcomeContent = "Welcome to MyFlomo! Jot down ideas as they come and put a hash before a word to tag it, like this: #welcome"

// Vault is an opened note store together with the settings its views need.
type Vault struct {
	Path         string
	Service      *core.Service
	Storage      core.Storage
	Location     *time.Location
	HeatmapWeeks int
}

// New opens the vault at uri: it selects and initializes the storage,
// rehydrates the service and, for an empty store, writes the welcome note.
//
//	v, err := myflomo.New("./notes", myflomo.WithAdapter("sqlite"))
func New(uri string, opts ...Option) (*Vault, error) {
	ctx := context.Background()
	o := applyOptions(opts)

	storage, path, cfg, err := initStorage(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	loc := o.location
	if loc == nil {
		if loc, err = cfg.Location(); err != nil {
			return nil, err
		}
	}

	maxImageSize := o.maxImageSize
	if maxImageSize <= 0 {
		maxImageSize = cfg.MaxImageSize
	}
	readOnly, _ := o.config["read_only"].(bool)

	svc := core.NewService(storage, core.Config{
		Logger:       o.logger,
		Clock:        o.clock,
		NewID:        o.newID,
		MaxImageSize: maxImageSize,
		ReadOnly:     readOnly,
	})

	notes := svc.Rehydrate(ctx)
	if len(notes) == 0 && !readOnly && welcomeEnabled(o, cfg) {
		if _, err := svc.Create(ctx, WelcomeContent); err != nil {
			return nil, err
		}
	}

	return &Vault{
		Path:         path,
		Service:      svc,
		Storage:      storage,
		Location:     loc,
		HeatmapWeeks: cfg.Weeks(),
	}, nil
}

// Close releases the storage when it holds resources (e.g. a database).
func (v *Vault) Close() error {
	if c, ok := v.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func welcomeEnabled(o *options, cfg FileConfig) bool {
	if o.welcomeNote != nil {
		return *o.welcomeNote
	}
	if cfg.WelcomeNote != nil {
		return *cfg.WelcomeNote
	}
	return false
}
