package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/controller"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/kv"
	"github.com/Makepad-fr/tada/internal/surface"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/Makepad-fr/tada/internal/view"
)

// app is one mounted page: config, logger, storage and the three parts wired together.
type app struct {
	cfg    *config.Config
	log    *log.Logger
	closer io.Closer

	root  *surface.Node
	view  *view.Renderer
	coord *controller.Coordinator
}

func open(fs *pflag.FlagSet) (*app, error) {
	cfg, err := config.Load(fs)
	if err != nil {
		return nil, err
	}
	if err := ui.SetTheme(cfg.Theme); err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	storage := kv.NewFileStorage(cfg.DataDir)
	items, err := jsonstore.Load(storage, cfg.StorageKey)
	switch {
	case errors.Is(err, jsonstore.ErrMalformed):
		logger.Debug("ignoring unreadable snapshot", "path", cfg.SlotPath(), "err", err)
	case err != nil:
		closer.Close()
		return nil, fmt.Errorf("load: %w", err)
	}
	logger.Info("task list loaded", "path", cfg.SlotPath(), "items", len(items))

	root := surface.CreateElement("main")
	root.SetAttr("id", "root")
	r := view.New(root)
	c := controller.New(store.New(items), r, storage, cfg.StorageKey, logger)

	return &app{
		cfg:    cfg,
		log:    logger,
		closer: closer,
		root:   root,
		view:   r,
		coord:  c,
	}, nil
}

func (a *app) Close() error { return a.closer.Close() }

// saved reports a failed write of the last mutation.
func (a *app) saved() error {
	if err := a.coord.Err(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// submit types text into the entry field and submits the form.
func (a *app) submit(text string) {
	a.view.Input().SetValue(text)
	a.view.Form().Dispatch(surface.EventSubmit)
}

func (a *app) toggle(row *surface.Node) {
	cb := view.Checkbox(row)
	cb.SetChecked(!cb.Checked())
	cb.Dispatch(surface.EventChange)
}

func (a *app) remove(row *surface.Node) {
	view.DeleteButton(row).Dispatch(surface.EventClick)
}

// edit replaces the row's text the way typing into it would, then leaves it.
func (a *app) edit(row *surface.Node, text string) {
	region := view.TextRegion(row)
	region.SetText(text)
	region.Dispatch(surface.EventInput)
	region.Dispatch(surface.EventFocusOut)
}
