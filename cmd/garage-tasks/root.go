package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/minhvu/garage-tasks/internal/client"
	"github.com/minhvu/garage-tasks/internal/display"
	"github.com/minhvu/garage-tasks/internal/model"
	"github.com/minhvu/garage-tasks/internal/notify"
	"github.com/minhvu/garage-tasks/internal/session"
	"github.com/minhvu/garage-tasks/internal/store"
	"github.com/minhvu/garage-tasks/internal/workflow"
)

// app holds the wired-up collaborators shared by every command.
type app struct {
	cfg      *model.AppConfig
	logger   *zap.Logger
	client   *client.Client
	store    store.Store
	sess     *session.Session
	renderer *display.Renderer
	coord    *workflow.Coordinator
	notifier *notify.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "garage-tasks",
		Short:         "Workshop task assignment client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(configPath, verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "config file path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newAccountCmd(a),
		newEmployeesCmd(a),
		newTasksCmd(a),
		newNotificationsCmd(a),
		newEventsCmd(a),
		newWatchCmd(a),
	)

	return root
}

// init loads config and builds the logger and REST client. The session,
// cache and coordinator are opened lazily by commands that need them.
func (a *app) init(configPath string, verbose bool) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := zap.NewProductionConfig()
	if verbose {
		logCfg = zap.NewDevelopmentConfig()
	}
	logger, err := logCfg.Build()
	if err != nil {
		return err
	}
	a.logger = logger

	a.client = client.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSec)*time.Second)
	a.renderer = display.NewRenderer(cfg.Display.Locale)

	return nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// requireSession restores the saved session and installs its token on the
// client. Commands that talk to the backend call this first.
func (a *app) requireSession() error {
	if a.sess != nil {
		return nil
	}
	sess, err := session.Load()
	if err != nil {
		return errors.New("not logged in: run `garage-tasks login` first")
	}
	a.sess = sess
	a.client.SetToken(sess.Token)
	return nil
}

// requireAdmin additionally checks the session role.
func (a *app) requireAdmin() error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if !a.sess.Admin() {
		return errors.New("this action requires an administrator account")
	}
	return nil
}

// openStore opens the local cache and the services built on it.
func (a *app) openStore() error {
	if a.store != nil {
		return nil
	}
	s, err := store.NewSQLiteStore(a.cfg.CachePath)
	if err != nil {
		return err
	}
	a.store = s
	a.coord = workflow.NewCoordinator(s, a.client, a.logger)
	a.notifier = notify.NewService(a.client, s, a.logger)
	return nil
}
