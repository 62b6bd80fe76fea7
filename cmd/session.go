package cmd

import (
	"fmt"

	"github.com/brogergvhs/yomikazu/internal/config"
	"github.com/brogergvhs/yomikazu/internal/kv"
	"github.com/brogergvhs/yomikazu/internal/progress"
	"github.com/brogergvhs/yomikazu/internal/tracker"
	"github.com/brogergvhs/yomikazu/internal/ui"
)

// session is everything a command needs once config has been resolved.
type session struct {
	cfg      *config.Config
	usedPath string
	log      *ui.Logger
	kv       kv.Store
	tracker  *tracker.Tracker
}

func (s *session) Close() {
	if s.kv == nil {
		return
	}
	if err := s.kv.Close(); err != nil {
		s.log.Errorf("closing storage: %v\n", err)
	}
}

func baseOptions() config.Options {
	return config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Storage:      flagStorage,
		StoragePath:  flagStoragePath,
		EnvFile:      flagEnvFile,
	}
}

func openSession(opts config.Options) (*session, error) {
	cfg, usedPath, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("config: %s\n", usedPath)

	store, err := kv.Open(kv.Options{
		Backend:     cfg.Storage,
		Path:        cfg.StoragePath,
		RedisAddr:   cfg.RedisAddr,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open %s storage: %w", cfg.Storage, err)
	}
	logSvc.Debugf("storage: %s\n", cfg.Storage)

	return &session{
		cfg:      cfg,
		usedPath: usedPath,
		log:      logSvc,
		kv:       store,
		tracker:  tracker.New(progress.NewStore(store, logSvc), logSvc),
	}, nil
}
