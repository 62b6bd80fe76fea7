package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/brogergvhs/yomikazu/internal/config"
	"github.com/brogergvhs/yomikazu/internal/fetch"
	"github.com/brogergvhs/yomikazu/internal/site"
	"github.com/brogergvhs/yomikazu/internal/tracker"
	"github.com/brogergvhs/yomikazu/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagFile       string
	flagRenderer   string
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagShow       bool
)

func init() {
	visitCmd := &cobra.Command{
		Use:   "visit <url>...",
		Short: "Record the chapters behind the given URLs. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runVisit,
	}

	visitCmd.Flags().StringVar(&flagFile, "file", "", "read the page from a saved HTML file instead of fetching the single URL")
	visitCmd.Flags().StringVar(&flagRenderer, "renderer", "", "page source: http or chrome")
	visitCmd.Flags().BoolVar(&flagShow, "show", false, "print the novel table after each recorded chapter")

	visitCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	visitCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	visitCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(visitCmd)
}

func runVisit(cmd *cobra.Command, args []string) error {
	if flagFile != "" && len(args) != 1 {
		return fmt.Errorf("--file takes exactly one URL, got %d", len(args))
	}

	opts := baseOptions()
	opts.Renderer = flagRenderer
	opts.Cookie = flagCookie
	opts.CookieFile = flagCookieFile
	opts.UserAgent = flagUserAgent

	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	source, err := pageSource(s.cfg, s.log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	stats := &ui.Stats{}
	start := time.Now()

	// One bar for batches; a single visit prints its own result line.
	var bar *ui.ProgressHandle
	var pm *ui.ProgressManager
	if len(args) > 1 && !s.cfg.Debug {
		pm = ui.NewProgressManager()
		bar = pm.Register("visit", len(args))
	}

	for _, rawURL := range args {
		res, err := visitOne(ctx, s, source, rawURL)
		chars := report(s, stats, rawURL, res, err, bar == nil)
		if bar != nil {
			bar.Step(chars)
		}
	}

	if pm != nil {
		bar.MarkDone()
		pm.Close()
		fmt.Println()
		stats.Print(os.Stdout, time.Since(start))
	}

	return nil
}

func pageSource(cfg *config.Config, log *ui.Logger) (func(context.Context, string) (*site.Page, error), error) {
	if flagFile != "" {
		return func(_ context.Context, rawURL string) (*site.Page, error) {
			return fetch.FromFile(flagFile, rawURL)
		}, nil
	}

	ua := fetch.PickUserAgent(cfg.UserAgent)

	switch cfg.Renderer {
	case config.RendererChrome:
		return fetch.NewRenderer(cfg.Timeout, ua, log).Fetch, nil
	case config.RendererHTTP:
		client, err := fetch.NewClient(fetch.ClientOptions{
			Timeout:     cfg.Timeout,
			UserAgent:   ua,
			Cookie:      cfg.Cookie,
			CookieFile:  cfg.CookieFile,
			Cloudflare:  cfg.Cloudflare,
			DebugLogger: log,
		})
		if err != nil {
			return nil, err
		}
		return client.Fetch, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (want %s or %s)", cfg.Renderer, config.RendererHTTP, config.RendererChrome)
	}
}

func visitOne(ctx context.Context, s *session, source func(context.Context, string) (*site.Page, error), rawURL string) (tracker.Result, error) {
	// Reject hosts without an adapter before touching the network.
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		if _, err := site.Select(u.Hostname()); err != nil {
			return tracker.Result{}, err
		}
	}

	page, err := source(ctx, rawURL)
	if err != nil {
		return tracker.Result{}, err
	}

	return s.tracker.Visit(ctx, page)
}

// report logs the outcome of one visit and returns the characters recorded.
func report(s *session, stats *ui.Stats, rawURL string, res tracker.Result, err error, verbose bool) int {
	switch {
	case errors.Is(err, site.ErrUnsupportedSite):
		stats.Skipped.Add(1)
		s.log.Debugf("%s: %v\n", rawURL, err)
		return 0
	case errors.Is(err, site.ErrNotInTrackedPage):
		stats.Skipped.Add(1)
		if verbose {
			s.log.Infof("%s is not inside a novel, nothing recorded\n", rawURL)
		}
		return 0
	case err != nil:
		stats.Failed.Add(1)
		s.log.Errorf("%s: %v\n", rawURL, err)
		return 0
	}

	if res.Chapter == nil {
		stats.Index.Add(1)
		if verbose {
			fmt.Printf("%s %s: %d chapters read, %d characters\n",
				res.Site, res.NovelID, res.Novel.Len(), res.Total)
		}
		return 0
	}

	stats.Recorded.Add(1)
	stats.Characters.Add(int64(res.Chapter.Characters))
	if verbose {
		fmt.Printf("%s %s chapter %s %q: %d characters (novel total %d)\n",
			res.Site, res.NovelID, res.ChapterID, res.Chapter.Title, res.Chapter.Characters, res.Total)
	}
	if flagShow && verbose {
		fmt.Print(ui.RenderNovel(res.NovelID, res.Novel))
	}

	return res.Chapter.Characters
}
