package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Ripley-h/newsgen/internal/archive"
	"github.com/Ripley-h/newsgen/internal/cache"
	"github.com/Ripley-h/newsgen/internal/config"
	"github.com/Ripley-h/newsgen/internal/mail"
	"github.com/Ripley-h/newsgen/internal/news"
	"github.com/Ripley-h/newsgen/internal/newsletter"
	"github.com/Ripley-h/newsgen/internal/progress"
	"github.com/Ripley-h/newsgen/internal/summarize"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	format, err := newsletter.ParseFormat(firstOf(flagFormat, cfg.Format))
	if err != nil {
		return err
	}

	maxArticles := flagMax
	if maxArticles <= 0 {
		maxArticles = cfg.GetMaxArticles()
	}

	var articleCache news.ArticleCache
	if !flagNoCache {
		store, err := cache.Open(config.CacheDir(), cfg.CacheTTLDuration())
		if err != nil {
			logrus.WithError(err).Warn("article cache unavailable, fetching live")
		} else {
			articleCache = store
		}
	}

	source, err := buildSource(cfg, articleCache)
	if err != nil {
		return err
	}

	aiKey := firstOf(flagAIKey, cfg.AIKey())
	summarizer, err := summarize.New(firstOf(flagAIProvider, cfg.AI.Provider), aiKey, firstOf(flagAIModel, cfg.AI.Model))
	if err != nil {
		return err
	}

	reporter := progress.New(os.Stderr, flagQuiet)
	gen := newsletter.NewGenerator(source, summarizer, reporter.Report)

	result, err := gen.Run(context.Background(), newsletter.Request{
		Title:       flagTitle,
		Topic:       flagTopic,
		MaxArticles: maxArticles,
		Format:      format,
	})
	if err != nil {
		return fmt.Errorf("failed to generate newsletter: %w", err)
	}

	if flagOutputFile != "" {
		if err := os.WriteFile(flagOutputFile, []byte(result.Body), 0o644); err != nil {
			return fmt.Errorf("saving newsletter: %w", err)
		}
		fmt.Printf("Newsletter saved to %s\n", flagOutputFile)
	} else {
		fmt.Println(result.Body)
	}

	recordRun(result)

	if flagSendEmail {
		deliver(cfg, result, format)
	}

	return nil
}

func buildSource(cfg *config.Config, articleCache news.ArticleCache) (newsletter.ArticleSource, error) {
	switch flagSource {
	case "newsapi", "":
		apiKey := firstOf(flagNewsAPIKey, cfg.NewsAPIKey())
		if apiKey == "" {
			return nil, fmt.Errorf("news API key is required (--news-api-key or NEWSGEN_NEWS_API_KEY)")
		}
		return news.NewClient(cfg.News.Endpoint, apiKey, articleCache), nil
	case "rss":
		if flagFeedURL == "" {
			return nil, fmt.Errorf("--feed-url is required with --source rss")
		}
		return news.NewRSSSource(flagFeedURL, articleCache), nil
	default:
		return nil, fmt.Errorf("unknown source: %q (valid: newsapi, rss)", flagSource)
	}
}

// recordRun stores the newsletter in the local archive. Failures are
// warnings: the generated output never depends on the archive.
func recordRun(result *newsletter.Result) {
	db, err := archive.Open(config.ArchivePath())
	if err != nil {
		logrus.WithError(err).Warn("archive unavailable, run not recorded")
		return
	}
	defer db.Close()

	_, err = db.Record(archive.Entry{
		Title:        result.Document.Title,
		Topic:        result.Document.Topic,
		Format:       string(result.Document.Format),
		ArticleCount: len(result.Document.Items),
		Body:         result.Body,
	})
	if err != nil {
		logrus.WithError(err).Warn("recording newsletter failed")
	}
}

// deliver sends the newsletter by email if every required field is
// present; otherwise it reports what is missing and never opens a
// session. Send failures are warnings: the run still completes.
func deliver(cfg *config.Config, result *newsletter.Result, format newsletter.Format) {
	req := mail.DeliveryRequest{
		From:     flagSender,
		To:       flagRecipient,
		Subject:  result.Document.Title,
		Body:     result.Body,
		HTML:     format == newsletter.FormatHTML,
		Host:     flagSMTPHost,
		Port:     flagSMTPPort,
		Username: flagSMTPUser,
		Password: firstOf(flagSMTPPassword, cfg.SMTPPassword()),
	}
	if smtp := cfg.SMTP; smtp != nil {
		req.From = firstOf(req.From, smtp.Sender)
		req.Host = firstOf(req.Host, smtp.Host)
		req.Username = firstOf(req.Username, smtp.Username)
		if req.Port == 0 {
			req.Port = smtp.Port
		}
	}

	if err := req.Validate(); err != nil {
		fmt.Printf("To send an email, you must provide all required email settings (%v).\n", err)
		return
	}

	if err := mail.Send(req); err != nil {
		logrus.WithError(err).Warn("failed to send email")
		return
	}
	fmt.Printf("Newsletter sent successfully to %s\n", req.To)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
