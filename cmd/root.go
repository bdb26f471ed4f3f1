package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagTitle        string
	flagTopic        string
	flagMax          int
	flagFormat       string
	flagNewsAPIKey   string
	flagAIKey        string
	flagAIProvider   string
	flagAIModel      string
	flagSource       string
	flagFeedURL      string
	flagOutputFile   string
	flagSendEmail    bool
	flagSender       string
	flagRecipient    string
	flagSMTPHost     string
	flagSMTPPort     int
	flagSMTPUser     string
	flagSMTPPassword string
	flagNoCache      bool
	flagQuiet        bool
	flagConfig       string
)

var rootCmd = &cobra.Command{
	Use:   "newsgen",
	Short: "Generate and email newsletters from news articles",
	Long: `newsgen fetches news articles for a topic, summarizes each one with an
LLM, assembles the results into a newsletter (plain text or styled HTML),
and optionally saves it to a file or delivers it by email.`,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagTitle, "title", "t", "", "title of the newsletter")
	f.StringVar(&flagTopic, "topic", "", "topic for the news articles")
	f.IntVar(&flagMax, "max", 0, "maximum number of articles to include")
	f.StringVar(&flagFormat, "format", "", "output format: text or html")
	f.StringVar(&flagNewsAPIKey, "news-api-key", "", "API key for the news source")
	f.StringVar(&flagAIKey, "ai-key", "", "API key for the summarization provider")
	f.StringVar(&flagAIProvider, "ai-provider", "", "summarization provider: openai or claude")
	f.StringVar(&flagAIModel, "ai-model", "", "override the provider's default model")
	f.StringVar(&flagSource, "source", "newsapi", "article source: newsapi or rss")
	f.StringVar(&flagFeedURL, "feed-url", "", "feed URL when --source rss")
	f.StringVarP(&flagOutputFile, "output-file", "o", "", "save the newsletter to this file")
	f.BoolVar(&flagSendEmail, "send-email", false, "send the newsletter via email")
	f.StringVar(&flagSender, "sender", "", "sender email address")
	f.StringVar(&flagRecipient, "recipient", "", "recipient email address")
	f.StringVar(&flagSMTPHost, "smtp-host", "", "SMTP server address")
	f.IntVar(&flagSMTPPort, "smtp-port", 0, "SMTP server port (default 587)")
	f.StringVar(&flagSMTPUser, "smtp-user", "", "SMTP username")
	f.StringVar(&flagSMTPPassword, "smtp-password", "", "SMTP password")
	f.BoolVar(&flagNoCache, "no-cache", false, "skip the article cache for this run")
	f.BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.MarkFlagRequired("title")
	rootCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsgen %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
