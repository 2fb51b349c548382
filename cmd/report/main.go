package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Dan9191/stripe-report/internal/config"
	"github.com/Dan9191/stripe-report/internal/export"
	"github.com/Dan9191/stripe-report/internal/integrations/stripe"
	"github.com/Dan9191/stripe-report/internal/service"
	emailutil "github.com/Dan9191/stripe-report/internal/utils/email"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const dayFormat = "2006-01-02"

type options struct {
	accounts string
	start    string
	end      string
	period   string
	timezone string
	format   string
	out      string
	emailTo  string
	schedule string
}

func main() {
	var opts options
	flag.StringVar(&opts.accounts, "accounts", "", "comma-separated connected account ids (default: every visible account)")
	flag.StringVar(&opts.start, "start", "", "start date (YYYY-MM-DD), required for -period custom")
	flag.StringVar(&opts.end, "end", "", "end date (YYYY-MM-DD), required for -period custom")
	flag.StringVar(&opts.period, "period", "custom", "report period: daily, weekly, monthly or custom")
	flag.StringVar(&opts.timezone, "timezone", "UTC", "IANA timezone for day bucketing")
	flag.StringVar(&opts.format, "format", "csv", "output format: csv, xlsx, xml or json")
	flag.StringVar(&opts.out, "out", "", "output file path (default: derived from period and format)")
	flag.StringVar(&opts.emailTo, "email", "", "email the report to this address")
	flag.StringVar(&opts.schedule, "schedule", "", "cron spec; rerun and redeliver the report on this schedule")
	flag.Parse()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if opts.schedule != "" {
		c := cron.New()
		_, err := c.AddFunc(opts.schedule, func() {
			if err := runReport(cfg, logger, opts); err != nil {
				logger.Errorf("Scheduled report run failed: %v", err)
			}
		})
		if err != nil {
			logger.Fatalf("Invalid schedule %q: %v", opts.schedule, err)
		}
		logger.Infof("Running reports on schedule: %s", opts.schedule)
		c.Run()
		return
	}

	if err := runReport(cfg, logger, opts); err != nil {
		logger.Fatalf("Report run failed: %v", err)
	}
}

func runReport(cfg *config.Config, logger *logrus.Logger, opts options) error {
	startDate, endDate, err := resolveDates(opts.period, opts.start, opts.end)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := stripe.NewClient(cfg.StripeAPIURL, cfg.StripeAPIKey, logger)
	svc := service.NewService(client, logger, cfg.ReportWorkers)

	accountIDs := splitAccounts(opts.accounts)
	if len(accountIDs) == 0 {
		infos, err := svc.ListAccounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		for _, info := range infos {
			accountIDs = append(accountIDs, info.ID)
		}
	}

	report, err := svc.Aggregate(ctx, accountIDs, startDate, endDate, opts.timezone)
	if err != nil {
		return err
	}
	for _, failure := range report.Failures {
		logger.Warnf("Partial data for account %s (%s): %s", failure.AccountID, failure.EventType, failure.Reason)
	}

	var buf bytes.Buffer
	switch opts.format {
	case "csv":
		err = export.WriteCSV(&buf, report.Rows)
	case "xlsx":
		err = export.WriteXLSX(&buf, report.Rows)
	case "xml":
		err = export.WriteXML(&buf, report, startDate, endDate, opts.timezone)
	case "json":
		var data []byte
		data, err = json.MarshalIndent(report, "", "  ")
		buf.Write(data)
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	filename := export.Filename(opts.format, startDate, endDate)
	outPath := opts.out
	if outPath == "" {
		outPath = filename
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logger.Infof("Report written to %s (%d rows, %d accounts)", outPath, len(report.Rows), len(report.Accounts))

	if opts.emailTo != "" {
		sender := emailutil.NewSender(cfg, logger)
		return sender.SendReport(opts.emailTo, startDate, endDate, opts.timezone,
			len(report.Accounts), buf.Bytes(), filename, contentType(opts.format))
	}
	return nil
}

// resolveDates maps the period presets onto a concrete date range.
func resolveDates(period, start, end string) (string, string, error) {
	now := time.Now()
	switch period {
	case "daily":
		return now.AddDate(0, 0, -1).Format(dayFormat), now.Format(dayFormat), nil
	case "weekly":
		return now.AddDate(0, 0, -7).Format(dayFormat), now.Format(dayFormat), nil
	case "monthly":
		return now.AddDate(0, 0, -30).Format(dayFormat), now.Format(dayFormat), nil
	case "custom":
		if start == "" || end == "" {
			return "", "", fmt.Errorf("-start and -end are required for a custom period")
		}
		return start, end, nil
	default:
		return "", "", fmt.Errorf("invalid period %q: use daily, weekly, monthly or custom", period)
	}
}

func splitAccounts(accounts string) []string {
	var ids []string
	for _, id := range strings.Split(accounts, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func contentType(format string) string {
	switch format {
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "xml":
		return "application/xml"
	case "json":
		return "application/json"
	default:
		return "text/csv"
	}
}
