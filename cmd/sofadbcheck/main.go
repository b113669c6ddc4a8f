package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/f-brinkmann/SOFAtoolbox/sofadb"
)

var baseURL = pflag.StringP("url", "u", "https://sofacoustics.org/data", "Database base URL")
var dir = pflag.StringP("dir", "o", "sofadb", "Download directory")
var report = pflag.StringP("report", "r", "", "Report file (default <dir>/sofadbcheck.csv)")
var suffix = pflag.StringP("suffix", "s", ".sofa", "File suffix to check")
var retries = pflag.IntP("retries", "n", 3, "Download attempts per file")
var timeout = pflag.DurationP("timeout", "t", 30*time.Second, "Per-request timeout")
var maxSize sofadb.Bytes
var verbose = pflag.BoolP("verbose", "v", false, "More output")

func parseArgs() error {
	pflag.VarP(&maxSize, "max-size", "m", "Skip files larger than this (e.g. 500MB, 0 for no limit)")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr,
			`
Usage:`)
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *retries <= 0 {
		return fmt.Errorf("invalid value for --retries")
	}

	if *report == "" {
		*report = filepath.Join(*dir, "sofadbcheck.csv")
	}

	return os.MkdirAll(*dir, 0755)
}

func main() {
	if err := parseArgs(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Info("Starting SOFA database check")
	logrus.Info("  " + *baseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := sofadb.NewClient()
	client.Timeout = *timeout
	client.Retries = *retries
	client.MaxSize = maxSize

	rep, err := sofadb.CreateReport(*report)
	if err != nil {
		logrus.WithError(err).Fatal("Creating report failed")
	}

	runner := &sofadb.Runner{
		Client: client,
		Report: rep,
		Codecs: sofadb.DefaultCodecs(),
		Suffix: *suffix,
		Dir:    *dir,
		Log:    logrus.StandardLogger(),
	}

	startTime := time.Now()
	stats, err := runner.Run(ctx, *baseURL)

	logrus.WithFields(logrus.Fields{
		"found":      humanize.Comma(int64(stats.Found)),
		"downloaded": humanize.Comma(int64(stats.Downloaded)),
		"checked":    humanize.Comma(int64(stats.Checked)),
		"total":      humanize.Bytes(uint64(stats.Bytes)),
		"errors":     stats.Errors,
		"warnings":   stats.Warnings,
		"retries":    stats.Retries,
		"dur":        time.Since(startTime).Round(time.Second).String(),
		"report":     *report,
	}).Info("Stats")

	if err != nil {
		logrus.WithError(err).Error("Run failed")
		os.Exit(1)
	}
}
