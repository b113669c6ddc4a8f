package sofadb

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Stats summarizes one run.
type Stats struct {
	Found      int
	Downloaded int
	Checked    int
	Bytes      int64
	Errors     int
	Warnings   int
	Retries    int
}

// Runner walks a database, downloads every file matching Suffix and round
// trips it through the codec registered for its extension. Every warning
// and error lands in the report; per-file failures never stop the run.
type Runner struct {
	Client *Client
	Report *Report
	Codecs *CodecSet

	// Suffix selects the files to check, matched case-insensitively.
	Suffix string

	// Dir is the download destination. Subdirectory files land in a
	// subdirectory of the same name.
	Dir string

	Log logrus.FieldLogger
}

// Run checks the database below baseURL: the files on the base page first,
// then the files of every subdirectory, one level deep. A listing failure
// on the base page aborts the run; on a subdirectory it only skips that
// subdirectory. Cancelling the context stops the run between files.
func (r *Runner) Run(ctx context.Context, baseURL string) (stats Stats, err error) {
	defer func() {
		if r.Report != nil {
			if ferr := r.Report.Finish(); ferr != nil && err == nil {
				err = ferr
			}
		}
	}()

	base, err := r.Client.Listing(baseURL)
	if err != nil {
		r.report(KindError, "listing", err.Error(), baseURL)
		return stats, err
	}
	if err := r.checkFiles(ctx, base.Files, r.Dir, &stats); err != nil {
		return stats, err
	}
	for _, dirURL := range base.Dirs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		sub, err := r.Client.Listing(dirURL)
		if err != nil {
			r.report(KindError, "listing", err.Error(), dirURL)
			r.Log.WithError(err).WithField("dir", dirURL).Error("Skipping subdirectory")
			stats.Errors++
			continue
		}
		dest := filepath.Join(r.Dir, path.Base(strings.TrimSuffix(dirURL, "/")))
		if err := r.checkFiles(ctx, sub.Files, dest, &stats); err != nil {
			return stats, err
		}
	}

	r.Log.WithFields(logrus.Fields{
		"found":      stats.Found,
		"downloaded": stats.Downloaded,
		"checked":    stats.Checked,
		"errors":     stats.Errors,
		"warnings":   stats.Warnings,
	}).Info("Run finished")
	return stats, nil
}

func (r *Runner) checkFiles(ctx context.Context, files []string, destDir string, stats *Stats) error {
	for _, fileURL := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !strings.HasSuffix(strings.ToLower(fileURL), strings.ToLower(r.Suffix)) {
			continue
		}
		stats.Found++
		r.checkFile(ctx, fileURL, destDir, stats)
	}
	return nil
}

// checkFile downloads one file and round trips it. All failures are
// reported and swallowed so the caller moves on to the next file.
func (r *Runner) checkFile(ctx context.Context, fileURL, destDir string, stats *Stats) {
	log := r.Log.WithField("file", fileURL)
	log.Debug("Checking file")

	name, err := fileName(fileURL)
	if err != nil {
		r.report(KindError, "download", err.Error(), fileURL)
		stats.Errors++
		return
	}
	dest := filepath.Join(destDir, name)

	size, err := r.Client.Download(ctx, fileURL, dest, func(err error, wait time.Duration) {
		r.report(KindRetry, "download", err.Error(), fileURL)
		stats.Retries++
		log.WithError(err).WithField("wait", wait).Warn("Retrying download")
	})
	if err != nil {
		r.report(KindError, "download", err.Error(), fileURL)
		stats.Errors++
		log.WithError(err).Error("Download failed")
		return
	}
	stats.Downloaded++
	stats.Bytes += size

	codec := r.Codecs.For(dest)
	if codec == nil {
		r.report(KindWarning, "load", "no codec registered for this extension", fileURL)
		stats.Warnings++
		return
	}
	obj, warnings, err := codec.Load(dest)
	for _, w := range warnings {
		r.report(KindWarning, "load", w, fileURL)
		stats.Warnings++
	}
	if err != nil {
		r.report(KindError, "load", err.Error(), fileURL)
		stats.Errors++
		log.WithError(err).Error("Load failed")
		return
	}

	scratch := dest + ".roundtrip" + filepath.Ext(dest)
	warnings, err = codec.Save(scratch, obj)
	for _, w := range warnings {
		r.report(KindWarning, "save", w, fileURL)
		stats.Warnings++
	}
	if err != nil {
		r.report(KindError, "save", err.Error(), fileURL)
		stats.Errors++
		log.WithError(err).Error("Save failed")
		return
	}
	os.Remove(scratch)
	stats.Checked++
}

func (r *Runner) report(kind Kind, op, msg, link string) {
	if r.Report == nil {
		return
	}
	if err := r.Report.Add(kind, op, msg, link); err != nil {
		r.Log.WithError(err).Error("Writing report row failed")
	}
}

func fileName(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", err
	}
	return path.Base(u.Path), nil
}
