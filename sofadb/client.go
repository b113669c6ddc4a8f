// Package sofadb checks the files of a remote SOFA database: it walks the
// directory listings, downloads matching files with bounded retries, round
// trips each one through a codec and reports every warning and error to a
// tab-separated file.
package sofadb

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// Client fetches listings and files from the database server.
type Client struct {
	HTTP *fasthttp.Client

	// Timeout bounds every single request.
	Timeout time.Duration

	// Retries is the total number of download attempts per file. Attempt n
	// waits n times RetryPause before running.
	Retries    int
	RetryPause time.Duration

	// MaxSize skips files larger than this many bytes. Zero means no limit.
	MaxSize Bytes

	Log logrus.FieldLogger
}

// NewClient returns a client with usable defaults.
func NewClient() *Client {
	return &Client{
		HTTP:       &fasthttp.Client{},
		Timeout:    30 * time.Second,
		Retries:    3,
		RetryPause: time.Second,
		Log:        logrus.StandardLogger(),
	}
}

// Listing is one directory page, split into subdirectories and files. All
// entries are absolute URLs.
type Listing struct {
	Dirs  []string
	Files []string
}

// Listing fetches a directory page and classifies its links: anchors ending
// in a slash are subdirectories, other relative anchors are files. Parent,
// sort and absolute links are skipped.
func (c *Client) Listing(pageURL string) (*Listing, error) {
	body, err := c.fetch(pageURL)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", pageURL)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing listing %s", pageURL)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing listing url %s", pageURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	l := new(Listing)
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if skipHref(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			c.Log.WithError(err).WithField("href", href).Debug("Skipping unparsable link")
			return
		}
		abs := base.ResolveReference(ref).String()
		if strings.HasSuffix(href, "/") {
			l.Dirs = append(l.Dirs, abs)
		} else {
			l.Files = append(l.Files, abs)
		}
	})
	return l, nil
}

func skipHref(href string) bool {
	return href == "" ||
		strings.HasPrefix(href, "?") ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "/") ||
		strings.HasPrefix(href, "..") ||
		strings.Contains(href, "://")
}

// Download fetches a file to dest, retrying failed attempts up to the
// configured bound with an incrementing pause between them. notify, if not
// nil, runs before each retry with the failure and the coming pause. A dest
// that already exists is kept as is. Returns the file size.
func (c *Client) Download(ctx context.Context, fileURL, dest string, notify func(err error, wait time.Duration)) (int64, error) {
	if fi, err := os.Stat(dest); err == nil {
		c.Log.WithField("file", dest).Debug("Already downloaded")
		return fi.Size(), nil
	}
	var size int64
	op := func() error {
		body, err := c.fetch(fileURL)
		if err != nil {
			return errors.Wrapf(err, "downloading %s", fileURL)
		}
		if c.MaxSize > 0 && int64(len(body)) > c.MaxSize.Int64() {
			return backoff.Permanent(errors.Errorf("downloading %s: size %d exceeds limit %s",
				fileURL, len(body), c.MaxSize))
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return backoff.Permanent(err)
		}
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0666)
		if err != nil {
			return backoff.Permanent(err)
		}
		if _, err := f.Write(body); err != nil {
			f.Close()
			return backoff.Permanent(err)
		}
		size = int64(len(body))
		return f.Close()
	}
	b := backoff.WithContext(&incrementingBackOff{
		Pause:    c.RetryPause,
		MaxTries: c.Retries,
	}, ctx)
	if err := backoff.RetryNotify(op, b, backoff.Notify(notify)); err != nil {
		return 0, err
	}
	return size, nil
}

// fetch GETs a URL and returns a copy of the response body.
func (c *Client) fetch(requestURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(res)

	req.SetRequestURI(requestURL)
	if err := c.HTTP.DoTimeout(req, res, c.Timeout); err != nil {
		return nil, err
	}
	if sc := res.StatusCode(); sc != fasthttp.StatusOK {
		return nil, errors.Errorf("HTTP status %d", sc)
	}
	return append([]byte(nil), res.Body()...), nil
}

// incrementingBackOff waits Pause on the first retry, twice that on the
// second, and so on, giving up after MaxTries attempts.
type incrementingBackOff struct {
	Pause    time.Duration
	MaxTries int

	tries int
}

var _ backoff.BackOff = (*incrementingBackOff)(nil)

func (b *incrementingBackOff) NextBackOff() time.Duration {
	b.tries++
	if b.tries >= b.MaxTries {
		return backoff.Stop
	}
	return time.Duration(b.tries) * b.Pause
}

func (b *incrementingBackOff) Reset() {
	b.tries = 0
}
