package refdata

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/resilience"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
)

// FetchOptions configures the snapshot fetcher.
type FetchOptions struct {
	UserAgent string
	Timeout   time.Duration
	Retry     resilience.Policy
	// RateLimit throttles HTTP requests to the mirror. Zero means 5 req/s.
	RateLimit rate.Limit
	Burst     int
}

// Fetcher downloads zone dataset snapshots from HTTP or FTP mirrors. URLs
// are dispatched on scheme, so a single configured mirror_url covers both.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	opts    FetchOptions
}

// NewFetcher builds a Fetcher with the given options.
func NewFetcher(opts FetchOptions) *Fetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "naijaprop/1.0"
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 5
	}
	if opts.Burst == 0 {
		opts.Burst = 5
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(opts.RateLimit, opts.Burst),
		opts:    opts,
	}
}

// Fetch downloads the snapshot at rawURL and returns its bytes.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: parse url %s", rawURL)
	}
	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, rawURL)
	case "ftp":
		return f.fetchFTP(ctx, u)
	default:
		return nil, eris.Errorf("refdata: unsupported scheme %q in %s", u.Scheme, rawURL)
	}
}

// FetchToFile downloads rawURL to dest, creating parent directories.
// Returns the number of bytes written.
func (f *Fetcher) FetchToFile(ctx context.Context, rawURL, dest string) (int64, error) {
	data, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, eris.Wrapf(err, "refdata: mkdir %s", dir)
		}
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return 0, eris.Wrapf(err, "refdata: write %s", dest)
	}
	return int64(len(data)), nil
}

// FetchZones downloads and fully validates a zones snapshot. The encoding
// follows the URL path extension, as with local files.
func (f *Fetcher) FetchZones(ctx context.Context, rawURL string) ([]model.Zone, error) {
	data, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: parse url %s", rawURL)
	}
	zones, err := store.ParseZones(data, store.IsYAMLPath(u.Path))
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: snapshot %s", rawURL)
	}
	return zones, nil
}

// FetchIfChanged downloads an HTTP snapshot only when its ETag differs from
// the one on record. It returns the body, the new ETag, and whether the
// mirror had new content. FTP mirrors do not carry ETags; use Fetch.
func (f *Fetcher) FetchIfChanged(ctx context.Context, rawURL, etag string) ([]byte, string, bool, error) {
	type result struct {
		data []byte
		etag string
	}

	res, err := resilience.DoVal(ctx, f.retryPolicy("conditional fetch"), func(ctx context.Context) (result, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return result{}, eris.Wrap(err, "refdata: limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return result{}, eris.Wrap(err, "refdata: build request")
		}
		req.Header.Set("User-Agent", f.opts.UserAgent)
		if etag != "" {
			req.Header.Set("If-None-Match", etag)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return result{}, err
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode == http.StatusNotModified {
			return result{etag: etag}, nil
		}
		if resp.StatusCode != http.StatusOK {
			return result{}, &resilience.StatusError{URL: rawURL, Status: resp.StatusCode}
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return result{}, eris.Wrap(err, "refdata: read body")
		}
		return result{data: data, etag: resp.Header.Get("ETag")}, nil
	})
	if err != nil {
		return nil, "", false, err
	}
	if res.data == nil {
		zap.L().Debug("snapshot unchanged", zap.String("url", rawURL), zap.String("etag", etag))
		return nil, res.etag, false, nil
	}
	return res.data, res.etag, true, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	return resilience.DoVal(ctx, f.retryPolicy("fetch"), func(ctx context.Context) ([]byte, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "refdata: limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "refdata: build request")
		}
		req.Header.Set("User-Agent", f.opts.UserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			return nil, &resilience.StatusError{URL: rawURL, Status: resp.StatusCode}
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			// Connection cut mid-body; a fresh attempt may complete.
			return nil, resilience.Transient(eris.Wrap(err, "refdata: read body"))
		}
		return data, nil
	})
}

func (f *Fetcher) fetchFTP(ctx context.Context, u *url.URL) ([]byte, error) {
	host := u.Host
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "21")
	}
	if u.Path == "" {
		return nil, eris.Errorf("refdata: empty path in ftp url %s", u)
	}

	return resilience.DoVal(ctx, f.retryPolicy("ftp fetch"), func(ctx context.Context) ([]byte, error) {
		zap.L().Debug("ftp: connecting", zap.String("host", host), zap.String("path", u.Path))

		conn, err := ftp.Dial(host, ftp.DialWithTimeout(f.opts.Timeout), ftp.DialWithContext(ctx))
		if err != nil {
			return nil, eris.Wrap(err, "refdata: ftp dial")
		}
		defer conn.Quit() //nolint:errcheck

		if err := conn.Login("anonymous", "anonymous@"); err != nil {
			return nil, eris.Wrap(err, "refdata: ftp login")
		}

		resp, err := conn.Retr(u.Path)
		if err != nil {
			return nil, eris.Wrap(err, "refdata: ftp retrieve")
		}
		defer resp.Close() //nolint:errcheck

		data, err := io.ReadAll(resp)
		if err != nil {
			return nil, resilience.Transient(eris.Wrap(err, "refdata: ftp read"))
		}
		return data, nil
	})
}

func (f *Fetcher) retryPolicy(operation string) resilience.Policy {
	p := f.opts.Retry
	if p.Attempts == 0 {
		p = resilience.DefaultPolicy()
	}
	if p.OnRetry == nil {
		p.OnRetry = resilience.LogRetries("mirror", operation)
	}
	return p
}
