// Package datasetsync pulls public reference dataset snapshots from a
// configured FTP mirror into the local dataset directory the local_dataset
// evidence provider scans. Pure I/O convenience: optional, off by default,
// and never required for the core pipeline to function.
package datasetsync

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/obelus-labs/veritas-core/internal/fetcher"
)

// DefaultTimeout bounds one file's download when Options.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// Options configures one sync run.
type Options struct {
	Host        string   // FTP host, e.g. "ftp.bls.gov"; empty disables sync entirely
	RemotePaths []string // absolute paths on the FTP server to mirror
	LocalDir    string   // destination directory, scanned by the local_dataset provider
	Timeout     time.Duration
}

// Result records one mirrored file.
type Result struct {
	Path         string
	BytesWritten int64
}

// Sync mirrors every path in opts.RemotePaths into opts.LocalDir. A blank
// Host is a no-op: dataset sync is disabled unless a mirror is configured.
func Sync(ctx context.Context, opts Options, log *zap.Logger) ([]Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Host == "" {
		log.Debug("datasetsync: no ftp host configured, skipping")
		return nil, nil
	}
	if opts.LocalDir == "" {
		return nil, eris.New("datasetsync: local_dir is required when host is set")
	}
	if err := os.MkdirAll(opts.LocalDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "datasetsync: create local dir %s", opts.LocalDir)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	f := fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: timeout})

	results := make([]Result, 0, len(opts.RemotePaths))
	for _, remote := range opts.RemotePaths {
		u := url.URL{Scheme: "ftp", Host: opts.Host, Path: remote}
		dest := filepath.Join(opts.LocalDir, filepath.Base(path.Clean(remote)))

		n, err := f.DownloadToFile(ctx, u.String(), dest)
		if err != nil {
			return results, eris.Wrapf(err, "datasetsync: download %s", remote)
		}
		log.Info("datasetsync: synced file", zap.String("remote", remote), zap.Int64("bytes", n))
		results = append(results, Result{Path: dest, BytesWritten: n})
	}
	return results, nil
}
