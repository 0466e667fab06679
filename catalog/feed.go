package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// FeedFetcher is implemented by *curse.Client.
type FeedFetcher interface {
	FeedTimestamp(ctx context.Context, name string) (int64, error)
	FeedDownload(ctx context.Context, name string, w io.Writer) error
}

// Feed keeps local copies of client update feed files. Each file has
// a "<name>.txt" marker holding the timestamp of the local copy.
type Feed struct {
	Client FeedFetcher
	Files  billy.Filesystem
}

func timestampName(name string) string {
	return name + ".txt"
}

// Local returns the timestamp of the local copy of name, or zero when
// there is none.
func (f *Feed) Local(name string) int64 {
	fname := timestampName(name)
	var ts int64
	err := withFile(f.Files, fname, func(r billy.File) error {
		var b strings.Builder
		if _, err := io.Copy(&b, io.LimitReader(r, 1024)); err != nil {
			return err
		}
		var err error
		ts, err = strconv.ParseInt(strings.TrimSpace(b.String()), 10, 64)
		return err
	})
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("read timestamp %q: %+v", fname, err)
		}
		return 0
	}
	return ts
}

// Refresh downloads name when the remote timestamp is strictly newer
// than the local one and returns that timestamp, or zero when nothing
// was downloaded. The local timestamp is not changed; Commit records
// it once the new copy has been used successfully.
func (f *Feed) Refresh(ctx context.Context, name string) (int64, error) {
	remote, err := f.Client.FeedTimestamp(ctx, name)
	if err != nil {
		return 0, err
	}
	local := f.Local(name)
	if remote <= local {
		return 0, nil
	}
	log.Printf("updating %q", name)
	err = writeFile(f.Files, name, func(w io.Writer) error {
		return f.Client.FeedDownload(ctx, name, w)
	})
	if err != nil {
		return 0, fmt.Errorf("download %q: %w", name, err)
	}
	return remote, nil
}

// Commit records ts as the timestamp of the local copy of name.
func (f *Feed) Commit(name string, ts int64) error {
	err := writeFile(f.Files, timestampName(name), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%d", ts)
		return err
	})
	if err != nil {
		return fmt.Errorf("write timestamp %q: %w", name, err)
	}
	return nil
}
