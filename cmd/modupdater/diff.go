package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/diff"
)

func writeDiff(ctx context.Context, w io.Writer, fpath string, a, b []byte, contextSize int) error {
	if bytes.Equal(a, b) {
		return nil
	}
	fpath = filepath.ToSlash(fpath)
	aname := fmt.Sprintf("a/%s", fpath)
	bname := fmt.Sprintf("b/%s", fpath)
	names := diff.Names(aname, bname)
	opts := []diff.WriteOpt{names}
	if _, color := fdinfo(int(os.Stdout.Fd())); color && w == os.Stdout {
		c := diff.TerminalColor()
		opts = append(opts, c)
	}
	pair := diff.Bytes(splitLines(a), splitLines(b))
	edit := diff.Myers(ctx, pair)
	if contextSize >= 0 {
		edit = edit.WithContextSize(contextSize)
	}
	_, err := edit.WriteUnified(w, pair, opts...)
	return err
}

func splitLines(b []byte) [][]byte {
	return bytes.Split(b, []byte("\n"))
}
