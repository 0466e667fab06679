package catalog

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/go-git/go-billy/v5"
)

// writeFile replaces name with the output of fn. The data goes to a
// temporary file first so that readers never see a partial file.
func writeFile(fs billy.Filesystem, name string, fn func(io.Writer) error) (err error) {
	tmp, err := fs.TempFile(".", name+".")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err == nil {
			return
		}
		if rerr := fs.Remove(tmpName); rerr != nil && !os.IsNotExist(rerr) {
			log.Printf("remove %q: %+v", tmpName, rerr)
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := fn(w); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return fs.Rename(tmpName, name)
}

func withFile(fs billy.Filesystem, name string, fn func(billy.File) error) error {
	f, err := fs.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("close %q: %+v", name, err)
		}
	}()
	return fn(f)
}

func exists(fs billy.Filesystem, name string) bool {
	_, err := fs.Stat(name)
	return err == nil
}
