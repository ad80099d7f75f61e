package deck

import (
	"archive/zip"
	"io"
)

func newZip(w io.Writer, files map[string]string) error {
	zw := zip.NewWriter(w)
	for name, content := range files {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := f.Write([]byte(content)); err != nil {
			return err
		}
	}
	return zw.Close()
}
