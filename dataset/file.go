package dataset

import (
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
)

type reader struct {
	c *csv.Reader
	f *os.File
	z *gzip.Reader

	// col maps header names to column indices.
	col map[string]int
	pat string
	lin int
}

func open(pat string) (*reader, error) {
	var err error

	r := &reader{pat: pat}

	{
		r.f, err = os.Open(pat)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var src io.Reader = r.f
	if strings.HasSuffix(pat, ".gz") {
		r.z, err = gzip.NewReader(r.f)
		if err != nil {
			r.f.Close()
			return nil, tracer.Mask(err)
		}

		src = r.z
	}

	{
		r.c = csv.NewReader(src)
		r.c.ReuseRecord = true
	}

	var hea []string
	{
		hea, err = r.c.Read()
		if err == io.EOF {
			r.close()
			return nil, tracer.Maskf(clickrank.InvalidInputError, "%s has no header", pat)
		} else if err != nil {
			r.close()
			return nil, tracer.Mask(err)
		}

		r.lin = 1
	}

	r.col = map[string]int{}
	for i, h := range hea {
		r.col[strings.TrimSpace(h)] = i
	}

	return r, nil
}

// index returns the column index of the given header name.
func (r *reader) index(nam string) (int, error) {
	i, ok := r.col[nam]
	if !ok {
		return 0, tracer.Maskf(clickrank.InvalidInputError, "%s has no column %q", r.pat, nam)
	}

	return i, nil
}

func (r *reader) optional(nam string) int {
	i, ok := r.col[nam]
	if !ok {
		return -1
	}

	return i
}

// next returns the next record, or io.EOF once the file is exhausted.
func (r *reader) next() ([]string, error) {
	rec, err := r.c.Read()
	if err == io.EOF {
		return nil, io.EOF
	} else if err != nil {
		return nil, tracer.Maskf(clickrank.InvalidInputError, "%s: %s", r.pat, err.Error())
	}

	r.lin++

	return rec, nil
}

func (r *reader) close() error {
	if r.z != nil {
		err := r.z.Close()
		if err != nil {
			r.f.Close()
			return tracer.Mask(err)
		}
	}

	{
		err := r.f.Close()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

type writer struct {
	c *csv.Writer
	o io.WriteCloser
}

func create(pat string) (*writer, error) {
	o, err := Create(pat)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return &writer{c: csv.NewWriter(o), o: o}, nil
}

func (w *writer) close() error {
	{
		w.c.Flush()

		err := w.c.Error()
		if err != nil {
			w.o.Close()
			return tracer.Mask(err)
		}
	}

	{
		err := w.o.Close()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

// Create opens the file at the given path for writing, compressing its
// content with gzip if the path ends in ".gz".
func Create(pat string) (io.WriteCloser, error) {
	f, err := os.Create(pat)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	if !strings.HasSuffix(pat, ".gz") {
		return f, nil
	}

	return &gzipFile{f: f, z: gzip.NewWriter(f)}, nil
}

type gzipFile struct {
	f *os.File
	z *gzip.Writer
}

func (g *gzipFile) Write(p []byte) (int, error) {
	return g.z.Write(p)
}

func (g *gzipFile) Close() error {
	{
		err := g.z.Close()
		if err != nil {
			g.f.Close()
			return tracer.Mask(err)
		}
	}

	{
		err := g.f.Close()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}
