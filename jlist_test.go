package cmdjen

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

type joinJenny struct {
	path string
}

func (j joinJenny) JennyName() string { return "JoinJenny" }

func (j joinJenny) Generate(in ...string) (*File, error) {
	if len(in) == 0 {
		return nil, nil
	}
	return &File{RelativePath: j.path, Data: []byte(strings.Join(in, ","))}, nil
}

type failJenny struct{}

func (failJenny) JennyName() string { return "FailJenny" }

func (failJenny) Generate(...string) (*File, error) {
	return nil, errors.New("boom")
}

func TestJennyListGenerate(t *testing.T) {
	is := is.New(t)

	jl := &JennyList[string]{}
	jl.AppendManyToOne(joinJenny{path: "a.txt"}, joinJenny{path: "b.txt"})

	files, err := jl.Generate("x", "y")
	is.NoErr(err)
	is.Equal(len(files), 2)
	is.Equal(string(files[0].Data), "x,y")
	is.Equal(files[0].RelativePath, "a.txt")
	is.Equal(jennystack(files[0].From), "JennyList[string]:JoinJenny")
}

func TestJennyListNoop(t *testing.T) {
	is := is.New(t)

	jl := &JennyList[string]{}
	jl.AppendManyToOne(joinJenny{path: "a.txt"})

	jfs, err := jl.GenerateFS()
	is.NoErr(err)
	is.Equal(jfs.Len(), 0)
}

func TestJennyListErrors(t *testing.T) {
	is := is.New(t)

	jl := &JennyList[string]{}
	jl.AppendManyToOne(failJenny{}, joinJenny{path: "a.txt"}, joinJenny{path: "a.txt"})

	_, err := jl.GenerateFS("x")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "FailJenny: boom"))
	is.True(strings.Contains(err.Error(), "already created"))
}

func TestJennyListWithNamer(t *testing.T) {
	is := is.New(t)

	jl := JennyListWithNamer(func(s string) string { return "in-" + s })
	jl.AppendManyToOne(failJenny{})
	jl.AddPostprocessors(func(File) (File, error) {
		return File{}, errors.New("rejected")
	})

	_, err := jl.GenerateFS("x", "y")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), `FailJenny: boom for inputs "in-x", "in-y"`))

	jl = JennyListWithNamer(func(s string) string { return "in-" + s })
	jl.AppendManyToOne(joinJenny{path: "a.txt"})
	jl.AddPostprocessors(func(File) (File, error) {
		return File{}, errors.New("rejected")
	})
	_, err = jl.GenerateFS("x")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), `rejected for inputs "in-x"`))
}

func TestJennyListPostprocessors(t *testing.T) {
	is := is.New(t)

	jl := &JennyList[string]{}
	jl.AppendManyToOne(joinJenny{path: "a.txt"})
	jl.AddPostprocessors(
		func(f File) (File, error) {
			f.Data = bytes.ToUpper(f.Data)
			return f, nil
		},
		func(f File) (File, error) {
			f.Data = append([]byte("# header\n"), f.Data...)
			return f, nil
		},
	)

	files, err := jl.Generate("x")
	is.NoErr(err)
	is.Equal(string(files[0].Data), "# header\nX")

	jl.AddPostprocessors(func(File) (File, error) {
		return File{}, errors.New("rejected")
	})
	_, err = jl.Generate("x")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "postprocessing of a.txt"))
	is.True(strings.Contains(err.Error(), "rejected"))
}

func TestAdaptManyToOne(t *testing.T) {
	is := is.New(t)

	type pair struct{ k, v string }
	j := AdaptManyToOne(joinJenny{path: "kv.txt"}, func(p pair) string {
		return p.k + "=" + p.v
	})
	is.Equal(j.JennyName(), "JoinJenny")

	f, err := j.Generate(pair{"a", "1"}, pair{"b", "2"})
	is.NoErr(err)
	is.Equal(string(f.Data), "a=1,b=2")

	f, err = j.Generate()
	is.NoErr(err)
	is.True(f == nil)
}
