package cmdjen

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// JennyListWithNamer creates a new JennyList that decorates errors using the
// provided namer func, which can derive a meaningful identifier string from the
// Input type for the JennyList.
func JennyListWithNamer[Input any](namer func(t Input) string) *JennyList[Input] {
	return &JennyList[Input]{
		inputnamer: namer,
	}
}

// JennyList is an ordered collection of jennies. When called, it constructs
// an [FS] by calling each of its contained jennies in the order they were
// appended.
//
// The primary purpose of JennyList is to make it easy to create case-specific
// code generators by composing small, reusable jennies that each have clear,
// narrow responsibilities.
//
// The File outputs of all member jennies in a JennyList exist in the same
// relative path namespace. JennyList does not modify emitted paths. Path
// uniqueness is enforced across the aggregate set of Files.
//
// JennyList's Input type parameter is used to enforce that every Jenny in the
// JennyList takes the same type parameter.
type JennyList[Input any] struct {
	mut sync.RWMutex

	jennies []ManyToOne[Input]

	// postprocessors, to be run on every file returned from each contained jenny
	post []FileMapper

	// inputnamer, if non-nil, gives a name to an input.
	inputnamer func(t Input) string
}

// JennyName returns a name derived from the Input type.
func (js *JennyList[Input]) JennyName() string {
	return fmt.Sprintf("JennyList[%s]", reflect.TypeOf(new(Input)).Elem().Name())
}

func (js *JennyList[Input]) wrapinerr(err error, objs []Input) error {
	if js.inputnamer == nil || len(objs) == 0 {
		return err
	}
	names := make([]string, len(objs))
	for i, in := range objs {
		names[i] = fmt.Sprintf("%q", js.inputnamer(in))
	}
	return fmt.Errorf("%w for inputs %s", err, strings.Join(names, ", "))
}

// GenerateFS calls every jenny in the list with all provided inputs, runs
// postprocessors over each produced File, and collects the results into an
// FS. Errors from all jennies are aggregated; if any occurred, no FS is
// returned.
//
// A JennyList with no jennies, or whose jennies were all no-ops, returns an
// empty FS.
func (js *JennyList[Input]) GenerateFS(objs ...Input) (*FS, error) {
	js.mut.RLock()
	defer js.mut.RUnlock()

	jfs := NewFS()
	var result *multierror.Error
	for _, j := range js.jennies {
		f, err := j.Generate(objs...)
		if err != nil {
			result = multierror.Append(result, js.wrapinerr(fmt.Errorf("%s: %w", j.JennyName(), err), objs))
			continue
		}
		if f == nil || !f.Exists() {
			continue
		}

		out := *f
		out.From = append([]NamedJenny{js, j}, out.From...)
		for _, post := range js.post {
			of, err := post(out)
			if err != nil {
				err = fmt.Errorf("postprocessing of %s from %s failed: %w", out.RelativePath, jennystack(out.From), err)
				result = multierror.Append(result, js.wrapinerr(err, objs))
				out = File{}
				break
			}
			out = of
		}
		if !out.Exists() {
			continue
		}

		if err := Files([]File{out}).Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s returned an invalid File: %w", j.JennyName(), err))
			continue
		}
		if err := jfs.Add(j.JennyName(), out); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if result.ErrorOrNil() != nil {
		return nil, multierror.Flatten(result)
	}
	return jfs, nil
}

// Generate is like GenerateFS, but returns the produced Files sorted by path.
func (js *JennyList[Input]) Generate(objs ...Input) (Files, error) {
	jfs, err := js.GenerateFS(objs...)
	if err != nil {
		return nil, err
	}
	return jfs.AsFiles(), nil
}

// AppendManyToOne adds jennies to the end of the JennyList. In Generate,
// jennies are called in the order they were appended.
func (js *JennyList[Input]) AppendManyToOne(jennies ...ManyToOne[Input]) {
	js.mut.Lock()
	js.jennies = append(js.jennies, jennies...)
	js.mut.Unlock()
}

// AddPostprocessors appends a slice of FileMapper to its internal list of
// postprocessors.
//
// Postprocessors are run (FIFO) on every File produced by the JennyList.
func (js *JennyList[Input]) AddPostprocessors(fn ...FileMapper) {
	js.mut.Lock()
	js.post = append(js.post, fn...)
	js.mut.Unlock()
}
