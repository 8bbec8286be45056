package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"

	"github.com/grafana/cmdjen"
)

func TestYAMLJenny(t *testing.T) {
	is := is.New(t)

	j := YAMLJenny{}
	f, err := j.Generate()
	is.NoErr(err)
	is.True(f == nil) // no commands, no file

	f, err = j.Generate(Command{Name: "minimal"})
	is.NoErr(err)
	is.Equal(f.RelativePath, DefaultFileName)
	is.Equal(string(f.Data), string(Render([]Command{{Name: "minimal"}}, QuotingCompat)))

	f, err = YAMLJenny{Path: "resources/commands.yml"}.Generate(Command{Name: "minimal"})
	is.NoErr(err)
	is.Equal(f.RelativePath, "resources/commands.yml")
}

func TestForDeclarations(t *testing.T) {
	is := is.New(t)

	jl := &cmdjen.JennyList[Declaration]{}
	jl.AppendManyToOne(ForDeclarations(YAMLJenny{}))

	files, err := jl.Generate(
		Declaration{Owner: "test.FirstCommand", Command: Command{Name: "first"}},
		Declaration{Owner: "test.SecondCommand", Command: Command{Name: "second"}},
	)
	is.NoErr(err)
	is.Equal(len(files), 1)
	is.True(strings.Contains(string(files[0].Data), "  first:\n"))
	is.True(strings.Contains(string(files[0].Data), "  second:\n"))
	is.True(!strings.Contains(string(files[0].Data), "FirstCommand"))
}

func TestLintYAML(t *testing.T) {
	valid := cmdjen.File{
		RelativePath: DefaultFileName,
		Data:         Render([]Command{{Name: "x", Aliases: []string{"y"}}}, QuotingCompat),
	}
	broken := cmdjen.File{
		RelativePath: DefaultFileName,
		Data:         Render([]Command{{Name: "x", Description: `a "quoted" value`}}, QuotingCompat),
	}

	t.Run("valid", func(t *testing.T) {
		is := is.New(t)
		for _, strict := range []bool{false, true} {
			out, err := LintYAML(strict, nil)(valid)
			is.NoErr(err)
			is.Equal(out.Data, valid.Data)
		}
	})

	t.Run("compat passes broken output through", func(t *testing.T) {
		is := is.New(t)
		var logs strings.Builder
		out, err := LintYAML(false, log.New(&logs))(broken)
		is.NoErr(err)
		is.Equal(out.Data, broken.Data)
		is.True(strings.Contains(logs.String(), "not valid YAML"))
	})

	t.Run("strict rejects broken output", func(t *testing.T) {
		is := is.New(t)
		_, err := LintYAML(true, nil)(broken)
		is.True(err != nil)
		is.True(strings.Contains(err.Error(), "not a valid command descriptor"))
	})

	t.Run("strict escaping decodes", func(t *testing.T) {
		is := is.New(t)
		f := cmdjen.File{
			RelativePath: DefaultFileName,
			Data:         Render([]Command{{Name: "x", Description: `a "quoted" value`}}, QuotingStrict),
		}
		_, err := LintYAML(true, nil)(f)
		is.NoErr(err)
	})
}

func TestCommandValidate(t *testing.T) {
	is := is.New(t)

	is.NoErr(Command{Name: "parent.create"}.Validate())
	is.True(Command{}.Validate() != nil)
	is.True(Command{Name: "two words"}.Validate() != nil)
	is.True(Command{Name: "a:b"}.Validate() != nil)

	is.NoErr(Command{Name: "tp_2-x"}.Validate())
	for _, name := range []string{"#hash", "&anchor", "*x", "[x]", "{x}", "-", "-x", `q"x`, "a'b", "!tag", "a,b", "%x", "@x", "`x", "a|b", ">x"} {
		err := Command{Name: name}.Validate()
		is.True(err != nil) // name must be a plain key
		var verr *ValidationError
		is.True(errors.As(err, &verr))
	}

	is.NoErr(Command{Name: "x", Description: "aÿ"}.Validate())
	is.True(Command{Name: "x", Description: "a\xff"}.Validate() != nil)
	is.True(Command{Name: "x", Usage: string([]byte{0xc3})}.Validate() != nil)
	is.True(Command{Name: "x", Aliases: []string{"ok", string([]byte{0xfe})}}.Validate() != nil)

	is.Equal(Command{Name: "x"}.EffectiveUsage(), "/x")
	is.Equal(Command{Name: "x", Usage: "/x <y>"}.EffectiveUsage(), "/x <y>")
}
