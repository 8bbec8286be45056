package cmdjen

// A Jenny is a cmdjen code generator.
//
// Each Jenny works with exactly one type of input to its code generation, as
// indicated by type parameter. cmdjen follows a naming convention of naming
// these type parameters "Input" as an indicator for humans that a particular
// type parameter is used in this way.
//
// The only shape currently supported is [ManyToOne]: all inputs collected
// during a run go in, and at most one [File] comes out.
type Jenny[Input any] interface {
	// JennyName returns the name of the generator.
	JennyName() string
}

// NamedJenny is the non-generic part of every Jenny. It is used where the
// Input type does not matter, such as recording which jennies produced a File.
type NamedJenny interface {
	JennyName() string
}
