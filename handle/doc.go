// Package handle exchanges native values between independently built
// modules that share no type definitions.
//
// A Handle is an unforgeable reference tagged with a string that names the
// native type, typically a fully qualified name such as "::status::Status".
// Producers export values through a Table, which keeps ownership:
// dropping the slot or closing the table invalidates every handle to it.
//
// Consumers admit arbitrary values through a Converter:
//
//	reg, _ := handle.NewRegistry(handle.WithType[*Engine]("::engine::Engine"))
//	conv := handle.NewConverter(reg)
//	eng, err := handle.Get[*Engine](conv, obj, "::engine::Engine")
//
// A value that is not itself a Handle may implement Provider to present
// one. Conversion failures are *errors.Error values of kind type_mismatch
// whose Message is one of:
//
//	object is a handle with name "X" but "T" is expected
//	C.AsHandle() call failed: Kind: message
//	C.AsHandle() returned an object (R) that is not a handle
//	C.AsHandle() returned a handle with name NULL but "T" is expected
//	C object is not a handle.
//
// DirectOnly converters never call Provider methods.
package handle
