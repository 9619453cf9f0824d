// Package bridge carries status values across the boundary as errors.
//
// A non-ok status.Status leaves a boundary operation either raised, as a
// *StatusNotOk error, or as plain data, depending on the operation's
// Policy. Operations are grouped into an immutable Module:
//
//	mod, _ := bridge.NewModule("files",
//	    bridge.WithStatusOp("remove", remove),
//	    bridge.WithOp("stat", bridge.ReturnAsData, stat),
//	)
//	_, err := mod.Invoke("remove", "/tmp/x") // *StatusNotOk on failure
//
// StatusFromError goes the other way, mapping any error (a raised status,
// a gRPC status, a context error, a boundary conversion failure or a host
// exception) back onto a canonical status.
package bridge
