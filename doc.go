// Package statusbridge marshals native results, handles and buffers across
// the boundary between statically typed Go code and a dynamically typed
// embedding environment.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	statusbridge/        Package documentation only
//	├── status/          Status values, canonical codes, Result[T] and their
//	│                    tuple, protobuf, gRPC and JSON forms
//	├── bridge/          Raising statuses as errors, per-operation policies,
//	│                    operation modules, error to status mapping
//	├── handle/          Tagged handles, producer tables, tag registry and
//	│                    the handle negotiation protocol
//	├── buffer/          Borrowed and copied views over typed storage
//	│   └── wasmmem/     Guest linear memory regions as buffers
//	├── dyn/             Class names, host exceptions and tuples of the
//	│                    dynamic side
//	├── config/          TOML configuration, validation and JSON schema
//	├── runtime/         Env: one place that wires all of the above
//	└── errors/          Structured error types for conversion failures
//
// # Quick Start
//
//	env, err := runtime.New(ctx, config.Default(),
//	    runtime.WithOps(bridge.WithStatusOp("remove", remove)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer env.Close(ctx)
//
//	if _, err := env.Invoke("remove", path); err != nil {
//	    var exc *bridge.StatusNotOk
//	    if errors.As(err, &exc) {
//	        fmt.Println(exc.Code, exc.Message)
//	    }
//	}
//
// # Failure Classes
//
// Broken preconditions, such as raising an ok status, panic with an
// *errors.Error of kind contract_violation. Conversion failures at the
// boundary are *errors.Error values of kind type_mismatch whose Message is
// the literal diagnostic. Domain failures are status.Status values, raised
// or returned according to the operation's bridge.Policy.
//
// # Thread Safety
//
// Registries, modules and the OK status are immutable after construction
// and safe for concurrent use. Views and handles are scoped to one call;
// the caller guarantees no concurrent writer to borrowed storage.
package statusbridge
