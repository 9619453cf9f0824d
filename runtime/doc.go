// Package runtime wires the marshaling packages into one environment.
//
// # Quick Start
//
//	ctx := context.Background()
//	cfg, err := config.Load("bridge.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env, err := runtime.New(ctx, cfg,
//	    runtime.WithTypes(handle.WithType[*Engine]("::engine::Engine")),
//	    runtime.WithOps(bridge.WithStatusOp("start", start)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer env.Close(ctx)
//
//	_, err = env.Invoke("start", "fast") // *bridge.StatusNotOk on failure
//
// # Handles
//
// The status tag "::status::Status" is always registered, so statuses can
// be exported and admitted like any other native value:
//
//	h, _ := env.Export(status.HandleTag, status.InternalError("x"))
//	got, _ := handle.Get[status.Status](env.Converter(), h, status.HandleTag)
//
// With [handle] direct_only set, ConvertHandle admits only handles and
// never calls AsHandle on user values.
//
// # Buffers
//
// Const and Objects apply the configured buffer mode. NewRegion returns a
// region of fresh guest memory that can back mutable views directly:
//
//	region, _ := env.NewRegion(ctx, buffer.Int32, 5)
//	_ = buffer.Fill[int32](42, region)
package runtime
