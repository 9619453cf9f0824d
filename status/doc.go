// Package status implements the fallible-result value crossing the boundary.
//
// A Status carries a canonical Code, the raw integer it was built from, a
// message (bytes, possibly invalid UTF-8) and payloads keyed by type URL.
// The zero Status is OK and allocates nothing; OkStatus returns it.
//
//	st := status.New(status.NotFound, "no such key")
//	st.SetPayload("type.googleapis.com/x.Detail", detail)
//	fmt.Println(st) // NOT_FOUND: no such key
//
// Result[T] pairs a value with a status; its error arm never holds OK.
//
// Transport forms:
//   - Serialize / Deserialize: (rawCode, message, ((typeURL, value), ...))
//   - ToProto / FromProto: google.rpc.Status with Any details
//   - ToGRPC / FromGRPC: gRPC status
//   - MarshalBinary / MarshalJSON
//
// Equal compares code, message and payloads. Hash ignores payloads.
package status
