package status

import (
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/wippyai/status-bridge/errors"
)

// ToProto converts s to the google.rpc.Status message. Payloads become
// Any details. The message goes through the lossy text accessor since
// proto strings must be valid UTF-8.
func (s Status) ToProto() *spb.Status {
	p := &spb.Status{
		Code:    int32(s.RawCode()),
		Message: s.Message(),
	}
	for _, pl := range s.AllPayloads() {
		p.Details = append(p.Details, &anypb.Any{TypeUrl: pl.TypeURL, Value: pl.Value})
	}
	return p
}

// FromProto converts a google.rpc.Status message. A nil message is OK.
func FromProto(p *spb.Status) Status {
	if p == nil {
		return Status{}
	}
	st := FromRawInt(int(p.GetCode()), p.GetMessage())
	for _, d := range p.GetDetails() {
		st.SetPayload(d.GetTypeUrl(), d.GetValue())
	}
	return st
}

// ToGRPC converts s to a gRPC status.
func (s Status) ToGRPC() *grpcstatus.Status {
	return grpcstatus.FromProto(s.ToProto())
}

// FromGRPC converts a gRPC status. A nil status is OK.
func FromGRPC(gs *grpcstatus.Status) Status {
	if gs == nil {
		return Status{}
	}
	return FromProto(gs.Proto())
}

// GRPCCode returns the gRPC code with the same number as the canonical code.
func (c Code) GRPCCode() codes.Code {
	return codes.Code(c)
}

// MarshalBinary encodes s as a google.rpc.Status protobuf message.
func (s Status) MarshalBinary() ([]byte, error) {
	b, err := proto.Marshal(s.ToProto())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "marshal google.rpc.Status")
	}
	return b, nil
}

// UnmarshalBinary decodes a google.rpc.Status protobuf message.
func (s *Status) UnmarshalBinary(b []byte) error {
	var p spb.Status
	if err := proto.Unmarshal(b, &p); err != nil {
		return errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "unmarshal google.rpc.Status")
	}
	*s = FromProto(&p)
	return nil
}
