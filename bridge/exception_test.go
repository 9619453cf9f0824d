package bridge

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/wippyai/status-bridge/errors"
	"github.com/wippyai/status-bridge/status"
)

func panicError(fn func()) (e *errors.Error) {
	defer func() {
		r := recover()
		e, _ = r.(*errors.Error)
	}()
	fn()
	return nil
}

type reporter struct{ ok bool }

func (r reporter) OK() bool { return r.ok }

func TestWrap(t *testing.T) {
	st := status.New(status.NotFound, "no such file")
	st.SetPayload("type.example/detail", []byte("x"))

	exc, err := Wrap(st)
	require.NoError(t, err)
	assert.Equal(t, status.NotFound, exc.Code)
	assert.Equal(t, int(status.NotFound), exc.RawCode)
	assert.Equal(t, "no such file", exc.Message)
	assert.Equal(t, "NOT_FOUND: no such file", exc.Error())
	assert.True(t, exc.Status().Equal(st))

	exc, err = Wrap(&st)
	require.NoError(t, err)
	assert.True(t, exc.Status().Equal(st))
}

func TestWrapRawCode(t *testing.T) {
	exc, err := Wrap(status.FromRawInt(9876, "odd"))
	require.NoError(t, err)
	assert.Equal(t, status.Unknown, exc.Code)
	assert.Equal(t, 9876, exc.RawCode)
}

func TestWrapOkStatusPanics(t *testing.T) {
	e := panicError(func() { _, _ = Wrap(status.OkStatus()) })
	require.NotNil(t, e)
	assert.Equal(t, errors.KindContractViolation, e.Kind)
	assert.Equal(t, errors.PhaseRaise, e.Phase)

	e = panicError(func() { _, _ = Wrap(reporter{ok: true}) })
	require.NotNil(t, e)
	assert.Equal(t, errors.KindContractViolation, e.Kind)
}

func TestWrapMissingCapability(t *testing.T) {
	_, err := Wrap("not a status")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrMissingCapability))

	var be *errors.Error
	require.True(t, stderrors.As(err, &be))
	assert.Equal(t, `str object has no attribute "OK"`, be.Message())
}

func TestWrapReporterWithoutStatus(t *testing.T) {
	_, err := Wrap(reporter{ok: false})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrTypeMismatch))
	assert.Contains(t, err.Error(), "reports a failure but carries no status")
}

func TestWrapCarrier(t *testing.T) {
	_, unwrapErr := status.Err[int](status.AbortedError("stop")).Unwrap()
	exc, err := Wrap(unwrapErr)
	require.NoError(t, err)
	assert.Equal(t, status.Aborted, exc.Code)

	again, err := Wrap(exc)
	require.NoError(t, err)
	assert.True(t, again.Equal(exc))
}

// emptyCarrier reports a failure but hands back an ok status.
type emptyCarrier struct{}

func (emptyCarrier) OK() bool              { return false }
func (emptyCarrier) Status() status.Status { return status.OkStatus() }
func (emptyCarrier) Error() string         { return "lost status" }

func TestWrapCarrierWithOkStatus(t *testing.T) {
	_, err := Wrap(emptyCarrier{})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrTypeMismatch))
	assert.Contains(t, err.Error(), "reports a failure but carries an ok status")
}

func TestStatusNotOkLiteral(t *testing.T) {
	lit := &StatusNotOk{Code: status.NotFound, Message: "gone"}
	st := lit.Status()
	assert.False(t, st.OK())
	assert.Equal(t, status.NotFound, st.Code())
	assert.Equal(t, "gone", st.Message())
	assert.Equal(t, "NOT_FOUND: gone", lit.Error())

	exc, err := Wrap(lit)
	require.NoError(t, err)
	assert.False(t, exc.Status().OK())
	assert.Equal(t, status.NotFound, exc.Code)

	raw := &StatusNotOk{RawCode: 9876, Message: "odd"}
	assert.Equal(t, 9876, raw.Status().RawCode())

	empty := &StatusNotOk{}
	assert.Equal(t, status.Unknown, empty.Status().Code())
}

func TestBuildFromParts(t *testing.T) {
	exc, err := BuildFromParts(status.Internal, "boom")
	require.NoError(t, err)
	assert.Equal(t, "INTERNAL: boom", exc.Error())

	tests := []struct {
		name string
		code any
	}{
		{"int", 13},
		{"int32", int32(13)},
		{"string", "INTERNAL"},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFromParts(tt.code, "boom")
			require.Error(t, err)
			var be *errors.Error
			require.True(t, stderrors.As(err, &be))
			assert.Equal(t, errors.KindTypeMismatch, be.Kind)
			assert.Contains(t, be.Message(), "incompatible argument type")
		})
	}
}

func TestStatusNotOkEquality(t *testing.T) {
	a, _ := Wrap(status.InvalidArgumentError("bad"))
	b, _ := Wrap(status.InvalidArgumentError("bad"))
	c, _ := Wrap(status.InvalidArgumentError("worse"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(stderrors.New("INVALID_ARGUMENT: bad")))

	st := status.InvalidArgumentError("bad")
	st.SetPayload("u", []byte("p"))
	d, _ := Wrap(st)
	assert.False(t, a.Equal(d))

	assert.True(t, stderrors.Is(c, &StatusNotOk{Code: status.InvalidArgument}))
	assert.False(t, stderrors.Is(c, &StatusNotOk{Code: status.NotFound}))
}

func TestStatusNotOkGRPC(t *testing.T) {
	exc, _ := Wrap(status.UnavailableError("down"))
	gs, ok := grpcstatus.FromError(exc)
	require.True(t, ok)
	assert.Equal(t, codes.Unavailable, gs.Code())
	assert.Equal(t, "down", gs.Message())
}
