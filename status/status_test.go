package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/status-bridge/errors"
)

func TestNew(t *testing.T) {
	for _, code := range Codes() {
		if code == OK {
			continue
		}
		t.Run(code.String(), func(t *testing.T) {
			st := New(code, "test")
			assert.Equal(t, code, st.Code())
			assert.Equal(t, int(code), st.RawCode())
			assert.Equal(t, "test", st.Message())
			assert.False(t, st.OK())
		})
	}

	st := New(OK, "ignored")
	assert.True(t, st.OK())
	assert.Equal(t, "", st.Message())
	assert.True(t, st.Equal(OkStatus()))
}

func TestFromRawInt(t *testing.T) {
	st := FromRawInt(13, "boom")
	assert.Equal(t, Internal, st.Code())
	assert.Equal(t, 13, st.RawCode())

	st = FromRawInt(9876, "odd")
	assert.Equal(t, Unknown, st.Code())
	assert.Equal(t, 9876, st.RawCode())
	assert.False(t, st.OK())

	assert.True(t, FromRawInt(0, "x").OK())
}

func TestCodeFromInt(t *testing.T) {
	code, err := CodeFromInt(13)
	require.NoError(t, err)
	assert.Equal(t, Internal, code)

	_, err = CodeFromInt(9876)
	require.Error(t, err)
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "code_int=9876 is not a valid canonical code", e.Message())
	assert.Equal(t, errors.KindInvalidEnum, e.Kind)

	_, err = CodeFromInt(-1)
	assert.Error(t, err)
}

func TestParseCode(t *testing.T) {
	code, err := ParseCode("DEADLINE_EXCEEDED")
	require.NoError(t, err)
	assert.Equal(t, DeadlineExceeded, code)

	_, err = ParseCode("deadline")
	assert.Error(t, err)

	var c Code
	require.NoError(t, c.UnmarshalText([]byte("ABORTED")))
	assert.Equal(t, Aborted, c)
	require.NoError(t, c.UnmarshalText([]byte("14")))
	assert.Equal(t, Unavailable, c)
	assert.Error(t, c.UnmarshalText([]byte("99")))
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "CANCELLED", Cancelled.String())
	assert.Equal(t, "UNAUTHENTICATED", Unauthenticated.String())
	assert.Equal(t, "42", Code(42).String())
	assert.Len(t, Codes(), 17)
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		st   Status
		want string
	}{
		{"ok", OkStatus(), "OK"},
		{"empty message", New(Cancelled, ""), "CANCELLED: "},
		{"message", New(InvalidArgument, "bad arg"), "INVALID_ARGUMENT: bad arg"},
		{"unmapped raw", FromRawInt(9876, "odd"), "UNKNOWN: odd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.st.String())
			assert.Equal(t, tt.want, tt.st.NotOkString())
		})
	}
}

func TestMessageLossy(t *testing.T) {
	raw := []byte{'a', 0xff, 'b'}
	st := NewBytes(Internal, raw)
	assert.Equal(t, "a\uFFFDb", st.Message())
	assert.Equal(t, raw, st.MessageBytes())

	out := st.MessageBytes()
	out[0] = 'z'
	assert.Equal(t, raw, st.MessageBytes())
}

func TestPayloads(t *testing.T) {
	st := New(Cancelled, "")
	st.SetPayload("Url1", []byte("Payload1"))
	st.SetPayload("Url0", []byte("Payload0"))
	st.SetPayload("Url2", []byte("Payload2"))
	assert.True(t, st.ErasePayload("Url1"))
	assert.False(t, st.ErasePayload("Url1"))

	assert.Equal(t, []Payload{
		{TypeURL: "Url0", Value: []byte("Payload0")},
		{TypeURL: "Url2", Value: []byte("Payload2")},
	}, st.AllPayloads())

	st.SetPayload("Url0", []byte("Replaced"))
	v, ok := st.Payload("Url0")
	require.True(t, ok)
	assert.Equal(t, []byte("Replaced"), v)

	_, ok = st.Payload("Url1")
	assert.False(t, ok)
}

func TestPayloadsStaySorted(t *testing.T) {
	st := New(Internal, "x")
	keys := []string{"m", "c", "x", "a", "q", "c", "b"}
	for i, k := range keys {
		st.SetPayload(k, []byte{byte(i)})
	}
	st.ErasePayload("q")

	all := st.AllPayloads()
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].TypeURL, all[i].TypeURL)
	}
	v, _ := st.Payload("c")
	assert.Equal(t, []byte{5}, v)
}

func TestSetPayloadOnOK(t *testing.T) {
	st := OkStatus()
	st.SetPayload("url", []byte("v"))
	assert.True(t, st.OK())
	assert.Nil(t, st.AllPayloads())
	assert.True(t, OkStatus().Equal(st))
}

func TestCopyOnWrite(t *testing.T) {
	a := New(NotFound, "missing")
	a.SetPayload("k", []byte("1"))
	b := a
	b.SetPayload("k", []byte("2"))
	b.SetPayload("j", []byte("3"))

	v, _ := a.Payload("k")
	assert.Equal(t, []byte("1"), v)
	assert.Len(t, a.AllPayloads(), 1)
	assert.False(t, a.Equal(b))
}

func TestUpdate(t *testing.T) {
	st := OkStatus()
	st.Update(New(Aborted, "first"))
	st.Update(New(Internal, "second"))
	assert.Equal(t, Aborted, st.Code())
	assert.Equal(t, "first", st.Message())

	ok := OkStatus()
	ok.Update(OkStatus())
	assert.True(t, ok.OK())
	st.IgnoreError()
}

func TestEqualAndHash(t *testing.T) {
	a := New(NotFound, "missing")
	b := New(NotFound, "missing")
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	b.SetPayload("url", []byte("v"))
	assert.False(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	c := New(NotFound, "other")
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())

	d := New(AlreadyExists, "missing")
	assert.False(t, a.Equal(d))
	assert.NotEqual(t, a.Hash(), d.Hash())

	assert.False(t, a.Equal(OkStatus()))
	assert.Equal(t, OkStatus().Hash(), New(OK, "").Hash())
}

func TestCanonicalFactories(t *testing.T) {
	tests := []struct {
		fn   func(string) Status
		code Code
	}{
		{CancelledError, Cancelled},
		{UnknownError, Unknown},
		{InvalidArgumentError, InvalidArgument},
		{DeadlineExceededError, DeadlineExceeded},
		{NotFoundError, NotFound},
		{AlreadyExistsError, AlreadyExists},
		{PermissionDeniedError, PermissionDenied},
		{ResourceExhaustedError, ResourceExhausted},
		{FailedPreconditionError, FailedPrecondition},
		{AbortedError, Aborted},
		{OutOfRangeError, OutOfRange},
		{UnimplementedError, Unimplemented},
		{InternalError, Internal},
		{UnavailableError, Unavailable},
		{DataLossError, DataLoss},
		{UnauthenticatedError, Unauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			st := tt.fn("msg")
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, "msg", st.Message())
		})
	}
}

func TestResult(t *testing.T) {
	r := Ok(7)
	assert.True(t, r.IsOk())
	assert.Equal(t, 7, r.Value())
	v, err := r.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	e := Err[int](New(NotFound, "gone"))
	assert.False(t, e.IsOk())
	assert.Equal(t, NotFound, e.Status().Code())
	_, err = e.Unwrap()
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND: gone", err.Error())

	pe := panicError(func() { Err[int](OkStatus()) })
	require.NotNil(t, pe)
	assert.Equal(t, errors.KindContractViolation, pe.Kind)
}

func panicError(fn func()) (e *errors.Error) {
	defer func() { e, _ = recover().(*errors.Error) }()
	fn()
	return nil
}

func TestAsHandle(t *testing.T) {
	st := New(Internal, "x")
	h, err := st.AsHandle()
	require.NoError(t, err)
	require.NotNil(t, h)
}
