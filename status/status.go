package status

import (
	"bytes"
	"encoding/binary"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spaolacci/murmur3"
	"golang.org/x/text/encoding/unicode"
)

// Status is the outcome of a fallible operation: a canonical code, a
// message and a set of payloads keyed by type URL.
//
// The zero value is OK. Status is a value type; mutators copy the
// underlying storage before writing, so copies never observe each other.
type Status struct {
	rep *rep
}

type rep struct {
	msg      []byte
	payloads []Payload
	raw      int
	code     Code
}

// Payload is a structured attachment on a non-ok status.
type Payload struct {
	TypeURL string
	Value   []byte
}

// OkStatus returns the shared OK status.
func OkStatus() Status {
	return Status{}
}

// New creates a status with the given code and message.
// An OK code yields the OK status; its message is discarded.
func New(code Code, msg string) Status {
	return newStatus(code, int(code), []byte(msg))
}

// NewBytes is New with a message that may not be valid UTF-8.
func NewBytes(code Code, msg []byte) Status {
	return newStatus(code, int(code), bytes.Clone(msg))
}

// FromRawInt creates a status from an arbitrary integer code. Integers
// outside the canonical table report Unknown from Code while RawCode
// keeps n.
func FromRawInt(n int, msg string) Status {
	code, err := CodeFromInt(n)
	if err != nil {
		code = Unknown
	}
	return newStatus(code, n, []byte(msg))
}

func newStatus(code Code, raw int, msg []byte) Status {
	if raw == int(OK) {
		return Status{}
	}
	return Status{rep: &rep{code: code, raw: raw, msg: msg}}
}

// OK reports whether the status is OK.
func (s Status) OK() bool {
	return s.rep == nil
}

// Code returns the canonical code.
func (s Status) Code() Code {
	if s.rep == nil {
		return OK
	}
	return s.rep.code
}

// RawCode returns the integer the status was constructed with.
func (s Status) RawCode() int {
	if s.rep == nil {
		return int(OK)
	}
	return s.rep.raw
}

// Message returns the message as text, replacing invalid UTF-8 sequences
// with U+FFFD.
func (s Status) Message() string {
	if s.rep == nil {
		return ""
	}
	if utf8.Valid(s.rep.msg) {
		return string(s.rep.msg)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(s.rep.msg)
	if err != nil {
		return strings.ToValidUTF8(string(s.rep.msg), "\uFFFD")
	}
	return string(out)
}

// MessageBytes returns a copy of the original message bytes.
func (s Status) MessageBytes() []byte {
	if s.rep == nil {
		return []byte{}
	}
	return append([]byte{}, s.rep.msg...)
}

// String renders "OK" or "<CODE>: <message>". The separator is kept for
// an empty message.
func (s Status) String() string {
	if s.rep == nil {
		return "OK"
	}
	return s.rep.code.String() + ": " + s.Message()
}

// NotOkString is the text carried by the raised form of a non-ok status.
func (s Status) NotOkString() string {
	return s.String()
}

// Payload returns the payload stored under typeURL.
func (s Status) Payload(typeURL string) ([]byte, bool) {
	if s.rep == nil {
		return nil, false
	}
	i, found := s.rep.find(typeURL)
	if !found {
		return nil, false
	}
	return bytes.Clone(s.rep.payloads[i].Value), true
}

// AllPayloads returns every payload in ascending type URL order.
func (s Status) AllPayloads() []Payload {
	if s.rep == nil || len(s.rep.payloads) == 0 {
		return nil
	}
	out := make([]Payload, len(s.rep.payloads))
	for i, p := range s.rep.payloads {
		out[i] = Payload{TypeURL: p.TypeURL, Value: bytes.Clone(p.Value)}
	}
	return out
}

// SetPayload inserts or replaces the payload stored under typeURL.
// It does nothing on an OK status.
func (s *Status) SetPayload(typeURL string, value []byte) {
	if s.rep == nil {
		return
	}
	r := s.rep.clone()
	i, found := r.find(typeURL)
	p := Payload{TypeURL: typeURL, Value: bytes.Clone(value)}
	if found {
		r.payloads[i] = p
	} else {
		r.payloads = slices.Insert(r.payloads, i, p)
	}
	s.rep = r
}

// ErasePayload removes the payload stored under typeURL and reports
// whether it was present.
func (s *Status) ErasePayload(typeURL string) bool {
	if s.rep == nil {
		return false
	}
	i, found := s.rep.find(typeURL)
	if !found {
		return false
	}
	r := s.rep.clone()
	r.payloads = slices.Delete(r.payloads, i, i+1)
	s.rep = r
	return true
}

// Update keeps the first error: an OK status adopts other, a non-ok
// status is left unchanged.
func (s *Status) Update(other Status) {
	if s.rep == nil {
		s.rep = other.rep
	}
}

// IgnoreError marks the status as intentionally unchecked.
func (s Status) IgnoreError() {}

// Equal reports whether both statuses have the same canonical code,
// message bytes and payload set.
func (s Status) Equal(other Status) bool {
	if s.rep == other.rep {
		return true
	}
	if s.rep == nil || other.rep == nil {
		return false
	}
	a, b := s.rep, other.rep
	if a.code != b.code || !bytes.Equal(a.msg, b.msg) {
		return false
	}
	return slices.EqualFunc(a.payloads, b.payloads, func(x, y Payload) bool {
		return x.TypeURL == y.TypeURL && bytes.Equal(x.Value, y.Value)
	})
}

// Hash covers code and message only; statuses differing only in payloads
// hash the same.
func (s Status) Hash() uint64 {
	h := murmur3.New64()
	var code [4]byte
	binary.LittleEndian.PutUint32(code[:], uint32(s.Code()))
	_, _ = h.Write(code[:])
	if s.rep != nil {
		_, _ = h.Write(s.rep.msg)
	}
	return h.Sum64()
}

func (r *rep) find(typeURL string) (int, bool) {
	return slices.BinarySearchFunc(r.payloads, typeURL, func(p Payload, url string) int {
		return strings.Compare(p.TypeURL, url)
	})
}

func (r *rep) clone() *rep {
	c := *r
	c.payloads = slices.Clone(r.payloads)
	return &c
}
