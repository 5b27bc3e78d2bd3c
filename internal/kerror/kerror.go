package kerror

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

type Keypair struct {
	K string
	V interface{}
}

// Kerror is a typed error carrying ordered key/value details and an ErrorCode.
type Kerror struct {
	Type      string
	Msg       string
	Details   []Keypair // slice keeps insertion order
	Stack     string    // optional, only the inner most Kerror needs one
	CausedBy  error
	ErrorCode ErrorCode
}

func Create(errType string, msg string) *Kerror {
	return &Kerror{
		Type:      errType,
		Msg:       msg,
		ErrorCode: EC_UNKNOWN,
	}
}

// Wrap attaches err as the cause of a new Kerror. Stack traces are expensive,
// only ask for one at the boundary where the error first enters our code.
func Wrap(err error, errType, msg string, needStack bool) *Kerror {
	ke := &Kerror{
		Type:      errType,
		Msg:       msg,
		CausedBy:  err,
		ErrorCode: EC_UNKNOWN,
	}
	if needStack {
		if _, ok := err.(*Kerror); !ok {
			ke.Stack = GetCallStack(1)
		}
	}
	return ke
}

func (ke *Kerror) Error() string {
	return ke.ShortString()
}

func (ke *Kerror) String() string {
	return ke.FullString()
}

func (ke *Kerror) With(key string, val interface{}) *Kerror {
	ke.Details = append(ke.Details, Keypair{K: key, V: val})
	return ke
}

func (ke *Kerror) WithErrorCode(code ErrorCode) *Kerror {
	ke.ErrorCode = code
	return ke
}

func (ke *Kerror) WithStack() *Kerror {
	ke.Stack = GetCallStack(1)
	return ke
}

// Unwrap makes Kerror work with errors.Is and errors.As.
func (ke *Kerror) Unwrap() error {
	return ke.CausedBy
}

func (ke *Kerror) GetType() string {
	return ke.Type
}

// Detail returns the first detail value stored under key.
func (ke *Kerror) Detail(key string) (interface{}, bool) {
	for _, item := range ke.Details {
		if item.K == key {
			return item.V, true
		}
	}
	return nil, false
}

func (ke *Kerror) ShortString() string {
	var b strings.Builder
	ke.toString(&b, false, false)
	return b.String()
}

func (ke *Kerror) FullString() string {
	var b strings.Builder
	ke.toString(&b, true, true)
	return b.String()
}

func (ke *Kerror) toString(b *strings.Builder, withStack, withCause bool) {
	fmt.Fprintf(b, "%s: %s", ke.Type, ke.Msg)
	for _, item := range ke.Details {
		fmt.Fprintf(b, ", %s=%v", item.K, item.V)
	}
	if withStack && ke.Stack != "" {
		fmt.Fprintf(b, ", stack=%s", ke.Stack)
	}
	if withCause && ke.CausedBy != nil {
		fmt.Fprintf(b, ";\n Caused by: ")
		if cause, ok := ke.CausedBy.(*Kerror); ok {
			cause.toString(b, withStack, withCause)
		} else {
			b.WriteString(ke.CausedBy.Error())
		}
	}
}

// IsType reports whether any Kerror in err's chain has the given Type.
func IsType(err error, errType string) bool {
	for err != nil {
		var ke *Kerror
		if !errors.As(err, &ke) {
			return false
		}
		if ke.Type == errType {
			return true
		}
		err = ke.CausedBy
	}
	return false
}

func GetCallStack(removeTop int) string {
	stack := string(debug.Stack())
	split := strings.SplitAfterN(stack, "\n", 6+2*removeTop)
	return split[len(split)-1]
}
