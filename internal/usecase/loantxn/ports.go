package loantxn

import (
	"context"
	"log"
)

// Prompt is the decision content handed to the confirmation surface; the
// engine never renders it.
type Prompt struct {
	Title       string
	Description string
}

// ConfirmationPort is the explicit "are you sure" gate. Destructive flows
// (cash-equivalence swap, loan type change) never apply without it.
type ConfirmationPort interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmFunc adapts a plain function to a ConfirmationPort.
type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) { return f(ctx, p) }

// StaticConfirmer answers every prompt with a fixed decision. The HTTP
// layer binds it to the request's `confirmed` flag.
func StaticConfirmer(confirmed bool) ConfirmationPort {
	return ConfirmFunc(func(context.Context, Prompt) (bool, error) { return confirmed, nil })
}

// Notifier is the outcome surface. Message text is presentation; the
// triggering conditions are part of the contract.
type Notifier interface {
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type logNotifier struct{}

func (logNotifier) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (logNotifier) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (logNotifier) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

// NewLogNotifier writes notifications to the standard logger.
func NewLogNotifier() Notifier { return logNotifier{} }

type nopNotifier struct{}

func (nopNotifier) Warnf(string, ...any)  {}
func (nopNotifier) Infof(string, ...any)  {}
func (nopNotifier) Errorf(string, ...any) {}

func NewNopNotifier() Notifier { return nopNotifier{} }
