package transactor

import "context"

// Transactor runs txFunc so that all storage calls made with passed context share one transaction
type Transactor interface {
	WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error
}

// Func adapts plain function to Transactor
type Func func(context.Context, func(context.Context) error) error

func (f Func) WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error {
	return f(ctx, txFunc)
}

// Passthrough calls txFunc directly, it serves storages where multi-document transactions are not available
var Passthrough Transactor = Func(func(ctx context.Context, txFunc func(context.Context) error) error {
	return txFunc(ctx)
})
