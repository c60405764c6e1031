package service

import "context"

// Transactor runs fn atomically. Repository calls made with the ctx passed to
// fn join the transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// noTx runs fn directly; used when no transactor is configured.
type noTx struct{}

func (noTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func transactorOrDefault(tx Transactor) Transactor {
	if tx == nil {
		return noTx{}
	}
	return tx
}
