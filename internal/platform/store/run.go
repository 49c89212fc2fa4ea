package store

import "context"

// RunInCommunity wraps ctx with a community id and calls fn inside the provided TxRunner
func RunInCommunity(ctx context.Context, tx TxRunner, communityID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithCommunity(ctx, communityID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
