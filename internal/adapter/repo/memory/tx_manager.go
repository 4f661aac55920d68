package memory

import "context"

// TxManager runs fn directly; each store call is atomic on its own.
type TxManager struct{}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
