package ports

import "context"

// TxManager runs fn so that repository calls made with the ctx it receives
// commit or roll back together.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
