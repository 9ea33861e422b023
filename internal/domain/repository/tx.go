package repository

import "context"

// TxManager runs a function inside a single database transaction. Every
// state-changing bill operation executes its read-compute-write cycle through
// InTx so the operation either fully commits or fully fails.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
