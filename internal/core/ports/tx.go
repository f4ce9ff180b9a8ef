package ports

import "context"

// TxRunner executes fn within a single transaction scope. The writes made
// through repositories using the derived context are committed together when
// fn returns nil and rolled back on any error or panic exit path.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
