package inject

import "context"

// Disposable is implemented by shared instances that hold resources.
// Registry.Close closes every Shared instance implementing it.
//
// Example:
//
//	type DatabaseConnection struct {
//	    conn *sql.DB
//	}
//
//	func (dc *DatabaseConnection) Close() error {
//	    return dc.conn.Close()
//	}
type Disposable interface {
	Close() error
}

// DisposableWithContext allows disposal with context for graceful shutdown.
// Registry.CloseContext passes its context through.
//
// Example:
//
//	func (dc *DatabaseConnection) Close(ctx context.Context) error {
//	    done := make(chan error, 1)
//	    go func() {
//	        done <- dc.conn.Close()
//	    }()
//
//	    select {
//	    case err := <-done:
//	        return err
//	    case <-ctx.Done():
//	        return ctx.Err()
//	    }
//	}
type DisposableWithContext interface {
	Close(ctx context.Context) error
}
