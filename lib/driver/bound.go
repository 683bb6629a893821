package driver

import (
	"context"
	"time"
)

// Bind wraps a session so that every operation runs under `timeout`
// and every failure comes back as a *Error. raw driver implementations
// stay simple, the engine only ever talks to a bound session.
func Bind(s Session, timeout time.Duration) Session {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return boundSession{inner: s, timeout: timeout}
}

type boundSession struct {
	inner   Session
	timeout time.Duration
}

func (b boundSession) Navigate(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	err := b.inner.Navigate(ctx, url)
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	return opError("navigate", "", err)
}

func (b boundSession) Fill(ctx context.Context, selector, value string) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	err := b.inner.Fill(ctx, selector, value)
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	return opError("fill", selector, err)
}

func (b boundSession) Click(ctx context.Context, selector string) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	err := b.inner.Click(ctx, selector)
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	return opError("click", selector, err)
}

func (b boundSession) ReadTable(ctx context.Context, selector string, columns []int) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	rows, err := b.inner.ReadTable(ctx, selector, columns)
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, opError("read_table", selector, err)
	}
	return rows, nil
}

func (b boundSession) Close() error {
	return opError("close", "", b.inner.Close())
}
