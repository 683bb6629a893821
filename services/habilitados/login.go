package habilitados

import (
	"context"

	"habilitados-backend/lib/driver"

	"go.opentelemetry.io/otel/codes"
)

// login runs the authentication handshake against one portal. success
// is confirmed by the results table becoming reachable, since portals
// rarely report failed credentials with anything machine-readable.
func login(ctx context.Context, session driver.Session, cfg SystemConfig) error {
	ctx, span := tracer.Start(ctx, "login")
	defer span.End()

	step := func(name string, err error) error {
		if err == nil {
			return nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, name)
		return &LoginError{System: cfg.Name, Step: name, Err: err}
	}

	if err := step("navigate", session.Navigate(ctx, cfg.LoginUrl)); err != nil {
		return err
	}
	if err := step("fill_username", session.Fill(ctx, cfg.Selectors.Username, cfg.Credentials.Username)); err != nil {
		return err
	}
	if err := step("fill_password", session.Fill(ctx, cfg.Selectors.Password, cfg.Credentials.Password)); err != nil {
		return err
	}
	if err := step("submit", session.Click(ctx, cfg.Selectors.LoginButton)); err != nil {
		return err
	}

	// the negative case: the post-login table never shows up
	_, err := session.ReadTable(ctx, cfg.Selectors.Table, nil)
	return step("confirm", err)
}
