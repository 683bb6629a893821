package main

import (
	"context"

	"habilitados-backend/cmd/habilitados-cli/commands"
	"habilitados-backend/lib/serviceutil"
	"habilitados-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	telemetry.SetupFromEnv(context.Background(), "habilitados-cli")
	commands.ExecuteContext(serviceutil.SignalContext())
}
