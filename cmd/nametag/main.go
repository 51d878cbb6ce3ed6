package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tkleiven/nametag/internal/adapters/cache"
	"github.com/tkleiven/nametag/internal/adapters/directory"
	"github.com/tkleiven/nametag/internal/adapters/transport"
	"github.com/tkleiven/nametag/internal/app"
	"github.com/tkleiven/nametag/internal/config"
	"github.com/tkleiven/nametag/internal/domain"
	"github.com/tkleiven/nametag/internal/executor"
	"github.com/tkleiven/nametag/internal/logging"
	"github.com/tkleiven/nametag/internal/reporting"
	"github.com/tkleiven/nametag/internal/telemetry"

	_ "golang.org/x/crypto/x509roots/fallback"
)

const usage = `usage: nametag <command> [args]

commands:
  reserve <nickname>             reserve a username for the nickname
  confirm <username> <token>     confirm a prior reservation
  claim <nickname>               reserve and immediately confirm
  delete                         delete the current username
  lookup <username> [...]        look up the account owning each username
`

func main() {
	instanceID := uuid.New().String()
	logger := slog.New(logging.NewTracingLogHandler(slog.NewJSONHandler(os.Stdout, nil))).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	conf, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", conf.NonSensitiveString())

	ctx := logging.AddToContext(context.Background(), logger)

	ctx, flushSentry, err := reporting.InitSentryOrMock(ctx, conf)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flushSentry()

	shutdownTelemetry, err := telemetry.SetupOTelSDK(ctx, "nametag")
	if err != nil {
		fail("Failed to initialize telemetry", "error", err.Error())
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Error("Failed to shut down telemetry", "error", err.Error())
		}
	}()

	httpClient := telemetry.NewInstrumentedHTTPClient(10 * time.Second)
	directoryTransport := transport.NewDirectory(
		httpClient,
		conf.DirectoryBaseURL(),
		conf.DirectoryAuthUsername(),
		conf.DirectoryAuthPassword(),
	)
	client := directory.NewClient(directoryTransport)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch command {
	case "reserve":
		runReserve(ctx, fail, client, args)
	case "confirm":
		runConfirm(ctx, fail, client, args)
	case "claim":
		runClaim(ctx, fail, client, args)
	case "delete":
		runDelete(ctx, fail, client)
	case "lookup":
		runLookup(ctx, fail, client, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

type failFunc func(msg string, args ...any)

func runReserve(ctx context.Context, fail failFunc, client *directory.Client, args []string) {
	if len(args) != 1 {
		fail("reserve takes exactly one nickname")
	}

	attemptID := domain.NewAttemptID()
	result, err := client.AttemptToReserve(ctx, args[0], attemptID)
	if err != nil {
		fail("Failed to reserve username", "error", err.Error(), "attemptId", string(attemptID))
	}

	switch result.Outcome {
	case domain.ReservationSuccessful:
		fmt.Printf("reserved %s (token %s)\n", result.Reservation.RawUsername, result.Reservation.ReservationToken)
	case domain.ReservationRejected:
		fmt.Println("reservation rejected; try a different nickname")
	case domain.ReservationRateLimited:
		fmt.Println("rate limited; try again later")
	}
}

func runConfirm(ctx context.Context, fail failFunc, client *directory.Client, args []string) {
	if len(args) != 2 {
		fail("confirm takes a username and a reservation token")
	}

	parsed, ok := domain.ParseUsername(args[0])
	if !ok {
		fail("Invalid username", "username", args[0])
	}

	result, err := client.AttemptToConfirm(ctx, domain.ReservedUsername{
		RawUsername:      args[0],
		ReservationToken: args[1],
		Username:         parsed,
	})
	if err != nil {
		fail("Failed to confirm reservation", "error", err.Error())
	}

	switch result.Outcome {
	case domain.ConfirmationConfirmed:
		fmt.Printf("confirmed %s\n", result.ConfirmedUsername)
	case domain.ConfirmationRejected:
		fmt.Println("reservation no longer held; reserve again")
	case domain.ConfirmationRateLimited:
		fmt.Println("rate limited; try again later")
	}
}

func runClaim(ctx context.Context, fail failFunc, client *directory.Client, args []string) {
	if len(args) != 1 {
		fail("claim takes exactly one nickname")
	}

	claimUsername := app.BuildClaimUsername(client)

	attemptID := domain.NewAttemptID()
	result, err := claimUsername(ctx, args[0], attemptID)
	if err != nil {
		fail("Failed to claim username", "error", err.Error(), "attemptId", string(attemptID))
	}

	switch result.Outcome {
	case app.ClaimClaimed:
		fmt.Printf("claimed %s\n", result.ClaimedUsername)
	case app.ClaimRejected:
		fmt.Println("claim rejected; try a different nickname")
	case app.ClaimRateLimited:
		fmt.Println("rate limited; try again later")
	}
}

func runDelete(ctx context.Context, fail failFunc, client *directory.Client) {
	if err := client.AttemptToDeleteUsername(ctx); err != nil {
		fail("Failed to delete username", "error", err.Error())
	}
	fmt.Println("username deleted")
}

func runLookup(ctx context.Context, fail failFunc, client *directory.Client, args []string) {
	if len(args) == 0 {
		fail("lookup takes at least one username")
	}

	aciCache := cache.NewTTLCache[app.ACILookupEntry](1 * time.Minute)
	lookupACI := app.BuildLookupACIWithCache(aciCache, client)

	// Resolve all usernames concurrently; each handle resolves exactly once.
	handles := make([]<-chan executor.Result[app.ACILookupEntry], 0, len(args))
	for _, username := range args {
		handles = append(handles, executor.Start(ctx, func(ctx context.Context) (app.ACILookupEntry, error) {
			aci, found, err := lookupACI(ctx, username)
			return app.ACILookupEntry{ACI: aci, Found: found}, err
		}))
	}

	failed := false
	for i, handle := range handles {
		result := <-handle
		if result.Err != nil {
			logging.FromContext(ctx).Error("Failed to look up username", "username", args[i], "error", result.Err.Error())
			failed = true
			continue
		}
		if !result.Value.Found {
			fmt.Printf("%s: not found\n", args[i])
			continue
		}
		fmt.Printf("%s: %s\n", args[i], result.Value.ACI)
	}
	if failed {
		fail("One or more lookups failed")
	}
}
